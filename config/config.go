// Package config loads the service configuration from YAML files with
// environment variable overrides.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const defaultPath = "."

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port int `json:"port" yaml:"port"`
		// BaseURL is the public site origin used when building links embedded
		// in outgoing emails (verification, magic link).
		BaseURL  string `json:"baseUrl" yaml:"baseUrl"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Firestore *FirestoreConfig `json:"firestore" yaml:"firestore"`

	SecretKey struct {
		Access  string `json:"access" yaml:"access"`
		Refresh string `json:"refresh" yaml:"refresh"`
	} `json:"secretKey" yaml:"secretKey"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	PasswordStrength *PasswordStrengthConfig `json:"passwordStrength" yaml:"passwordStrength"`

	// Admin holds the allow-list for the review dashboard and admin sign-in.
	Admin *AdminConfig `json:"admin" yaml:"admin"`

	// Email configuration for the transactional email API.
	Email *EmailConfig `json:"email" yaml:"email"`

	// Loyalty configures point accrual and redemption rates.
	Loyalty *LoyaltyConfig `json:"loyalty" yaml:"loyalty"`

	// Currency configures the secondary display currency.
	Currency *CurrencyConfig `json:"currency" yaml:"currency"`

	// Payment configures the UPI hand-off used at checkout.
	Payment *PaymentConfig `json:"payment" yaml:"payment"`

	// RateLimit configures the shared request-budget counter.
	RateLimit *RateLimitConfig `json:"rateLimit" yaml:"rateLimit"`

	// Verification configures email ownership proof tokens.
	Verification *VerificationConfig `json:"verification" yaml:"verification"`

	// PubSub configuration for activity event publishing.
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// QRCode configuration for payment QR codes.
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`
}

// FirestoreConfig defines the document store connection.
type FirestoreConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`
}

// AuthConfig defines authentication-related configuration.
type AuthConfig struct {
	BcryptCost      int           `json:"bcryptCost" yaml:"bcryptCost"`
	AccessTokenTTL  time.Duration `json:"accessTokenTtl" yaml:"accessTokenTtl"`
	RefreshTokenTTL time.Duration `json:"refreshTokenTtl" yaml:"refreshTokenTtl"`
}

// PasswordStrengthConfig defines password strength requirements.
type PasswordStrengthConfig struct {
	MinLength        int  `json:"minLength" yaml:"minLength"`
	RequireUppercase bool `json:"requireUppercase" yaml:"requireUppercase"`
	RequireLowercase bool `json:"requireLowercase" yaml:"requireLowercase"`
	RequireNumbers   bool `json:"requireNumbers" yaml:"requireNumbers"`
	MaxLength        int  `json:"maxLength" yaml:"maxLength"`
}

// AdminConfig holds the admin email allow-list as a comma-separated string,
// matching the ADMIN_EMAILS environment variable format.
type AdminConfig struct {
	Emails string `json:"emails" yaml:"emails"`
}

// List returns the allow-list as normalized (lowercased, trimmed) emails.
func (c *AdminConfig) List() []string {
	if c == nil {
		return nil
	}

	var out []string
	for _, e := range strings.Split(c.Emails, ",") {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			out = append(out, e)
		}
	}

	return out
}

// EmailConfig defines the transactional email provider settings.
type EmailConfig struct {
	APIKey      string `json:"apiKey" yaml:"apiKey"`
	FromAddress string `json:"fromAddress" yaml:"fromAddress"`
}

// LoyaltyConfig defines point accrual and redemption arithmetic.
type LoyaltyConfig struct {
	// Points earned per whole currency unit of the discounted total.
	EarnPerUnit int `json:"earnPerUnit" yaml:"earnPerUnit"`
	// Points required to discount one currency unit.
	RedeemPerUnit int `json:"redeemPerUnit" yaml:"redeemPerUnit"`
}

// CurrencyConfig defines the primary currency and the static exchange rate
// used for the secondary display currency.
type CurrencyConfig struct {
	Primary      string  `json:"primary" yaml:"primary"`
	Secondary    string  `json:"secondary" yaml:"secondary"`
	ExchangeRate float64 `json:"exchangeRate" yaml:"exchangeRate"`
}

// PaymentConfig defines the UPI payee used in payment QR codes.
type PaymentConfig struct {
	UPIID     string `json:"upiId" yaml:"upiId"`
	PayeeName string `json:"payeeName" yaml:"payeeName"`
}

// RateLimitConfig defines the Redis-backed request budget for the
// admin sign-in link endpoint.
type RateLimitConfig struct {
	RedisAddr       string        `json:"redisAddr" yaml:"redisAddr"`
	RedisPassword   string        `json:"redisPassword" yaml:"redisPassword"`
	RedisDB         int           `json:"redisDb" yaml:"redisDb"`
	AdminLinkMax    int           `json:"adminLinkMax" yaml:"adminLinkMax"`
	AdminLinkWindow time.Duration `json:"adminLinkWindow" yaml:"adminLinkWindow"`
}

// VerificationConfig defines the lifetime of email verification tokens.
type VerificationConfig struct {
	TokenTTL time.Duration `json:"tokenTtl" yaml:"tokenTtl"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing.
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// QRCodeConfig defines QR code generation configuration.
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: SECRETKEY_ACCESS -> secretKey.access (not secretkey.access)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}
	applyDefaults(cfg)

	return cfg, nil
}

// applyDefaults fills the business-rule knobs the rest of the code assumes
// are always present.
func applyDefaults(cfg *Config) {
	if cfg.Loyalty == nil {
		cfg.Loyalty = &LoyaltyConfig{}
	}
	if cfg.Loyalty.EarnPerUnit <= 0 {
		cfg.Loyalty.EarnPerUnit = 1
	}
	if cfg.Loyalty.RedeemPerUnit <= 0 {
		cfg.Loyalty.RedeemPerUnit = 10
	}

	if cfg.PasswordStrength == nil {
		cfg.PasswordStrength = &PasswordStrengthConfig{
			MinLength:        8,
			RequireUppercase: true,
			RequireLowercase: true,
			RequireNumbers:   true,
			MaxLength:        128,
		}
	}

	if cfg.Verification == nil {
		cfg.Verification = &VerificationConfig{}
	}
	if cfg.Verification.TokenTTL <= 0 {
		cfg.Verification.TokenTTL = time.Hour
	}

	if cfg.RateLimit != nil {
		if cfg.RateLimit.AdminLinkMax <= 0 {
			cfg.RateLimit.AdminLinkMax = 3
		}
		if cfg.RateLimit.AdminLinkWindow <= 0 {
			cfg.RateLimit.AdminLinkWindow = time.Minute
		}
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
