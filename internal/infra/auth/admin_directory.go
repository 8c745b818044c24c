package auth

import (
	"strings"

	"muziris/config"
	"muziris/internal/domain/service"
)

// adminDirectory answers admin checks from the configured allow-list.
// Membership is decided at construction; changing the list requires a
// restart, which keeps the check allocation-free on the hot path.
type adminDirectory struct {
	emails map[string]struct{}
}

// NewAdminDirectory builds the allow-list directory from configuration.
func NewAdminDirectory(cfg *config.Config) service.AdminDirectory {
	emails := make(map[string]struct{})
	if cfg.Admin != nil {
		for _, email := range cfg.Admin.List() {
			emails[email] = struct{}{}
		}
	}

	return &adminDirectory{emails: emails}
}

// IsAdmin reports whether the email is on the allow-list. Comparison is
// against the normalized (lowercased, trimmed) form.
func (d *adminDirectory) IsAdmin(email string) bool {
	_, ok := d.emails[strings.ToLower(strings.TrimSpace(email))]

	return ok
}
