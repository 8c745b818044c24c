package qrcode

import (
	"net/url"
	"strings"
	"testing"

	"muziris/config"
	"muziris/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func qrTestConfig(size int, level string) *config.Config {
	return &config.Config{
		QRCode: &config.QRCodeConfig{
			Size:                 size,
			ErrorCorrectionLevel: level,
		},
		Payment: &config.PaymentConfig{
			UPIID:     "houseofmuziris@upi",
			PayeeName: "House of Muziris",
		},
	}
}

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		size                 int
		errorCorrectionLevel string
	}{
		{"Low error correction", 256, "L"},
		{"Medium error correction", 256, "M"},
		{"High error correction", 256, "Q"},
		{"Highest error correction", 256, "H"},
		{"Default error correction", 256, "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(qrTestConfig(tt.size, tt.errorCorrectionLevel))
			assert.NotNil(t, service)
		})
	}
}

func TestQRCodeService_GeneratePaymentQR(t *testing.T) {
	service := NewQRCodeService(qrTestConfig(256, "M"))

	payment := &entity.Payment{
		OrderNumber: "HOM-20260829-deadbeef",
		Amount:      40,
		UPIID:       "houseofmuziris@upi",
	}

	qrBytes, err := service.GeneratePaymentQR(payment)
	require.NoError(t, err)
	assert.NotEmpty(t, qrBytes)

	// Verify it's a valid PNG (starts with PNG magic number)
	assert.Equal(t, byte(0x89), qrBytes[0])
	assert.Equal(t, byte(0x50), qrBytes[1])
	assert.Equal(t, byte(0x4E), qrBytes[2])
	assert.Equal(t, byte(0x47), qrBytes[3])
}

func TestQRCodeService_GeneratePaymentQR_DifferentSizes(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"Small QR", 128},
		{"Medium QR", 256},
		{"Large QR", 512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(qrTestConfig(tt.size, "M"))

			qrBytes, err := service.GeneratePaymentQR(&entity.Payment{Amount: 12.5})
			require.NoError(t, err)
			assert.NotEmpty(t, qrBytes)
		})
	}
}

func TestQRCodeService_GeneratePaymentQR_NilPayment(t *testing.T) {
	service := NewQRCodeService(qrTestConfig(256, "M"))

	_, err := service.GeneratePaymentQR(nil)
	assert.Error(t, err)
}

func TestQRCodeService_GeneratePaymentQR_MissingUPIID(t *testing.T) {
	service := NewQRCodeService(&config.Config{})

	_, err := service.GeneratePaymentQR(&entity.Payment{Amount: 10})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "upi id must be configured")
}

func TestBuildUPIURI(t *testing.T) {
	uri := BuildUPIURI("houseofmuziris@upi", "House of Muziris", 40.5, "HOM-20260829-deadbeef")

	require.True(t, strings.HasPrefix(uri, "upi://pay?"))

	parsed, err := url.Parse(uri)
	require.NoError(t, err)

	values := parsed.Query()
	assert.Equal(t, "houseofmuziris@upi", values.Get("pa"))
	assert.Equal(t, "House of Muziris", values.Get("pn"))
	assert.Equal(t, "40.50", values.Get("am"))
	assert.Equal(t, "INR", values.Get("cu"))
	assert.Equal(t, "Order HOM-20260829-deadbeef", values.Get("tn"))
}

func TestBuildUPIURI_OptionalFields(t *testing.T) {
	uri := BuildUPIURI("shop@upi", "", 9.99, "")

	parsed, err := url.Parse(uri)
	require.NoError(t, err)

	values := parsed.Query()
	assert.Equal(t, "shop@upi", values.Get("pa"))
	assert.Empty(t, values.Get("pn"))
	assert.Empty(t, values.Get("tn"))
	assert.Equal(t, "9.99", values.Get("am"))
}
