// Package qrcode renders UPI payment QR codes.
package qrcode

import (
	"fmt"
	"net/url"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"

	"muziris/config"
	"muziris/internal/domain/entity"
	"muziris/internal/domain/service"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	upiID                string
	payeeName            string
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size := 256
	levelName := "M"
	if cfg.QRCode != nil {
		if cfg.QRCode.Size > 0 {
			size = cfg.QRCode.Size
		}
		if cfg.QRCode.ErrorCorrectionLevel != "" {
			levelName = cfg.QRCode.ErrorCorrectionLevel
		}
	}

	var level qrcode.RecoveryLevel
	switch levelName {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	svc := &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
	if cfg.Payment != nil {
		svc.upiID = cfg.Payment.UPIID
		svc.payeeName = cfg.Payment.PayeeName
	}

	return svc
}

// GeneratePaymentQR renders a PNG QR code encoding the UPI deep link for the
// payment. Any UPI app scanning it gets the payee, amount and order reference
// pre-filled.
func (s *qrcodeService) GeneratePaymentQR(payment *entity.Payment) ([]byte, error) {
	if payment == nil {
		return nil, errors.New("payment must not be nil")
	}

	upiID := payment.UPIID
	if upiID == "" {
		upiID = s.upiID
	}
	if upiID == "" {
		return nil, errors.New("upi id must be configured")
	}

	uri := BuildUPIURI(upiID, s.payeeName, payment.Amount, payment.OrderNumber)

	qrCode, err := qrcode.New(uri, s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "render QR code PNG")
	}

	return pngBytes, nil
}

// BuildUPIURI assembles the upi://pay deep link understood by UPI apps.
func BuildUPIURI(upiID, payeeName string, amount float64, reference string) string {
	values := url.Values{}
	values.Set("pa", upiID)
	if payeeName != "" {
		values.Set("pn", payeeName)
	}
	values.Set("am", fmt.Sprintf("%.2f", amount))
	values.Set("cu", "INR")
	if reference != "" {
		values.Set("tn", "Order "+reference)
	}

	return "upi://pay?" + values.Encode()
}
