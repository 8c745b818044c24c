package service

import "muziris/internal/domain/entity"

// QRCodeService renders the UPI payment hand-off QR for an order's payment.
type QRCodeService interface {
	// GeneratePaymentQR returns a PNG image encoding the UPI payment URI
	// for the given payment record.
	GeneratePaymentQR(payment *entity.Payment) ([]byte, error)
}
