// Package mail sends transactional email through the Resend API.
package mail

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"

	"muziris/config"
	"muziris/internal/domain/entity"
	"muziris/internal/domain/service"
)

// resendMailer implements service.Mailer on top of the Resend client.
type resendMailer struct {
	client *resend.Client
	from   string
	logger *slog.Logger
}

// NewResendMailer builds the mailer from configuration.
func NewResendMailer(cfg *config.Config, logger *slog.Logger) (service.Mailer, error) {
	if cfg.Email == nil || cfg.Email.APIKey == "" {
		return nil, errors.New("email api key must be provided")
	}

	from := cfg.Email.FromAddress
	if from == "" {
		from = "noreply@houseofmuziris.com"
	}

	return &resendMailer{
		client: resend.NewClient(cfg.Email.APIKey),
		from:   from,
		logger: logger,
	}, nil
}

func (m *resendMailer) SendApplicationReceived(ctx context.Context, to, name string) error {
	return m.send(ctx, to, applicationReceivedEmail(name))
}

func (m *resendMailer) SendApprovalWithSetup(ctx context.Context, to, name, setupLink string) error {
	return m.send(ctx, to, approvalEmail(name, setupLink))
}

func (m *resendMailer) SendRejection(ctx context.Context, to, name, reason string) error {
	return m.send(ctx, to, rejectionEmail(name, reason))
}

func (m *resendMailer) SendLoginLink(ctx context.Context, to, link string) error {
	return m.send(ctx, to, loginLinkEmail(link))
}

func (m *resendMailer) SendOrderConfirmation(ctx context.Context, to, name string, order *entity.Order) error {
	return m.send(ctx, to, orderConfirmationEmail(name, order))
}

func (m *resendMailer) send(ctx context.Context, to string, content emailContent) error {
	sent, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: content.Subject,
		Html:    content.HTML,
		Text:    content.Text,
	})
	if err != nil {
		return errors.Wrapf(err, "send email %q to %s", content.Subject, to)
	}

	m.logger.Debug("email sent",
		slog.String("to", to),
		slog.String("subject", content.Subject),
		slog.String("provider_id", sent.Id),
	)

	return nil
}
