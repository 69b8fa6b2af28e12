package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"

	"github.com/verimail/verimail/config"
)

// Sender delivers a verification code to an email address.
type Sender interface {
	SendVerificationCode(ctx context.Context, to, code string) error
}

const subject = "Your Verification Code"

func htmlBody(code string) string {
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
			<h2 style="color: #333; text-align: center;">Email Verification</h2>
			<div style="background-color: #f8f9fa; border-radius: 5px; padding: 20px; margin: 20px 0;">
				<p style="text-align: center;">Your verification code is:</p>
				<div style="background-color: #ffffff; padding: 15px; text-align: center; font-size: 24px; font-weight: bold; letter-spacing: 5px; border-radius: 5px; border: 1px solid #dee2e6;">%s</div>
				<p style="text-align: center; margin-top: 20px;">This code will expire in 10 minutes.</p>
			</div>
			<p style="color: #666; font-size: 12px; text-align: center;">If you didn't request this code, please ignore this email.</p>
		</div>`, code)
}

// LogSender logs codes instead of sending them — used in ENV=local.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) SendVerificationCode(_ context.Context, to, code string) error {
	s.logger.Info("verification code email (local dev)", "to", to, "code", code)
	return nil
}

// ResendSender delivers via the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

func (s *ResendSender) SendVerificationCode(ctx context.Context, to, code string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    htmlBody(code),
	}
	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// NewSender builds the Sender selected by EMAIL_PROVIDER.
func NewSender(cfg *config.Config, logger *slog.Logger) (Sender, error) {
	switch cfg.EmailProvider {
	case "smtp":
		return NewSMTPSender(cfg)
	case "resend":
		return &ResendSender{
			client: resend.NewClient(cfg.ResendAPIKey),
			from:   cfg.ResendFrom,
		}, nil
	default:
		return &LogSender{logger: logger}, nil
	}
}
