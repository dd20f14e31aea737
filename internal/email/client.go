package email

import (
	"context"
	"fmt"

	"github.com/nexonoperations/tutorbill/internal/config"
	"github.com/resend/resend-go/v2"
)

// EmailClient represents an email client wrapper
type EmailClient struct {
	client      *resend.Client
	enabled     bool
	fromAddress string
	replyTo     string
}

// NewEmailClient creates a new email client. A disabled or key-less
// configuration yields a disabled client rather than an error.
func NewEmailClient(cfg *config.Configuration) *EmailClient {
	if !cfg.Email.Enabled || cfg.Email.APIKey == "" {
		return &EmailClient{
			enabled: false,
		}
	}

	return &EmailClient{
		client:      resend.NewClient(cfg.Email.APIKey),
		enabled:     true,
		fromAddress: cfg.Email.FromAddress,
		replyTo:     cfg.Email.ReplyTo,
	}
}

// IsEnabled returns whether the email client is enabled
func (c *EmailClient) IsEnabled() bool {
	return c.enabled
}

// GetFromAddress returns the default from address
func (c *EmailClient) GetFromAddress() string {
	return c.fromAddress
}

// SendEmail sends an email, optionally with attachments
func (c *EmailClient) SendEmail(ctx context.Context, from, to, subject, htmlContent, textContent string, attachments []*resend.Attachment) (string, error) {
	if !c.enabled {
		return "", fmt.Errorf("email client is disabled")
	}

	params := &resend.SendEmailRequest{
		From:        from,
		To:          []string{to},
		Subject:     subject,
		Html:        htmlContent,
		Text:        textContent,
		Attachments: attachments,
	}

	if c.replyTo != "" {
		params.ReplyTo = c.replyTo
	}

	sent, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	return sent.Id, nil
}
