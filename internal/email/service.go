package email

import (
	"context"
	"fmt"

	"github.com/nexonoperations/tutorbill/internal/logger"
	"github.com/resend/resend-go/v2"
)

// Sender delivers rendered invoices to parents.
type Sender interface {
	SendInvoiceEmail(ctx context.Context, req SendInvoiceEmailRequest) (*SendEmailResponse, error)
}

// Email handles email operations
type Email struct {
	client *EmailClient
	logger *logger.Logger
}

// NewEmail creates a new email service
func NewEmail(client *EmailClient, logger *logger.Logger) Sender {
	return &Email{
		client: client,
		logger: logger,
	}
}

// SendInvoiceEmail sends an invoice email with the rendered PDF attached.
func (s *Email) SendInvoiceEmail(ctx context.Context, req SendInvoiceEmailRequest) (*SendEmailResponse, error) {
	if !s.client.IsEnabled() {
		s.logger.Warnw("email client is disabled, skipping invoice email",
			"to", req.ToAddress,
			"student", req.StudentName,
		)
		return &SendEmailResponse{
			Success: false,
			Error:   "email client is disabled",
		}, nil
	}

	subject := fmt.Sprintf("Faktuur: %s", req.StudentName)
	if req.InvoiceRef != "" {
		subject = fmt.Sprintf("Faktuur %s: %s", req.InvoiceRef, req.StudentName)
	}
	text := fmt.Sprintf("Goeie dag\n\nAangeheg is die faktuur vir %s se klasse.\n\nVriendelike groete", req.StudentName)

	attachments := []*resend.Attachment{
		{
			Filename:    req.FileName,
			Content:     req.Attachment,
			ContentType: "application/pdf",
		},
	}

	messageID, err := s.client.SendEmail(ctx, s.client.GetFromAddress(), req.ToAddress, subject, "", text, attachments)
	if err != nil {
		s.logger.Errorw("failed to send invoice email",
			"error", err,
			"to", req.ToAddress,
			"student", req.StudentName,
		)
		return &SendEmailResponse{
			Success: false,
			Error:   err.Error(),
		}, err
	}

	s.logger.Infow("invoice email sent",
		"message_id", messageID,
		"invoice_ref", req.InvoiceRef,
		"to", req.ToAddress,
		"student", req.StudentName,
		"file", req.FileName,
	)

	return &SendEmailResponse{
		MessageID: messageID,
		Success:   true,
	}, nil
}
