package dto

import (
	"github.com/nexonoperations/tutorbill/internal/billing"
	"github.com/nexonoperations/tutorbill/internal/validator"
)

// InvoiceLineResponse is one billable session line of an invoice summary.
// Amounts are decimal strings to avoid float drift on the wire.
type InvoiceLineResponse struct {
	SessionID string `json:"session_id"`
	Subject   string `json:"subject"`
	Mode      string `json:"mode"`
	Hours     string `json:"hours"`
	Rate      string `json:"rate"`
	Amount    string `json:"amount"`
}

// InvoiceSummaryResponse is the aggregate view of a student's unbilled
// sessions, without rendering a document.
type InvoiceSummaryResponse struct {
	StudentID   string                 `json:"student_id"`
	StudentName string                 `json:"student_name"`
	Lines       []*InvoiceLineResponse `json:"lines"`
	TotalHours  string                 `json:"total_hours"`
	TotalDue    string                 `json:"total_due"`
}

func NewInvoiceSummaryResponse(studentID, studentName string, comp *billing.InvoiceComputation) *InvoiceSummaryResponse {
	lines := make([]*InvoiceLineResponse, len(comp.Lines))
	for i, line := range comp.Lines {
		lines[i] = &InvoiceLineResponse{
			SessionID: line.Session.ID,
			Subject:   line.Session.Subject,
			Mode:      string(line.Session.BillingMode()),
			Hours:     line.Hours.String(),
			Rate:      line.Rate.String(),
			Amount:    line.Amount.String(),
		}
	}

	return &InvoiceSummaryResponse{
		StudentID:   studentID,
		StudentName: studentName,
		Lines:       lines,
		TotalHours:  comp.TotalHours.String(),
		TotalDue:    comp.TotalCost.String(),
	}
}

// InvoicePreviewResponse carries a rendered invoice document without
// delivering it or marking anything as billed.
type InvoicePreviewResponse struct {
	FileName string `json:"file_name"`
	Document []byte `json:"-"`
}

type SendInvoiceResponse struct {
	StudentID      string `json:"student_id"`
	InvoiceRef     string `json:"invoice_ref"`
	FileName       string `json:"file_name"`
	ArchiveURL     string `json:"archive_url,omitempty"`
	MessageID      string `json:"message_id,omitempty"`
	SessionsBilled int    `json:"sessions_billed"`
	TotalHours     string `json:"total_hours"`
	TotalDue       string `json:"total_due"`
}

type SendBulkInvoicesRequest struct {
	StudentIDs []string `json:"student_ids" binding:"required,min=1" validate:"required,min=1"`
}

func (r *SendBulkInvoicesRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type BulkSendFailure struct {
	StudentID string `json:"student_id"`
	Error     string `json:"error"`
}

// SendBulkInvoicesResponse is a partial-success summary: every requested
// student either counts toward SentCount or appears in Failures.
type SendBulkInvoicesResponse struct {
	SentCount int                `json:"sent_count"`
	Failures  []*BulkSendFailure `json:"failures,omitempty"`
}
