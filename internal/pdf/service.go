package pdf

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/nexonoperations/tutorbill/internal/billing"
	"github.com/nexonoperations/tutorbill/internal/config"
	"github.com/nexonoperations/tutorbill/internal/domain/pdf"
	"github.com/nexonoperations/tutorbill/internal/domain/session"
	"github.com/nexonoperations/tutorbill/internal/domain/student"
	ierr "github.com/nexonoperations/tutorbill/internal/errors"
	"github.com/nexonoperations/tutorbill/internal/typst"
)

// Generator defines the interface for PDF generation operations
type Generator interface {
	// RenderInvoicePdf compiles a prepared invoice data model to PDF bytes
	RenderInvoicePdf(ctx context.Context, data *pdf.InvoiceData) ([]byte, error)

	// RenderInvoice aggregates the student's sessions and streams the
	// rendered invoice document to the given sink. It fails only when the
	// compiler or the sink fails; a student without billable sessions
	// renders a zero-total invoice.
	RenderInvoice(ctx context.Context, stu *student.Student, sessions []*session.Session, w io.Writer) error
}

type service struct {
	cfg   *config.Configuration
	typst typst.Compiler
}

// NewGenerator creates a new PDF service
func NewGenerator(cfg *config.Configuration, typst typst.Compiler) Generator {
	return &service{
		cfg:   cfg,
		typst: typst,
	}
}

const invoiceTemplate = "invoice.typ"

func (s *service) RenderInvoicePdf(ctx context.Context, data *pdf.InvoiceData) ([]byte, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to marshal invoice data").
			Mark(ierr.ErrSystem)
	}

	doc, err := s.typst.CompileTemplate(invoiceTemplate, jsonData)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to compile invoice template").
			Mark(ierr.ErrSystem)
	}

	return doc, nil
}

func (s *service) RenderInvoice(ctx context.Context, stu *student.Student, sessions []*session.Session, w io.Writer) error {
	comp := billing.Aggregate(sessions, billing.RateCard{
		Individual: s.cfg.Billing.IndividualRateDecimal(),
		Group:      s.cfg.Billing.GroupRateDecimal(),
	})

	data := NewInvoiceData(s.cfg, stu, comp, time.Now())

	doc, err := s.RenderInvoicePdf(ctx, data)
	if err != nil {
		return err
	}

	if _, err := w.Write(doc); err != nil {
		return ierr.WithError(err).
			WithHint("failed to write invoice document").
			Mark(ierr.ErrSystem)
	}

	return nil
}

// NewInvoiceData assembles the template data model for one invoice. All
// dates, amounts and mode labels are pre-formatted with the configured
// locale, so two calls with the same inputs produce identical layout data
// apart from the issue date.
func NewInvoiceData(cfg *config.Configuration, stu *student.Student, comp *billing.InvoiceComputation, now time.Time) *pdf.InvoiceData {
	locale := cfg.Billing.Locale

	rows := make([]pdf.RowData, len(comp.Lines))
	for i, line := range comp.Lines {
		rows[i] = pdf.RowData{
			Hours:     locale.FormatHours(line.Hours),
			Subject:   line.Session.Subject,
			ModeLabel: locale.ModeLabel(line.Session.BillingMode()),
			Date:      locale.FormatDate(line.Session.Date),
			Rate:      locale.FormatMoney(line.Rate),
			Amount:    locale.FormatMoney(line.Amount),
		}
	}

	return &pdf.InvoiceData{
		IssueDate:       locale.FormatDate(now),
		PaymentTermDays: cfg.Business.PaymentTermDays,
		Business: &pdf.BusinessInfo{
			Name:     cfg.Business.Name,
			Phone:    cfg.Business.Phone,
			Email:    cfg.Business.Email,
			Location: cfg.Business.Location,
		},
		Bank: &pdf.BankInfo{
			Name:          cfg.Business.Bank.Name,
			BranchCode:    cfg.Business.Bank.BranchCode,
			AccountName:   cfg.Business.Bank.AccountName,
			AccountNumber: cfg.Business.Bank.AccountNumber,
		},
		Student: &pdf.StudentInfo{
			Name:  stu.Name,
			Grade: stu.Grade,
		},
		Rows:       rows,
		TotalHours: locale.FormatHours(comp.TotalHours),
		TotalDue:   locale.FormatMoney(comp.TotalCost),
	}
}
