package service

import (
	"context"
	"sync"
	"time"

	"github.com/nexonoperations/tutorbill/internal/api/dto"
	"github.com/nexonoperations/tutorbill/internal/billing"
	pdfdomain "github.com/nexonoperations/tutorbill/internal/domain/pdf"
	"github.com/nexonoperations/tutorbill/internal/domain/session"
	"github.com/nexonoperations/tutorbill/internal/domain/student"
	"github.com/nexonoperations/tutorbill/internal/email"
	"github.com/nexonoperations/tutorbill/internal/pdf"
	"github.com/nexonoperations/tutorbill/internal/s3"
	"github.com/nexonoperations/tutorbill/internal/types"
	"github.com/samber/lo"
)

type InvoiceService interface {
	// GetInvoiceSummary aggregates the student's unbilled sessions without
	// rendering a document.
	GetInvoiceSummary(ctx context.Context, studentID string) (*dto.InvoiceSummaryResponse, error)

	// PreviewInvoice renders the invoice document without delivering it or
	// marking anything as billed.
	PreviewInvoice(ctx context.Context, studentID string) (*dto.InvoicePreviewResponse, error)

	// SendInvoice renders, archives and emails one invoice, then marks the
	// billed sessions so they never appear on a later invoice.
	SendInvoice(ctx context.Context, studentID string) (*dto.SendInvoiceResponse, error)

	// SendBulkInvoices runs one independent send per student concurrently
	// and reports a partial-success summary instead of failing fast.
	SendBulkInvoices(ctx context.Context, req dto.SendBulkInvoicesRequest) (*dto.SendBulkInvoicesResponse, error)
}

type invoiceService struct {
	ServiceParams
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{
		ServiceParams: params,
	}
}

func (s *invoiceService) rateCard() billing.RateCard {
	return billing.RateCard{
		Individual: s.Config.Billing.IndividualRateDecimal(),
		Group:      s.Config.Billing.GroupRateDecimal(),
	}
}

// unbilledSessions loads the student and the sessions not yet billed, in
// stored order.
func (s *invoiceService) unbilledSessions(ctx context.Context, studentID string) (*student.Student, []*session.Session, error) {
	stu, err := s.StudentRepo.Get(ctx, studentID)
	if err != nil {
		return nil, nil, err
	}

	sessions, err := s.SessionRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, nil, err
	}

	unbilled := lo.Filter(sessions, func(sess *session.Session, _ int) bool {
		return !sess.Sent
	})
	return stu, unbilled, nil
}

func (s *invoiceService) GetInvoiceSummary(ctx context.Context, studentID string) (*dto.InvoiceSummaryResponse, error) {
	stu, sessions, err := s.unbilledSessions(ctx, studentID)
	if err != nil {
		return nil, err
	}

	comp := billing.Aggregate(sessions, s.rateCard())
	return dto.NewInvoiceSummaryResponse(stu.ID, stu.Name, comp), nil
}

func (s *invoiceService) PreviewInvoice(ctx context.Context, studentID string) (*dto.InvoicePreviewResponse, error) {
	stu, sessions, err := s.unbilledSessions(ctx, studentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	comp := billing.Aggregate(sessions, s.rateCard())
	doc, err := s.PDFGenerator.RenderInvoicePdf(ctx, pdf.NewInvoiceData(s.Config, stu, comp, now))
	if err != nil {
		return nil, err
	}

	return &dto.InvoicePreviewResponse{
		FileName: pdfdomain.FileName(stu.Name, now),
		Document: doc,
	}, nil
}

func (s *invoiceService) SendInvoice(ctx context.Context, studentID string) (*dto.SendInvoiceResponse, error) {
	stu, sessions, err := s.unbilledSessions(ctx, studentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	comp := billing.Aggregate(sessions, s.rateCard())
	doc, err := s.PDFGenerator.RenderInvoicePdf(ctx, pdf.NewInvoiceData(s.Config, stu, comp, now))
	if err != nil {
		return nil, err
	}

	fileName := pdfdomain.FileName(stu.Name, now)
	invoiceRef := types.GenerateShortIDWithPrefix(types.InvoiceRefPrefix)

	var archiveURL string
	if s.S3 != nil {
		if err := s.S3.UploadDocument(ctx, s3.NewPdfDocument(fileName, doc, s3.DocumentTypeInvoice)); err != nil {
			return nil, err
		}
		archiveURL, err = s.S3.GetPresignedUrl(ctx, fileName, s3.DocumentTypeInvoice)
		if err != nil {
			return nil, err
		}
	}

	resp, err := s.EmailSender.SendInvoiceEmail(ctx, email.SendInvoiceEmailRequest{
		ToAddress:   stu.ParentEmail,
		StudentName: stu.Name,
		InvoiceRef:  invoiceRef,
		FileName:    fileName,
		Attachment:  doc,
	})
	if err != nil {
		return nil, err
	}

	billedIDs := lo.Map(comp.ValidSessions(), func(sess *session.Session, _ int) string {
		return sess.ID
	})
	if len(billedIDs) > 0 {
		if err := s.SessionRepo.MarkSent(ctx, stu.ID, billedIDs); err != nil {
			return nil, err
		}
	}

	s.Logger.Infow("sent invoice",
		"student_id", stu.ID,
		"invoice_ref", invoiceRef,
		"file_name", fileName,
		"sessions_billed", len(billedIDs),
		"total_due", comp.TotalCost.String())

	return &dto.SendInvoiceResponse{
		StudentID:      stu.ID,
		InvoiceRef:     invoiceRef,
		FileName:       fileName,
		ArchiveURL:     archiveURL,
		MessageID:      resp.MessageID,
		SessionsBilled: len(billedIDs),
		TotalHours:     comp.TotalHours.String(),
		TotalDue:       comp.TotalCost.String(),
	}, nil
}

type bulkSendResult struct {
	studentID string
	err       error
}

func (s *invoiceService) SendBulkInvoices(ctx context.Context, req dto.SendBulkInvoicesRequest) (*dto.SendBulkInvoicesResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	studentIDs := lo.Uniq(req.StudentIDs)
	results := make(chan bulkSendResult, len(studentIDs))

	// Each send touches only its own student's sessions and writes its own
	// uniquely-named artifact, so the sends need no coordination beyond the
	// result channel.
	var wg sync.WaitGroup
	for _, studentID := range studentIDs {
		wg.Add(1)
		go func(studentID string) {
			defer wg.Done()
			_, err := s.SendInvoice(ctx, studentID)
			results <- bulkSendResult{studentID: studentID, err: err}
		}(studentID)
	}
	wg.Wait()
	close(results)

	resp := &dto.SendBulkInvoicesResponse{}
	for result := range results {
		if result.err != nil {
			s.Logger.Errorw("bulk invoice send failed",
				"student_id", result.studentID,
				"error", result.err)
			resp.Failures = append(resp.Failures, &dto.BulkSendFailure{
				StudentID: result.studentID,
				Error:     result.err.Error(),
			})
			continue
		}
		resp.SentCount++
	}

	return resp, nil
}
