package service

import (
	"testing"
	"time"

	"github.com/nexonoperations/tutorbill/internal/api/dto"
	pdfdomain "github.com/nexonoperations/tutorbill/internal/domain/pdf"
	"github.com/nexonoperations/tutorbill/internal/domain/session"
	"github.com/nexonoperations/tutorbill/internal/domain/student"
	ierr "github.com/nexonoperations/tutorbill/internal/errors"
	"github.com/nexonoperations/tutorbill/internal/s3"
	"github.com/nexonoperations/tutorbill/internal/testutil"
	"github.com/nexonoperations/tutorbill/internal/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service      InvoiceService
	pdfGenerator *testutil.MockPDFGenerator
	docStore     *testutil.InMemoryDocumentStore
	emailSender  *testutil.FakeEmailSender
	student      *student.Student
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	s.pdfGenerator = testutil.NewMockPDFGenerator()
	s.docStore = testutil.NewInMemoryDocumentStore()
	s.emailSender = testutil.NewFakeEmailSender()

	stores := s.GetStores()
	s.service = NewInvoiceService(ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		PDFGenerator: s.pdfGenerator,
		S3:           s.docStore,
		EmailSender:  s.emailSender,
		StudentRepo:  stores.StudentRepo,
		SessionRepo:  stores.SessionRepo,
	})

	s.student = &student.Student{
		ID:          types.GenerateUUIDWithPrefix(types.UUIDPrefixStudent),
		Name:        "Jan van der Merwe",
		Grade:       "Graad 10",
		ParentEmail: "ouers@example.com",
	}
	s.NoError(stores.StudentRepo.Upsert(s.GetContext(), s.student))
}

func (s *InvoiceServiceSuite) seedSessions() []*session.Session {
	sessions := []*session.Session{
		{
			ID:        types.GenerateUUIDWithPrefix(types.UUIDPrefixSession),
			StudentID: s.student.ID,
			Subject:   "Wiskunde",
			Mode:      "Individual",
			Hours:     2.0,
			Date:      time.Date(2026, 3, 12, 15, 0, 0, 0, time.UTC),
		},
		{
			ID:        types.GenerateUUIDWithPrefix(types.UUIDPrefixSession),
			StudentID: s.student.ID,
			Subject:   "Wetenskap",
			Mode:      "group",
			Hours:     1.5,
			Date:      time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC),
		},
		{
			// no hours recorded, excluded from billing
			ID:        types.GenerateUUIDWithPrefix(types.UUIDPrefixSession),
			StudentID: s.student.ID,
			Subject:   "Afrikaans",
			Mode:      "group",
			Date:      time.Date(2026, 3, 15, 15, 0, 0, 0, time.UTC),
		},
	}
	for _, sess := range sessions {
		s.NoError(s.GetStores().SessionRepo.Upsert(s.GetContext(), sess))
	}
	return sessions
}

func (s *InvoiceServiceSuite) TestGetInvoiceSummary() {
	s.seedSessions()

	resp, err := s.service.GetInvoiceSummary(s.GetContext(), s.student.ID)
	s.NoError(err)
	s.Len(resp.Lines, 2)
	s.Equal("3.5", resp.TotalHours)
	s.Equal("1065", resp.TotalDue)
	s.Equal("Wiskunde", resp.Lines[0].Subject)
	s.Equal("individual", resp.Lines[0].Mode)
	s.Equal("720", resp.Lines[0].Amount)
	s.Equal("345", resp.Lines[1].Amount)
}

func (s *InvoiceServiceSuite) TestGetInvoiceSummaryStudentNotFound() {
	_, err := s.service.GetInvoiceSummary(s.GetContext(), "stu_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestPreviewInvoiceDoesNotBill() {
	sessions := s.seedSessions()
	s.pdfGenerator.On("RenderInvoicePdf", mock.Anything, mock.Anything).
		Return([]byte("%PDF-preview"), nil)

	resp, err := s.service.PreviewInvoice(s.GetContext(), s.student.ID)
	s.NoError(err)
	s.Equal([]byte("%PDF-preview"), resp.Document)
	s.Regexp(`^Jan_van_der_Merwe_faktuur_\d{2}-\d{2}-\d{4}\.pdf$`, resp.FileName)

	// nothing delivered, nothing archived, nothing marked as billed
	s.Empty(s.emailSender.Sent)
	s.Zero(s.docStore.Count())
	for _, sess := range sessions {
		stored, err := s.GetStores().SessionRepo.Get(s.GetContext(), s.student.ID, sess.ID)
		s.NoError(err)
		s.False(stored.Sent)
	}
}

func (s *InvoiceServiceSuite) TestSendInvoice() {
	sessions := s.seedSessions()
	s.pdfGenerator.On("RenderInvoicePdf", mock.Anything, mock.Anything).
		Return([]byte("%PDF-invoice"), nil)

	resp, err := s.service.SendInvoice(s.GetContext(), s.student.ID)
	s.NoError(err)
	s.Equal(s.student.ID, resp.StudentID)
	s.Equal(2, resp.SessionsBilled)
	s.NotEmpty(resp.MessageID)
	s.Equal("3.5", resp.TotalHours)
	s.Equal("1065", resp.TotalDue)
	s.Regexp(`^FKT-[A-Z0-9_]{1,8}$`, resp.InvoiceRef)

	// archived and emailed under the same artifact name, with a retrieval
	// URL for the archived copy
	s.Equal(1, s.docStore.Count())
	exists, err := s.docStore.Exists(s.GetContext(), resp.FileName, s3.DocumentTypeInvoice)
	s.NoError(err)
	s.True(exists)
	s.NotEmpty(resp.ArchiveURL)
	s.Contains(resp.ArchiveURL, resp.FileName)

	s.Len(s.emailSender.Sent, 1)
	sent := s.emailSender.Sent[0]
	s.Equal("ouers@example.com", sent.ToAddress)
	s.Equal(resp.FileName, sent.FileName)
	s.Equal(resp.InvoiceRef, sent.InvoiceRef)
	s.Equal([]byte("%PDF-invoice"), sent.Attachment)

	// the two billable sessions are marked, the invalid one stays unsent
	for i, sess := range sessions {
		stored, err := s.GetStores().SessionRepo.Get(s.GetContext(), s.student.ID, sess.ID)
		s.NoError(err)
		s.Equal(i < 2, stored.Sent)
	}
}

func (s *InvoiceServiceSuite) TestSendInvoiceDoesNotRebill() {
	s.seedSessions()
	s.pdfGenerator.On("RenderInvoicePdf", mock.Anything, mock.Anything).
		Return([]byte("%PDF-invoice"), nil)

	first, err := s.service.SendInvoice(s.GetContext(), s.student.ID)
	s.NoError(err)
	s.Equal(2, first.SessionsBilled)

	second, err := s.service.SendInvoice(s.GetContext(), s.student.ID)
	s.NoError(err)
	s.Zero(second.SessionsBilled)
	s.Equal("0", second.TotalDue)
	s.NotEmpty(second.InvoiceRef)

	summary, err := s.service.GetInvoiceSummary(s.GetContext(), s.student.ID)
	s.NoError(err)
	s.Empty(summary.Lines)
	s.Equal("0", summary.TotalDue)
}

func (s *InvoiceServiceSuite) TestSendInvoiceRenderFailure() {
	sessions := s.seedSessions()
	s.pdfGenerator.On("RenderInvoicePdf", mock.Anything, mock.Anything).
		Return(nil, ierr.NewError("typst compilation failed").Mark(ierr.ErrSystem))

	_, err := s.service.SendInvoice(s.GetContext(), s.student.ID)
	s.Error(err)

	// delivery never started, so nothing is marked as billed
	s.Empty(s.emailSender.Sent)
	s.Zero(s.docStore.Count())
	for _, sess := range sessions {
		stored, err := s.GetStores().SessionRepo.Get(s.GetContext(), s.student.ID, sess.ID)
		s.NoError(err)
		s.False(stored.Sent)
	}
}

func (s *InvoiceServiceSuite) TestSendInvoiceEmailFailure() {
	sessions := s.seedSessions()
	s.pdfGenerator.On("RenderInvoicePdf", mock.Anything, mock.Anything).
		Return([]byte("%PDF-invoice"), nil)
	s.emailSender.FailFor["ouers@example.com"] = true

	_, err := s.service.SendInvoice(s.GetContext(), s.student.ID)
	s.Error(err)

	// a failed delivery must leave the sessions billable
	for _, sess := range sessions {
		stored, err := s.GetStores().SessionRepo.Get(s.GetContext(), s.student.ID, sess.ID)
		s.NoError(err)
		s.False(stored.Sent)
	}
}

func (s *InvoiceServiceSuite) TestSendInvoiceArchiveFailure() {
	sessions := s.seedSessions()
	s.pdfGenerator.On("RenderInvoicePdf", mock.Anything, mock.Anything).
		Return([]byte("%PDF-invoice"), nil)
	s.docStore.UploadErr = ierr.NewError("bucket unavailable").Mark(ierr.ErrHTTPClient)

	_, err := s.service.SendInvoice(s.GetContext(), s.student.ID)
	s.Error(err)

	// no email goes out without an archived copy, and nothing is billed
	s.Empty(s.emailSender.Sent)
	for _, sess := range sessions {
		stored, err := s.GetStores().SessionRepo.Get(s.GetContext(), s.student.ID, sess.ID)
		s.NoError(err)
		s.False(stored.Sent)
	}
}

func (s *InvoiceServiceSuite) TestSendBulkInvoicesPartialSuccess() {
	stores := s.GetStores()

	students := []*student.Student{s.student}
	for _, name := range []string{"Pieter Botha", "Annelie Smit"} {
		stu := &student.Student{
			ID:          types.GenerateUUIDWithPrefix(types.UUIDPrefixStudent),
			Name:        name,
			Grade:       "Graad 11",
			ParentEmail: "ouers+" + name[:6] + "@example.com",
		}
		s.NoError(stores.StudentRepo.Upsert(s.GetContext(), stu))
		students = append(students, stu)
	}
	s.seedSessions()
	for _, stu := range students[1:] {
		s.NoError(stores.SessionRepo.Upsert(s.GetContext(), &session.Session{
			ID:        types.GenerateUUIDWithPrefix(types.UUIDPrefixSession),
			StudentID: stu.ID,
			Subject:   "Wiskunde",
			Mode:      "individual",
			Hours:     1.0,
			Date:      time.Date(2026, 3, 20, 15, 0, 0, 0, time.UTC),
		}))
	}

	// rendering fails for exactly one student
	failed := students[1]
	s.pdfGenerator.On("RenderInvoicePdf", mock.Anything, mock.MatchedBy(func(data *pdfdomain.InvoiceData) bool {
		return data.Student.Name == failed.Name
	})).Return(nil, ierr.NewError("output sink write failed").Mark(ierr.ErrSystem))
	s.pdfGenerator.On("RenderInvoicePdf", mock.Anything, mock.Anything).
		Return([]byte("%PDF-invoice"), nil)

	resp, err := s.service.SendBulkInvoices(s.GetContext(), dto.SendBulkInvoicesRequest{
		StudentIDs: []string{students[0].ID, students[1].ID, students[2].ID},
	})
	s.NoError(err)
	s.Equal(2, resp.SentCount)
	s.Len(resp.Failures, 1)
	s.Equal(failed.ID, resp.Failures[0].StudentID)
	s.Contains(resp.Failures[0].Error, "output sink write failed")

	// the two successful students still got their artifacts
	s.Equal(2, s.docStore.Count())
	s.Len(s.emailSender.Sent, 2)
}

func (s *InvoiceServiceSuite) TestSendBulkInvoicesValidation() {
	_, err := s.service.SendBulkInvoices(s.GetContext(), dto.SendBulkInvoicesRequest{})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}
