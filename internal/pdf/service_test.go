package pdf

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/nexonoperations/tutorbill/internal/billing"
	"github.com/nexonoperations/tutorbill/internal/config"
	"github.com/nexonoperations/tutorbill/internal/domain/pdf"
	"github.com/nexonoperations/tutorbill/internal/domain/session"
	"github.com/nexonoperations/tutorbill/internal/domain/student"
	"github.com/nexonoperations/tutorbill/internal/typst"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mocking the typst.Compiler for testing
type MockCompiler struct {
	mock.Mock
}

func (m *MockCompiler) Compile(opts typst.CompileOpts) (string, error) {
	args := m.Called(opts)
	return args.String(0), args.Error(1)
}

func (m *MockCompiler) CompileToBytes(opts typst.CompileOpts) ([]byte, error) {
	args := m.Called(opts)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCompiler) CompileTemplate(templateName string, data []byte, opts ...typst.CompileOptsBuilder) ([]byte, error) {
	args := m.Called(templateName, data, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCompiler) CleanupGeneratedFiles(files ...string) {
	m.Called(files)
}

func testStudent() *student.Student {
	return &student.Student{
		ID:          "stu_1",
		Name:        "Jane Doe",
		Grade:       "10",
		ParentEmail: "parent@example.com",
	}
}

func testSessions() []*session.Session {
	date := time.Date(2026, 3, 12, 14, 0, 0, 0, time.UTC)
	return []*session.Session{
		{ID: "ses_1", StudentID: "stu_1", Subject: "Wiskunde", Mode: "Individual", Hours: 2.0, Date: date},
		{ID: "ses_2", StudentID: "stu_1", Subject: "Wetenskap", Mode: "group", Hours: 1.5, Date: date},
		{ID: "ses_3", StudentID: "stu_1", Subject: "Wetenskap", Mode: "group", Hours: 0.0, Date: date},
	}
}

func TestRenderInvoicePdf(t *testing.T) {
	mockCompiler := new(MockCompiler)
	svc := NewGenerator(config.GetDefaultConfig(), mockCompiler)

	data := &pdf.InvoiceData{TotalDue: "R1065.00"}
	expected := []byte("mocked PDF content")

	jsonData, err := json.Marshal(data)
	require.NoError(t, err)

	mockCompiler.On("CompileTemplate", "invoice.typ", jsonData, mock.Anything).Return(expected, nil)

	doc, err := svc.RenderInvoicePdf(context.Background(), data)

	assert.NoError(t, err)
	assert.Equal(t, expected, doc)
	mockCompiler.AssertExpectations(t)
}

func TestRenderInvoicePdf_CompilerError(t *testing.T) {
	mockCompiler := new(MockCompiler)
	svc := NewGenerator(config.GetDefaultConfig(), mockCompiler)

	mockCompiler.On("CompileTemplate", "invoice.typ", mock.Anything, mock.Anything).
		Return(nil, errors.New("typst exploded"))

	_, err := svc.RenderInvoicePdf(context.Background(), &pdf.InvoiceData{})

	assert.Error(t, err)
}

func TestRenderInvoiceWritesToSink(t *testing.T) {
	mockCompiler := new(MockCompiler)
	svc := NewGenerator(config.GetDefaultConfig(), mockCompiler)

	expected := []byte("%PDF-1.7 fake")
	mockCompiler.On("CompileTemplate", "invoice.typ", mock.Anything, mock.Anything).Return(expected, nil)

	var sink bytes.Buffer
	err := svc.RenderInvoice(context.Background(), testStudent(), testSessions(), &sink)

	assert.NoError(t, err)
	assert.Equal(t, expected, sink.Bytes())
}

func TestNewInvoiceData(t *testing.T) {
	cfg := config.GetDefaultConfig()
	comp := billing.Aggregate(testSessions(), billing.RateCard{
		Individual: cfg.Billing.IndividualRateDecimal(),
		Group:      cfg.Billing.GroupRateDecimal(),
	})

	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	data := NewInvoiceData(cfg, testStudent(), comp, now)

	assert.Equal(t, "29/08/2026", data.IssueDate)
	assert.Equal(t, "Jane Doe", data.Student.Name)
	assert.Equal(t, "10", data.Student.Grade)
	assert.Equal(t, cfg.Business.Name, data.Business.Name)
	assert.Equal(t, cfg.Business.Bank.AccountNumber, data.Bank.AccountNumber)
	assert.Equal(t, 7, data.PaymentTermDays)

	// the zero-hour session is excluded
	require.Len(t, data.Rows, 2)
	assert.Equal(t, pdf.RowData{
		Hours:     "2.0",
		Subject:   "Wiskunde",
		ModeLabel: "Individueel",
		Date:      "12/03/2026",
		Rate:      "R360.00",
		Amount:    "R720.00",
	}, data.Rows[0])
	assert.Equal(t, pdf.RowData{
		Hours:     "1.5",
		Subject:   "Wetenskap",
		ModeLabel: "Groep",
		Date:      "12/03/2026",
		Rate:      "R230.00",
		Amount:    "R345.00",
	}, data.Rows[1])

	assert.Equal(t, "3.5", data.TotalHours)
	assert.Equal(t, "R1065.00", data.TotalDue)
}

func TestNewInvoiceDataZeroSessions(t *testing.T) {
	cfg := config.GetDefaultConfig()
	comp := billing.Aggregate(nil, billing.RateCard{
		Individual: cfg.Billing.IndividualRateDecimal(),
		Group:      cfg.Billing.GroupRateDecimal(),
	})

	data := NewInvoiceData(cfg, testStudent(), comp, time.Now())

	assert.Empty(t, data.Rows)
	assert.Equal(t, "0.0", data.TotalHours)
	assert.Equal(t, "R0.00", data.TotalDue)
}

func TestInvoiceFileName(t *testing.T) {
	now := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Jane_Doe_faktuur_29-08-2026.pdf", pdf.FileName("Jane Doe", now))
	assert.Equal(t, "Piet_van_der_Merwe_faktuur_29-08-2026.pdf", pdf.FileName(" Piet van der Merwe ", now))
}
