package testutil

import (
	"context"
	"io"

	domain "github.com/nexonoperations/tutorbill/internal/domain/pdf"
	"github.com/nexonoperations/tutorbill/internal/domain/session"
	"github.com/nexonoperations/tutorbill/internal/domain/student"
	"github.com/nexonoperations/tutorbill/internal/pdf"
	"github.com/stretchr/testify/mock"
)

var _ pdf.Generator = (*MockPDFGenerator)(nil)

type MockPDFGenerator struct {
	mock.Mock
}

func NewMockPDFGenerator() *MockPDFGenerator {
	return &MockPDFGenerator{}
}

// RenderInvoicePdf implements pdf.Generator.
func (m *MockPDFGenerator) RenderInvoicePdf(ctx context.Context, data *domain.InvoiceData) ([]byte, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// RenderInvoice implements pdf.Generator.
func (m *MockPDFGenerator) RenderInvoice(ctx context.Context, stu *student.Student, sessions []*session.Session, w io.Writer) error {
	args := m.Called(ctx, stu, sessions, w)
	return args.Error(0)
}
