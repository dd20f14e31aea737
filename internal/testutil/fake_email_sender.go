package testutil

import (
	"context"
	"sync"

	"github.com/nexonoperations/tutorbill/internal/email"
	ierr "github.com/nexonoperations/tutorbill/internal/errors"
	"github.com/nexonoperations/tutorbill/internal/types"
)

// FakeEmailSender records every invoice email instead of delivering it.
// Set FailFor to force delivery failures for specific recipients.
type FakeEmailSender struct {
	mu      sync.Mutex
	Sent    []email.SendInvoiceEmailRequest
	FailFor map[string]bool
}

func NewFakeEmailSender() *FakeEmailSender {
	return &FakeEmailSender{
		FailFor: make(map[string]bool),
	}
}

func (f *FakeEmailSender) SendInvoiceEmail(ctx context.Context, req email.SendInvoiceEmailRequest) (*email.SendEmailResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailFor[req.ToAddress] {
		return nil, ierr.NewErrorf("delivery failed for %s", req.ToAddress).
			WithHint("email delivery failed").
			Mark(ierr.ErrHTTPClient)
	}

	f.Sent = append(f.Sent, req)
	return &email.SendEmailResponse{
		MessageID: types.GenerateUUIDWithPrefix("msg"),
		Success:   true,
	}, nil
}

// SentTo returns the number of emails recorded for the given address.
func (f *FakeEmailSender) SentTo(addr string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, req := range f.Sent {
		if req.ToAddress == addr {
			count++
		}
	}
	return count
}
