package testutil

import (
	"context"
	"fmt"
	"sync"

	ierr "github.com/nexonoperations/tutorbill/internal/errors"
	"github.com/nexonoperations/tutorbill/internal/s3"
)

// InMemoryDocumentStore is an in-memory stand-in for the S3 archive
type InMemoryDocumentStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
	// UploadErr, when set, is returned by every UploadDocument call
	UploadErr error
}

func NewInMemoryDocumentStore() *InMemoryDocumentStore {
	return &InMemoryDocumentStore{
		docs: make(map[string][]byte),
	}
}

func docKey(name string, docType s3.DocumentType) string {
	return fmt.Sprintf("%s/%s", docType, name)
}

func (s *InMemoryDocumentStore) UploadDocument(ctx context.Context, document *s3.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.UploadErr != nil {
		return s.UploadErr
	}

	data := make([]byte, len(document.Data))
	copy(data, document.Data)
	s.docs[docKey(document.Name, document.Type)] = data
	return nil
}

func (s *InMemoryDocumentStore) GetDocument(ctx context.Context, name string, docType s3.DocumentType) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.docs[docKey(name, docType)]
	if !ok {
		return nil, ierr.NewErrorf("document not found: %s", name).
			WithHint("document not found").
			Mark(ierr.ErrNotFound)
	}
	return data, nil
}

func (s *InMemoryDocumentStore) GetPresignedUrl(ctx context.Context, name string, docType s3.DocumentType) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.docs[docKey(name, docType)]; !ok {
		return "", ierr.NewErrorf("document not found: %s", name).
			WithHint("document not found").
			Mark(ierr.ErrNotFound)
	}
	return fmt.Sprintf("https://example.test/%s", docKey(name, docType)), nil
}

func (s *InMemoryDocumentStore) Exists(ctx context.Context, name string, docType s3.DocumentType) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.docs[docKey(name, docType)]
	return ok, nil
}

// Count returns the number of stored documents.
func (s *InMemoryDocumentStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
