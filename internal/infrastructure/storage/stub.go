// Package storage provides object storage implementations for invoice files.
package storage

import (
	"context"
	"errors"
	"io"
	"sync"

	appbudget "github.com/Whapy-Dev/Whapy-CRM-sub000/internal/application/budget"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/shared/valueobject"
)

// StubInvoiceStore is an in-memory implementation of InvoiceStorage.
// Use this for development until a real storage backend is configured.
type StubInvoiceStore struct {
	mu      sync.RWMutex
	bucket  string
	objects map[string][]byte
}

// NewStubInvoiceStore creates a new StubInvoiceStore
func NewStubInvoiceStore() *StubInvoiceStore {
	return &StubInvoiceStore{
		bucket:  "stub-invoices",
		objects: make(map[string][]byte),
	}
}

// Ensure StubInvoiceStore implements InvoiceStorage
var _ appbudget.InvoiceStorage = (*StubInvoiceStore)(nil)

// Store keeps the object in memory and returns a reference to it
func (s *StubInvoiceStore) Store(ctx context.Context, key string, content io.Reader, contentType string) (valueobject.AttachmentRef, error) {
	if key == "" {
		return valueobject.AttachmentRef{}, errors.New("storage key is required")
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return valueobject.AttachmentRef{}, err
	}

	s.mu.Lock()
	s.objects[key] = data
	s.mu.Unlock()

	return valueobject.NewAttachmentRef(s.bucket, key)
}

// Delete removes the object the reference points at
func (s *StubInvoiceStore) Delete(ctx context.Context, ref valueobject.AttachmentRef) error {
	if ref.IsZero() {
		return errors.New("attachment reference is required")
	}

	s.mu.Lock()
	delete(s.objects, ref.Key)
	s.mu.Unlock()

	return nil
}

// Get returns a stored object (for testing)
func (s *StubInvoiceStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	return data, ok
}

// Size returns the number of stored objects (for testing)
func (s *StubInvoiceStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
