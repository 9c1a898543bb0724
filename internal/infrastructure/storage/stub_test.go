package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubInvoiceStore_Store(t *testing.T) {
	store := NewStubInvoiceStore()
	ctx := context.Background()

	t.Run("stores an object and returns its reference", func(t *testing.T) {
		ref, err := store.Store(ctx, "invoices/abc/invoice.pdf", strings.NewReader("%PDF-1.4"), "application/pdf")
		require.NoError(t, err)
		assert.Equal(t, "stub-invoices", ref.Bucket)
		assert.Equal(t, "invoices/abc/invoice.pdf", ref.Key)

		data, ok := store.Get("invoices/abc/invoice.pdf")
		require.True(t, ok)
		assert.Equal(t, "%PDF-1.4", string(data))
	})

	t.Run("rejects an empty key", func(t *testing.T) {
		_, err := store.Store(ctx, "", strings.NewReader("x"), "")
		assert.Error(t, err)
	})
}

func TestStubInvoiceStore_Delete(t *testing.T) {
	store := NewStubInvoiceStore()
	ctx := context.Background()

	ref, err := store.Store(ctx, "invoices/abc/invoice.pdf", strings.NewReader("%PDF-1.4"), "application/pdf")
	require.NoError(t, err)
	require.Equal(t, 1, store.Size())

	require.NoError(t, store.Delete(ctx, ref))
	assert.Equal(t, 0, store.Size())

	t.Run("rejects a zero reference", func(t *testing.T) {
		assert.Error(t, store.Delete(ctx, valueobject.AttachmentRef{}))
	})
}
