package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAttachmentRef(t *testing.T) {
	t.Run("creates reference with bucket and key", func(t *testing.T) {
		ref, err := NewAttachmentRef("invoices", "2026/08/inv-001.pdf")
		require.NoError(t, err)
		assert.Equal(t, "invoices", ref.Bucket)
		assert.Equal(t, "2026/08/inv-001.pdf", ref.Key)
		assert.False(t, ref.IsZero())
	})

	t.Run("rejects missing bucket or key", func(t *testing.T) {
		_, err := NewAttachmentRef("", "key")
		assert.Error(t, err)
		_, err = NewAttachmentRef("bucket", "")
		assert.Error(t, err)
	})
}

func TestAttachmentRefZero(t *testing.T) {
	var ref AttachmentRef
	assert.True(t, ref.IsZero())
}

func TestAttachmentRefScanValue(t *testing.T) {
	t.Run("round trip through driver value", func(t *testing.T) {
		ref, err := NewAttachmentRef("invoices", "a/b.pdf")
		require.NoError(t, err)

		val, err := ref.Value()
		require.NoError(t, err)

		var scanned AttachmentRef
		require.NoError(t, scanned.Scan(val))
		assert.Equal(t, ref, scanned)
	})

	t.Run("zero reference stores as null", func(t *testing.T) {
		var ref AttachmentRef
		val, err := ref.Value()
		require.NoError(t, err)
		assert.Nil(t, val)
	})

	t.Run("scan nil yields zero reference", func(t *testing.T) {
		ref := AttachmentRef{Bucket: "x", Key: "y"}
		require.NoError(t, ref.Scan(nil))
		assert.True(t, ref.IsZero())
	})

	t.Run("scan invalid type", func(t *testing.T) {
		var ref AttachmentRef
		assert.Error(t, ref.Scan(42))
	})
}
