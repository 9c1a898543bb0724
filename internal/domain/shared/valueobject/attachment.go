package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// AttachmentRef is an opaque reference to a file in object storage.
// The bucket/key pair is the only thing the domain knows about the
// stored object; resolving it to bytes is the storage layer's job.
type AttachmentRef struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

// NewAttachmentRef creates an attachment reference
func NewAttachmentRef(bucket, key string) (AttachmentRef, error) {
	if bucket == "" || key == "" {
		return AttachmentRef{}, fmt.Errorf("attachment reference requires bucket and key")
	}
	return AttachmentRef{Bucket: bucket, Key: key}, nil
}

// IsZero returns true if the reference is unset
func (r AttachmentRef) IsZero() bool {
	return r.Bucket == "" && r.Key == ""
}

// String returns the reference in bucket/key form
func (r AttachmentRef) String() string {
	return r.Bucket + "/" + r.Key
}

// Value implements driver.Valuer, storing the reference as JSON
func (r AttachmentRef) Value() (driver.Value, error) {
	if r.IsZero() {
		return nil, nil
	}
	return json.Marshal(r)
}

// Scan implements sql.Scanner
func (r *AttachmentRef) Scan(value any) error {
	if value == nil {
		*r = AttachmentRef{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into AttachmentRef", value)
	}
	return json.Unmarshal(data, r)
}
