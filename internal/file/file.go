package file

import (
	"time"
)

// Status is the file lifecycle state. Every file enters at pending; approve
// and reject are the only transitions. The current design treats re-review
// as a pure overwrite, so transitioning an already-reviewed file is
// idempotent rather than an error.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// MaxUploadSize caps uploads at 50 MiB, checked before any persistence.
const MaxUploadSize = 50 * 1024 * 1024

// allowedMimeTypes is the upload allow-list. Anything else is rejected at
// the boundary before a blob or row is written.
var allowedMimeTypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/png":       {},
	"video/mp4":       {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         {},
}

func MimeTypeAllowed(mimeType string) bool {
	_, ok := allowedMimeTypes[mimeType]
	return ok
}

// File is the metadata row of one uploaded document. Filename is the
// user-supplied original and untrusted; StoredFilename is the generated key
// into physical storage and the only value ever used for blob lookup.
// UploadedBy and DepartmentID are fixed at creation.
type File struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	Title          string    `json:"title" gorm:"column:title;not null"`
	Description    string    `json:"description" gorm:"column:description"`
	Filename       string    `json:"filename" gorm:"column:filename;not null"`
	StoredFilename string    `json:"stored_filename" gorm:"column:stored_filename;uniqueIndex;not null"`
	MimeType       string    `json:"mime_type" gorm:"column:mime_type;not null"`
	Size           int64     `json:"size" gorm:"column:size;not null"`
	Category       *string   `json:"category,omitempty" gorm:"column:category"`
	Status         Status    `json:"status" gorm:"column:status;not null;default:pending"`
	UploadedBy     string    `json:"uploaded_by" gorm:"column:uploaded_by;not null"`
	DepartmentID   int64     `json:"department_id" gorm:"column:department_id;not null"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (File) TableName() string {
	return "files"
}
