package file

import (
	"io"

	"github.com/docuvault/docuvault/internal"
)

// UploadDTO carries one multipart upload into the service. Content is the
// file part's stream; Size and declared MimeType come from the part header
// and are validated before any persistence.
type UploadDTO struct {
	Title       string
	Description string
	Category    string
	Filename    string
	MimeType    string
	Size        int64
	Content     io.Reader
}

func (dto UploadDTO) Validate() error {
	if dto.Title == "" {
		return internal.NewValidationError("title is required", internal.ErrCodeMissingTitle)
	}
	if dto.Content == nil || dto.Filename == "" {
		return internal.NewValidationError("no file uploaded", internal.ErrCodeMissingFile)
	}
	if dto.Size <= 0 {
		return internal.NewValidationError("file is empty", internal.ErrCodeMissingFile)
	}
	if dto.Size > MaxUploadSize {
		return internal.NewValidationError("file exceeds the 50MB limit", internal.ErrCodeFileTooLarge)
	}
	return nil
}

// UpdateStatusDTO represents the status transition request.
type UpdateStatusDTO struct {
	Status string `json:"status"`
}

func (dto UpdateStatusDTO) Validate() error {
	if !Status(dto.Status).Valid() {
		return internal.NewValidationError("invalid status", internal.ErrCodeInvalidFileStatus)
	}
	return nil
}

// ListFilter is the repository-level query shape. The service fills
// DepartmentID/UploadedBy from policy scope for non-admin callers; admin
// callers control DepartmentID freely.
type ListFilter struct {
	DepartmentID *int64
	UploadedBy   string
	Status       string
	Category     string
	Search       string
	Limit        int
	Offset       int
}
