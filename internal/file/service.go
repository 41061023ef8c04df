package file

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/docuvault/docuvault/internal"
	"github.com/docuvault/docuvault/internal/auth"
	"github.com/docuvault/docuvault/internal/department"
	"github.com/docuvault/docuvault/internal/storage"
	"github.com/docuvault/docuvault/internal/user"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Repository defines the data access methods for file metadata rows.
type Repository interface {
	Create(f *File) error
	GetByID(id int64) (*File, error)
	List(filter ListFilter) ([]*File, error)
	UpdateStatus(id int64, status Status) (*File, error)
	Delete(id int64) error
}

// DepartmentResolver maps department names and ids to department rows.
type DepartmentResolver interface {
	ResolveByName(name string) (*department.Department, error)
}

// Service owns the file lifecycle: creation at pending, review transitions,
// deletion, and the department-scoped visibility rules around them.
type Service struct {
	repo        Repository
	departments DepartmentResolver
	blobs       storage.BlobStore
	policy      *auth.Policy
	logger      *slog.Logger
}

func NewService(repo Repository, departments DepartmentResolver, blobs storage.BlobStore, policy *auth.Policy, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		departments: departments,
		blobs:       blobs,
		policy:      policy,
		logger:      logger,
	}
}

// Upload validates everything before touching storage, then writes the blob
// first and the metadata row second. An orphaned blob left by a failed row
// insert is removed best-effort; an orphaned row pointing at missing bytes
// would not be recoverable, hence the ordering.
func (s *Service) Upload(ctx context.Context, actor *user.User, dto UploadDTO) (*File, error) {
	if err := s.policy.CanUpload(actor); err != nil {
		s.logger.Warn("upload denied: user has no department", "user_id", actor.ID)
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	mimeType, content, err := resolveMimeType(dto.MimeType, dto.Content)
	if err != nil {
		s.logger.Error("failed to sniff content type", "error", err, "user_id", actor.ID)
		return nil, internal.NewInternalError("failed to read upload", err)
	}
	if !MimeTypeAllowed(mimeType) {
		return nil, internal.NewValidationError("file type not allowed", internal.ErrCodeFileTypeNotAllowed)
	}

	dept, err := s.departments.ResolveByName(*actor.DepartmentName)
	if err != nil {
		s.logger.Error("upload: department resolution failed", "user_id", actor.ID, "department", *actor.DepartmentName, "error", err)
		return nil, internal.NewValidationError("department not found", internal.ErrCodeMissingDepartment)
	}

	storedFilename := uuid.NewString() + sanitizeExtension(dto.Filename)

	if err := s.blobs.Put(ctx, storedFilename, content, dto.Size, mimeType); err != nil {
		s.logger.Error("upload: blob write failed", "error", err, "stored_filename", storedFilename)
		return nil, internal.NewInternalError("failed to store file", err)
	}

	var category *string
	if dto.Category != "" {
		category = &dto.Category
	}

	now := time.Now()
	f := &File{
		Title:          dto.Title,
		Description:    dto.Description,
		Filename:       dto.Filename,
		StoredFilename: storedFilename,
		MimeType:       mimeType,
		Size:           dto.Size,
		Category:       category,
		Status:         StatusPending,
		UploadedBy:     actor.ID,
		DepartmentID:   dept.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(f); err != nil {
		s.logger.Error("upload: metadata write failed, removing blob", "error", err, "stored_filename", storedFilename)
		if rmErr := s.blobs.Remove(ctx, storedFilename); rmErr != nil {
			s.logger.Error("upload: orphaned blob cleanup failed", "error", rmErr, "stored_filename", storedFilename)
		}
		return nil, internal.NewInternalError("failed to save file metadata", err)
	}

	s.logger.Info("file uploaded",
		"file_id", f.ID,
		"user_id", actor.ID,
		"department_id", dept.ID,
		"size", f.Size,
		"mime_type", f.MimeType)

	return f, nil
}

// List returns files visible to the actor. Non-admin users are always
// restricted to their own uploads within their own department, regardless of
// the requested filter.
func (s *Service) List(actor *user.User, filter ListFilter) ([]*File, error) {
	if s.policy.MustScopeToOwn(actor) {
		filter.UploadedBy = actor.ID
		filter.DepartmentID = nil
		if actor.HasDepartment() {
			if dept, err := s.departments.ResolveByName(*actor.DepartmentName); err == nil {
				filter.DepartmentID = &dept.ID
			}
		}
	}

	files, err := s.repo.List(filter)
	if err != nil {
		s.logger.Error("failed to list files", "error", err, "user_id", actor.ID)
		return nil, err
	}

	return files, nil
}

func (s *Service) GetByID(id int64) (*File, error) {
	f, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, internal.ErrFileNotFound
	}
	return f, nil
}

// UpdateStatus overwrites the lifecycle state. Re-transitioning a reviewed
// file is allowed and idempotent (last write wins).
func (s *Service) UpdateStatus(actor *user.User, fileID int64, dto UpdateStatusDTO) (*File, error) {
	if err := s.policy.CanTransitionStatus(actor); err != nil {
		s.logger.Warn("status transition denied", "file_id", fileID, "user_id", actor.ID)
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	f, err := s.repo.UpdateStatus(fileID, Status(dto.Status))
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, internal.ErrFileNotFound
	}

	s.logger.Info("file status updated",
		"file_id", fileID,
		"status", dto.Status,
		"reviewed_by", actor.ID)

	return f, nil
}

// Delete removes the metadata row, then attempts to remove the physical
// object. A blob removal failure is logged and swallowed: metadata cleanup
// must not be blocked by storage trouble.
func (s *Service) Delete(ctx context.Context, actor *user.User, fileID int64) error {
	f, err := s.repo.GetByID(fileID)
	if err != nil {
		return err
	}
	if f == nil {
		return internal.ErrFileNotFound
	}

	if err := s.policy.CanDelete(actor, f.UploadedBy); err != nil {
		s.logger.Warn("delete denied", "file_id", fileID, "user_id", actor.ID, "uploaded_by", f.UploadedBy)
		return err
	}

	if err := s.repo.Delete(fileID); err != nil {
		s.logger.Error("failed to delete file row", "error", err, "file_id", fileID)
		return err
	}

	if err := s.blobs.Remove(ctx, f.StoredFilename); err != nil {
		s.logger.Error("failed to delete physical file", "error", err, "stored_filename", f.StoredFilename)
	}

	s.logger.Info("file deleted", "file_id", fileID, "deleted_by", actor.ID)
	return nil
}

// Download streams the blob behind a stored filename.
func (s *Service) Download(ctx context.Context, storedFilename string) (io.ReadCloser, *storage.BlobInfo, error) {
	rc, info, err := s.blobs.Open(ctx, storedFilename)
	if err != nil {
		if err == storage.ErrNotFound {
			return nil, nil, internal.ErrFileNotFound
		}
		return nil, nil, internal.NewInternalError("failed to open file", err)
	}
	return rc, info, nil
}

// resolveMimeType trusts a declared type from the allow-list; opaque or
// missing declarations are sniffed from the first bytes of the stream.
func resolveMimeType(declared string, content io.Reader) (string, io.Reader, error) {
	declared = strings.TrimSpace(strings.Split(declared, ";")[0])
	if declared != "" && declared != "application/octet-stream" {
		return declared, content, nil
	}

	header := make([]byte, 3072)
	n, err := io.ReadFull(content, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", nil, err
	}
	header = header[:n]

	detected := mimetype.Detect(header).String()
	detected = strings.Split(detected, ";")[0]

	return detected, io.MultiReader(bytes.NewReader(header), content), nil
}

// sanitizeExtension keeps only a safe lowercase extension from the original
// name; everything else about the stored key comes from the uuid.
func sanitizeExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || len(ext) > 10 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
