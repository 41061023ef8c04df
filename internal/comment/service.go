package comment

import (
	"log/slog"
	"time"

	"github.com/docuvault/docuvault/internal/auth"
	"github.com/docuvault/docuvault/internal/file"
	"github.com/docuvault/docuvault/internal/user"
)

type Repository interface {
	Create(c *Comment) error
	GetByFileID(fileID int64) ([]*Comment, error)
}

// FileFinder is the slice of the file component needed to verify the target
// exists before commenting.
type FileFinder interface {
	GetByID(id int64) (*file.File, error)
}

type Service struct {
	repo   Repository
	files  FileFinder
	policy *auth.Policy
	logger *slog.Logger
}

func NewService(repo Repository, files FileFinder, policy *auth.Policy, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		files:  files,
		policy: policy,
		logger: logger,
	}
}

// Create appends review commentary to a file. Admin only; the author is
// always the acting admin, never client-supplied.
func (s *Service) Create(actor *user.User, fileID int64, dto CreateCommentDTO) (*Comment, error) {
	if err := s.policy.CanComment(actor); err != nil {
		s.logger.Warn("create comment denied", "file_id", fileID, "user_id", actor.ID)
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.files.GetByID(fileID); err != nil {
		return nil, err
	}

	c := &Comment{
		Content:   dto.Content,
		FileID:    fileID,
		AuthorID:  actor.ID,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(c); err != nil {
		s.logger.Error("failed to create comment", "error", err, "file_id", fileID)
		return nil, err
	}

	s.logger.Info("comment created", "comment_id", c.ID, "file_id", fileID, "author_id", actor.ID)
	return c, nil
}

// ListForFile returns a file's commentary, newest first. Open to every
// authenticated user.
func (s *Service) ListForFile(actor *user.User, fileID int64) ([]*Comment, error) {
	if err := s.policy.CanReadComments(actor); err != nil {
		return nil, err
	}

	comments, err := s.repo.GetByFileID(fileID)
	if err != nil {
		s.logger.Error("failed to list comments", "error", err, "file_id", fileID)
		return nil, err
	}
	if comments == nil {
		comments = []*Comment{}
	}

	return comments, nil
}
