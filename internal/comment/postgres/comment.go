package postgres

import (
	"github.com/docuvault/docuvault/internal/comment"
	"gorm.io/gorm"
)

// CommentRepository implements comment.Repository using GORM
type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) comment.Repository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(c *comment.Comment) error {
	return r.db.Create(c).Error
}

func (r *CommentRepository) GetByFileID(fileID int64) ([]*comment.Comment, error) {
	var comments []*comment.Comment
	err := r.db.Where("file_id = ?", fileID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}
