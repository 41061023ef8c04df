package comment

import (
	"strings"

	"github.com/docuvault/docuvault/internal"
)

// CreateCommentDTO represents the request payload for adding a comment.
type CreateCommentDTO struct {
	Content string `json:"content"`
}

func (dto CreateCommentDTO) Validate() error {
	if strings.TrimSpace(dto.Content) == "" {
		return internal.NewValidationError("content is required", internal.ErrCodeMissingContent)
	}
	return nil
}
