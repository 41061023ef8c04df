package department

import (
	"github.com/docuvault/docuvault/internal"
)

// CreateDepartmentDTO represents the request payload for creating a department
type CreateDepartmentDTO struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Color       string `json:"color,omitempty"`
}

func (dto CreateDepartmentDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationError("department name is required", internal.ErrCodeValidationFailed)
	}
	if len(dto.Name) > 100 {
		return internal.NewValidationError("department name must be at most 100 characters", internal.ErrCodeValidationFailed)
	}
	return nil
}
