package user

import (
	"time"

	"github.com/docuvault/docuvault/internal"
)

// Role is the closed set of roles this system understands. Role strings
// arriving from storage or tokens are validated through ParseRole at the
// identity-resolution boundary and never trusted as free-form input.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleDepartment Role = "department"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleDepartment:
		return Role(s), nil
	}
	return "", internal.NewValidationError("unknown role: "+s, internal.ErrCodeInvalidRole)
}

// User is created and refreshed by the identity adapter on each successful
// login; rows are never deleted by this system.
type User struct {
	ID              string    `json:"id" gorm:"primaryKey;column:id"`
	Email           string    `json:"email" gorm:"column:email;uniqueIndex;not null"`
	FirstName       string    `json:"first_name" gorm:"column:first_name"`
	LastName        string    `json:"last_name" gorm:"column:last_name"`
	ProfileImageURL string    `json:"profile_image_url" gorm:"column:profile_image_url"`
	PasswordHash    string    `json:"-" gorm:"column:password_hash"`
	Role            Role      `json:"role" gorm:"column:role;not null;default:department"`
	DepartmentName  *string   `json:"department_name,omitempty" gorm:"column:department_name"`
	CreatedAt       time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasDepartment reports whether the user belongs to a department bucket.
// Admin users have no department and see everything.
func (u *User) HasDepartment() bool {
	return u.DepartmentName != nil && *u.DepartmentName != ""
}

// UpsertProfile carries the profile fields refreshed on every login.
type UpsertProfile struct {
	ID              string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
}
