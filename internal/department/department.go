package department

import (
	"time"
)

// Department is an organizational bucket that scopes file visibility and
// ownership for non-admin users. Rows are never deleted once files reference
// them.
type Department struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"column:name;uniqueIndex;not null"`
	Description string    `json:"description" gorm:"column:description"`
	Icon        string    `json:"icon" gorm:"column:icon;not null;default:'fas fa-building'"`
	Color       string    `json:"color" gorm:"column:color;not null;default:'blue'"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Department) TableName() string {
	return "departments"
}

func NewDepartment(name, description, icon, color string) *Department {
	if icon == "" {
		icon = "fas fa-building"
	}
	if color == "" {
		color = "blue"
	}
	return &Department{
		Name:        name,
		Description: description,
		Icon:        icon,
		Color:       color,
		CreatedAt:   time.Now(),
	}
}
