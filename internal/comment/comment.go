package comment

import (
	"time"
)

// Comment is one piece of review commentary on a file. Comments are
// append-only: no update or delete exists anywhere in the system.
type Comment struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"column:content;not null"`
	FileID    int64     `json:"file_id" gorm:"column:file_id;not null"`
	AuthorID  string    `json:"author_id" gorm:"column:author_id;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Comment) TableName() string {
	return "comments"
}
