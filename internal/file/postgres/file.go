package postgres

import (
	"time"

	"github.com/docuvault/docuvault/internal/file"
	"gorm.io/gorm"
)

// FileRepository implements the file.Repository interface using GORM
type FileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) file.Repository {
	return &FileRepository{db: db}
}

func (r *FileRepository) Create(f *file.File) error {
	return r.db.Create(f).Error
}

func (r *FileRepository) GetByID(id int64) (*file.File, error) {
	var f file.File
	err := r.db.Where("id = ?", id).First(&f).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

// List applies the filter, newest uploads first.
func (r *FileRepository) List(filter file.ListFilter) ([]*file.File, error) {
	query := r.db.Model(&file.File{})

	if filter.DepartmentID != nil {
		query = query.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.UploadedBy != "" {
		query = query.Where("uploaded_by = ?", filter.UploadedBy)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?) OR LOWER(filename) LIKE LOWER(?)",
			pattern, pattern, pattern,
		)
	}

	query = query.Order("created_at DESC")

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var files []*file.File
	err := query.Find(&files).Error
	return files, err
}

// UpdateStatus overwrites the status column and returns the updated row, or
// nil when the id is unknown.
func (r *FileRepository) UpdateStatus(id int64, status file.Status) (*file.File, error) {
	result := r.db.Model(&file.File{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return r.GetByID(id)
}

func (r *FileRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&file.File{}).Error
}
