package postgres

import (
	"github.com/docuvault/docuvault/internal/file"
	"github.com/docuvault/docuvault/internal/stats"
	"gorm.io/gorm"
)

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) GlobalStats() (*stats.GlobalStats, error) {
	var row struct {
		TotalFiles    int64
		PendingFiles  int64
		ApprovedFiles int64
		RejectedFiles int64
		TotalSize     int64
	}

	err := r.db.Model(&file.File{}).
		Select(
			"COUNT(*) AS total_files, "+
				"COUNT(*) FILTER (WHERE status = ?) AS pending_files, "+
				"COUNT(*) FILTER (WHERE status = ?) AS approved_files, "+
				"COUNT(*) FILTER (WHERE status = ?) AS rejected_files, "+
				"COALESCE(SUM(size), 0) AS total_size",
			file.StatusPending, file.StatusApproved, file.StatusRejected,
		).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &stats.GlobalStats{
		TotalFiles:    row.TotalFiles,
		PendingFiles:  row.PendingFiles,
		ApprovedFiles: row.ApprovedFiles,
		RejectedFiles: row.RejectedFiles,
		TotalSize:     row.TotalSize,
	}, nil
}

func (r *StatsRepository) DepartmentStats(departmentID int64) (*stats.DepartmentStats, error) {
	var row struct {
		FileCount    int64
		TotalSize    int64
		PendingCount int64
	}

	err := r.db.Model(&file.File{}).
		Where("department_id = ?", departmentID).
		Select(
			"COUNT(*) AS file_count, "+
				"COALESCE(SUM(size), 0) AS total_size, "+
				"COUNT(*) FILTER (WHERE status = ?) AS pending_count",
			file.StatusPending,
		).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &stats.DepartmentStats{
		DepartmentID: departmentID,
		FileCount:    row.FileCount,
		TotalSize:    row.TotalSize,
		PendingCount: row.PendingCount,
	}, nil
}
