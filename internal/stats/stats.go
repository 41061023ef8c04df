package stats

// GlobalStats partitions every file row by lifecycle state.
type GlobalStats struct {
	TotalFiles    int64 `json:"totalFiles"`
	PendingFiles  int64 `json:"pendingFiles"`
	ApprovedFiles int64 `json:"approvedFiles"`
	RejectedFiles int64 `json:"rejectedFiles"`
	TotalSize     int64 `json:"totalSize"`
}

// DepartmentStats summarizes one department's files.
type DepartmentStats struct {
	DepartmentID int64 `json:"departmentId"`
	FileCount    int64 `json:"fileCount"`
	TotalSize    int64 `json:"totalSize"`
	PendingCount int64 `json:"pendingCount"`
}
