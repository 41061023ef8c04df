package stats_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/docuvault/docuvault/internal"
	"github.com/docuvault/docuvault/internal/auth"
	"github.com/docuvault/docuvault/internal/file"
	"github.com/docuvault/docuvault/internal/stats"
	"github.com/docuvault/docuvault/internal/user"
)

func TestStatsService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Stats Service Suite")
}

// Mock repository that derives aggregates from an in-memory file set
type mockStatsRepository struct {
	files []*file.File
}

func (m *mockStatsRepository) GlobalStats() (*stats.GlobalStats, error) {
	result := &stats.GlobalStats{}
	for _, f := range m.files {
		result.TotalFiles++
		result.TotalSize += f.Size
		switch f.Status {
		case file.StatusPending:
			result.PendingFiles++
		case file.StatusApproved:
			result.ApprovedFiles++
		case file.StatusRejected:
			result.RejectedFiles++
		}
	}
	return result, nil
}

func (m *mockStatsRepository) DepartmentStats(departmentID int64) (*stats.DepartmentStats, error) {
	result := &stats.DepartmentStats{DepartmentID: departmentID}
	for _, f := range m.files {
		if f.DepartmentID != departmentID {
			continue
		}
		result.FileCount++
		result.TotalSize += f.Size
		if f.Status == file.StatusPending {
			result.PendingCount++
		}
	}
	return result, nil
}

var _ = Describe("StatsService", func() {
	var (
		service *stats.Service
		repo    *mockStatsRepository

		admin    *user.User
		deptUser *user.User
	)

	BeforeEach(func() {
		repo = &mockStatsRepository{
			files: []*file.File{
				{ID: 1, Size: 100, Status: file.StatusPending, DepartmentID: 7},
				{ID: 2, Size: 200, Status: file.StatusApproved, DepartmentID: 7},
				{ID: 3, Size: 300, Status: file.StatusRejected, DepartmentID: 8},
				{ID: 4, Size: 400, Status: file.StatusPending, DepartmentID: 8},
			},
		}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = stats.NewService(repo, auth.NewPolicy(), logger)

		finance := "Finance"
		admin = &user.User{ID: "a1", Role: user.RoleAdmin}
		deptUser = &user.User{ID: "u1", Role: user.RoleDepartment, DepartmentName: &finance}
	})

	Describe("Global", func() {
		It("should partition every file by status", func() {
			result, err := service.Global(admin)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.TotalFiles).To(Equal(int64(4)))
			Expect(result.PendingFiles).To(Equal(int64(2)))
			Expect(result.ApprovedFiles).To(Equal(int64(1)))
			Expect(result.RejectedFiles).To(Equal(int64(1)))
			Expect(result.TotalSize).To(Equal(int64(1000)))
			Expect(result.PendingFiles + result.ApprovedFiles + result.RejectedFiles).To(Equal(result.TotalFiles))
		})

		It("should reject non-admin callers", func() {
			_, err := service.Global(deptUser)
			Expect(err).To(Equal(internal.ErrAdminRequired))
		})
	})

	Describe("ForDepartment", func() {
		It("should scope counts and byte totals to one department", func() {
			result, err := service.ForDepartment(deptUser, 7)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.DepartmentID).To(Equal(int64(7)))
			Expect(result.FileCount).To(Equal(int64(2)))
			Expect(result.TotalSize).To(Equal(int64(300)))
			Expect(result.PendingCount).To(Equal(int64(1)))
		})

		It("should be open to any authenticated user", func() {
			_, err := service.ForDepartment(deptUser, 8)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.ForDepartment(admin, 8)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should return zeroes for an empty department", func() {
			result, err := service.ForDepartment(admin, 99)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.FileCount).To(BeZero())
			Expect(result.TotalSize).To(BeZero())
			Expect(result.PendingCount).To(BeZero())
		})
	})
})
