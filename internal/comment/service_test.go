package comment_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/docuvault/docuvault/internal"
	"github.com/docuvault/docuvault/internal/auth"
	"github.com/docuvault/docuvault/internal/comment"
	"github.com/docuvault/docuvault/internal/file"
	"github.com/docuvault/docuvault/internal/user"
)

func TestCommentService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Comment Service Suite")
}

// Mock repository for testing
type mockCommentRepository struct {
	comments    map[int64][]*comment.Comment
	createError error
	nextID      int64
}

func newMockCommentRepository() *mockCommentRepository {
	return &mockCommentRepository{
		comments: make(map[int64][]*comment.Comment),
		nextID:   1,
	}
}

func (m *mockCommentRepository) Create(c *comment.Comment) error {
	if m.createError != nil {
		return m.createError
	}
	c.ID = m.nextID
	m.nextID++
	m.comments[c.FileID] = append(m.comments[c.FileID], c)
	return nil
}

func (m *mockCommentRepository) GetByFileID(fileID int64) ([]*comment.Comment, error) {
	return m.comments[fileID], nil
}

// Mock file finder for testing
type mockFileFinder struct {
	files map[int64]*file.File
}

func newMockFileFinder() *mockFileFinder {
	return &mockFileFinder{files: make(map[int64]*file.File)}
}

func (m *mockFileFinder) GetByID(id int64) (*file.File, error) {
	f, ok := m.files[id]
	if !ok {
		return nil, internal.ErrFileNotFound
	}
	return f, nil
}

var _ = Describe("CommentService", func() {
	var (
		service *comment.Service
		repo    *mockCommentRepository
		files   *mockFileFinder

		admin    *user.User
		deptUser *user.User
	)

	BeforeEach(func() {
		repo = newMockCommentRepository()
		files = newMockFileFinder()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = comment.NewService(repo, files, auth.NewPolicy(), logger)

		files.files[1] = &file.File{ID: 1, Title: "Q1 Report", Status: file.StatusPending}

		finance := "Finance"
		admin = &user.User{ID: "a1", Role: user.RoleAdmin}
		deptUser = &user.User{ID: "u1", Role: user.RoleDepartment, DepartmentName: &finance}
	})

	Describe("Create", func() {
		It("should let an admin comment on an existing file", func() {
			c, err := service.Create(admin, 1, comment.CreateCommentDTO{Content: "needs a cover page"})

			Expect(err).NotTo(HaveOccurred())
			Expect(c.FileID).To(Equal(int64(1)))
			Expect(c.AuthorID).To(Equal("a1"))
			Expect(c.Content).To(Equal("needs a cover page"))
		})

		It("should reject non-admin authors", func() {
			_, err := service.Create(deptUser, 1, comment.CreateCommentDTO{Content: "hi"})

			Expect(err).To(Equal(internal.ErrAdminRequired))
			Expect(repo.comments).To(BeEmpty())
		})

		It("should reject empty content", func() {
			_, err := service.Create(admin, 1, comment.CreateCommentDTO{Content: "   "})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeMissingContent))
		})

		It("should fail when the file does not exist", func() {
			_, err := service.Create(admin, 999, comment.CreateCommentDTO{Content: "hi"})
			Expect(err).To(Equal(internal.ErrFileNotFound))
		})
	})

	Describe("ListForFile", func() {
		It("should be readable by any authenticated user", func() {
			_, err := service.Create(admin, 1, comment.CreateCommentDTO{Content: "first"})
			Expect(err).NotTo(HaveOccurred())

			comments, err := service.ListForFile(deptUser, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(comments).To(HaveLen(1))
		})

		It("should return an empty slice when there is no commentary", func() {
			comments, err := service.ListForFile(deptUser, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(comments).NotTo(BeNil())
			Expect(comments).To(BeEmpty())
		})
	})
})
