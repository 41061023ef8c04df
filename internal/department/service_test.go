package department_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/docuvault/docuvault/internal"
	"github.com/docuvault/docuvault/internal/auth"
	"github.com/docuvault/docuvault/internal/department"
	"github.com/docuvault/docuvault/internal/user"
)

func TestDepartmentService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Department Service Suite")
}

// Mock repository for testing
type mockDepartmentRepository struct {
	departments map[string]*department.Department
	getAllError error
	nextID      int64
}

func newMockDepartmentRepository() *mockDepartmentRepository {
	return &mockDepartmentRepository{
		departments: make(map[string]*department.Department),
		nextID:      1,
	}
}

func (m *mockDepartmentRepository) GetAll() ([]*department.Department, error) {
	if m.getAllError != nil {
		return nil, m.getAllError
	}
	var result []*department.Department
	for _, d := range m.departments {
		result = append(result, d)
	}
	return result, nil
}

func (m *mockDepartmentRepository) GetByID(id int64) (*department.Department, error) {
	for _, d := range m.departments {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

func (m *mockDepartmentRepository) GetByName(name string) (*department.Department, error) {
	return m.departments[name], nil
}

func (m *mockDepartmentRepository) Create(d *department.Department) error {
	d.ID = m.nextID
	m.nextID++
	m.departments[d.Name] = d
	return nil
}

var _ = Describe("DepartmentService", func() {
	var (
		service *department.Service
		repo    *mockDepartmentRepository

		admin    *user.User
		deptUser *user.User
	)

	BeforeEach(func() {
		repo = newMockDepartmentRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = department.NewService(repo, auth.NewPolicy(), logger)

		finance := "Finance"
		admin = &user.User{ID: "a1", Role: user.RoleAdmin}
		deptUser = &user.User{ID: "u1", Role: user.RoleDepartment, DepartmentName: &finance}
	})

	Describe("CreateDepartment", func() {
		It("should let an admin create a department with defaults", func() {
			d, err := service.CreateDepartment(admin, department.CreateDepartmentDTO{Name: "Finance"})

			Expect(err).NotTo(HaveOccurred())
			Expect(d.ID).To(BeNumerically(">", 0))
			Expect(d.Icon).To(Equal("fas fa-building"))
			Expect(d.Color).To(Equal("blue"))
		})

		It("should reject non-admin callers", func() {
			_, err := service.CreateDepartment(deptUser, department.CreateDepartmentDTO{Name: "Finance"})
			Expect(err).To(Equal(internal.ErrAdminRequired))
		})

		It("should reject an empty name", func() {
			_, err := service.CreateDepartment(admin, department.CreateDepartmentDTO{})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("should reject a duplicate name", func() {
			_, err := service.CreateDepartment(admin, department.CreateDepartmentDTO{Name: "Finance"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CreateDepartment(admin, department.CreateDepartmentDTO{Name: "Finance"})
			Expect(err).To(Equal(internal.ErrDepartmentExists))
		})
	})

	Describe("GetAllDepartments", func() {
		It("should return every department", func() {
			_, err := service.CreateDepartment(admin, department.CreateDepartmentDTO{Name: "Finance"})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.CreateDepartment(admin, department.CreateDepartmentDTO{Name: "Legal"})
			Expect(err).NotTo(HaveOccurred())

			departments, err := service.GetAllDepartments()
			Expect(err).NotTo(HaveOccurred())
			Expect(departments).To(HaveLen(2))
		})

		It("should surface repository failures", func() {
			repo.getAllError = errors.New("db down")

			_, err := service.GetAllDepartments()
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ResolveByName", func() {
		It("should map a department name to its row", func() {
			created, err := service.CreateDepartment(admin, department.CreateDepartmentDTO{Name: "Finance"})
			Expect(err).NotTo(HaveOccurred())

			resolved, err := service.ResolveByName("Finance")
			Expect(err).NotTo(HaveOccurred())
			Expect(resolved.ID).To(Equal(created.ID))
		})

		It("should return not found for unknown names", func() {
			_, err := service.ResolveByName("Ghost")
			Expect(err).To(Equal(internal.ErrDepartmentNotFound))
		})
	})

	Describe("GetByID", func() {
		It("should return not found for unknown ids", func() {
			_, err := service.GetByID(999)
			Expect(err).To(Equal(internal.ErrDepartmentNotFound))
		})
	})
})
