package department_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/docuvault/docuvault/internal/auth"
	"github.com/docuvault/docuvault/internal/department"
	departmentPostgres "github.com/docuvault/docuvault/internal/department/postgres"
	"github.com/docuvault/docuvault/internal/user"
)

var _ = Describe("Department Handler Integration", func() {
	var (
		db      *gorm.DB
		service *department.Service
		handler *department.Handler
		admin   *user.User
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&department.Department{})
		Expect(err).NotTo(HaveOccurred())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo := departmentPostgres.NewDepartmentRepository(db)
		service = department.NewService(repo, auth.NewPolicy(), slogger)
		handler = department.NewHandler(service)

		admin = &user.User{ID: "a1", Email: "admin@example.com", Role: user.RoleAdmin}

		for _, name := range []string{"Finance", "Legal"} {
			Expect(repo.Create(department.NewDepartment(name, "", "", ""))).To(Succeed())
		}
	})

	It("should handle GET /departments", func() {
		req := httptest.NewRequest(http.MethodGet, "/departments", nil)
		w := httptest.NewRecorder()

		handler.GetDepartments(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var departments []*department.Department
		Expect(json.NewDecoder(w.Body).Decode(&departments)).To(Succeed())
		Expect(departments).To(HaveLen(2))
		Expect(departments[0].Name).To(Equal("Finance"))
	})

	It("should create a department for an admin", func() {
		body, _ := json.Marshal(department.CreateDepartmentDTO{Name: "Marketing"})
		req := httptest.NewRequest(http.MethodPost, "/departments", bytes.NewReader(body))
		req = req.WithContext(auth.ContextWithUser(req.Context(), admin))
		w := httptest.NewRecorder()

		handler.CreateDepartment(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))

		var created department.Department
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		Expect(created.ID).To(BeNumerically(">", 0))
		Expect(created.Name).To(Equal("Marketing"))
	})

	It("should reject creation by a department user", func() {
		finance := "Finance"
		u := &user.User{ID: "u1", Role: user.RoleDepartment, DepartmentName: &finance}

		body, _ := json.Marshal(department.CreateDepartmentDTO{Name: "Marketing"})
		req := httptest.NewRequest(http.MethodPost, "/departments", bytes.NewReader(body))
		req = req.WithContext(auth.ContextWithUser(req.Context(), u))
		w := httptest.NewRecorder()

		handler.CreateDepartment(w, req)

		Expect(w.Code).To(Equal(http.StatusForbidden))
	})

	It("should reject requests without an authenticated user", func() {
		body, _ := json.Marshal(department.CreateDepartmentDTO{Name: "Marketing"})
		req := httptest.NewRequest(http.MethodPost, "/departments", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateDepartment(w, req)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})
})
