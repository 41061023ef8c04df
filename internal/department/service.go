package department

import (
	"log/slog"

	"github.com/docuvault/docuvault/internal"
	"github.com/docuvault/docuvault/internal/auth"
	"github.com/docuvault/docuvault/internal/user"
)

type Repository interface {
	GetAll() ([]*Department, error)
	GetByID(id int64) (*Department, error)
	GetByName(name string) (*Department, error)
	Create(department *Department) error
}

type Service struct {
	repo   Repository
	policy *auth.Policy
	logger *slog.Logger
}

func NewService(repo Repository, policy *auth.Policy, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		policy: policy,
		logger: logger,
	}
}

func (s *Service) GetAllDepartments() ([]*Department, error) {
	departments, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get departments", "error", err)
		return nil, err
	}
	return departments, nil
}

func (s *Service) GetByID(id int64) (*Department, error) {
	dept, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if dept == nil {
		return nil, internal.ErrDepartmentNotFound
	}
	return dept, nil
}

// ResolveByName maps a user's departmentName to the department row. Used by
// the file lifecycle manager at upload time.
func (s *Service) ResolveByName(name string) (*Department, error) {
	dept, err := s.repo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if dept == nil {
		return nil, internal.ErrDepartmentNotFound
	}
	return dept, nil
}

func (s *Service) CreateDepartment(actor *user.User, dto CreateDepartmentDTO) (*Department, error) {
	if err := s.policy.CanCreateDepartment(actor); err != nil {
		s.logger.Warn("create department denied", "user_id", actor.ID)
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByName(dto.Name)
	if err != nil {
		s.logger.Error("failed to check department name", "error", err, "name", dto.Name)
		return nil, err
	}
	if existing != nil {
		return nil, internal.ErrDepartmentExists
	}

	dept := NewDepartment(dto.Name, dto.Description, dto.Icon, dto.Color)
	if err := s.repo.Create(dept); err != nil {
		s.logger.Error("failed to create department", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("department created", "department_id", dept.ID, "name", dept.Name, "created_by", actor.ID)
	return dept, nil
}
