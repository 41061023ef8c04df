package stats

import (
	"log/slog"

	"github.com/docuvault/docuvault/internal/auth"
	"github.com/docuvault/docuvault/internal/user"
)

// Repository computes aggregates over the current file rows. No caching:
// every call sees a fresh read-committed snapshot.
type Repository interface {
	GlobalStats() (*GlobalStats, error)
	DepartmentStats(departmentID int64) (*DepartmentStats, error)
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

// Global returns the organization-wide aggregate. Admin only.
func (s *Service) Global(actor *user.User) (*GlobalStats, error) {
	if err := s.policy.CanViewGlobalStats(actor); err != nil {
		s.logger.Warn("global stats denied", "user_id", actor.ID)
		return nil, err
	}

	result, err := s.repo.GlobalStats()
	if err != nil {
		s.logger.Error("failed to compute global stats", "error", err)
		return nil, err
	}

	return result, nil
}

// ForDepartment returns one department's aggregate. Open to every
// authenticated user.
func (s *Service) ForDepartment(actor *user.User, departmentID int64) (*DepartmentStats, error) {
	if err := s.policy.CanViewDepartmentStats(actor); err != nil {
		return nil, err
	}

	result, err := s.repo.DepartmentStats(departmentID)
	if err != nil {
		s.logger.Error("failed to compute department stats", "error", err, "department_id", departmentID)
		return nil, err
	}

	return result, nil
}
