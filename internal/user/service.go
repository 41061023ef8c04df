package user

type Repository interface {
	GetByID(id string) (*User, error)
	GetByEmail(email string) (*User, error)
	Upsert(profile UpsertProfile) (*User, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) GetByID(id string) (*User, error) {
	return s.repo.GetByID(id)
}

func (s *Service) GetByEmail(email string) (*User, error) {
	return s.repo.GetByEmail(email)
}

// Upsert inserts the user if absent, otherwise refreshes profile fields.
// Role and department assignment are administrative and untouched here.
func (s *Service) Upsert(profile UpsertProfile) (*User, error) {
	return s.repo.Upsert(profile)
}
