package postgres

import (
	"time"

	"github.com/docuvault/docuvault/internal"
	"github.com/docuvault/docuvault/internal/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository implements the user.Repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(id string) (*user.User, error) {
	var u user.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*user.User, error) {
	var u user.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Upsert inserts the row, or on id conflict refreshes only the profile
// columns. Role, department and password hash survive re-login untouched.
func (r *UserRepository) Upsert(profile user.UpsertProfile) (*user.User, error) {
	now := time.Now()
	u := user.User{
		ID:              profile.ID,
		Email:           profile.Email,
		FirstName:       profile.FirstName,
		LastName:        profile.LastName,
		ProfileImageURL: profile.ProfileImageURL,
		Role:            user.RoleDepartment,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"email":             profile.Email,
			"first_name":        profile.FirstName,
			"last_name":         profile.LastName,
			"profile_image_url": profile.ProfileImageURL,
			"updated_at":        now,
		}),
	}).Create(&u).Error
	if err != nil {
		return nil, err
	}

	return r.GetByID(profile.ID)
}
