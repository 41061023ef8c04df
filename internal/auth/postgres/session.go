package postgres

import (
	"time"

	"github.com/docuvault/docuvault/internal/auth"
	"gorm.io/gorm"
)

// SessionRepository implements auth.SessionRepository using GORM
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) auth.SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(session *auth.Session) error {
	return r.db.Create(session).Error
}

func (r *SessionRepository) GetByTokenHash(tokenHash string) (*auth.Session, error) {
	var session auth.Session
	err := r.db.Where("token_hash = ?", tokenHash).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) DeleteByTokenHash(tokenHash string) error {
	return r.db.Where("token_hash = ?", tokenHash).Delete(&auth.Session{}).Error
}

func (r *SessionRepository) DeleteExpired(before time.Time) error {
	return r.db.Where("expires_at < ?", before).Delete(&auth.Session{}).Error
}
