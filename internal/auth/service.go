package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/docuvault/docuvault/internal"
	"github.com/docuvault/docuvault/internal/user"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SessionRepository persists refresh-token sessions for the identity adapter.
type SessionRepository interface {
	Create(session *Session) error
	GetByTokenHash(tokenHash string) (*Session, error)
	DeleteByTokenHash(tokenHash string) error
	DeleteExpired(before time.Time) error
}

// UserStore is the slice of the user component the identity adapter needs:
// credential lookup plus the login-time profile upsert.
type UserStore interface {
	GetByID(id string) (*user.User, error)
	GetByEmail(email string) (*user.User, error)
	Upsert(profile user.UpsertProfile) (*user.User, error)
}

// Service authenticates requests and owns session lifecycle. On each
// successful login the user profile is upserted, per the identity contract.
type Service struct {
	users          UserStore
	sessions       SessionRepository
	tokenGenerator TokenGenerator
	bcryptCost     int
	logger         *slog.Logger
}

func NewService(users UserStore, sessions SessionRepository, tokenGen TokenGenerator, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		users:          users,
		sessions:       sessions,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

func NewJWTTokenGenerator(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTTokenGenerator {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 24 * 7 * time.Hour
	}
	return &JWTTokenGenerator{
		AccessTokenSecret:  []byte(accessSecret),
		RefreshTokenSecret: []byte(refreshSecret),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
	}
}

// Authenticate validates credentials, refreshes the stored profile and
// returns a token pair backed by a session row.
func (s *Service) Authenticate(dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	u, err := s.users.GetByEmail(dto.Email)
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	// Upsert semantics: profile fields are refreshed on every login.
	u, err = s.users.Upsert(user.UpsertProfile{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL,
	})
	if err != nil {
		s.logger.Error("login upsert failed", "error", err, "email", dto.Email)
		return AuthTokens{}, internal.NewInternalError("failed to refresh user profile", err)
	}

	// Opportunistic cleanup: logins are the natural moment to prune
	// sessions whose refresh window has closed.
	if err := s.sessions.DeleteExpired(time.Now()); err != nil {
		s.logger.Warn("failed to prune expired sessions", "error", err)
	}

	return s.issueTokens(u)
}

// RefreshTokens validates the refresh token against its session row and
// rotates the pair.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGenerator.ValidateToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	hash := hashToken(refreshToken)
	session, err := s.sessions.GetByTokenHash(hash)
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidToken
	}
	if time.Now().After(session.ExpiresAt) {
		_ = s.sessions.DeleteByTokenHash(hash)
		return AuthTokens{}, internal.ErrTokenExpired
	}

	u, err := s.users.GetByID(claims.UserID)
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidToken
	}

	if err := s.sessions.DeleteByTokenHash(hash); err != nil {
		s.logger.Warn("failed to delete rotated session", "error", err, "user_id", u.ID)
	}

	return s.issueTokens(u)
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// ResolveUser loads the user behind validated claims and enforces the closed
// role enumeration at the identity boundary.
func (s *Service) ResolveUser(claims *Claims) (*user.User, error) {
	u, err := s.users.GetByID(claims.UserID)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}
	if _, err := user.ParseRole(string(u.Role)); err != nil {
		s.logger.Error("user row carries unknown role", "user_id", u.ID, "role", u.Role)
		return nil, internal.ErrInvalidToken
	}
	return u, nil
}

// Logout removes the session behind the refresh token. Missing sessions are
// not an error.
func (s *Service) Logout(refreshToken string) error {
	return s.sessions.DeleteByTokenHash(hashToken(refreshToken))
}

func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *Service) issueTokens(u *user.User) (AuthTokens, error) {
	accessToken, err := s.tokenGenerator.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		return AuthTokens{}, err
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(u.ID, u.Email)
	if err != nil {
		return AuthTokens{}, err
	}

	session := &Session{
		UserID:    u.ID,
		TokenHash: hashToken(refreshToken),
		ExpiresAt: time.Now().Add(s.refreshTTL()),
		CreatedAt: time.Now(),
	}
	if err := s.sessions.Create(session); err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to persist session", err)
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *Service) refreshTTL() time.Duration {
	if gen, ok := s.tokenGenerator.(*JWTTokenGenerator); ok {
		return gen.RefreshTokenTTL
	}
	return 24 * 7 * time.Hour
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (j *JWTTokenGenerator) GenerateAccessToken(userID, email string) (string, error) {
	return j.signToken(userID, email, j.AccessTokenTTL, j.AccessTokenSecret)
}

func (j *JWTTokenGenerator) GenerateRefreshToken(userID, email string) (string, error) {
	return j.signToken(userID, email, j.RefreshTokenTTL, j.RefreshTokenSecret)
}

func (j *JWTTokenGenerator) signToken(userID, email string, ttl time.Duration, secret []byte) (string, error) {
	expiresAt := time.Now().Add(ttl)

	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			// jti makes every issued token distinct; without it two tokens
			// signed within the same second are byte-identical and their
			// session hashes collide, so rotation would keep the old
			// refresh token alive.
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken validates a JWT token and returns claims
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		// Refresh tokens carry expirations beyond the access TTL; pick the
		// secret accordingly.
		if claims, ok := token.Claims.(*Claims); ok {
			if time.Until(claims.ExpiresAt.Time) > j.AccessTokenTTL {
				return j.RefreshTokenSecret, nil
			}
		}
		return j.AccessTokenSecret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, internal.ErrInvalidToken
}
