package auth_test

import (
	"errors"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/docuvault/docuvault/internal"
	"github.com/docuvault/docuvault/internal/auth"
	"github.com/docuvault/docuvault/internal/user"
)

// Mock user store for testing
type mockUserStore struct {
	usersByID    map[string]*user.User
	usersByEmail map[string]*user.User
	upsertError  error
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{
		usersByID:    make(map[string]*user.User),
		usersByEmail: make(map[string]*user.User),
	}
}

func (m *mockUserStore) add(u *user.User) {
	m.usersByID[u.ID] = u
	m.usersByEmail[u.Email] = u
}

func (m *mockUserStore) GetByID(id string) (*user.User, error) {
	u, ok := m.usersByID[id]
	if !ok {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserStore) GetByEmail(email string) (*user.User, error) {
	u, ok := m.usersByEmail[email]
	if !ok {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserStore) Upsert(profile user.UpsertProfile) (*user.User, error) {
	if m.upsertError != nil {
		return nil, m.upsertError
	}
	u, ok := m.usersByID[profile.ID]
	if !ok {
		return nil, internal.ErrUserNotFound
	}
	u.FirstName = profile.FirstName
	u.LastName = profile.LastName
	return u, nil
}

// Mock session repository for testing
type mockSessionRepository struct {
	sessions    map[string]*auth.Session
	createError error
	nextID      int64
}

func newMockSessionRepository() *mockSessionRepository {
	return &mockSessionRepository{
		sessions: make(map[string]*auth.Session),
		nextID:   1,
	}
}

func (m *mockSessionRepository) Create(session *auth.Session) error {
	if m.createError != nil {
		return m.createError
	}
	session.ID = m.nextID
	m.nextID++
	m.sessions[session.TokenHash] = session
	return nil
}

func (m *mockSessionRepository) GetByTokenHash(tokenHash string) (*auth.Session, error) {
	s, ok := m.sessions[tokenHash]
	if !ok {
		return nil, errors.New("session not found")
	}
	return s, nil
}

func (m *mockSessionRepository) DeleteByTokenHash(tokenHash string) error {
	delete(m.sessions, tokenHash)
	return nil
}

func (m *mockSessionRepository) DeleteExpired(before time.Time) error {
	for hash, s := range m.sessions {
		if s.ExpiresAt.Before(before) {
			delete(m.sessions, hash)
		}
	}
	return nil
}

var _ = Describe("AuthService", func() {
	var (
		service      *auth.Service
		userStore    *mockUserStore
		sessionRepo  *mockSessionRepository
		tokenGen     *auth.JWTTokenGenerator
		testPassword string
		finance      string
	)

	BeforeEach(func() {
		userStore = newMockUserStore()
		sessionRepo = newMockSessionRepository()
		tokenGen = auth.NewJWTTokenGenerator(
			"test-access-secret-0123456789abcdef",
			"test-refresh-secret-0123456789abcdef",
			15*time.Minute,
			7*24*time.Hour,
		)
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = auth.NewService(userStore, sessionRepo, tokenGen, bcrypt.MinCost, logger)

		testPassword = "correct-horse"
		finance = "Finance"
		hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
		Expect(err).NotTo(HaveOccurred())

		userStore.add(&user.User{
			ID:             "user-1",
			Email:          "dewi@example.com",
			FirstName:      "Dewi",
			PasswordHash:   string(hash),
			Role:           user.RoleDepartment,
			DepartmentName: &finance,
		})
	})

	Describe("Authenticate", func() {
		It("should return a token pair and persist a session", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{
				Email:    "dewi@example.com",
				Password: testPassword,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(tokens.AccessToken).NotTo(BeEmpty())
			Expect(tokens.RefreshToken).NotTo(BeEmpty())
			Expect(sessionRepo.sessions).To(HaveLen(1))
		})

		It("should reject a wrong password", func() {
			_, err := service.Authenticate(auth.LoginDTO{
				Email:    "dewi@example.com",
				Password: "wrong",
			})

			Expect(err).To(Equal(internal.ErrInvalidCredentials))
			Expect(sessionRepo.sessions).To(BeEmpty())
		})

		It("should reject an unknown email with the same error as a bad password", func() {
			_, err := service.Authenticate(auth.LoginDTO{
				Email:    "nobody@example.com",
				Password: testPassword,
			})

			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})

		It("should reject missing credentials before touching the store", func() {
			_, err := service.Authenticate(auth.LoginDTO{})
			Expect(err).To(HaveOccurred())
		})

		It("should prune expired sessions on login", func() {
			sessionRepo.sessions["stale-hash"] = &auth.Session{
				UserID:    "user-1",
				TokenHash: "stale-hash",
				ExpiresAt: time.Now().Add(-time.Hour),
			}

			_, err := service.Authenticate(auth.LoginDTO{
				Email:    "dewi@example.com",
				Password: testPassword,
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(sessionRepo.sessions).NotTo(HaveKey("stale-hash"))
			Expect(sessionRepo.sessions).To(HaveLen(1))
		})
	})

	Describe("ValidateAccessToken", func() {
		It("should resolve claims from a freshly issued access token", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{
				Email:    "dewi@example.com",
				Password: testPassword,
			})
			Expect(err).NotTo(HaveOccurred())

			claims, err := service.ValidateAccessToken(tokens.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal("user-1"))
			Expect(claims.Email).To(Equal("dewi@example.com"))
		})

		It("should reject garbage tokens", func() {
			_, err := service.ValidateAccessToken("not-a-token")
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})
	})

	Describe("RefreshTokens", func() {
		It("should rotate the session", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{
				Email:    "dewi@example.com",
				Password: testPassword,
			})
			Expect(err).NotTo(HaveOccurred())

			rotated, err := service.RefreshTokens(tokens.RefreshToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(rotated.RefreshToken).NotTo(BeEmpty())
			Expect(sessionRepo.sessions).To(HaveLen(1))

			// the old refresh token no longer has a session behind it
			_, err = service.RefreshTokens(tokens.RefreshToken)
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})

		It("should issue distinct tokens even within the same second", func() {
			first, err := tokenGen.GenerateRefreshToken("user-1", "dewi@example.com")
			Expect(err).NotTo(HaveOccurred())
			second, err := tokenGen.GenerateRefreshToken("user-1", "dewi@example.com")
			Expect(err).NotTo(HaveOccurred())

			// identical tokens would produce colliding session hashes and
			// leave the pre-rotation refresh token usable
			Expect(second).NotTo(Equal(first))
		})

		It("should reject a refresh token without a session row", func() {
			refreshToken, err := tokenGen.GenerateRefreshToken("user-1", "dewi@example.com")
			Expect(err).NotTo(HaveOccurred())

			_, err = service.RefreshTokens(refreshToken)
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})
	})

	Describe("ResolveUser", func() {
		It("should load the user behind validated claims", func() {
			u, err := service.ResolveUser(&auth.Claims{UserID: "user-1"})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Email).To(Equal("dewi@example.com"))
		})

		It("should fail for unknown users", func() {
			_, err := service.ResolveUser(&auth.Claims{UserID: "ghost"})
			Expect(err).To(Equal(internal.ErrUserNotFound))
		})

		It("should refuse user rows with a role outside the enumeration", func() {
			userStore.add(&user.User{
				ID:    "user-2",
				Email: "odd@example.com",
				Role:  user.Role("superuser"),
			})

			_, err := service.ResolveUser(&auth.Claims{UserID: "user-2"})
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})
	})

	Describe("Logout", func() {
		It("should drop the session behind the refresh token", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{
				Email:    "dewi@example.com",
				Password: testPassword,
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Logout(tokens.RefreshToken)).To(Succeed())
			Expect(sessionRepo.sessions).To(BeEmpty())
		})

		It("should not fail for unknown tokens", func() {
			Expect(service.Logout("unknown")).To(Succeed())
		})
	})
})
