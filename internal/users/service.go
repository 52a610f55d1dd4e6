package users

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/peerdesk/peerdesk/backend/auth-service/internal/autherr"
	"github.com/peerdesk/peerdesk/backend/auth-service/internal/models"
)

// Service verifies and registers local credentials.
type Service struct {
	repo   UserRepository
	hasher PasswordHasher

	// dummyHash is compared against when the user does not exist, so the
	// response shape and latency of "unknown email" match "wrong password".
	dummyHash string
}

func NewService(repo UserRepository, hasher PasswordHasher) *Service {
	s := &Service{repo: repo, hasher: hasher}
	if h, err := hasher.Hash("timing-equalizer-not-a-real-password"); err == nil {
		s.dummyHash = h
	}
	return s
}

// NormalizeEmail makes lookups whitespace-tolerant and case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with a hashed password. The email is normalized
// before the duplicate check so casing variants collide.
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = NormalizeEmail(email)
	if username == "" || email == "" || password == "" {
		return nil, autherr.Validation("username, email and password are required")
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, autherr.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Verify checks an email/password pair. Unknown email and wrong password
// collapse to the same error, and the unknown-email path still performs a
// bcrypt comparison against a dummy hash.
func (s *Service) Verify(ctx context.Context, email, password string) (*models.User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, autherr.Validation("email and password are required")
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		_ = s.hasher.Compare(password, s.dummyHash)
		return nil, autherr.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(password, u.PasswordHash); err != nil {
		return nil, autherr.ErrInvalidCredentials
	}
	return u, nil
}

// GetByID loads a user record; (nil, nil) when missing.
func (s *Service) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}
