package sessions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/peerdesk/peerdesk/backend/auth-service/internal/models"
	"github.com/peerdesk/peerdesk/backend/auth-service/pkg/metrics"
)

// Service wraps repository operations with session lifecycle logic.
type Service struct {
	repo Repository
	ttl  time.Duration
}

func NewService(r Repository, ttl time.Duration) *Service {
	return &Service{repo: r, ttl: ttl}
}

// Create stores a new session for the identity and returns it. The write
// is acknowledged before this returns, so a client can act on the session
// cookie immediately.
func (s *Service) Create(ctx context.Context, id models.Identity) (*Session, error) {
	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    id.UserID,
		Email:     id.Email,
		ExpiresAt: time.Now().UTC().Add(s.ttl),
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, err
	}
	metrics.SessionsCreated.Inc()
	return sess, nil
}

// Validate returns the session if it exists and has not expired. Expired
// records are removed on sight.
func (s *Service) Validate(ctx context.Context, id string) (*Session, error) {
	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}
	if !time.Now().UTC().Before(sess.ExpiresAt) {
		_ = s.repo.DeleteByID(ctx, id)
		return nil, nil
	}
	return sess, nil
}

// Touch slides the session expiry forward on activity.
func (s *Service) Touch(ctx context.Context, id string) error {
	return s.repo.Extend(ctx, id, time.Now().UTC().Add(s.ttl))
}

// Delete removes the session. Deleting a missing session is not an error.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	metrics.SessionsDestroyed.Inc()
	return nil
}
