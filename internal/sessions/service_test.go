package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/peerdesk/peerdesk/backend/auth-service/internal/models"
)

// fake repo for testing
type fakeRepo struct {
	store map[string]*Session
}

func (f *fakeRepo) Create(ctx context.Context, s *Session) error {
	if f.store == nil {
		f.store = map[string]*Session{}
	}
	f.store[s.ID] = s
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Session, error) {
	s, ok := f.store[id]
	if !ok {
		return nil, nil
	}
	return s, nil
}

func (f *fakeRepo) Extend(ctx context.Context, id string, expiresAt time.Time) error {
	if s, ok := f.store[id]; ok {
		s.ExpiresAt = expiresAt
	}
	return nil
}

func (f *fakeRepo) DeleteByID(ctx context.Context, id string) error {
	delete(f.store, id)
	return nil
}

func TestCreateAndValidateSession(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, time.Hour)
	ctx := context.Background()

	sess, err := svc.Create(ctx, models.Identity{UserID: "u-1", Email: "a@b.c"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if sess.ID == "" {
		t.Fatalf("expected session id")
	}

	got, err := svc.Validate(ctx, sess.ID)
	if err != nil {
		t.Fatalf("validate error: %v", err)
	}
	if got == nil || got.UserID != "u-1" || got.Email != "a@b.c" {
		t.Fatalf("unexpected session: %+v", got)
	}

	if err := svc.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	got2, _ := svc.Validate(ctx, sess.ID)
	if got2 != nil {
		t.Fatalf("expected session removed")
	}
}

func TestValidate_ExpiredSessionIsRemoved(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, time.Hour)
	ctx := context.Background()

	sess, err := svc.Create(ctx, models.Identity{UserID: "u-2", Email: "x@x"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	repo.store[sess.ID].ExpiresAt = time.Now().UTC().Add(-time.Minute)

	got, err := svc.Validate(ctx, sess.ID)
	if err != nil {
		t.Fatalf("validate error: %v", err)
	}
	if got != nil {
		t.Fatalf("expired session must be invalid")
	}
	if _, ok := repo.store[sess.ID]; ok {
		t.Fatalf("expired session should be cleaned up")
	}
}

func TestTouch_SlidesExpiry(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, time.Hour)
	ctx := context.Background()

	sess, _ := svc.Create(ctx, models.Identity{UserID: "u-3", Email: "t@t"})
	repo.store[sess.ID].ExpiresAt = time.Now().UTC().Add(time.Minute)

	if err := svc.Touch(ctx, sess.ID); err != nil {
		t.Fatalf("touch failed: %v", err)
	}
	if until := time.Until(repo.store[sess.ID].ExpiresAt); until < 59*time.Minute {
		t.Fatalf("expiry not extended, remaining %v", until)
	}
}

func TestDelete_MissingSessionIsNotAnError(t *testing.T) {
	svc := NewService(&fakeRepo{store: map[string]*Session{}}, time.Hour)
	if err := svc.Delete(context.Background(), "no-such-session"); err != nil {
		t.Fatalf("delete of missing session should succeed: %v", err)
	}
}
