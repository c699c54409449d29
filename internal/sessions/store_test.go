package sessions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/caredesk/appointment-service/internal/models"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewStore(client, 24*time.Hour, 30*24*time.Hour), mr
}

func TestStoreCreateAndGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	user := &models.User{ID: 42, Role: models.RolePatient}
	session, err := store.Create(ctx, user, false)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if session.Token == "" {
		t.Fatal("expected a non-empty token")
	}

	got, err := store.Get(ctx, session.Token)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.UserID != 42 {
		t.Errorf("expected user id 42, got %d", got.UserID)
	}
	if got.Role != models.RolePatient {
		t.Errorf("expected role %q, got %q", models.RolePatient, got.Role)
	}
}

func TestStoreGetUnknownToken(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "no-such-token")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestStoreGetEmptyToken(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestStoreDestroy(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	user := &models.User{ID: 7, Role: models.RoleDoctor}
	session, err := store.Create(ctx, user, false)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := store.Destroy(ctx, session.Token); err != nil {
		t.Fatalf("Destroy returned error: %v", err)
	}
	if _, err := store.Get(ctx, session.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after destroy, got %v", err)
	}

	// Destroying again must not fail.
	if err := store.Destroy(ctx, session.Token); err != nil {
		t.Fatalf("second Destroy returned error: %v", err)
	}
}

func TestStoreExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	user := &models.User{ID: 9, Role: models.RolePatient}
	session, err := store.Create(ctx, user, false)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	mr.FastForward(25 * time.Hour)

	if _, err := store.Get(ctx, session.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after expiry, got %v", err)
	}
}

func TestStoreRememberExtendsTTL(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	user := &models.User{ID: 11, Role: models.RolePatient}
	session, err := store.Create(ctx, user, true)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	mr.FastForward(25 * time.Hour)

	if _, err := store.Get(ctx, session.Token); err != nil {
		t.Fatalf("remembered session should survive 25h, got %v", err)
	}
}
