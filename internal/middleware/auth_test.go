package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"server/internal/domain"
)

type fakeIdentity struct {
	profiles map[string]*domain.UserProfile
	writes   map[string]int
	err      error
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{profiles: map[string]*domain.UserProfile{}, writes: map[string]int{}}
}

func (f *fakeIdentity) Lookup(ctx context.Context, userID string) (*domain.UserProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, errors.New("no such user")
	}
	return p, nil
}

func (f *fakeIdentity) SetFreeUsage(ctx context.Context, userID string, value int) error {
	f.writes[userID] = value
	return nil
}

func authedRequest(t *testing.T, secret, userID string) *http.Request {
	t.Helper()
	token, err := SignSession(secret, userID, time.Hour)
	if err != nil {
		t.Fatalf("sign session: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/user/creations", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestAuth(t *testing.T) {
	const secret = "test-secret"

	capture := func(got *domain.AuthUser) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if u, ok := UserFromContext(r.Context()); ok {
				*got = u
			}
			w.WriteHeader(http.StatusOK)
		})
	}

	t.Run("resolves free user with tracked usage", func(t *testing.T) {
		identity := newFakeIdentity()
		identity.profiles["user_1"] = &domain.UserProfile{ID: "user_1", Plan: domain.PlanFree, FreeUsage: 7, UsageTracked: true}

		var got domain.AuthUser
		rec := httptest.NewRecorder()
		Auth(secret, identity, zerolog.Nop())(capture(&got)).ServeHTTP(rec, authedRequest(t, secret, "user_1"))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if got.ID != "user_1" || got.Plan != domain.PlanFree || got.FreeUsage != 7 {
			t.Fatalf("user = %+v", got)
		}
		if _, wrote := identity.writes["user_1"]; wrote {
			t.Error("usage reset for a tracked free user")
		}
	})

	t.Run("resets untracked usage to zero", func(t *testing.T) {
		identity := newFakeIdentity()
		identity.profiles["user_2"] = &domain.UserProfile{ID: "user_2", Plan: domain.PlanFree}

		var got domain.AuthUser
		rec := httptest.NewRecorder()
		Auth(secret, identity, zerolog.Nop())(capture(&got)).ServeHTTP(rec, authedRequest(t, secret, "user_2"))

		if got.FreeUsage != 0 {
			t.Errorf("free usage = %d", got.FreeUsage)
		}
		if v, ok := identity.writes["user_2"]; !ok || v != 0 {
			t.Errorf("expected reset write, got %v", identity.writes)
		}
	})

	t.Run("premium user always resets counter", func(t *testing.T) {
		identity := newFakeIdentity()
		identity.profiles["user_3"] = &domain.UserProfile{ID: "user_3", Plan: domain.PlanPremium, FreeUsage: 4, UsageTracked: true}

		var got domain.AuthUser
		rec := httptest.NewRecorder()
		Auth(secret, identity, zerolog.Nop())(capture(&got)).ServeHTTP(rec, authedRequest(t, secret, "user_3"))

		if got.Plan != domain.PlanPremium || got.FreeUsage != 0 {
			t.Fatalf("user = %+v", got)
		}
		if v, ok := identity.writes["user_3"]; !ok || v != 0 {
			t.Errorf("expected reset write, got %v", identity.writes)
		}
	})

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		Auth(secret, newFakeIdentity(), zerolog.Nop())(http.NotFoundHandler()).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("bad signature", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Auth("other-secret", newFakeIdentity(), zerolog.Nop())(http.NotFoundHandler()).ServeHTTP(rec, authedRequest(t, secret, "user_1"))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := SignSession(secret, "user_1", -time.Minute)
		if err != nil {
			t.Fatalf("sign session: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		Auth(secret, newFakeIdentity(), zerolog.Nop())(http.NotFoundHandler()).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("identity failure", func(t *testing.T) {
		identity := newFakeIdentity()
		identity.err = errors.New("identity down")
		rec := httptest.NewRecorder()
		Auth(secret, identity, zerolog.Nop())(http.NotFoundHandler()).ServeHTTP(rec, authedRequest(t, secret, "user_1"))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}
