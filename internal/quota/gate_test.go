package quota

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"server/internal/domain"
)

type stubIdentity struct {
	setCalls []int
	setErr   error
}

func (s *stubIdentity) Lookup(ctx context.Context, userID string) (*domain.UserProfile, error) {
	return nil, errors.New("not implemented")
}

func (s *stubIdentity) SetFreeUsage(ctx context.Context, userID string, value int) error {
	s.setCalls = append(s.setCalls, value)
	return s.setErr
}

func TestCheckAllowed(t *testing.T) {
	g := NewGate(&stubIdentity{}, zerolog.Nop())

	tests := []struct {
		name        string
		plan        domain.Plan
		freeUsage   int
		premiumOnly bool
		wantErr     bool
		wantMessage string
	}{
		{name: "free user under limit", plan: domain.PlanFree, freeUsage: 0},
		{name: "free user at last allowed call", plan: domain.PlanFree, freeUsage: 9},
		{name: "free user at limit", plan: domain.PlanFree, freeUsage: 10, wantErr: true, wantMessage: msgLimitReached},
		{name: "free user over limit", plan: domain.PlanFree, freeUsage: 42, wantErr: true, wantMessage: msgLimitReached},
		{name: "free user premium-only feature", plan: domain.PlanFree, freeUsage: 0, premiumOnly: true, wantErr: true, wantMessage: msgPremiumRequired},
		{name: "free user premium-only at limit", plan: domain.PlanFree, freeUsage: 10, premiumOnly: true, wantErr: true, wantMessage: msgPremiumRequired},
		{name: "premium user", plan: domain.PlanPremium, freeUsage: 0},
		{name: "premium user ignores counter", plan: domain.PlanPremium, freeUsage: 100},
		{name: "premium user premium-only feature", plan: domain.PlanPremium, freeUsage: 100, premiumOnly: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.CheckAllowed(tt.plan, tt.freeUsage, tt.premiumOnly)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if domain.KindOf(err) != domain.KindQuota {
				t.Fatalf("expected quota error, got %v", domain.KindOf(err))
			}
			var de *domain.Error
			if !errors.As(err, &de) || de.Message != tt.wantMessage {
				t.Fatalf("unexpected message: %v", err)
			}
		})
	}
}

func TestCheckAllowedFullFreeTierMatrix(t *testing.T) {
	g := NewGate(&stubIdentity{}, zerolog.Nop())
	for usage := 0; usage < domain.FreeUsageLimit; usage++ {
		if err := g.CheckAllowed(domain.PlanFree, usage, false); err != nil {
			t.Fatalf("call %d should be allowed: %v", usage+1, err)
		}
	}
	if err := g.CheckAllowed(domain.PlanFree, domain.FreeUsageLimit, false); err == nil {
		t.Fatal("11th call should be denied")
	}
}

func TestRecordUsage(t *testing.T) {
	t.Run("increments for free users", func(t *testing.T) {
		identity := &stubIdentity{}
		g := NewGate(identity, zerolog.Nop())
		if err := g.RecordUsage(context.Background(), "user_1", domain.PlanFree, 4); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(identity.setCalls) != 1 || identity.setCalls[0] != 5 {
			t.Fatalf("expected single set to 5, got %v", identity.setCalls)
		}
	})

	t.Run("no-op for premium users", func(t *testing.T) {
		identity := &stubIdentity{}
		g := NewGate(identity, zerolog.Nop())
		if err := g.RecordUsage(context.Background(), "user_1", domain.PlanPremium, 4); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(identity.setCalls) != 0 {
			t.Fatalf("expected no metadata writes, got %v", identity.setCalls)
		}
	})

	t.Run("propagates identity failures", func(t *testing.T) {
		identity := &stubIdentity{setErr: errors.New("clerk down")}
		g := NewGate(identity, zerolog.Nop())
		if err := g.RecordUsage(context.Background(), "user_1", domain.PlanFree, 9); err == nil {
			t.Fatal("expected error")
		}
	})
}
