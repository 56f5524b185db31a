// Package quota gates generation operations on the caller's plan and
// free-tier usage counter, and meters successful operations afterwards.
package quota

import (
	"context"

	"github.com/rs/zerolog"

	"server/internal/domain"
)

const (
	msgPremiumRequired = "Upgrade to premium plan to access this feature"
	msgLimitReached    = "Limit reached, upgrade to premium plan to continue"
)

// Gate decides whether an operation may proceed and records usage once it has.
// The identity client is injected so tests can run against a stub.
type Gate struct {
	identity domain.IdentityClient
	logger   zerolog.Logger
}

// NewGate constructs a Gate backed by the given identity provider client.
func NewGate(identity domain.IdentityClient, logger zerolog.Logger) *Gate {
	return &Gate{identity: identity, logger: logger}
}

// CheckAllowed is a pure precondition check: it must run before any external
// cost is incurred and has no side effects. Premium users always pass. Free
// users are rejected on premium-only operations and once their lifetime
// counter reaches the free-tier ceiling.
func (g *Gate) CheckAllowed(plan domain.Plan, freeUsage int, premiumOnly bool) error {
	if premiumOnly && plan != domain.PlanPremium {
		return domain.QuotaError(msgPremiumRequired)
	}
	if plan != domain.PlanPremium && freeUsage >= domain.FreeUsageLimit {
		return domain.QuotaError(msgLimitReached)
	}
	return nil
}

// RecordUsage persists freeUsage+1 for non-premium users. It must be called
// only after the provider call and the creation write both succeeded; premium
// users are never metered.
func (g *Gate) RecordUsage(ctx context.Context, userID string, plan domain.Plan, freeUsage int) error {
	if plan == domain.PlanPremium {
		return nil
	}
	if err := g.identity.SetFreeUsage(ctx, userID, freeUsage+1); err != nil {
		g.logger.Error().Err(err).Str("user_id", userID).Msg("record usage failed")
		return err
	}
	return nil
}
