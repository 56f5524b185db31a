package domain

// Plan enumerates billing plans.
type Plan string

const (
	PlanFree    Plan = "free"
	PlanPremium Plan = "premium"
)

// FreeUsageLimit is the lifetime ceiling of metered operations for free accounts.
const FreeUsageLimit = 10

// AuthUser is the authenticated caller as resolved by the identity provider:
// session subject, billing plan, and the current free-tier usage counter.
type AuthUser struct {
	ID        string
	Plan      Plan
	FreeUsage int
}

// IsPremium reports whether the user holds the premium plan.
func (u AuthUser) IsPremium() bool {
	return u.Plan == PlanPremium
}
