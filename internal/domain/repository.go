package domain

import "context"

// ListOptions controls pagination for user-scoped creation listings.
type ListOptions struct {
	Skip int
	Take int
}

// CreationRepository defines persistence for creations.
type CreationRepository interface {
	Create(ctx context.Context, creation *Creation) (*Creation, error)
	ListByUser(ctx context.Context, userID string, opts ListOptions) ([]Creation, error)
	ListPublic(ctx context.Context, page, limit int) ([]Creation, error)
	ToggleLike(ctx context.Context, userID string, creationID int64) (*Creation, error)
}

// UserProfile is the identity provider's view of an account: plan flag plus the
// mutable free-usage counter kept in the user's private metadata.
type UserProfile struct {
	ID           string
	Plan         Plan
	FreeUsage    int
	UsageTracked bool // false when free_usage was never initialized
}

// IdentityClient talks to the external identity/plan provider.
type IdentityClient interface {
	Lookup(ctx context.Context, userID string) (*UserProfile, error)
	SetFreeUsage(ctx context.Context, userID string, value int) error
}
