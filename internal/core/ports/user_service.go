package ports

import (
	"context"

	"github.com/newsroom-io/newsroom-api/internal/core/domain"
)

// UserService covers role administration, the subscription graph, and
// journalist profiles.
type UserService interface {
	// SetRole changes a user's role (admin only). The role exclusivity
	// invariants are validated before the write, and a first save with the
	// journalist role creates the journalist profile.
	SetRole(ctx context.Context, actor domain.Actor, username string, role domain.Role) (*domain.User, error)

	SubscribeToPublisher(ctx context.Context, actor domain.Actor, publisherID string) error
	UnsubscribeFromPublisher(ctx context.Context, actor domain.Actor, publisherID string) error
	SubscribeToJournalist(ctx context.Context, actor domain.Actor, journalistID string) error
	UnsubscribeFromJournalist(ctx context.Context, actor domain.Actor, journalistID string) error

	// Profile returns the journalist profile for the given username.
	Profile(ctx context.Context, username string) (*domain.JournalistProfile, *domain.User, error)
}
