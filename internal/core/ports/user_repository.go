package ports

import (
	"context"

	"github.com/newsroom-io/newsroom-api/internal/core/domain"
)

// UserRepository defines persistence for users, their subscriptions, and
// journalist profiles.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// SetRole atomically replaces the user's role. Capability derivation is
	// purely role-based, so no group bookkeeping accompanies the write.
	SetRole(ctx context.Context, id string, role domain.Role) error

	AddPublisherSubscription(ctx context.Context, userID, publisherID string) error
	RemovePublisherSubscription(ctx context.Context, userID, publisherID string) error
	AddJournalistSubscription(ctx context.Context, userID, journalistID string) error
	RemoveJournalistSubscription(ctx context.Context, userID, journalistID string) error

	// SubscriberEmails returns the distinct, non-empty emails of all
	// reader-role users subscribed to the publisher or to the author.
	SubscriberEmails(ctx context.Context, publisherID, authorID string) ([]string, error)

	// EnsureProfile creates the journalist profile if it does not exist yet
	// and leaves an existing one untouched.
	EnsureProfile(ctx context.Context, profile *domain.JournalistProfile) error
	FindProfile(ctx context.Context, userID string) (*domain.JournalistProfile, error)
}
