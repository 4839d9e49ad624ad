package ports

import (
	"context"

	"github.com/newsroom-io/newsroom-api/internal/core/domain"
)

// CreatePublisherInput carries the data for a new publisher.
type CreatePublisherInput struct {
	Actor       domain.Actor
	Name        string
	Description string
	// Optional staff rosters; members are role-checked at creation.
	EditorIDs     []string
	JournalistIDs []string
}

// PublisherService defines publisher administration and lookup.
type PublisherService interface {
	// Create registers a new publisher (admin only). Names are unique.
	Create(ctx context.Context, in CreatePublisherInput) (*domain.Publisher, error)
	Get(ctx context.Context, id string) (*domain.Publisher, error)
	List(ctx context.Context) ([]*domain.Publisher, error)
}
