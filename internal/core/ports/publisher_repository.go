package ports

import (
	"context"

	"github.com/newsroom-io/newsroom-api/internal/core/domain"
)

// PublisherRepository defines persistence for publishers.
type PublisherRepository interface {
	Create(ctx context.Context, p *domain.Publisher) (*domain.Publisher, error)
	FindByID(ctx context.Context, id string) (*domain.Publisher, error)
	FindByName(ctx context.Context, name string) (*domain.Publisher, error)
	// List returns all publishers ordered by name.
	List(ctx context.Context) ([]*domain.Publisher, error)
}
