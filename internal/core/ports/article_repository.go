package ports

import (
	"context"
	"time"

	"github.com/newsroom-io/newsroom-api/internal/core/domain"
)

// ArticleSort selects the ordering of a listing query.
type ArticleSort string

const (
	// SortNewestApproved orders by approved_at desc, then created_at desc.
	// This is the landing page and subscription feed order.
	SortNewestApproved ArticleSort = "newest_approved"
	// SortNewestCreated orders by created_at desc ("mine" view).
	SortNewestCreated ArticleSort = "newest_created"
	// SortOldestCreated orders by created_at asc (review queue).
	SortOldestCreated ArticleSort = "oldest_created"
)

// ArticleFilter carries the query parameters for listing articles. Zero
// fields are not applied.
type ArticleFilter struct {
	// Status restricts to a single workflow status.
	Status domain.ArticleStatus
	// AuthorID restricts to articles authored by the given user.
	AuthorID string
	// VisibleOwnerID widens a Status filter: articles authored by this user
	// match regardless of status (journalist listing: own + approved).
	VisibleOwnerID string
	// PublisherIDs / AuthorIDs: when either is non-empty, match articles
	// whose publisher is in PublisherIDs or whose author is in AuthorIDs
	// (subscription feed).
	PublisherIDs []string
	AuthorIDs    []string
	Sort         ArticleSort
}

// ArticleRepository defines persistence for articles.
type ArticleRepository interface {
	Create(ctx context.Context, a *domain.Article) error
	FindByID(ctx context.Context, id string) (*domain.Article, error)
	Update(ctx context.Context, a *domain.Article) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ArticleFilter) ([]*domain.Article, error)

	// Approve flips the article into the approved state with the given
	// timestamp, but only when the persisted status is not already
	// approved (compare-and-swap). It returns true when this call won the
	// transition. A false return with a nil error means another approval
	// got there first.
	Approve(ctx context.Context, id string, ts time.Time) (bool, error)

	// CountByStatus returns the number of articles per workflow status.
	CountByStatus(ctx context.Context) (map[domain.ArticleStatus]int64, error)
	// CountByAuthor returns the number of articles authored by the user.
	CountByAuthor(ctx context.Context, authorID string) (int64, error)
}
