package ports

import (
	"context"
	"time"

	"github.com/newsroom-io/newsroom-api/internal/core/domain"
)

// CreateArticleInput carries the data for a new article. Articles created
// through the API enter the workflow at pending; Draft requests a draft
// save instead.
type CreateArticleInput struct {
	Actor       domain.Actor
	Title       string
	Body        string
	CoverURL    string
	PublisherID string
	Draft       bool
}

// UpdateArticleInput carries a partial update. Empty strings leave the
// corresponding field unchanged; Status, when set, must be a valid workflow
// status and may move the article into any state (the save re-validates the
// approval invariants, and a move into approved triggers the fan-out).
type UpdateArticleInput struct {
	Actor    domain.Actor
	ID       string
	Title    string
	Body     string
	CoverURL string
	Status   string
}

// ApproveResult is returned by Approve. Status is "approved" on a fresh
// transition and "already_approved" when the article was approved before
// the call (or a concurrent approval won the race). Notified counts the
// subscriber messages dispatched by this call; it is always zero for
// already_approved.
type ApproveResult struct {
	Status     string
	ApprovedAt time.Time
	Notified   int
}

// DashboardCounts is the role-shaped summary for the dashboard view.
// Pending and Draft are populated for editors and admins, Mine for
// journalists; Approved is always set.
type DashboardCounts struct {
	Approved int64
	Pending  int64
	Draft    int64
	Mine     int64
}

// ArticleService defines the use-case operations of the approval workflow.
type ArticleService interface {
	Create(ctx context.Context, in CreateArticleInput) (*domain.Article, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.Article, error)
	Update(ctx context.Context, in UpdateArticleInput) (*domain.Article, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error

	// Approve is idempotent: approving an approved article is a no-op that
	// reports the existing timestamp and dispatches nothing.
	Approve(ctx context.Context, actor domain.Actor, id string) (*ApproveResult, error)

	// List is the landing query: visibility is shaped by the actor's role
	// (anonymous and readers see approved only, journalists additionally
	// their own, editors and admins everything).
	List(ctx context.Context, actor domain.Actor) ([]*domain.Article, error)
	// Mine lists the journalist's own articles, newest first.
	Mine(ctx context.Context, actor domain.Actor) ([]*domain.Article, error)
	// Subscribed lists approved articles from the reader's subscribed
	// publishers and journalists, newest approval first.
	Subscribed(ctx context.Context, actor domain.Actor) ([]*domain.Article, error)
	// ReviewQueue lists pending articles for editors, oldest first.
	ReviewQueue(ctx context.Context, actor domain.Actor) ([]*domain.Article, error)

	Dashboard(ctx context.Context, actor domain.Actor) (*DashboardCounts, error)
}
