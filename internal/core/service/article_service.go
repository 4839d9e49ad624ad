package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/newsroom-io/newsroom-api/internal/core/domain"
	"github.com/newsroom-io/newsroom-api/internal/core/ports"
	"github.com/newsroom-io/newsroom-api/internal/metrics"
)

// ArticleService implements the approval workflow use cases.
type ArticleService struct {
	articles   ports.ArticleRepository
	users      ports.UserRepository
	publishers ports.PublisherRepository
	fanout     ports.FanoutService
	logger     zerolog.Logger
}

func NewArticleService(
	articles ports.ArticleRepository,
	users ports.UserRepository,
	publishers ports.PublisherRepository,
	fanout ports.FanoutService,
	logger zerolog.Logger,
) *ArticleService {
	return &ArticleService{
		articles:   articles,
		users:      users,
		publishers: publishers,
		fanout:     fanout,
		logger:     logger,
	}
}

// Create stores a new article authored by the actor. API submissions enter
// the workflow at pending; Draft saves a draft instead.
func (s *ArticleService) Create(ctx context.Context, in ports.CreateArticleInput) (*domain.Article, error) {
	if !domain.Can(in.Actor, domain.ActionCreate, nil) {
		return nil, domain.ErrForbidden
	}

	author, err := s.users.FindByID(ctx, in.Actor.ID)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	if _, err := s.publishers.FindByID(ctx, in.PublisherID); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	status := domain.StatusPending
	if in.Draft {
		status = domain.StatusDraft
	}

	now := time.Now().UTC()
	article := &domain.Article{
		Title:       in.Title,
		Body:        in.Body,
		CoverURL:    in.CoverURL,
		PublisherID: in.PublisherID,
		AuthorID:    author.ID,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := article.Validate(author); err != nil {
		return nil, err
	}
	article.Normalize(now)

	if err := s.articles.Create(ctx, article); err != nil {
		s.logger.Error().Err(err).Str("author_id", author.ID).Msg("failed to create article")
		return nil, err
	}

	metrics.ArticlesCreatedTotal.WithLabelValues(string(article.Status)).Inc()
	s.logger.Info().
		Str("article_id", article.ID).
		Str("author", author.Username).
		Str("status", string(article.Status)).
		Msg("article created")

	return article, nil
}

// Get returns a single article subject to the view policy.
func (s *ArticleService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Article, error) {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.Can(actor, domain.ActionView, article) {
		return nil, domain.ErrForbidden
	}
	return article, nil
}

// Update applies a partial update. The save re-validates the approval
// invariants against the article's author. A status change into approved,
// detected against the last persisted snapshot, is gated on the approve
// capability and triggers the notification fan-out exactly as an explicit
// approval would.
func (s *ArticleService) Update(ctx context.Context, in ports.UpdateArticleInput) (*domain.Article, error) {
	prev, err := s.articles.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if !domain.Can(in.Actor, domain.ActionUpdate, prev) {
		return nil, domain.ErrForbidden
	}

	next := *prev
	if in.Title != "" {
		next.Title = in.Title
	}
	if in.Body != "" {
		next.Body = in.Body
	}
	if in.CoverURL != "" {
		next.CoverURL = in.CoverURL
	}
	if in.Status != "" {
		status := domain.ArticleStatus(in.Status)
		if !status.Valid() {
			return nil, &domain.ValidationError{Field: "status", Reason: "unknown status " + in.Status}
		}
		next.Status = status
	}

	// A save that moves the article into approved is an approval, no matter
	// which field carried it, so it demands the approve capability.
	if domain.JustApproved(prev, &next) && !domain.Can(in.Actor, domain.ActionApprove, prev) {
		return nil, domain.ErrForbidden
	}

	author, err := s.users.FindByID(ctx, next.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}

	now := time.Now().UTC()
	next.UpdatedAt = now
	if err := next.Validate(author); err != nil {
		return nil, err
	}
	next.Normalize(now)

	if err := s.articles.Update(ctx, &next); err != nil {
		s.logger.Error().Err(err).Str("article_id", next.ID).Msg("failed to update article")
		return nil, err
	}

	if domain.JustApproved(prev, &next) {
		metrics.ArticlesApprovedTotal.WithLabelValues("approved").Inc()
		s.notify(ctx, &next)
	}

	return &next, nil
}

// Delete removes an article subject to the delete policy.
func (s *ArticleService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !domain.Can(actor, domain.ActionDelete, article) {
		return domain.ErrForbidden
	}
	if err := s.articles.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("article_id", id).Str("actor_id", actor.ID).Msg("article deleted")
	return nil
}

// Approve transitions an article into the approved state and dispatches the
// notification fan-out synchronously before returning. It is idempotent: an
// already approved article (including one approved by a concurrent call
// racing this one) yields an "already_approved" result with the stored
// timestamp and zero notifications.
func (s *ArticleService) Approve(ctx context.Context, actor domain.Actor, id string) (*ports.ApproveResult, error) {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.Can(actor, domain.ActionApprove, article) {
		return nil, domain.ErrForbidden
	}

	if article.IsApproved() {
		metrics.ArticlesApprovedTotal.WithLabelValues("already_approved").Inc()
		return &ports.ApproveResult{
			Status:     "already_approved",
			ApprovedAt: derefTime(article.ApprovedAt),
		}, nil
	}

	now := time.Now().UTC()
	won, err := s.articles.Approve(ctx, id, now)
	if err != nil {
		return nil, fmt.Errorf("approve article: %w", err)
	}
	if !won {
		// Lost the race against a concurrent first approval. Report the
		// persisted timestamp; the winner owns the fan-out.
		current, err := s.articles.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		metrics.ArticlesApprovedTotal.WithLabelValues("already_approved").Inc()
		return &ports.ApproveResult{
			Status:     "already_approved",
			ApprovedAt: derefTime(current.ApprovedAt),
		}, nil
	}

	article.Status = domain.StatusApproved
	article.ApprovedAt = &now
	article.UpdatedAt = now

	metrics.ArticlesApprovedTotal.WithLabelValues("approved").Inc()
	s.logger.Info().
		Str("article_id", article.ID).
		Str("editor_id", actor.ID).
		Time("approved_at", now).
		Msg("article approved")

	report := s.notify(ctx, article)

	return &ports.ApproveResult{
		Status:     "approved",
		ApprovedAt: now,
		Notified:   report.Delivered,
	}, nil
}

// notify runs the fan-out for a freshly approved article. Any failure to
// assemble the context (author or publisher lookup) is logged and absorbed:
// notifications are best-effort and never undo the approval.
func (s *ArticleService) notify(ctx context.Context, article *domain.Article) ports.FanoutReport {
	author, err := s.users.FindByID(ctx, article.AuthorID)
	if err != nil {
		s.logger.Warn().Err(err).Str("article_id", article.ID).Msg("fanout skipped: author lookup failed")
		return ports.FanoutReport{ArticleID: article.ID, Skipped: true}
	}
	publisher, err := s.publishers.FindByID(ctx, article.PublisherID)
	if err != nil {
		s.logger.Warn().Err(err).Str("article_id", article.ID).Msg("fanout skipped: publisher lookup failed")
		return ports.FanoutReport{ArticleID: article.ID, Skipped: true}
	}
	return s.fanout.ArticleApproved(ctx, article, author, publisher)
}

// List returns the landing feed shaped by the actor's role.
func (s *ArticleService) List(ctx context.Context, actor domain.Actor) ([]*domain.Article, error) {
	filter := ports.ArticleFilter{Sort: ports.SortNewestApproved}

	switch actor.Role {
	case domain.RoleAdmin, domain.RoleEditor:
		// no status restriction
	case domain.RoleJournalist:
		filter.Status = domain.StatusApproved
		filter.VisibleOwnerID = actor.ID
	default: // reader or anonymous
		filter.Status = domain.StatusApproved
	}

	return s.articles.List(ctx, filter)
}

// Mine lists the journalist's own articles, newest first. Non-journalists
// get an empty result.
func (s *ArticleService) Mine(ctx context.Context, actor domain.Actor) ([]*domain.Article, error) {
	if actor.Role != domain.RoleJournalist && actor.Role != domain.RoleAdmin {
		return []*domain.Article{}, nil
	}
	return s.articles.List(ctx, ports.ArticleFilter{
		AuthorID: actor.ID,
		Sort:     ports.SortNewestCreated,
	})
}

// Subscribed lists approved articles from the reader's subscriptions,
// ordered by approval time then creation time, both descending. Users
// without the reader role get an empty result.
func (s *ArticleService) Subscribed(ctx context.Context, actor domain.Actor) ([]*domain.Article, error) {
	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if !user.IsReader() {
		return []*domain.Article{}, nil
	}
	if len(user.SubscribedPublisherIDs) == 0 && len(user.SubscribedJournalistIDs) == 0 {
		return []*domain.Article{}, nil
	}

	return s.articles.List(ctx, ports.ArticleFilter{
		Status:       domain.StatusApproved,
		PublisherIDs: user.SubscribedPublisherIDs,
		AuthorIDs:    user.SubscribedJournalistIDs,
		Sort:         ports.SortNewestApproved,
	})
}

// ReviewQueue lists pending articles for editors, oldest submission first.
func (s *ArticleService) ReviewQueue(ctx context.Context, actor domain.Actor) ([]*domain.Article, error) {
	if actor.Role != domain.RoleEditor && actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return s.articles.List(ctx, ports.ArticleFilter{
		Status: domain.StatusPending,
		Sort:   ports.SortOldestCreated,
	})
}

// Dashboard returns role-shaped workflow counts.
func (s *ArticleService) Dashboard(ctx context.Context, actor domain.Actor) (*ports.DashboardCounts, error) {
	byStatus, err := s.articles.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	counts := &ports.DashboardCounts{Approved: byStatus[domain.StatusApproved]}

	switch actor.Role {
	case domain.RoleEditor, domain.RoleAdmin:
		counts.Pending = byStatus[domain.StatusPending]
		counts.Draft = byStatus[domain.StatusDraft]
	case domain.RoleJournalist:
		mine, err := s.articles.CountByAuthor(ctx, actor.ID)
		if err != nil {
			return nil, fmt.Errorf("dashboard: %w", err)
		}
		counts.Mine = mine
	}

	return counts, nil
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
