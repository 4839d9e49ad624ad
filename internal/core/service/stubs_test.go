package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/newsroom-io/newsroom-api/internal/core/domain"
	"github.com/newsroom-io/newsroom-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory article repository
// ---------------------------------------------------------------------------

type stubArticleRepo struct {
	byID      map[string]*domain.Article
	seq       int
	createErr error
	listErr   error

	// raceApprovedAt simulates a concurrent approval winning between the
	// service's read and its compare-and-swap: Approve stamps the stored
	// article with this timestamp and reports that the caller lost.
	raceApprovedAt *time.Time
}

func newStubArticleRepo() *stubArticleRepo {
	return &stubArticleRepo{byID: make(map[string]*domain.Article)}
}

func (r *stubArticleRepo) Create(_ context.Context, a *domain.Article) error {
	if r.createErr != nil {
		return r.createErr
	}
	if a.ID == "" {
		r.seq++
		a.ID = fmt.Sprintf("art_%d", r.seq)
	}
	clone := *a
	r.byID[a.ID] = &clone
	return nil
}

func (r *stubArticleRepo) FindByID(_ context.Context, id string) (*domain.Article, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubArticleRepo) Update(_ context.Context, a *domain.Article) error {
	if _, ok := r.byID[a.ID]; !ok {
		return domain.ErrArticleNotFound
	}
	clone := *a
	r.byID[a.ID] = &clone
	return nil
}

func (r *stubArticleRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrArticleNotFound
	}
	delete(r.byID, id)
	return nil
}

// List applies the same filters the real Mongo repo would use.
func (r *stubArticleRepo) List(_ context.Context, f ports.ArticleFilter) ([]*domain.Article, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}

	var matched []*domain.Article
	for _, a := range r.byID {
		if f.Status != "" && a.Status != f.Status {
			// VisibleOwnerID widens the status filter to the owner's own
			// articles regardless of status.
			if f.VisibleOwnerID == "" || a.AuthorID != f.VisibleOwnerID {
				continue
			}
		}
		if f.AuthorID != "" && a.AuthorID != f.AuthorID {
			continue
		}
		if len(f.PublisherIDs) > 0 || len(f.AuthorIDs) > 0 {
			if !containsStr(f.PublisherIDs, a.PublisherID) && !containsStr(f.AuthorIDs, a.AuthorID) {
				continue
			}
		}
		clone := *a
		matched = append(matched, &clone)
	}

	switch f.Sort {
	case ports.SortNewestApproved:
		sort.Slice(matched, func(i, j int) bool {
			ai, aj := derefTime(matched[i].ApprovedAt), derefTime(matched[j].ApprovedAt)
			if !ai.Equal(aj) {
				return ai.After(aj)
			}
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		})
	case ports.SortNewestCreated:
		sort.Slice(matched, func(i, j int) bool {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		})
	case ports.SortOldestCreated:
		sort.Slice(matched, func(i, j int) bool {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		})
	}

	return matched, nil
}

func (r *stubArticleRepo) Approve(_ context.Context, id string, ts time.Time) (bool, error) {
	a, ok := r.byID[id]
	if !ok {
		return false, domain.ErrArticleNotFound
	}
	if r.raceApprovedAt != nil {
		a.Status = domain.StatusApproved
		a.ApprovedAt = r.raceApprovedAt
		return false, nil
	}
	if a.Status == domain.StatusApproved {
		return false, nil
	}
	a.Status = domain.StatusApproved
	a.ApprovedAt = &ts
	a.UpdatedAt = ts
	return true, nil
}

func (r *stubArticleRepo) CountByStatus(_ context.Context) (map[domain.ArticleStatus]int64, error) {
	counts := make(map[domain.ArticleStatus]int64)
	for _, a := range r.byID {
		counts[a.Status]++
	}
	return counts, nil
}

func (r *stubArticleRepo) CountByAuthor(_ context.Context, authorID string) (int64, error) {
	var n int64
	for _, a := range r.byID {
		if a.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// In-memory user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID     map[string]*domain.User
	profiles map[string]*domain.JournalistProfile
	seq      int

	subscriberErr error
	profileErr    error
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{
		byID:     make(map[string]*domain.User),
		profiles: make(map[string]*domain.JournalistProfile),
	}
	for _, u := range users {
		clone := *u
		r.byID[u.ID] = &clone
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.byID {
		if existing.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	if user.ID == "" {
		r.seq++
		user.ID = fmt.Sprintf("user_%d", r.seq)
	}
	clone := *user
	r.byID[user.ID] = &clone
	return user, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) SetRole(_ context.Context, id string, role domain.Role) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *stubUserRepo) AddPublisherSubscription(_ context.Context, userID, publisherID string) error {
	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if !containsStr(u.SubscribedPublisherIDs, publisherID) {
		u.SubscribedPublisherIDs = append(u.SubscribedPublisherIDs, publisherID)
	}
	return nil
}

func (r *stubUserRepo) RemovePublisherSubscription(_ context.Context, userID, publisherID string) error {
	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.SubscribedPublisherIDs = removeStr(u.SubscribedPublisherIDs, publisherID)
	return nil
}

func (r *stubUserRepo) AddJournalistSubscription(_ context.Context, userID, journalistID string) error {
	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if !containsStr(u.SubscribedJournalistIDs, journalistID) {
		u.SubscribedJournalistIDs = append(u.SubscribedJournalistIDs, journalistID)
	}
	return nil
}

func (r *stubUserRepo) RemoveJournalistSubscription(_ context.Context, userID, journalistID string) error {
	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.SubscribedJournalistIDs = removeStr(u.SubscribedJournalistIDs, journalistID)
	return nil
}

// SubscriberEmails mirrors the real Mongo query: distinct non-empty emails
// of reader-role users subscribed to the publisher or to the author.
func (r *stubUserRepo) SubscriberEmails(_ context.Context, publisherID, authorID string) ([]string, error) {
	if r.subscriberErr != nil {
		return nil, r.subscriberErr
	}
	seen := make(map[string]bool)
	var emails []string
	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		u := r.byID[id]
		if u.Role != domain.RoleReader || u.Email == "" || seen[u.Email] {
			continue
		}
		if containsStr(u.SubscribedPublisherIDs, publisherID) || containsStr(u.SubscribedJournalistIDs, authorID) {
			seen[u.Email] = true
			emails = append(emails, u.Email)
		}
	}
	return emails, nil
}

func (r *stubUserRepo) EnsureProfile(_ context.Context, profile *domain.JournalistProfile) error {
	if r.profileErr != nil {
		return r.profileErr
	}
	if _, ok := r.profiles[profile.UserID]; ok {
		return nil
	}
	clone := *profile
	r.profiles[profile.UserID] = &clone
	return nil
}

func (r *stubUserRepo) FindProfile(_ context.Context, userID string) (*domain.JournalistProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

// ---------------------------------------------------------------------------
// In-memory publisher repository
// ---------------------------------------------------------------------------

type stubPublisherRepo struct {
	byID    map[string]*domain.Publisher
	seq     int
	creates int
}

func newStubPublisherRepo(publishers ...*domain.Publisher) *stubPublisherRepo {
	r := &stubPublisherRepo{byID: make(map[string]*domain.Publisher)}
	for _, p := range publishers {
		clone := *p
		r.byID[p.ID] = &clone
	}
	return r
}

func (r *stubPublisherRepo) Create(_ context.Context, p *domain.Publisher) (*domain.Publisher, error) {
	r.creates++
	for _, existing := range r.byID {
		if existing.Name == p.Name {
			return nil, domain.ErrPublisherExists
		}
	}
	if p.ID == "" {
		r.seq++
		p.ID = fmt.Sprintf("pub_%d", r.seq)
	}
	clone := *p
	r.byID[p.ID] = &clone
	return p, nil
}

func (r *stubPublisherRepo) FindByID(_ context.Context, id string) (*domain.Publisher, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPublisherNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPublisherRepo) FindByName(_ context.Context, name string) (*domain.Publisher, error) {
	for _, p := range r.byID {
		if p.Name == name {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrPublisherNotFound
}

func (r *stubPublisherRepo) List(_ context.Context) ([]*domain.Publisher, error) {
	var out []*domain.Publisher
	for _, p := range r.byID {
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ---------------------------------------------------------------------------
// Notification stubs
// ---------------------------------------------------------------------------

// recordingFanout captures fan-out invocations made by the article service.
type recordingFanout struct {
	calls  int
	lastID string
	report ports.FanoutReport
}

func (f *recordingFanout) ArticleApproved(_ context.Context, article *domain.Article, _ *domain.User, _ *domain.Publisher) ports.FanoutReport {
	f.calls++
	f.lastID = article.ID
	return f.report
}

type stubMailer struct {
	sent     []ports.Message
	sendErr  error
	batchErr error
}

func (m *stubMailer) Send(_ context.Context, msg ports.Message) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *stubMailer) SendBatch(_ context.Context, msgs []ports.Message) error {
	if m.batchErr != nil {
		return m.batchErr
	}
	m.sent = append(m.sent, msgs...)
	return nil
}

type stubPoster struct {
	posts    []string
	postErr  error
	disabled bool
}

func (p *stubPoster) Enabled() bool { return !p.disabled }

func (p *stubPoster) Post(_ context.Context, text string) error {
	if p.postErr != nil {
		return p.postErr
	}
	p.posts = append(p.posts, text)
	return nil
}

type stubGuard struct {
	allow    bool
	err      error
	acquired []string
}

func (g *stubGuard) Acquire(_ context.Context, articleID string) (bool, error) {
	g.acquired = append(g.acquired, articleID)
	if g.err != nil {
		return false, g.err
	}
	return g.allow, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func containsStr(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func removeStr(list []string, v string) []string {
	out := list[:0]
	for _, item := range list {
		if item != v {
			out = append(out, item)
		}
	}
	return out
}
