package ports

import (
	"context"

	"github.com/newsroom-io/newsroom-api/internal/core/domain"
)

// Message is a single outbound mail.
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// Mailer is the mail transport. Callers treat delivery as best-effort: a
// returned error is logged and never propagated past the fan-out boundary.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
	SendBatch(ctx context.Context, msgs []Message) error
}

// SocialPoster publishes a short announcement to an external social
// network. Enabled reports whether a credential is configured; callers
// skip Post entirely when it is false so reports never claim a post that
// was never attempted.
type SocialPoster interface {
	Enabled() bool
	Post(ctx context.Context, text string) error
}

// FanoutReport summarises one notification fan-out run. Transport failures
// are captured here rather than returned as errors.
type FanoutReport struct {
	ID             string
	ArticleID      string
	Recipients     int
	Delivered      int
	Failed         int
	AuthorNotified bool
	SocialPosted   bool
	// Skipped is true when the dedup guard saw a previous fan-out for the
	// same article and the run was abandoned before dispatch.
	Skipped bool
}

// FanoutService dispatches approval notifications. It never returns an
// error: the approval write that triggered it must not be failed by a
// transport problem.
type FanoutService interface {
	ArticleApproved(ctx context.Context, article *domain.Article, author *domain.User, publisher *domain.Publisher) FanoutReport
}
