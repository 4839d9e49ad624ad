package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/newsroom-io/newsroom-api/internal/core/domain"
	"github.com/newsroom-io/newsroom-api/internal/core/ports"
	"github.com/newsroom-io/newsroom-api/internal/metrics"
)

// bodyPreviewLimit is the subscriber mail body truncation point. Longer
// bodies get an ellipsis marker appended.
const bodyPreviewLimit = 500

// socialTextLimit keeps the composed social post under the network's
// 280-character cap.
const socialTextLimit = 260

// FanoutGuard reserves the single fan-out slot for an article approval.
// Acquire returns false when a previous run already claimed the article.
type FanoutGuard interface {
	Acquire(ctx context.Context, articleID string) (bool, error)
}

// FanoutService computes the subscriber set for a freshly approved article
// and dispatches notifications. Every transport failure is logged and
// counted but never returned: the approval that triggered the fan-out has
// already committed and must not be disturbed.
type FanoutService struct {
	users  ports.UserRepository
	mailer ports.Mailer
	poster ports.SocialPoster
	guard  FanoutGuard
	from   string
	log    zerolog.Logger
}

func NewFanoutService(
	users ports.UserRepository,
	mailer ports.Mailer,
	poster ports.SocialPoster,
	guard FanoutGuard,
	from string,
	log zerolog.Logger,
) *FanoutService {
	return &FanoutService{
		users:  users,
		mailer: mailer,
		poster: poster,
		guard:  guard,
		from:   from,
		log:    log,
	}
}

// ArticleApproved runs one fan-out for the given approval transition.
func (s *FanoutService) ArticleApproved(ctx context.Context, article *domain.Article, author *domain.User, publisher *domain.Publisher) ports.FanoutReport {
	report := ports.FanoutReport{
		ID:        uuid.NewString(),
		ArticleID: article.ID,
	}
	started := time.Now()

	if s.guard != nil {
		ok, err := s.guard.Acquire(ctx, article.ID)
		if err != nil {
			s.log.Warn().Err(err).Str("article_id", article.ID).Msg("fanout guard check failed, dispatching anyway")
		} else if !ok {
			metrics.FanoutDedupTotal.WithLabelValues("hit").Inc()
			s.log.Debug().Str("article_id", article.ID).Msg("duplicate fanout skipped")
			report.Skipped = true
			return report
		} else {
			metrics.FanoutDedupTotal.WithLabelValues("miss").Inc()
		}
	}

	recipients, err := s.users.SubscriberEmails(ctx, publisher.ID, author.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("article_id", article.ID).Msg("subscriber query failed, notifying author only")
		recipients = nil
	}
	report.Recipients = len(recipients)

	subject := fmt.Sprintf("%s: %s", publisher.Name, article.Title)
	preview := truncateWithEllipsis(article.Body, bodyPreviewLimit)

	if len(recipients) > 0 {
		msgs := make([]ports.Message, 0, len(recipients))
		for _, addr := range recipients {
			msgs = append(msgs, ports.Message{
				From:    s.from,
				To:      []string{addr},
				Subject: subject,
				Body:    preview,
			})
		}
		if err := s.mailer.SendBatch(ctx, msgs); err != nil {
			metrics.NotificationErrorsTotal.WithLabelValues("mail").Inc()
			report.Failed = len(msgs)
			s.log.Warn().Err(err).Str("article_id", article.ID).Int("recipients", len(msgs)).Msg("subscriber mail dispatch failed")
		} else {
			report.Delivered = len(msgs)
			metrics.NotificationsSentTotal.WithLabelValues("subscriber").Add(float64(len(msgs)))
		}
	}

	if author.Email != "" && !contains(recipients, author.Email) {
		msg := ports.Message{
			From:    s.from,
			To:      []string{author.Email},
			Subject: "Article approved: " + article.Title,
			Body: fmt.Sprintf("Hi %s,\n\nYour article '%s' at %s was approved.",
				author.Username, article.Title, publisher.Name),
		}
		if err := s.mailer.Send(ctx, msg); err != nil {
			metrics.NotificationErrorsTotal.WithLabelValues("mail").Inc()
			s.log.Warn().Err(err).Str("article_id", article.ID).Msg("author mail dispatch failed")
		} else {
			report.AuthorNotified = true
			metrics.NotificationsSentTotal.WithLabelValues("author").Inc()
		}
	}

	if s.poster != nil && s.poster.Enabled() {
		text := truncateRunes(
			fmt.Sprintf("%s — by %s via %s", article.Title, author.Username, publisher.Name),
			socialTextLimit,
		)
		if err := s.poster.Post(ctx, text); err != nil {
			metrics.NotificationErrorsTotal.WithLabelValues("social").Inc()
			s.log.Warn().Err(err).Str("article_id", article.ID).Msg("social post failed")
		} else {
			report.SocialPosted = true
		}
	}

	metrics.FanoutDuration.Observe(time.Since(started).Seconds())
	s.log.Info().
		Str("fanout_id", report.ID).
		Str("article_id", article.ID).
		Int("recipients", report.Recipients).
		Int("delivered", report.Delivered).
		Int("failed", report.Failed).
		Bool("author_notified", report.AuthorNotified).
		Msg("fanout completed")

	return report
}

// truncateWithEllipsis cuts s at limit runes and appends "..." when
// anything was removed.
func truncateWithEllipsis(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}

// truncateRunes cuts s at limit runes without a marker.
func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
