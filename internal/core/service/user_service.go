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

// UserService covers role administration, the subscription graph, and
// journalist profiles.
type UserService struct {
	users      ports.UserRepository
	publishers ports.PublisherRepository
	logger     zerolog.Logger
}

func NewUserService(users ports.UserRepository, publishers ports.PublisherRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, publishers: publishers, logger: logger}
}

// SetRole replaces a user's role (admin only). The role exclusivity
// invariants are checked against the user's current subscription and
// publishing state before the write; a save into the journalist role
// creates the journalist profile if missing.
func (s *UserService) SetRole(ctx context.Context, actor domain.Actor, username string, role domain.Role) (*domain.User, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if !role.Valid() {
		return nil, &domain.ValidationError{Field: "role", Reason: "unknown role " + string(role)}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := user.ValidateRole(); err != nil {
		return nil, err
	}

	if err := s.users.SetRole(ctx, user.ID, role); err != nil {
		return nil, fmt.Errorf("set role: %w", err)
	}

	if role == domain.RoleJournalist {
		if err := s.ensureProfile(ctx, user.ID); err != nil {
			// The role change is committed; the profile can be created on
			// the next save.
			s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to ensure journalist profile")
		}
	}

	s.logger.Info().
		Str("user", user.Username).
		Str("role", string(role)).
		Str("changed_by", actor.ID).
		Msg("role changed")

	return user, nil
}

// SubscribeToPublisher adds the publisher to the reader's subscriptions.
func (s *UserService) SubscribeToPublisher(ctx context.Context, actor domain.Actor, publisherID string) error {
	reader, err := s.requireReader(ctx, actor)
	if err != nil {
		return err
	}
	if _, err := s.publishers.FindByID(ctx, publisherID); err != nil {
		return err
	}
	if err := s.users.AddPublisherSubscription(ctx, reader.ID, publisherID); err != nil {
		return fmt.Errorf("subscribe publisher: %w", err)
	}
	metrics.SubscriptionsTotal.WithLabelValues("publisher", "subscribe").Inc()
	return nil
}

func (s *UserService) UnsubscribeFromPublisher(ctx context.Context, actor domain.Actor, publisherID string) error {
	reader, err := s.requireReader(ctx, actor)
	if err != nil {
		return err
	}
	if err := s.users.RemovePublisherSubscription(ctx, reader.ID, publisherID); err != nil {
		return fmt.Errorf("unsubscribe publisher: %w", err)
	}
	metrics.SubscriptionsTotal.WithLabelValues("publisher", "unsubscribe").Inc()
	return nil
}

// SubscribeToJournalist adds the journalist to the reader's subscriptions.
// The target must hold the journalist role; the relation is asymmetric and
// creates no reciprocal edge.
func (s *UserService) SubscribeToJournalist(ctx context.Context, actor domain.Actor, journalistID string) error {
	reader, err := s.requireReader(ctx, actor)
	if err != nil {
		return err
	}
	target, err := s.users.FindByID(ctx, journalistID)
	if err != nil {
		return err
	}
	if !target.IsJournalist() {
		return &domain.ValidationError{Field: "journalist", Reason: "subscription target must hold the journalist role"}
	}
	if err := s.users.AddJournalistSubscription(ctx, reader.ID, target.ID); err != nil {
		return fmt.Errorf("subscribe journalist: %w", err)
	}
	metrics.SubscriptionsTotal.WithLabelValues("journalist", "subscribe").Inc()
	return nil
}

func (s *UserService) UnsubscribeFromJournalist(ctx context.Context, actor domain.Actor, journalistID string) error {
	reader, err := s.requireReader(ctx, actor)
	if err != nil {
		return err
	}
	if err := s.users.RemoveJournalistSubscription(ctx, reader.ID, journalistID); err != nil {
		return fmt.Errorf("unsubscribe journalist: %w", err)
	}
	metrics.SubscriptionsTotal.WithLabelValues("journalist", "unsubscribe").Inc()
	return nil
}

// Profile returns the journalist profile for a username.
func (s *UserService) Profile(ctx context.Context, username string) (*domain.JournalistProfile, *domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	profile, err := s.users.FindProfile(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return profile, user, nil
}

// requireReader resolves the actor and enforces that only readers hold
// subscriptions. Admins pass through for support tooling.
func (s *UserService) requireReader(ctx context.Context, actor domain.Actor) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin() {
		return user, nil
	}
	if !user.IsReader() {
		return nil, &domain.ValidationError{Field: "role", Reason: "only readers can hold subscriptions"}
	}
	return user, nil
}

func (s *UserService) ensureProfile(ctx context.Context, userID string) error {
	return s.users.EnsureProfile(ctx, &domain.JournalistProfile{
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	})
}
