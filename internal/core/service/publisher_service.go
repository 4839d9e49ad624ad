package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/newsroom-io/newsroom-api/internal/core/domain"
	"github.com/newsroom-io/newsroom-api/internal/core/ports"
)

// PublisherService implements publisher administration and lookup.
type PublisherService struct {
	publishers ports.PublisherRepository
	users      ports.UserRepository
	logger     zerolog.Logger
}

func NewPublisherService(publishers ports.PublisherRepository, users ports.UserRepository, logger zerolog.Logger) *PublisherService {
	return &PublisherService{publishers: publishers, users: users, logger: logger}
}

// Create registers a new publisher. Only admins may create publishers, and
// any staff roster members must hold the matching role.
func (s *PublisherService) Create(ctx context.Context, in ports.CreatePublisherInput) (*domain.Publisher, error) {
	if in.Actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "name is required"}
	}

	// Pre-check the name so duplicates surface as a conflict instead of a
	// bare index violation. The unique index still backs concurrent creates.
	if _, err := s.publishers.FindByName(ctx, in.Name); err == nil {
		return nil, domain.ErrPublisherExists
	} else if !errors.Is(err, domain.ErrPublisherNotFound) {
		return nil, fmt.Errorf("create publisher: %w", err)
	}

	if err := s.checkRoster(ctx, in.EditorIDs, domain.RoleEditor); err != nil {
		return nil, err
	}
	if err := s.checkRoster(ctx, in.JournalistIDs, domain.RoleJournalist); err != nil {
		return nil, err
	}

	publisher := &domain.Publisher{
		Name:          in.Name,
		Description:   in.Description,
		EditorIDs:     in.EditorIDs,
		JournalistIDs: in.JournalistIDs,
		CreatedAt:     time.Now().UTC(),
	}

	created, err := s.publishers.Create(ctx, publisher)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("publisher", created.Name).Str("created_by", in.Actor.ID).Msg("publisher created")
	return created, nil
}

func (s *PublisherService) Get(ctx context.Context, id string) (*domain.Publisher, error) {
	return s.publishers.FindByID(ctx, id)
}

func (s *PublisherService) List(ctx context.Context) ([]*domain.Publisher, error) {
	return s.publishers.List(ctx)
}

func (s *PublisherService) checkRoster(ctx context.Context, ids []string, want domain.Role) error {
	for _, id := range ids {
		user, err := s.users.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("publisher roster: %w", err)
		}
		if user.Role != want {
			return &domain.ValidationError{
				Field:  "roster",
				Reason: fmt.Sprintf("user %s must hold the %s role", user.Username, want),
			}
		}
	}
	return nil
}
