package ports

import (
	"context"

	"github.com/newsroom-io/newsroom-api/internal/core/domain"
)

// AuthService implements registration and login. Self-registration always
// produces a reader; roles are changed afterwards through UserService.
type AuthService interface {
	Register(ctx context.Context, username, password, email string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
