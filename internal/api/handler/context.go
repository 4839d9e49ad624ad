package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/newsroom-io/newsroom-api/internal/core/domain"
)

// ctxActor extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: role and user_id
// must both be present, otherwise the token is structurally valid but
// operationally unusable.
func ctxActor(c echo.Context) (domain.Actor, error) {
	role, _ := c.Get("role").(string)
	if role == "" {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing user identity")
	}

	return domain.Actor{ID: userID, Role: domain.Role(role)}, nil
}

// ctxOptionalActor returns the actor when claims are present and the zero
// (anonymous) actor otherwise. Used behind OptionalAuth.
func ctxOptionalActor(c echo.Context) domain.Actor {
	role, _ := c.Get("role").(string)
	userID, _ := c.Get("user_id").(string)
	return domain.Actor{ID: userID, Role: domain.Role(role)}
}
