package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/newsroom-io/newsroom-api/internal/core/domain"
	"github.com/newsroom-io/newsroom-api/internal/core/ports"
)

type setRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=reader editor journalist admin"`
}

type profileResponse struct {
	Username  string    `json:"username"`
	Bio       string    `json:"bio,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// UserHandler handles role administration, subscriptions and journalist
// profile lookup.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// SetRole handles PUT /v1/users/:username/role (admin only).
//
// @Summary      Change a user's role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string          true  "Username"
// @Param        body      body      setRoleRequest  true  "New role"
// @Success      200       {object}  userResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Failure      422       {object}  errorResponse
// @Router       /v1/users/{username}/role [put]
func (h *UserHandler) SetRole(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req setRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.service.SetRole(c.Request().Context(), actor, c.Param("username"), domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// SubscribePublisher handles POST /v1/subscriptions/publishers/:id.
//
// @Summary      Subscribe to a publisher
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Publisher ID"
// @Success      200  {object}  statusResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/subscriptions/publishers/{id} [post]
func (h *UserHandler) SubscribePublisher(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.SubscribeToPublisher(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "subscribed"})
}

// UnsubscribePublisher handles DELETE /v1/subscriptions/publishers/:id.
//
// @Summary      Unsubscribe from a publisher
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Publisher ID"
// @Success      200  {object}  statusResponse
// @Router       /v1/subscriptions/publishers/{id} [delete]
func (h *UserHandler) UnsubscribePublisher(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.UnsubscribeFromPublisher(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "unsubscribed"})
}

// SubscribeJournalist handles POST /v1/subscriptions/journalists/:id.
//
// @Summary      Subscribe to a journalist
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Journalist user ID"
// @Success      200  {object}  statusResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/subscriptions/journalists/{id} [post]
func (h *UserHandler) SubscribeJournalist(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.SubscribeToJournalist(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "subscribed"})
}

// UnsubscribeJournalist handles DELETE /v1/subscriptions/journalists/:id.
//
// @Summary      Unsubscribe from a journalist
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Journalist user ID"
// @Success      200  {object}  statusResponse
// @Router       /v1/subscriptions/journalists/{id} [delete]
func (h *UserHandler) UnsubscribeJournalist(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.UnsubscribeFromJournalist(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "unsubscribed"})
}

// Profile handles GET /v1/profiles/:username.
//
// @Summary      Get a journalist's public profile
// @Tags         users
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  profileResponse
// @Failure      404       {object}  errorResponse
// @Router       /v1/profiles/{username} [get]
func (h *UserHandler) Profile(c echo.Context) error {
	profile, user, err := h.service.Profile(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{
		Username:  user.Username,
		Bio:       profile.Bio,
		AvatarURL: profile.AvatarURL,
		CreatedAt: profile.CreatedAt,
	})
}
