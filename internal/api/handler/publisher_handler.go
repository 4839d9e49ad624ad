package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/newsroom-io/newsroom-api/internal/core/domain"
	"github.com/newsroom-io/newsroom-api/internal/core/ports"
)

type createPublisherRequest struct {
	Name          string   `json:"name"        validate:"required,max=255"`
	Description   string   `json:"description"`
	EditorIDs     []string `json:"editor_ids"`
	JournalistIDs []string `json:"journalist_ids"`
}

type publisherResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	EditorIDs     []string  `json:"editor_ids,omitempty"`
	JournalistIDs []string  `json:"journalist_ids,omitempty"`
}

type publisherListResponse struct {
	Items []publisherResponse `json:"items"`
	Count int                 `json:"count"`
}

func toPublisherResponse(p *domain.Publisher) publisherResponse {
	return publisherResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		CreatedAt:     p.CreatedAt,
		EditorIDs:     p.EditorIDs,
		JournalistIDs: p.JournalistIDs,
	}
}

// PublisherHandler handles publisher lookup and administration.
type PublisherHandler struct {
	service ports.PublisherService
}

func NewPublisherHandler(service ports.PublisherService) *PublisherHandler {
	return &PublisherHandler{service: service}
}

// List handles GET /v1/publishers.
//
// @Summary      List publishers
// @Tags         publishers
// @Produce      json
// @Success      200  {object}  publisherListResponse
// @Router       /v1/publishers [get]
func (h *PublisherHandler) List(c echo.Context) error {
	publishers, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	items := make([]publisherResponse, 0, len(publishers))
	for _, p := range publishers {
		items = append(items, toPublisherResponse(p))
	}
	return c.JSON(http.StatusOK, publisherListResponse{Items: items, Count: len(items)})
}

// Get handles GET /v1/publishers/:id.
//
// @Summary      Get a publisher
// @Tags         publishers
// @Produce      json
// @Param        id   path      string  true  "Publisher ID"
// @Success      200  {object}  publisherResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/publishers/{id} [get]
func (h *PublisherHandler) Get(c echo.Context) error {
	publisher, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPublisherResponse(publisher))
}

// Create handles POST /v1/publishers (admin only).
//
// @Summary      Create a publisher
// @Tags         publishers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPublisherRequest  true  "Publisher details"
// @Success      201   {object}  publisherResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/publishers [post]
func (h *PublisherHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createPublisherRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	publisher, err := h.service.Create(c.Request().Context(), ports.CreatePublisherInput{
		Actor:         actor,
		Name:          req.Name,
		Description:   req.Description,
		EditorIDs:     req.EditorIDs,
		JournalistIDs: req.JournalistIDs,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toPublisherResponse(publisher))
}
