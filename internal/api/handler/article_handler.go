package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/newsroom-io/newsroom-api/internal/core/ports"
)

// ArticleHandler handles HTTP requests for the article workflow.
type ArticleHandler struct {
	service ports.ArticleService
}

func NewArticleHandler(service ports.ArticleService) *ArticleHandler {
	return &ArticleHandler{service: service}
}

// List handles GET /v1/articles — the landing feed. Anonymous callers see
// approved articles only; visibility widens with the caller's role.
//
// @Summary      List articles visible to the caller
// @Tags         articles
// @Produce      json
// @Success      200  {object}  articleListResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/articles [get]
func (h *ArticleHandler) List(c echo.Context) error {
	actor := ctxOptionalActor(c)

	articles, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleListResponse(articles))
}

// Get handles GET /v1/articles/:id.
//
// @Summary      Get an article
// @Tags         articles
// @Produce      json
// @Param        id   path      string  true  "Article ID"
// @Success      200  {object}  articleResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/articles/{id} [get]
func (h *ArticleHandler) Get(c echo.Context) error {
	actor := ctxOptionalActor(c)

	article, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleResponse(article))
}

// Create handles POST /v1/articles.
//
// @Summary      Create an article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createArticleRequest  true  "Article details"
// @Success      201   {object}  articleResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/articles [post]
func (h *ArticleHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	article, err := h.service.Create(c.Request().Context(), ports.CreateArticleInput{
		Actor:       actor,
		Title:       req.Title,
		Body:        req.Body,
		CoverURL:    req.CoverURL,
		PublisherID: req.PublisherID,
		Draft:       req.Draft,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toArticleResponse(article))
}

// Update handles PUT /v1/articles/:id.
//
// @Summary      Update an article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Article ID"
// @Param        body  body      updateArticleRequest  true  "Fields to change"
// @Success      200   {object}  articleResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/articles/{id} [put]
func (h *ArticleHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	article, err := h.service.Update(c.Request().Context(), ports.UpdateArticleInput{
		Actor:    actor,
		ID:       c.Param("id"),
		Title:    req.Title,
		Body:     req.Body,
		CoverURL: req.CoverURL,
		Status:   req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleResponse(article))
}

// Delete handles DELETE /v1/articles/:id.
//
// @Summary      Delete an article
// @Tags         articles
// @Security     BearerAuth
// @Param        id  path  string  true  "Article ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/articles/{id} [delete]
func (h *ArticleHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Approve handles POST /v1/articles/:id/approve. Idempotent: a second call
// reports already_approved with the original timestamp.
//
// @Summary      Approve an article
// @Tags         articles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Article ID"
// @Success      200  {object}  approveResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/articles/{id}/approve [post]
func (h *ArticleHandler) Approve(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	result, err := h.service.Approve(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, approveResponse{
		Status:     result.Status,
		ApprovedAt: result.ApprovedAt,
		Notified:   result.Notified,
	})
}

// Mine handles GET /v1/articles/mine — the journalist's own articles.
//
// @Summary      List the caller's own articles
// @Tags         articles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  articleListResponse
// @Router       /v1/articles/mine [get]
func (h *ArticleHandler) Mine(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	articles, err := h.service.Mine(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleListResponse(articles))
}

// Subscribed handles GET /v1/articles/subscribed — the reader's feed.
//
// @Summary      List approved articles from the caller's subscriptions
// @Tags         articles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  articleListResponse
// @Router       /v1/articles/subscribed [get]
func (h *ArticleHandler) Subscribed(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	articles, err := h.service.Subscribed(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleListResponse(articles))
}

// Review handles GET /v1/articles/review — the editor's pending queue.
//
// @Summary      List pending articles awaiting review
// @Tags         articles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  articleListResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/articles/review [get]
func (h *ArticleHandler) Review(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	articles, err := h.service.ReviewQueue(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleListResponse(articles))
}

// Dashboard handles GET /v1/dashboard.
//
// @Summary      Role-shaped workflow counts
// @Tags         articles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Router       /v1/dashboard [get]
func (h *ArticleHandler) Dashboard(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	counts, err := h.service.Dashboard(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboardResponse{
		Approved: counts.Approved,
		Pending:  counts.Pending,
		Draft:    counts.Draft,
		Mine:     counts.Mine,
	})
}
