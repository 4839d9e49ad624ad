package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/newsroom-io/newsroom-api/internal/core/domain"
	"github.com/newsroom-io/newsroom-api/internal/core/ports"
)

type stubArticleService struct {
	createFn  func(ctx context.Context, in ports.CreateArticleInput) (*domain.Article, error)
	approveFn func(ctx context.Context, actor domain.Actor, id string) (*ports.ApproveResult, error)
	listFn    func(ctx context.Context, actor domain.Actor) ([]*domain.Article, error)
}

func (s *stubArticleService) Create(ctx context.Context, in ports.CreateArticleInput) (*domain.Article, error) {
	return s.createFn(ctx, in)
}

func (s *stubArticleService) Get(context.Context, domain.Actor, string) (*domain.Article, error) {
	return nil, domain.ErrArticleNotFound
}

func (s *stubArticleService) Update(context.Context, ports.UpdateArticleInput) (*domain.Article, error) {
	return nil, domain.ErrArticleNotFound
}

func (s *stubArticleService) Delete(context.Context, domain.Actor, string) error {
	return domain.ErrArticleNotFound
}

func (s *stubArticleService) Approve(ctx context.Context, actor domain.Actor, id string) (*ports.ApproveResult, error) {
	return s.approveFn(ctx, actor, id)
}

func (s *stubArticleService) List(ctx context.Context, actor domain.Actor) ([]*domain.Article, error) {
	return s.listFn(ctx, actor)
}

func (s *stubArticleService) Mine(context.Context, domain.Actor) ([]*domain.Article, error) {
	return nil, nil
}

func (s *stubArticleService) Subscribed(context.Context, domain.Actor) ([]*domain.Article, error) {
	return nil, nil
}

func (s *stubArticleService) ReviewQueue(context.Context, domain.Actor) ([]*domain.Article, error) {
	return nil, nil
}

func (s *stubArticleService) Dashboard(context.Context, domain.Actor) (*ports.DashboardCounts, error) {
	return &ports.DashboardCounts{}, nil
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, userID, role string) echo.Context {
	c := e.NewContext(req, rec)
	c.Set("username", "tester")
	c.Set("role", role)
	c.Set("user_id", userID)
	return c
}

func TestArticleHandler_Create_Success(t *testing.T) {
	e := newEcho()
	stub := &stubArticleService{
		createFn: func(_ context.Context, in ports.CreateArticleInput) (*domain.Article, error) {
			if in.Actor.ID != "j1" || in.Actor.Role != domain.RoleJournalist {
				t.Fatalf("unexpected actor: %+v", in.Actor)
			}
			if in.Title != "Breaking" || in.PublisherID != "pub_1" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Article{
				ID: "a1", Title: in.Title, Body: in.Body,
				PublisherID: in.PublisherID, AuthorID: in.Actor.ID,
				Status: domain.StatusPending,
			}, nil
		},
	}
	h := NewArticleHandler(stub)

	body := strings.NewReader(`{"title":"Breaking","body":"text","publisher_id":"pub_1"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/articles", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "j1", "journalist")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "pending" || resp["id"] != "a1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestArticleHandler_Create_MissingTitle(t *testing.T) {
	e := newEcho()
	stub := &stubArticleService{
		createFn: func(context.Context, ports.CreateArticleInput) (*domain.Article, error) {
			t.Fatal("service must not be called on invalid input")
			return nil, nil
		},
	}
	h := NewArticleHandler(stub)

	body := strings.NewReader(`{"body":"text","publisher_id":"pub_1"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/articles", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "j1", "journalist")

	err := h.Create(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 HTTP error, got %v", err)
	}
}

func TestArticleHandler_Create_MissingClaims(t *testing.T) {
	e := newEcho()
	h := NewArticleHandler(&stubArticleService{})

	req := httptest.NewRequest(http.MethodPost, "/v1/articles", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec) // no claims set

	err := h.Create(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTP error, got %v", err)
	}
}

func TestArticleHandler_Approve(t *testing.T) {
	e := newEcho()
	ts := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	stub := &stubArticleService{
		approveFn: func(_ context.Context, actor domain.Actor, id string) (*ports.ApproveResult, error) {
			if actor.ID != "e1" || id != "a1" {
				t.Fatalf("unexpected call: %+v %s", actor, id)
			}
			return &ports.ApproveResult{Status: "approved", ApprovedAt: ts, Notified: 5}, nil
		},
	}
	h := NewArticleHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/v1/articles/a1/approve", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "e1", "editor")
	c.SetParamNames("id")
	c.SetParamValues("a1")

	if err := h.Approve(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp approveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Status != "approved" || resp.Notified != 5 || !resp.ApprovedAt.Equal(ts) {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestArticleHandler_Approve_ForbiddenPropagates(t *testing.T) {
	e := newEcho()
	stub := &stubArticleService{
		approveFn: func(context.Context, domain.Actor, string) (*ports.ApproveResult, error) {
			return nil, domain.ErrForbidden
		},
	}
	h := NewArticleHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/v1/articles/a1/approve", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "j1", "journalist")
	c.SetParamNames("id")
	c.SetParamValues("a1")

	if err := h.Approve(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("service errors must pass through to the error handler, got %v", err)
	}
}

func TestArticleHandler_List_AnonymousActor(t *testing.T) {
	e := newEcho()
	stub := &stubArticleService{
		listFn: func(_ context.Context, actor domain.Actor) ([]*domain.Article, error) {
			if !actor.Anonymous() {
				t.Fatalf("expected anonymous actor, got %+v", actor)
			}
			return []*domain.Article{{ID: "a1", Status: domain.StatusApproved}}, nil
		},
	}
	h := NewArticleHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/articles", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp articleListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Count != 1 || len(resp.Items) != 1 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}
