package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createArticleRequest struct {
	Title       string `json:"title"        validate:"required,max=255"`
	Body        string `json:"body"         validate:"required"`
	CoverURL    string `json:"cover_url"    validate:"omitempty,url"`
	PublisherID string `json:"publisher_id" validate:"required"`
	Draft       bool   `json:"draft"`
}

type updateArticleRequest struct {
	Title    string `json:"title"     validate:"omitempty,max=255"`
	Body     string `json:"body"`
	CoverURL string `json:"cover_url" validate:"omitempty,url"`
	Status   string `json:"status"    validate:"omitempty,oneof=draft pending approved rejected"`
}

// --- Response types ---

type articleResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	CoverURL    string     `json:"cover_url,omitempty"`
	PublisherID string     `json:"publisher_id"`
	AuthorID    string     `json:"author_id"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
}

type articleListResponse struct {
	Items []articleResponse `json:"items"`
	Count int               `json:"count"`
}

type approveResponse struct {
	Status     string    `json:"status"`
	ApprovedAt time.Time `json:"approved_at"`
	Notified   int       `json:"notified"`
}

type dashboardResponse struct {
	Approved int64 `json:"approved"`
	Pending  int64 `json:"pending"`
	Draft    int64 `json:"draft"`
	Mine     int64 `json:"mine"`
}
