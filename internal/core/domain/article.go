package domain

import "time"

// ArticleStatus represents the workflow state of an article.
type ArticleStatus string

const (
	StatusDraft    ArticleStatus = "draft"
	StatusPending  ArticleStatus = "pending"
	StatusApproved ArticleStatus = "approved"
	StatusRejected ArticleStatus = "rejected"
)

// Valid reports whether s is one of the known workflow statuses.
func (s ArticleStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Article is the core aggregate: authored by a journalist, reviewed by an
// editor, surfaced publicly once approved.
//
// The workflow does not enumerate forbidden transitions — any status can be
// assigned on a save — but Validate and Normalize run on every save path so
// an inconsistent approval timestamp can never be persisted.
type Article struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	Title       string        `json:"title" bson:"title"`
	Body        string        `json:"body" bson:"body"`
	CoverURL    string        `json:"cover_url,omitempty" bson:"cover_url,omitempty"`
	PublisherID string        `json:"publisher_id" bson:"publisher_id"`
	AuthorID    string        `json:"author_id" bson:"author_id"`
	Status      ArticleStatus `json:"status" bson:"status"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" bson:"updated_at"`
	ApprovedAt  *time.Time    `json:"approved_at,omitempty" bson:"approved_at,omitempty"`
}

// IsApproved reports whether the article is in the approved state.
func (a *Article) IsApproved() bool {
	return a.Status == StatusApproved
}

// Validate enforces the invariants checked on every save:
//   - the author must hold the journalist role at save time
//   - approved_at may only be set while the status is approved
//
// A violation is a terminal, user-visible error blocking the save.
func (a *Article) Validate(author *User) error {
	if author == nil || !author.IsJournalist() {
		return &ValidationError{Field: "author", Reason: "author must hold the journalist role"}
	}
	if a.Status != StatusApproved && a.ApprovedAt != nil {
		return &ValidationError{Field: "approved_at", Reason: "approved_at can only be set when status is approved"}
	}
	return nil
}

// Normalize applies the approval timestamp correction: an approved article
// without a timestamp gets stamped with now. This is a correction, not a
// failure, and happens at most once per article unless the timestamp is
// manually cleared and the status cycles again.
func (a *Article) Normalize(now time.Time) {
	if a.Status == StatusApproved && a.ApprovedAt == nil {
		ts := now.UTC()
		a.ApprovedAt = &ts
	}
}

// JustApproved reports whether next represents a fresh transition into the
// approved state, judged against the last persisted snapshot prev. A nil
// prev means the article is being created. The comparison is deliberately a
// pure function of (old, new) so callers that construct articles without
// knowing prior state cannot trigger a spurious fan-out.
func JustApproved(prev, next *Article) bool {
	if next == nil || next.Status != StatusApproved {
		return false
	}
	return prev == nil || prev.Status != StatusApproved
}
