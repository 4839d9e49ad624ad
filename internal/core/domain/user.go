package domain

import "time"

// Role determines a user's capability set. Each user holds exactly one role;
// capabilities are derived from it in code (see policy.go), there is no
// separate group or permission table.
type Role string

const (
	RoleReader     Role = "reader"
	RoleEditor     Role = "editor"
	RoleJournalist Role = "journalist"
	// RoleAdmin is the staff/superuser override: every policy decision is
	// granted. Admin accounts are seeded, never self-registered.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleReader, RoleEditor, RoleJournalist, RoleAdmin:
		return true
	}
	return false
}

// User models an account in the newsroom.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email,omitempty" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         Role      `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`

	// Reader fields: publishers and journalists this user follows.
	SubscribedPublisherIDs  []string `json:"subscribed_publisher_ids,omitempty" bson:"subscribed_publisher_ids,omitempty"`
	SubscribedJournalistIDs []string `json:"subscribed_journalist_ids,omitempty" bson:"subscribed_journalist_ids,omitempty"`

	// Journalist field: articles published independently of a publisher.
	// Kept as a mirror of the authorship relation for older clients.
	PublishedArticleIDs []string `json:"published_article_ids,omitempty" bson:"published_article_ids,omitempty"`
}

func (u *User) IsReader() bool     { return u.Role == RoleReader }
func (u *User) IsEditor() bool     { return u.Role == RoleEditor }
func (u *User) IsJournalist() bool { return u.Role == RoleJournalist }
func (u *User) IsAdmin() bool      { return u.Role == RoleAdmin }

// ValidateRole enforces the role exclusivity invariants checked on every
// user save:
//   - journalists cannot carry reader subscriptions
//   - readers cannot carry journalist publishing fields
//
// Editors and admins are unrestricted.
func (u *User) ValidateRole() error {
	if u.Role == RoleJournalist &&
		(len(u.SubscribedPublisherIDs) > 0 || len(u.SubscribedJournalistIDs) > 0) {
		return &ValidationError{Field: "subscriptions", Reason: "journalists cannot have reader subscriptions"}
	}
	if u.Role == RoleReader && len(u.PublishedArticleIDs) > 0 {
		return &ValidationError{Field: "published_articles", Reason: "readers cannot have journalist publishing fields"}
	}
	return nil
}

// JournalistProfile is the extended one-to-one profile for journalist users.
// It is created automatically the first time a user is saved with the
// journalist role and retained if the role later changes.
type JournalistProfile struct {
	UserID    string    `json:"user_id" bson:"_id"`
	Bio       string    `json:"bio,omitempty" bson:"bio,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
