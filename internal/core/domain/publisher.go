package domain

import "time"

// Publisher is a publishing organization. Publishers are created
// administratively and read-mostly afterwards.
type Publisher struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`

	// Staff rosters. Editors must hold the editor role, journalists the
	// journalist role.
	EditorIDs     []string `json:"editor_ids,omitempty" bson:"editor_ids,omitempty"`
	JournalistIDs []string `json:"journalist_ids,omitempty" bson:"journalist_ids,omitempty"`
}
