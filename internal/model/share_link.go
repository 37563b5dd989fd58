package model

import (
	"time"
)

type ShareLink struct {
	ID         string     `db:"id"`
	UserID     string     `db:"user_id"`
	Hash       string     `db:"hash"`
	Active     bool       `db:"active"`
	CreatedAt  time.Time  `db:"created_at"`
	DisabledAt *time.Time `db:"disabled_at"`
}

// SharedItem is a content item as exposed on the public share page.
// HTML is only set for notes.
type SharedItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Kind      string    `json:"kind"`
	Locator   string    `json:"locator"`
	HTML      string    `json:"html,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// SharedView is the read-only snapshot served for an active share hash.
type SharedView struct {
	DisplayName string       `json:"displayName"`
	Items       []SharedItem `json:"items"`
}
