package model

import (
	"slices"
	"time"
)

// Content kinds offered by the client when bookmarking.
const (
	ContentKindYouTube    = "youtube"
	ContentKindTwitter    = "twitter"
	ContentKindLinkedIn   = "linkedin"
	ContentKindInstagram  = "instagram"
	ContentKindNotion     = "notion"
	ContentKindExcalidraw = "excalidraw"
	ContentKindEraser     = "eraser"
	ContentKindNote       = "note"
)

var ContentKinds = []string{
	ContentKindYouTube,
	ContentKindTwitter,
	ContentKindLinkedIn,
	ContentKindInstagram,
	ContentKindNotion,
	ContentKindExcalidraw,
	ContentKindEraser,
	ContentKindNote,
}

func IsContentKind(kind string) bool {
	return slices.Contains(ContentKinds, kind)
}

type Content struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"-"`
	Title     string    `db:"title" json:"title"`
	Kind      string    `db:"kind" json:"kind"`
	Locator   string    `db:"locator" json:"locator"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// IsNote reports whether Locator holds free text rather than a URL.
func (c *Content) IsNote() bool {
	return c.Kind == ContentKindNote
}
