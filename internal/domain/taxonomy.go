package domain

import "time"

// ============================================================
// Categories & tags
// ============================================================

// Category classifies ledger records for breakdown views.
type Category struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"` // CREDIT or DEBIT
	Color     string    `json:"color,omitempty"`
	Icon      string    `json:"icon,omitempty"`
	ParentID  string    `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryRequest is the payload for creating or updating a category.
type CategoryRequest struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Color    string `json:"color,omitempty"`
	Icon     string `json:"icon,omitempty"`
	ParentID string `json:"parent_id,omitempty"`
}

// Tag is a free-form label attachable to any ledger record.
type Tag struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TagRequest is the payload for creating or updating a tag.
type TagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}
