package domain

import "time"

// ============================================================
// Users & permission groups
// ============================================================

// User is an application user managed through the admin surface.
type User struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	PermissionGroupID string    `json:"permission_group_id,omitempty"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
}

// UserRequest is the payload for creating or updating a user. Password is
// accepted only on this inbound shape; it is hashed before it reaches the
// store and never echoed back.
type UserRequest struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Password          string `json:"password,omitempty"`
	PermissionGroupID string `json:"permission_group_id,omitempty"`
	IsActive          *bool  `json:"is_active,omitempty"`
}

// PermissionGroup bundles feature permissions assignable to users.
type PermissionGroup struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Permissions []string  `json:"permissions"` // e.g. accounts:write, imports:review
	CreatedAt   time.Time `json:"created_at"`
}

// PermissionGroupRequest is the payload for creating or updating a group.
type PermissionGroupRequest struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}
