package domain

import "time"

// ============================================================
// Auth — Request / Response types (matches frontend API contract)
// ============================================================

// LoginRequest is the body for POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the body for 200 from POST /v1/auth/login.
type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
	UserID       string `json:"userId"`
	UserName     string `json:"userName"`
}

// RefreshRequest is the body for POST /v1/auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ChangePasswordRequest is the body for PUT /v1/auth/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// AuthCredential represents stored credentials in the finance API.
type AuthCredential struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	PasswordHash string     `json:"password_hash"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// AuthRefreshToken represents a stored refresh token. Only the SHA-256
// hash of the opaque token ever leaves this process.
type AuthRefreshToken struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"token_hash"`
	ExpiresAt time.Time `json:"expires_at"`
	Revoked   bool      `json:"revoked"`
}
