package model

import "time"

// Role names stored in users.role and carried in the JWT role claim.
const (
	RoleClient        = "Client"
	RoleAdministrator = "Administrator"
)

// User represents an application user record as stored in the
// `users` table.  Bookings reference users by ID only; the booking
// core never loads a full user.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique, lower-cased email address.
//  PasswordHash – bcrypt hashed password.
//  DisplayName  – optional name shown in the UI.
//  Role         – Client or Administrator.
//  CreatedAt    – timestamp of creation.
//  LastLoginAt  – timestamp of the most recent successful login (nil if never).
type User struct {
	ID           uint64     // users.id
	Email        string     // users.email
	PasswordHash string     // users.password_hash
	DisplayName  *string    // users.display_name (nullable)
	Role         string     // users.role
	CreatedAt    time.Time  // users.created_at
	LastLoginAt  *time.Time // users.last_login_at (nullable)
}

// IsAdministrator reports whether the role grants administrative access.
func IsAdministrator(role string) bool { return role == RoleAdministrator }

// RefreshToken models an entry in the `refresh_tokens` table.  The
// plain token is not stored; only its SHA‑256 hash.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
