package model

import "time"

// User represents a registered account as stored in the `users`
// table.  The user_id is a caller-chosen handle, unique across the
// table; the password is stored only as a bcrypt hash.  ExpiresOn
// marks the end of the current subscription period and gates the
// kids-zone listing.
//
// Fields:
//  UserID       – unique account handle.
//  Name         – display name, letters and spaces only.
//  PhoneNumber  – 10-digit mobile number.
//  PasswordHash – bcrypt hashed password.
//  Role         – MEMBER or ADMIN.
//  JoinedOn     – timestamp of registration.
//  ExpiresOn    – end of the active subscription period.
type User struct {
	UserID       string    // users.user_id
	Name         string    // users.name
	PhoneNumber  int64     // users.phone_number
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	JoinedOn     time.Time // users.joined_on
	ExpiresOn    time.Time // users.expires_on
}

// RefreshToken models an entry in the `refresh_tokens` table.  The
// plain token is never stored; only its SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    string     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
