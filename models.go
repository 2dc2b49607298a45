package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the user model
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	UserID        uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserEmail     string     `bun:"email,notnull" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	Name          string     `bun:"name" json:"name,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

var _ Identity = (*User)(nil)

// ID implements Identity
func (u *User) ID() string {
	return u.UserID.String()
}

// Email implements Identity
func (u *User) Email() string {
	return u.UserEmail
}

// DisplayName implements Identity
func (u *User) DisplayName() string {
	return u.Name
}

// Public returns the public-safe projection; the hash never leaves the core
func (u *User) Public() *Profile {
	return &Profile{
		ID:    u.UserID,
		Email: u.UserEmail,
		Name:  u.Name,
	}
}

// Profile is the projection of a User handed to callers
type Profile struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name,omitempty"`
}
