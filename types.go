package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Identity holds the attributes of an authenticatable account
type Identity interface {
	ID() string
	Email() string
	DisplayName() string
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	Register(ctx context.Context, input RegisterInput) (*Profile, error)
	Authenticate(ctx context.Context, email, password string) (*User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

// TokenService issues and validates bearer tokens
type TokenService interface {
	Issue(identity Identity) (string, error)
	SignClaims(claims *Claims) (string, error)
	Validate(raw string) (*Claims, error)
}

// TokenValidator validates raw tokens, it is the surface the
// access guard needs from a TokenService
type TokenValidator interface {
	Validate(raw string) (*Claims, error)
}

// Users is the store collaborator. Implementations must enforce email
// uniqueness; the authenticator's duplicate check is advisory only.
type Users interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	Create(ctx context.Context, user *User) (*User, error)
	Update(ctx context.Context, id uuid.UUID, update UserUpdate) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

// RegisterInput carries a registration request
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// UserUpdate is a partial update, nil fields are left untouched
type UserUpdate struct {
	Name         *string
	PasswordHash *string
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetTokenTTL() time.Duration
	GetBcryptCost() int
	GetIssuer() string
	GetAudience() []string
	GetContextKey() string
	GetAuthScheme() string
	GetTokenLookup() string
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Print("[ERR] AUTH " + logLine(format, args...))
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Print("[INF] AUTH " + logLine(format, args...))
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Print("[DBG] AUTH " + logLine(format, args...))
}

// logLine accepts both printf formats and key-value trailers. A format with
// no verbs gets its arguments appended instead of fed to Sprintf, which would
// render them as EXTRA noise.
func logLine(format string, args ...any) string {
	if len(args) > 0 && !strings.Contains(format, "%") {
		parts := make([]string, 0, len(args)+1)
		parts = append(parts, format)
		for _, arg := range args {
			parts = append(parts, fmt.Sprintf("%v", arg))
		}
		return newline(strings.Join(parts, " "))
	}
	return fmt.Sprintf(newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
