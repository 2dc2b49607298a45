package auth

import (
	"context"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// Auther is the credential authenticator. It orchestrates the store, the
// password hasher, and the token service; it holds no per-request state.
type Auther struct {
	store        Users
	tokenService TokenService
	bcryptCost   int
	logger       Logger
}

var _ Authenticator = (*Auther)(nil)

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(store Users, cfg Config) *Auther {
	tokenService := NewTokenService(
		[]byte(cfg.GetSigningKey()),
		cfg.GetTokenTTL(),
		cfg.GetIssuer(),
		cfg.GetAudience(),
		defLogger{},
	)

	cost := cfg.GetBcryptCost()
	if cost <= 0 {
		cost = DefaultBcryptCost
	}

	return &Auther{
		store:        store,
		tokenService: tokenService,
		bcryptCost:   cost,
		logger:       defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithTokenService overrides the token service built from configuration.
func (s *Auther) WithTokenService(ts TokenService) *Auther {
	if ts != nil {
		s.tokenService = ts
	}
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Register creates a new identity. A taken email fails with ErrEmailTaken and
// leaves no record behind; the store's unique index covers the window between
// the lookup and the insert.
func (s *Auther) Register(ctx context.Context, input RegisterInput) (*Profile, error) {
	email := strings.TrimSpace(input.Email)

	_, err := s.store.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !goerrors.IsNotFound(err) {
		s.logger.Error("Register lookup error", "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check existing registration")
	}

	hash, err := HashPasswordCost(input.Password, s.bcryptCost)
	if err != nil {
		if goerrors.Is(err, ErrNoEmptyString) {
			return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid password provided")
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	user := &User{
		UserEmail:    email,
		PasswordHash: hash,
		Name:         input.Name,
	}

	if user, err = s.store.Create(ctx, user); err != nil {
		s.logger.Error("Register create error", "error", err)
		return nil, err
	}

	return user.Public(), nil
}

// Authenticate verifies an (email, password) pair. Unknown email and wrong
// password return the same ErrInvalidCredentials, nothing in the response
// reveals which one it was.
func (s *Auther) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.store.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if goerrors.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Authenticate lookup error", "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve user during verification")
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates and mints a bearer token. A failed login never issues
// a token.
func (s *Auther) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		s.logger.Info("Login rejected", "email", email)
		return "", err
	}

	token, err := s.tokenService.Issue(user)
	if err != nil {
		s.logger.Error("Login token issuance error", "error", err)
		return "", err
	}

	return token, nil
}
