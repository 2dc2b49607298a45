// Package jwtware is the access guard: it extracts a bearer token from the
// request, validates it, and attaches the resolved claims to the request
// before the protected handler runs. Any failure short-circuits with a
// uniform 401; expired and malformed tokens are indistinguishable on the
// wire.
package jwtware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var ErrJWTMissingOrMalformed = errors.New("missing or malformed JWT")

// AuthClaims mirrors the claims surface from the auth package without
// importing it, so the middleware stays cycle-free.
type AuthClaims interface {
	Subject() string
	UserEmail() string
}

// TokenValidator validates raw tokens. This mirrors the TokenService.Validate
// method from the auth package.
type TokenValidator interface {
	Validate(raw string) (AuthClaims, error)
}

type Config struct {
	// Filter skips the middleware when it returns true
	Filter func(*fiber.Ctx) bool
	// SuccessHandler runs after claims have been attached; defaults to Next
	SuccessHandler fiber.Handler
	// ErrorHandler handles every rejection; defaults to a uniform 401
	ErrorHandler func(*fiber.Ctx, error) error
	// ContextKey is the fiber locals key the claims are stored under
	ContextKey string
	// TokenLookup is "<source>:<name>", e.g. "header:Authorization"
	TokenLookup string
	// AuthScheme is the expected header scheme prefix, e.g. "Bearer"
	AuthScheme string
	// TokenValidator is required for token validation
	TokenValidator TokenValidator
	// ContextEnricher propagates claims to the standard Go context after a
	// successful validation
	ContextEnricher func(context.Context, AuthClaims) context.Context
}

// New returns the guard middleware for the given configuration.
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)

	extractor := cfg.makeExtractor()

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		raw, err := extractor(c)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		claims, err := cfg.TokenValidator.Validate(raw)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		c.Locals(cfg.ContextKey, claims)

		if cfg.ContextEnricher != nil {
			c.SetUserContext(cfg.ContextEnricher(c.UserContext(), claims))
		}

		return cfg.SuccessHandler(c)
	}
}

func configDefault(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler
	}

	if cfg.TokenValidator == nil {
		panic("AUTH: JWT middleware configuration: TokenValidator is required.")
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "user"
	}

	if cfg.TokenLookup == "" {
		cfg.TokenLookup = "header:" + fiber.HeaderAuthorization
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	return cfg
}

// defaultErrorHandler answers every failure the same way so callers cannot
// probe which check rejected them.
func defaultErrorHandler(c *fiber.Ctx, _ error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": fiber.Map{
			"message":   "Unauthenticated",
			"text_code": "UNAUTHENTICATED",
		},
	})
}

type jwtExtractor func(*fiber.Ctx) (string, error)

func (cfg Config) makeExtractor() jwtExtractor {
	parts := strings.SplitN(cfg.TokenLookup, ":", 2)
	source, name := "header", fiber.HeaderAuthorization
	if len(parts) == 2 {
		source, name = parts[0], parts[1]
	}

	switch source {
	case "query":
		return func(c *fiber.Ctx) (string, error) {
			token := c.Query(name)
			if token == "" {
				return "", ErrJWTMissingOrMalformed
			}
			return token, nil
		}
	case "cookie":
		return func(c *fiber.Ctx) (string, error) {
			token := c.Cookies(name)
			if token == "" {
				return "", ErrJWTMissingOrMalformed
			}
			return token, nil
		}
	default:
		authScheme := cfg.AuthScheme
		return func(c *fiber.Ctx) (string, error) {
			value := c.Get(name)
			if authScheme == "" {
				if value == "" {
					return "", ErrJWTMissingOrMalformed
				}
				return value, nil
			}
			l := len(authScheme)
			if len(value) > l+1 && strings.EqualFold(value[:l], authScheme) && value[l] == ' ' {
				return strings.TrimSpace(value[l+1:]), nil
			}
			return "", ErrJWTMissingOrMalformed
		}
	}
}
