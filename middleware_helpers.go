package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/harborlight/go-auth/middleware/jwtware"
)

// GuardValidator adapts a TokenValidator to the mirrored interface the
// jwtware middleware consumes.
func GuardValidator(ts TokenValidator) jwtware.TokenValidator {
	return guardValidator{ts: ts}
}

type guardValidator struct {
	ts TokenValidator
}

func (g guardValidator) Validate(raw string) (jwtware.AuthClaims, error) {
	claims, err := g.ts.Validate(raw)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// ContextEnricherAdapter stores validated claims in the standard context so
// non-HTTP code can read the authenticated subject.
func ContextEnricherAdapter(c context.Context, claims jwtware.AuthClaims) context.Context {
	authClaims, ok := claims.(*Claims)
	if !ok {
		return c
	}
	return WithClaimsContext(c, authClaims)
}

// ProtectedRoute builds the guard middleware from auth configuration.
func ProtectedRoute(cfg Config, validator TokenValidator) fiber.Handler {
	return jwtware.New(jwtware.Config{
		TokenValidator:  GuardValidator(validator),
		ContextKey:      cfg.GetContextKey(),
		AuthScheme:      cfg.GetAuthScheme(),
		TokenLookup:     cfg.GetTokenLookup(),
		ContextEnricher: ContextEnricherAdapter,
	})
}
