package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth "github.com/harborlight/go-auth"
)

func newTestTokenService() *auth.HMACTokenService {
	return auth.NewTokenService(
		[]byte("test-signing-key"),
		time.Hour,
		"test-issuer",
		[]string{"test:audience"},
		quietLogger{},
	)
}

func TestTokenServiceIssueAndValidate(t *testing.T) {
	service := newTestTokenService()

	identity := TestIdentity{
		id:    "0193e7a1-2f3b-7c4d-8e5f-60718293a4b5",
		email: "u@a.com",
		name:  "U",
	}

	token, err := service.Issue(identity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, identity.id, claims.Subject())
	assert.Equal(t, identity.email, claims.UserEmail())
	assert.Equal(t, "test-issuer", claims.RegisteredClaims.Issuer)
	assert.NotEmpty(t, claims.RegisteredClaims.ID)

	assert.WithinDuration(t, time.Now(), claims.IssuedAtTime(), time.Minute)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.Expires(), time.Minute)
}

func TestTokenServiceIssueNilIdentity(t *testing.T) {
	service := newTestTokenService()

	_, err := service.Issue(nil)
	assert.Error(t, err)
}

func TestTokenServiceValidateExpired(t *testing.T) {
	service := newTestTokenService()

	now := time.Now()
	claims := &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "test-issuer",
			Subject:   "subject-id",
			Audience:  jwt.ClaimStrings{"test:audience"},
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
		Email: "u@a.com",
	}

	token, err := service.SignClaims(claims)
	require.NoError(t, err)

	_, err = service.Validate(token)
	require.Error(t, err)
	assert.True(t, auth.IsTokenExpiredError(err))
	assert.False(t, auth.IsMalformedError(err))
}

func TestTokenServiceValidateTampered(t *testing.T) {
	service := newTestTokenService()

	token, err := service.Issue(TestIdentity{id: "subject-id", email: "u@a.com"})
	require.NoError(t, err)

	t.Run("single byte flipped", func(t *testing.T) {
		for _, pos := range []int{2, len(token) / 2, len(token) - 2} {
			raw := []byte(token)
			if raw[pos] == 'A' {
				raw[pos] = 'B'
			} else {
				raw[pos] = 'A'
			}

			_, err := service.Validate(string(raw))
			assert.Error(t, err, "tampered byte at %d must not validate", pos)
			assert.True(t, auth.IsMalformedError(err) || auth.IsTokenExpiredError(err))
		}
	})

	t.Run("reversed token", func(t *testing.T) {
		runes := []rune(token)
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}

		_, err := service.Validate(string(runes))
		require.Error(t, err)
		assert.True(t, auth.IsMalformedError(err))
	})

	t.Run("garbage input", func(t *testing.T) {
		_, err := service.Validate("definitely.not.ajwt")
		require.Error(t, err)
		assert.True(t, auth.IsMalformedError(err))
	})
}

func TestTokenServiceValidateWrongKey(t *testing.T) {
	issuerService := newTestTokenService()
	otherService := auth.NewTokenService(
		[]byte("another-signing-key"),
		time.Hour,
		"test-issuer",
		[]string{"test:audience"},
		quietLogger{},
	)

	token, err := issuerService.Issue(TestIdentity{id: "subject-id", email: "u@a.com"})
	require.NoError(t, err)

	_, err = otherService.Validate(token)
	require.Error(t, err)
	assert.True(t, auth.IsMalformedError(err))
}

func TestTokenServiceRejectsUnexpectedSigningMethod(t *testing.T) {
	service := newTestTokenService()

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "test-issuer",
			Subject:   "subject-id",
			Audience:  jwt.ClaimStrings{"test:audience"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(token, "."))

	_, err = service.Validate(token)
	assert.Error(t, err)
}

func TestTokenServiceEnforcesIssuerAndAudience(t *testing.T) {
	service := newTestTokenService()
	foreign := auth.NewTokenService(
		[]byte("test-signing-key"),
		time.Hour,
		"other-issuer",
		[]string{"other:audience"},
		quietLogger{},
	)

	token, err := foreign.Issue(TestIdentity{id: "subject-id", email: "u@a.com"})
	require.NoError(t, err)

	_, err = service.Validate(token)
	assert.Error(t, err)
}

func TestTokenServiceDefaultTTL(t *testing.T) {
	service := auth.NewTokenService([]byte("k"), 0, "", nil, nil)
	assert.Equal(t, auth.DefaultTokenTTL, service.TTL())
}
