package auth_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	auth "github.com/harborlight/go-auth"
)

// TestIdentity is a simple implementation of Identity interface for testing
type TestIdentity struct {
	id    string
	email string
	name  string
}

func (t TestIdentity) ID() string          { return t.id }
func (t TestIdentity) Email() string       { return t.email }
func (t TestIdentity) DisplayName() string { return t.name }

// MockUsers implements auth.Users
type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	args := m.Called(ctx, email)
	if user := args.Get(0); user != nil {
		return user.(*auth.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	args := m.Called(ctx, id)
	if user := args.Get(0); user != nil {
		return user.(*auth.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) Create(ctx context.Context, user *auth.User) (*auth.User, error) {
	args := m.Called(ctx, user)
	if created := args.Get(0); created != nil {
		return created.(*auth.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) Update(ctx context.Context, id uuid.UUID, update auth.UserUpdate) (*auth.User, error) {
	args := m.Called(ctx, id, update)
	if user := args.Get(0); user != nil {
		return user.(*auth.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLogger implements auth.Logger for testing
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}

// quietLogger swallows output so test logs stay readable
type quietLogger struct{}

func (quietLogger) Debug(string, ...any) {}
func (quietLogger) Info(string, ...any)  {}
func (quietLogger) Error(string, ...any) {}

// testConfig is a plain value implementation of auth.Config
type testConfig struct {
	signingKey  string
	ttl         time.Duration
	bcryptCost  int
	issuer      string
	audience    []string
	contextKey  string
	authScheme  string
	tokenLookup string
}

func newTestConfig() *testConfig {
	return &testConfig{
		signingKey: "test-signing-key",
		ttl:        time.Hour,
		bcryptCost: 4,
	}
}

func (c *testConfig) GetSigningKey() string { return c.signingKey }

func (c *testConfig) GetTokenTTL() time.Duration { return c.ttl }

func (c *testConfig) GetBcryptCost() int { return c.bcryptCost }

func (c *testConfig) GetIssuer() string { return c.issuer }

func (c *testConfig) GetAudience() []string { return c.audience }

func (c *testConfig) GetContextKey() string {
	if c.contextKey == "" {
		return "user"
	}
	return c.contextKey
}

func (c *testConfig) GetAuthScheme() string {
	if c.authScheme == "" {
		return "Bearer"
	}
	return c.authScheme
}

func (c *testConfig) GetTokenLookup() string {
	if c.tokenLookup == "" {
		return "header:Authorization"
	}
	return c.tokenLookup
}
