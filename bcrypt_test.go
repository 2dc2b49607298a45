package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth "github.com/harborlight/go-auth"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "Valid password",
			password: "securePassword123!",
			wantErr:  false,
		},
		{
			name:     "Empty password",
			password: "",
			wantErr:  true, // bcrypt can hash empty strings!
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := auth.HashPassword(tt.password)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, hash)

			err = auth.ComparePasswordAndHash(tt.password, hash)
			assert.NoError(t, err)
		})
	}
}

func TestHashPasswordFreshSalt(t *testing.T) {
	first, err := auth.HashPasswordCost("same-input", 4)
	require.NoError(t, err)

	second, err := auth.HashPasswordCost("same-input", 4)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, auth.VerifyPassword("same-input", first))
	assert.True(t, auth.VerifyPassword("same-input", second))
}

func TestComparePasswordAndHash(t *testing.T) {
	password := "testPassword123!"
	hash, err := auth.HashPasswordCost(password, 4)
	assert.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		wantErr  bool
	}{
		{
			name:     "Matching password",
			password: password,
			hash:     hash,
			wantErr:  false,
		},
		{
			name:     "Wrong password",
			password: "wrongPassword",
			hash:     hash,
			wantErr:  true,
		},
		{
			name:     "Invalid hash",
			password: password,
			hash:     "invalidhash",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.ComparePasswordAndHash(tt.password, tt.hash)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestVerifyPasswordFailsClosed(t *testing.T) {
	hash, err := auth.HashPasswordCost("correct horse", 4)
	require.NoError(t, err)

	assert.True(t, auth.VerifyPassword("correct horse", hash))
	assert.False(t, auth.VerifyPassword("battery staple", hash))
	assert.False(t, auth.VerifyPassword("correct horse", "$2a$corrupted"))
	assert.False(t, auth.VerifyPassword("correct horse", ""))
	assert.False(t, auth.VerifyPassword("correct horse", "not-a-bcrypt-hash"))
}
