package devauth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightmath/campus-api/internal/ports"
)

func TestNewProvider_Validation(t *testing.T) {
	_, err := NewProvider(Config{Email: "dev@example.com"})
	require.Error(t, err)

	_, err = NewProvider(Config{Subject: "dev-user"})
	require.Error(t, err)

	p, err := NewProvider(Config{Subject: "dev-user", Email: "dev@example.com"})
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestProvider_Begin(t *testing.T) {
	p, err := NewProvider(Config{Subject: "dev-user", Email: "dev@example.com", GivenName: "Dev"})
	require.NoError(t, err)

	authURL, state, nonce, err := p.Begin(t.Context(), ports.BeginInput{RedirectURL: "/"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(authURL, "/auth/google/callback?code=dev&state="))
	assert.Len(t, state, 24)
	assert.Len(t, nonce, 24)
	assert.Contains(t, authURL, state)
}

func TestProvider_Exchange(t *testing.T) {
	p, err := NewProvider(Config{
		Subject:   "dev-user",
		Email:     "dev@example.com",
		GivenName: "Dev",
		LastName:  "Eloper",
	})
	require.NoError(t, err)

	identity, err := p.Exchange(t.Context(), ports.ExchangeInput{Code: "whatever"})
	require.NoError(t, err)
	assert.Equal(t, "dev-user", identity.Subject)
	assert.Equal(t, "dev@example.com", identity.Email)
	assert.Equal(t, "Dev", identity.GivenName)
	assert.Equal(t, "Eloper", identity.LastName)
}
