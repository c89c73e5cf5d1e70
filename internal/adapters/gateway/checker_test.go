package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChecker_Validation(t *testing.T) {
	_, err := NewChecker(Config{})
	require.Error(t, err)

	_, err = NewChecker(Config{BaseURL: "http://pay.example.com", AccessExpr: "]["})
	require.Error(t, err)

	c, err := NewChecker(Config{BaseURL: "http://pay.example.com"})
	require.NoError(t, err)
	assert.Equal(t, "hasAccess", c.accessExpr)
}

func TestChecker_HasAccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "user-1", r.URL.Query().Get("userId"))
		assert.Equal(t, "mod-1", r.URL.Query().Get("moduleId"))
		assert.Equal(t, "Bearer gw-key", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{"hasAccess": true})
	}))
	defer srv.Close()

	c, err := NewChecker(Config{BaseURL: srv.URL, APIKey: "gw-key"})
	require.NoError(t, err)

	ok, err := c.HasAccess(t.Context(), "user-1", "mod-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestChecker_HasAccess_NestedExpression(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"entitlement": map[string]any{"active": false}},
		})
	}))
	defer srv.Close()

	c, err := NewChecker(Config{BaseURL: srv.URL, AccessExpr: "data.entitlement.active"})
	require.NoError(t, err)

	ok, err := c.HasAccess(t.Context(), "user-1", "mod-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestChecker_HasAccess_Errors(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		c, err := NewChecker(Config{BaseURL: srv.URL})
		require.NoError(t, err)

		_, err = c.HasAccess(t.Context(), "user-1", "mod-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 502")
	})

	t.Run("non-boolean selection", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"hasAccess": "yes"})
		}))
		defer srv.Close()

		c, err := NewChecker(Config{BaseURL: srv.URL})
		require.NoError(t, err)

		_, err = c.HasAccess(t.Context(), "user-1", "mod-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "did not select a boolean")
	})

	t.Run("missing IDs", func(t *testing.T) {
		c, err := NewChecker(Config{BaseURL: "http://pay.example.com"})
		require.NoError(t, err)

		_, err = c.HasAccess(t.Context(), "", "mod-1")
		require.Error(t, err)
	})
}
