package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func callThrough(t *testing.T, tokens *TokenManager, required bool, header string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	var seenUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest(http.MethodGet, "/api/v1/draws/42", nil)
	if header != "" {
		r.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	Middleware(tokens, required)(next).ServeHTTP(w, r)
	return w, seenUserID
}

func TestMiddleware_ValidToken(t *testing.T) {
	req := require.New(t)
	tokens := NewTokenManager("secret", time.Hour)
	signed, err := tokens.Generate("uuid-123", "a@example.com")
	req.NoError(err)

	w, userID := callThrough(t, tokens, true, "Bearer "+signed)

	req.Equal(http.StatusOK, w.Code)
	req.Equal("uuid-123", userID)
}

func TestMiddleware_MissingTokenRequired(t *testing.T) {
	req := require.New(t)
	w, _ := callThrough(t, NewTokenManager("secret", time.Hour), true, "")
	req.Equal(http.StatusUnauthorized, w.Code)
}

func TestMiddleware_MissingTokenOptional(t *testing.T) {
	req := require.New(t)
	w, userID := callThrough(t, NewTokenManager("secret", time.Hour), false, "")
	req.Equal(http.StatusOK, w.Code)
	req.Empty(userID)
}

func TestMiddleware_GarbageTokenRejectedEvenWhenOptional(t *testing.T) {
	req := require.New(t)
	w, _ := callThrough(t, NewTokenManager("secret", time.Hour), false, "Bearer garbage")
	req.Equal(http.StatusUnauthorized, w.Code)
}

func TestMiddleware_NonBearerSchemeRejected(t *testing.T) {
	req := require.New(t)
	tokens := NewTokenManager("secret", time.Hour)
	signed, err := tokens.Generate("uuid-123", "a@example.com")
	req.NoError(err)

	// A valid token under the wrong scheme, or bare, is not accepted.
	for _, header := range []string{"Basic " + signed, signed, "bearer " + signed} {
		w, _ := callThrough(t, tokens, true, header)
		req.Equal(http.StatusUnauthorized, w.Code, "header %q", header)
	}
}
