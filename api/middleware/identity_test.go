package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentityCapturesHeader(t *testing.T) {
	var captured string
	handler := Identity(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = UserIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	req.Header.Set("X-User-Id", "  42e109ae-72f1-4d4c-91f0-8f4a2c1f0001 ")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, "42e109ae-72f1-4d4c-91f0-8f4a2c1f0001", captured)
}

func TestIdentityMissingHeaderLeavesContextEmpty(t *testing.T) {
	var captured string
	handler := Identity(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = UserIDFromContext(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))

	require.Empty(t, captured)
}
