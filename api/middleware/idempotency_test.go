package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	data map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string]string)}
}

func (f *fakeStore) Get(_ context.Context, key string) (string, error) {
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return "", redis.Nil
}

func (f *fakeStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	str, _ := value.(string)
	f.data[key] = str
	return nil
}

func (f *fakeStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	str, _ := value.(string)
	f.data[key] = str
	return true, nil
}

func (f *fakeStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeStore) IdempotencyKey(scope, id string) string {
	return fmt.Sprintf("fake:%s:%s", scope, id)
}

func TestRouteGuardSelection(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		want   bool
	}{
		{"application create", http.MethodPost, "/api/v1/merch_applications", true},
		{"application patch", http.MethodPatch, "/api/v1/merch_applications/7f0f7a5e-0000-0000-0000-000000000001", true},
		{"promocode create", http.MethodPost, "/api/v1/promocodes", true},
		{"guide assign", http.MethodPost, "/api/v1/guides", true},
		{"application list", http.MethodGet, "/api/v1/merch_applications", false},
		{"application delete", http.MethodDelete, "/api/v1/merch_applications/7f0f7a5e-0000-0000-0000-000000000001", false},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, routeGuarded(tt.method, tt.path), tt.name)
	}
}

func TestIdempotencyRequiresHeader(t *testing.T) {
	store := newFakeStore()
	mw := Idempotency(store, time.Hour, nil)
	handlerCalled := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/merch_applications", strings.NewReader(`{"foo":"bar"}`))
	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.False(t, handlerCalled)
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	store := newFakeStore()
	mw := Idempotency(store, time.Hour, nil)
	var calls int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	makeRequest := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/merch_applications", strings.NewReader(`{"foo":"bar"}`))
		req.Header.Set("Idempotency-Key", "abc")
		resp := httptest.NewRecorder()
		mw(handler).ServeHTTP(resp, req)
		return resp
	}

	first := makeRequest()
	require.Equal(t, http.StatusCreated, first.Code)

	second := makeRequest()
	require.Equal(t, http.StatusCreated, second.Code)
	require.Equal(t, first.Body.String(), second.Body.String())
	require.Equal(t, "application/json", second.Header().Get("Content-Type"))
	require.Equal(t, 1, calls)
}

func TestIdempotencyRejectsReusedKeyWithDifferentBody(t *testing.T) {
	store := newFakeStore()
	mw := Idempotency(store, time.Hour, nil)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	first := httptest.NewRequest(http.MethodPost, "/api/v1/merch_applications", strings.NewReader(`{"foo":"bar"}`))
	first.Header.Set("Idempotency-Key", "abc")
	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, first)
	require.Equal(t, http.StatusCreated, resp.Code)

	second := httptest.NewRequest(http.MethodPost, "/api/v1/merch_applications", strings.NewReader(`{"foo":"changed"}`))
	second.Header.Set("Idempotency-Key", "abc")
	resp = httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, second)
	require.Equal(t, http.StatusConflict, resp.Code)
	require.Contains(t, resp.Body.String(), "IDEMPOTENCY_KEY_REUSED")
}

func TestIdempotencySkipsUnguardedRoutes(t *testing.T) {
	store := newFakeStore()
	mw := Idempotency(store, time.Hour, nil)
	var calls int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/merch_applications", nil)
	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, req)

	require.Equal(t, 1, calls)
	require.Empty(t, store.data)
}
