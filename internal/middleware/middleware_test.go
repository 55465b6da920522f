package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TODOLIST_BACK-END/internal/auth"
	"TODOLIST_BACK-END/internal/utils"
)

type stubAuthenticator struct {
	users map[string]string
	err   error
	calls int
}

func (s *stubAuthenticator) Authenticate(ctx context.Context, username, password string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	if pw, ok := s.users[username]; ok && pw == password {
		return username, nil
	}
	return "", auth.ErrUnauthorized
}

func TestBasicAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		setAuth    func(r *http.Request)
		authErr    error
		wantStatus int
		wantUser   string
		wantCalls  int
	}{
		{
			name:       "valid credentials",
			setAuth:    func(r *http.Request) { r.SetBasicAuth("alice", "pw") },
			wantStatus: http.StatusOK,
			wantUser:   "alice",
			wantCalls:  1,
		},
		{
			name:       "missing header",
			setAuth:    func(r *http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "bearer token is not basic",
			setAuth:    func(r *http.Request) { r.Header.Set("Authorization", "Bearer abc") },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong password",
			setAuth:    func(r *http.Request) { r.SetBasicAuth("alice", "nope") },
			wantStatus: http.StatusUnauthorized,
			wantCalls:  1,
		},
		{
			name:       "store failure",
			setAuth:    func(r *http.Request) { r.SetBasicAuth("alice", "pw") },
			authErr:    errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
			wantCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubAuthenticator{users: map[string]string{"alice": "pw"}, err: tt.authErr}

			var gotUser string
			reached := false
			next := func(w http.ResponseWriter, r *http.Request) {
				reached = true
				gotUser, _ = utils.GetUsernameFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}

			r := httptest.NewRequest(http.MethodGet, "/users/me/", nil)
			tt.setAuth(r)
			w := httptest.NewRecorder()

			BasicAuthMiddleware(next, stub, "todo-api")(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCalls, stub.calls)
			assert.Equal(t, tt.wantStatus == http.StatusOK, reached)
			assert.Equal(t, tt.wantUser, gotUser)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, `Basic realm="todo-api"`, w.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	handler := RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	r := httptest.NewRequest(http.MethodGet, "/todos", nil)
	r.SetBasicAuth("alice", "topsecret")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	id := w.Header().Get(RequestIDHeader)
	require.NotEmpty(t, id)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, id, entry["request_id"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/todos", entry["path"])
	assert.EqualValues(t, http.StatusTeapot, entry["status"])
	assert.NotContains(t, buf.String(), "topsecret")
}

func TestRequestLoggerKeepsValidIncomingID(t *testing.T) {
	handler := RequestLogger(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	const incoming = "6f1c1f0e-8d4e-4f7b-9a57-2a8e5f5d3c11"
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, incoming)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, incoming, w.Header().Get(RequestIDHeader))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, "not-a-uuid")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(RequestIDHeader))
}
