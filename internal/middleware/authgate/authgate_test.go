package authgate

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/h-rawat/book-api/internal/lib/jwt"
	sl "github.com/h-rawat/book-api/internal/lib/logger"
	"github.com/h-rawat/book-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newProtected(t *testing.T) (http.Handler, *bool, **jwt.Claims) {
	t.Helper()

	called := false
	var seen *jwt.Claims

	h := New(sl.NewDiscardLogger(), jwt.NewIssuer(testSecret, time.Hour))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			seen, _ = ClaimsFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}),
	)

	return h, &called, &seen
}

func do(h http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	return rr
}

func errorBody(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))

	return body.Error
}

func TestAuthGate_ValidToken(t *testing.T) {
	h, called, seen := newProtected(t)

	token, err := jwt.NewIssuer(testSecret, time.Hour).NewToken(models.User{ID: 5, Username: "a@b.com"})
	require.NoError(t, err)

	rr := do(h, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, *called)
	require.NotNil(t, *seen)
	assert.Equal(t, int64(5), (*seen).UserID)
	assert.Equal(t, "a@b.com", (*seen).Username)
}

func TestAuthGate_MissingHeader(t *testing.T) {
	h, called, _ := newProtected(t)

	rr := do(h, "")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, *called)
	assert.Equal(t, "Access denied: token missing", errorBody(t, rr))
}

func TestAuthGate_MalformedHeader(t *testing.T) {
	h, called, _ := newProtected(t)

	for _, header := range []string{"Bearer", "Bearer ", "Basic abc", "token", "Bearer a b"} {
		rr := do(h, header)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "header %q", header)
	}

	assert.False(t, *called)
}

func TestAuthGate_InvalidToken(t *testing.T) {
	h, called, _ := newProtected(t)

	rr := do(h, "Bearer garbage")

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.False(t, *called)
	assert.Equal(t, "Invalid token", errorBody(t, rr))
}

func TestAuthGate_ExpiredTokenIsForbidden(t *testing.T) {
	h, called, _ := newProtected(t)

	token, err := jwt.NewIssuer(testSecret, -time.Minute).NewToken(models.User{ID: 5})
	require.NoError(t, err)

	rr := do(h, "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.False(t, *called)
	assert.Equal(t, "Invalid token", errorBody(t, rr))
}

func TestAuthGate_WrongSecretIsForbidden(t *testing.T) {
	h, _, _ := newProtected(t)

	token, err := jwt.NewIssuer("other", time.Hour).NewToken(models.User{ID: 5})
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, do(h, "Bearer "+token).Code)
}

func TestAuthGate_SchemeIsCaseInsensitive(t *testing.T) {
	h, called, _ := newProtected(t)

	token, err := jwt.NewIssuer(testSecret, time.Hour).NewToken(models.User{ID: 5})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, do(h, "bearer "+token).Code)
	assert.True(t, *called)
}

func TestClaimsFromContext_Absent(t *testing.T) {
	_, ok := ClaimsFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}
