package login

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/h-rawat/book-api/internal/auth"
	resp "github.com/h-rawat/book-api/internal/lib/api/response"
	sl "github.com/h-rawat/book-api/internal/lib/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthenticator struct {
	mock.Mock
}

func (m *mockAuthenticator) Login(ctx context.Context, in auth.LoginInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func serve(t *testing.T, a UserAuthenticator, body string) (int, Response) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	New(sl.NewDiscardLogger(), a).ServeHTTP(rec, req)

	var out Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))

	return rec.Code, out
}

func TestLogin(t *testing.T) {
	in := auth.LoginInput{Username: "a@b.com", Password: "secret1"}

	tests := []struct {
		name      string
		token     string
		err       error
		wantCode  int
		wantError string
	}{
		{name: "success", token: "tok", wantCode: http.StatusOK},
		{name: "invalid credentials", err: fmt.Errorf("auth.Login: %w", auth.ErrInvalidCredentials), wantCode: http.StatusUnauthorized, wantError: "Invalid credentials"},
		{name: "store failure", err: errors.New("db down"), wantCode: http.StatusInternalServerError, wantError: "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &mockAuthenticator{}
			a.On("Login", mock.Anything, in).Return(tt.token, tt.err)

			code, out := serve(t, a, `{"username":"a@b.com","password":"secret1"}`)

			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.token, out.Token)
			assert.Equal(t, tt.wantError, out.Error)
			a.AssertExpectations(t)
		})
	}
}

func TestLogin_ValidationErrors(t *testing.T) {
	a := &mockAuthenticator{}
	a.On("Login", mock.Anything, auth.LoginInput{}).
		Return("", &auth.ValidationError{Errors: []string{"username is required", "password is required"}})

	code, out := serve(t, a, `{}`)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, resp.StatusError, out.Status)
	assert.Equal(t, []string{"username is required", "password is required"}, out.Errors)
}

func TestLogin_MalformedBody(t *testing.T) {
	a := &mockAuthenticator{}

	code, out := serve(t, a, `{"username":`)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Failed to decode request", out.Error)
	a.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}
