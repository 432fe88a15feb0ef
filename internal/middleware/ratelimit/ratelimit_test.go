package rateLimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func hit(h http.Handler, remoteAddr string) int {
	req := httptest.NewRequest(http.MethodPost, "/forgot-password", nil)
	req.RemoteAddr = remoteAddr

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	return rr.Code
}

func TestForgotPassword_LimitsPerIP(t *testing.T) {
	h := ForgotPassword()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1234"))
	}

	assert.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.2:1234"))
}
