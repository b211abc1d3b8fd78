package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionValueRoundTrip(t *testing.T) {
	auth := newAuthService(nil, "secret")

	value := auth.createSessionValue("rep@securli.example")
	email, ok := auth.verifySessionValue(value)
	assert.True(t, ok)
	assert.Equal(t, "rep@securli.example", email)
}

func TestSessionValueRejectsTampering(t *testing.T) {
	auth := newAuthService(nil, "secret")
	value := auth.createSessionValue("rep@securli.example")

	other := newAuthService(nil, "other-secret")
	_, ok := other.verifySessionValue(value)
	assert.False(t, ok)

	payload, signature, _ := strings.Cut(value, ".")
	_, ok = auth.verifySessionValue(payload + "x." + signature)
	assert.False(t, ok)

	for _, bad := range []string{"", "nodot", "a.zz", "." + signature} {
		_, ok = auth.verifySessionValue(bad)
		assert.False(t, ok, bad)
	}
}

func TestSessionValueExpires(t *testing.T) {
	auth := newAuthService(nil, "secret")
	issued := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	auth.now = func() time.Time { return issued }
	value := auth.createSessionValue("rep@securli.example")

	auth.now = func() time.Time { return issued.Add(sessionMaxAge - time.Minute) }
	_, ok := auth.verifySessionValue(value)
	assert.True(t, ok)

	auth.now = func() time.Time { return issued.Add(sessionMaxAge + time.Minute) }
	_, ok = auth.verifySessionValue(value)
	assert.False(t, ok)
}

func TestRequireAuthRedirectsToLogin(t *testing.T) {
	auth := newAuthService(nil, "secret")
	handler := auth.requireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/scenarios", nil))
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/scenarios", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: auth.createSessionValue("rep@securli.example")})
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusTeapot, rr.Code)
}
