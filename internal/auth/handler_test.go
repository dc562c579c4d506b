// AngelaMos | 2026
// handler_test.go

package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postLogin(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(
		http.MethodPost,
		"/auth/login",
		strings.NewReader(body),
	)
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	return rec
}

func loginBody(email, password string) string {
	b, _ := json.Marshal(LoginRequest{ //nolint:errcheck // literal input
		Email:    email,
		Password: password,
	})
	return string(b)
}

func TestLoginEndpointStatusMapping(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	newHandler := func(t *testing.T) (*Handler, *fakeProvider) {
		provider, _ := seedAccount(t, "Password!1")
		return NewHandler(newTestService(t, provider, now)), provider
	}

	t.Run("success", func(t *testing.T) {
		h, _ := newHandler(t)

		rec := postLogin(t, h, loginBody("dana@example.com", "Password!1"))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "access_token")
	})

	t.Run("unknown email and wrong password share one message", func(t *testing.T) {
		h, _ := newHandler(t)

		unknown := postLogin(t, h, loginBody("ghost@example.com", "Password!1"))
		wrong := postLogin(t, h, loginBody("dana@example.com", "Wrong!pass1"))

		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, http.StatusUnauthorized, wrong.Code)
		assert.Contains(t, unknown.Body.String(), "invalid email or password")
		assert.Contains(t, wrong.Body.String(), "invalid email or password")
	})

	t.Run("attempt that triggers the lock stays 401", func(t *testing.T) {
		h, _ := newHandler(t)

		var rec *httptest.ResponseRecorder
		for i := 0; i < 3; i++ {
			rec = postLogin(t, h, loginBody("dana@example.com", "Wrong!pass1"))
		}

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "account locked for 120 minutes")
		assert.Contains(t, rec.Body.String(), "ACCOUNT_LOCKED")
	})

	t.Run("pre-existing lock reads as 403", func(t *testing.T) {
		h, _ := newHandler(t)

		for i := 0; i < 3; i++ {
			postLogin(t, h, loginBody("dana@example.com", "Wrong!pass1"))
		}

		rec := postLogin(t, h, loginBody("dana@example.com", "Password!1"))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "account is locked, try again in")
	})

	t.Run("malformed body", func(t *testing.T) {
		h, _ := newHandler(t)

		rec := postLogin(t, h, "{not json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("validation failure", func(t *testing.T) {
		h, _ := newHandler(t)

		rec := postLogin(t, h, loginBody("not-an-email", "Password!1"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
