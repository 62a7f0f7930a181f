package csrf_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appforge/saasbase/pkg/csrf"
)

const testAppURL = "https://app.example.com"

func newProtected(t *testing.T, next http.Handler) (*csrf.Engine, http.Handler) {
	t.Helper()

	engine := csrf.NewEngine(csrf.Config{AppURL: testAppURL})
	if next == nil {
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	}
	return engine, csrf.Middleware(engine)(next)
}

// fetchToken performs the safe-method issuance leg and returns the issued
// cookies and token for a follow-up mutation.
func fetchToken(t *testing.T, handler http.Handler) ([]*http.Cookie, string) {
	t.Helper()

	req := httptest.NewRequest("GET", testAppURL+"/api/widgets", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	token := rec.Header().Get("X-CSRF-Token")
	require.NotEmpty(t, token)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	return cookies, token
}

func TestMiddlewareIssuance(t *testing.T) {
	t.Parallel()

	_, handler := newProtected(t, nil)

	req := httptest.NewRequest("GET", testAppURL+"/api/widgets", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.NotEmpty(t, rec.Header().Get("X-CSRF-Token"))

	names := make([]string, 0, 2)
	for _, c := range rec.Result().Cookies() {
		names = append(names, c.Name)
		assert.True(t, c.HttpOnly)
		assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	}
	assert.ElementsMatch(t, []string{"csrf-secret", "csrf-iat"}, names)
}

func TestMiddlewareMutation(t *testing.T) {
	t.Parallel()

	t.Run("valid token is accepted and rotated", func(t *testing.T) {
		t.Parallel()

		_, handler := newProtected(t, nil)
		cookies, token := fetchToken(t, handler)

		req := httptest.NewRequest("POST", testAppURL+"/api/widgets", nil)
		req.Header.Set("Origin", testAppURL)
		req.Header.Set("X-CSRF-Token", token)
		for _, c := range cookies {
			req.AddCookie(c)
		}

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		fresh := rec.Header().Get("X-CSRF-Token")
		assert.NotEmpty(t, fresh)
		assert.NotEqual(t, token, fresh)

		rotated := rec.Result().Cookies()
		require.Len(t, rotated, 2)
		for _, c := range rotated {
			if c.Name == "csrf-secret" {
				for _, old := range cookies {
					if old.Name == "csrf-secret" {
						assert.NotEqual(t, old.Value, c.Value)
					}
				}
			}
		}
	})

	t.Run("replayed token is rejected", func(t *testing.T) {
		t.Parallel()

		_, handler := newProtected(t, nil)
		cookies, token := fetchToken(t, handler)

		post := func(jar []*http.Cookie) *httptest.ResponseRecorder {
			req := httptest.NewRequest("POST", testAppURL+"/api/widgets", nil)
			req.Header.Set("Origin", testAppURL)
			req.Header.Set("X-CSRF-Token", token)
			for _, c := range jar {
				req.AddCookie(c)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			return rec
		}

		first := post(cookies)
		require.Equal(t, http.StatusOK, first.Code)

		second := post(first.Result().Cookies())
		assert.Equal(t, http.StatusForbidden, second.Code)
	})

	t.Run("missing token returns structured error", func(t *testing.T) {
		t.Parallel()

		_, handler := newProtected(t, nil)
		cookies, _ := fetchToken(t, handler)

		req := httptest.NewRequest("POST", testAppURL+"/api/widgets", nil)
		req.Header.Set("Origin", testAppURL)
		for _, c := range cookies {
			req.AddCookie(c)
		}

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

		var body struct {
			Status string `json:"status"`
			Error  string `json:"error"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "server_error", body.Status)
		assert.NotEmpty(t, body.Error)
	})

	t.Run("cross-origin mutation is rejected", func(t *testing.T) {
		t.Parallel()

		_, handler := newProtected(t, nil)
		cookies, token := fetchToken(t, handler)

		req := httptest.NewRequest("POST", testAppURL+"/api/widgets", nil)
		req.Header.Set("Origin", "https://evil.com")
		req.Header.Set("X-CSRF-Token", token)
		for _, c := range cookies {
			req.AddCookie(c)
		}

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unprotected path ignores the protocol", func(t *testing.T) {
		t.Parallel()

		_, handler := newProtected(t, nil)

		req := httptest.NewRequest("POST", testAppURL+"/dashboard", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-CSRF-Token"))
		assert.Empty(t, rec.Result().Cookies())
	})
}

func TestCookieGuard(t *testing.T) {
	t.Parallel()

	t.Run("downstream cannot overwrite the rotated pair", func(t *testing.T) {
		t.Parallel()

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.SetCookie(w, &http.Cookie{Name: "csrf-secret", Value: "forged"})
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc"})
			w.WriteHeader(http.StatusOK)
		})

		_, handler := newProtected(t, next)

		req := httptest.NewRequest("GET", testAppURL+"/api/widgets", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		var secret, session string
		for _, c := range rec.Result().Cookies() {
			switch c.Name {
			case "csrf-secret":
				secret = c.Value
			case "session":
				session = c.Value
			}
		}
		assert.NotEqual(t, "forged", secret)
		assert.NotEmpty(t, secret)
		assert.Equal(t, "abc", session)
	})

	t.Run("cookies applied even when handler writes nothing", func(t *testing.T) {
		t.Parallel()

		_, handler := newProtected(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

		req := httptest.NewRequest("GET", testAppURL+"/api/widgets", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Len(t, rec.Result().Cookies(), 2)
	})
}

func TestTokenHandler(t *testing.T) {
	t.Parallel()

	engine := csrf.NewEngine(csrf.Config{AppURL: testAppURL})
	handler := csrf.TokenHandler(engine)

	req := httptest.NewRequest("GET", testAppURL+"/api/security/csrf", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Len(t, rec.Result().Cookies(), 2)

	var body struct {
		Status string `json:"status"`
		Data   struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, rec.Header().Get("X-CSRF-Token"), body.Data.Token)
}
