package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appforge/saasbase/pkg/cookie"
)

func TestSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("reads all request cookies", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "http://example.com/", nil)
		req.AddCookie(&http.Cookie{Name: "a", Value: "1"})
		req.AddCookie(&http.Cookie{Name: "b", Value: "2"})

		jar := cookie.Snapshot(req)
		assert.Equal(t, map[string]string{"a": "1", "b": "2"}, jar)
	})

	t.Run("first occurrence wins on duplicates", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "http://example.com/", nil)
		req.AddCookie(&http.Cookie{Name: "a", Value: "first"})
		req.AddCookie(&http.Cookie{Name: "a", Value: "second"})

		jar := cookie.Snapshot(req)
		assert.Equal(t, "first", jar["a"])
	})

	t.Run("empty jar for cookieless request", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "http://example.com/", nil)
		assert.Empty(t, cookie.Snapshot(req))
	})
}

func TestSet(t *testing.T) {
	t.Parallel()

	t.Run("applies conservative defaults", func(t *testing.T) {
		t.Parallel()

		ins := cookie.Set("session", "abc")
		assert.Equal(t, "session", ins.Name)
		assert.Equal(t, "abc", ins.Value)
		assert.Equal(t, "/", ins.Options.Path)
		assert.True(t, ins.Options.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, ins.Options.SameSite)
		assert.False(t, ins.Options.Secure)
	})

	t.Run("options override defaults", func(t *testing.T) {
		t.Parallel()

		ins := cookie.Set("session", "abc",
			cookie.WithPath("/app"),
			cookie.WithDomain("example.com"),
			cookie.WithMaxAge(3600),
			cookie.WithSecure(true),
			cookie.WithHTTPOnly(false),
			cookie.WithSameSite(http.SameSiteStrictMode),
		)

		assert.Equal(t, "/app", ins.Options.Path)
		assert.Equal(t, "example.com", ins.Options.Domain)
		assert.Equal(t, 3600, ins.Options.MaxAge)
		assert.True(t, ins.Options.Secure)
		assert.False(t, ins.Options.HttpOnly)
		assert.Equal(t, http.SameSiteStrictMode, ins.Options.SameSite)
	})
}

func TestDelete(t *testing.T) {
	t.Parallel()

	ins := cookie.Delete("session")
	assert.Empty(t, ins.Value)
	assert.Equal(t, -1, ins.Options.MaxAge)
}

func TestApply(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	cookie.Apply(rec,
		cookie.Set("a", "1"),
		cookie.Set("b", "2", cookie.WithSecure(true)),
	)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	assert.Equal(t, "a", cookies[0].Name)
	assert.Equal(t, "1", cookies[0].Value)
	assert.True(t, cookies[1].Secure)
}
