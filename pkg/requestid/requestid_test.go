package requestid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appforge/saasbase/pkg/requestid"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()

	serve := func(t *testing.T, inbound string) (string, *httptest.ResponseRecorder) {
		t.Helper()

		var fromCtx string
		handler := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fromCtx = requestid.FromContext(r.Context())
		}))

		req := httptest.NewRequest("GET", "http://example.com/", nil)
		if inbound != "" {
			req.Header.Set(requestid.Header, inbound)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return fromCtx, rec
	}

	t.Run("generates id when absent", func(t *testing.T) {
		t.Parallel()

		id, rec := serve(t, "")
		require.NotEmpty(t, id)
		assert.Equal(t, id, rec.Header().Get(requestid.Header))
	})

	t.Run("honors well-formed inbound id", func(t *testing.T) {
		t.Parallel()

		id, rec := serve(t, "trace-abc_123")
		assert.Equal(t, "trace-abc_123", id)
		assert.Equal(t, "trace-abc_123", rec.Header().Get(requestid.Header))
	})

	t.Run("replaces malformed inbound id", func(t *testing.T) {
		t.Parallel()

		id, _ := serve(t, "bad id\nwith newline")
		assert.NotEqual(t, "bad id\nwith newline", id)
		assert.NotEmpty(t, id)
	})

	t.Run("replaces oversized inbound id", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("a", 200)
		id, _ := serve(t, long)
		assert.NotEqual(t, long, id)
	})
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	extract := requestid.LoggerExtractor()

	attr, ok := extract(requestid.WithContext(context.Background(), "abc"))
	require.True(t, ok)
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "abc", attr.Value.String())

	_, ok = extract(context.Background())
	assert.False(t, ok)
}
