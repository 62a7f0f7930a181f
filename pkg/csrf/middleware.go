package csrf

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/appforge/saasbase/pkg/cookie"
)

// Middleware enforces the double-submit protocol over net/http. Rejections
// short-circuit with a 403 and a structured JSON body; allowed requests
// pass through with the fresh token header and, when the secret rotated,
// the replacement cookie pair. Downstream handlers can set their own
// cookies freely but can never overwrite the just-rotated CSRF pair.
func Middleware(engine *Engine) func(http.Handler) http.Handler {
	cfg := engine.Config()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			snap := Snapshot{
				Method:  r.Method,
				Path:    r.URL.Path,
				Cookies: cookie.Snapshot(r),
				Header:  r.Header,
				Now:     time.Now(),
			}
			if !isSafeMethod(r.Method) {
				snap.SameOrigin = SameOrigin(r, cfg.AppURL)
			}

			verdict := engine.Apply(snap)
			if !verdict.Allowed {
				writeError(w, statusFor(verdict.Err), verdict.Err)
				return
			}

			if verdict.NoStore {
				// Token-bearing responses must never end up in a shared cache.
				w.Header().Set("Cache-Control", "no-store")
			}
			if verdict.Token != "" {
				w.Header().Set(cfg.HeaderName, verdict.Token)
			}

			if len(verdict.Cookies) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			guard := &cookieGuard{ResponseWriter: w, pending: verdict.Cookies}
			next.ServeHTTP(guard, r)
			guard.apply()
		})
	}
}

// cookieGuard delays the CSRF cookie writes until the response headers are
// about to be sent, stripping any downstream Set-Cookie for the same names
// so the rotated pair always wins.
type cookieGuard struct {
	http.ResponseWriter
	pending []cookie.Instruction
	applied bool
}

func (g *cookieGuard) WriteHeader(code int) {
	g.apply()
	g.ResponseWriter.WriteHeader(code)
}

func (g *cookieGuard) Write(b []byte) (int, error) {
	g.apply()
	return g.ResponseWriter.Write(b)
}

func (g *cookieGuard) Flush() {
	g.apply()
	if f, ok := g.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (g *cookieGuard) apply() {
	if g.applied {
		return
	}
	g.applied = true

	header := g.Header()
	if existing := header.Values("Set-Cookie"); len(existing) > 0 {
		guarded := make(map[string]struct{}, len(g.pending))
		for _, ins := range g.pending {
			guarded[ins.Name] = struct{}{}
		}

		header.Del("Set-Cookie")
		for _, line := range existing {
			name, _, _ := strings.Cut(line, "=")
			if _, shadowed := guarded[strings.TrimSpace(name)]; !shadowed {
				header.Add("Set-Cookie", line)
			}
		}
	}

	cookie.Apply(g.ResponseWriter, g.pending...)
}

func statusFor(err error) int {
	if errors.Is(err, ErrSecretGeneration) {
		return http.StatusInternalServerError
	}
	return http.StatusForbidden
}

type errorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

type tokenResponse struct {
	Status string    `json:"status"`
	Data   tokenData `json:"data"`
}

type tokenData struct {
	Token string `json:"token"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError keeps rejection bodies generic: the reason never says which
// specific check failed beyond origin vs token.
func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Status: "server_error", Error: err.Error()})
}
