package csrf

import (
	"net/http"
	"time"

	"github.com/appforge/saasbase/pkg/cookie"
)

// TokenHandler serves the dedicated issuance endpoint. It bypasses
// enforcement (the engine skips its own path) but still mints or reuses
// the secret exactly like safe-method issuance, returning the token in
// both the response header and the JSON body for clients that cannot read
// headers.
func TokenHandler(engine *Engine) http.HandlerFunc {
	cfg := engine.Config()

	return func(w http.ResponseWriter, r *http.Request) {
		token, instructions, err := engine.Issue(Snapshot{
			Method:  r.Method,
			Path:    r.URL.Path,
			Cookies: cookie.Snapshot(r),
			Now:     time.Now(),
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, ErrSecretGeneration)
			return
		}

		cookie.Apply(w, instructions...)
		w.Header().Set(cfg.HeaderName, token)
		w.Header().Set("Cache-Control", "no-store")

		writeJSON(w, http.StatusOK, tokenResponse{Status: "ok", Data: tokenData{Token: token}})
	}
}
