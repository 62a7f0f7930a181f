package csrf

import (
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/appforge/saasbase/pkg/cookie"
)

// Snapshot carries the request data the engine needs: the method, path,
// cookie jar snapshot, request headers, the same-origin verdict (only
// consulted on unsafe methods), and the evaluation time. Building the
// protocol over a snapshot instead of *http.Request keeps the engine a
// pure function and trivially unit-testable.
type Snapshot struct {
	Method     string
	Path       string
	Cookies    map[string]string
	Header     http.Header
	SameOrigin bool
	Now        time.Time
}

// Verdict is the engine's decision for one request. Cookies is the
// set-cookie diff the transport must apply; Token is the value for the
// response token header; NoStore marks token-bearing responses that must
// never be cached.
type Verdict struct {
	Allowed bool
	Err     error
	Token   string
	Cookies []cookie.Instruction
	NoStore bool
}

// Engine applies the double-submit protocol. There is no server-side
// session table: the only state is the secret and issued-at cookie pair
// read fresh from every request's snapshot.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine from an immutable configuration.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg.withDefaults()}
}

// Config returns the engine's effective configuration after defaulting.
func (e *Engine) Config() Config {
	return e.cfg
}

// Apply runs one request through the protocol state machine.
//
// Unprotected paths and the issuance endpoint pass through untouched. Safe
// methods get a token issued against the current secret, rotating it first
// when missing or older than RotateAfter. Unsafe methods must pass the
// same-origin check before any token work, then present a verifiable token
// for the current secret; success always rotates the secret so a captured
// token is good for at most one mutation.
func (e *Engine) Apply(s Snapshot) Verdict {
	if !e.protectedPath(s.Path) || s.Path == e.cfg.IssuancePath {
		return Verdict{Allowed: true}
	}

	if isSafeMethod(s.Method) {
		token, instructions, err := e.Issue(s)
		if err != nil {
			return Verdict{Err: err}
		}
		return Verdict{Allowed: true, Token: token, Cookies: instructions, NoStore: true}
	}

	// Same-origin runs first so cross-site requests are rejected before any
	// crypto work.
	if !s.SameOrigin {
		return Verdict{Err: ErrCrossOrigin}
	}

	token := e.headerToken(s.Header)
	if token == "" {
		return Verdict{Err: ErrInvalidToken}
	}

	secret, ok := e.currentSecret(s.Cookies)
	if !ok {
		return Verdict{Err: ErrInvalidToken}
	}

	if !VerifyToken(token, secret) {
		return Verdict{Err: ErrInvalidToken}
	}

	// The request just proved possession of the old secret, and that is
	// exactly why it gets a new one: rotation on every successful use keeps
	// a replayed token from ever working twice.
	next, err := MintSecret(e.cfg.SecretLength)
	if err != nil {
		return Verdict{Err: err}
	}
	fresh, err := DeriveToken(next, e.cfg.SaltLength)
	if err != nil {
		return Verdict{Err: err}
	}

	return Verdict{
		Allowed: true,
		Token:   fresh,
		Cookies: e.cookiePair(next, s.Now),
		NoStore: true,
	}
}

// Issue derives a token for a safe request, minting and persisting a new
// secret when the snapshot carries none, the issued-at cookie is missing
// or unparseable, or the secret has outlived RotateAfter. Within the
// rotation window the existing secret is reused and no cookies are
// rewritten.
func (e *Engine) Issue(s Snapshot) (string, []cookie.Instruction, error) {
	secret, ok := e.currentSecret(s.Cookies)
	rotate := !ok || e.secretExpired(s.Cookies, s.Now)

	var instructions []cookie.Instruction
	if rotate {
		var err error
		secret, err = MintSecret(e.cfg.SecretLength)
		if err != nil {
			return "", nil, err
		}
		instructions = e.cookiePair(secret, s.Now)
	}

	token, err := DeriveToken(secret, e.cfg.SaltLength)
	if err != nil {
		return "", nil, err
	}

	return token, instructions, nil
}

// currentSecret decodes the secret cookie from the snapshot. A missing or
// undecodable value counts as absent.
func (e *Engine) currentSecret(cookies map[string]string) ([]byte, bool) {
	value, ok := cookies[e.cfg.SecretCookieName()]
	if !ok || value == "" {
		return nil, false
	}

	secret, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil || len(secret) == 0 {
		return nil, false
	}
	return secret, true
}

// secretExpired checks the issued-at cookie. Absent or unparseable
// timestamps force rotation.
func (e *Engine) secretExpired(cookies map[string]string, now time.Time) bool {
	value, ok := cookies[e.cfg.IssuedAtCookieName()]
	if !ok || value == "" {
		return true
	}

	issuedAt, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return true
	}

	return now.UnixMilli()-issuedAt >= e.cfg.RotateAfter.Milliseconds()
}

// headerToken returns the first non-empty candidate token among the
// accepted headers.
func (e *Engine) headerToken(header http.Header) string {
	if header == nil {
		return ""
	}
	for _, name := range e.cfg.AcceptedHeaders {
		if value := header.Get(name); value != "" {
			return value
		}
	}
	return ""
}

// cookiePair builds the replacement secret and issued-at instructions.
// Both cookies always travel together so the timestamp can never describe
// a different secret.
func (e *Engine) cookiePair(secret []byte, now time.Time) []cookie.Instruction {
	opts := []cookie.Option{
		cookie.WithPath("/"),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteStrictMode),
	}
	if e.cfg.SecureCookies {
		opts = append(opts, cookie.WithSecure(true))
	}

	return []cookie.Instruction{
		cookie.Set(e.cfg.SecretCookieName(), base64.RawURLEncoding.EncodeToString(secret), opts...),
		cookie.Set(e.cfg.IssuedAtCookieName(), strconv.FormatInt(now.UnixMilli(), 10), opts...),
	}
}

func (e *Engine) protectedPath(path string) bool {
	for _, prefix := range e.cfg.ProtectedPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}
