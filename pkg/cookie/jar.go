package cookie

import "net/http"

// Snapshot reads all request cookies into a name-value map at request
// start. When a name repeats, the first occurrence wins, matching
// http.Request.Cookie semantics.
func Snapshot(r *http.Request) map[string]string {
	cookies := r.Cookies()
	jar := make(map[string]string, len(cookies))
	for _, c := range cookies {
		if _, exists := jar[c.Name]; !exists {
			jar[c.Name] = c.Value
		}
	}
	return jar
}

// Instruction is a single pending cookie write. Engines produce
// instructions instead of touching the response directly, which keeps them
// unit-testable without an HTTP stack; the transport layer applies the diff.
type Instruction struct {
	Name    string
	Value   string
	Options Options
}

// Set builds a write instruction with the given options applied over
// conservative defaults (Path=/, HttpOnly, SameSite=Lax).
func Set(name, value string, opts ...Option) Instruction {
	options := applyOptions(Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, opts)

	return Instruction{Name: name, Value: value, Options: options}
}

// Delete builds an instruction that expires the named cookie.
func Delete(name string, opts ...Option) Instruction {
	ins := Set(name, "", opts...)
	ins.Options.MaxAge = -1
	return ins
}

// Cookie converts the instruction into an http.Cookie.
func (i Instruction) Cookie() *http.Cookie {
	return &http.Cookie{
		Name:     i.Name,
		Value:    i.Value,
		Path:     i.Options.Path,
		Domain:   i.Options.Domain,
		MaxAge:   i.Options.MaxAge,
		Secure:   i.Options.Secure,
		HttpOnly: i.Options.HttpOnly,
		SameSite: i.Options.SameSite,
	}
}

// Apply writes the instructions onto the response.
func Apply(w http.ResponseWriter, instructions ...Instruction) {
	for _, ins := range instructions {
		http.SetCookie(w, ins.Cookie())
	}
}
