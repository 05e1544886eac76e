package middleware

import "net/http"

const ModeHeader = "X-GovTrack-Mode"

// Moder reports whether the client is "online" or "offline"
type Moder interface {
	Mode() string
}

// StampMode tells callers whether the response came from the network or the
// replay cache.
func StampMode(m Moder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(ModeHeader, m.Mode())
			next.ServeHTTP(w, r)
		})
	}
}
