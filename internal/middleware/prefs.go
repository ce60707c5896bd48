package middleware

import (
	"net/http"

	"github.com/vangoframework/vpmshell/internal/prefs"
	"github.com/vangoframework/vpmshell/internal/sidebar"
)

// Prefs loads the preferences cookie into the request context. Missing or
// invalid cookies fall back to defaults.
func Prefs(store *prefs.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, _ := store.Get(r)
			next.ServeHTTP(w, r.WithContext(prefs.WithContext(r.Context(), p)))
		})
	}
}

// CurrentPath records the request path for the sidebar's active entry.
func CurrentPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(sidebar.WithCurrentPath(r.Context(), r.URL.Path)))
	})
}
