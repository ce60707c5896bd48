package handlers

import (
	"net/http"

	"github.com/vangoframework/vpmshell/internal/pages"
)

// Home sends the root path to the projects list.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/projects", http.StatusSeeOther)
}

// Health reports whether the project database is reachable.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.projects.Health(r.Context()); err != nil {
		h.logger.Error("health check failed", "error", err)
		http.Error(w, "unhealthy", http.StatusServiceUnavailable)
		return
	}
	w.Write([]byte("ok"))
}

// NotFound renders the not-found page inside the shell.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "not_found", pages.NotFound(r.URL.Path))
}
