package handlers

import (
	"net/http"

	"github.com/vangoframework/vpmshell/internal/pages"
)

const logsPageSize = 200

// Logs shows the most recent captured log entries.
func (h *Handlers) Logs(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "logs", pages.Logs(h.logs.Recent(logsPageSize)))
}
