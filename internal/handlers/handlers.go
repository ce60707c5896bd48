package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/vangoframework/vpmshell/internal/logbuf"
	"github.com/vangoframework/vpmshell/internal/metrics"
	"github.com/vangoframework/vpmshell/internal/packages"
	"github.com/vangoframework/vpmshell/internal/prefs"
	"github.com/vangoframework/vpmshell/internal/projects"
	"github.com/vangoframework/vpmshell/internal/repositories"
	"github.com/vangoframework/vpmshell/internal/shell"
)

// Handlers contains all HTTP handler dependencies.
type Handlers struct {
	shell     *shell.Shell
	projects  *projects.Store
	repos     *repositories.Store
	installer *packages.Installer
	prefs     *prefs.Store
	logs      *logbuf.Buffer
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// New creates a new Handlers instance with all dependencies.
func New(
	sh *shell.Shell,
	store *projects.Store,
	repos *repositories.Store,
	installer *packages.Installer,
	prefsStore *prefs.Store,
	logs *logbuf.Buffer,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		shell:     sh,
		projects:  store,
		repos:     repos,
		installer: installer,
		prefs:     prefsStore,
		logs:      logs,
		metrics:   m,
		logger:    logger,
	}
}

// render writes content inside the shell. The page is rendered to a buffer
// first so a failed render can still produce a clean 500.
func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, page string, content templ.Component) {
	var buf bytes.Buffer
	err := h.shell.Layout(content).Render(r.Context(), &buf)
	h.metrics.ObserveRender(page, err)
	if err != nil {
		h.logger.Error("failed to render page", "page", page, "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
