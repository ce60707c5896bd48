package handlers

import (
	"net/http"

	"github.com/vangoframework/vpmshell/internal/pages"
	"github.com/vangoframework/vpmshell/internal/prefs"
)

// Settings shows the preferences form.
func (h *Handlers) Settings(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "settings", pages.Settings(pages.SettingsView{
		Prefs: prefs.FromContext(r.Context()),
		Flash: flashFromQuery(r),
	}))
}

// SaveSettings stores the submitted preferences in the cookie.
func (h *Handlers) SaveSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	p := prefs.Preferences{
		SidebarCollapsed: r.PostForm.Get("sidebar_collapsed") == "true",
		ProjectSort:      r.PostForm.Get("project_sort"),
	}
	if err := h.prefs.Set(w, p); err != nil {
		h.logger.Error("failed to save preferences", "error", err)
		http.Error(w, "Failed to save settings", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/settings?saved=1", http.StatusSeeOther)
}

// ResetSettings drops the preferences cookie so defaults apply again.
func (h *Handlers) ResetSettings(w http.ResponseWriter, r *http.Request) {
	h.prefs.Clear(w)
	h.logger.Info("preferences reset")
	http.Redirect(w, r, "/settings?reset=1", http.StatusSeeOther)
}
