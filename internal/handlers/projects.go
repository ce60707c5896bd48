package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vangoframework/vpmshell/internal/packages"
	"github.com/vangoframework/vpmshell/internal/pages"
	"github.com/vangoframework/vpmshell/internal/prefs"
	"github.com/vangoframework/vpmshell/internal/projects"
)

// ListProjects shows the registered projects in the preferred order.
func (h *Handlers) ListProjects(w http.ResponseWriter, r *http.Request) {
	h.renderProjects(w, r, http.StatusOK, pages.ProjectsView{Flash: flashFromQuery(r)})
}

func (h *Handlers) renderProjects(w http.ResponseWriter, r *http.Request, status int, view pages.ProjectsView) {
	ctx := r.Context()
	p := prefs.FromContext(ctx)

	list, err := h.projects.List(ctx, projects.SortOrder(p.ProjectSort))
	if err != nil {
		h.logger.Error("failed to list projects", "error", err)
		http.Error(w, "Failed to load projects", http.StatusInternalServerError)
		return
	}

	view.Projects = list
	view.Sort = p.ProjectSort
	h.render(w, r, status, "projects", pages.Projects(view))
}

// AddProject registers a project from the add form. The Unity version is
// detected from the project folder when left blank.
func (h *Handlers) AddProject(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	params := projects.AddParams{
		Path:         r.PostForm.Get("path"),
		UnityVersion: r.PostForm.Get("unity_version"),
	}
	if raw := r.PostForm.Get("type"); raw != "" {
		t, err := strconv.Atoi(raw)
		if err != nil {
			h.rejectProject(w, r, params, fmt.Errorf("%w: %q", projects.ErrInvalidType, raw))
			return
		}
		params.Type = projects.Type(t)
	}

	if params.UnityVersion == "" && params.Path != "" {
		version, err := projects.DetectUnityVersion(params.Path)
		if err != nil {
			h.logger.Warn("failed to detect unity version", "path", params.Path, "error", err)
		}
		params.UnityVersion = version
	}

	p, err := h.projects.Add(r.Context(), params)
	switch {
	case errors.Is(err, projects.ErrInvalidPath),
		errors.Is(err, projects.ErrDuplicate),
		errors.Is(err, projects.ErrInvalidType):
		h.rejectProject(w, r, params, err)
		return
	case err != nil:
		h.logger.Error("failed to add project", "path", params.Path, "error", err)
		http.Error(w, "Failed to add project", http.StatusInternalServerError)
		return
	}

	h.logger.Info("project added", "id", p.ID, "path", p.Path, "unity_version", p.UnityVersion)
	http.Redirect(w, r, "/projects?added=1", http.StatusSeeOther)
}

// rejectProject re-renders the list with the add form filled in and err shown.
func (h *Handlers) rejectProject(w http.ResponseWriter, r *http.Request, params projects.AddParams, err error) {
	h.renderProjects(w, r, http.StatusBadRequest, pages.ProjectsView{
		Flash:            &pages.Flash{Kind: "error", Message: err.Error()},
		FormPath:         params.Path,
		FormUnityVersion: r.PostForm.Get("unity_version"),
	})
}

// RemoveProject unregisters a project by path. The folder itself is untouched.
func (h *Handlers) RemoveProject(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	path := r.PostForm.Get("path")

	n, err := h.projects.Remove(r.Context(), path)
	if err != nil {
		h.logger.Error("failed to remove project", "path", path, "error", err)
		http.Error(w, "Failed to remove project", http.StatusInternalServerError)
		return
	}

	h.logger.Info("projects removed", "path", path, "count", n)
	http.Redirect(w, r, "/projects?removed="+strconv.FormatInt(n, 10), http.StatusSeeOther)
}

// SetFavorite marks or unmarks a project as favorite.
func (h *Handlers) SetFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	favorite := r.PostForm.Get("favorite") == "true"

	err = h.projects.SetFavorite(r.Context(), id, favorite)
	switch {
	case errors.Is(err, projects.ErrNotFound):
		h.NotFound(w, r)
		return
	case err != nil:
		h.logger.Error("failed to update favorite", "id", id, "error", err)
		http.Error(w, "Failed to update project", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/projects", http.StatusSeeOther)
}

// ShowProject shows one project with the packages installed in it.
func (h *Handlers) ShowProject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.NotFound(w, r)
		return
	}

	p, err := h.projects.Get(r.Context(), id)
	switch {
	case errors.Is(err, projects.ErrNotFound):
		h.NotFound(w, r)
		return
	case err != nil:
		h.logger.Error("failed to load project", "id", id, "error", err)
		http.Error(w, "Failed to load project", http.StatusInternalServerError)
		return
	}

	view := pages.ProjectView{Project: p}
	if installed := r.URL.Query().Get("installed"); installed != "" {
		view.Flash = &pages.Flash{Kind: "info", Message: "Installed " + installed + "."}
	}

	view.Packages, err = packages.List(p.Path)
	if err != nil {
		h.logger.Warn("failed to list installed packages", "path", p.Path, "error", err)
		view.Flash = &pages.Flash{Kind: "error", Message: err.Error()}
	}

	h.render(w, r, http.StatusOK, "project", pages.Project(view))
}

func flashFromQuery(r *http.Request) *pages.Flash {
	q := r.URL.Query()
	switch {
	case q.Get("added") != "":
		return &pages.Flash{Kind: "info", Message: "Project added."}
	case q.Get("removed") != "":
		n := q.Get("removed")
		if n == "1" {
			return &pages.Flash{Kind: "info", Message: "Removed 1 project."}
		}
		return &pages.Flash{Kind: "info", Message: "Removed " + n + " projects."}
	case q.Get("saved") != "":
		return &pages.Flash{Kind: "info", Message: "Settings saved."}
	case q.Get("reset") != "":
		return &pages.Flash{Kind: "info", Message: "Settings reset to defaults."}
	}
	return nil
}
