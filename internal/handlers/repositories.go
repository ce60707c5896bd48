package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vangoframework/vpmshell/internal/packages"
	"github.com/vangoframework/vpmshell/internal/pages"
	"github.com/vangoframework/vpmshell/internal/projects"
	"github.com/vangoframework/vpmshell/internal/repositories"
)

// ListRepositories shows the added repositories with their packages.
func (h *Handlers) ListRepositories(w http.ResponseWriter, r *http.Request) {
	h.renderRepositories(w, r, http.StatusOK, pages.RepositoriesView{Flash: repositoryFlash(r)})
}

func (h *Handlers) renderRepositories(w http.ResponseWriter, r *http.Request, status int, view pages.RepositoriesView) {
	ctx := r.Context()

	repos, err := h.repos.List(ctx)
	if err != nil {
		h.logger.Error("failed to list repositories", "error", err)
		http.Error(w, "Failed to load repositories", http.StatusInternalServerError)
		return
	}
	targets, err := h.projects.List(ctx, projects.SortName)
	if err != nil {
		h.logger.Error("failed to list projects", "error", err)
		http.Error(w, "Failed to load projects", http.StatusInternalServerError)
		return
	}

	view.Repositories = repos
	view.Projects = targets
	h.render(w, r, status, "repositories", pages.Repositories(view))
}

func (h *Handlers) rejectRepository(w http.ResponseWriter, r *http.Request, status int, formURL string, err error) {
	h.renderRepositories(w, r, status, pages.RepositoriesView{
		Flash:   &pages.Flash{Kind: "error", Message: err.Error()},
		FormURL: formURL,
	})
}

// AddRepository downloads a repository listing and stores it. An optional
// header is sent with every fetch of that repository.
func (h *Handlers) AddRepository(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	rawURL := strings.TrimSpace(r.PostForm.Get("url"))

	var headers map[string]string
	if name := strings.TrimSpace(r.PostForm.Get("header_name")); name != "" {
		headers = map[string]string{name: r.PostForm.Get("header_value")}
	}

	repo, err := h.repos.Add(r.Context(), rawURL, headers)
	switch {
	case errors.Is(err, repositories.ErrInvalidURL),
		errors.Is(err, repositories.ErrDuplicate),
		errors.Is(err, repositories.ErrInvalidRepository):
		h.rejectRepository(w, r, http.StatusBadRequest, rawURL, err)
		return
	case errors.Is(err, repositories.ErrFetch):
		h.logger.Warn("failed to fetch repository", "url", rawURL, "error", err)
		h.rejectRepository(w, r, http.StatusBadGateway, rawURL, err)
		return
	case err != nil:
		h.logger.Error("failed to add repository", "url", rawURL, "error", err)
		http.Error(w, "Failed to add repository", http.StatusInternalServerError)
		return
	}

	h.logger.Info("repository added", "id", repo.ID, "url", repo.URL, "packages", len(repo.Remote.Packages()))
	http.Redirect(w, r, "/repositories?repo_added=1", http.StatusSeeOther)
}

// RefreshRepository revalidates one repository against its server.
func (h *Handlers) RefreshRepository(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.NotFound(w, r)
		return
	}

	changed, err := h.repos.Refresh(r.Context(), id)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		h.NotFound(w, r)
		return
	case errors.Is(err, repositories.ErrFetch), errors.Is(err, repositories.ErrInvalidRepository):
		h.logger.Warn("failed to refresh repository", "id", id, "error", err)
		h.rejectRepository(w, r, http.StatusBadGateway, "", err)
		return
	case err != nil:
		h.logger.Error("failed to refresh repository", "id", id, "error", err)
		http.Error(w, "Failed to refresh repository", http.StatusInternalServerError)
		return
	}

	n := 0
	if changed {
		n = 1
	}
	h.logger.Info("repository refreshed", "id", id, "changed", changed)
	http.Redirect(w, r, "/repositories?refreshed="+strconv.Itoa(n), http.StatusSeeOther)
}

// RefreshAllRepositories refreshes every repository. Repositories that fail
// are reported while the rest are still updated.
func (h *Handlers) RefreshAllRepositories(w http.ResponseWriter, r *http.Request) {
	n, err := h.repos.RefreshAll(r.Context())
	if err != nil {
		h.logger.Warn("failed to refresh repositories", "updated", n, "error", err)
		h.rejectRepository(w, r, http.StatusBadGateway, "", err)
		return
	}

	h.logger.Info("repositories refreshed", "updated", n)
	http.Redirect(w, r, "/repositories?refreshed="+strconv.Itoa(n), http.StatusSeeOther)
}

// RemoveRepository deletes a repository and its cached listing.
func (h *Handlers) RemoveRepository(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.NotFound(w, r)
		return
	}

	err = h.repos.Remove(r.Context(), id)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		h.NotFound(w, r)
		return
	case err != nil:
		h.logger.Error("failed to remove repository", "id", id, "error", err)
		http.Error(w, "Failed to remove repository", http.StatusInternalServerError)
		return
	}

	h.logger.Info("repository removed", "id", id)
	http.Redirect(w, r, "/repositories?repo_removed=1", http.StatusSeeOther)
}

// InstallPackage installs one version of a listed package into a project.
func (h *Handlers) InstallPackage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	repoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	repo, err := h.repos.Get(ctx, repoID)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		h.NotFound(w, r)
		return
	case err != nil:
		h.logger.Error("failed to load repository", "id", repoID, "error", err)
		http.Error(w, "Failed to load repository", http.StatusInternalServerError)
		return
	}

	name := r.PostForm.Get("package")
	pkg, ok := repo.Remote.Package(name)
	if !ok {
		h.rejectRepository(w, r, http.StatusBadRequest, "", errors.New("unknown package "+strconv.Quote(name)))
		return
	}
	manifest, ok := pkg.Version(r.PostForm.Get("version"))
	if !ok {
		h.rejectRepository(w, r, http.StatusBadRequest, "",
			errors.New("unknown version "+strconv.Quote(r.PostForm.Get("version"))+" of "+name))
		return
	}

	projectID, err := uuid.Parse(r.PostForm.Get("project_id"))
	if err != nil {
		h.rejectRepository(w, r, http.StatusBadRequest, "", projects.ErrNotFound)
		return
	}
	project, err := h.projects.Get(ctx, projectID)
	switch {
	case errors.Is(err, projects.ErrNotFound):
		h.rejectRepository(w, r, http.StatusBadRequest, "", err)
		return
	case err != nil:
		h.logger.Error("failed to load project", "id", projectID, "error", err)
		http.Error(w, "Failed to load project", http.StatusInternalServerError)
		return
	}

	err = h.installer.Install(ctx, manifest, project.Path)
	switch {
	case errors.Is(err, packages.ErrInvalidPackage), errors.Is(err, packages.ErrUnsafePath):
		h.logger.Warn("refused to install package", "package", name, "version", manifest.Version, "error", err)
		h.rejectRepository(w, r, http.StatusUnprocessableEntity, "", err)
		return
	case errors.Is(err, packages.ErrDownload), errors.Is(err, packages.ErrChecksumMismatch):
		h.logger.Warn("failed to download package", "package", name, "version", manifest.Version, "error", err)
		h.rejectRepository(w, r, http.StatusBadGateway, "", err)
		return
	case err != nil:
		h.logger.Error("failed to install package", "package", name, "version", manifest.Version, "error", err)
		http.Error(w, "Failed to install package", http.StatusInternalServerError)
		return
	}

	q := url.Values{"installed": {name + " " + manifest.Version}}
	http.Redirect(w, r, "/projects/"+project.ID.String()+"?"+q.Encode(), http.StatusSeeOther)
}

func repositoryFlash(r *http.Request) *pages.Flash {
	q := r.URL.Query()
	switch {
	case q.Get("repo_added") != "":
		return &pages.Flash{Kind: "info", Message: "Repository added."}
	case q.Get("repo_removed") != "":
		return &pages.Flash{Kind: "info", Message: "Repository removed."}
	case q.Has("refreshed"):
		n := q.Get("refreshed")
		if n == "1" {
			return &pages.Flash{Kind: "info", Message: "Updated 1 repository."}
		}
		return &pages.Flash{Kind: "info", Message: "Updated " + n + " repositories."}
	}
	return nil
}
