package pages

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vangoframework/vpmshell/internal/logbuf"
	"github.com/vangoframework/vpmshell/internal/packages"
	"github.com/vangoframework/vpmshell/internal/prefs"
	"github.com/vangoframework/vpmshell/internal/projects"
	"github.com/vangoframework/vpmshell/internal/repositories"
	"github.com/vangoframework/vpmshell/internal/vdom"
)

func renderString(t *testing.T, n *vdom.VNode) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, n.Render(context.Background(), &b))
	return b.String()
}

func TestProjectsEmptyState(t *testing.T) {
	got := renderString(t, Projects(ProjectsView{}))
	assert.Contains(t, got, `id="projects-empty"`)
	assert.Contains(t, got, `action="/projects"`)
	assert.NotContains(t, got, `role="status"`)
}

func TestProjectsRowsAndFavoriteToggle(t *testing.T) {
	id := uuid.New()
	got := renderString(t, Projects(ProjectsView{
		Projects: []projects.Project{{
			ID:           id,
			Path:         "/unity/My World",
			UnityVersion: "2022.3.22f1",
			Type:         projects.TypeWorlds,
			Favorite:     true,
			LastModified: time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
		}},
	}))

	assert.Contains(t, got, `data-project-id="`+id.String()+`"`)
	assert.Contains(t, got, "My World")
	assert.Contains(t, got, "2022.3.22f1")
	assert.Contains(t, got, "Worlds")
	assert.Contains(t, got, `action="/projects/`+id.String()+`/favorite"`)
	assert.Contains(t, got, `name="favorite" value="false"`)
	assert.Contains(t, got, `datetime="2024-05-01T12:30:00Z"`)
}

func TestProjectsFlashAndEchoedForm(t *testing.T) {
	got := renderString(t, Projects(ProjectsView{
		Flash:    &Flash{Kind: "error", Message: "project already added"},
		FormPath: "/dup",
	}))
	assert.Contains(t, got, "project already added")
	assert.Contains(t, got, "text-destructive")
	assert.Contains(t, got, `value="/dup"`)
}

func TestSettingsReflectsPreferences(t *testing.T) {
	got := renderString(t, Settings(SettingsView{Prefs: prefs.Preferences{SidebarCollapsed: true, ProjectSort: prefs.SortName}}))
	assert.Contains(t, got, `name="sidebar_collapsed" id="sidebar_collapsed" value="true" checked`)
	assert.Contains(t, got, `<option value="name" selected>Name</option>`)
	assert.Contains(t, got, `action="/settings/reset"`)
}

func TestProjectsRowLinksToDetail(t *testing.T) {
	id := uuid.New()
	got := renderString(t, Projects(ProjectsView{Projects: []projects.Project{{ID: id, Path: "/unity/Linked"}}}))
	assert.Contains(t, got, `href="/projects/`+id.String()+`"`)
}

const pageRepoDoc = `{
	"name": "Community",
	"packages": {
		"com.example.tools": {"versions": {
			"1.0.0": {"displayName": "Example Tools", "url": "https://example.com/1.zip"},
			"1.2.0": {"displayName": "Example Tools", "url": "https://example.com/2.zip"},
			"2.0.0-rc.1": {"displayName": "Example Tools", "url": "https://example.com/3.zip"}
		}}
	}
}`

func pageRepository(t *testing.T) repositories.Repository {
	t.Helper()
	remote, err := repositories.Parse([]byte(pageRepoDoc), "https://repo.example.com/index.json")
	require.NoError(t, err)
	return repositories.Repository{
		ID:        uuid.New(),
		URL:       remote.URL(),
		Name:      remote.Name(),
		FetchedAt: time.Date(2024, 6, 2, 8, 0, 0, 0, time.UTC),
		Remote:    remote,
	}
}

func TestRepositoriesEmptyState(t *testing.T) {
	got := renderString(t, Repositories(RepositoriesView{FormURL: "https://typed.example.com"}))
	assert.Contains(t, got, `id="repositories-empty"`)
	assert.Contains(t, got, `action="/repositories"`)
	assert.Contains(t, got, `value="https://typed.example.com"`)
	assert.NotContains(t, got, `action="/repositories/refresh"`)
}

func TestRepositoriesCardOffersInstallIntoProjects(t *testing.T) {
	repo := pageRepository(t)
	project := projects.Project{ID: uuid.New(), Path: "/unity/Avatar"}
	id := repo.ID.String()

	got := renderString(t, Repositories(RepositoriesView{
		Repositories: []repositories.Repository{repo},
		Projects:     []projects.Project{project},
	}))

	assert.Contains(t, got, `data-repository-id="`+id+`"`)
	assert.Contains(t, got, "Community")
	assert.Contains(t, got, "1 packages, 3 versions")
	assert.Contains(t, got, `action="/repositories/refresh"`)
	assert.Contains(t, got, `action="/repositories/`+id+`/refresh"`)
	assert.Contains(t, got, `action="/repositories/`+id+`/remove"`)
	assert.Contains(t, got, `action="/repositories/`+id+`/install"`)
	assert.Contains(t, got, `data-package="com.example.tools"`)
	assert.Contains(t, got, "Example Tools")
	assert.Contains(t, got, `<option value="1.2.0" selected>1.2.0</option>`)
	assert.Contains(t, got, `<option value="`+project.ID.String()+`">Avatar</option>`)
	assert.Contains(t, got, `datetime="2024-06-02T08:00:00Z"`)
}

func TestRepositoriesWithoutProjectsHidesInstallForm(t *testing.T) {
	repo := pageRepository(t)
	got := renderString(t, Repositories(RepositoriesView{Repositories: []repositories.Repository{repo}}))
	assert.NotContains(t, got, "/install")
	assert.Contains(t, got, "Add a project to install packages.")
}

func TestProjectListsInstalledPackages(t *testing.T) {
	p := projects.Project{ID: uuid.New(), Path: "/unity/Detail World", Type: projects.TypeWorlds}

	empty := renderString(t, Project(ProjectView{Project: p}))
	assert.Contains(t, empty, "Detail World")
	assert.Contains(t, empty, `id="packages-empty"`)

	got := renderString(t, Project(ProjectView{
		Project:  p,
		Packages: []packages.Installed{{Name: "com.example.tools", DisplayName: "Example Tools", Version: "1.2.0"}},
		Flash:    &Flash{Kind: "info", Message: "installed com.example.tools 1.2.0"},
	}))
	assert.Contains(t, got, `data-package="com.example.tools"`)
	assert.Contains(t, got, "Example Tools")
	assert.Contains(t, got, "installed com.example.tools 1.2.0")
	assert.NotContains(t, got, `id="packages-empty"`)
}

func TestLogsNewestFirstAsGiven(t *testing.T) {
	entries := []logbuf.Entry{
		{ID: uuid.New(), Level: slog.LevelError, Message: "second", Time: time.Now()},
		{ID: uuid.New(), Level: slog.LevelInfo, Message: "first", Time: time.Now(), Fields: []logbuf.Field{{Key: "k", Value: "v"}}},
	}
	got := renderString(t, Logs(entries))

	assert.Less(t, strings.Index(got, "second"), strings.Index(got, "first"))
	assert.Contains(t, got, `data-level="ERROR"`)
	assert.Contains(t, got, "k=v")

	assert.Contains(t, renderString(t, Logs(nil)), "No log entries.")
}

func TestNotFoundEscapesPath(t *testing.T) {
	got := renderString(t, NotFound("/<bad>"))
	assert.Contains(t, got, "&lt;bad&gt;")
	assert.Contains(t, got, "Page not found")
}
