package pages

import (
	"strconv"
	"time"

	"github.com/vangoframework/vpmshell/internal/projects"
	"github.com/vangoframework/vpmshell/internal/repositories"
	"github.com/vangoframework/vpmshell/internal/ui"
	"github.com/vangoframework/vpmshell/internal/vdom"
)

// RepositoriesView is the data behind the repositories page.
type RepositoriesView struct {
	Repositories []repositories.Repository
	// Projects are the install targets offered for each package.
	Projects []projects.Project
	Flash    *Flash
	FormURL  string
}

const selectClass = "h-9 rounded-md border bg-background px-2 text-sm"

// Repositories lists the added VPM repositories and their packages.
func Repositories(v RepositoriesView) *vdom.VNode {
	cards := make([]*vdom.VNode, 0, len(v.Repositories))
	for _, r := range v.Repositories {
		cards = append(cards, repositoryCard(r, v.Projects))
	}

	var list *vdom.VNode
	if len(cards) == 0 {
		list = vdom.P(vdom.Class("text-muted"), vdom.ID("repositories-empty"), "No repositories yet.")
	} else {
		list = vdom.Div(vdom.Class("flex flex-col gap-4"), vdom.ID("repositories"), cards)
	}

	return page("Repositories",
		flash(v.Flash),
		addRepositoryForm(v),
		vdom.When(len(cards) > 0,
			vdom.Form(vdom.Method("post"), vdom.Action("/repositories/refresh"),
				ui.Button(ui.Submit(), ui.Variant(ui.ButtonVariantOutline), ui.Size(ui.ButtonSizeSm),
					ui.Text[*ui.ButtonConfig]("Refresh all")),
			)),
		list,
	)
}

func addRepositoryForm(v RepositoriesView) *vdom.VNode {
	return ui.Card(ui.Child[*ui.CardConfig](
		ui.CardHeader(ui.Child[*ui.CardHeaderConfig](
			ui.CardTitle(ui.Text[*ui.CardTitleConfig]("Add repository")),
			ui.CardDescription(ui.Text[*ui.CardDescriptionConfig]("Paste the url of a VPM repository listing.")),
		)),
		ui.CardContent(ui.Child[*ui.CardContentConfig](
			vdom.Form(vdom.Method("post"), vdom.Action("/repositories"), vdom.Class("flex flex-row gap-2 items-end"),
				vdom.Div(vdom.Class("flex flex-col gap-1 flex-grow"),
					ui.Label(ui.LabelFor("url"), ui.Text[*ui.LabelConfig]("URL")),
					ui.Input(ui.InputType("url"), ui.InputName("url"), ui.InputValue(v.FormURL),
						ui.InputPlaceholder("https://example.com/vpm.json"), ui.InputRequired()),
				),
				vdom.Div(vdom.Class("flex flex-col gap-1"),
					ui.Label(ui.LabelFor("header_name"), ui.Text[*ui.LabelConfig]("Header")),
					ui.Input(ui.InputName("header_name"), ui.InputPlaceholder("Authorization")),
				),
				vdom.Div(vdom.Class("flex flex-col gap-1"),
					ui.Label(ui.LabelFor("header_value"), ui.Text[*ui.LabelConfig]("Value")),
					ui.Input(ui.InputName("header_value")),
				),
				ui.Button(ui.Submit(), ui.Text[*ui.ButtonConfig]("Add")),
			),
		)),
	))
}

func repositoryCard(r repositories.Repository, targets []projects.Project) *vdom.VNode {
	id := r.ID.String()
	pkgs := r.Remote.Packages()

	summary := strconv.Itoa(len(pkgs)) + " packages, " + strconv.Itoa(r.Remote.VersionCount()) + " versions"

	rows := make([]*vdom.VNode, 0, len(pkgs))
	for _, p := range pkgs {
		rows = append(rows, packageRow(id, p, targets))
	}

	body := vdom.P(vdom.Class("text-muted text-sm"), "This repository lists no packages.")
	if len(rows) > 0 {
		body = vdom.Table(vdom.Class("w-full text-sm"),
			vdom.Thead(vdom.Tr(
				vdom.Th(vdom.Class("text-left"), "Package"),
				vdom.Th(vdom.Class("text-left"), "Latest"),
				vdom.Th(vdom.Class("text-left"), "Install"),
			)),
			vdom.Tbody(rows),
		)
	}

	return ui.Card(ui.Attr[*ui.CardConfig](vdom.Data("repository-id", id)), ui.Child[*ui.CardConfig](
		ui.CardHeader(ui.Child[*ui.CardHeaderConfig](
			vdom.Div(vdom.Class("flex flex-row items-center justify-between gap-2"),
				ui.CardTitle(ui.Text[*ui.CardTitleConfig](r.DisplayName())),
				vdom.Div(vdom.Class("flex flex-row gap-2"),
					vdom.Form(vdom.Method("post"), vdom.Action("/repositories/"+id+"/refresh"),
						ui.Button(ui.Submit(), ui.Variant(ui.ButtonVariantOutline), ui.Size(ui.ButtonSizeSm),
							ui.Text[*ui.ButtonConfig]("Refresh"))),
					vdom.Form(vdom.Method("post"), vdom.Action("/repositories/"+id+"/remove"),
						ui.Button(ui.Submit(), ui.Variant(ui.ButtonVariantDestructive), ui.Size(ui.ButtonSizeSm),
							ui.Text[*ui.ButtonConfig]("Remove"))),
				),
			),
			ui.CardDescription(ui.Child[*ui.CardDescriptionConfig](vdom.Span(
				vdom.Code(r.URL), " · ", summary, " · fetched ",
				vdom.Time(vdom.DateTime(r.FetchedAt.Format(time.RFC3339)), r.FetchedAt.Format("2006-01-02 15:04")),
			))),
		)),
		ui.CardContent(ui.Child[*ui.CardContentConfig](body)),
	))
}

func packageRow(repoID string, p repositories.Package, targets []projects.Project) *vdom.VNode {
	latest, _ := p.Latest()

	return vdom.Tr(vdom.Data("package", p.Name),
		vdom.Td(
			vdom.Div(vdom.Class("font-medium"), latest.Title()),
			vdom.Div(vdom.Class("text-muted text-xs"), p.Name),
		),
		vdom.Td(latest.Version, vdom.When(latest.Yanked(), vdom.Span(vdom.Class("text-destructive text-xs"), " yanked"))),
		vdom.Td(installForm(repoID, p, latest.Version, targets)),
	)
}

func installForm(repoID string, p repositories.Package, selected string, targets []projects.Project) *vdom.VNode {
	if len(targets) == 0 {
		return vdom.Span(vdom.Class("text-muted text-xs"), "Add a project to install packages.")
	}

	versions := make([]*vdom.VNode, 0, len(p.Versions))
	for _, m := range p.Versions {
		label := m.Version
		if m.Yanked() {
			label += " (yanked)"
		}
		versions = append(versions, vdom.Option(vdom.Value(m.Version), vdom.When(m.Version == selected, vdom.Selected()), label))
	}
	projectOptions := make([]*vdom.VNode, 0, len(targets))
	for _, t := range targets {
		projectOptions = append(projectOptions, vdom.Option(vdom.Value(t.ID.String()), t.Name()))
	}

	return vdom.Form(vdom.Method("post"), vdom.Action("/repositories/"+repoID+"/install"), vdom.Class("flex flex-row gap-2 items-center"),
		vdom.Input(vdom.Type("hidden"), vdom.Name("package"), vdom.Value(p.Name)),
		vdom.Select(vdom.Name("version"), vdom.Class(selectClass), vdom.AriaLabel("Version"), versions),
		vdom.Select(vdom.Name("project_id"), vdom.Class(selectClass), vdom.AriaLabel("Project"), projectOptions),
		ui.Button(ui.Submit(), ui.Size(ui.ButtonSizeSm), ui.Text[*ui.ButtonConfig]("Install")),
	)
}
