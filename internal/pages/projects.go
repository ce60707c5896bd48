package pages

import (
	"strconv"
	"time"

	"github.com/vangoframework/vpmshell/internal/projects"
	"github.com/vangoframework/vpmshell/internal/ui"
	"github.com/vangoframework/vpmshell/internal/vdom"
)

// ProjectsView is the data behind the projects page.
type ProjectsView struct {
	Projects []projects.Project
	Sort     string
	Flash    *Flash
	// Form values echoed back after a failed add.
	FormPath         string
	FormUnityVersion string
}

// Projects lists the registered projects with add, remove and favorite forms.
func Projects(v ProjectsView) *vdom.VNode {
	return page("Projects",
		flash(v.Flash),
		addProjectForm(v),
		projectList(v.Projects),
	)
}

func addProjectForm(v ProjectsView) *vdom.VNode {
	typeItems := make([]ui.SelectItem, 0, len(projects.Types()))
	for _, t := range projects.Types() {
		typeItems = append(typeItems, ui.SelectItem{Value: strconv.Itoa(int(t)), Label: t.String()})
	}

	return ui.Card(ui.Child[*ui.CardConfig](
		ui.CardHeader(ui.Child[*ui.CardHeaderConfig](
			ui.CardTitle(ui.Text[*ui.CardTitleConfig]("Add project")),
			ui.CardDescription(ui.Text[*ui.CardDescriptionConfig]("Register an existing Unity project folder.")),
		)),
		ui.CardContent(ui.Child[*ui.CardContentConfig](
			vdom.Form(vdom.Method("post"), vdom.Action("/projects"), vdom.Class("flex flex-row gap-2 items-end"),
				vdom.Div(vdom.Class("flex flex-col gap-1 flex-grow"),
					ui.Label(ui.LabelFor("path"), ui.Text[*ui.LabelConfig]("Path")),
					ui.Input(ui.InputName("path"), ui.InputValue(v.FormPath), ui.InputPlaceholder("/path/to/project"), ui.InputRequired()),
				),
				vdom.Div(vdom.Class("flex flex-col gap-1"),
					ui.Label(ui.LabelFor("unity_version"), ui.Text[*ui.LabelConfig]("Unity version")),
					ui.Input(ui.InputName("unity_version"), ui.InputValue(v.FormUnityVersion), ui.InputPlaceholder("detect")),
				),
				vdom.Div(vdom.Class("flex flex-col gap-1"),
					ui.Label(ui.LabelFor("type"), ui.Text[*ui.LabelConfig]("Type")),
					ui.Select(ui.SelectName("type"), ui.SelectItems(typeItems...), ui.SelectValue("0")),
				),
				ui.Button(ui.Submit(), ui.Text[*ui.ButtonConfig]("Add")),
			),
		)),
	))
}

func projectList(list []projects.Project) *vdom.VNode {
	if len(list) == 0 {
		return vdom.P(vdom.Class("text-muted"), vdom.ID("projects-empty"), "No projects yet.")
	}

	rows := make([]*vdom.VNode, 0, len(list))
	for _, p := range list {
		rows = append(rows, projectRow(p))
	}
	return vdom.Table(vdom.Class("w-full text-sm"), vdom.ID("projects"),
		vdom.Thead(vdom.Tr(
			vdom.Th(vdom.Class("text-left"), ""),
			vdom.Th(vdom.Class("text-left"), "Name"),
			vdom.Th(vdom.Class("text-left"), "Type"),
			vdom.Th(vdom.Class("text-left"), "Unity"),
			vdom.Th(vdom.Class("text-left"), "Last modified"),
			vdom.Th(vdom.Class("text-left"), ""),
		)),
		vdom.Tbody(rows),
	)
}

func projectRow(p projects.Project) *vdom.VNode {
	star, next, label := "☆", "true", "Add to favorites"
	if p.Favorite {
		star, next, label = "★", "false", "Remove from favorites"
	}

	return vdom.Tr(vdom.Data("project-id", p.ID.String()),
		vdom.Td(
			vdom.Form(vdom.Method("post"), vdom.Action("/projects/"+p.ID.String()+"/favorite"),
				vdom.Input(vdom.Type("hidden"), vdom.Name("favorite"), vdom.Value(next)),
				ui.Button(ui.Submit(), ui.Variant(ui.ButtonVariantGhost), ui.Size(ui.ButtonSizeIcon),
					ui.Attr[*ui.ButtonConfig](vdom.AriaLabel(label)),
					ui.Text[*ui.ButtonConfig](star)),
			),
		),
		vdom.Td(
			vdom.A(vdom.Href("/projects/"+p.ID.String()), vdom.Class("font-medium"), p.Name()),
			vdom.Div(vdom.Class("text-muted text-xs"), p.Path),
		),
		vdom.Td(p.Type.String()),
		vdom.Td(p.UnityVersionOrUnknown()),
		vdom.Td(vdom.Time(vdom.DateTime(p.LastModified.Format(time.RFC3339)), p.LastModified.Format("2006-01-02 15:04"))),
		vdom.Td(
			vdom.Form(vdom.Method("post"), vdom.Action("/projects/remove"),
				vdom.Input(vdom.Type("hidden"), vdom.Name("path"), vdom.Value(p.Path)),
				ui.Button(ui.Submit(), ui.Variant(ui.ButtonVariantDestructive), ui.Size(ui.ButtonSizeSm),
					ui.Text[*ui.ButtonConfig]("Remove")),
			),
		),
	)
}
