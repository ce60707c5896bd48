package pages

import (
	"github.com/vangoframework/vpmshell/internal/packages"
	"github.com/vangoframework/vpmshell/internal/projects"
	"github.com/vangoframework/vpmshell/internal/ui"
	"github.com/vangoframework/vpmshell/internal/vdom"
)

// ProjectView is the data behind a single project's page.
type ProjectView struct {
	Project  projects.Project
	Packages []packages.Installed
	Flash    *Flash
}

// Project shows one project and the packages installed in it.
func Project(v ProjectView) *vdom.VNode {
	p := v.Project

	var installed *vdom.VNode
	if len(v.Packages) == 0 {
		installed = vdom.P(vdom.Class("text-muted"), vdom.ID("packages-empty"), "No packages installed.")
	} else {
		rows := make([]*vdom.VNode, 0, len(v.Packages))
		for _, pkg := range v.Packages {
			rows = append(rows, vdom.Tr(vdom.Data("package", pkg.Name),
				vdom.Td(vdom.Div(vdom.Class("font-medium"), pkg.Title()), vdom.Div(vdom.Class("text-muted text-xs"), pkg.Name)),
				vdom.Td(pkg.Version),
			))
		}
		installed = vdom.Table(vdom.Class("w-full text-sm"), vdom.ID("packages"),
			vdom.Thead(vdom.Tr(
				vdom.Th(vdom.Class("text-left"), "Package"),
				vdom.Th(vdom.Class("text-left"), "Version"),
			)),
			vdom.Tbody(rows),
		)
	}

	return page(p.Name(),
		flash(v.Flash),
		ui.Card(ui.Child[*ui.CardConfig](
			ui.CardHeader(ui.Child[*ui.CardHeaderConfig](
				ui.CardTitle(ui.Text[*ui.CardTitleConfig]("Project")),
				ui.CardDescription(ui.Child[*ui.CardDescriptionConfig](vdom.Code(p.Path))),
			)),
			ui.CardContent(ui.Child[*ui.CardContentConfig](
				vdom.Div(vdom.Class("text-sm"), "Type: ", p.Type.String()),
				vdom.Div(vdom.Class("text-sm"), "Unity: ", p.UnityVersionOrUnknown()),
			)),
		)),
		vdom.H2(vdom.Class("text-lg font-semibold"), "Installed packages"),
		installed,
		vdom.A(vdom.Href("/repositories"), vdom.Class("text-primary underline text-sm"), "Browse repositories"),
	)
}
