package pages

import (
	"github.com/vangoframework/vpmshell/internal/prefs"
	"github.com/vangoframework/vpmshell/internal/ui"
	"github.com/vangoframework/vpmshell/internal/vdom"
)

// SettingsView is the data behind the settings page.
type SettingsView struct {
	Prefs prefs.Preferences
	Flash *Flash
}

// Settings edits the UI preferences.
func Settings(v SettingsView) *vdom.VNode {
	return page("Settings",
		flash(v.Flash),
		vdom.Form(vdom.Method("post"), vdom.Action("/settings"), vdom.Class("flex flex-col gap-4"),
			vdom.Div(vdom.Class("flex flex-row items-center gap-2"),
				ui.Input(ui.InputType("checkbox"), ui.InputName("sidebar_collapsed"), ui.InputValue("true"),
					ui.InputChecked(v.Prefs.SidebarCollapsed)),
				ui.Label(ui.LabelFor("sidebar_collapsed"), ui.Text[*ui.LabelConfig]("Collapse sidebar")),
			),
			vdom.Div(vdom.Class("flex flex-col gap-1"),
				ui.Label(ui.LabelFor("project_sort"), ui.Text[*ui.LabelConfig]("Sort projects by")),
				ui.Select(
					ui.SelectName("project_sort"),
					ui.SelectItems(
						ui.SelectItem{Value: prefs.SortLastModified, Label: "Last modified"},
						ui.SelectItem{Value: prefs.SortName, Label: "Name"},
					),
					ui.SelectValue(v.Prefs.ProjectSort),
				),
			),
			vdom.Div(ui.Button(ui.Submit(), ui.Text[*ui.ButtonConfig]("Save"))),
		),
		vdom.Form(vdom.Method("post"), vdom.Action("/settings/reset"),
			ui.Button(ui.Submit(), ui.Variant(ui.ButtonVariantOutline), ui.Text[*ui.ButtonConfig]("Reset preferences")),
		),
	)
}
