// Package pages holds the content rendered inside the shell's content region.
package pages

import (
	"github.com/vangoframework/vpmshell/internal/ui"
	"github.com/vangoframework/vpmshell/internal/vdom"
)

// page is the common content wrapper: a growing column with a heading.
func page(title string, children ...any) *vdom.VNode {
	return vdom.Main(
		vdom.Class("flex flex-col flex-grow gap-4 p-4 min-w-0"),
		vdom.Header(vdom.Class("flex items-center justify-between"),
			vdom.H1(vdom.Class("text-2xl font-semibold"), title),
		),
		children,
	)
}

// Flash is a one-line status message shown above page content.
type Flash struct {
	Kind    string // "error" or "info"
	Message string
}

func flash(f *Flash) *vdom.VNode {
	if f == nil || f.Message == "" {
		return nil
	}
	class := "rounded-md border px-3 py-2 text-sm"
	if f.Kind == "error" {
		class = ui.CN(class, "border-destructive text-destructive")
	}
	return vdom.Div(vdom.Class(class), vdom.Attr{Key: "role", Value: "status"}, f.Message)
}

// NotFound is shown for unknown paths.
func NotFound(path string) *vdom.VNode {
	return page("Page not found",
		vdom.P(vdom.Class("text-muted"), "Nothing lives at ", vdom.Code(path), "."),
		vdom.A(vdom.Href("/projects"), vdom.Class("text-primary underline"), "Back to projects"),
	)
}
