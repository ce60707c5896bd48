// Package sidebar renders the persistent navigation region shown on every page.
package sidebar

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/vangoframework/vpmshell/internal/prefs"
	"github.com/vangoframework/vpmshell/internal/ui"
	"github.com/vangoframework/vpmshell/internal/vdom"
)

// Item is one navigation entry.
type Item struct {
	Label string
	Href  string
	Icon  string
}

// DefaultItems are the application's top-level pages.
var DefaultItems = []Item{
	{Label: "Projects", Href: "/projects", Icon: "▦"},
	{Label: "Repositories", Href: "/repositories", Icon: "⬢"},
	{Label: "Settings", Href: "/settings", Icon: "⚙"},
	{Label: "Logs", Href: "/logs", Icon: "≡"},
}

// Config is the sidebar component config.
type Config struct {
	ui.BaseConfig
	Items []Item
	Brand string
}

func (c *Config) GetBase() *ui.BaseConfig { return &c.BaseConfig }

type Option = ui.Option[*Config]

// Items replaces the navigation entries.
func Items(items ...Item) Option {
	return func(c *Config) { c.Items = items }
}

// Brand sets the heading shown above the entries.
func Brand(name string) Option {
	return func(c *Config) { c.Brand = name }
}

// Class adds classes to the <nav> element.
func Class(c string) Option { return ui.Class[*Config](c) }

// SideBar returns the navigation component. The active entry and the
// collapsed state are read from the render context.
func SideBar(opts ...Option) templ.Component {
	c := ui.Apply(&Config{Items: DefaultItems, Brand: "VPM Shell"}, opts...)
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		collapsed := prefs.FromContext(ctx).SidebarCollapsed
		return Build(c, CurrentPath(ctx), collapsed).Render(ctx, w)
	})
}

// Build composes the navigation tree for a given path and collapsed state.
func Build(c *Config, currentPath string, collapsed bool) *vdom.VNode {
	width := "w-56"
	if collapsed {
		width = "w-14"
	}

	entries := make([]*vdom.VNode, 0, len(c.Items))
	for _, item := range c.Items {
		active := isActive(currentPath, item.Href)
		linkClass := "flex items-center gap-2 rounded-md px-3 py-2 text-sm"
		if active {
			linkClass = ui.CN(linkClass, "bg-accent font-medium")
		}
		entries = append(entries, vdom.Li(
			vdom.A(
				vdom.Href(item.Href),
				vdom.Class(linkClass),
				vdom.When(active, vdom.AriaCurrent("page")),
				vdom.When(collapsed, vdom.Attr{Key: "title", Value: item.Label}),
				vdom.Span(vdom.Class("nav-icon"), vdom.Attr{Key: "aria-hidden", Value: "true"}, item.Icon),
				vdom.When(!collapsed, vdom.Span(vdom.Class("nav-label"), item.Label)),
			),
		))
	}

	return vdom.Nav(
		vdom.Class(ui.CN("flex flex-col gap-2 border-r bg-sidebar p-2", width, strings.Join(c.Classes, " "))),
		vdom.AriaLabel("Main"),
		vdom.Data("collapsed", boolString(collapsed)),
		vdom.When(!collapsed && c.Brand != "", vdom.Div(vdom.Class("px-3 py-2 text-lg font-semibold"), c.Brand)),
		vdom.Ul(vdom.Class("flex flex-col gap-1"), entries),
		c.Options,
	)
}

func isActive(currentPath, href string) bool {
	if currentPath == "" || href == "" {
		return false
	}
	if currentPath == href {
		return true
	}
	return strings.HasPrefix(currentPath, strings.TrimSuffix(href, "/")+"/")
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

type pathKey struct{}

// WithCurrentPath records the request path used to highlight the active entry.
func WithCurrentPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, pathKey{}, path)
}

// CurrentPath returns the path stored by WithCurrentPath.
func CurrentPath(ctx context.Context) string {
	p, _ := ctx.Value(pathKey{}).(string)
	return p
}
