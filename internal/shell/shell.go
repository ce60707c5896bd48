// Package shell is the root page layout shared by every page: the document
// element, the head metadata, the web font, and a two-region body holding the
// sidebar and the page content.
package shell

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vangoframework/vpmshell/internal/font"
	"github.com/vangoframework/vpmshell/internal/sidebar"
	"github.com/vangoframework/vpmshell/internal/ui"
	"github.com/vangoframework/vpmshell/internal/vdom"
)

// Fixed layout classes.
const (
	DefaultLang = "en"

	BodyClass    = "w-screen h-screen flex flex-row overflow-hidden whitespace-nowrap"
	NavClass     = "flex-grow-0 overflow-auto"
	ContentClass = "h-screen flex-grow overflow-auto flex"
)

// DefaultFamily is the web font loaded when none is configured.
const DefaultFamily = "Noto Sans JP"

// Metadata is the static head metadata.
type Metadata struct {
	Title       string
	Description string
}

// DefaultMetadata describes the application.
var DefaultMetadata = Metadata{
	Title:       "VPM Shell",
	Description: "Manage Unity projects and VPM packages",
}

// NavFunc renders the navigation region with the given layout classes.
type NavFunc func(class string) templ.Component

// DefaultNav is the application sidebar.
func DefaultNav(class string) templ.Component {
	return sidebar.SideBar(sidebar.Class(class))
}

// Shell composes pages into the shared document. It holds only configuration
// fixed at construction and is safe for concurrent use.
type Shell struct {
	lang        string
	meta        Metadata
	font        font.Font
	nav         NavFunc
	stylesheets []string
	tracer      trace.Tracer
}

// Option configures a Shell.
type Option func(*Shell)

// WithLang sets the html lang attribute. An empty tag keeps the default.
func WithLang(lang string) Option {
	return func(s *Shell) {
		if lang != "" {
			s.lang = lang
		}
	}
}

// WithMetadata sets the document title and description.
func WithMetadata(m Metadata) Option {
	return func(s *Shell) { s.meta = m }
}

// WithFont sets the body font class and its stylesheet.
func WithFont(f font.Font) Option {
	return func(s *Shell) { s.font = f }
}

// WithNav replaces the navigation rendered beside the page content.
// A nil nav keeps the default sidebar.
func WithNav(nav NavFunc) Option {
	return func(s *Shell) {
		if nav != nil {
			s.nav = nav
		}
	}
}

// WithStylesheets links additional stylesheets after the font stylesheet.
func WithStylesheets(hrefs ...string) Option {
	return func(s *Shell) { s.stylesheets = append(s.stylesheets, hrefs...) }
}

// New builds a Shell. Without options it renders English, DefaultMetadata,
// DefaultFamily for the latin subset, and the application sidebar.
func New(opts ...Option) *Shell {
	s := &Shell{
		lang:   DefaultLang,
		meta:   DefaultMetadata,
		font:   font.Resolve(DefaultFamily, font.Subsets("latin")),
		nav:    DefaultNav,
		tracer: otel.Tracer("github.com/vangoframework/vpmshell/internal/shell"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Metadata returns the head metadata.
func (s *Shell) Metadata() Metadata { return s.meta }

// Lang returns the document language.
func (s *Shell) Lang() string { return s.lang }

// Font returns the resolved body font.
func (s *Shell) Font() font.Font { return s.font }

// Document composes the html element around children. A nil children renders
// an empty content region.
func (s *Shell) Document(children templ.Component) *vdom.VNode {
	return vdom.Html(
		vdom.Lang(s.lang),
		s.head(),
		vdom.Body(
			vdom.Class(ui.CN(s.font.ClassName, BodyClass)),
			s.nav(NavClass),
			vdom.Div(vdom.Class(ContentClass), vdom.Data("region", "content"), children),
		),
	)
}

func (s *Shell) head() *vdom.VNode {
	links := make([]*vdom.VNode, 0, len(s.stylesheets)+1)
	if href := s.font.StylesheetURL(); href != "" {
		links = append(links, vdom.Link(vdom.Rel("stylesheet"), vdom.Href(href)))
	}
	for _, href := range s.stylesheets {
		links = append(links, vdom.Link(vdom.Rel("stylesheet"), vdom.Href(href)))
	}

	return vdom.Head(
		vdom.Meta(vdom.Charset("utf-8")),
		vdom.Meta(vdom.Name("viewport"), vdom.Content("width=device-width, initial-scale=1")),
		vdom.Title(s.meta.Title),
		vdom.Meta(vdom.Name("description"), vdom.Content(s.meta.Description)),
		links,
		vdom.Style(templ.Raw(s.font.CSS())),
	)
}

// Layout is the rendering entry point: the doctype followed by Document.
func (s *Shell) Layout(children templ.Component) templ.Component {
	doc := vdom.Doctype(s.Document(children))
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		ctx, span := s.tracer.Start(ctx, "shell.Layout",
			trace.WithAttributes(attribute.String("shell.lang", s.lang)))
		defer span.End()

		if err := doc.Render(ctx, w); err != nil {
			span.RecordError(err)
			return err
		}
		return nil
	})
}
