package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/vangoframework/vpmshell/internal/font"
	"github.com/vangoframework/vpmshell/internal/vdom"
)

// fakeNav records the class it was handed and renders a marker element.
type fakeNav struct {
	classes []string
}

func (f *fakeNav) render(class string) templ.Component {
	f.classes = append(f.classes, class)
	return vdom.Nav(vdom.Class(class), vdom.ID("test-nav"), "menu")
}

func renderDoc(t *testing.T, s *Shell, children templ.Component) (string, *html.Node) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, s.Layout(children).Render(context.Background(), &buf))
	doc, err := html.Parse(strings.NewReader(buf.String()))
	require.NoError(t, err)
	return buf.String(), doc
}

func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if got := find(c, match); got != nil {
			return got
		}
	}
	return nil
}

func byTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Type == html.ElementNode && n.Data == tag }
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func elementChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func TestLayoutHelloExample(t *testing.T) {
	nav := &fakeNav{}
	s := New(WithNav(nav.render))

	out, doc := renderDoc(t, s, vdom.Text("Hello"))
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))

	root := find(doc, byTag("html"))
	require.NotNil(t, root)
	assert.Equal(t, "en", attr(root, "lang"))

	body := find(doc, byTag("body"))
	require.NotNil(t, body)
	assert.Contains(t, strings.Fields(attr(body, "class")), s.Font().ClassName)

	regions := elementChildren(body)
	require.Len(t, regions, 2)
	assert.Equal(t, "nav", regions[0].Data)
	assert.Equal(t, "div", regions[1].Data)
	assert.Equal(t, "Hello", textOf(regions[1]))
	assert.NotContains(t, textOf(regions[0]), "Hello")
}

func TestContentRenderedOnceInsideContentRegion(t *testing.T) {
	s := New(WithNav((&fakeNav{}).render))
	content := vdom.Section(vdom.ID("page"), vdom.P("unique-marker"))

	out, doc := renderDoc(t, s, content)
	assert.Equal(t, 1, strings.Count(out, "unique-marker"))

	page := find(doc, func(n *html.Node) bool { return attr(n, "id") == "page" })
	require.NotNil(t, page)
	assert.Equal(t, ContentClass, attr(page.Parent, "class"))

	nav := find(doc, byTag("nav"))
	require.NotNil(t, nav)
	assert.Nil(t, find(nav, func(n *html.Node) bool { return attr(n, "id") == "page" }))
}

func TestBodyClassesAndNavStylingAreFixed(t *testing.T) {
	for _, content := range []templ.Component{nil, vdom.Text("a"), vdom.Div(vdom.Class("flex-grow-0"), "b")} {
		nav := &fakeNav{}
		s := New(WithNav(nav.render))
		_, doc := renderDoc(t, s, content)

		body := find(doc, byTag("body"))
		classes := strings.Fields(attr(body, "class"))
		assert.Contains(t, classes, s.Font().ClassName)
		for _, c := range strings.Fields(BodyClass) {
			assert.Contains(t, classes, c)
		}

		require.Equal(t, []string{NavClass}, nav.classes)
		regions := elementChildren(body)
		require.Len(t, regions, 2)
		assert.Equal(t, NavClass, attr(regions[0], "class"))
		assert.Equal(t, ContentClass, attr(regions[1], "class"))
	}
}

func TestNilContentRendersEmptyRegion(t *testing.T) {
	s := New(WithNav((&fakeNav{}).render))
	_, doc := renderDoc(t, s, nil)

	content := find(doc, func(n *html.Node) bool { return attr(n, "data-region") == "content" })
	require.NotNil(t, content)
	assert.Nil(t, content.FirstChild)
}

func TestMetadataIsStaticAcrossRenders(t *testing.T) {
	meta := Metadata{Title: "Projects & Packages", Description: "Local project manager"}
	s := New(WithMetadata(meta), WithNav((&fakeNav{}).render))

	for _, content := range []templ.Component{vdom.Text("one"), vdom.H1("two")} {
		_, doc := renderDoc(t, s, content)

		title := find(doc, byTag("title"))
		require.NotNil(t, title)
		assert.Equal(t, meta.Title, textOf(title))

		desc := find(doc, func(n *html.Node) bool {
			return n.Type == html.ElementNode && n.Data == "meta" && attr(n, "name") == "description"
		})
		require.NotNil(t, desc)
		assert.Equal(t, meta.Description, attr(desc, "content"))
	}
	assert.Equal(t, meta, s.Metadata())
}

func TestLangIsConfigurable(t *testing.T) {
	s := New(WithLang("ja"), WithNav((&fakeNav{}).render))
	_, doc := renderDoc(t, s, vdom.Text("x"))

	assert.Equal(t, "ja", attr(find(doc, byTag("html")), "lang"))
	assert.Equal(t, "ja", s.Lang())
}

func TestHeadLinksFontAndStylesheets(t *testing.T) {
	f := font.Resolve("Noto Sans JP", font.Subsets("latin"))
	s := New(WithFont(f), WithStylesheets("/static/globals.css"), WithNav((&fakeNav{}).render))

	out, _ := renderDoc(t, s, nil)
	fontLink := strings.Index(out, html.EscapeString(f.StylesheetURL()))
	globals := strings.Index(out, "/static/globals.css")
	require.NotEqual(t, -1, fontLink)
	require.NotEqual(t, -1, globals)
	assert.Less(t, fontLink, globals)
	assert.Contains(t, out, "<style>"+f.CSS()+"</style>")
}

func TestLocalFontSkipsRemoteStylesheet(t *testing.T) {
	s := New(WithFont(font.Resolve("Noto Sans JP", font.Local())), WithNav((&fakeNav{}).render))
	out, _ := renderDoc(t, s, nil)
	assert.NotContains(t, out, "fonts.googleapis.com")
}

func TestDefaultNavIsSidebar(t *testing.T) {
	out, doc := renderDoc(t, New(), vdom.Text("x"))
	assert.Contains(t, out, `aria-label="Main"`)

	nav := find(doc, byTag("nav"))
	require.NotNil(t, nav)
	classes := strings.Fields(attr(nav, "class"))
	assert.Contains(t, classes, "flex-grow-0")
	assert.Contains(t, classes, "overflow-auto")
}

func TestContentErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")
	failing := templ.ComponentFunc(func(context.Context, io.Writer) error { return boom })

	err := New(WithNav((&fakeNav{}).render)).Layout(failing).Render(context.Background(), io.Discard)
	assert.ErrorIs(t, err, boom)
}
