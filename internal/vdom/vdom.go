// Package vdom is a small element tree that renders through templ.
//
// Nodes are built from variadic options the same way the Vango vdom is used:
// attributes, text and child components can be mixed freely, and class
// attributes given more than once are merged in order.
package vdom

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Attr is a single HTML attribute. Boolean attributes render without a value.
type Attr struct {
	Key   string
	Value string
	Bool  bool
}

// VNode is an element with ordered attributes and child components.
type VNode struct {
	Tag      string
	Attrs    []Attr
	Children []templ.Component
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// El builds an element. Options may be Attr, []Attr, string (text),
// templ.Component, []templ.Component or []*VNode; nil values are skipped.
func El(tag string, opts ...any) *VNode {
	n := &VNode{Tag: tag}
	for _, opt := range opts {
		n.apply(opt)
	}
	return n
}

func (n *VNode) apply(opt any) {
	switch v := opt.(type) {
	case nil:
	case Attr:
		n.setAttr(v)
	case []Attr:
		for _, a := range v {
			n.setAttr(a)
		}
	case string:
		n.Children = append(n.Children, Text(v))
	case *VNode:
		if v != nil {
			n.Children = append(n.Children, v)
		}
	case []*VNode:
		for _, c := range v {
			if c != nil {
				n.Children = append(n.Children, c)
			}
		}
	case templ.Component:
		n.Children = append(n.Children, v)
	case []templ.Component:
		for _, c := range v {
			if c != nil {
				n.Children = append(n.Children, c)
			}
		}
	case []any:
		for _, o := range v {
			n.apply(o)
		}
	}
}

func (n *VNode) setAttr(a Attr) {
	if a.Key == "" {
		return
	}
	for i := range n.Attrs {
		if n.Attrs[i].Key != a.Key {
			continue
		}
		if a.Key == "class" {
			n.Attrs[i].Value = strings.TrimSpace(n.Attrs[i].Value + " " + a.Value)
		} else {
			n.Attrs[i] = a
		}
		return
	}
	n.Attrs = append(n.Attrs, a)
}

// Prop returns the value of the named attribute, or "" if unset.
func (n *VNode) Prop(key string) string {
	for _, a := range n.Attrs {
		if a.Key == key {
			if a.Bool {
				return key
			}
			return a.Value
		}
	}
	return ""
}

// HasProp reports whether the attribute is set.
func (n *VNode) HasProp(key string) bool {
	for _, a := range n.Attrs {
		if a.Key == key {
			return true
		}
	}
	return false
}

// Render implements templ.Component.
func (n *VNode) Render(ctx context.Context, w io.Writer) error {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(n.Tag)
	for _, a := range n.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		if a.Bool {
			continue
		}
		b.WriteString(`="`)
		b.WriteString(templ.EscapeString(a.Value))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	if voidElements[n.Tag] {
		return nil
	}
	for _, c := range n.Children {
		if err := c.Render(ctx, w); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</"+n.Tag+">")
	return err
}

// TextNode is escaped character data.
type TextNode string

// Text returns an escaped text node.
func Text(s string) TextNode { return TextNode(s) }

// Render implements templ.Component.
func (t TextNode) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, templ.EscapeString(string(t)))
	return err
}

// Doctype prefixes the html root with the HTML5 doctype.
func Doctype(root templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<!DOCTYPE html>"); err != nil {
			return err
		}
		return root.Render(ctx, w)
	})
}

// When returns opt if cond holds, otherwise nil (which El skips).
func When(cond bool, opt any) any {
	if cond {
		return opt
	}
	return nil
}
