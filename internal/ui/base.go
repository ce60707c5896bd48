// Package ui holds the shared component kit used by the shell, the sidebar
// and page content.
package ui

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/vangoframework/vpmshell/internal/vdom"
)

// NodeOption is anything vdom.El accepts: attributes, text or child components.
type NodeOption = any

// BaseConfig is embedded in every component config.
type BaseConfig struct {
	Classes []string
	Options []NodeOption
}

// ConfigProvider lets generic options work on any component config.
type ConfigProvider interface {
	GetBase() *BaseConfig
}

// Option modifies a component config.
type Option[T ConfigProvider] func(T)

// Class adds utility classes, merged with the component defaults via CN.
func Class[T ConfigProvider](c string) Option[T] {
	return func(cfg T) {
		base := cfg.GetBase()
		base.Classes = append(base.Classes, c)
	}
}

// Attr passes a raw vdom attribute through.
func Attr[T ConfigProvider](attr vdom.Attr) Option[T] {
	return func(cfg T) {
		base := cfg.GetBase()
		base.Options = append(base.Options, attr)
	}
}

// Child appends child components.
func Child[T ConfigProvider](nodes ...templ.Component) Option[T] {
	return func(cfg T) {
		base := cfg.GetBase()
		for _, n := range nodes {
			base.Options = append(base.Options, n)
		}
	}
}

// Text appends an escaped text child.
func Text[T ConfigProvider](s string) Option[T] {
	return func(cfg T) {
		base := cfg.GetBase()
		base.Options = append(base.Options, vdom.Text(s))
	}
}

// Apply runs opts against cfg in order.
func Apply[T ConfigProvider](cfg T, opts ...Option[T]) T {
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// element renders base classes, component-specific attributes and the
// caller's options onto a single element.
func element(tag, defaults string, base *BaseConfig, attrs ...vdom.Attr) *vdom.VNode {
	renderOpts := make([]any, 0, len(base.Options)+len(attrs)+1)
	renderOpts = append(renderOpts, vdom.Class(CN(defaults, strings.Join(base.Classes, " "))))
	for _, a := range attrs {
		if a.Key != "" && (a.Bool || a.Value != "") {
			renderOpts = append(renderOpts, a)
		}
	}
	renderOpts = append(renderOpts, base.Options...)
	return vdom.El(tag, renderOpts...)
}
