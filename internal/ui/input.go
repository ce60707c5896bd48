package ui

import "github.com/vangoframework/vpmshell/internal/vdom"

type InputConfig struct {
	BaseConfig
	Type        string
	Name        string
	ID          string
	Placeholder string
	Value       string
	Checked     bool
	Required    bool
}

func (c *InputConfig) GetBase() *BaseConfig { return &c.BaseConfig }

type InputOption = Option[*InputConfig]

func InputType(t string) InputOption {
	return func(c *InputConfig) { c.Type = t }
}

// InputName sets both the form field name and, unless already set, the id.
func InputName(name string) InputOption {
	return func(c *InputConfig) {
		c.Name = name
		if c.ID == "" {
			c.ID = name
		}
	}
}

func InputID(id string) InputOption {
	return func(c *InputConfig) { c.ID = id }
}

func InputPlaceholder(s string) InputOption {
	return func(c *InputConfig) { c.Placeholder = s }
}

func InputValue(s string) InputOption {
	return func(c *InputConfig) { c.Value = s }
}

func InputChecked(v bool) InputOption {
	return func(c *InputConfig) { c.Checked = v }
}

func InputRequired() InputOption {
	return func(c *InputConfig) { c.Required = true }
}

func Input(opts ...InputOption) *vdom.VNode {
	c := Apply(&InputConfig{Type: "text"}, opts...)

	defaults := "flex h-10 w-full rounded-md border bg-background px-3 py-2 text-sm"
	if c.Type == "checkbox" {
		defaults = "h-4 w-4 rounded border"
	}

	attrs := []vdom.Attr{
		vdom.Type(c.Type),
		vdom.Name(c.Name),
		vdom.ID(c.ID),
		vdom.Placeholder(c.Placeholder),
		vdom.Value(c.Value),
	}
	if c.Checked {
		attrs = append(attrs, vdom.Checked())
	}
	if c.Required {
		attrs = append(attrs, vdom.Required())
	}
	return element("input", defaults, &c.BaseConfig, attrs...)
}
