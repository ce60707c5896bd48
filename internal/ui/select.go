package ui

import "github.com/vangoframework/vpmshell/internal/vdom"

// SelectItem is one <option> of a Select.
type SelectItem struct {
	Value string
	Label string
}

type SelectConfig struct {
	BaseConfig
	Name     string
	Items    []SelectItem
	Selected string
}

func (c *SelectConfig) GetBase() *BaseConfig { return &c.BaseConfig }

type SelectOption = Option[*SelectConfig]

func SelectName(name string) SelectOption {
	return func(c *SelectConfig) { c.Name = name }
}

func SelectItems(items ...SelectItem) SelectOption {
	return func(c *SelectConfig) { c.Items = append(c.Items, items...) }
}

func SelectValue(v string) SelectOption {
	return func(c *SelectConfig) { c.Selected = v }
}

func Select(opts ...SelectOption) *vdom.VNode {
	c := Apply(&SelectConfig{}, opts...)

	options := make([]*vdom.VNode, 0, len(c.Items))
	for _, item := range c.Items {
		options = append(options, vdom.Option(
			vdom.Value(item.Value),
			vdom.When(item.Value == c.Selected, vdom.Selected()),
			item.Label,
		))
	}
	n := element("select", "h-10 rounded-md border bg-background px-3 text-sm", &c.BaseConfig,
		vdom.Name(c.Name), vdom.ID(c.Name))
	for _, o := range options {
		n.Children = append(n.Children, o)
	}
	return n
}
