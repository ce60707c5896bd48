package ui

import "github.com/vangoframework/vpmshell/internal/vdom"

type LabelConfig struct {
	BaseConfig
	For string
}

func (c *LabelConfig) GetBase() *BaseConfig { return &c.BaseConfig }

type LabelOption = Option[*LabelConfig]

func LabelFor(id string) LabelOption {
	return func(c *LabelConfig) { c.For = id }
}

func Label(opts ...LabelOption) *vdom.VNode {
	c := Apply(&LabelConfig{}, opts...)
	return element("label", "text-sm font-medium", &c.BaseConfig, vdom.For(c.For))
}
