package ui

import "github.com/vangoframework/vpmshell/internal/vdom"

type CardConfig struct{ BaseConfig }

func (c *CardConfig) GetBase() *BaseConfig { return &c.BaseConfig }

type CardOption = Option[*CardConfig]

func Card(opts ...CardOption) *vdom.VNode {
	c := Apply(&CardConfig{}, opts...)
	return element("div", "rounded-lg border bg-card shadow-sm", &c.BaseConfig)
}

type CardHeaderConfig struct{ BaseConfig }

func (c *CardHeaderConfig) GetBase() *BaseConfig { return &c.BaseConfig }

type CardHeaderOption = Option[*CardHeaderConfig]

func CardHeader(opts ...CardHeaderOption) *vdom.VNode {
	c := Apply(&CardHeaderConfig{}, opts...)
	return element("div", "flex flex-col p-4", &c.BaseConfig)
}

type CardTitleConfig struct{ BaseConfig }

func (c *CardTitleConfig) GetBase() *BaseConfig { return &c.BaseConfig }

type CardTitleOption = Option[*CardTitleConfig]

func CardTitle(opts ...CardTitleOption) *vdom.VNode {
	c := Apply(&CardTitleConfig{}, opts...)
	return element("h3", "text-lg font-semibold", &c.BaseConfig)
}

type CardDescriptionConfig struct{ BaseConfig }

func (c *CardDescriptionConfig) GetBase() *BaseConfig { return &c.BaseConfig }

type CardDescriptionOption = Option[*CardDescriptionConfig]

func CardDescription(opts ...CardDescriptionOption) *vdom.VNode {
	c := Apply(&CardDescriptionConfig{}, opts...)
	return element("p", "text-sm text-muted", &c.BaseConfig)
}

type CardContentConfig struct{ BaseConfig }

func (c *CardContentConfig) GetBase() *BaseConfig { return &c.BaseConfig }

type CardContentOption = Option[*CardContentConfig]

func CardContent(opts ...CardContentOption) *vdom.VNode {
	c := Apply(&CardContentConfig{}, opts...)
	return element("div", "p-4 pt-0", &c.BaseConfig)
}
