package ui

import (
	"strings"

	"github.com/vangoframework/vpmshell/internal/vdom"
)

type ButtonVariant string

const (
	ButtonVariantDefault     ButtonVariant = "default"
	ButtonVariantPrimary     ButtonVariant = "primary"
	ButtonVariantDestructive ButtonVariant = "destructive"
	ButtonVariantOutline     ButtonVariant = "outline"
	ButtonVariantGhost       ButtonVariant = "ghost"
	ButtonVariantLink        ButtonVariant = "link"
)

type ButtonSize string

const (
	ButtonSizeDefault ButtonSize = "default"
	ButtonSizeSm      ButtonSize = "sm"
	ButtonSizeIcon    ButtonSize = "icon"
)

type ButtonConfig struct {
	BaseConfig
	Variant ButtonVariant
	Size    ButtonSize
	Type    string
}

func (c *ButtonConfig) GetBase() *BaseConfig { return &c.BaseConfig }

type ButtonOption = Option[*ButtonConfig]

func Variant(v ButtonVariant) ButtonOption {
	return func(c *ButtonConfig) { c.Variant = v }
}

func Size(s ButtonSize) ButtonOption {
	return func(c *ButtonConfig) { c.Size = s }
}

// Submit marks the button as a form submit button.
func Submit() ButtonOption {
	return func(c *ButtonConfig) { c.Type = "submit" }
}

// Button renders a <button>, type "button" unless Submit is given.
func Button(opts ...ButtonOption) *vdom.VNode {
	c := Apply(&ButtonConfig{
		Variant: ButtonVariantDefault,
		Size:    ButtonSizeDefault,
		Type:    "button",
	}, opts...)

	return element("button",
		CN("inline-flex items-center justify-center rounded-md text-sm font-medium transition-colors disabled:opacity-50",
			buttonVariants(c.Variant, c.Size)),
		&c.BaseConfig,
		vdom.Type(c.Type),
	)
}

func buttonVariants(v ButtonVariant, s ButtonSize) string {
	var classes []string

	switch v {
	case ButtonVariantDefault, ButtonVariantPrimary:
		classes = append(classes, "bg-primary text-primary-foreground")
	case ButtonVariantDestructive:
		classes = append(classes, "bg-destructive text-destructive-foreground")
	case ButtonVariantOutline:
		classes = append(classes, "border bg-background")
	case ButtonVariantGhost:
		classes = append(classes, "bg-transparent")
	case ButtonVariantLink:
		classes = append(classes, "text-primary underline")
	}

	switch s {
	case ButtonSizeDefault:
		classes = append(classes, "h-10 px-4 py-2")
	case ButtonSizeSm:
		classes = append(classes, "h-9 px-3")
	case ButtonSizeIcon:
		classes = append(classes, "h-10 w-10")
	}

	return strings.Join(classes, " ")
}
