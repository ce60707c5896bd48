// Package font resolves a web font family into a class name that can be
// applied to the document body, plus the stylesheet and class rule needed to
// make that class render with the family.
package font

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/cespare/xxhash/v2"
)

const googleFontsCSS = "https://fonts.googleapis.com/css2"

// SystemStack is used when no family is configured or the family fails to load.
var SystemStack = []string{"system-ui", "-apple-system", "Segoe UI", "Roboto", "sans-serif"}

// Font is a resolved font family.
type Font struct {
	Family    string
	Subsets   []string
	Weights   []string
	Display   string
	Fallback  []string
	Local     bool
	ClassName string
}

// Option configures Resolve.
type Option func(*Font)

// Subsets selects the character subsets to load, for example "latin".
func Subsets(subsets ...string) Option {
	return func(f *Font) { f.Subsets = append(f.Subsets, subsets...) }
}

// Weights selects explicit weights; without it the family's default is used.
func Weights(weights ...string) Option {
	return func(f *Font) { f.Weights = append(f.Weights, weights...) }
}

// Display sets the font-display strategy.
func Display(display string) Option {
	return func(f *Font) { f.Display = display }
}

// Fallback replaces the fallback families.
func Fallback(families ...string) Option {
	return func(f *Font) { f.Fallback = families }
}

// Local skips the remote stylesheet; the family must already be installed or bundled.
func Local() Option {
	return func(f *Font) { f.Local = true }
}

// Resolve builds a Font for family. The class name is stable for the same
// family, subsets and weights.
func Resolve(family string, opts ...Option) Font {
	f := Font{
		Family:   strings.TrimSpace(family),
		Display:  "swap",
		Fallback: SystemStack,
	}
	for _, opt := range opts {
		opt(&f)
	}
	if f.Family == "" {
		f.Local = true
	}
	f.ClassName = className(f)
	return f
}

func className(f Font) string {
	key := strings.Join([]string{
		strings.ToLower(f.Family),
		strings.Join(f.Subsets, ","),
		strings.Join(f.Weights, ","),
	}, "|")
	return fmt.Sprintf("__className_%06x", xxhash.Sum64String(key)&0xffffff)
}

// StylesheetURL returns the remote stylesheet to link, or "" for local fonts.
func (f Font) StylesheetURL() string {
	if f.Local {
		return ""
	}
	// The axis separators stay literal; everything user supplied is escaped.
	family := url.QueryEscape(f.Family)
	if len(f.Weights) > 0 {
		weights := make([]string, len(f.Weights))
		for i, w := range f.Weights {
			weights[i] = url.QueryEscape(w)
		}
		family += ":wght@" + strings.Join(weights, ";")
	}
	u := googleFontsCSS + "?family=" + family
	if f.Display != "" {
		u += "&display=" + url.QueryEscape(f.Display)
	}
	return u
}

// FamilyList returns the CSS font-family value including fallbacks.
func (f Font) FamilyList() string {
	families := make([]string, 0, len(f.Fallback)+1)
	if f.Family != "" {
		families = append(families, quote(f.Family))
	}
	for _, fb := range f.Fallback {
		families = append(families, quote(fb))
	}
	return strings.Join(families, ", ")
}

// CSS returns the rule that binds ClassName to the family.
func (f Font) CSS() string {
	return fmt.Sprintf(".%s{font-family:%s;font-style:normal}", f.ClassName, f.FamilyList())
}

var cssStringEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "<", "", ">", "")

// quote wraps multi-word family names; generic families stay bare.
func quote(family string) string {
	if !strings.ContainsAny(family, " '\\") {
		return cssStringEscaper.Replace(family)
	}
	return "'" + cssStringEscaper.Replace(family) + "'"
}
