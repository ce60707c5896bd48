package vdom

// Elements

func Html(opts ...any) *VNode     { return El("html", opts...) }
func Head(opts ...any) *VNode     { return El("head", opts...) }
func Body(opts ...any) *VNode     { return El("body", opts...) }
func Title(opts ...any) *VNode    { return El("title", opts...) }
func Meta(opts ...any) *VNode     { return El("meta", opts...) }
func Link(opts ...any) *VNode     { return El("link", opts...) }
func Style(opts ...any) *VNode    { return El("style", opts...) }
func Div(opts ...any) *VNode      { return El("div", opts...) }
func Span(opts ...any) *VNode     { return El("span", opts...) }
func Nav(opts ...any) *VNode      { return El("nav", opts...) }
func Main(opts ...any) *VNode     { return El("main", opts...) }
func Header(opts ...any) *VNode   { return El("header", opts...) }
func Section(opts ...any) *VNode  { return El("section", opts...) }
func H1(opts ...any) *VNode       { return El("h1", opts...) }
func H2(opts ...any) *VNode       { return El("h2", opts...) }
func H3(opts ...any) *VNode       { return El("h3", opts...) }
func P(opts ...any) *VNode        { return El("p", opts...) }
func A(opts ...any) *VNode        { return El("a", opts...) }
func Ul(opts ...any) *VNode       { return El("ul", opts...) }
func Li(opts ...any) *VNode       { return El("li", opts...) }
func Form(opts ...any) *VNode     { return El("form", opts...) }
func Button(opts ...any) *VNode   { return El("button", opts...) }
func Input(opts ...any) *VNode    { return El("input", opts...) }
func Label(opts ...any) *VNode    { return El("label", opts...) }
func Select(opts ...any) *VNode   { return El("select", opts...) }
func Option(opts ...any) *VNode   { return El("option", opts...) }
func Table(opts ...any) *VNode    { return El("table", opts...) }
func Thead(opts ...any) *VNode    { return El("thead", opts...) }
func Tbody(opts ...any) *VNode    { return El("tbody", opts...) }
func Tr(opts ...any) *VNode       { return El("tr", opts...) }
func Th(opts ...any) *VNode       { return El("th", opts...) }
func Td(opts ...any) *VNode       { return El("td", opts...) }
func Code(opts ...any) *VNode     { return El("code", opts...) }
func Time(opts ...any) *VNode     { return El("time", opts...) }

// Attributes

func Class(v string) Attr       { return Attr{Key: "class", Value: v} }
func ID(v string) Attr          { return Attr{Key: "id", Value: v} }
func Lang(v string) Attr        { return Attr{Key: "lang", Value: v} }
func Href(v string) Attr        { return Attr{Key: "href", Value: v} }
func Rel(v string) Attr         { return Attr{Key: "rel", Value: v} }
func Name(v string) Attr        { return Attr{Key: "name", Value: v} }
func Content(v string) Attr     { return Attr{Key: "content", Value: v} }
func Charset(v string) Attr     { return Attr{Key: "charset", Value: v} }
func Type(v string) Attr        { return Attr{Key: "type", Value: v} }
func Value(v string) Attr       { return Attr{Key: "value", Value: v} }
func Placeholder(v string) Attr { return Attr{Key: "placeholder", Value: v} }
func For(v string) Attr         { return Attr{Key: "for", Value: v} }
func Method(v string) Attr      { return Attr{Key: "method", Value: v} }
func Action(v string) Attr      { return Attr{Key: "action", Value: v} }
func DateTime(v string) Attr    { return Attr{Key: "datetime", Value: v} }
func AriaLabel(v string) Attr   { return Attr{Key: "aria-label", Value: v} }
func AriaCurrent(v string) Attr { return Attr{Key: "aria-current", Value: v} }
func Data(key, v string) Attr   { return Attr{Key: "data-" + key, Value: v} }
func Checked() Attr             { return Attr{Key: "checked", Bool: true} }
func Selected() Attr            { return Attr{Key: "selected", Bool: true} }
func Required() Attr            { return Attr{Key: "required", Bool: true} }
