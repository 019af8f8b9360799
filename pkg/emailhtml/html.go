// Package emailhtml serializes a canvas document into self-contained HTML.
//
// Email mode only emits constructs mail clients agree on: presentation tables,
// inline styles and no classes, flexbox or CSS variables. Output is
// deterministic, so the same document always yields byte-identical markup.
package emailhtml

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/Notifuse/mailcanvas/pkg/canvas"
	"github.com/Notifuse/mailcanvas/pkg/icons"
)

// Mode selects which constructs the serializer may use
type Mode string

const (
	// ModeEmail emits tables and inline styles only
	ModeEmail Mode = "email"
	// ModeWeb is the hosted "view in browser" rendition, flexbox allowed
	ModeWeb Mode = "web"
	// ModeMJML emits MJML compiled by mjml-go
	ModeMJML Mode = "mjml"
)

// Validate checks the mode is known
func (m Mode) Validate() error {
	switch m {
	case ModeEmail, ModeWeb, ModeMJML:
		return nil
	}
	return fmt.Errorf("invalid mode: %q", m)
}

const (
	// DefaultContentWidth is the width of the email body in pixels
	DefaultContentWidth = 600
	bodyBackground      = "#F3F4F6"
	contentBackground   = "#FFFFFF"
)

const presentationTable = `<table role="presentation" width="100%" cellpadding="0" cellspacing="0" border="0"`

// ConvertToHTML renders canvas items then layout rows into a complete HTML
// document. MJML mode has no pure rendition and falls back to email markup;
// use Convert to compile it.
func ConvertToHTML(items []canvas.Element, rows []canvas.LayoutRow, mode Mode) string {
	return renderDocument(items, rows, Options{Mode: mode}.withDefaults())
}

func renderDocument(items []canvas.Element, rows []canvas.LayoutRow, opts Options) string {
	var b strings.Builder

	b.WriteString(`<!DOCTYPE html>`)
	b.WriteString(`<html lang="en"><head>`)
	b.WriteString(`<meta charset="utf-8">`)
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	b.WriteString(`<meta http-equiv="X-UA-Compatible" content="IE=edge">`)
	b.WriteString(`<title>` + html.EscapeString(opts.Title) + `</title>`)
	b.WriteString(`</head>`)

	body := (&canvas.CSS{}).Set("margin", "0").Set("padding", "0").Set("background-color", bodyBackground)
	b.WriteString(`<body` + body.Attr() + `>`)

	if opts.PreviewText != "" {
		hidden := (&canvas.CSS{}).
			Set("display", "none").
			Set("max-height", "0").
			Set("overflow", "hidden").
			Set("mso-hide", "all")
		b.WriteString(`<div` + hidden.Attr() + `>` + html.EscapeString(opts.PreviewText) + `</div>`)
	}

	if opts.Mode == ModeWeb {
		renderWebBody(&b, items, rows, opts)
	} else {
		renderEmailBody(&b, items, rows, opts)
	}

	b.WriteString(`</body></html>`)
	return b.String()
}

func renderEmailBody(b *strings.Builder, items []canvas.Element, rows []canvas.LayoutRow, opts Options) {
	outer := (&canvas.CSS{}).Set("background-color", bodyBackground)
	b.WriteString(presentationTable + outer.Attr() + `><tr><td align="center">`)

	inner := (&canvas.CSS{}).
		SetPx("width", opts.ContentWidth).
		Set("max-width", "100%").
		Set("background-color", contentBackground)
	fmt.Fprintf(b, `<table role="presentation" width="%d" cellpadding="0" cellspacing="0" border="0"%s>`, opts.ContentWidth, inner.Attr())

	for _, el := range items {
		b.WriteString(`<tr><td>`)
		b.WriteString(renderElement(el, ModeEmail))
		b.WriteString(`</td></tr>`)
	}
	for _, row := range rows {
		b.WriteString(`<tr><td>`)
		b.WriteString(renderRow(row, ModeEmail))
		b.WriteString(`</td></tr>`)
	}

	b.WriteString(`</table></td></tr></table>`)
}

func renderWebBody(b *strings.Builder, items []canvas.Element, rows []canvas.LayoutRow, opts Options) {
	wrapper := (&canvas.CSS{}).
		Set("display", "flex").
		Set("flex-direction", "column").
		SetPx("max-width", opts.ContentWidth).
		Set("margin", "0 auto").
		Set("background-color", contentBackground)
	b.WriteString(`<div` + wrapper.Attr() + `>`)
	for _, el := range items {
		b.WriteString(renderElement(el, ModeWeb))
	}
	for _, row := range rows {
		b.WriteString(renderRow(row, ModeWeb))
	}
	b.WriteString(`</div>`)
}

// renderRow emits one layout row. Columns come out in column-number order.
func renderRow(row canvas.LayoutRow, mode Mode) string {
	var b strings.Builder
	keys := row.ColumnKeys()

	if mode == ModeWeb {
		b.WriteString(`<div style="display:flex;width:100%">`)
		for _, key := range keys {
			width := row.ColumnWidth(key)
			col := (&canvas.CSS{}).
				Set("flex", "0 0 "+width).
				Set("max-width", width).
				Set("box-sizing", "border-box")
			b.WriteString(`<div` + col.Attr() + `>`)
			for _, el := range row.Elements[key] {
				b.WriteString(renderElement(el, mode))
			}
			b.WriteString(`</div>`)
		}
		b.WriteString(`</div>`)
		return b.String()
	}

	b.WriteString(presentationTable + `><tr>`)
	for _, key := range keys {
		width := row.ColumnWidth(key)
		col := (&canvas.CSS{}).Set("width", width).Set("vertical-align", "top")
		fmt.Fprintf(&b, `<td width="%s" valign="top"%s>`, html.EscapeString(width), col.Attr())
		for _, el := range row.Elements[key] {
			b.WriteString(renderElement(el, mode))
		}
		b.WriteString(`</td>`)
	}
	b.WriteString(`</tr></table>`)
	return b.String()
}

// renderElement emits the wrapping node carrying alignment, padding and
// background, with the kind's markup inside.
func renderElement(el canvas.Element, mode Mode) string {
	s := el.Style()
	wrapper := (&canvas.CSS{}).
		Set("text-align", string(s.Alignment)).
		Set("padding", s.Padding.CSS()).
		Set("background-color", s.BackgroundColor)

	inner := renderKind(el, s)
	if mode == ModeWeb {
		return `<div` + wrapper.Attr() + `>` + inner + `</div>`
	}
	return presentationTable + `><tr><td align="` + string(s.Alignment) + `"` + wrapper.Attr() + `>` + inner + `</td></tr></table>`
}

func renderKind(el canvas.Element, s canvas.Style) string {
	switch el.Kind {
	case canvas.KindButton:
		return renderButton(el, s)
	case canvas.KindText:
		text := (&canvas.CSS{}).Font(s).Set("line-height", "1.5")
		return `<div` + text.Attr() + `>` + el.Content + `</div>`
	case canvas.KindImage, canvas.KindLogo:
		return renderImage(el, s)
	case canvas.KindDivider:
		return renderDivider(s)
	case canvas.KindSocialIcon:
		return renderSocial(s)
	case canvas.KindHTMLBlock:
		return el.Content
	}
	return ""
}

func renderButton(el canvas.Element, s canvas.Style) string {
	href := s.ButtonURL
	if href == "" {
		href = "#"
	}
	css := (&canvas.CSS{}).
		Set("display", "inline-block").
		Set("background-color", s.ButtonColor).
		Set("border-radius", s.ButtonShape.Radius()).
		Set("padding", canvas.ButtonInnerPadding).
		Font(s)
	if !s.FontStyles.Underline {
		css.Set("text-decoration", "none")
	}
	return `<a href="` + html.EscapeString(href) + `" target="_blank"` + css.Attr() + `>` + html.EscapeString(el.Content) + `</a>`
}

func renderImage(el canvas.Element, s canvas.Style) string {
	if el.Content == "" {
		return ""
	}
	css := (&canvas.CSS{}).
		Set("display", "inline-block").
		Set("width", s.ImageWidth).
		Set("height", s.ImageHeight).
		Set("max-width", "100%").
		Set("object-fit", s.ObjectFit).
		SetPx("border-radius", s.BorderRadius).
		Set("border", "0")

	var b strings.Builder
	b.WriteString(`<img src="` + html.EscapeString(el.Content) + `" alt="` + html.EscapeString(string(el.Kind)) + `"`)
	if px, ok := pixels(s.ImageWidth); ok {
		b.WriteString(` width="` + strconv.Itoa(px) + `"`)
	}
	if px, ok := pixels(s.ImageHeight); ok {
		b.WriteString(` height="` + strconv.Itoa(px) + `"`)
	}
	b.WriteString(css.Attr() + `>`)
	return b.String()
}

func renderDivider(s canvas.Style) string {
	if s.DividerStyle == canvas.DividerArrow {
		css := (&canvas.CSS{}).Set("color", s.TextColor).Set("font-size", "24px").Set("line-height", "1")
		return `<div` + css.Attr() + `>` + canvas.DividerArrowGlyph + `</div>`
	}
	line := "1px solid "
	if s.DividerStyle == canvas.DividerDotted {
		line = "2px dotted "
	}
	cell := (&canvas.CSS{}).
		Set("border-top", line+s.TextColor).
		Set("font-size", "0").
		Set("line-height", "0").
		Set("height", "1px")
	return presentationTable + `><tr><td` + cell.Attr() + `>&nbsp;</td></tr></table>`
}

func renderSocial(s canvas.Style) string {
	name := icons.Normalize(s.SocialIcon)
	img := (&canvas.CSS{}).Set("display", "inline-block").Set("border", "0")
	px := s.SocialSize
	if px <= 0 {
		px = icons.DefaultSize
	}
	size := strconv.Itoa(px)
	tag := `<img src="` + icons.DataURI(name, s.SocialColor, px) + `" alt="` + name +
		`" width="` + size + `" height="` + size + `"` + img.Attr() + `>`
	if s.SocialURL == "" {
		return tag
	}
	link := (&canvas.CSS{}).Set("display", "inline-block").Set("text-decoration", "none")
	return `<a href="` + html.EscapeString(s.SocialURL) + `" target="_blank"` + link.Attr() + `>` + tag + `</a>`
}

// pixels parses "150px" or "150" into 150
func pixels(v string) (int, bool) {
	v = strings.TrimSuffix(strings.TrimSpace(v), "px")
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
