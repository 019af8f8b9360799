package emailhtml

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	mjmlgo "github.com/Boostport/mjml-go"

	"github.com/Notifuse/mailcanvas/pkg/canvas"
	"github.com/Notifuse/mailcanvas/pkg/icons"
)

// ConvertToMJML emits an MJML document. Consecutive canvas items share one
// full-width section; each layout row becomes a section with one column per
// layout column.
func ConvertToMJML(items []canvas.Element, rows []canvas.LayoutRow, opts Options) string {
	opts = opts.withDefaults()
	var b strings.Builder

	b.WriteString("<mjml>\n  <mj-head>\n")
	if opts.Title != "" {
		b.WriteString("    <mj-title>" + escapeContent(opts.Title) + "</mj-title>\n")
	}
	if opts.PreviewText != "" {
		b.WriteString("    <mj-preview>" + escapeContent(opts.PreviewText) + "</mj-preview>\n")
	}
	b.WriteString("    <mj-attributes>\n")
	b.WriteString(`      <mj-all font-family="` + escapeAttributeValue(canvas.DefaultFontFamily, "font-family") + "\" />\n")
	b.WriteString("    </mj-attributes>\n  </mj-head>\n")
	fmt.Fprintf(&b, "  <mj-body width=\"%dpx\" background-color=\"%s\">\n", opts.ContentWidth, bodyBackground)

	if len(items) > 0 {
		b.WriteString("    <mj-section background-color=\"" + contentBackground + "\" padding=\"0\">\n")
		b.WriteString("      <mj-column>\n")
		for _, el := range items {
			b.WriteString("        " + mjmlElement(el) + "\n")
		}
		b.WriteString("      </mj-column>\n    </mj-section>\n")
	}

	for _, row := range rows {
		b.WriteString("    <mj-section background-color=\"" + contentBackground + "\" padding=\"0\">\n")
		for _, key := range row.ColumnKeys() {
			b.WriteString(`      <mj-column width="` + escapeAttributeValue(row.ColumnWidth(key), "width") + "\">\n")
			for _, el := range row.Elements[key] {
				b.WriteString("        " + mjmlElement(el) + "\n")
			}
			b.WriteString("      </mj-column>\n")
		}
		b.WriteString("    </mj-section>\n")
	}

	b.WriteString("  </mj-body>\n</mjml>")
	return b.String()
}

// CompileMJML compiles MJML to HTML with mjml-go
func CompileMJML(ctx context.Context, mjml string) (string, error) {
	out, err := mjmlgo.ToHTML(ctx, mjml)
	if err != nil {
		return "", fmt.Errorf("failed to compile mjml: %w", err)
	}
	return out, nil
}

// mjmlAttrs keeps attribute order stable
type mjmlAttrs [][2]string

func (a *mjmlAttrs) set(name, value string) {
	if value == "" {
		return
	}
	*a = append(*a, [2]string{name, value})
}

func (a mjmlAttrs) String() string {
	var b strings.Builder
	for _, kv := range a {
		b.WriteString(" " + kv[0] + `="` + escapeAttributeValue(kv[1], kv[0]) + `"`)
	}
	return b.String()
}

func boxAttrs(s canvas.Style) *mjmlAttrs {
	attrs := &mjmlAttrs{}
	attrs.set("align", string(s.Alignment))
	attrs.set("padding", s.Padding.CSS())
	attrs.set("container-background-color", s.BackgroundColor)
	return attrs
}

func fontAttrs(attrs *mjmlAttrs, s canvas.Style) {
	attrs.set("font-family", s.FontFamily)
	if s.FontSize > 0 {
		attrs.set("font-size", strconv.Itoa(s.FontSize)+"px")
	}
	attrs.set("color", s.TextColor)
	if s.FontStyles.Bold {
		attrs.set("font-weight", "bold")
	}
	if s.FontStyles.Italic {
		attrs.set("font-style", "italic")
	}
	if s.FontStyles.Underline {
		attrs.set("text-decoration", "underline")
	}
}

func mjmlElement(el canvas.Element) string {
	s := el.Style()
	attrs := boxAttrs(s)

	switch el.Kind {
	case canvas.KindText:
		fontAttrs(attrs, s)
		attrs.set("line-height", "1.5")
		return "<mj-text" + attrs.String() + ">" + el.Content + "</mj-text>"

	case canvas.KindButton:
		href := s.ButtonURL
		if href == "" {
			href = "#"
		}
		attrs.set("href", href)
		attrs.set("background-color", s.ButtonColor)
		attrs.set("border-radius", s.ButtonShape.Radius())
		attrs.set("inner-padding", canvas.ButtonInnerPadding)
		fontAttrs(attrs, s)
		return "<mj-button" + attrs.String() + ">" + escapeContent(el.Content) + "</mj-button>"

	case canvas.KindImage, canvas.KindLogo:
		if el.Content == "" {
			return "<mj-spacer height=\"0px\" />"
		}
		attrs.set("src", el.Content)
		attrs.set("alt", string(el.Kind))
		// mj-image only accepts pixel widths; percentages fill the column
		if px, ok := pixels(s.ImageWidth); ok {
			attrs.set("width", strconv.Itoa(px)+"px")
		}
		if px, ok := pixels(s.ImageHeight); ok {
			attrs.set("height", strconv.Itoa(px)+"px")
		}
		if s.BorderRadius > 0 {
			attrs.set("border-radius", strconv.Itoa(s.BorderRadius)+"px")
		}
		return "<mj-image" + attrs.String() + " />"

	case canvas.KindDivider:
		if s.DividerStyle == canvas.DividerArrow {
			attrs.set("color", s.TextColor)
			attrs.set("font-size", "24px")
			attrs.set("line-height", "1")
			return "<mj-text" + attrs.String() + ">" + canvas.DividerArrowGlyph + "</mj-text>"
		}
		width, style := "1px", "solid"
		if s.DividerStyle == canvas.DividerDotted {
			width, style = "2px", "dotted"
		}
		divider := &mjmlAttrs{}
		divider.set("border-width", width)
		divider.set("border-style", style)
		divider.set("border-color", s.TextColor)
		divider.set("padding", s.Padding.CSS())
		divider.set("container-background-color", s.BackgroundColor)
		return "<mj-divider" + divider.String() + " />"

	case canvas.KindSocialIcon:
		px := s.SocialSize
		if px <= 0 {
			px = icons.DefaultSize
		}
		name := icons.Normalize(s.SocialIcon)
		attrs.set("src", icons.DataURI(name, s.SocialColor, px))
		attrs.set("alt", name)
		attrs.set("href", s.SocialURL)
		attrs.set("width", strconv.Itoa(px)+"px")
		attrs.set("height", strconv.Itoa(px)+"px")
		return "<mj-image" + attrs.String() + " />"

	case canvas.KindHTMLBlock:
		return "<mj-raw>" + el.Content + "</mj-raw>"
	}
	return ""
}

// escapeAttributeValue escapes an MJML attribute. Ampersands in http(s) URLs
// are kept so query strings survive compilation.
func escapeAttributeValue(value string, attributeName string) string {
	isURLAttribute := attributeName == "src" || attributeName == "href"
	looksLikeURL := strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") || strings.HasPrefix(value, "//")

	if !(isURLAttribute && looksLikeURL) {
		value = strings.ReplaceAll(value, "&", "&amp;")
	}
	value = strings.ReplaceAll(value, "\"", "&quot;")
	value = strings.ReplaceAll(value, "'", "&#39;")
	value = strings.ReplaceAll(value, "<", "&lt;")
	value = strings.ReplaceAll(value, ">", "&gt;")
	return value
}

func escapeContent(content string) string {
	content = strings.ReplaceAll(content, "&", "&amp;")
	content = strings.ReplaceAll(content, "<", "&lt;")
	content = strings.ReplaceAll(content, ">", "&gt;")
	return content
}
