package canvas

import (
	"html"
	"strconv"
	"strings"
)

// CSS accumulates inline style declarations in insertion order
type CSS struct {
	decls []string
}

// cssValueReplacer strips characters that would end a declaration or the
// attribute carrying it
var cssValueReplacer = strings.NewReplacer(";", "", "{", "", "}", "", "<", "", ">", "", "\n", " ")

// Set adds prop:value. Empty values are skipped.
func (c *CSS) Set(prop, value string) *CSS {
	value = strings.TrimSpace(cssValueReplacer.Replace(value))
	if value == "" {
		return c
	}
	c.decls = append(c.decls, prop+":"+value)
	return c
}

// SetPx adds prop with a pixel value
func (c *CSS) SetPx(prop string, px int) *CSS {
	if px == 0 {
		return c.Set(prop, "0")
	}
	return c.Set(prop, strconv.Itoa(px)+"px")
}

// Font adds the declarations of a font family, size, colour and toggles
func (c *CSS) Font(s Style) *CSS {
	c.Set("font-family", s.FontFamily)
	c.SetPx("font-size", s.FontSize)
	c.Set("color", s.TextColor)
	if s.FontStyles.Bold {
		c.Set("font-weight", "bold")
	}
	if s.FontStyles.Italic {
		c.Set("font-style", "italic")
	}
	if s.FontStyles.Underline {
		c.Set("text-decoration", "underline")
	}
	return c
}

// String joins the declarations, e.g. "text-align:center;padding:8px 8px 8px 8px"
func (c *CSS) String() string {
	return strings.Join(c.decls, ";")
}

// Attr renders ` style="..."`, or nothing when no declaration was added
func (c *CSS) Attr() string {
	if len(c.decls) == 0 {
		return ""
	}
	return ` style="` + html.EscapeString(c.String()) + `"`
}

// DividerArrowGlyph is the double arrow drawn by an arrow divider
const DividerArrowGlyph = "&#10231;"
