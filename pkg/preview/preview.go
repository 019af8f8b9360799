// Package preview renders the editor view of a canvas document.
//
// The markup is for the editing surface only: it carries data-mc-* hooks the
// client uses to report clicks, deletions, edits and image drops back through
// HandleInteraction. The email itself is produced by package emailhtml.
package preview

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/Notifuse/mailcanvas/pkg/canvas"
	"github.com/Notifuse/mailcanvas/pkg/icons"
)

// Device selects the width of the editing surface
type Device string

const (
	DeviceDesktop Device = "desktop"
	DeviceMobile  Device = "mobile"
)

// Width returns the canvas width of the device in pixels
func (d Device) Width() int {
	if d == DeviceMobile {
		return 375
	}
	return 600
}

// RenderContext carries the ambient editor state into rendering
type RenderContext struct {
	// Selection is the element being edited, nil when nothing is selected
	Selection *canvas.Selection
	// Location is where the rendered element lives
	Location canvas.Location
	Device   Device
}

func (ctx RenderContext) selected(id int) bool {
	return ctx.Selection != nil && ctx.Selection.ID == id
}

// RenderCanvas renders the whole editing surface: canvas items first, then
// layout rows, in document order.
func RenderCanvas(doc canvas.Document, ctx RenderContext) string {
	device := ctx.Device
	if device == "" {
		device = DeviceDesktop
	}

	var b strings.Builder
	wrapper := (&canvas.CSS{}).
		SetPx("width", device.Width()).
		Set("max-width", "100%").
		Set("margin", "0 auto").
		Set("background-color", "#FFFFFF").
		Set("min-height", "200px")
	fmt.Fprintf(&b, `<div data-mc-canvas="true" data-mc-device="%s"%s>`, html.EscapeString(string(device)), wrapper.Attr())

	if len(doc.CanvasItems) == 0 && len(doc.LayoutRows) == 0 {
		b.WriteString(`<div data-mc-placeholder="canvas" style="padding:48px 16px;text-align:center;color:#9CA3AF">Drag layouts or elements here</div>`)
	}

	for _, el := range doc.CanvasItems {
		elCtx := ctx
		elCtx.Location = canvas.Location{Kind: canvas.LocationCanvas}
		b.WriteString(RenderElement(el, elCtx))
	}
	for _, row := range doc.LayoutRows {
		b.WriteString(renderRow(row, ctx))
	}

	b.WriteString(`</div>`)
	return b.String()
}

func renderRow(row canvas.LayoutRow, ctx RenderContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div data-mc-row="%d" style="display:flex;gap:8px;padding:4px 0">`, row.ID)

	for _, key := range row.ColumnKeys() {
		col := (&canvas.CSS{}).
			Set("flex", "0 0 "+row.ColumnWidth(key)).
			Set("min-height", "48px").
			Set("border", "1px dashed #E5E7EB").
			Set("box-sizing", "border-box")
		fmt.Fprintf(&b, `<div data-mc-row-id="%d" data-mc-column="%s" data-mc-dropzone="column"%s>`,
			row.ID, html.EscapeString(key), col.Attr())

		elements := row.Elements[key]
		if len(elements) == 0 {
			b.WriteString(`<div data-mc-placeholder="column" style="padding:12px;text-align:center;color:#9CA3AF;font-size:12px">Drop elements here</div>`)
		}
		for _, el := range elements {
			elCtx := ctx
			elCtx.Location = canvas.Location{Kind: canvas.LocationColumn, RowID: row.ID, ColumnKey: key}
			b.WriteString(RenderElement(el, elCtx))
		}
		fmt.Fprintf(&b, `<button type="button" data-mc-action="delete-column" data-mc-row-id="%d" data-mc-column="%s">Remove column</button>`,
			row.ID, html.EscapeString(key))
		b.WriteString(`</div>`)
	}

	b.WriteString(`</div>`)
	return b.String()
}

// RenderElement renders one element with its interaction hooks. It never
// changes the element.
func RenderElement(el canvas.Element, ctx RenderContext) string {
	style := el.Style()
	selected := ctx.selected(el.ID)

	wrapper := (&canvas.CSS{}).
		Set("position", "relative").
		Set("text-align", string(style.Alignment)).
		Set("padding", style.Padding.CSS()).
		Set("background-color", style.BackgroundColor)
	if selected {
		wrapper.Set("outline", "2px solid #8B5CF6")
	}

	var b strings.Builder
	b.WriteString(`<div data-mc-id="` + strconv.Itoa(el.ID) + `"`)
	b.WriteString(` data-mc-kind="` + html.EscapeString(string(el.Kind)) + `"`)
	b.WriteString(locationAttrs(ctx.Location))
	if selected {
		b.WriteString(` data-mc-selected="true"`)
	}
	b.WriteString(` data-mc-action="select"`)
	b.WriteString(wrapper.Attr())
	b.WriteString(`>`)

	switch el.Kind {
	case canvas.KindButton:
		b.WriteString(renderButton(el, style))
	case canvas.KindText:
		b.WriteString(renderText(el, style))
	case canvas.KindImage, canvas.KindLogo:
		b.WriteString(renderImage(el, style))
	case canvas.KindDivider:
		b.WriteString(renderDivider(style))
	case canvas.KindSocialIcon:
		b.WriteString(renderSocial(style))
	case canvas.KindHTMLBlock:
		b.WriteString(el.Content)
	}

	if selected {
		fmt.Fprintf(&b, `<button type="button" data-mc-action="delete" data-mc-id="%d" style="position:absolute;top:4px;right:4px">Delete</button>`, el.ID)
	}
	b.WriteString(`</div>`)
	return b.String()
}

func locationAttrs(loc canvas.Location) string {
	if loc.Kind == canvas.LocationColumn {
		return fmt.Sprintf(` data-mc-location="column" data-mc-row-id="%d" data-mc-column="%s"`, loc.RowID, html.EscapeString(loc.ColumnKey))
	}
	return ` data-mc-location="canvas"`
}

func renderButton(el canvas.Element, s canvas.Style) string {
	css := (&canvas.CSS{}).
		Set("display", "inline-block").
		Set("background-color", s.ButtonColor).
		Set("border-radius", s.ButtonShape.Radius()).
		Set("padding", canvas.ButtonInnerPadding).
		Set("border", "none").
		Set("text-decoration", "none").
		Font(s)

	label := html.EscapeString(el.Content)
	if s.ButtonURL != "" {
		return fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer"%s>%s</a>`,
			html.EscapeString(s.ButtonURL), css.Attr(), label)
	}
	css.Set("opacity", "0.85").Set("cursor", "default")
	return fmt.Sprintf(`<button type="button" disabled aria-disabled="true"%s>%s</button>`, css.Attr(), label)
}

func renderText(el canvas.Element, s canvas.Style) string {
	css := (&canvas.CSS{}).Font(s).Set("outline", "none").Set("min-height", "1em")
	placeholder := ""
	if el.Content == canvas.DefaultContent(canvas.KindText) {
		placeholder = ` data-mc-placeholder="true"`
	}
	return fmt.Sprintf(`<div contenteditable="true" data-mc-action="edit" data-mc-id="%d"%s%s>%s</div>`,
		el.ID, placeholder, css.Attr(), el.Content)
}

func renderImage(el canvas.Element, s canvas.Style) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div data-mc-dropzone="image" data-mc-id="%d">`, el.ID)
	if el.Content == "" {
		ph := (&canvas.CSS{}).
			Set("width", s.ImageWidth).
			Set("max-width", "100%").
			Set("display", "inline-block").
			Set("padding", "32px 0").
			Set("border", "2px dashed #D1D5DB").
			SetPx("border-radius", s.BorderRadius).
			Set("color", "#9CA3AF").
			Set("box-sizing", "border-box")
		label := "Drop an image here"
		if el.Kind == canvas.KindLogo {
			label = "Drop your logo here"
		}
		fmt.Fprintf(&b, `<div data-mc-placeholder="image"%s>%s</div>`, ph.Attr(), label)
	} else {
		img := (&canvas.CSS{}).
			Set("width", s.ImageWidth).
			Set("height", s.ImageHeight).
			Set("max-width", "100%").
			Set("object-fit", s.ObjectFit).
			SetPx("border-radius", s.BorderRadius)
		fmt.Fprintf(&b, `<img src="%s" alt="%s"%s>`, html.EscapeString(el.Content), html.EscapeString(string(el.Kind)), img.Attr())
	}
	b.WriteString(`</div>`)
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
	css := (&canvas.CSS{}).Set("border", "none").Set("border-top", line+s.TextColor).Set("margin", "0")
	return `<hr` + css.Attr() + `>`
}

func renderSocial(s canvas.Style) string {
	svg := icons.SVG(s.SocialIcon, s.SocialColor, s.SocialSize)
	if s.SocialURL == "" {
		return `<span data-mc-icon="` + icons.Normalize(s.SocialIcon) + `">` + svg + `</span>`
	}
	return fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer" data-mc-icon="%s">%s</a>`,
		html.EscapeString(s.SocialURL), icons.Normalize(s.SocialIcon), svg)
}
