package emailhtml

import (
	"context"
	"fmt"
	"time"

	"github.com/Notifuse/mailcanvas/pkg/canvas"
)

// Options tune a full conversion
type Options struct {
	Mode Mode
	// TemplateData personalises Liquid merge tags. Nil leaves tags untouched.
	TemplateData map[string]interface{}
	Title        string
	PreviewText  string
	ContentWidth int
	// LiquidTimeout bounds each merge tag render, DefaultRenderTimeout when zero
	LiquidTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Mode == "" {
		o.Mode = ModeEmail
	}
	if o.ContentWidth <= 0 {
		o.ContentWidth = DefaultContentWidth
	}
	return o
}

// Output is the result of Convert. MJML is only set in MJML mode.
type Output struct {
	HTML string `json:"html"`
	MJML string `json:"mjml,omitempty"`
}

// Convert renders merge tags, then serializes the document in the requested
// mode. The document is not modified.
func Convert(ctx context.Context, doc canvas.Document, opts Options) (Output, error) {
	opts = opts.withDefaults()
	if err := opts.Mode.Validate(); err != nil {
		return Output{}, err
	}

	items := doc.CanvasItems
	rows := doc.LayoutRows
	if opts.TemplateData != nil {
		var err error
		engine := NewSecureLiquidEngineWithOptions(opts.LiquidTimeout, DefaultMaxTemplateSize)
		if items, rows, err = personalize(ctx, engine, doc, opts.TemplateData); err != nil {
			return Output{}, err
		}
		if opts.Title, err = engine.Render(ctx, opts.Title, opts.TemplateData); err != nil {
			return Output{}, fmt.Errorf("failed to render title: %w", err)
		}
		if opts.PreviewText, err = engine.Render(ctx, opts.PreviewText, opts.TemplateData); err != nil {
			return Output{}, fmt.Errorf("failed to render preview text: %w", err)
		}
	}

	if opts.Mode != ModeMJML {
		return Output{HTML: renderDocument(items, rows, opts)}, nil
	}

	mjml := ConvertToMJML(items, rows, opts)
	compiled, err := CompileMJML(ctx, mjml)
	if err != nil {
		return Output{MJML: mjml}, err
	}
	return Output{HTML: compiled, MJML: mjml}, nil
}

// personalize returns copies of the document's items and rows with merge tags
// rendered in content and link targets
func personalize(ctx context.Context, engine *SecureLiquidEngine, doc canvas.Document, data map[string]interface{}) ([]canvas.Element, []canvas.LayoutRow, error) {
	doc = doc.Clone()

	for i, el := range doc.CanvasItems {
		rendered, err := personalizeElement(ctx, engine, el, data)
		if err != nil {
			return nil, nil, err
		}
		doc.CanvasItems[i] = rendered
	}
	for _, row := range doc.LayoutRows {
		for key, elements := range row.Elements {
			for i, el := range elements {
				rendered, err := personalizeElement(ctx, engine, el, data)
				if err != nil {
					return nil, nil, err
				}
				elements[i] = rendered
			}
			row.Elements[key] = elements
		}
	}
	return doc.CanvasItems, doc.LayoutRows, nil
}

func personalizeElement(ctx context.Context, engine *SecureLiquidEngine, el canvas.Element, data map[string]interface{}) (canvas.Element, error) {
	patch := map[string]interface{}{}
	s := el.Style()

	if HasMarkup(el.Content) {
		var render func(context.Context, string, map[string]interface{}) (string, error)
		switch el.Kind {
		case canvas.KindText, canvas.KindHTMLBlock:
			// emitted verbatim
			render = engine.RenderEscaped
		case canvas.KindButton:
			// the label is escaped when rendered
			render = engine.Render
		}
		if render != nil {
			content, err := render(ctx, el.Content, data)
			if err != nil {
				return el, fmt.Errorf("liquid processing failed for element %d: %w", el.ID, err)
			}
			patch["content"] = content
		}
	}

	links := map[string]string{}
	switch el.Kind {
	case canvas.KindButton:
		links["buttonUrl"] = s.ButtonURL
	case canvas.KindSocialIcon:
		links["socialUrl"] = s.SocialURL
	}
	for key, target := range links {
		if !HasMarkup(target) {
			continue
		}
		rendered, err := engine.Render(ctx, target, data)
		if err != nil {
			return el, fmt.Errorf("liquid processing failed for element %d: %w", el.ID, err)
		}
		patch[key] = rendered
	}

	if len(patch) == 0 {
		return el, nil
	}
	return el.ApplyPatch(patch)
}
