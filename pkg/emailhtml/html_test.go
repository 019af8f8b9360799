package emailhtml

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Notifuse/mailcanvas/pkg/canvas"
)

const newsletterJSON = `{
  "canvasItems": [
    {"id": 1, "name": "Logo", "type": "element", "content": "https://cdn.example.com/logo.png", "imageWidth": "150px", "alignment": "center"},
    {"id": 2, "name": "Text", "type": "element", "content": "Hello <b>there</b>", "alignment": "center", "fontSize": 18, "fontStyles": ["bold"]}
  ],
  "layoutRows": [
    {
      "id": 3, "columns": 3,
      "elements": {
        "3-col-1": [{"id": 4, "name": "Button", "type": "element", "content": "Shop now", "buttonUrl": "https://example.com/shop?a=1&b=2", "buttonShape": "rounded-full", "buttonColor": "#10B981"}],
        "3-col-2": [{"id": 5, "name": "Divider", "type": "element", "dividerStyle": "dotted", "textColor": "#9CA3AF"}],
        "3-col-3": [{"id": 6, "name": "Social Icon", "type": "element", "socialIcon": "linkedin", "socialUrl": "https://linkedin.com/company/acme"}]
      }
    },
    {
      "id": 7, "columns": 2,
      "elements": {
        "7-col-1": [{"id": 8, "name": "HTML Block", "type": "element", "content": "<p class=\"legal\">Unsubscribe</p>"}],
        "7-col-2": []
      },
      "columnWidths": {"7-col-1": "70%", "7-col-2": "30%"}
    }
  ],
  "nextId": 9
}`

func loadNewsletter(t *testing.T) canvas.Document {
	t.Helper()
	doc, err := canvas.LoadTemplate([]byte(newsletterJSON))
	require.NoError(t, err)
	return doc
}

func parse(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func styleOf(s *goquery.Selection) string {
	style, _ := s.Attr("style")
	return style
}

func TestConvertToHTML_CenteredText(t *testing.T) {
	text, err := canvas.NewElement(1, canvas.KindText)
	require.NoError(t, err)
	text.Content = "Welcome to the spring edition"
	text.Attrs.(*canvas.TextAttributes).Alignment = canvas.Ptr(canvas.AlignCenter)

	out := ConvertToHTML([]canvas.Element{text}, nil, ModeEmail)
	doc := parse(t, out)

	cell := doc.Find(`td[align="center"]`).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(styleOf(s), "text-align:center")
	})
	require.Equal(t, 1, cell.Length())
	assert.Equal(t, "Welcome to the spring edition", cell.Find("div").Text())
	assert.Contains(t, out, ">Welcome to the spring edition</div>")
}

func TestConvertToHTML_Deterministic(t *testing.T) {
	doc := loadNewsletter(t)
	first := ConvertToHTML(doc.CanvasItems, doc.LayoutRows, ModeEmail)
	for i := 0; i < 20; i++ {
		again := loadNewsletter(t)
		assert.Equal(t, first, ConvertToHTML(again.CanvasItems, again.LayoutRows, ModeEmail))
	}
}

func TestConvertToHTML_EmailModeIsClientSafe(t *testing.T) {
	doc := loadNewsletter(t)
	out := ConvertToHTML(doc.CanvasItems, doc.LayoutRows, ModeEmail)

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.NotContains(t, out, "display:flex")
	assert.NotContains(t, out, "var(--")
	assert.NotContains(t, out, "<style")
	assert.NotContains(t, out, "<link")

	// only operator-authored HTML blocks may carry classes
	withoutBlock := strings.Replace(out, `<p class="legal">Unsubscribe</p>`, "", 1)
	assert.NotContains(t, withoutBlock, "class=")
}

func TestConvertToHTML_Rows(t *testing.T) {
	doc := loadNewsletter(t)
	html := parse(t, ConvertToHTML(doc.CanvasItems, doc.LayoutRows, ModeEmail))

	var widths []string
	html.Find(`td[valign="top"]`).Each(func(_ int, s *goquery.Selection) {
		w, _ := s.Attr("width")
		widths = append(widths, w)
	})
	assert.Equal(t, []string{"33.33%", "33.33%", "33.33%", "70%", "30%"}, widths)

	// column order follows column numbers
	cells := html.Find(`td[valign="top"]`)
	assert.Contains(t, cells.Eq(0).Text(), "Shop now")
	assert.Equal(t, 1, cells.Eq(2).Find(`img[alt="linkedin"]`).Length())
}

func TestConvertToHTML_Kinds(t *testing.T) {
	doc := loadNewsletter(t)
	out := ConvertToHTML(doc.CanvasItems, doc.LayoutRows, ModeEmail)
	html := parse(t, out)

	t.Run("button", func(t *testing.T) {
		a := html.Find(`a[href="https://example.com/shop?a=1&b=2"]`)
		require.Equal(t, 1, a.Length())
		assert.Equal(t, "Shop now", a.Text())
		style := styleOf(a)
		assert.Contains(t, style, "background-color:#10B981")
		assert.Contains(t, style, "border-radius:9999px")
		assert.Contains(t, style, "padding:12px 24px")
	})

	t.Run("logo", func(t *testing.T) {
		img := html.Find(`img[alt="Logo"]`)
		require.Equal(t, 1, img.Length())
		width, _ := img.Attr("width")
		assert.Equal(t, "150", width)
		assert.Contains(t, styleOf(img), "object-fit:contain")
	})

	t.Run("text keeps font styling", func(t *testing.T) {
		div := html.Find("div").FilterFunction(func(_ int, s *goquery.Selection) bool {
			return s.Find("b").Length() == 1
		})
		require.Equal(t, 1, div.Length())
		style := styleOf(div)
		assert.Contains(t, style, "font-size:18px")
		assert.Contains(t, style, "font-weight:bold")
	})

	t.Run("dotted divider", func(t *testing.T) {
		cell := html.Find("td").FilterFunction(func(_ int, s *goquery.Selection) bool {
			return strings.Contains(styleOf(s), "border-top:2px dotted #9CA3AF")
		})
		assert.Equal(t, 1, cell.Length())
	})

	t.Run("social icon", func(t *testing.T) {
		a := html.Find(`a[href="https://linkedin.com/company/acme"]`)
		require.Equal(t, 1, a.Length())
		src, _ := a.Find("img").Attr("src")
		assert.True(t, strings.HasPrefix(src, "data:image/svg+xml;base64,"))
	})

	t.Run("html block is verbatim", func(t *testing.T) {
		assert.Contains(t, out, `<p class="legal">Unsubscribe</p>`)
	})
}

func TestConvertToHTML_ButtonShapes(t *testing.T) {
	tests := []struct {
		shape  canvas.ButtonShape
		radius string
	}{
		{canvas.ShapeSquare, "border-radius:0"},
		{canvas.ShapeRounded, "border-radius:4px"},
		{canvas.ShapeRoundedLG, "border-radius:8px"},
		{canvas.ShapeRoundedFull, "border-radius:9999px"},
	}
	for _, tt := range tests {
		t.Run(string(tt.shape), func(t *testing.T) {
			el, err := canvas.NewElement(1, canvas.KindButton)
			require.NoError(t, err)
			el.Attrs.(*canvas.ButtonAttributes).ButtonShape = canvas.Ptr(tt.shape)

			a := parse(t, ConvertToHTML([]canvas.Element{el}, nil, ModeEmail)).Find("a")
			require.Equal(t, 1, a.Length())
			assert.Contains(t, styleOf(a), tt.radius)
			href, _ := a.Attr("href")
			assert.Equal(t, "#", href)
		})
	}
}

func TestConvertToHTML_Dividers(t *testing.T) {
	el, err := canvas.NewElement(1, canvas.KindDivider)
	require.NoError(t, err)

	out := ConvertToHTML([]canvas.Element{el}, nil, ModeEmail)
	assert.Contains(t, out, "border-top:1px solid #D1D5DB")

	el.Attrs.(*canvas.DividerAttributes).DividerStyle = canvas.Ptr(canvas.DividerArrow)
	out = ConvertToHTML([]canvas.Element{el}, nil, ModeEmail)
	assert.Contains(t, out, canvas.DividerArrowGlyph)
	assert.NotContains(t, out, "border-top")
}

func TestConvertToHTML_EmptyImageIsSkipped(t *testing.T) {
	el, err := canvas.NewElement(1, canvas.KindImage)
	require.NoError(t, err)
	out := ConvertToHTML([]canvas.Element{el}, nil, ModeEmail)
	assert.NotContains(t, out, "<img")
}

func TestConvertToHTML_WebMode(t *testing.T) {
	doc := loadNewsletter(t)
	out := ConvertToHTML(doc.CanvasItems, doc.LayoutRows, ModeWeb)
	html := parse(t, out)

	assert.Contains(t, out, "display:flex")
	columns := html.Find("div").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.HasPrefix(styleOf(s), "flex:0 0 ")
	})
	assert.Equal(t, 5, columns.Length())
}

func TestConvertToHTML_EmptyDocument(t *testing.T) {
	out := ConvertToHTML(nil, nil, ModeEmail)
	assert.Contains(t, out, "<body")
	assert.Contains(t, out, `width="600"`)
}

func TestMode_Validate(t *testing.T) {
	assert.NoError(t, ModeEmail.Validate())
	assert.NoError(t, ModeWeb.Validate())
	assert.NoError(t, ModeMJML.Validate())
	assert.Error(t, Mode("pdf").Validate())
}
