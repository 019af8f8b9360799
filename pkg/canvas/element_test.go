package canvas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewElement(t *testing.T) {
	tests := []struct {
		name        string
		kind        ElementKind
		wantContent string
		check       func(t *testing.T, s Style)
	}{
		{
			name:        "button defaults",
			kind:        KindButton,
			wantContent: "Click Here",
			check: func(t *testing.T, s Style) {
				assert.Equal(t, "#8B5CF6", s.ButtonColor)
				assert.Equal(t, ShapeRoundedLG, s.ButtonShape)
				assert.Equal(t, "#FFFFFF", s.TextColor)
				assert.Equal(t, AlignCenter, s.Alignment)
			},
		},
		{
			name:        "text defaults",
			kind:        KindText,
			wantContent: "Start typing here...",
			check: func(t *testing.T, s Style) {
				assert.Equal(t, 16, s.FontSize)
				assert.Equal(t, AlignLeft, s.Alignment)
				assert.Equal(t, DefaultFontFamily, s.FontFamily)
			},
		},
		{
			name: "logo defaults",
			kind: KindLogo,
			check: func(t *testing.T, s Style) {
				assert.Equal(t, "150px", s.ImageWidth)
				assert.Equal(t, "contain", s.ObjectFit)
			},
		},
		{
			name:        "html block defaults",
			kind:        KindHTMLBlock,
			wantContent: "<div>Custom HTML</div>",
			check: func(t *testing.T, s Style) {
				assert.Equal(t, Padding{8, 8, 8, 8}, s.Padding)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el, err := NewElement(3, tt.kind)
			require.NoError(t, err)
			assert.Equal(t, 3, el.ID)
			assert.Equal(t, ElementType, el.Type)
			assert.Equal(t, tt.wantContent, el.Content)
			assert.Equal(t, tt.kind, el.Attrs.Kind())
			tt.check(t, el.Style())
		})
	}

	t.Run("unknown kind", func(t *testing.T) {
		_, err := NewElement(1, "Carousel")
		assert.Error(t, err)
	})
}

func TestElement_JSON(t *testing.T) {
	t.Run("flat persisted form", func(t *testing.T) {
		el, err := NewElement(4, KindButton)
		require.NoError(t, err)

		data, err := json.Marshal(el)
		require.NoError(t, err)

		var raw map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &raw))
		assert.Equal(t, float64(4), raw["id"])
		assert.Equal(t, "Button", raw["name"])
		assert.Equal(t, "element", raw["type"])
		assert.Equal(t, "Click Here", raw["content"])
		assert.Equal(t, "#8B5CF6", raw["buttonColor"])
		assert.Equal(t, "rounded-lg", raw["buttonShape"])
		assert.NotContains(t, raw, "imageWidth")
	})

	t.Run("unknown keys survive a reload", func(t *testing.T) {
		input := `{"id":9,"name":"Text","type":"element","content":"Hi","fontSize":20,"letterSpacing":"2px"}`

		var el Element
		require.NoError(t, json.Unmarshal([]byte(input), &el))
		attrs, ok := el.Attrs.(*TextAttributes)
		require.True(t, ok)
		require.NotNil(t, attrs.FontSize)
		assert.Equal(t, 20, *attrs.FontSize)
		assert.Equal(t, "2px", el.Extra["letterSpacing"])

		out, err := json.Marshal(el)
		require.NoError(t, err)
		assert.JSONEq(t, input, string(out))
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		var el Element
		err := json.Unmarshal([]byte(`{"id":1,"name":"Video"}`), &el)
		assert.Error(t, err)
	})

	t.Run("absent attributes stay absent", func(t *testing.T) {
		var el Element
		require.NoError(t, json.Unmarshal([]byte(`{"id":2,"name":"Divider","content":""}`), &el))
		attrs := el.Attrs.(*DividerAttributes)
		assert.Nil(t, attrs.DividerStyle)
		assert.Equal(t, DividerSingle, el.Style().DividerStyle)
	})
}

func TestElement_ApplyPatch(t *testing.T) {
	el, err := NewElement(5, KindText)
	require.NoError(t, err)

	t.Run("replaces values and keeps identity", func(t *testing.T) {
		patched, err := el.ApplyPatch(map[string]interface{}{
			"id":         99,
			"name":       "Button",
			"content":    "Hello",
			"alignment":  "center",
			"fontStyles": []interface{}{"bold", "italic"},
		})
		require.NoError(t, err)
		assert.Equal(t, 5, patched.ID)
		assert.Equal(t, KindText, patched.Kind)
		assert.Equal(t, "Hello", patched.Content)

		style := patched.Style()
		assert.Equal(t, AlignCenter, style.Alignment)
		assert.True(t, style.FontStyles.Bold)
		assert.True(t, style.FontStyles.Italic)
		assert.False(t, style.FontStyles.Underline)
	})

	t.Run("null removes an attribute", func(t *testing.T) {
		patched, err := el.ApplyPatch(map[string]interface{}{"textColor": nil})
		require.NoError(t, err)
		assert.Nil(t, patched.Attrs.(*TextAttributes).TextColor)
		assert.Equal(t, "#111827", patched.Style().TextColor)
	})

	t.Run("wrong value type", func(t *testing.T) {
		_, err := el.ApplyPatch(map[string]interface{}{"fontSize": "large"})
		assert.Error(t, err)
	})

	t.Run("original is untouched", func(t *testing.T) {
		_, err := el.ApplyPatch(map[string]interface{}{"fontSize": 40})
		require.NoError(t, err)
		assert.Equal(t, 16, *el.Attrs.(*TextAttributes).FontSize)
	})
}

func TestElement_Clone(t *testing.T) {
	el, err := NewElement(1, KindSocialIcon)
	require.NoError(t, err)

	cp := el.Clone()
	*cp.Attrs.(*SocialAttributes).SocialSize = 48

	assert.Equal(t, 24, el.Style().SocialSize)
	assert.Equal(t, 48, cp.Style().SocialSize)
}

func TestButtonShape_Radius(t *testing.T) {
	assert.Equal(t, "0", ShapeSquare.Radius())
	assert.Equal(t, "4px", ShapeRounded.Radius())
	assert.Equal(t, "8px", ShapeRoundedLG.Radius())
	assert.Equal(t, "9999px", ShapeRoundedFull.Radius())
}

func TestParseKindAndLayoutName(t *testing.T) {
	kind, err := ParseKind(" social icon ")
	require.NoError(t, err)
	assert.Equal(t, KindSocialIcon, kind)

	_, err = ParseKind("Carousel")
	assert.Error(t, err)

	n, err := ParseLayoutName("3 Column")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = ParseLayoutName("5 Column")
	assert.Error(t, err)
	_, err = ParseLayoutName("Column")
	assert.Error(t, err)
	assert.Equal(t, "2 Column", LayoutName(2))
}
