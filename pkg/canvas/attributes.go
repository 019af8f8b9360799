package canvas

import (
	"encoding/json"
	"fmt"
)

// Alignment is the horizontal placement of an element inside its container
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// FontStyle is one of the toggles a text-bearing element can carry
type FontStyle string

const (
	FontBold      FontStyle = "bold"
	FontItalic    FontStyle = "italic"
	FontUnderline FontStyle = "underline"
)

// ButtonShape maps to a corner radius when rendered
type ButtonShape string

const (
	ShapeSquare      ButtonShape = "rounded-none"
	ShapeRounded     ButtonShape = "rounded"
	ShapeRoundedLG   ButtonShape = "rounded-lg"
	ShapeRoundedFull ButtonShape = "rounded-full"
)

// Radius returns the CSS border-radius of the shape
func (s ButtonShape) Radius() string {
	switch s {
	case ShapeSquare:
		return "0"
	case ShapeRounded:
		return "4px"
	case ShapeRoundedFull:
		return "9999px"
	default:
		return "8px"
	}
}

// DividerStyle selects how a divider line is drawn
type DividerStyle string

const (
	DividerSingle DividerStyle = "single"
	DividerDotted DividerStyle = "dotted"
	DividerArrow  DividerStyle = "arrow"
)

// Attributes is the kind-specific style payload of an element. Every concrete
// type keeps its fields as pointers so an absent attribute differs from a zero one.
type Attributes interface {
	Kind() ElementKind
	// apply copies the attributes that are set onto a resolved style
	apply(s *Style)
}

// BoxAttributes are shared by every element kind
type BoxAttributes struct {
	Alignment       *Alignment `json:"alignment,omitempty"`
	BackgroundColor *string    `json:"backgroundColor,omitempty"`
	PaddingTop      *int       `json:"paddingTop,omitempty"`
	PaddingRight    *int       `json:"paddingRight,omitempty"`
	PaddingBottom   *int       `json:"paddingBottom,omitempty"`
	PaddingLeft     *int       `json:"paddingLeft,omitempty"`
}

func (b *BoxAttributes) apply(s *Style) {
	if b.Alignment != nil {
		s.Alignment = *b.Alignment
	}
	if b.BackgroundColor != nil {
		s.BackgroundColor = *b.BackgroundColor
	}
	if b.PaddingTop != nil {
		s.Padding.Top = *b.PaddingTop
	}
	if b.PaddingRight != nil {
		s.Padding.Right = *b.PaddingRight
	}
	if b.PaddingBottom != nil {
		s.Padding.Bottom = *b.PaddingBottom
	}
	if b.PaddingLeft != nil {
		s.Padding.Left = *b.PaddingLeft
	}
}

// FontAttributes are shared by Button and Text
type FontAttributes struct {
	FontSize   *int        `json:"fontSize,omitempty"`
	TextColor  *string     `json:"textColor,omitempty"`
	FontStyles []FontStyle `json:"fontStyles,omitempty"`
	FontFamily *string     `json:"fontFamily,omitempty"`
}

func (f *FontAttributes) apply(s *Style) {
	if f.FontSize != nil {
		s.FontSize = *f.FontSize
	}
	if f.TextColor != nil {
		s.TextColor = *f.TextColor
	}
	if f.FontStyles != nil {
		s.FontStyles = NewFontStyles(f.FontStyles...)
	}
	if f.FontFamily != nil {
		s.FontFamily = *f.FontFamily
	}
}

type ButtonAttributes struct {
	BoxAttributes
	FontAttributes
	ButtonColor *string      `json:"buttonColor,omitempty"`
	ButtonShape *ButtonShape `json:"buttonShape,omitempty"`
	ButtonURL   *string      `json:"buttonUrl,omitempty"`
}

func (a *ButtonAttributes) Kind() ElementKind { return KindButton }

func (a *ButtonAttributes) apply(s *Style) {
	a.BoxAttributes.apply(s)
	a.FontAttributes.apply(s)
	if a.ButtonColor != nil {
		s.ButtonColor = *a.ButtonColor
	}
	if a.ButtonShape != nil {
		s.ButtonShape = *a.ButtonShape
	}
	if a.ButtonURL != nil {
		s.ButtonURL = *a.ButtonURL
	}
}

type TextAttributes struct {
	BoxAttributes
	FontAttributes
}

func (a *TextAttributes) Kind() ElementKind { return KindText }

func (a *TextAttributes) apply(s *Style) {
	a.BoxAttributes.apply(s)
	a.FontAttributes.apply(s)
}

type ImageAttributes struct {
	BoxAttributes
	ImageWidth   *string `json:"imageWidth,omitempty"`
	ImageHeight  *string `json:"imageHeight,omitempty"`
	ObjectFit    *string `json:"objectFit,omitempty"`
	BorderRadius *int    `json:"borderRadius,omitempty"`
}

func (a *ImageAttributes) Kind() ElementKind { return KindImage }

func (a *ImageAttributes) apply(s *Style) {
	a.BoxAttributes.apply(s)
	if a.ImageWidth != nil {
		s.ImageWidth = *a.ImageWidth
	}
	if a.ImageHeight != nil {
		s.ImageHeight = *a.ImageHeight
	}
	if a.ObjectFit != nil {
		s.ObjectFit = *a.ObjectFit
	}
	if a.BorderRadius != nil {
		s.BorderRadius = *a.BorderRadius
	}
}

// LogoAttributes carry the same fields as an image; only the defaults differ
type LogoAttributes struct {
	ImageAttributes
}

func (a *LogoAttributes) Kind() ElementKind { return KindLogo }

type DividerAttributes struct {
	BoxAttributes
	DividerStyle *DividerStyle `json:"dividerStyle,omitempty"`
	// TextColor is the line colour
	TextColor *string `json:"textColor,omitempty"`
}

func (a *DividerAttributes) Kind() ElementKind { return KindDivider }

func (a *DividerAttributes) apply(s *Style) {
	a.BoxAttributes.apply(s)
	if a.DividerStyle != nil {
		s.DividerStyle = *a.DividerStyle
	}
	if a.TextColor != nil {
		s.TextColor = *a.TextColor
	}
}

type SocialAttributes struct {
	BoxAttributes
	SocialIcon  *string `json:"socialIcon,omitempty"`
	SocialURL   *string `json:"socialUrl,omitempty"`
	SocialColor *string `json:"socialColor,omitempty"`
	SocialSize  *int    `json:"socialSize,omitempty"`
}

func (a *SocialAttributes) Kind() ElementKind { return KindSocialIcon }

func (a *SocialAttributes) apply(s *Style) {
	a.BoxAttributes.apply(s)
	if a.SocialIcon != nil {
		s.SocialIcon = *a.SocialIcon
	}
	if a.SocialURL != nil {
		s.SocialURL = *a.SocialURL
	}
	if a.SocialColor != nil {
		s.SocialColor = *a.SocialColor
	}
	if a.SocialSize != nil {
		s.SocialSize = *a.SocialSize
	}
}

type HTMLBlockAttributes struct {
	BoxAttributes
}

func (a *HTMLBlockAttributes) Kind() ElementKind { return KindHTMLBlock }

func (a *HTMLBlockAttributes) apply(s *Style) {
	a.BoxAttributes.apply(s)
}

// NewAttributes returns an empty attribute struct for the kind
func NewAttributes(kind ElementKind) (Attributes, error) {
	switch kind {
	case KindButton:
		return &ButtonAttributes{}, nil
	case KindText:
		return &TextAttributes{}, nil
	case KindImage:
		return &ImageAttributes{}, nil
	case KindLogo:
		return &LogoAttributes{}, nil
	case KindDivider:
		return &DividerAttributes{}, nil
	case KindSocialIcon:
		return &SocialAttributes{}, nil
	case KindHTMLBlock:
		return &HTMLBlockAttributes{}, nil
	}
	return nil, fmt.Errorf("unknown element kind: %q", string(kind))
}

// attributesToMap converts typed attributes into their flat JSON form
func attributesToMap(attrs Attributes) (map[string]interface{}, error) {
	if attrs == nil {
		return make(map[string]interface{}), nil
	}
	data, err := json.Marshal(attrs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal attributes: %w", err)
	}
	result := make(map[string]interface{})
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal attributes to map: %w", err)
	}
	return result, nil
}

// cloneAttributes deep-copies typed attributes through their JSON form
func cloneAttributes(attrs Attributes) (Attributes, error) {
	if attrs == nil {
		return nil, nil
	}
	out, err := NewAttributes(attrs.Kind())
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(attrs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal attributes: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal attributes: %w", err)
	}
	return out, nil
}

// Ptr returns a pointer to v. Handy when building attribute structs.
func Ptr[T any](v T) *T {
	return &v
}
