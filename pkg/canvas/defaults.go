package canvas

import (
	"fmt"
	"strings"
)

// DefaultFontFamily is the font stack used when an element does not set one
const DefaultFontFamily = "Arial, Helvetica, sans-serif"

// ButtonInnerPadding is the fixed padding inside a rendered button
const ButtonInnerPadding = "12px 24px"

// Padding is a resolved box padding in pixels
type Padding struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// CSS renders the padding shorthand, e.g. "8px 8px 8px 8px"
func (p Padding) CSS() string {
	return fmt.Sprintf("%dpx %dpx %dpx %dpx", p.Top, p.Right, p.Bottom, p.Left)
}

func uniformPadding(px int) Padding {
	return Padding{Top: px, Right: px, Bottom: px, Left: px}
}

// FontStyles is the resolved set of font toggles
type FontStyles struct {
	Bold      bool
	Italic    bool
	Underline bool
}

// NewFontStyles builds a set from a list, ignoring unknown values
func NewFontStyles(styles ...FontStyle) FontStyles {
	var fs FontStyles
	for _, s := range styles {
		switch FontStyle(strings.ToLower(string(s))) {
		case FontBold:
			fs.Bold = true
		case FontItalic:
			fs.Italic = true
		case FontUnderline:
			fs.Underline = true
		}
	}
	return fs
}

// Style is an element's attributes resolved against the defaults of its kind.
// Renderers read only from a Style so an absent attribute never reaches output.
type Style struct {
	Alignment       Alignment
	BackgroundColor string
	Padding         Padding

	FontSize   int
	TextColor  string
	FontStyles FontStyles
	FontFamily string

	ButtonColor string
	ButtonShape ButtonShape
	ButtonURL   string

	ImageWidth   string
	ImageHeight  string
	ObjectFit    string
	BorderRadius int

	DividerStyle DividerStyle

	SocialIcon  string
	SocialURL   string
	SocialColor string
	SocialSize  int
}

var defaultContent = map[ElementKind]string{
	KindButton:     "Click Here",
	KindText:       "Start typing here...",
	KindImage:      "",
	KindLogo:       "",
	KindDivider:    "",
	KindSocialIcon: "",
	KindHTMLBlock:  "<div>Custom HTML</div>",
}

// DefaultContent returns the content a freshly dropped element of the kind gets
func DefaultContent(kind ElementKind) string {
	return defaultContent[kind]
}

// DefaultStyle returns the fully populated defaults of a kind
func DefaultStyle(kind ElementKind) Style {
	base := Style{
		Alignment:    AlignLeft,
		Padding:      uniformPadding(8),
		FontSize:     16,
		TextColor:    "#111827",
		FontFamily:   DefaultFontFamily,
		ButtonShape:  ShapeRoundedLG,
		ObjectFit:    "cover",
		ImageWidth:   "100%",
		ImageHeight:  "auto",
		DividerStyle: DividerSingle,
		SocialIcon:   "website",
		SocialColor:  "#374151",
		SocialSize:   24,
	}

	switch kind {
	case KindButton:
		base.Alignment = AlignCenter
		base.TextColor = "#FFFFFF"
		base.ButtonColor = "#8B5CF6"
	case KindImage:
		base.Alignment = AlignCenter
	case KindLogo:
		base.Alignment = AlignCenter
		base.ImageWidth = "150px"
		base.ObjectFit = "contain"
	case KindDivider:
		base.Alignment = AlignCenter
		base.TextColor = "#D1D5DB"
	case KindSocialIcon:
		base.Alignment = AlignCenter
	}
	return base
}

// DefaultAttributes returns the attributes a freshly dropped element of the kind
// carries. Only the values an operator is expected to see in the side panel are
// set; everything else resolves through DefaultStyle.
func DefaultAttributes(kind ElementKind) Attributes {
	switch kind {
	case KindButton:
		return &ButtonAttributes{
			BoxAttributes: BoxAttributes{Alignment: Ptr(AlignCenter)},
			FontAttributes: FontAttributes{
				FontSize:  Ptr(16),
				TextColor: Ptr("#FFFFFF"),
			},
			ButtonColor: Ptr("#8B5CF6"),
			ButtonShape: Ptr(ShapeRoundedLG),
		}
	case KindText:
		return &TextAttributes{
			BoxAttributes: BoxAttributes{Alignment: Ptr(AlignLeft)},
			FontAttributes: FontAttributes{
				FontSize:   Ptr(16),
				TextColor:  Ptr("#111827"),
				FontFamily: Ptr(DefaultFontFamily),
			},
		}
	case KindImage:
		return &ImageAttributes{
			BoxAttributes: BoxAttributes{Alignment: Ptr(AlignCenter)},
			ImageWidth:    Ptr("100%"),
			ImageHeight:   Ptr("auto"),
			ObjectFit:     Ptr("cover"),
			BorderRadius:  Ptr(0),
		}
	case KindLogo:
		return &LogoAttributes{ImageAttributes: ImageAttributes{
			BoxAttributes: BoxAttributes{Alignment: Ptr(AlignCenter)},
			ImageWidth:    Ptr("150px"),
			ImageHeight:   Ptr("auto"),
			ObjectFit:     Ptr("contain"),
		}}
	case KindDivider:
		return &DividerAttributes{
			DividerStyle: Ptr(DividerSingle),
			TextColor:    Ptr("#D1D5DB"),
		}
	case KindSocialIcon:
		return &SocialAttributes{
			BoxAttributes: BoxAttributes{Alignment: Ptr(AlignCenter)},
			SocialIcon:    Ptr("website"),
			SocialColor:   Ptr("#374151"),
			SocialSize:    Ptr(24),
		}
	case KindHTMLBlock:
		return &HTMLBlockAttributes{}
	}
	return nil
}

// Resolve merges the element attributes over the defaults of its kind
func Resolve(kind ElementKind, attrs Attributes) Style {
	style := DefaultStyle(kind)
	if attrs != nil {
		attrs.apply(&style)
	}
	return style
}
