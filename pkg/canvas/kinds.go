package canvas

import (
	"fmt"
	"strconv"
	"strings"
)

// ElementKind is the palette name of a content element. The value is persisted
// as the element "name" field.
type ElementKind string

const (
	KindButton     ElementKind = "Button"
	KindText       ElementKind = "Text"
	KindImage      ElementKind = "Image"
	KindLogo       ElementKind = "Logo"
	KindDivider    ElementKind = "Divider"
	KindSocialIcon ElementKind = "Social Icon"
	KindHTMLBlock  ElementKind = "HTML Block"
)

// ElementType is the value of the "type" field carried by palette elements
const ElementType = "element"

// AllKinds lists the element kinds in palette order
var AllKinds = []ElementKind{
	KindButton,
	KindText,
	KindImage,
	KindLogo,
	KindDivider,
	KindSocialIcon,
	KindHTMLBlock,
}

// Validate returns an error when the kind is not one of the palette kinds
func (k ElementKind) Validate() error {
	for _, known := range AllKinds {
		if k == known {
			return nil
		}
	}
	return fmt.Errorf("unknown element kind: %q", string(k))
}

// IsImage reports whether the kind renders an <img> (Image and Logo)
func (k ElementKind) IsImage() bool {
	return k == KindImage || k == KindLogo
}

// ParseKind resolves a palette name to an ElementKind. Matching ignores case
// and surrounding whitespace so "social icon" and "Social Icon" are equal.
func ParseKind(name string) (ElementKind, error) {
	trimmed := strings.TrimSpace(name)
	for _, known := range AllKinds {
		if strings.EqualFold(string(known), trimmed) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown element kind: %q", name)
}

// MaxLayoutColumns is the widest layout row the palette offers
const MaxLayoutColumns = 4

// LayoutName returns the palette name of a layout with n columns, e.g. "2 Column"
func LayoutName(columns int) string {
	return fmt.Sprintf("%d Column", columns)
}

// ParseLayoutName extracts the column count from a layout palette name such as
// "2 Column" or "3 Columns".
func ParseLayoutName(name string) (int, error) {
	fields := strings.Fields(name)
	if len(fields) != 2 {
		return 0, fmt.Errorf("invalid layout name: %q", name)
	}
	unit := strings.ToLower(fields[1])
	if unit != "column" && unit != "columns" {
		return 0, fmt.Errorf("invalid layout name: %q", name)
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("invalid layout name: %q", name)
	}
	if n < 1 || n > MaxLayoutColumns {
		return 0, fmt.Errorf("layout column count must be between 1 and %d, got %d", MaxLayoutColumns, n)
	}
	return n, nil
}
