package canvas

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/tidwall/gjson"
)

// ErrInvalidTemplate is returned when persisted template JSON cannot be read
var ErrInvalidTemplate = errors.New("invalid template json")

// Document is the whole composition: free-standing canvas items, layout rows
// and the next id to allocate.
type Document struct {
	CanvasItems []Element   `json:"canvasItems"`
	LayoutRows  []LayoutRow `json:"layoutRows"`
	NextID      int         `json:"nextId"`
}

// LocationKind tells whether an element sits on the canvas or in a column
type LocationKind string

const (
	LocationCanvas LocationKind = "canvas"
	LocationColumn LocationKind = "column"
)

// Location addresses the container of an element
type Location struct {
	Kind      LocationKind `json:"kind"`
	RowID     int          `json:"row_id,omitempty"`
	ColumnKey string       `json:"column_id,omitempty"`
}

// Selection points at the element the operator is editing
type Selection struct {
	ID       int      `json:"id"`
	Location Location `json:"location"`
}

// NewDocument returns an empty document
func NewDocument() Document {
	return Document{
		CanvasItems: []Element{},
		LayoutRows:  []LayoutRow{},
		NextID:      1,
	}
}

// requiredTemplateKeys must all be present in persisted template JSON
var requiredTemplateKeys = []string{"canvasItems", "layoutRows", "nextId"}

// LoadTemplate hydrates a document from its persisted JSON. Anything that is
// not a valid document yields an empty one and an error wrapping
// ErrInvalidTemplate.
func LoadTemplate(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return NewDocument(), fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	for i, field := range gjson.GetManyBytes(data, requiredTemplateKeys...) {
		if !field.Exists() || field.Type == gjson.Null {
			return NewDocument(), fmt.Errorf("%w: missing %s", ErrInvalidTemplate, requiredTemplateKeys[i])
		}
	}
	if err := doc.Validate(); err != nil {
		return NewDocument(), fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	return doc, nil
}

// Marshal serializes the document to its persisted JSON
func Marshal(doc Document) ([]byte, error) {
	if doc.CanvasItems == nil {
		doc.CanvasItems = []Element{}
	}
	if doc.LayoutRows == nil {
		doc.LayoutRows = []LayoutRow{}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal template: %w", err)
	}
	return data, nil
}

// MaxID returns the highest id used by any row or element, or 0
func (d Document) MaxID() int {
	highest := 0
	for _, el := range d.CanvasItems {
		if el.ID > highest {
			highest = el.ID
		}
	}
	for _, row := range d.LayoutRows {
		if row.ID > highest {
			highest = row.ID
		}
		for _, elements := range row.Elements {
			for _, el := range elements {
				if el.ID > highest {
					highest = el.ID
				}
			}
		}
	}
	return highest
}

// FindElement locates an element anywhere in the document
func (d Document) FindElement(id int) (Element, Location, bool) {
	for _, el := range d.CanvasItems {
		if el.ID == id {
			return el, Location{Kind: LocationCanvas}, true
		}
	}
	for _, row := range d.LayoutRows {
		for _, key := range row.ColumnKeys() {
			for _, el := range row.Elements[key] {
				if el.ID == id {
					return el, Location{Kind: LocationColumn, RowID: row.ID, ColumnKey: key}, true
				}
			}
		}
	}
	return Element{}, Location{}, false
}

// RowIndex returns the index of the row with the given id, or -1
func (d Document) RowIndex(rowID int) int {
	for i, row := range d.LayoutRows {
		if row.ID == rowID {
			return i
		}
	}
	return -1
}

// Clone deep-copies the document
func (d Document) Clone() Document {
	out := Document{
		CanvasItems: make([]Element, len(d.CanvasItems)),
		LayoutRows:  make([]LayoutRow, len(d.LayoutRows)),
		NextID:      d.NextID,
	}
	for i, el := range d.CanvasItems {
		out.CanvasItems[i] = el.Clone()
	}
	for i, row := range d.LayoutRows {
		out.LayoutRows[i] = row.Clone()
	}
	return out
}

// Validate checks the structural invariants of the document
func (d Document) Validate() error {
	seen := make(map[int]string)
	claim := func(id int, what string) error {
		if id <= 0 {
			return fmt.Errorf("%s has invalid id %d", what, id)
		}
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("duplicate id %d used by %s and %s", id, prev, what)
		}
		seen[id] = what
		return nil
	}

	for _, el := range d.CanvasItems {
		if err := claim(el.ID, "element"); err != nil {
			return err
		}
		if err := validateElement(el); err != nil {
			return err
		}
	}

	for _, row := range d.LayoutRows {
		if err := claim(row.ID, "row"); err != nil {
			return err
		}
		if row.Columns < 1 || row.Columns > MaxLayoutColumns {
			return fmt.Errorf("row %d has invalid column count %d", row.ID, row.Columns)
		}
		if len(row.Elements) == 0 {
			return fmt.Errorf("row %d has no columns", row.ID)
		}
		for key, elements := range row.Elements {
			rowID, n, err := ParseColumnKey(key)
			if err != nil {
				return fmt.Errorf("row %d: %w", row.ID, err)
			}
			if rowID != row.ID || n > row.Columns {
				return fmt.Errorf("column %s does not belong to row %d", key, row.ID)
			}
			for _, el := range elements {
				if err := claim(el.ID, "element"); err != nil {
					return err
				}
				if err := validateElement(el); err != nil {
					return err
				}
			}
		}
		for key := range row.ColumnWidths {
			if _, ok := row.Elements[key]; !ok {
				return fmt.Errorf("width set for unknown column %s in row %d", key, row.ID)
			}
		}
	}

	if highest := d.MaxID(); d.NextID <= highest {
		return fmt.Errorf("nextId %d must be greater than the highest id %d", d.NextID, highest)
	}
	return nil
}

func validateElement(el Element) error {
	if err := el.Kind.Validate(); err != nil {
		return fmt.Errorf("element %d: %w", el.ID, err)
	}
	if el.Attrs != nil && el.Attrs.Kind() != el.Kind {
		return fmt.Errorf("element %d: attributes of %s do not match kind %s", el.ID, el.Attrs.Kind(), el.Kind)
	}
	style := el.Style()
	if !IsLinkTarget(style.ButtonURL) {
		return fmt.Errorf("element %d: invalid button url %q", el.ID, style.ButtonURL)
	}
	if !IsLinkTarget(style.SocialURL) {
		return fmt.Errorf("element %d: invalid social url %q", el.ID, style.SocialURL)
	}
	return nil
}

// IsLinkTarget reports whether s can be used as an href. Empty values, mailto and
// tel links and Liquid placeholders are accepted.
func IsLinkTarget(s string) bool {
	s = strings.TrimSpace(s)
	switch {
	case s == "", s == "#":
		return true
	case strings.HasPrefix(s, "mailto:"), strings.HasPrefix(s, "tel:"):
		return true
	case strings.Contains(s, "{{"):
		return true
	}
	return govalidator.IsURL(s)
}
