package canvas

import (
	"encoding/json"
	"fmt"
)

// Element is a single content block on the canvas or inside a column
type Element struct {
	ID      int
	Kind    ElementKind
	Type    string
	Content string
	Attrs   Attributes

	// Extra keeps persisted keys the kind does not model so a load/save cycle
	// never drops data written by another editor version.
	Extra map[string]interface{}
}

// reserved keys are the element fields that are not style attributes
var reservedKeys = map[string]bool{
	"id":      true,
	"name":    true,
	"type":    true,
	"content": true,
}

// NewElement creates an element of the kind populated with its defaults
func NewElement(id int, kind ElementKind) (Element, error) {
	if err := kind.Validate(); err != nil {
		return Element{}, err
	}
	return Element{
		ID:      id,
		Kind:    kind,
		Type:    ElementType,
		Content: DefaultContent(kind),
		Attrs:   DefaultAttributes(kind),
	}, nil
}

// Style resolves the element attributes against its kind defaults
func (e Element) Style() Style {
	return Resolve(e.Kind, e.Attrs)
}

// ToMap returns the flat persisted representation of the element
func (e Element) ToMap() (map[string]interface{}, error) {
	result, err := attributesToMap(e.Attrs)
	if err != nil {
		return nil, err
	}
	for k, v := range e.Extra {
		if _, exists := result[k]; !exists {
			result[k] = v
		}
	}
	result["id"] = e.ID
	result["name"] = string(e.Kind)
	result["content"] = e.Content
	if e.Type != "" {
		result["type"] = e.Type
	}
	return result, nil
}

// MarshalJSON writes the element as a flat object. Keys come out sorted, which
// keeps persisted templates byte-stable.
func (e Element) MarshalJSON() ([]byte, error) {
	m, err := e.ToMap()
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

// UnmarshalJSON reads the flat persisted object into the typed union
func (e *Element) UnmarshalJSON(data []byte) error {
	var base struct {
		ID      int         `json:"id"`
		Name    ElementKind `json:"name"`
		Type    string      `json:"type"`
		Content string      `json:"content"`
	}
	if err := json.Unmarshal(data, &base); err != nil {
		return fmt.Errorf("failed to unmarshal element: %w", err)
	}

	attrs, err := NewAttributes(base.Name)
	if err != nil {
		return fmt.Errorf("element %d: %w", base.ID, err)
	}
	if err := json.Unmarshal(data, attrs); err != nil {
		return fmt.Errorf("failed to unmarshal attributes of element %d: %w", base.ID, err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal element: %w", err)
	}
	known, err := attributesToMap(attrs)
	if err != nil {
		return err
	}
	var extra map[string]interface{}
	for k, v := range raw {
		if reservedKeys[k] {
			continue
		}
		if _, ok := known[k]; ok {
			continue
		}
		if extra == nil {
			extra = make(map[string]interface{})
		}
		extra[k] = v
	}

	*e = Element{
		ID:      base.ID,
		Kind:    base.Name,
		Type:    base.Type,
		Content: base.Content,
		Attrs:   attrs,
		Extra:   extra,
	}
	return nil
}

// Clone returns a deep copy of the element
func (e Element) Clone() Element {
	out := e
	if attrs, err := cloneAttributes(e.Attrs); err == nil {
		out.Attrs = attrs
	}
	if e.Extra != nil {
		data, err := json.Marshal(e.Extra)
		if err == nil {
			var extra map[string]interface{}
			if json.Unmarshal(data, &extra) == nil {
				out.Extra = extra
			}
		}
	}
	return out
}

// ApplyPatch merges patch into the element the way a JSON merge patch does: a
// key set to null removes the attribute, any other value replaces it. The id and
// the kind are immutable and silently kept.
func (e Element) ApplyPatch(patch map[string]interface{}) (Element, error) {
	current, err := e.ToMap()
	if err != nil {
		return Element{}, err
	}
	for k, v := range patch {
		if k == "id" || k == "name" {
			continue
		}
		if v == nil {
			delete(current, k)
			continue
		}
		current[k] = v
	}

	data, err := json.Marshal(current)
	if err != nil {
		return Element{}, fmt.Errorf("failed to marshal patched element: %w", err)
	}
	var patched Element
	if err := json.Unmarshal(data, &patched); err != nil {
		return Element{}, fmt.Errorf("failed to apply patch to element %d: %w", e.ID, err)
	}
	return patched, nil
}
