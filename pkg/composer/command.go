package composer

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/Notifuse/mailcanvas/pkg/canvas"
)

var (
	ErrMalformedPayload  = errors.New("malformed drop payload")
	ErrUnknownOperation  = errors.New("unknown operation")
	ErrInvalidPatch      = errors.New("invalid element patch")
	ErrDecodeFailed      = errors.New("failed to decode dropped image")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrImageTooLarge     = errors.New("image exceeds the allowed size")
)

// Operation names a mutation the engine understands
type Operation string

const (
	// OpCanvasDrop routes a palette drop on the canvas to AddLayoutRow or AddElement
	OpCanvasDrop    Operation = "canvas_drop"
	OpAddLayoutRow  Operation = "add_layout_row"
	OpAddElement    Operation = "add_element"
	OpColumnDrop    Operation = "column_drop"
	OpUpdateElement Operation = "update_element"
	OpDeleteElement Operation = "delete_element"
	OpDeleteColumn  Operation = "delete_column"
	OpMoveElement   Operation = "move_element"
	OpSelectElement Operation = "select_element"
)

// Position is where a canvas drop lands relative to the target index
type Position string

const (
	PositionAbove Position = "above"
	PositionBelow Position = "below"
	PositionEnd   Position = "end"
	PositionLeft  Position = "left"
	PositionRight Position = "right"
)

// Target addresses the place a command acts on. Which fields matter depends on
// the operation.
type Target struct {
	Index     *int                `json:"index,omitempty"`
	Position  Position            `json:"position,omitempty"`
	Location  canvas.LocationKind `json:"location,omitempty"`
	RowID     int                 `json:"row_id,omitempty"`
	ColumnID  string              `json:"column_id,omitempty"`
	ElementID int                 `json:"element_id,omitempty"`
}

// Command is a single user gesture expressed as data
type Command struct {
	Operation Operation       `json:"operation"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Target    Target          `json:"target"`
}

// PayloadType distinguishes palette layouts from palette elements
type PayloadType string

const (
	PayloadLayout  PayloadType = "layout"
	PayloadElement PayloadType = "element"
)

// DropPayload is the parsed palette drag data
type DropPayload struct {
	Type PayloadType
	Name string
	// Content overrides the default content of a new element. It is set when a
	// decoded image is appended.
	Content *string
}

// ParseDropPayload reads the {"type","name"} object a palette item carries
func ParseDropPayload(data []byte) (DropPayload, error) {
	if len(data) == 0 || !gjson.ValidBytes(data) {
		return DropPayload{}, ErrMalformedPayload
	}
	result := gjson.ParseBytes(data)
	if !result.IsObject() {
		return DropPayload{}, fmt.Errorf("%w: expected an object", ErrMalformedPayload)
	}

	typ := result.Get("type")
	name := result.Get("name")
	if typ.Type != gjson.String || name.Type != gjson.String {
		return DropPayload{}, fmt.Errorf("%w: type and name must be strings", ErrMalformedPayload)
	}

	payload := DropPayload{Type: PayloadType(typ.String()), Name: name.String()}
	if payload.Type != PayloadLayout && payload.Type != PayloadElement {
		return DropPayload{}, fmt.Errorf("%w: unknown type %q", ErrMalformedPayload, typ.String())
	}
	if content := result.Get("content"); content.Exists() {
		if content.Type != gjson.String {
			return DropPayload{}, fmt.Errorf("%w: content must be a string", ErrMalformedPayload)
		}
		s := content.String()
		payload.Content = &s
	}
	return payload, nil
}

// ElementPayload builds the payload of a palette element drop
func ElementPayload(kind canvas.ElementKind) json.RawMessage {
	data, _ := json.Marshal(map[string]string{"type": string(PayloadElement), "name": string(kind)})
	return data
}

// ElementPayloadWithContent builds an element payload carrying its content
func ElementPayloadWithContent(kind canvas.ElementKind, content string) json.RawMessage {
	data, _ := json.Marshal(map[string]string{
		"type":    string(PayloadElement),
		"name":    string(kind),
		"content": content,
	})
	return data
}

// LayoutPayload builds the payload of a palette layout drop
func LayoutPayload(columns int) json.RawMessage {
	data, _ := json.Marshal(map[string]string{"type": string(PayloadLayout), "name": canvas.LayoutName(columns)})
	return data
}

// ParsePatch reads an element patch object
func ParsePatch(data []byte) (map[string]interface{}, error) {
	if len(data) == 0 || !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		return nil, ErrInvalidPatch
	}
	var patch map[string]interface{}
	if err := json.Unmarshal(data, &patch); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	return patch, nil
}

// Index is a helper for building targets
func Index(i int) *int {
	return &i
}

// NotificationLevel grades a message shown to the operator
type NotificationLevel string

const (
	LevelInfo  NotificationLevel = "info"
	LevelError NotificationLevel = "error"
)

// Notification is a user-visible message produced by a command
type Notification struct {
	Level   NotificationLevel `json:"level"`
	Message string            `json:"message"`
}

// Result is the outcome of dispatching a command
type Result struct {
	Document     canvas.Document   `json:"document"`
	Selection    *canvas.Selection `json:"selection"`
	Notification *Notification     `json:"notification,omitempty"`
	// Changed is false for no-ops such as an unknown id or an out-of-range index
	Changed bool `json:"changed"`
}
