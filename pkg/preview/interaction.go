package preview

import (
	"errors"
	"fmt"

	"github.com/Notifuse/mailcanvas/pkg/canvas"
)

// ErrUnknownInteraction is returned for events the editor surface never emits
var ErrUnknownInteraction = errors.New("unknown interaction")

// InteractionType is the UI event reported by the editor surface
type InteractionType string

const (
	InteractionClick     InteractionType = "click"
	InteractionDelete    InteractionType = "delete"
	InteractionFocus     InteractionType = "focus"
	InteractionBlur      InteractionType = "blur"
	InteractionImageDrop InteractionType = "image_drop"
)

// Interaction is one UI event raised on a rendered element
type Interaction struct {
	Type      InteractionType    `json:"type"`
	ElementID int                `json:"element_id"`
	Kind      canvas.ElementKind `json:"kind"`
	Location  canvas.Location    `json:"location"`
	// Content is the edited markup of a Text element on focus and blur
	Content string `json:"content,omitempty"`
	// FileName and FileData describe an image dropped on an Image or Logo
	FileName string `json:"file_name,omitempty"`
	FileData []byte `json:"file_data,omitempty"`
}

// Callbacks report editor requests upward. The renderer never mutates the
// document itself; nil callbacks are ignored.
type Callbacks struct {
	OnSelect        func(sel canvas.Selection)
	OnDelete        func(id int, loc canvas.Location)
	OnContentChange func(id int, loc canvas.Location, content string)
	OnImageDrop     func(id int, loc canvas.Location, name string, data []byte)
}

// HandleInteraction turns a UI event into the matching callback
func HandleInteraction(ev Interaction, cb Callbacks) error {
	if ev.ElementID <= 0 {
		return fmt.Errorf("%w: missing element id", ErrUnknownInteraction)
	}

	switch ev.Type {
	case InteractionClick:
		if cb.OnSelect != nil {
			cb.OnSelect(canvas.Selection{ID: ev.ElementID, Location: ev.Location})
		}
	case InteractionDelete:
		if cb.OnDelete != nil {
			cb.OnDelete(ev.ElementID, ev.Location)
		}
	case InteractionFocus:
		// the placeholder text is cleared the first time a Text element is focused
		if ev.Kind == canvas.KindText && ev.Content == canvas.DefaultContent(canvas.KindText) && cb.OnContentChange != nil {
			cb.OnContentChange(ev.ElementID, ev.Location, "")
		}
	case InteractionBlur:
		if ev.Kind == canvas.KindText && cb.OnContentChange != nil {
			cb.OnContentChange(ev.ElementID, ev.Location, ev.Content)
		}
	case InteractionImageDrop:
		if !ev.Kind.IsImage() {
			return fmt.Errorf("%w: images can only be dropped on Image or Logo elements", ErrUnknownInteraction)
		}
		if cb.OnImageDrop != nil {
			cb.OnImageDrop(ev.ElementID, ev.Location, ev.FileName, ev.FileData)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownInteraction, ev.Type)
	}
	return nil
}
