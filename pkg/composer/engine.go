// Package composer applies drag and drop gestures to a canvas document.
//
// Every gesture is a Command handled by Engine.Dispatch. The engine never
// mutates the document it is given: it works on a copy and returns the new
// document in the Result, so a caller holding the previous value keeps it intact.
package composer

import (
	"errors"
	"fmt"

	"github.com/Notifuse/mailcanvas/pkg/canvas"
	"github.com/Notifuse/mailcanvas/pkg/logger"
)

// Engine applies commands to documents. It holds no document state and is safe
// for concurrent use.
type Engine struct {
	logger logger.Logger
}

// NewEngine creates an engine
func NewEngine(logger logger.Logger) *Engine {
	return &Engine{logger: logger}
}

// Dispatch applies cmd to doc. The returned error is non-nil when the command
// itself is unusable (malformed payload, unknown operation, invalid patch); the
// Result then holds the unchanged document and an error notification.
// Commands that address something missing are silent no-ops.
func (e *Engine) Dispatch(doc canvas.Document, sel *canvas.Selection, cmd Command) (Result, error) {
	unchanged := Result{Document: doc, Selection: sel}

	var (
		res Result
		err error
	)
	switch cmd.Operation {
	case OpCanvasDrop:
		res, err = e.canvasDrop(doc, sel, cmd)
	case OpAddLayoutRow:
		res, err = e.addLayoutRow(doc, sel, cmd)
	case OpAddElement:
		res, err = e.addElement(doc, sel, cmd)
	case OpColumnDrop:
		res, err = e.columnDrop(doc, sel, cmd)
	case OpUpdateElement:
		res, err = e.updateElement(doc, sel, cmd)
	case OpDeleteElement:
		res = e.deleteElement(doc, sel, cmd.Target)
	case OpDeleteColumn:
		res = e.deleteColumn(doc, sel, cmd.Target)
	case OpMoveElement:
		res = e.moveElement(doc, sel, cmd.Target)
	case OpSelectElement:
		res = e.selectElement(doc, sel, cmd.Target)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownOperation, cmd.Operation)
	}

	if err != nil {
		unchanged.Notification = &Notification{Level: LevelError, Message: userMessage(err)}
		return unchanged, err
	}
	if !res.Changed {
		e.logger.WithField("operation", string(cmd.Operation)).Debug("Command did not change the document")
	}
	return res, nil
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, ErrMalformedPayload):
		return "The dropped item could not be read"
	case errors.Is(err, ErrInvalidPatch):
		return "The element could not be updated"
	default:
		return "The action could not be applied"
	}
}

func noop(doc canvas.Document, sel *canvas.Selection) Result {
	return Result{Document: doc, Selection: sel}
}

// begin copies the document for mutation and repairs a nextId that lags behind
// the ids in use, which only happens with hand-edited templates.
func begin(doc canvas.Document) canvas.Document {
	next := doc.Clone()
	if highest := next.MaxID(); next.NextID <= highest {
		next.NextID = highest + 1
	}
	return next
}

func allocate(doc *canvas.Document) int {
	id := doc.NextID
	doc.NextID++
	return id
}

func (e *Engine) canvasDrop(doc canvas.Document, sel *canvas.Selection, cmd Command) (Result, error) {
	payload, err := ParseDropPayload(cmd.Payload)
	if err != nil {
		return Result{}, err
	}
	if payload.Type == PayloadLayout {
		return e.addLayoutRow(doc, sel, cmd)
	}
	return e.addElement(doc, sel, cmd)
}

// insertIndex computes where an above/below/end drop lands in a list of size n.
// ok is false for an out-of-range target.
func insertIndex(target Target, n int) (idx int, ok bool) {
	if target.Position == PositionEnd || target.Position == "" || target.Index == nil {
		return n, true
	}
	i := *target.Index
	if i < 0 || i >= n {
		return 0, false
	}
	switch target.Position {
	case PositionAbove:
		return i, true
	case PositionBelow:
		return i + 1, true
	}
	return 0, false
}

func (e *Engine) addLayoutRow(doc canvas.Document, sel *canvas.Selection, cmd Command) (Result, error) {
	payload, err := ParseDropPayload(cmd.Payload)
	if err != nil {
		return Result{}, err
	}
	if payload.Type != PayloadLayout {
		return Result{}, fmt.Errorf("%w: expected a layout", ErrMalformedPayload)
	}
	columns, err := canvas.ParseLayoutName(payload.Name)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	idx, ok := insertIndex(cmd.Target, len(doc.LayoutRows))
	if !ok {
		return noop(doc, sel), nil
	}

	next := begin(doc)
	row := canvas.NewLayoutRow(allocate(&next), columns)
	next.LayoutRows = insertRow(next.LayoutRows, idx, row)
	return Result{Document: next, Selection: sel, Changed: true}, nil
}

func (e *Engine) addElement(doc canvas.Document, sel *canvas.Selection, cmd Command) (Result, error) {
	payload, err := ParseDropPayload(cmd.Payload)
	if err != nil {
		return Result{}, err
	}
	if payload.Type != PayloadElement {
		return Result{}, fmt.Errorf("%w: expected an element", ErrMalformedPayload)
	}
	kind, err := canvas.ParseKind(payload.Name)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	if cmd.Target.Position == PositionLeft || cmd.Target.Position == PositionRight {
		return e.promote(doc, sel, kind, payload, cmd.Target)
	}

	idx, ok := insertIndex(cmd.Target, len(doc.CanvasItems))
	if !ok {
		return noop(doc, sel), nil
	}

	next := begin(doc)
	el, err := newElement(&next, kind, payload)
	if err != nil {
		return Result{}, err
	}
	next.CanvasItems = insertElement(next.CanvasItems, idx, el)
	return Result{Document: next, Selection: sel, Changed: true}, nil
}

// promote turns the canvas item at the target index and a new element into a
// two column row. The row id is allocated first, then one id per element in
// column order. Both elements keep their content and attributes.
func (e *Engine) promote(doc canvas.Document, sel *canvas.Selection, kind canvas.ElementKind, payload DropPayload, target Target) (Result, error) {
	if target.Index == nil || *target.Index < 0 || *target.Index >= len(doc.CanvasItems) {
		return noop(doc, sel), nil
	}
	i := *target.Index

	next := begin(doc)
	original := next.CanvasItems[i]
	created, err := canvas.NewElement(0, kind)
	if err != nil {
		return Result{}, err
	}
	if payload.Content != nil {
		created.Content = *payload.Content
	}

	ordered := []canvas.Element{created, original}
	originalPos := 1
	if target.Position == PositionRight {
		ordered = []canvas.Element{original, created}
		originalPos = 0
	}

	row := canvas.NewLayoutRow(allocate(&next), 2)
	var moved canvas.Selection
	for n, el := range ordered {
		el.ID = allocate(&next)
		key := canvas.ColumnKey(row.ID, n+1)
		row.Elements[key] = []canvas.Element{el}
		if n == originalPos {
			moved = canvas.Selection{
				ID:       el.ID,
				Location: canvas.Location{Kind: canvas.LocationColumn, RowID: row.ID, ColumnKey: key},
			}
		}
	}

	next.CanvasItems = removeAt(next.CanvasItems, i)
	next.LayoutRows = append(next.LayoutRows, row)

	if sel != nil && sel.Location.Kind == canvas.LocationCanvas && sel.ID == original.ID {
		sel = &moved
	}
	return Result{Document: next, Selection: sel, Changed: true}, nil
}

func (e *Engine) columnDrop(doc canvas.Document, sel *canvas.Selection, cmd Command) (Result, error) {
	payload, err := ParseDropPayload(cmd.Payload)
	if err != nil {
		return Result{}, err
	}
	if payload.Type != PayloadElement {
		return Result{}, fmt.Errorf("%w: only elements can be dropped into a column", ErrMalformedPayload)
	}
	kind, err := canvas.ParseKind(payload.Name)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	rowIdx := doc.RowIndex(cmd.Target.RowID)
	if rowIdx < 0 {
		return noop(doc, sel), nil
	}
	if _, ok := doc.LayoutRows[rowIdx].Elements[cmd.Target.ColumnID]; !ok {
		return noop(doc, sel), nil
	}

	next := begin(doc)
	el, err := newElement(&next, kind, payload)
	if err != nil {
		return Result{}, err
	}
	row := next.LayoutRows[rowIdx]
	row.Elements[cmd.Target.ColumnID] = append(row.Elements[cmd.Target.ColumnID], el)
	return Result{Document: next, Selection: sel, Changed: true}, nil
}

func newElement(doc *canvas.Document, kind canvas.ElementKind, payload DropPayload) (canvas.Element, error) {
	el, err := canvas.NewElement(doc.NextID, kind)
	if err != nil {
		return canvas.Element{}, err
	}
	allocate(doc)
	if payload.Content != nil {
		el.Content = *payload.Content
	}
	return el, nil
}

// matchesTarget checks the optional location constraints of a target
func matchesTarget(loc canvas.Location, target Target) bool {
	switch target.Location {
	case "":
		return true
	case canvas.LocationCanvas:
		return loc.Kind == canvas.LocationCanvas
	case canvas.LocationColumn:
		if loc.Kind != canvas.LocationColumn {
			return false
		}
		if target.RowID != 0 && target.RowID != loc.RowID {
			return false
		}
		return target.ColumnID == "" || target.ColumnID == loc.ColumnKey
	}
	return false
}

func (e *Engine) updateElement(doc canvas.Document, sel *canvas.Selection, cmd Command) (Result, error) {
	patch, err := ParsePatch(cmd.Payload)
	if err != nil {
		return Result{}, err
	}

	el, loc, ok := doc.FindElement(cmd.Target.ElementID)
	if !ok || !matchesTarget(loc, cmd.Target) {
		return noop(doc, sel), nil
	}
	patched, err := el.ApplyPatch(patch)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}

	next := begin(doc)
	replaceElement(&next, loc, patched)
	return Result{Document: next, Selection: sel, Changed: true}, nil
}

func (e *Engine) deleteElement(doc canvas.Document, sel *canvas.Selection, target Target) Result {
	_, loc, ok := doc.FindElement(target.ElementID)
	if !ok || !matchesTarget(loc, target) {
		return noop(doc, sel)
	}

	next := begin(doc)
	takeElement(&next, loc, target.ElementID)
	pruneColumn(&next, loc)

	if sel != nil && sel.ID == target.ElementID {
		sel = nil
	}
	return Result{Document: next, Selection: sel, Changed: true}
}

func (e *Engine) deleteColumn(doc canvas.Document, sel *canvas.Selection, target Target) Result {
	rowIdx := doc.RowIndex(target.RowID)
	if rowIdx < 0 {
		return noop(doc, sel)
	}
	if _, ok := doc.LayoutRows[rowIdx].Elements[target.ColumnID]; !ok {
		return noop(doc, sel)
	}

	next := begin(doc)
	row := next.LayoutRows[rowIdx]
	delete(row.Elements, target.ColumnID)
	delete(row.ColumnWidths, target.ColumnID)
	if len(row.Elements) == 0 {
		next.LayoutRows = append(next.LayoutRows[:rowIdx], next.LayoutRows[rowIdx+1:]...)
	}

	if sel != nil && sel.Location.Kind == canvas.LocationColumn &&
		sel.Location.RowID == target.RowID && sel.Location.ColumnKey == target.ColumnID {
		sel = nil
	}
	return Result{Document: next, Selection: sel, Changed: true}
}

// moveElement relocates an existing element, keeping its id and attributes.
// Target.Location selects the destination: the canvas at Index (end when nil)
// or the column RowID/ColumnID at Index (end when nil).
func (e *Engine) moveElement(doc canvas.Document, sel *canvas.Selection, target Target) Result {
	_, from, ok := doc.FindElement(target.ElementID)
	if !ok {
		return noop(doc, sel)
	}

	next := begin(doc)
	el := takeElement(&next, from, target.ElementID)

	var to canvas.Location
	switch target.Location {
	case canvas.LocationCanvas:
		idx := len(next.CanvasItems)
		if target.Index != nil {
			if *target.Index < 0 || *target.Index > len(next.CanvasItems) {
				return noop(doc, sel)
			}
			idx = *target.Index
		}
		next.CanvasItems = insertElement(next.CanvasItems, idx, el)
		to = canvas.Location{Kind: canvas.LocationCanvas}
	case canvas.LocationColumn:
		rowIdx := next.RowIndex(target.RowID)
		if rowIdx < 0 {
			return noop(doc, sel)
		}
		column, exists := next.LayoutRows[rowIdx].Elements[target.ColumnID]
		if !exists {
			return noop(doc, sel)
		}
		idx := len(column)
		if target.Index != nil {
			if *target.Index < 0 || *target.Index > len(column) {
				return noop(doc, sel)
			}
			idx = *target.Index
		}
		next.LayoutRows[rowIdx].Elements[target.ColumnID] = insertElement(column, idx, el)
		to = canvas.Location{Kind: canvas.LocationColumn, RowID: target.RowID, ColumnKey: target.ColumnID}
	default:
		return noop(doc, sel)
	}

	if to != from {
		pruneColumn(&next, from)
	}
	if sel != nil && sel.ID == target.ElementID {
		sel = &canvas.Selection{ID: target.ElementID, Location: to}
	}
	return Result{Document: next, Selection: sel, Changed: true}
}

func (e *Engine) selectElement(doc canvas.Document, sel *canvas.Selection, target Target) Result {
	if target.ElementID == 0 {
		return Result{Document: doc, Selection: nil, Changed: false}
	}
	_, loc, ok := doc.FindElement(target.ElementID)
	if !ok {
		return noop(doc, sel)
	}
	return Result{Document: doc, Selection: &canvas.Selection{ID: target.ElementID, Location: loc}}
}

func replaceElement(doc *canvas.Document, loc canvas.Location, el canvas.Element) {
	if loc.Kind == canvas.LocationCanvas {
		for i := range doc.CanvasItems {
			if doc.CanvasItems[i].ID == el.ID {
				doc.CanvasItems[i] = el
				return
			}
		}
		return
	}
	rowIdx := doc.RowIndex(loc.RowID)
	if rowIdx < 0 {
		return
	}
	column := doc.LayoutRows[rowIdx].Elements[loc.ColumnKey]
	for i := range column {
		if column[i].ID == el.ID {
			column[i] = el
			return
		}
	}
}

// takeElement removes an element from its container without pruning
func takeElement(doc *canvas.Document, loc canvas.Location, id int) canvas.Element {
	if loc.Kind == canvas.LocationCanvas {
		for i, el := range doc.CanvasItems {
			if el.ID == id {
				doc.CanvasItems = removeAt(doc.CanvasItems, i)
				return el
			}
		}
		return canvas.Element{}
	}
	rowIdx := doc.RowIndex(loc.RowID)
	if rowIdx < 0 {
		return canvas.Element{}
	}
	row := doc.LayoutRows[rowIdx]
	for i, el := range row.Elements[loc.ColumnKey] {
		if el.ID == id {
			row.Elements[loc.ColumnKey] = removeAt(row.Elements[loc.ColumnKey], i)
			return el
		}
	}
	return canvas.Element{}
}

// pruneColumn removes the column at loc when it has become empty, and the row
// when that was its last column
func pruneColumn(doc *canvas.Document, loc canvas.Location) {
	if loc.Kind != canvas.LocationColumn {
		return
	}
	rowIdx := doc.RowIndex(loc.RowID)
	if rowIdx < 0 {
		return
	}
	row := doc.LayoutRows[rowIdx]
	if elements, ok := row.Elements[loc.ColumnKey]; !ok || len(elements) > 0 {
		return
	}
	delete(row.Elements, loc.ColumnKey)
	delete(row.ColumnWidths, loc.ColumnKey)
	if len(row.Elements) == 0 {
		doc.LayoutRows = append(doc.LayoutRows[:rowIdx], doc.LayoutRows[rowIdx+1:]...)
	}
}

func insertElement(list []canvas.Element, idx int, el canvas.Element) []canvas.Element {
	out := make([]canvas.Element, 0, len(list)+1)
	out = append(out, list[:idx]...)
	out = append(out, el)
	return append(out, list[idx:]...)
}

func insertRow(list []canvas.LayoutRow, idx int, row canvas.LayoutRow) []canvas.LayoutRow {
	out := make([]canvas.LayoutRow, 0, len(list)+1)
	out = append(out, list[:idx]...)
	out = append(out, row)
	return append(out, list[idx:]...)
}

func removeAt(list []canvas.Element, i int) []canvas.Element {
	out := make([]canvas.Element, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}
