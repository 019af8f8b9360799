package composer

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Notifuse/mailcanvas/pkg/canvas"
	"github.com/Notifuse/mailcanvas/pkg/logger"
)

func newTestEngine(t *testing.T) *Engine {
	return NewEngine(logger.NewTestLogger(t))
}

func mustDispatch(t *testing.T, e *Engine, doc canvas.Document, sel *canvas.Selection, cmd Command) Result {
	t.Helper()
	res, err := e.Dispatch(doc, sel, cmd)
	require.NoError(t, err)
	return res
}

func addElement(kind canvas.ElementKind, target Target) Command {
	return Command{Operation: OpAddElement, Payload: ElementPayload(kind), Target: target}
}

func addRow(columns int, target Target) Command {
	return Command{Operation: OpAddLayoutRow, Payload: LayoutPayload(columns), Target: target}
}

func assertIDInvariant(t *testing.T, doc canvas.Document) {
	t.Helper()
	require.NoError(t, doc.Validate())
	assert.Greater(t, doc.NextID, doc.MaxID())
}

func TestEngine_AddButtonAtCanvasEnd(t *testing.T) {
	e := newTestEngine(t)

	res := mustDispatch(t, e, canvas.NewDocument(), nil, addElement(canvas.KindButton, Target{Position: PositionEnd}))

	require.True(t, res.Changed)
	require.Len(t, res.Document.CanvasItems, 1)
	el := res.Document.CanvasItems[0]
	assert.Equal(t, canvas.KindButton, el.Kind)
	assert.Equal(t, "Click Here", el.Content)
	assert.Equal(t, "#8B5CF6", el.Style().ButtonColor)
	assert.Equal(t, canvas.ShapeRoundedLG, el.Style().ButtonShape)
	assert.Equal(t, 1, el.ID)
	assert.Equal(t, 2, res.Document.NextID)
}

func TestEngine_AddTwoColumnRow(t *testing.T) {
	e := newTestEngine(t)

	res := mustDispatch(t, e, canvas.NewDocument(), nil, addRow(2, Target{Position: PositionEnd}))

	require.Len(t, res.Document.LayoutRows, 1)
	row := res.Document.LayoutRows[0]
	assert.Equal(t, 2, row.Columns)
	assert.Equal(t, map[string][]canvas.Element{
		canvas.ColumnKey(row.ID, 1): {},
		canvas.ColumnKey(row.ID, 2): {},
	}, row.Elements)
	assert.Equal(t, row.ID+1, res.Document.NextID)
}

func TestEngine_CanvasDropRoutesByPayload(t *testing.T) {
	e := newTestEngine(t)
	doc := canvas.NewDocument()

	res := mustDispatch(t, e, doc, nil, Command{Operation: OpCanvasDrop, Payload: LayoutPayload(3)})
	require.Len(t, res.Document.LayoutRows, 1)
	assert.Equal(t, 3, res.Document.LayoutRows[0].Columns)

	res = mustDispatch(t, e, res.Document, nil, Command{Operation: OpCanvasDrop, Payload: ElementPayload(canvas.KindDivider)})
	require.Len(t, res.Document.CanvasItems, 1)
	assert.Equal(t, canvas.KindDivider, res.Document.CanvasItems[0].Kind)
}

func TestEngine_AddElementPositions(t *testing.T) {
	e := newTestEngine(t)
	doc := canvas.NewDocument()
	doc = mustDispatch(t, e, doc, nil, addElement(canvas.KindText, Target{})).Document   // id 1
	doc = mustDispatch(t, e, doc, nil, addElement(canvas.KindButton, Target{})).Document // id 2

	tests := []struct {
		name    string
		target  Target
		wantIDs []int
		changed bool
	}{
		{"above first", Target{Index: Index(0), Position: PositionAbove}, []int{3, 1, 2}, true},
		{"below first", Target{Index: Index(0), Position: PositionBelow}, []int{1, 3, 2}, true},
		{"below last", Target{Index: Index(1), Position: PositionBelow}, []int{1, 2, 3}, true},
		{"end ignores index", Target{Index: Index(0), Position: PositionEnd}, []int{1, 2, 3}, true},
		{"out of range", Target{Index: Index(5), Position: PositionAbove}, []int{1, 2}, false},
		{"negative", Target{Index: Index(-1), Position: PositionBelow}, []int{1, 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := mustDispatch(t, e, doc, nil, addElement(canvas.KindDivider, tt.target))
			assert.Equal(t, tt.changed, res.Changed)
			var ids []int
			for _, el := range res.Document.CanvasItems {
				ids = append(ids, el.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assertIDInvariant(t, res.Document)
		})
	}
}

func TestEngine_AddLayoutRowPositions(t *testing.T) {
	e := newTestEngine(t)
	doc := mustDispatch(t, e, canvas.NewDocument(), nil, addRow(1, Target{})).Document

	res := mustDispatch(t, e, doc, nil, addRow(2, Target{Index: Index(0), Position: PositionAbove}))
	require.Len(t, res.Document.LayoutRows, 2)
	assert.Equal(t, 2, res.Document.LayoutRows[0].ID)
	assert.Equal(t, 1, res.Document.LayoutRows[1].ID)

	res = mustDispatch(t, e, doc, nil, addRow(2, Target{Index: Index(3), Position: PositionBelow}))
	assert.False(t, res.Changed)
	assert.Equal(t, doc, res.Document)
}

func TestEngine_PromoteLeft(t *testing.T) {
	e := newTestEngine(t)
	doc := mustDispatch(t, e, canvas.NewDocument(), nil, addElement(canvas.KindButton, Target{})).Document
	original := doc.CanvasItems[0]

	res := mustDispatch(t, e, doc, nil, addElement(canvas.KindText, Target{Index: Index(0), Position: PositionLeft}))

	assert.Empty(t, res.Document.CanvasItems)
	require.Len(t, res.Document.LayoutRows, 1)
	row := res.Document.LayoutRows[0]
	assert.Equal(t, 2, row.Columns)

	// row id first, then the elements in column order
	assert.Equal(t, 2, row.ID)
	left := row.Elements[canvas.ColumnKey(row.ID, 1)]
	right := row.Elements[canvas.ColumnKey(row.ID, 2)]
	require.Len(t, left, 1)
	require.Len(t, right, 1)
	assert.Equal(t, canvas.KindText, left[0].Kind)
	assert.Equal(t, 3, left[0].ID)
	assert.Equal(t, 4, right[0].ID)
	assert.Equal(t, 5, res.Document.NextID)

	// only the containment changes
	assert.Equal(t, original.Kind, right[0].Kind)
	assert.Equal(t, original.Content, right[0].Content)
	assert.Equal(t, original.Attrs, right[0].Attrs)

	assertIDInvariant(t, res.Document)
}

func TestEngine_PromoteRight(t *testing.T) {
	e := newTestEngine(t)
	doc := mustDispatch(t, e, canvas.NewDocument(), nil, addElement(canvas.KindImage, Target{})).Document
	doc = mustDispatch(t, e, doc, nil, addElement(canvas.KindDivider, Target{})).Document
	sel := &canvas.Selection{ID: 1, Location: canvas.Location{Kind: canvas.LocationCanvas}}

	res := mustDispatch(t, e, doc, sel, addElement(canvas.KindButton, Target{Index: Index(0), Position: PositionRight}))

	require.Len(t, res.Document.CanvasItems, 1)
	assert.Equal(t, canvas.KindDivider, res.Document.CanvasItems[0].Kind)
	row := res.Document.LayoutRows[0]
	assert.Equal(t, canvas.KindImage, row.Elements[canvas.ColumnKey(row.ID, 1)][0].Kind)
	assert.Equal(t, canvas.KindButton, row.Elements[canvas.ColumnKey(row.ID, 2)][0].Kind)

	// a selection on the promoted element follows it into the row
	require.NotNil(t, res.Selection)
	assert.Equal(t, row.Elements[canvas.ColumnKey(row.ID, 1)][0].ID, res.Selection.ID)
	assert.Equal(t, canvas.LocationColumn, res.Selection.Location.Kind)
}

func TestEngine_PromoteOutOfRange(t *testing.T) {
	e := newTestEngine(t)
	doc := canvas.NewDocument()

	for _, target := range []Target{
		{Index: Index(0), Position: PositionLeft},
		{Position: PositionRight},
	} {
		res := mustDispatch(t, e, doc, nil, addElement(canvas.KindText, target))
		assert.False(t, res.Changed)
		assert.Equal(t, doc, res.Document)
	}
}

func TestEngine_ColumnDrop(t *testing.T) {
	e := newTestEngine(t)
	doc := mustDispatch(t, e, canvas.NewDocument(), nil, addRow(2, Target{})).Document
	col := canvas.ColumnKey(1, 2)

	res := mustDispatch(t, e, doc, nil, Command{
		Operation: OpColumnDrop,
		Payload:   ElementPayload(canvas.KindSocialIcon),
		Target:    Target{RowID: 1, ColumnID: col},
	})
	require.Len(t, res.Document.LayoutRows[0].Elements[col], 1)
	assert.Equal(t, 2, res.Document.LayoutRows[0].Elements[col][0].ID)

	t.Run("image append carries the decoded content", func(t *testing.T) {
		res := mustDispatch(t, e, res.Document, nil, AppendImageCommand(1, col, "data:image/png;base64,AAAA"))
		column := res.Document.LayoutRows[0].Elements[col]
		require.Len(t, column, 2)
		assert.Equal(t, canvas.KindImage, column[1].Kind)
		assert.Equal(t, "data:image/png;base64,AAAA", column[1].Content)
	})

	t.Run("unknown column is a no-op", func(t *testing.T) {
		res := mustDispatch(t, e, doc, nil, Command{
			Operation: OpColumnDrop,
			Payload:   ElementPayload(canvas.KindText),
			Target:    Target{RowID: 1, ColumnID: "1-col-7"},
		})
		assert.False(t, res.Changed)
	})

	t.Run("layouts cannot nest", func(t *testing.T) {
		_, err := e.Dispatch(doc, nil, Command{
			Operation: OpColumnDrop,
			Payload:   LayoutPayload(2),
			Target:    Target{RowID: 1, ColumnID: col},
		})
		assert.ErrorIs(t, err, ErrMalformedPayload)
	})
}

func TestEngine_MalformedPayload(t *testing.T) {
	e := newTestEngine(t)
	doc := mustDispatch(t, e, canvas.NewDocument(), nil, addElement(canvas.KindText, Target{})).Document

	payloads := []string{
		`{"type": "element", "name": `,
		`[1,2,3]`,
		`{"type": "element"}`,
		`{"type": "widget", "name": "Text"}`,
		`{"type": "element", "name": "Carousel"}`,
		`{"type": "layout", "name": "9 Column"}`,
		``,
	}
	for _, p := range payloads {
		res, err := e.Dispatch(doc, nil, Command{Operation: OpCanvasDrop, Payload: json.RawMessage(p)})
		assert.ErrorIs(t, err, ErrMalformedPayload, p)
		assert.Equal(t, doc, res.Document, p)
		require.NotNil(t, res.Notification, p)
		assert.Equal(t, LevelError, res.Notification.Level)
	}
}

func TestEngine_UnknownOperation(t *testing.T) {
	e := newTestEngine(t)
	res, err := e.Dispatch(canvas.NewDocument(), nil, Command{Operation: "explode"})
	assert.ErrorIs(t, err, ErrUnknownOperation)
	assert.NotNil(t, res.Notification)
}

func TestEngine_UpdateElement(t *testing.T) {
	e := newTestEngine(t)
	doc := mustDispatch(t, e, canvas.NewDocument(), nil, addElement(canvas.KindText, Target{})).Document
	doc = mustDispatch(t, e, doc, nil, addElement(canvas.KindText, Target{})).Document
	doc = mustDispatch(t, e, doc, nil, addRow(1, Target{})).Document
	doc = mustDispatch(t, e, doc, nil, Command{Operation: OpColumnDrop, Payload: ElementPayload(canvas.KindButton), Target: Target{RowID: 3, ColumnID: "3-col-1"}}).Document

	t.Run("canvas element", func(t *testing.T) {
		res := mustDispatch(t, e, doc, nil, Command{
			Operation: OpUpdateElement,
			Payload:   json.RawMessage(`{"content":"Hello","alignment":"center","id":77}`),
			Target:    Target{Location: canvas.LocationCanvas, ElementID: 1},
		})
		updated := res.Document.CanvasItems[0]
		assert.Equal(t, 1, updated.ID)
		assert.Equal(t, "Hello", updated.Content)
		assert.Equal(t, canvas.AlignCenter, updated.Style().Alignment)

		// other elements and the input document are untouched
		assert.Equal(t, doc.CanvasItems[1], res.Document.CanvasItems[1])
		assert.Equal(t, "Start typing here...", doc.CanvasItems[0].Content)
	})

	t.Run("column element", func(t *testing.T) {
		res := mustDispatch(t, e, doc, nil, Command{
			Operation: OpUpdateElement,
			Payload:   json.RawMessage(`{"buttonUrl":"https://example.com","buttonShape":"rounded-full"}`),
			Target:    Target{Location: canvas.LocationColumn, RowID: 3, ColumnID: "3-col-1", ElementID: 4},
		})
		style := res.Document.LayoutRows[0].Elements["3-col-1"][0].Style()
		assert.Equal(t, "https://example.com", style.ButtonURL)
		assert.Equal(t, canvas.ShapeRoundedFull, style.ButtonShape)
	})

	t.Run("wrong location is a no-op", func(t *testing.T) {
		res := mustDispatch(t, e, doc, nil, Command{
			Operation: OpUpdateElement,
			Payload:   json.RawMessage(`{"content":"x"}`),
			Target:    Target{Location: canvas.LocationCanvas, ElementID: 4},
		})
		assert.False(t, res.Changed)
	})

	t.Run("invalid patch", func(t *testing.T) {
		_, err := e.Dispatch(doc, nil, Command{
			Operation: OpUpdateElement,
			Payload:   json.RawMessage(`{"fontSize":"huge"}`),
			Target:    Target{ElementID: 1},
		})
		assert.ErrorIs(t, err, ErrInvalidPatch)

		_, err = e.Dispatch(doc, nil, Command{
			Operation: OpUpdateElement,
			Payload:   json.RawMessage(`"content"`),
			Target:    Target{ElementID: 1},
		})
		assert.ErrorIs(t, err, ErrInvalidPatch)
	})
}

func TestEngine_DeleteElement(t *testing.T) {
	e := newTestEngine(t)
	doc := mustDispatch(t, e, canvas.NewDocument(), nil, addRow(2, Target{})).Document // row 1
	drop := func(doc canvas.Document, col string) canvas.Document {
		return mustDispatch(t, e, doc, nil, Command{Operation: OpColumnDrop, Payload: ElementPayload(canvas.KindText), Target: Target{RowID: 1, ColumnID: col}}).Document
	}
	doc = drop(doc, "1-col-1") // id 2
	doc = drop(doc, "1-col-2") // id 3
	doc = drop(doc, "1-col-2") // id 4

	t.Run("only element removes the column", func(t *testing.T) {
		sel := &canvas.Selection{ID: 2, Location: canvas.Location{Kind: canvas.LocationColumn, RowID: 1, ColumnKey: "1-col-1"}}
		res := mustDispatch(t, e, doc, sel, Command{Operation: OpDeleteElement, Target: Target{ElementID: 2}})
		require.Len(t, res.Document.LayoutRows, 1)
		assert.NotContains(t, res.Document.LayoutRows[0].Elements, "1-col-1")
		assert.Nil(t, res.Selection)
		assertIDInvariant(t, res.Document)
	})

	t.Run("last column removes the row", func(t *testing.T) {
		res := mustDispatch(t, e, doc, nil, Command{Operation: OpDeleteElement, Target: Target{ElementID: 2}})
		res = mustDispatch(t, e, res.Document, nil, Command{Operation: OpDeleteElement, Target: Target{ElementID: 3}})
		require.Len(t, res.Document.LayoutRows, 1)
		res = mustDispatch(t, e, res.Document, nil, Command{Operation: OpDeleteElement, Target: Target{ElementID: 4}})
		assert.Empty(t, res.Document.LayoutRows)
		assert.Equal(t, 5, res.Document.NextID)
	})

	t.Run("selection on another element is kept", func(t *testing.T) {
		sel := &canvas.Selection{ID: 3}
		res := mustDispatch(t, e, doc, sel, Command{Operation: OpDeleteElement, Target: Target{ElementID: 4}})
		assert.Equal(t, sel, res.Selection)
	})

	t.Run("unknown id", func(t *testing.T) {
		res := mustDispatch(t, e, doc, nil, Command{Operation: OpDeleteElement, Target: Target{ElementID: 99}})
		assert.False(t, res.Changed)
		assert.Equal(t, doc, res.Document)
	})
}

func TestEngine_DeleteColumn(t *testing.T) {
	e := newTestEngine(t)
	doc := mustDispatch(t, e, canvas.NewDocument(), nil, addRow(2, Target{})).Document
	doc.LayoutRows[0].ColumnWidths = map[string]string{"1-col-1": "30%", "1-col-2": "70%"}

	res := mustDispatch(t, e, doc, nil, Command{Operation: OpDeleteColumn, Target: Target{RowID: 1, ColumnID: "1-col-1"}})
	require.Len(t, res.Document.LayoutRows, 1)
	assert.Equal(t, []string{"1-col-2"}, res.Document.LayoutRows[0].ColumnKeys())
	assert.NotContains(t, res.Document.LayoutRows[0].ColumnWidths, "1-col-1")

	res = mustDispatch(t, e, res.Document, nil, Command{Operation: OpDeleteColumn, Target: Target{RowID: 1, ColumnID: "1-col-2"}})
	assert.Empty(t, res.Document.LayoutRows)

	res = mustDispatch(t, e, doc, nil, Command{Operation: OpDeleteColumn, Target: Target{RowID: 9, ColumnID: "9-col-1"}})
	assert.False(t, res.Changed)
}

func TestEngine_MoveElement(t *testing.T) {
	e := newTestEngine(t)
	doc := mustDispatch(t, e, canvas.NewDocument(), nil, addElement(canvas.KindText, Target{})).Document   // 1
	doc = mustDispatch(t, e, doc, nil, addElement(canvas.KindButton, Target{})).Document                  // 2
	doc = mustDispatch(t, e, doc, nil, addRow(2, Target{})).Document                                      // 3
	doc = mustDispatch(t, e, doc, nil, Command{Operation: OpColumnDrop, Payload: ElementPayload(canvas.KindImage), Target: Target{RowID: 3, ColumnID: "3-col-1"}}).Document // 4

	t.Run("canvas to column keeps the id", func(t *testing.T) {
		sel := &canvas.Selection{ID: 1, Location: canvas.Location{Kind: canvas.LocationCanvas}}
		res := mustDispatch(t, e, doc, sel, Command{
			Operation: OpMoveElement,
			Target:    Target{ElementID: 1, Location: canvas.LocationColumn, RowID: 3, ColumnID: "3-col-2"},
		})
		require.Len(t, res.Document.CanvasItems, 1)
		moved := res.Document.LayoutRows[0].Elements["3-col-2"]
		require.Len(t, moved, 1)
		assert.Equal(t, 1, moved[0].ID)
		assert.Equal(t, doc.NextID, res.Document.NextID)
		assert.Equal(t, canvas.LocationColumn, res.Selection.Location.Kind)
		assertIDInvariant(t, res.Document)
	})

	t.Run("last element out of a column prunes it", func(t *testing.T) {
		res := mustDispatch(t, e, doc, nil, Command{
			Operation: OpMoveElement,
			Target:    Target{ElementID: 4, Location: canvas.LocationCanvas, Index: Index(0)},
		})
		assert.Equal(t, 4, res.Document.CanvasItems[0].ID)
		assert.Equal(t, []string{"3-col-2"}, res.Document.LayoutRows[0].ColumnKeys())
	})

	t.Run("reorder within the canvas", func(t *testing.T) {
		res := mustDispatch(t, e, doc, nil, Command{
			Operation: OpMoveElement,
			Target:    Target{ElementID: 2, Location: canvas.LocationCanvas, Index: Index(0)},
		})
		assert.Equal(t, 2, res.Document.CanvasItems[0].ID)
		assert.Equal(t, 1, res.Document.CanvasItems[1].ID)
	})

	t.Run("within the same column", func(t *testing.T) {
		res := mustDispatch(t, e, doc, nil, Command{
			Operation: OpMoveElement,
			Target:    Target{ElementID: 4, Location: canvas.LocationColumn, RowID: 3, ColumnID: "3-col-1"},
		})
		assert.Equal(t, doc.LayoutRows[0].Elements, res.Document.LayoutRows[0].Elements)
	})

	t.Run("invalid destination", func(t *testing.T) {
		res := mustDispatch(t, e, doc, nil, Command{
			Operation: OpMoveElement,
			Target:    Target{ElementID: 1, Location: canvas.LocationColumn, RowID: 3, ColumnID: "3-col-9"},
		})
		assert.False(t, res.Changed)
		assert.Equal(t, doc, res.Document)
	})
}

func TestEngine_SelectElement(t *testing.T) {
	e := newTestEngine(t)
	doc := mustDispatch(t, e, canvas.NewDocument(), nil, addElement(canvas.KindText, Target{})).Document

	res := mustDispatch(t, e, doc, nil, Command{Operation: OpSelectElement, Target: Target{ElementID: 1}})
	require.NotNil(t, res.Selection)
	assert.Equal(t, canvas.Selection{ID: 1, Location: canvas.Location{Kind: canvas.LocationCanvas}}, *res.Selection)

	res = mustDispatch(t, e, doc, res.Selection, Command{Operation: OpSelectElement})
	assert.Nil(t, res.Selection)
}

func TestEngine_InputDocumentIsNotMutated(t *testing.T) {
	e := newTestEngine(t)
	doc := mustDispatch(t, e, canvas.NewDocument(), nil, addRow(1, Target{})).Document
	snapshot := doc.Clone()

	mustDispatch(t, e, doc, nil, Command{Operation: OpColumnDrop, Payload: ElementPayload(canvas.KindText), Target: Target{RowID: 1, ColumnID: "1-col-1"}})
	mustDispatch(t, e, doc, nil, Command{Operation: OpDeleteColumn, Target: Target{RowID: 1, ColumnID: "1-col-1"}})

	assert.Equal(t, snapshot, doc)
}

// Random gesture sequences must keep ids unique and nextId ahead of them.
func TestEngine_RandomSequencesKeepIDInvariant(t *testing.T) {
	e := NewEngine(logger.NewMockLogger())
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 20; run++ {
		doc := canvas.NewDocument()
		var sel *canvas.Selection

		for step := 0; step < 60; step++ {
			cmd := randomCommand(rng, doc)
			res, err := e.Dispatch(doc, sel, cmd)
			require.NoError(t, err)
			doc, sel = res.Document, res.Selection

			require.NoError(t, doc.Validate(), "run %d step %d op %s", run, step, cmd.Operation)
			if sel != nil {
				_, _, ok := doc.FindElement(sel.ID)
				require.True(t, ok, "selection points at a deleted element")
			}
		}

		data, err := canvas.Marshal(doc)
		require.NoError(t, err)
		loaded, err := canvas.LoadTemplate(data)
		require.NoError(t, err)
		assert.Equal(t, doc, loaded)
	}
}

func randomCommand(rng *rand.Rand, doc canvas.Document) Command {
	positions := []Position{PositionAbove, PositionBelow, PositionEnd, PositionLeft, PositionRight}
	kind := canvas.AllKinds[rng.Intn(len(canvas.AllKinds))]
	anyID := func() int { return rng.Intn(doc.NextID + 1) }
	anyColumn := func() (int, string) {
		if len(doc.LayoutRows) == 0 {
			return 0, ""
		}
		row := doc.LayoutRows[rng.Intn(len(doc.LayoutRows))]
		keys := row.ColumnKeys()
		return row.ID, keys[rng.Intn(len(keys))]
	}

	switch rng.Intn(8) {
	case 0:
		return addRow(1+rng.Intn(canvas.MaxLayoutColumns), Target{Index: Index(rng.Intn(3)), Position: positions[rng.Intn(3)]})
	case 1, 2:
		return addElement(kind, Target{Index: Index(rng.Intn(len(doc.CanvasItems) + 1)), Position: positions[rng.Intn(len(positions))]})
	case 3:
		rowID, col := anyColumn()
		return Command{Operation: OpColumnDrop, Payload: ElementPayload(kind), Target: Target{RowID: rowID, ColumnID: col}}
	case 4:
		return Command{Operation: OpDeleteElement, Target: Target{ElementID: anyID()}}
	case 5:
		rowID, col := anyColumn()
		return Command{Operation: OpDeleteColumn, Target: Target{RowID: rowID, ColumnID: col}}
	case 6:
		rowID, col := anyColumn()
		if rng.Intn(2) == 0 || rowID == 0 {
			return Command{Operation: OpMoveElement, Target: Target{ElementID: anyID(), Location: canvas.LocationCanvas}}
		}
		return Command{Operation: OpMoveElement, Target: Target{ElementID: anyID(), Location: canvas.LocationColumn, RowID: rowID, ColumnID: col}}
	default:
		return Command{Operation: OpSelectElement, Target: Target{ElementID: anyID()}}
	}
}
