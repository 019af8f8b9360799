package canvas

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// LayoutRow is a horizontal container of columns. Columns are keyed
// "<rowId>-col-<n>" with n starting at 1.
type LayoutRow struct {
	ID       int                  `json:"id"`
	Columns  int                  `json:"columns"`
	Elements map[string][]Element `json:"elements"`

	// ColumnWidths optionally overrides the even split, e.g. {"7-col-1": "40%"}
	ColumnWidths map[string]string `json:"columnWidths,omitempty"`
}

// ColumnKey builds the key of column n (1-based) in row rowID
func ColumnKey(rowID, n int) string {
	return fmt.Sprintf("%d-col-%d", rowID, n)
}

// ParseColumnKey splits a column key into its row id and column number
func ParseColumnKey(key string) (rowID int, n int, err error) {
	parts := strings.Split(key, "-col-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid column key: %q", key)
	}
	rowID, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid column key: %q", key)
	}
	n, err = strconv.Atoi(parts[1])
	if err != nil || n < 1 {
		return 0, 0, fmt.Errorf("invalid column key: %q", key)
	}
	return rowID, n, nil
}

// NewLayoutRow creates a row with the given number of empty columns
func NewLayoutRow(id, columns int) LayoutRow {
	row := LayoutRow{
		ID:       id,
		Columns:  columns,
		Elements: make(map[string][]Element, columns),
	}
	for n := 1; n <= columns; n++ {
		row.Elements[ColumnKey(id, n)] = []Element{}
	}
	return row
}

// ColumnKeys returns the keys of the columns still present in the row, ordered
// by column number rather than by string order ("10" sorts after "2").
func (r LayoutRow) ColumnKeys() []string {
	type keyed struct {
		key string
		n   int
	}
	cols := make([]keyed, 0, len(r.Elements))
	for key := range r.Elements {
		_, n, err := ParseColumnKey(key)
		if err != nil {
			n = int(^uint(0) >> 1)
		}
		cols = append(cols, keyed{key: key, n: n})
	}
	sort.Slice(cols, func(i, j int) bool {
		if cols[i].n != cols[j].n {
			return cols[i].n < cols[j].n
		}
		return cols[i].key < cols[j].key
	})

	keys := make([]string, len(cols))
	for i, c := range cols {
		keys[i] = c.key
	}
	return keys
}

// ColumnWidth returns the explicit width of a column, or an even share of 100%
// across the columns still present.
func (r LayoutRow) ColumnWidth(key string) string {
	if w, ok := r.ColumnWidths[key]; ok && w != "" {
		return w
	}
	count := len(r.Elements)
	if count == 0 {
		return "100%"
	}
	return formatPercent(100.0 / float64(count))
}

func formatPercent(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	return s + "%"
}

// Clone deep-copies the row
func (r LayoutRow) Clone() LayoutRow {
	out := LayoutRow{
		ID:       r.ID,
		Columns:  r.Columns,
		Elements: make(map[string][]Element, len(r.Elements)),
	}
	for key, elements := range r.Elements {
		copied := make([]Element, len(elements))
		for i, el := range elements {
			copied[i] = el.Clone()
		}
		out.Elements[key] = copied
	}
	if r.ColumnWidths != nil {
		out.ColumnWidths = make(map[string]string, len(r.ColumnWidths))
		for k, v := range r.ColumnWidths {
			out.ColumnWidths[k] = v
		}
	}
	return out
}
