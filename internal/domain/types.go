package domain

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// MapOfAny is persisted as JSON in the database. It carries Liquid test data.
type MapOfAny map[string]any

// Scan implements the sql.Scanner interface
func (m *MapOfAny) Scan(val interface{}) error {
	var data []byte

	if b, ok := val.([]byte); ok {
		// the driver reuses the buffer for later rows
		data = bytes.Clone(b)
	} else if s, ok := val.(string); ok {
		data = []byte(s)
	} else if val == nil {
		return nil
	}

	if err := json.Unmarshal(data, m); err != nil {
		return fmt.Errorf("failed to scan map: %w", err)
	}
	return nil
}

// Value implements the driver.Valuer interface. A nil map is stored as {}.
func (m MapOfAny) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Data returns the map as Liquid render data, nil when empty
func (m MapOfAny) Data() map[string]interface{} {
	if len(m) == 0 {
		return nil
	}
	return map[string]interface{}(m)
}
