// Package jsonmap provides a string-keyed map of arbitrary values that
// round-trips between JSON payloads and JSONB database columns. Map contents
// are schema-less by design; their shape is defined by the consumer.
package jsonmap

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Map is an unordered string-keyed mapping of arbitrary, unvalidated values.
type Map map[string]any

// Value implements driver.Valuer, serializing the map to JSONB.
// A nil map stores SQL NULL.
func (m Map) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner, deserializing JSONB into the map.
// SQL NULL scans to a nil map.
func (m *Map) Scan(src any) error {
	if src == nil {
		*m = nil
		return nil
	}

	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("cannot scan %T into jsonmap.Map", src)
	}
}
