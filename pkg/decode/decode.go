// Package decode converts loosely typed map payloads into concrete structs.
package decode

import "encoding/json"

// FromMap marshals a generic map through JSON into a typed value.
func FromMap[T any](data map[string]any) (T, error) {
	var result T
	b, err := json.Marshal(data)
	if err != nil {
		return result, err
	}
	err = json.Unmarshal(b, &result)
	return result, err
}

// ToMap marshals a typed value through JSON into a generic map.
// A nil pointer yields a nil map.
func ToMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	if string(b) == "null" {
		return nil, nil
	}

	var result map[string]any
	err = json.Unmarshal(b, &result)
	return result, err
}
