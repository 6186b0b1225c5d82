// Package deepcopy snapshots values for the execution trace. Trace events
// must hold values, not references, so later mutation of the variable store
// cannot rewrite history.
package deepcopy

import "encoding/json"

// Map returns a deep copy of m. Values are round-tripped through JSON, which
// covers everything that flows along edges (strings, numbers, booleans,
// maps, document lists). Values that do not survive the round trip are kept
// by reference as a last resort.
func Map(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = Value(v)
	}
	return out
}

// Value deep-copies a single value.
func Value(v any) any {
	switch v.(type) {
	case nil, string, bool, int, int64, float64:
		return v
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var copied any
	if err := json.Unmarshal(raw, &copied); err != nil {
		return v
	}
	return copied
}
