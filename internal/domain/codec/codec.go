// Package codec is the single encode/decode boundary for list-valued columns.
package codec

import (
	"encoding/json"

	"gorm.io/datatypes"
)

var emptyList = datatypes.JSON([]byte("[]"))

// Encode marshals v into a JSON column value. A nil slice becomes "[]".
func Encode[T any](v []T) datatypes.JSON {
	if len(v) == 0 {
		return emptyList
	}
	b, err := json.Marshal(v)
	if err != nil {
		return emptyList
	}
	return datatypes.JSON(b)
}

// Decode unmarshals a JSON column value. Empty or malformed input yields an empty slice.
func Decode[T any](raw datatypes.JSON) []T {
	out := []T{}
	if len(raw) == 0 {
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return []T{}
	}
	return out
}

func EncodeStrings(v []string) datatypes.JSON { return Encode(v) }
func DecodeStrings(raw datatypes.JSON) []string { return Decode[string](raw) }
