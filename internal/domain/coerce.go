package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// StringValue accepts v only if it is a string. It is the entry point for
// names coming from dynamically typed input such as decoded JSON.
func StringValue(field string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", typeError(field, fmt.Sprintf("%s must be a string, got %s", field, describe(v)))
	}
	return s, nil
}

// NumberValue accepts Go numeric kinds and json.Number. Booleans and numeric
// strings are rejected.
func NumberValue(field string, v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		// An out-of-range literal parses to ±Inf, which the range checks reject.
		parsed, err := n.Float64()
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, typeError(field, fmt.Sprintf("%s must be a number", field))
		}
		f = parsed
	default:
		return 0, typeError(field, fmt.Sprintf("%s must be a number, got %s", field, describe(v)))
	}
	if math.IsNaN(f) {
		return 0, typeError(field, fmt.Sprintf("%s must be a number", field))
	}
	return f, nil
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
