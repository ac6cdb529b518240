package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseInt converts val to int and reports whether the conversion succeeded.
// Floats are truncated toward zero. Nil, booleans and non-numeric strings fail.
func ParseInt(val any) (int, bool) {
	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case int32:
		return int(v), true
	case int16:
		return int(v), true
	case int8:
		return int(v), true
	case uint:
		return int(v), true
	case uint64:
		return int(v), true
	case uint32:
		return int(v), true
	case uint16:
		return int(v), true
	case uint8:
		return int(v), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int(v), true
	case float32:
		return ParseInt(float64(v))
	case json.Number:
		return ParseInt(string(v))
	case string:
		s := strings.TrimSpace(v)
		if i, err := strconv.Atoi(s); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return ParseInt(f)
		}
		return 0, false
	case []byte:
		return ParseInt(string(v))
	default:
		return 0, false
	}
}

// ParseFloat converts val to float64 and reports whether the conversion succeeded.
func ParseFloat(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, !math.IsNaN(v) && !math.IsInf(v, 0)
	case float32:
		return ParseFloat(float64(v))
	case int, int64, int32, int16, int8, uint, uint64, uint32, uint16, uint8:
		i, _ := ParseInt(v)
		return float64(i), true
	case json.Number:
		return ParseFloat(string(v))
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return ParseFloat(f)
	case []byte:
		return ParseFloat(string(v))
	default:
		return 0, false
	}
}

// ToString converts various types to string.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
