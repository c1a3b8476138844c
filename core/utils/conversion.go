package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ToInt64 converts various types to int64 using explicit type switching.
// It handles standard integer types, floats, strings, and byte slices.
// ok is false when the value is nil or cannot be represented as an integer.
func ToInt64(val any) (n int64, ok bool) {
	switch v := val.(type) {
	case nil:
		return 0, false
	case int:
		return int64(v), true
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case int16:
		return int64(v), true
	case int8:
		return int64(v), true
	case uint:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint8:
		return int64(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int64(v), true
	case float32:
		return ToInt64(float64(v))
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return i, err == nil
	case []byte:
		return ToInt64(string(v))
	default:
		i, err := strconv.ParseInt(fmt.Sprintf("%v", v), 10, 64)
		return i, err == nil
	}
}

// ToString converts various types to string.
func ToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToBool converts various types to bool.
// It handles bool, numeric types (1=true), and strings ("1", "true").
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case int, int64, int32, int16, int8, uint, uint64, uint32, uint16, uint8:
		n, _ := ToInt64(v)
		return n == 1
	case string:
		return v == "1" || strings.ToLower(v) == "true"
	case []byte:
		s := string(v)
		return s == "1" || strings.ToLower(s) == "true"
	default:
		return false
	}
}

// Normalize maps driver and decoder values onto a small set of types:
// int64, float64, string, bool, time.Time and nil. Integer kinds become
// int64, float32 becomes float64 and byte slices become strings.
// Other values are returned unchanged.
func Normalize(val any) any {
	switch v := val.(type) {
	case nil:
		return nil
	case int, int32, int16, int8, uint, uint32, uint16, uint8:
		n, _ := ToInt64(v)
		return n
	case uint64:
		if n, ok := ToInt64(v); ok {
			return n
		}
		return float64(v)
	case float32:
		return float64(v)
	case []byte:
		return string(v)
	case *time.Time:
		if v == nil {
			return nil
		}
		return *v
	default:
		return v
	}
}
