package dataset

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"feature-diff/core/diff"
	"feature-diff/core/utils"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/ewkb"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/paulmach/orb/encoding/wkt"
)

// KeyTypeOf maps a declared SQL column type to a key type.
func KeyTypeOf(sqlType string) diff.KeyType {
	t := strings.ToLower(sqlType)
	switch {
	case containsAny(t, "char", "text", "clob", "string"):
		return diff.KeyText
	case containsAny(t, "date", "time"):
		return diff.KeyDate
	case containsAny(t, "point", "geom", "line", "polygon"):
		return diff.KeyOther
	case containsAny(t, "int", "dec", "num", "real", "double", "float"):
		return diff.KeyNumeric
	default:
		return diff.KeyOther
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// normalizeKey converts a raw key value to the representation the engine orders.
// Whole floats become int64 so that 3 and 3.0 denote the same key.
func normalizeKey(val any, keyType diff.KeyType) (any, error) {
	v := utils.Normalize(val)
	if v == nil {
		return nil, nil
	}

	switch keyType {
	case diff.KeyNumeric:
		switch n := v.(type) {
		case int64:
			return n, nil
		case float64:
			if i, ok := utils.ToInt64(n); ok {
				return i, nil
			}
			return n, nil
		case string:
			if i, ok := utils.ToInt64(n); ok {
				return i, nil
			}
			f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
			if err != nil {
				return nil, fmt.Errorf("numeric key value %q is not a number", n)
			}
			return normalizeKey(f, keyType)
		}
	case diff.KeyText:
		return utils.ToString(v), nil
	case diff.KeyDate:
		switch d := v.(type) {
		case time.Time:
			return d, nil
		case string:
			return parseTime(d)
		}
	}

	switch v.(type) {
	case int64, float64, string, bool, time.Time:
		return v, nil
	}
	return utils.ToString(v), nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("date key value %q has an unknown layout", s)
}

// decodeGeometry decodes a shape column value. It accepts orb geometries,
// WKB, hex EWKB as returned by PostGIS, and WKT. With sridPrefix set, binary
// values carry MySQL's 4-byte SRID ahead of the WKB.
func decodeGeometry(val any, sridPrefix bool) (orb.Geometry, error) {
	switch v := val.(type) {
	case nil:
		return nil, nil
	case orb.Geometry:
		return v, nil
	case []byte:
		if len(v) == 0 {
			return nil, nil
		}
		data := v
		if sridPrefix && len(data) > 4 {
			data = data[4:]
		}
		if g, err := wkb.Unmarshal(data); err == nil {
			return g, nil
		}
		return decodeGeometryText(string(v))
	case string:
		return decodeGeometryText(v)
	}
	return nil, fmt.Errorf("unsupported geometry value of type %T", val)
}

func decodeGeometryText(s string) (orb.Geometry, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if isHex(s) {
		data, err := hex.DecodeString(s)
		if err == nil {
			if g, _, err := ewkb.Unmarshal(data); err == nil {
				return g, nil
			}
		}
	}
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, fmt.Errorf("invalid geometry text: %w", err)
	}
	return g, nil
}

func isHex(s string) bool {
	if len(s)%2 != 0 {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}
