package diff

import (
	"reflect"
	"strings"
	"time"

	"feature-diff/core/utils"
)

// EditComparer compares a matched pair of records through the field
// correspondence and, when configured, the geometry comparator.
type EditComparer struct {
	fields   *Correspondence
	geometry GeometryComparator
}

// NewEditComparer creates a comparer. A nil correspondence compares no
// fields and a nil geometry comparator disables the shape comparison.
func NewEditComparer(fields *Correspondence, geometry GeometryComparator) *EditComparer {
	return &EditComparer{fields: fields, geometry: geometry}
}

// CompareShape reports whether the geometry comparison is enabled.
func (c *EditComparer) CompareShape() bool { return c.geometry != nil }

// Compare builds the Edit record for recA and recB. edited is false when
// no mapped field differs and the geometry comparison found no edit.
func (c *EditComparer) Compare(recA, recB Record) (rec DiffRecord, edited bool) {
	rec = DiffRecord{
		OIDA:       ptr(recA.ID),
		OIDB:       ptr(recB.ID),
		ChangeType: ChangeEdit,
	}

	entries := c.fields.Entries()
	if len(entries) > 0 {
		rec.Fields = make([]FieldDiff, 0, len(entries))
	}
	for _, m := range entries {
		differs := !ValuesEqual(fieldValue(recA.Fields, m.SourceA), fieldValue(recB.Fields, m.SourceB))
		rec.Fields = append(rec.Fields, FieldDiff{Name: m.Output, Differs: differs})
		edited = edited || differs
	}

	if c.geometry != nil {
		code := c.geometry.Compare(recA.Geometry, recB.Geometry)
		rec.Shape = &code
		edited = edited || code != ShapeSame
	}

	return rec, edited
}

// fieldValue looks a field up by exact name, then case-insensitively. A
// case-insensitive lookup matching more than one field is ambiguous and
// yields nil.
func fieldValue(fields map[string]any, name string) any {
	if v, ok := fields[name]; ok {
		return v
	}
	var (
		found any
		n     int
	)
	for k, v := range fields {
		if strings.EqualFold(k, name) {
			found = v
			n++
		}
	}
	if n != 1 {
		return nil
	}
	return found
}

// ValuesEqual compares two field values by their natural type. Integers and
// floats compare numerically, byte slices compare as strings, times compare
// as instants and nil equals only nil.
func ValuesEqual(a, b any) bool {
	a, b = utils.Normalize(a), utils.Normalize(b)
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch x := a.(type) {
	case int64:
		switch y := b.(type) {
		case int64:
			return x == y
		case float64:
			return float64(x) == y
		}
		return false
	case float64:
		switch y := b.(type) {
		case float64:
			return x == y
		case int64:
			return x == float64(y)
		}
		return false
	case time.Time:
		y, ok := b.(time.Time)
		return ok && x.Equal(y)
	}

	return reflect.DeepEqual(a, b)
}

func ptr[T any](v T) *T { return &v }
