package diff

import "github.com/paulmach/orb"

// ChangeType is the disposition recorded in the CHANGE_TYPE column.
type ChangeType string

const (
	// ChangeAdd marks a key present only in source B.
	ChangeAdd ChangeType = "Add"
	// ChangeDelete marks a key present only in source A.
	ChangeDelete ChangeType = "Delete"
	// ChangeEdit marks a key present in both sources with differing fields or geometry.
	ChangeEdit ChangeType = "Edit"
	// ChangeNullKeyA marks a record of source A whose key is null.
	ChangeNullKeyA ChangeType = "Null key 1"
	// ChangeNullKeyB marks a record of source B whose key is null.
	ChangeNullKeyB ChangeType = "Null key 2"
	// ChangeNone is the outcome of a matched key with no differences. It is never emitted.
	ChangeNone ChangeType = "MatchNoOp"
)

// ShapeDiff is the geometry comparison code written to the SHAPE column.
type ShapeDiff int

const (
	// ShapeSame means equal shapes starting at the same vertex.
	ShapeSame ShapeDiff = 0
	// ShapeDifferent means the shapes are not equal within tolerance.
	ShapeDifferent ShapeDiff = 1
	// ShapeDifferentStart means equal shapes whose first vertices differ,
	// e.g. a line digitized in the opposite direction.
	ShapeDifferentStart ShapeDiff = 2
)

// Record is a single keyed feature read from a source.
type Record struct {
	// ID is the object identifier of the record in its dataset.
	ID int64

	// Key is the correlation value. Sources normalize it to int64, float64,
	// string, bool, time.Time, or nil for a null key.
	Key any

	// Fields holds attribute values by field name.
	Fields map[string]any

	// Geometry is the feature shape, nil when the dataset has none.
	Geometry orb.Geometry
}

// FieldDiff is the per-field outcome of an Edit comparison.
type FieldDiff struct {
	// Name is the output field name from the correspondence.
	Name string `json:"name"`

	// Differs is true when the two mapped input values are unequal.
	Differs bool `json:"differs"`
}

// Flag returns the column value for the field: 1 when different, 0 otherwise.
func (f FieldDiff) Flag() int {
	if f.Differs {
		return 1
	}
	return 0
}

// DiffRecord is one row of the difference output.
type DiffRecord struct {
	// OIDA is the object id in source A, nil for Add and Null key 2.
	OIDA *int64 `json:"oid_1"`

	// OIDB is the object id in source B, nil for Delete and Null key 1.
	OIDB *int64 `json:"oid_2"`

	// ChangeType is the disposition of the key.
	ChangeType ChangeType `json:"change_type"`

	// Fields holds one entry per correspondence entry, in order. Only set for Edit.
	Fields []FieldDiff `json:"fields,omitempty"`

	// Shape is the geometry code. Only set for Edit when geometry comparison is enabled.
	Shape *ShapeDiff `json:"shape,omitempty"`
}

// Disposition is the classifier decision for the current pair of heads.
type Disposition struct {
	Type     ChangeType
	AdvanceA bool
	AdvanceB bool
}

// Summary provides aggregate counts for a finished (or interrupted) run.
type Summary struct {
	// Consumed is the number of input records read from both sources.
	Consumed int64 `json:"consumed"`

	// Iterations is the number of merge steps performed.
	Iterations int64 `json:"iterations"`

	// Emitted is the number of difference records written to the sink.
	Emitted int64 `json:"emitted"`

	Adds      int64 `json:"adds"`
	Deletes   int64 `json:"deletes"`
	Edits     int64 `json:"edits"`
	NullKeysA int64 `json:"null_keys_1"`
	NullKeysB int64 `json:"null_keys_2"`

	// Unchanged counts matched keys with no differences.
	Unchanged int64 `json:"unchanged"`
}

func (s *Summary) count(t ChangeType) {
	switch t {
	case ChangeAdd:
		s.Adds++
	case ChangeDelete:
		s.Deletes++
	case ChangeEdit:
		s.Edits++
	case ChangeNullKeyA:
		s.NullKeysA++
	case ChangeNullKeyB:
		s.NullKeysB++
	case ChangeNone:
		s.Unchanged++
		return
	}
	s.Emitted++
}

// KeyType is the declared type of a dataset's key field.
type KeyType string

const (
	KeyNumeric KeyType = "numeric"
	KeyText    KeyType = "text"
	KeyDate    KeyType = "date"
	KeyOther   KeyType = "other"
)
