package output

import (
	"testing"

	"feature-diff/core/diff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oid(v int64) *int64 { return &v }

func shape(v diff.ShapeDiff) *diff.ShapeDiff { return &v }

func TestLayout(t *testing.T) {
	fields, err := diff.NewCorrespondence(
		diff.FieldMap{Output: "NAME", SourceA: "ST_NAME", SourceB: "NAME"},
		diff.FieldMap{Output: "TYPE", SourceA: "TYPE", SourceB: "TYPE"},
	)
	require.NoError(t, err)

	layout := NewLayout(fields, true)
	assert.Equal(t, []string{"OID_1", "OID_2", "CHANGE_TYPE", "NAME", "TYPE", "SHAPE"}, layout.Columns())

	values, err := layout.Values(diff.DiffRecord{OIDB: oid(4), ChangeType: diff.ChangeAdd})
	require.NoError(t, err)
	assert.Equal(t, []any{nil, int64(4), "Add", nil, nil, nil}, values)

	values, err = layout.Values(diff.DiffRecord{
		OIDA:       oid(1),
		OIDB:       oid(2),
		ChangeType: diff.ChangeEdit,
		Fields:     []diff.FieldDiff{{Name: "NAME", Differs: true}, {Name: "TYPE"}},
		Shape:      shape(diff.ShapeDifferentStart),
	})
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(2), "Edit", 1, 0, 2}, values)

	_, err = layout.Values(diff.DiffRecord{ChangeType: diff.ChangeEdit, Fields: []diff.FieldDiff{{Name: "NAME"}}})
	assert.Error(t, err)
}

func TestLayout_NoFields(t *testing.T) {
	layout := NewLayout(nil, false)
	assert.Equal(t, []string{"OID_1", "OID_2", "CHANGE_TYPE"}, layout.Columns())
}

func TestEncodeLine(t *testing.T) {
	layout := Layout{Fields: []string{"NAME"}, Shape: true}

	line, err := encodeLine(layout, diff.DiffRecord{OIDA: oid(5), ChangeType: diff.ChangeNullKeyA})
	require.NoError(t, err)
	assert.Equal(t, `{"OID_1":5,"OID_2":null,"CHANGE_TYPE":"Null key 1","NAME":null,"SHAPE":null}`+"\n", string(line))

	line, err = encodeLine(layout, diff.DiffRecord{
		OIDA:       oid(1),
		OIDB:       oid(2),
		ChangeType: diff.ChangeEdit,
		Fields:     []diff.FieldDiff{{Name: "NAME", Differs: true}},
		Shape:      shape(diff.ShapeSame),
	})
	require.NoError(t, err)
	assert.Equal(t, `{"OID_1":1,"OID_2":2,"CHANGE_TYPE":"Edit","NAME":1,"SHAPE":0}`+"\n", string(line))
}
