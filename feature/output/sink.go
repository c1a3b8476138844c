package output

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"feature-diff/core/diff"
)

// Sink is a difference output. Records are written as they are produced;
// the output is published by Commit and discarded by Abort.
type Sink interface {
	diff.Sink

	// Name identifies the output in logs.
	Name() string

	// Commit publishes the output. The sink must not be written afterwards.
	Commit(ctx context.Context) error

	// Abort discards whatever the sink has not published.
	Abort(ctx context.Context) error
}

// Layout is the column layout of a difference output:
// OID_1, OID_2, CHANGE_TYPE, one flag per field, then SHAPE when enabled.
type Layout struct {
	Fields []string
	Shape  bool
}

// NewLayout derives the layout from a correspondence.
func NewLayout(fields *diff.Correspondence, shape bool) Layout {
	return Layout{Fields: fields.OutputNames(), Shape: shape}
}

// Columns returns the output column names in order.
func (l Layout) Columns() []string {
	cols := make([]string, 0, len(l.Fields)+4)
	cols = append(cols, diff.ColumnOIDA, diff.ColumnOIDB, diff.ColumnChangeType)
	cols = append(cols, l.Fields...)
	if l.Shape {
		cols = append(cols, diff.ColumnShape)
	}
	return cols
}

// Values returns the column values of rec in layout order. Columns that do
// not apply to the record are nil.
func (l Layout) Values(rec diff.DiffRecord) ([]any, error) {
	if len(rec.Fields) > 0 && len(rec.Fields) != len(l.Fields) {
		return nil, fmt.Errorf("record has %d field flags, layout has %d", len(rec.Fields), len(l.Fields))
	}

	values := make([]any, 0, len(l.Fields)+4)
	values = append(values, deref(rec.OIDA), deref(rec.OIDB), string(rec.ChangeType))
	for i := range l.Fields {
		if rec.Fields == nil {
			values = append(values, nil)
			continue
		}
		values = append(values, rec.Fields[i].Flag())
	}
	if l.Shape {
		if rec.Shape == nil {
			values = append(values, nil)
		} else {
			values = append(values, int(*rec.Shape))
		}
	}
	return values, nil
}

func deref(oid *int64) any {
	if oid == nil {
		return nil
	}
	return *oid
}

// encodeLine renders rec as one JSON object with keys in column order,
// terminated by a newline.
func encodeLine(l Layout, rec diff.DiffRecord) ([]byte, error) {
	values, err := l.Values(rec)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range l.Columns() {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, _ := json.Marshal(col)
		buf.Write(name)
		buf.WriteByte(':')
		value, err := json.Marshal(values[i])
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", col, err)
		}
		buf.Write(value)
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}
