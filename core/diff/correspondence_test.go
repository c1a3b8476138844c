package diff

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldMap(t *testing.T) {
	tests := []struct {
		in      string
		want    FieldMap
		wantErr bool
	}{
		{in: "NAME=ST_NAME:STREETNAME", want: FieldMap{Output: "NAME", SourceA: "ST_NAME", SourceB: "STREETNAME"}},
		{in: "LANES=LANES", want: FieldMap{Output: "LANES", SourceA: "LANES", SourceB: "LANES"}},
		{in: " SPEED ", want: FieldMap{Output: "SPEED", SourceA: "SPEED", SourceB: "SPEED"}},
		{in: "X=a:b:c", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFieldMap(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrConfiguration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCorrespondence(t *testing.T) {
	c, err := ParseCorrespondence([]string{"NAME=ST_NAME:STREETNAME", " LANES = LANES "})
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"NAME", "LANES"}, c.OutputNames())
	assert.Equal(t, FieldMap{Output: "LANES", SourceA: "LANES", SourceB: "LANES"}, c.Entries()[1])

	_, err = ParseCorrespondence([]string{"=a:b"})
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestNewCorrespondence_Rejects(t *testing.T) {
	tests := []struct {
		name string
		maps []FieldMap
	}{
		{"reserved change type", []FieldMap{{Output: "change_type", SourceA: "a", SourceB: "b"}}},
		{"reserved oid", []FieldMap{{Output: "OID_1", SourceA: "a", SourceB: "b"}}},
		{"reserved shape", []FieldMap{{Output: "Shape", SourceA: "a", SourceB: "b"}}},
		{"duplicate", []FieldMap{{Output: "NAME", SourceA: "a", SourceB: "b"}, {Output: "name", SourceA: "c", SourceB: "d"}}},
		{"empty source", []FieldMap{{Output: "NAME", SourceA: "a", SourceB: " "}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCorrespondence(tt.maps...)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestCorrespondence_Nil(t *testing.T) {
	var c *Correspondence
	assert.Equal(t, 0, c.Len())
	assert.Nil(t, c.Entries())
	assert.Empty(t, c.OutputNames())
}

func TestCorrespondence_EntriesIsCopy(t *testing.T) {
	c, err := NewCorrespondence(FieldMap{Output: "NAME", SourceA: "a", SourceB: "b"})
	require.NoError(t, err)

	entries := c.Entries()
	entries[0].Output = "CHANGED"
	assert.Equal(t, "NAME", c.Entries()[0].Output)
}

func TestLoadCorrespondenceFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fields.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`fields:
  - output: NAME_DIFF
    source_1: ST_NAME
    source_2: STREETNAME
  - output: LANES
    source_1: LANES
    source_2: NUM_LANES
`), 0o644))

	c, err := LoadCorrespondenceFile(path)
	require.NoError(t, err)
	assert.Equal(t, []FieldMap{
		{Output: "NAME_DIFF", SourceA: "ST_NAME", SourceB: "STREETNAME"},
		{Output: "LANES", SourceA: "LANES", SourceB: "NUM_LANES"},
	}, c.Entries())

	_, err = LoadCorrespondenceFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, ErrConfiguration)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("fields: [\n"), 0o644))
	_, err = LoadCorrespondenceFile(bad)
	assert.ErrorIs(t, err, ErrConfiguration)
}
