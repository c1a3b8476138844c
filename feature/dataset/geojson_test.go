package dataset

import (
	"context"
	"testing"

	"feature-diff/core/diff"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const streetsGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "id": 7, "properties": {"STREET_ID": 30, "ST_NAME": "Elm"},
     "geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 1]]}},
    {"type": "Feature", "properties": {"OBJECTID": 2, "STREET_ID": 10, "ST_NAME": "Oak"},
     "geometry": {"type": "Point", "coordinates": [5, 5]}},
    {"type": "Feature", "properties": {"ST_NAME": "Unkeyed"}, "geometry": null},
    {"type": "Feature", "properties": {"STREET_ID": 20.0, "ST_NAME": "Pine"}, "geometry": null}
  ]
}`

func drain(t *testing.T, src diff.Source) []diff.Record {
	t.Helper()
	var out []diff.Record
	for {
		rec, ok, err := src.Next(context.Background())
		require.NoError(t, err)
		if !ok {
			return out
		}
		out = append(out, rec)
	}
}

func TestGeoJSONSource(t *testing.T) {
	h, _ := ParseHandle("file:streets.geojson")
	cfg := diff.Config{OIDField: "OBJECTID"}

	src, err := NewGeoJSONSource(h, []byte(streetsGeoJSON), "STREET_ID", cfg, diff.NewKeyComparer(nil))
	require.NoError(t, err)

	desc := src.Descriptor()
	assert.Equal(t, diff.KeyNumeric, desc.KeyType)
	assert.Equal(t, []string{"OBJECTID", "STREET_ID", "ST_NAME"}, desc.Fields)
	assert.True(t, desc.HasField("st_name"))

	n, err := src.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	records := drain(t, src)
	require.Len(t, records, 4)

	// Null keys first, then ascending keys.
	assert.Nil(t, records[0].Key)
	assert.Equal(t, int64(3), records[0].ID)
	assert.Equal(t, int64(10), records[1].Key)
	assert.Equal(t, int64(2), records[1].ID)
	assert.Equal(t, orb.Point{5, 5}, records[1].Geometry)
	assert.Equal(t, int64(20), records[2].Key)
	assert.Equal(t, int64(4), records[2].ID)
	assert.Equal(t, int64(30), records[3].Key)
	assert.Equal(t, int64(7), records[3].ID)
	assert.Equal(t, "Elm", records[3].Fields["ST_NAME"])

	_, ok, err := src.Next(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, src.Close())
}

func TestGeoJSONSource_TextKeysUseCollation(t *testing.T) {
	data := `{"type": "FeatureCollection", "features": [
	  {"type": "Feature", "properties": {"K": "b"}, "geometry": null},
	  {"type": "Feature", "properties": {"K": "B"}, "geometry": null},
	  {"type": "Feature", "properties": {"K": "a"}, "geometry": null}
	]}`
	h, _ := ParseHandle("file:k.geojson")

	tests := []struct {
		name string
		keys diff.KeyComparer
		want []any
	}{
		{"default locale", diff.NewKeyComparer(nil), []any{"a", "b", "B"}},
		{"binary", diff.NewKeyComparer(diff.BinaryCollation{}), []any{"B", "a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := NewGeoJSONSource(h, []byte(data), "K", diff.Config{}, tt.keys)
			require.NoError(t, err)

			var keys []any
			for _, rec := range drain(t, src) {
				keys = append(keys, rec.Key)
			}
			assert.Equal(t, tt.want, keys)
			assert.Equal(t, diff.KeyText, src.Descriptor().KeyType)
		})
	}
}

func TestGeoJSONSource_Errors(t *testing.T) {
	h, _ := ParseHandle("file:bad.geojson")

	_, err := NewGeoJSONSource(h, []byte("{not json"), "K", diff.Config{}, diff.NewKeyComparer(nil))
	assert.ErrorIs(t, err, diff.ErrSourceRead)

	_, err = NewGeoJSONSource(h, []byte(streetsGeoJSON), "MISSING", diff.Config{}, diff.NewKeyComparer(nil))
	assert.ErrorIs(t, err, diff.ErrConfiguration)

	empty := `{"type": "FeatureCollection", "features": []}`
	src, err := NewGeoJSONSource(h, []byte(empty), "MISSING", diff.Config{}, diff.NewKeyComparer(nil))
	require.NoError(t, err)
	assert.Empty(t, drain(t, src))
}

func TestGeoJSONSource_Cancelled(t *testing.T) {
	h, _ := ParseHandle("file:streets.geojson")
	src, err := NewGeoJSONSource(h, []byte(streetsGeoJSON), "STREET_ID", diff.Config{}, diff.NewKeyComparer(nil))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = src.Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
