package diff

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShapeComparator(t *testing.T) {
	s, err := NewShapeComparator(0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.5, s.Tolerance())

	_, err = NewShapeComparator(-1)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestShapeComparator_Compare(t *testing.T) {
	s, err := NewShapeComparator(0.01)
	require.NoError(t, err)

	square := orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}}
	rotated := orb.Polygon{{{1, 1}, {0, 1}, {0, 0}, {1, 0}, {1, 1}}}
	reversed := orb.Polygon{{{0, 0}, {0, 1}, {1, 1}, {1, 0}, {0, 0}}}
	hole := orb.Ring{{0.2, 0.2}, {0.4, 0.2}, {0.4, 0.4}, {0.2, 0.2}}
	hole2 := orb.Ring{{0.6, 0.6}, {0.8, 0.6}, {0.8, 0.8}, {0.6, 0.6}}

	tests := []struct {
		name string
		a, b orb.Geometry
		want ShapeDiff
	}{
		{"both empty", nil, nil, ShapeSame},
		{"empty and point", nil, orb.Point{0, 0}, ShapeDifferent},
		{"same point", orb.Point{1, 2}, orb.Point{1, 2}, ShapeSame},
		{"point within tolerance", orb.Point{1, 2}, orb.Point{1.0005, 2}, ShapeSame},
		{"point outside tolerance", orb.Point{1, 2}, orb.Point{1.05, 2}, ShapeDifferent},
		{"point within tolerance, start moved", orb.Point{0, 0}, orb.Point{0.009, 0}, ShapeDifferentStart},
		{"same line", orb.LineString{{0, 0}, {1, 1}, {2, 0}}, orb.LineString{{0, 0}, {1, 1}, {2, 0}}, ShapeSame},
		{"reversed line", orb.LineString{{0, 0}, {1, 1}, {2, 0}}, orb.LineString{{2, 0}, {1, 1}, {0, 0}}, ShapeDifferentStart},
		{"extra vertex", orb.LineString{{0, 0}, {2, 0}}, orb.LineString{{0, 0}, {1, 0}, {2, 0}}, ShapeDifferent},
		{"same polygon", square, square, ShapeSame},
		{"polygon new start", square, rotated, ShapeDifferentStart},
		{"polygon reversed", square, reversed, ShapeSame},
		{"polygon moved", square, orb.Polygon{{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}}}, ShapeDifferent},
		{"holes in any order", orb.Polygon{square[0], hole, hole2}, orb.Polygon{square[0], hole2, hole}, ShapeSame},
		{"missing hole", orb.Polygon{square[0], hole}, square, ShapeDifferent},
		{"single part multi", orb.MultiLineString{{{0, 0}, {1, 1}}}, orb.LineString{{0, 0}, {1, 1}}, ShapeSame},
		{"parts in any order",
			orb.MultiPoint{{0, 0}, {5, 5}},
			orb.MultiPoint{{5, 5}, {0, 0}},
			ShapeDifferentStart},
		{"different types", orb.Point{0, 0}, orb.LineString{{0, 0}, {0, 0}}, ShapeDifferent},
		{"bound and polygon", orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1, 1}}, square, ShapeSame},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Compare(tt.a, tt.b))
			assert.Equal(t, tt.want != ShapeDifferent, s.Equal(tt.b, tt.a))
		})
	}
}

func TestFirstVertex(t *testing.T) {
	p, ok := FirstVertex(orb.MultiLineString{{}, {{3, 4}, {5, 6}}})
	assert.True(t, ok)
	assert.Equal(t, orb.Point{3, 4}, p)

	p, ok = FirstVertex(orb.Polygon{{{1, 1}, {2, 1}, {2, 2}, {1, 1}}})
	assert.True(t, ok)
	assert.Equal(t, orb.Point{1, 1}, p)

	_, ok = FirstVertex(nil)
	assert.False(t, ok)

	_, ok = FirstVertex(orb.LineString{})
	assert.False(t, ok)
}
