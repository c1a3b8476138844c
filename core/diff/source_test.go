package diff

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor(t *testing.T) {
	ctx := context.Background()
	src := newSliceSource("a", Record{ID: 1, Key: int64(1)}, Record{ID: 2, Key: nil})

	c, err := newCursor(ctx, src, NewKeyComparer(BinaryCollation{}))
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)

	rec, ok := c.Current().Record()
	require.True(t, ok)
	assert.Equal(t, int64(1), rec.ID)
	assert.False(t, c.Current().KeyIsNull())

	require.NoError(t, c.Advance(ctx))
	assert.True(t, c.Current().KeyIsNull())

	require.NoError(t, c.Advance(ctx))
	assert.True(t, c.Current().Exhausted())
	assert.Equal(t, 3, src.calls)

	require.NoError(t, c.Advance(ctx))
	assert.True(t, c.Current().Exhausted())
	assert.Equal(t, 3, src.calls)
}

func TestCursor_ReadError(t *testing.T) {
	src := newSliceSource("parcels")
	src.failAt = 0

	_, err := newCursor(context.Background(), src, NewKeyComparer(nil))
	assert.ErrorIs(t, err, ErrSourceRead)
	assert.Contains(t, err.Error(), "parcels")
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestHead_End(t *testing.T) {
	assert.True(t, End.Exhausted())
	assert.False(t, End.KeyIsNull())

	_, ok := End.Record()
	assert.False(t, ok)
}

func TestCursor_RejectsDescendingKeys(t *testing.T) {
	ctx := context.Background()
	src := newSliceSource("parcels",
		Record{ID: 1, Key: "a"},
		Record{ID: 2, Key: nil},
		Record{ID: 3, Key: "a"},
		Record{ID: 4, Key: "0"},
	)

	c, err := newCursor(ctx, src, NewKeyComparer(nil))
	require.NoError(t, err)
	require.NoError(t, c.Advance(ctx))
	require.NoError(t, c.Advance(ctx))

	err = c.Advance(ctx)
	assert.ErrorIs(t, err, ErrSourceRead)
	assert.ErrorContains(t, err, "parcels")
	assert.ErrorContains(t, err, "key 0 (oid 4) sorts before the previous key a")
}

func TestCursor_AcceptsCollationOrder(t *testing.T) {
	ctx := context.Background()
	src := newSliceSource("parcels", Record{ID: 1, Key: "B"}, Record{ID: 2, Key: "a"})

	c, err := newCursor(ctx, src, NewKeyComparer(BinaryCollation{}))
	require.NoError(t, err)
	assert.NoError(t, c.Advance(ctx))
	assert.NoError(t, c.Advance(ctx))
	assert.True(t, c.Current().Exhausted())
}
