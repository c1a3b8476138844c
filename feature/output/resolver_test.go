package output

import (
	"context"
	"path/filepath"
	"testing"

	"feature-diff/core/diff"
	"feature-diff/core/storage/mocks"
	"feature-diff/feature/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResolver_Open(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "features").Return(true, nil)
	r := NewResolver(nil, client, "", true, nil)

	h, _ := dataset.ParseHandle("s3://features/diff.jsonl")
	sink, err := r.Open(ctx, h, Layout{})
	require.NoError(t, err)
	assert.IsType(t, &ObjectSink{}, sink)

	h, _ = dataset.ParseHandle("file:" + filepath.Join(t.TempDir(), "diff.jsonl"))
	sink, err = r.Open(ctx, h, Layout{})
	require.NoError(t, err)
	assert.IsType(t, &FileSink{}, sink)
	require.NoError(t, sink.Abort(ctx))

	h, _ = dataset.ParseHandle("db:Differences")
	_, err = r.Open(ctx, h, Layout{})
	assert.ErrorIs(t, err, diff.ErrConfiguration)

	client.AssertExpectations(t)
}

func TestResolver_BucketFails(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "features").Return(false, assert.AnError)

	h, _ := dataset.ParseHandle("s3://features/diff.jsonl")
	_, err := NewResolver(nil, client, "", true, nil).Open(context.Background(), h, Layout{})
	assert.ErrorIs(t, err, diff.ErrOutputWrite)
}

func TestResolver_NoStorage(t *testing.T) {
	h, _ := dataset.ParseHandle("s3://features/diff.jsonl")
	_, err := NewResolver(nil, nil, "", true, nil).Open(context.Background(), h, Layout{})
	assert.ErrorIs(t, err, diff.ErrConfiguration)
}
