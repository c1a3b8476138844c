package output

import (
	"bytes"
	"context"
	"fmt"

	"feature-diff/core/diff"
	"feature-diff/core/storage"

	"github.com/minio/minio-go/v7"
)

// ContentType is the content type of uploaded difference outputs.
const ContentType = "application/x-ndjson"

// ObjectSink buffers JSON lines and uploads them to object storage on Commit.
type ObjectSink struct {
	client storage.Client
	bucket string
	object string
	layout Layout
	buf    bytes.Buffer
}

// NewObjectSink creates a sink for bucket/object.
func NewObjectSink(client storage.Client, bucket, object string, layout Layout) *ObjectSink {
	return &ObjectSink{client: client, bucket: bucket, object: object, layout: layout}
}

func (s *ObjectSink) Name() string { return fmt.Sprintf("s3://%s/%s", s.bucket, s.object) }

func (s *ObjectSink) Write(_ context.Context, rec diff.DiffRecord) error {
	line, err := encodeLine(s.layout, rec)
	if err != nil {
		return err
	}
	s.buf.Write(line)
	return nil
}

// Commit uploads the buffered lines.
func (s *ObjectSink) Commit(ctx context.Context) error {
	size := int64(s.buf.Len())
	_, err := s.client.PutObject(ctx, s.bucket, s.object, bytes.NewReader(s.buf.Bytes()), size, minio.PutObjectOptions{
		ContentType: ContentType,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to upload %s: %w", diff.ErrOutputWrite, s.Name(), err)
	}
	return nil
}

// Abort drops the buffered lines.
func (s *ObjectSink) Abort(context.Context) error {
	s.buf.Reset()
	return nil
}
