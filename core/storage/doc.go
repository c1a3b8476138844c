// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for common operations
// like checking bucket existence, uploading results, and reading datasets. This abstraction
// supports both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists / MakeBucket: Verify or create the output bucket (see EnsureBucket).
//   - PutObject: Uploads difference records written as JSON lines.
//   - GetObject: Retrieves GeoJSON datasets as a stream.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	bucket, object, err := storage.ParseURI("s3://data/streets.geojson")
//	reader, err := client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
package storage
