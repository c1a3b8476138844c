package output

import (
	"context"
	"fmt"

	"feature-diff/core/diff"
	"feature-diff/core/storage"
	"feature-diff/feature/dataset"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Resolver opens output sinks from handles.
type Resolver struct {
	db      *gorm.DB
	storage storage.Client
	region  string
	publish bool
	logger  *zap.Logger
}

// NewResolver creates a resolver. publish enables staging tables for table outputs.
func NewResolver(db *gorm.DB, client storage.Client, region string, publish bool, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{db: db, storage: client, region: region, publish: publish, logger: logger}
}

// Open prepares the output named by h.
func (r *Resolver) Open(ctx context.Context, h dataset.Handle, layout Layout) (Sink, error) {
	switch h.Kind {
	case dataset.KindTable:
		if r.db == nil {
			return nil, fmt.Errorf("%w: %s: no database connection configured", diff.ErrConfiguration, h)
		}
		return NewTableSink(ctx, r.db, h.Table, layout, r.publish, r.logger)
	case dataset.KindFile:
		return NewFileSink(h.Path, layout)
	case dataset.KindObject:
		if r.storage == nil {
			return nil, fmt.Errorf("%w: %s: no storage client configured", diff.ErrConfiguration, h)
		}
		if err := storage.EnsureBucket(ctx, r.storage, h.Bucket, r.region); err != nil {
			return nil, fmt.Errorf("%w: %w", diff.ErrOutputWrite, err)
		}
		return NewObjectSink(r.storage, h.Bucket, h.Object, layout), nil
	}
	return nil, fmt.Errorf("%w: unsupported output kind %q", diff.ErrConfiguration, h.Kind)
}
