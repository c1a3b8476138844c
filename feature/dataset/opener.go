package dataset

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"feature-diff/core/diff"
	"feature-diff/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Descriptor describes a dataset as seen by a comparison.
type Descriptor struct {
	Handle Handle `json:"-"`

	// OIDField is the object id field.
	OIDField string `json:"oid_field"`

	// KeyField is the key field as named in the dataset.
	KeyField string `json:"key_field"`

	// KeyType is the declared (tables) or inferred (GeoJSON) key type.
	KeyType diff.KeyType `json:"key_type"`

	// GeometryField is the shape field, empty when the dataset has none.
	GeometryField string `json:"geometry_field,omitempty"`

	// Fields lists the attribute names available for field maps.
	Fields []string `json:"fields"`
}

// HasField reports whether the dataset has the named field (case-insensitive).
func (d Descriptor) HasField(name string) bool {
	return d.fieldMatches(name) > 0
}

// AmbiguousField reports whether name matches no field exactly but more than
// one field when case is ignored, e.g. "name" against "Name" and "NAME".
func (d Descriptor) AmbiguousField(name string) bool {
	for _, f := range d.Fields {
		if f == name {
			return false
		}
	}
	return d.fieldMatches(name) > 1
}

func (d Descriptor) fieldMatches(name string) int {
	n := 0
	for _, f := range d.Fields {
		if strings.EqualFold(f, name) {
			n++
		}
	}
	return n
}

// Opener resolves dataset handles into key-ordered sources.
type Opener struct {
	db      *gorm.DB
	storage storage.Client
	cfg     diff.Config
	logger  *zap.Logger
}

// NewOpener creates an opener. db and client may be nil when no handle of
// the corresponding kind is used.
func NewOpener(db *gorm.DB, client storage.Client, cfg diff.Config, logger *zap.Logger) *Opener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Opener{db: db, storage: client, cfg: cfg, logger: logger}
}

// Open returns a source over the dataset sorted ascending by keyField, and
// its descriptor. keys orders in-memory datasets; tables are ordered by the
// database.
func (o *Opener) Open(ctx context.Context, h Handle, keyField string, keys diff.KeyComparer) (diff.Source, Descriptor, error) {
	if strings.TrimSpace(keyField) == "" {
		return nil, Descriptor{}, fmt.Errorf("%w: %s: empty key field name", diff.ErrConfiguration, h)
	}

	switch h.Kind {
	case KindTable:
		if o.db == nil {
			return nil, Descriptor{}, fmt.Errorf("%w: %s: no database connection configured", diff.ErrConfiguration, h)
		}
		desc, err := describeTable(o.db.WithContext(ctx), h, keyField, o.cfg)
		if err != nil {
			return nil, Descriptor{}, err
		}
		o.logger.Debug("Opened table dataset",
			zap.String("dataset", h.String()),
			zap.String("oid_field", desc.OIDField),
			zap.String("key_type", string(desc.KeyType)),
		)
		return NewTableSource(o.db, desc, o.cfg.PageSize), desc, nil

	case KindFile, KindObject:
		data, err := o.read(ctx, h)
		if err != nil {
			return nil, Descriptor{}, fmt.Errorf("%w: %s: %w", diff.ErrSourceRead, h, err)
		}
		src, err := NewGeoJSONSource(h, data, keyField, o.cfg, keys)
		if err != nil {
			return nil, Descriptor{}, err
		}
		o.logger.Debug("Loaded GeoJSON dataset",
			zap.String("dataset", h.String()),
			zap.Int("features", len(src.records)),
		)
		return src, src.Descriptor(), nil
	}

	return nil, Descriptor{}, fmt.Errorf("%w: unsupported dataset kind %q", diff.ErrConfiguration, h.Kind)
}

func (o *Opener) read(ctx context.Context, h Handle) ([]byte, error) {
	if h.Kind == KindFile {
		return os.ReadFile(h.Path)
	}

	if o.storage == nil {
		return nil, fmt.Errorf("no storage client configured")
	}
	reader, err := o.storage.GetObject(ctx, h.Bucket, h.Object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %w", err)
	}
	return data, nil
}
