package dataset

import (
	"fmt"
	"path/filepath"
	"strings"

	"feature-diff/core/diff"
	"feature-diff/core/storage"
)

// Kind identifies where a dataset or output lives.
type Kind string

const (
	// KindTable is a table of the configured database ("db:<table>").
	KindTable Kind = "db"
	// KindFile is a local file ("file:<path>").
	KindFile Kind = "file"
	// KindObject is an object in storage ("s3://<bucket>/<object>").
	KindObject Kind = "s3"
)

// Handle is a parsed dataset or output reference.
type Handle struct {
	Kind   Kind
	Table  string
	Path   string
	Bucket string
	Object string
	raw    string
}

func (h Handle) String() string { return h.raw }

// Same reports whether h and o name the same location. Table names compare
// case-insensitively.
func (h Handle) Same(o Handle) bool {
	if h.Kind != o.Kind {
		return false
	}
	switch h.Kind {
	case KindTable:
		return strings.EqualFold(h.Table, o.Table)
	case KindFile:
		return filepath.Clean(h.Path) == filepath.Clean(o.Path)
	default:
		return h.Bucket == o.Bucket && h.Object == o.Object
	}
}

// ParseHandle parses "db:<table>", "file:<path>" or "s3://<bucket>/<object>".
// A bare name is treated as a table of the configured database.
func ParseHandle(s string) (Handle, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Handle{}, fmt.Errorf("%w: empty dataset handle", diff.ErrConfiguration)
	}

	switch {
	case strings.HasPrefix(raw, "s3://"):
		bucket, object, err := storage.ParseURI(raw)
		if err != nil {
			return Handle{}, fmt.Errorf("%w: %v", diff.ErrConfiguration, err)
		}
		return Handle{Kind: KindObject, Bucket: bucket, Object: object, raw: raw}, nil
	case strings.HasPrefix(raw, "file:"):
		path := strings.TrimPrefix(strings.TrimPrefix(raw, "file:"), "//")
		if path == "" {
			return Handle{}, fmt.Errorf("%w: file handle %q has no path", diff.ErrConfiguration, raw)
		}
		return Handle{Kind: KindFile, Path: path, raw: raw}, nil
	case strings.HasPrefix(raw, "db:"):
		table := strings.TrimPrefix(raw, "db:")
		if table == "" {
			return Handle{}, fmt.Errorf("%w: table handle %q has no table", diff.ErrConfiguration, raw)
		}
		return Handle{Kind: KindTable, Table: table, raw: raw}, nil
	case strings.Contains(raw, ":"):
		return Handle{}, fmt.Errorf("%w: unsupported handle %q", diff.ErrConfiguration, raw)
	default:
		return Handle{Kind: KindTable, Table: raw, raw: raw}, nil
	}
}
