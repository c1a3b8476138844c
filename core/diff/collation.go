package diff

import (
	"cmp"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale is the collation locale used when none is configured.
// Datasets whose text keys were sorted by a different collation must set
// the matching locale (or "binary") explicitly.
const DefaultLocale = "en-US"

// BinaryLocale selects code point ordering for text keys.
const BinaryLocale = "binary"

// Collation orders and equates text keys.
type Collation interface {
	// Name identifies the collation in logs and summaries.
	Name() string
	// Compare returns -1, 0 or 1.
	Compare(a, b string) int
}

// LocaleCollation compares strings with the Unicode collation rules of a locale,
// so that e.g. "{" sorts before "a" as database cursors do.
// A LocaleCollation is not safe for concurrent use.
type LocaleCollation struct {
	tag      language.Tag
	collator *collate.Collator
}

// NewLocaleCollation creates a collation for the given BCP 47 locale.
func NewLocaleCollation(locale string) (*LocaleCollation, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid collation locale %q: %v", ErrConfiguration, locale, err)
	}
	return &LocaleCollation{tag: tag, collator: collate.New(tag)}, nil
}

func (c *LocaleCollation) Name() string { return c.tag.String() }

func (c *LocaleCollation) Compare(a, b string) int {
	return c.collator.CompareString(a, b)
}

// BinaryCollation compares strings by code point.
type BinaryCollation struct{}

func (BinaryCollation) Name() string { return BinaryLocale }

func (BinaryCollation) Compare(a, b string) int { return strings.Compare(a, b) }

// NewCollation resolves a configured locale name. An empty name selects DefaultLocale.
func NewCollation(locale string) (Collation, error) {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case "":
		return NewLocaleCollation(DefaultLocale)
	case BinaryLocale:
		return BinaryCollation{}, nil
	default:
		return NewLocaleCollation(locale)
	}
}

// KeyComparer orders normalized key values. Numbers, dates and booleans use
// their native order; strings use the collation.
type KeyComparer struct {
	collation Collation
}

// NewKeyComparer creates a comparer using the given collation for text keys.
// A nil collation selects DefaultLocale.
func NewKeyComparer(c Collation) KeyComparer {
	if c == nil {
		c, _ = NewLocaleCollation(DefaultLocale)
	}
	return KeyComparer{collation: c}
}

// Collation returns the text collation in use.
func (k KeyComparer) Collation() Collation { return k.collation }

// Compare returns -1, 0 or 1. Keys of unrelated types are ordered by type so
// that mis-typed input yields wrong diffs instead of a panic.
func (k KeyComparer) Compare(a, b any) int {
	switch x := a.(type) {
	case int64:
		switch y := b.(type) {
		case int64:
			return cmp.Compare(x, y)
		case float64:
			return cmp.Compare(float64(x), y)
		}
	case float64:
		switch y := b.(type) {
		case float64:
			return cmp.Compare(x, y)
		case int64:
			return cmp.Compare(x, float64(y))
		}
	case string:
		if y, ok := b.(string); ok {
			return k.collation.Compare(x, y)
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	case bool:
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			default:
				return 1
			}
		}
	}
	return cmp.Compare(typeRank(a), typeRank(b))
}

// Equal reports whether two keys denote the same key.
func (k KeyComparer) Equal(a, b any) bool {
	return k.Compare(a, b) == 0
}

func typeRank(v any) int {
	switch v.(type) {
	case bool:
		return 1
	case int64, float64:
		return 2
	case time.Time:
		return 3
	case string:
		return 4
	default:
		return 5
	}
}
