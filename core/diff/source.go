package diff

import (
	"context"
	"fmt"
)

// Source yields the records of one dataset in ascending key order, as
// ordered by the engine's KeyComparer. Null keys may appear anywhere. The
// engine fails with ErrSourceRead when a key sorts before its predecessor.
// A Source is forward-only and is consumed by a single run.
type Source interface {
	// Name identifies the source in errors and logs.
	Name() string

	// Next returns the next record. ok is false once the source is exhausted.
	Next(ctx context.Context) (rec Record, ok bool, err error)

	// Close releases the underlying resources.
	Close() error
}

// Counter is implemented by sources that can report their size up front.
// It is used for percent progress only.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// Head is the record at a cursor position, or End.
type Head struct {
	rec Record
	ok  bool
}

// End is the head of an exhausted source.
var End = Head{}

// Some wraps a record as a head.
func Some(r Record) Head { return Head{rec: r, ok: true} }

// Record returns the head record and whether the head is not End.
func (h Head) Record() (Record, bool) { return h.rec, h.ok }

// Exhausted reports whether the head is End.
func (h Head) Exhausted() bool { return !h.ok }

// KeyIsNull reports whether the head holds a record with a null key.
func (h Head) KeyIsNull() bool { return h.ok && h.rec.Key == nil }

// cursor holds the current unconsumed record of a source. It rejects a
// non-null key that sorts before the previous non-null key.
type cursor struct {
	src  Source
	keys KeyComparer
	head Head

	last    any
	hasLast bool
}

func newCursor(ctx context.Context, src Source, keys KeyComparer) (*cursor, error) {
	c := &cursor{src: src, keys: keys}
	// Prime the head; a fresh cursor is positioned on the first record.
	if err := c.fetch(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *cursor) Current() Head { return c.head }

// Advance moves to the next record. Advancing an exhausted cursor is a no-op.
func (c *cursor) Advance(ctx context.Context) error {
	if c.head.Exhausted() {
		return nil
	}
	return c.fetch(ctx)
}

func (c *cursor) fetch(ctx context.Context) error {
	rec, ok, err := c.src.Next(ctx)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSourceRead, c.src.Name(), err)
	}
	if !ok {
		c.head = End
		return nil
	}

	if rec.Key != nil {
		if c.hasLast && c.keys.Compare(rec.Key, c.last) < 0 {
			return fmt.Errorf("%w: %s: key %v (oid %d) sorts before the previous key %v under collation %s",
				ErrSourceRead, c.src.Name(), rec.Key, rec.ID, c.last, c.keys.Collation().Name())
		}
		c.last, c.hasLast = rec.Key, true
	}
	c.head = Some(rec)
	return nil
}
