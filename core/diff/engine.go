package diff

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Sink receives difference records in emission order.
type Sink interface {
	Write(ctx context.Context, rec DiffRecord) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, rec DiffRecord) error

func (f SinkFunc) Write(ctx context.Context, rec DiffRecord) error { return f(ctx, rec) }

// Progress observes the number of input records consumed so far.
type Progress interface {
	Consumed(n int64)
}

// ProgressFunc adapts a function to the Progress interface.
type ProgressFunc func(n int64)

func (f ProgressFunc) Consumed(n int64) { f(n) }

// Options configures an Engine.
type Options struct {
	// Collation orders text keys. Nil selects DefaultLocale.
	Collation Collation

	// Fields maps output difference columns to source fields. Nil compares no fields.
	Fields *Correspondence

	// Geometry enables the shape comparison when not nil.
	Geometry GeometryComparator

	// Progress is notified after every merge step when not nil.
	Progress Progress

	// Logger receives debug output. Nil disables logging.
	Logger *zap.Logger
}

// Engine walks two key-ordered sources in lock step and writes a
// DiffRecord for every added, deleted, null-key or edited key.
type Engine struct {
	classifier *Classifier
	comparer   *EditComparer
	progress   Progress
	logger     *zap.Logger
}

// NewEngine creates an engine from options.
func NewEngine(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		classifier: NewClassifier(NewKeyComparer(opts.Collation)),
		comparer:   NewEditComparer(opts.Fields, opts.Geometry),
		progress:   opts.Progress,
		logger:     logger,
	}
}

// Run compares a and b and writes the differences to sink. The context is
// checked once per merge step; on cancellation Run returns the context error
// and the summary of the partial output already written. Run does not close
// the sources.
func (e *Engine) Run(ctx context.Context, a, b Source, sink Sink) (Summary, error) {
	var summary Summary

	curA, err := newCursor(ctx, a, e.classifier.keys)
	if err != nil {
		return summary, err
	}
	curB, err := newCursor(ctx, b, e.classifier.keys)
	if err != nil {
		return summary, err
	}

	for !curA.Current().Exhausted() || !curB.Current().Exhausted() {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		headA, headB := curA.Current(), curB.Current()
		disp := e.classifier.Classify(headA, headB)

		rec, emit := e.build(disp, headA, headB)
		if emit {
			if err := sink.Write(ctx, rec); err != nil {
				return summary, fmt.Errorf("%w: %s (oid_1=%s, oid_2=%s): %w",
					ErrOutputWrite, rec.ChangeType, formatOID(rec.OIDA), formatOID(rec.OIDB), err)
			}
			summary.count(rec.ChangeType)
		} else {
			summary.count(ChangeNone)
		}

		if disp.AdvanceA {
			if err := curA.Advance(ctx); err != nil {
				return summary, err
			}
			summary.Consumed++
		}
		if disp.AdvanceB {
			if err := curB.Advance(ctx); err != nil {
				return summary, err
			}
			summary.Consumed++
		}
		summary.Iterations++

		if e.progress != nil {
			e.progress.Consumed(summary.Consumed)
		}
	}

	e.logger.Debug("Comparison finished",
		zap.Int64("consumed", summary.Consumed),
		zap.Int64("emitted", summary.Emitted),
	)

	return summary, nil
}

// build creates the record for a disposition. emit is false for a matched
// key without differences.
func (e *Engine) build(disp Disposition, headA, headB Head) (rec DiffRecord, emit bool) {
	recA, _ := headA.Record()
	recB, _ := headB.Record()

	switch disp.Type {
	case ChangeAdd, ChangeNullKeyB:
		return DiffRecord{OIDB: ptr(recB.ID), ChangeType: disp.Type}, true
	case ChangeDelete, ChangeNullKeyA:
		return DiffRecord{OIDA: ptr(recA.ID), ChangeType: disp.Type}, true
	case ChangeEdit:
		rec, edited := e.comparer.Compare(recA, recB)
		if !edited {
			e.logger.Debug("Matched key unchanged", zap.Any("key", recA.Key))
		}
		return rec, edited
	}
	return DiffRecord{}, false
}

func formatOID(oid *int64) string {
	if oid == nil {
		return "null"
	}
	return fmt.Sprintf("%d", *oid)
}
