package compare

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"feature-diff/core/diff"
	"feature-diff/core/storage"
	"feature-diff/feature/dataset"
	"feature-diff/feature/output"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ProgressFunc observes a running comparison. total is the combined number
// of input records, or 0 when a source cannot count its records.
type ProgressFunc func(consumed, total int64)

// Service runs comparisons and remembers their outcome.
type Service struct {
	opener  *dataset.Opener
	outputs *output.Resolver
	cfg     diff.Config
	logger  *zap.Logger
	history *history
}

// NewService creates a compare service. db and client may be nil when no
// handle of that kind is used.
func NewService(db *gorm.DB, client storage.Client, region string, cfg diff.Config, historySize int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		opener:  dataset.NewOpener(db, client, cfg, logger),
		outputs: output.NewResolver(db, client, region, cfg.PublishOnSuccess, logger),
		cfg:     cfg,
		logger:  logger,
		history: newHistory(historySize),
	}
}

// Get returns a finished or running comparison by id.
func (s *Service) Get(id string) (*Run, bool) {
	return s.history.get(id)
}

// List returns the remembered comparisons, newest first.
func (s *Service) List() []Run {
	return s.history.list()
}

// Compare runs a comparison to completion. Identical requests issued while
// one is running share its run. The returned run is also set on error,
// except for invalid requests.
func (s *Service) Compare(ctx context.Context, req Request, progress ProgressFunc) (*Run, error) {
	req = req.withDefaults(s.cfg)
	p, err := req.plan(s.cfg.Locale)
	if err != nil {
		return nil, err
	}

	result, err, shared := s.history.sf.Do(req.key(), func() (interface{}, error) {
		return s.run(ctx, p, progress)
	})
	if shared {
		s.logger.Debug("Joined running comparison", zap.String("output", p.output.String()))
	}
	run, _ := result.(*Run)
	return run, err
}

func (s *Service) run(ctx context.Context, p *plan, progress ProgressFunc) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		Status:    StatusRunning,
		Request:   p.req,
		StartedAt: time.Now(),
	}
	s.history.put(run)

	l := s.logger.With(zap.String("run_id", run.ID))
	l.Info("Comparison started",
		zap.String("source_1", p.sourceA.String()),
		zap.String("source_2", p.sourceB.String()),
		zap.String("output", p.output.String()),
	)

	err := s.execute(ctx, p, run, progress, l)

	run.FinishedAt = time.Now()
	if err != nil {
		run.Status = StatusFailed
		run.Error = err.Error()
		l.Error("Comparison failed", zap.Error(err), zap.Int64("emitted", run.Summary.Emitted))
	} else {
		run.Status = StatusCompleted
		l.Info("Comparison finished",
			zap.Int64("adds", run.Summary.Adds),
			zap.Int64("deletes", run.Summary.Deletes),
			zap.Int64("edits", run.Summary.Edits),
			zap.Int64("null_keys_1", run.Summary.NullKeysA),
			zap.Int64("null_keys_2", run.Summary.NullKeysB),
			zap.Duration("duration", run.FinishedAt.Sub(run.StartedAt)),
		)
	}
	s.history.put(run)
	return run, err
}

func (s *Service) execute(ctx context.Context, p *plan, run *Run, progress ProgressFunc, l *zap.Logger) (err error) {
	srcA, srcB, err := s.openSources(ctx, p, run)
	if err != nil {
		return err
	}
	defer srcA.Close()
	defer srcB.Close()

	if err := diff.CheckKeyTypes(run.SourceA.KeyType, run.SourceB.KeyType); err != nil {
		return err
	}
	if err := checkFields(p.fields, run.SourceA, run.SourceB); err != nil {
		return err
	}
	if err := checkTableOrder(p.req.Locale, run.SourceA, run.SourceB); err != nil {
		return err
	}

	var geometry diff.GeometryComparator
	if p.req.Shape {
		if run.SourceA.GeometryField == "" || run.SourceB.GeometryField == "" {
			l.Warn("Shape comparison disabled, a dataset has no geometry field")
		} else if geometry, err = diff.NewShapeComparator(p.tolerance); err != nil {
			return err
		}
	}
	run.Shape = geometry != nil

	collation, err := diff.NewCollation(p.req.Locale)
	if err != nil {
		return err
	}

	sink, err := s.outputs.Open(ctx, p.output, output.NewLayout(p.fields, run.Shape))
	if err != nil {
		return err
	}

	opts := diff.Options{
		Collation: collation,
		Fields:    p.fields,
		Geometry:  geometry,
		Logger:    l,
	}
	if progress != nil {
		total := s.total(ctx, l, srcA, srcB)
		opts.Progress = diff.ProgressFunc(func(n int64) { progress(n, total) })
	}

	run.Summary, err = diff.NewEngine(opts).Run(ctx, srcA, srcB, sink)
	if err != nil {
		if abortErr := sink.Abort(ctx); abortErr != nil {
			l.Warn("Failed to discard output", zap.String("output", sink.Name()), zap.Error(abortErr))
		}
		return err
	}
	return sink.Commit(ctx)
}

// openSources prepares both datasets concurrently. Each source sorts with
// its own collator since collators are not safe for concurrent use.
func (s *Service) openSources(ctx context.Context, p *plan, run *Run) (diff.Source, diff.Source, error) {
	var srcA, srcB diff.Source

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		keys, err := s.keyComparer(p.req.Locale)
		if err != nil {
			return err
		}
		srcA, run.SourceA, err = s.opener.Open(gctx, p.sourceA, p.req.KeyA, keys)
		return err
	})
	g.Go(func() error {
		keys, err := s.keyComparer(p.req.Locale)
		if err != nil {
			return err
		}
		srcB, run.SourceB, err = s.opener.Open(gctx, p.sourceB, p.req.KeyB, keys)
		return err
	})

	if err := g.Wait(); err != nil {
		for _, src := range []diff.Source{srcA, srcB} {
			if src != nil {
				src.Close()
			}
		}
		return nil, nil, err
	}
	return srcA, srcB, nil
}

func (s *Service) keyComparer(locale string) (diff.KeyComparer, error) {
	collation, err := diff.NewCollation(locale)
	if err != nil {
		return diff.KeyComparer{}, err
	}
	return diff.NewKeyComparer(collation), nil
}

// total returns the combined record count, or 0 when unknown.
func (s *Service) total(ctx context.Context, l *zap.Logger, sources ...diff.Source) int64 {
	var total int64
	for _, src := range sources {
		counter, ok := src.(diff.Counter)
		if !ok {
			return 0
		}
		n, err := counter.Count(ctx)
		if err != nil {
			l.Warn("Failed to count records, progress percentage disabled", zap.String("source", src.Name()), zap.Error(err))
			return 0
		}
		total += n
	}
	return total
}

// checkTableOrder rejects a non-binary collation when a table has a text
// key, because tables are read in code point order.
func checkTableOrder(locale string, descs ...dataset.Descriptor) error {
	if strings.EqualFold(strings.TrimSpace(locale), diff.BinaryLocale) {
		return nil
	}
	for _, d := range descs {
		if d.Handle.Kind == dataset.KindTable && d.KeyType == diff.KeyText {
			return fmt.Errorf("%w: %s has text key %s, which tables serve in code point order; use locale %q instead of %q",
				diff.ErrConfiguration, d.Handle, d.KeyField, diff.BinaryLocale, locale)
		}
	}
	return nil
}

// checkFields verifies that every mapped field exists in its dataset and
// names exactly one field. Datasets without any known field (empty
// collections) are not checked.
func checkFields(fields *diff.Correspondence, descA, descB dataset.Descriptor) error {
	var errs []error
	check := func(desc dataset.Descriptor, name, side string) {
		if len(desc.Fields) == 0 {
			return
		}
		switch {
		case !desc.HasField(name):
			errs = append(errs, fmt.Errorf("%w: field %q not found in %s %s", diff.ErrConfiguration, name, side, desc.Handle))
		case desc.AmbiguousField(name):
			errs = append(errs, fmt.Errorf("%w: field %q matches several fields of %s %s, use the exact name", diff.ErrConfiguration, name, side, desc.Handle))
		}
	}
	for _, m := range fields.Entries() {
		check(descA, m.SourceA, "source 1")
		check(descB, m.SourceB, "source 2")
	}
	return errors.Join(errs...)
}
