package compare

import (
	"encoding/json"
	"fmt"
	"time"

	"feature-diff/core/diff"
	"feature-diff/feature/dataset"
)

// Request describes one comparison.
type Request struct {
	// SourceA is the handle of the first (older) dataset.
	SourceA string `json:"source_1" example:"db:streets_2023"`
	// SourceB is the handle of the second (newer) dataset.
	SourceB string `json:"source_2" example:"db:streets_2024"`
	// KeyA is the key field of SourceA.
	KeyA string `json:"key_1" example:"STREET_ID"`
	// KeyB is the key field of SourceB. Empty means KeyA.
	KeyB string `json:"key_2,omitempty"`
	// Fields maps output flag columns to source fields.
	Fields []diff.FieldMap `json:"fields,omitempty"`
	// Shape enables the geometry comparison.
	Shape bool `json:"shape"`
	// Output is the output handle. Empty means the configured default.
	Output string `json:"output,omitempty" example:"db:Differences"`
	// Locale selects the text key collation. Empty means "binary" when either
	// dataset is a table, since tables serve text keys in code point order,
	// and the configured default otherwise.
	Locale string `json:"locale,omitempty" example:"binary"`
	// XYTolerance overrides the configured shape tolerance.
	XYTolerance *float64 `json:"xy_tolerance,omitempty"`
}

// withDefaults fills the empty settings from cfg.
func (r Request) withDefaults(cfg diff.Config) Request {
	if r.KeyB == "" {
		r.KeyB = r.KeyA
	}
	if r.Output == "" {
		r.Output = cfg.Output
	}
	if r.XYTolerance == nil {
		tol := cfg.XYTolerance
		r.XYTolerance = &tol
	}
	return r
}

// key identifies identical requests.
func (r Request) key() string {
	data, _ := json.Marshal(r)
	return string(data)
}

// plan is a validated request.
type plan struct {
	req       Request
	sourceA   dataset.Handle
	sourceB   dataset.Handle
	output    dataset.Handle
	fields    *diff.Correspondence
	tolerance float64
}

// plan validates the request. defaultLocale applies to runs that read no table.
func (r Request) plan(defaultLocale string) (*plan, error) {
	p := &plan{req: r, tolerance: *r.XYTolerance}

	var err error
	if p.sourceA, err = dataset.ParseHandle(r.SourceA); err != nil {
		return nil, fmt.Errorf("source 1: %w", err)
	}
	if p.sourceB, err = dataset.ParseHandle(r.SourceB); err != nil {
		return nil, fmt.Errorf("source 2: %w", err)
	}
	if p.output, err = dataset.ParseHandle(r.Output); err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	if p.req.Locale == "" {
		p.req.Locale = defaultLocale
		if p.sourceA.Kind == dataset.KindTable || p.sourceB.Kind == dataset.KindTable {
			p.req.Locale = diff.BinaryLocale
		}
	}
	if _, err := diff.NewCollation(p.req.Locale); err != nil {
		return nil, err
	}
	if p.output.Same(p.sourceA) || p.output.Same(p.sourceB) {
		return nil, fmt.Errorf("%w: output %s is also an input", diff.ErrConfiguration, p.output)
	}
	if r.KeyA == "" {
		return nil, fmt.Errorf("%w: key field of source 1 is required", diff.ErrConfiguration)
	}
	if p.fields, err = diff.NewCorrespondence(r.Fields...); err != nil {
		return nil, err
	}
	if p.tolerance < 0 {
		return nil, fmt.Errorf("%w: negative xy tolerance %v", diff.ErrConfiguration, p.tolerance)
	}
	return p, nil
}

// Status is the state of a run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Run is the record of one comparison.
type Run struct {
	ID         string             `json:"id"`
	Status     Status             `json:"status"`
	Request    Request            `json:"request"`
	SourceA    dataset.Descriptor `json:"source_1"`
	SourceB    dataset.Descriptor `json:"source_2"`
	Shape      bool               `json:"shape"`
	Summary    diff.Summary       `json:"summary"`
	Error      string             `json:"error,omitempty"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at,omitempty"`
}
