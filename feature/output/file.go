package output

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"feature-diff/core/diff"
)

// FileSink writes difference records as JSON lines to a local file. Lines
// go to a temporary file in the same directory, renamed on Commit.
type FileSink struct {
	path   string
	layout Layout
	file   *os.File
	w      *bufio.Writer
}

// NewFileSink creates the temporary file next to path.
func NewFileSink(path string, layout Layout) (*FileSink, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: failed to create directory %s: %w", diff.ErrOutputWrite, dir, err)
	}

	f, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create %s: %w", diff.ErrOutputWrite, path, err)
	}
	return &FileSink{path: path, layout: layout, file: f, w: bufio.NewWriter(f)}, nil
}

func (s *FileSink) Name() string { return "file:" + s.path }

func (s *FileSink) Write(_ context.Context, rec diff.DiffRecord) error {
	line, err := encodeLine(s.layout, rec)
	if err != nil {
		return err
	}
	_, err = s.w.Write(line)
	return err
}

// Commit flushes the lines and moves the file into place.
func (s *FileSink) Commit(context.Context) error {
	if err := s.w.Flush(); err != nil {
		s.Abort(context.Background())
		return fmt.Errorf("%w: failed to flush %s: %w", diff.ErrOutputWrite, s.path, err)
	}
	if err := s.file.Close(); err != nil {
		os.Remove(s.file.Name())
		return fmt.Errorf("%w: failed to close %s: %w", diff.ErrOutputWrite, s.path, err)
	}
	if err := os.Rename(s.file.Name(), s.path); err != nil {
		os.Remove(s.file.Name())
		return fmt.Errorf("%w: failed to move output to %s: %w", diff.ErrOutputWrite, s.path, err)
	}
	return nil
}

// Abort removes the temporary file.
func (s *FileSink) Abort(context.Context) error {
	s.file.Close()
	if err := os.Remove(s.file.Name()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
