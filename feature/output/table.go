package output

import (
	"context"
	"fmt"
	"strings"

	"feature-diff/core/database"
	"feature-diff/core/diff"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// newTempSuffix generates the suffix of staging table names.
var newTempSuffix = func() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// TableSink writes difference rows into a database table. The table is
// dropped and recreated on every run. When publishing on success, rows go
// to a staging table "<name>_tmp_<id>" that Commit renames to the final name.
type TableSink struct {
	db      *gorm.DB
	layout  Layout
	table   string
	staging string
	insert  string
	logger  *zap.Logger
}

// NewTableSink creates the output table (or its staging table).
func NewTableSink(ctx context.Context, db *gorm.DB, table string, layout Layout, publish bool, logger *zap.Logger) (*TableSink, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &TableSink{db: db, layout: layout, table: table, staging: table, logger: logger}
	if publish {
		s.staging = fmt.Sprintf("%s_tmp_%s", table, newTempSuffix())
	}

	if err := s.exec(ctx, "DROP TABLE IF EXISTS "+s.quote(s.staging)); err != nil {
		return nil, fmt.Errorf("%w: failed to drop %s: %w", diff.ErrOutputWrite, s.staging, err)
	}
	if err := s.exec(ctx, s.createStatement()); err != nil {
		return nil, fmt.Errorf("%w: failed to create %s: %w", diff.ErrOutputWrite, s.staging, err)
	}

	cols := layout.Columns()
	quoted := make([]string, len(cols))
	for i, col := range cols {
		quoted[i] = s.quote(col)
	}
	s.insert = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		s.quote(s.staging),
		strings.Join(quoted, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "))

	logger.Debug("Created output table", zap.String("table", s.staging))
	return s, nil
}

func (s *TableSink) quote(name string) string { return database.QuoteIdent(s.db, name) }

func (s *TableSink) exec(ctx context.Context, sql string, values ...any) error {
	return s.db.WithContext(ctx).Exec(sql, values...).Error
}

func (s *TableSink) createStatement() string {
	defs := []string{
		s.quote(diff.ColumnOIDA) + " BIGINT NULL",
		s.quote(diff.ColumnOIDB) + " BIGINT NULL",
		s.quote(diff.ColumnChangeType) + " VARCHAR(10) NOT NULL",
	}
	for _, f := range s.layout.Fields {
		defs = append(defs, s.quote(f)+" SMALLINT NULL")
	}
	if s.layout.Shape {
		defs = append(defs, s.quote(diff.ColumnShape)+" SMALLINT NULL")
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", s.quote(s.staging), strings.Join(defs, ", "))
}

func (s *TableSink) Name() string { return "db:" + s.table }

// Write inserts one difference row.
func (s *TableSink) Write(ctx context.Context, rec diff.DiffRecord) error {
	values, err := s.layout.Values(rec)
	if err != nil {
		return err
	}
	return s.exec(ctx, s.insert, values...)
}

// Commit replaces the output table with the staging table.
func (s *TableSink) Commit(ctx context.Context) error {
	if s.staging == s.table {
		return nil
	}

	if err := s.exec(ctx, "DROP TABLE IF EXISTS "+s.quote(s.table)); err != nil {
		return fmt.Errorf("%w: failed to drop %s: %w", diff.ErrOutputWrite, s.table, err)
	}

	var rename string
	if s.db.Dialector.Name() == database.DriverMySQL {
		rename = fmt.Sprintf("RENAME TABLE %s TO %s", s.quote(s.staging), s.quote(s.table))
	} else {
		rename = fmt.Sprintf("ALTER TABLE %s RENAME TO %s", s.quote(s.staging), s.quote(s.table))
	}
	if err := s.exec(ctx, rename); err != nil {
		return fmt.Errorf("%w: failed to rename %s to %s: %w", diff.ErrOutputWrite, s.staging, s.table, err)
	}

	s.logger.Debug("Published output table", zap.String("from", s.staging), zap.String("table", s.table))
	return nil
}

// Abort drops the staging table. Without staging the partial table is kept.
func (s *TableSink) Abort(ctx context.Context) error {
	if s.staging == s.table {
		return nil
	}
	// The run context may already be cancelled.
	if err := s.exec(context.WithoutCancel(ctx), "DROP TABLE IF EXISTS "+s.quote(s.staging)); err != nil {
		return fmt.Errorf("failed to drop %s: %w", s.staging, err)
	}
	return nil
}
