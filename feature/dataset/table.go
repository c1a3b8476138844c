package dataset

import (
	"context"
	"fmt"

	"feature-diff/core/database"
	"feature-diff/core/diff"
	"feature-diff/core/utils"

	"github.com/paulmach/orb"
	"gorm.io/gorm"
)

// TableSource streams the rows of a database table ordered by the key field.
// Rows are fetched in pages ordered by key then object id, so no cursor
// stays open between calls to Next. Text keys are ordered by code point
// whatever the column collation, so runs reading tables compare text keys
// with the binary collation.
type TableSource struct {
	db       *gorm.DB
	desc     Descriptor
	pageSize int

	page    []diff.Record
	pos     int
	offset  int
	drained bool
}

// NewTableSource creates a source for a described table.
func NewTableSource(db *gorm.DB, desc Descriptor, pageSize int) *TableSource {
	if pageSize <= 0 {
		pageSize = 1000
	}
	return &TableSource{db: db, desc: desc, pageSize: pageSize}
}

// describeTable inspects a table and resolves its object id, key and shape columns.
func describeTable(db *gorm.DB, h Handle, keyField string, cfg diff.Config) (Descriptor, error) {
	columns, err := database.GetTableColumns(db, h.Table)
	if err != nil {
		return Descriptor{}, fmt.Errorf("%w: %s: %w", diff.ErrSourceRead, h, err)
	}
	if len(columns) == 0 {
		return Descriptor{}, fmt.Errorf("%w: %s: table %s not found", diff.ErrSourceRead, h, h.Table)
	}

	key, ok := database.FindColumn(columns, keyField)
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s: key field %q not found", diff.ErrConfiguration, h, keyField)
	}

	oid, ok := database.PrimaryKey(columns)
	if !ok {
		oid, ok = database.FindColumn(columns, cfg.OIDField)
	}
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s: no primary key and no %q field for object ids", diff.ErrConfiguration, h, cfg.OIDField)
	}

	desc := Descriptor{
		Handle:   h,
		OIDField: oid.Field,
		KeyField: key.Field,
		KeyType:  KeyTypeOf(key.Type),
	}
	for _, col := range columns {
		desc.Fields = append(desc.Fields, col.Field)
	}
	if geom, ok := database.FindColumn(columns, cfg.GeometryField); ok {
		desc.GeometryField = geom.Field
	}
	return desc, nil
}

func (s *TableSource) Name() string { return s.desc.Handle.String() }

// Count returns the number of rows in the table.
func (s *TableSource) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Table(s.desc.Handle.Table).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", s.desc.Handle.Table, err)
	}
	return n, nil
}

// fetch loads the next page of rows.
func (s *TableSource) fetch(ctx context.Context) error {
	key := database.QuoteIdent(s.db, s.desc.KeyField)
	if s.desc.KeyType == diff.KeyText {
		key = database.CodePointOrder(s.db, s.desc.KeyField)
	}
	query := fmt.Sprintf("SELECT * FROM %s ORDER BY %s ASC, %s ASC LIMIT %d OFFSET %d",
		database.QuoteIdent(s.db, s.desc.Handle.Table),
		key,
		database.QuoteIdent(s.db, s.desc.OIDField),
		s.pageSize, s.offset)

	rows, err := s.db.WithContext(ctx).Raw(query).Rows()
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", s.desc.Handle.Table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("failed to get columns: %w", err)
	}

	idx := columnIndex{oid: -1, key: -1, geom: -1}
	for i, col := range columns {
		if col == s.desc.OIDField {
			idx.oid = i
		}
		if col == s.desc.KeyField {
			idx.key = i
		}
		if s.desc.GeometryField != "" && col == s.desc.GeometryField {
			idx.geom = i
		}
	}
	if idx.oid < 0 || idx.key < 0 {
		return fmt.Errorf("query on %s did not return %s and %s", s.desc.Handle.Table, s.desc.OIDField, s.desc.KeyField)
	}

	s.page = s.page[:0]
	s.pos = 0
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return fmt.Errorf("failed to scan row: %w", err)
		}

		rec, err := s.record(columns, idx, values)
		if err != nil {
			return err
		}
		s.page = append(s.page, rec)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read row: %w", err)
	}

	s.offset += len(s.page)
	if len(s.page) < s.pageSize {
		s.drained = true
	}
	return nil
}

// Next returns the next row as a record.
func (s *TableSource) Next(ctx context.Context) (diff.Record, bool, error) {
	if s.pos >= len(s.page) {
		if s.drained {
			return diff.Record{}, false, nil
		}
		if err := s.fetch(ctx); err != nil {
			return diff.Record{}, false, err
		}
		if len(s.page) == 0 {
			return diff.Record{}, false, nil
		}
	}

	rec := s.page[s.pos]
	s.pos++
	return rec, true, nil
}

type columnIndex struct {
	oid, key, geom int
}

func (s *TableSource) record(columns []string, idx columnIndex, values []any) (diff.Record, error) {
	id, ok := utils.ToInt64(values[idx.oid])
	if !ok {
		return diff.Record{}, fmt.Errorf("row has invalid %s %v", s.desc.OIDField, values[idx.oid])
	}

	key, err := normalizeKey(values[idx.key], s.desc.KeyType)
	if err != nil {
		return diff.Record{}, fmt.Errorf("%s %d: %w", s.desc.OIDField, id, err)
	}

	rec := diff.Record{
		ID:     id,
		Key:    key,
		Fields: make(map[string]any, len(columns)),
	}
	for i, col := range columns {
		if i == idx.geom {
			continue
		}
		rec.Fields[col] = utils.Normalize(values[i])
	}

	if idx.geom >= 0 {
		var g orb.Geometry
		if g, err = decodeGeometry(values[idx.geom], s.db.Dialector.Name() == database.DriverMySQL); err != nil {
			return diff.Record{}, fmt.Errorf("%s %d: %s: %w", s.desc.OIDField, id, s.desc.GeometryField, err)
		}
		rec.Geometry = g
	}

	return rec, nil
}

// Close drops the buffered page.
func (s *TableSource) Close() error {
	s.page = nil
	s.drained = true
	return nil
}
