package diff

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Reserved output column names that field maps may not use.
const (
	ColumnOIDA       = "OID_1"
	ColumnOIDB       = "OID_2"
	ColumnChangeType = "CHANGE_TYPE"
	ColumnShape      = "SHAPE"
)

// FieldMap pairs an output difference column with one field of each source.
type FieldMap struct {
	Output  string `yaml:"output" json:"output"`
	SourceA string `yaml:"source_1" json:"source_1"`
	SourceB string `yaml:"source_2" json:"source_2"`
}

// Correspondence is an ordered, immutable list of field maps.
// Its order defines the output column order.
type Correspondence struct {
	entries []FieldMap
}

// NewCorrespondence validates and stores the field maps.
// Output names must be unique (case-insensitively, as most table stores fold case)
// and may not collide with the reserved columns.
func NewCorrespondence(maps ...FieldMap) (*Correspondence, error) {
	seen := make(map[string]struct{}, len(maps))
	entries := make([]FieldMap, 0, len(maps))
	for i, m := range maps {
		m.Output = strings.TrimSpace(m.Output)
		m.SourceA = strings.TrimSpace(m.SourceA)
		m.SourceB = strings.TrimSpace(m.SourceB)

		if m.Output == "" || m.SourceA == "" || m.SourceB == "" {
			return nil, fmt.Errorf("%w: field map %d has an empty name (%q=%q:%q)", ErrConfiguration, i, m.Output, m.SourceA, m.SourceB)
		}

		folded := strings.ToUpper(m.Output)
		switch folded {
		case ColumnOIDA, ColumnOIDB, ColumnChangeType, ColumnShape:
			return nil, fmt.Errorf("%w: output field %q is reserved", ErrConfiguration, m.Output)
		}
		if _, dup := seen[folded]; dup {
			return nil, fmt.Errorf("%w: duplicate output field %q", ErrConfiguration, m.Output)
		}
		seen[folded] = struct{}{}
		entries = append(entries, m)
	}
	return &Correspondence{entries: entries}, nil
}

// Entries returns a copy of the field maps in order.
func (c *Correspondence) Entries() []FieldMap {
	if c == nil {
		return nil
	}
	out := make([]FieldMap, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of field maps. A nil correspondence is empty.
func (c *Correspondence) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// OutputNames returns the output column names in order.
func (c *Correspondence) OutputNames() []string {
	names := make([]string, 0, c.Len())
	for _, m := range c.Entries() {
		names = append(names, m.Output)
	}
	return names
}

// ParseFieldMap parses "OUT=fieldA:fieldB". "OUT=field" and a bare "field"
// use the same name on both sides.
func ParseFieldMap(s string) (FieldMap, error) {
	out, rest, hasEq := strings.Cut(s, "=")
	if !hasEq {
		name := strings.TrimSpace(s)
		return FieldMap{Output: name, SourceA: name, SourceB: name}, nil
	}
	a, b, hasColon := strings.Cut(rest, ":")
	if !hasColon {
		b = a
	}
	if strings.Contains(b, ":") {
		return FieldMap{}, fmt.Errorf("%w: malformed field map %q", ErrConfiguration, s)
	}
	return FieldMap{Output: out, SourceA: a, SourceB: b}, nil
}

// ParseCorrespondence builds a correspondence from field map expressions.
func ParseCorrespondence(exprs []string) (*Correspondence, error) {
	maps := make([]FieldMap, 0, len(exprs))
	for _, e := range exprs {
		m, err := ParseFieldMap(e)
		if err != nil {
			return nil, err
		}
		maps = append(maps, m)
	}
	return NewCorrespondence(maps...)
}

// mappingFile is the YAML layout accepted by LoadCorrespondenceFile:
//
//	fields:
//	  - output: NAME_DIFF
//	    source_1: ST_NAME
//	    source_2: STREETNAME
type mappingFile struct {
	Fields []FieldMap `yaml:"fields"`
}

// LoadCorrespondenceFile reads field maps from a YAML file.
func LoadCorrespondenceFile(path string) (*Correspondence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read mapping file: %v", ErrConfiguration, err)
	}

	var mf mappingFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("%w: parse mapping file %s: %v", ErrConfiguration, path, err)
	}

	return NewCorrespondence(mf.Fields...)
}
