package dataset

import (
	"context"
	"fmt"
	"sort"

	"feature-diff/core/diff"
	"feature-diff/core/utils"

	"github.com/paulmach/orb/geojson"
)

// geometryMember names the geometry of a GeoJSON feature in descriptors.
const geometryMember = "geometry"

// GeoJSONSource serves the features of a GeoJSON FeatureCollection sorted by
// the key property. Features without the key property have a null key and
// are served first, as SQL cursors do.
type GeoJSONSource struct {
	desc    Descriptor
	records []diff.Record
	pos     int
}

// NewGeoJSONSource parses a FeatureCollection and orders its features by
// keyField using keys. Object ids come from the configured OID property,
// then the feature id, then the feature position (1-based).
func NewGeoJSONSource(h Handle, data []byte, keyField string, cfg diff.Config, keys diff.KeyComparer) (*GeoJSONSource, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: invalid GeoJSON: %w", diff.ErrSourceRead, h, err)
	}

	keyType, found := inferKeyType(fc.Features, keyField)
	if !found && len(fc.Features) > 0 {
		return nil, fmt.Errorf("%w: %s: key field %q not found", diff.ErrConfiguration, h, keyField)
	}

	names := make(map[string]struct{})
	records := make([]diff.Record, 0, len(fc.Features))
	for i, f := range fc.Features {
		id, ok := utils.ToInt64(f.Properties[cfg.OIDField])
		if !ok {
			id, ok = utils.ToInt64(f.ID)
		}
		if !ok {
			id = int64(i + 1)
		}

		key, err := normalizeKey(f.Properties[keyField], keyType)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: feature %d: %w", diff.ErrSourceRead, h, id, err)
		}

		fields := make(map[string]any, len(f.Properties))
		for name, v := range f.Properties {
			fields[name] = v
			names[name] = struct{}{}
		}

		records = append(records, diff.Record{
			ID:       id,
			Key:      key,
			Fields:   fields,
			Geometry: f.Geometry,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		ki, kj := records[i].Key, records[j].Key
		if ki == nil || kj == nil {
			return ki == nil && kj != nil
		}
		return keys.Compare(ki, kj) < 0
	})

	fieldNames := make([]string, 0, len(names))
	for name := range names {
		fieldNames = append(fieldNames, name)
	}
	sort.Strings(fieldNames)

	return &GeoJSONSource{
		desc: Descriptor{
			Handle:        h,
			OIDField:      cfg.OIDField,
			KeyField:      keyField,
			KeyType:       keyType,
			GeometryField: geometryMember,
			Fields:        fieldNames,
		},
		records: records,
	}, nil
}

// inferKeyType derives the key type from the non-null key values.
// found is false when no feature carries the key property.
func inferKeyType(features []*geojson.Feature, keyField string) (keyType diff.KeyType, found bool) {
	for _, f := range features {
		v, ok := f.Properties[keyField]
		if !ok {
			continue
		}
		found = true
		if v == nil {
			continue
		}

		var t diff.KeyType
		switch v.(type) {
		case float64, int, int64:
			t = diff.KeyNumeric
		case string:
			t = diff.KeyText
		default:
			t = diff.KeyOther
		}

		if keyType == "" {
			keyType = t
		} else if keyType != t {
			return diff.KeyOther, true
		}
	}
	return keyType, found
}

func (s *GeoJSONSource) Name() string { return s.desc.Handle.String() }

// Descriptor returns the resolved dataset description.
func (s *GeoJSONSource) Descriptor() Descriptor { return s.desc }

// Count returns the number of features.
func (s *GeoJSONSource) Count(context.Context) (int64, error) {
	return int64(len(s.records)), nil
}

// Next returns the next feature in key order.
func (s *GeoJSONSource) Next(ctx context.Context) (diff.Record, bool, error) {
	if err := ctx.Err(); err != nil {
		return diff.Record{}, false, err
	}
	if s.pos >= len(s.records) {
		return diff.Record{}, false, nil
	}
	rec := s.records[s.pos]
	s.pos++
	return rec, true, nil
}

func (s *GeoJSONSource) Close() error { return nil }
