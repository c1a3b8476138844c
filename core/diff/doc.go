// Package diff computes difference records between two keyed feature datasets.
//
// Both inputs are read as streams sorted ascending by their key field and are
// walked in lock step as a sorted merge-join. Every key ends up in exactly one
// of these outcomes:
//
//   - Add: the key exists only in source 2
//   - Delete: the key exists only in source 1
//   - Null key 1 / Null key 2: the record has no key and cannot be matched
//   - Edit: the key exists in both and at least one mapped field or the
//     geometry differs
//
// Matched keys without differences produce no output. The number of emitted
// records is unbounded and never exceeds the combined input size.
//
// # Components
//
//   - Source: a forward-only, key-ordered record stream (see feature/dataset).
//   - Correspondence: the ordered output-field to source-field mapping.
//   - Classifier: the per-step decision table over the two current heads.
//   - EditComparer and ShapeComparator: field and geometry comparison for matches.
//   - Engine: the merge loop writing to a Sink.
//
// # Key ordering
//
// Text keys are ordered with an explicit Collation rather than the process
// locale. The default, also used when Options.Collation is nil, is the
// "en-US" Unicode collation; "binary" selects code point order. Both sources
// must be sorted with the collation the engine uses. The engine checks this
// as it reads: a key that sorts before the previous key of the same source
// fails the run with ErrSourceRead instead of producing Add/Delete pairs.
//
// # Usage
//
//	coll, _ := diff.NewCollation("en-US")
//	fields, _ := diff.ParseCorrespondence([]string{"NAME=ST_NAME:STREETNAME"})
//	shapes, _ := diff.NewShapeComparator(diff.DefaultXYTolerance)
//
//	engine := diff.NewEngine(diff.Options{Collation: coll, Fields: fields, Geometry: shapes})
//	summary, err := engine.Run(ctx, sourceA, sourceB, sink)
package diff
