// Package utils provides common utility functions for the feature-diff application.
// It includes helpers that normalize values coming from SQL drivers and JSON
// decoders (integer widths, byte slices, booleans) so datasets and the
// comparison engine see a small, predictable set of types.
package utils
