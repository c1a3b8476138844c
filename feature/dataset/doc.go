// Package dataset resolves dataset handles into key-ordered diff sources.
//
// A handle names where a dataset lives:
//
//	db:<table>              a table of the configured database
//	file:<path>             a GeoJSON FeatureCollection on disk
//	s3://<bucket>/<object>  a GeoJSON FeatureCollection in object storage
//
// Tables are read in pages ordered by the key field. GeoJSON datasets are
// loaded in memory and sorted with the comparison's collation.
package dataset
