// Package compare runs dataset comparisons.
//
// A Request names two datasets, their key fields, the field maps and the
// output. The Service opens both datasets concurrently, checks that their
// key types agree, streams them through the diff engine into the output
// and keeps the outcome of recent runs in memory.
//
// # HTTP API
//
//	POST /compare       run a comparison, returns the Run
//	GET  /compare       list recent runs
//	GET  /compare/:id   get one run
package compare
