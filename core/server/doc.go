// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines
// the configuration structure for the listener port, the API key protecting
// every route, and the number of finished comparison runs kept for lookup.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server
// settings and by the compare feature to size its run history.
package server
