// Package middleware groups the Fiber middleware shared by the HTTP API.
//
// Each middleware lives in its own subpackage:
//
//   - rayid tags every request with an X-Ray-ID, reusing the caller's value
//     when present, and stores it in the request locals for logger.WithRayID.
//   - auth rejects requests that do not carry the configured API key in the
//     X-API-Key header or the api_key query parameter. An empty key disables it.
//
// The start command installs rayid first, then the request log, then auth.
// Swagger routes are registered before auth and stay public.
package middleware
