// Package server serves the dashboard page and mirrors the presentation
// targets to browsers.
//
// Routes:
//
//   - GET /: the embedded dashboard page
//   - GET /api/targets: current targets as JSON
//   - GET /api/sse: Server-Sent Events stream of target changes
package server
