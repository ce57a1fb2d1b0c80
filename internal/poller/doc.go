// Package poller fetches the status resource on a fixed interval.
//
// The main components are:
//
//   - [Client]: HTTP client wrapper with per-request timeout and size limit
//   - [Poller]: runs refresh cycles immediately and then on every tick
//   - [Cycle]: future for one refresh, resolved when the fetch and the
//     handler have finished
//   - [Handle]: owned lifecycle of a running poller, stopped with [Handle.Stop]
//
// Cycles are not serialized. A tick starts a new cycle even if the previous
// one is still in flight, and whichever cycle's handler runs last determines
// the rendered state.
package poller
