// Package courtboard polls a room-availability status resource and renders
// the result into two presentation targets: a status label and a room list.
//
// # Quick Start
//
//	b, _ := courtboard.New(
//	    courtboard.WithStatusURL("http://localhost:8081/api/status"),
//	)
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	b.Start(ctx) // polls and serves the dashboard until ctx is cancelled
//
// For embedding without the dashboard server, [Board.StartPolling] returns a
// [Handle] that is stopped explicitly, and [Board.Refresh] runs a single
// cycle and returns its [Cycle] future.
//
// # Schemas
//
// The status resource has served two payload shapes. A board reads exactly
// one of them:
//
//   - [SchemaDaily] (default): {"today_available": [...], "tomorrow_available": [...]},
//     polled every 15 seconds
//   - [SchemaFlat]: {"available": true, "rooms": [...]}, polled every 30 seconds
//
// # Errors
//
// A cycle fails with [ErrNetworkFailure] when the resource cannot be fetched
// and with [ErrParseFailure] when the body does not match the schema. Failed
// cycles are logged and leave the targets untouched; polling continues on
// the normal cadence.
//
// # Architecture
//
//   - internal/poller: HTTP client, refresh cycles and the polling loop
//   - internal/schema: payload decoding
//   - internal/render: localized label and list markup
//   - internal/page: presentation targets with pub/sub
//   - internal/server: dashboard and Server-Sent Events
//   - dashboard: embedded web UI assets
package courtboard
