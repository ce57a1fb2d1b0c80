// Package page holds the presentation targets the status poller renders into.
//
// A [Document] is the in-process stand-in for the hosting page: a set of
// targets addressed by stable IDs. The poller writes the status label and
// the room list through [Document.Apply]; the dashboard server reads
// snapshots and streams changes to browsers via [Document.Subscribe].
//
// Subscribers receive changes via buffered channels with non-blocking sends
// (slow subscribers miss changes rather than block the poller). A browser
// that reconnects catches up from [Document.Snapshot].
package page
