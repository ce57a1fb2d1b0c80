// Package schema decodes status resource payloads into [Availability].
//
// Two payload shapes have been served for the same endpoint:
//
//   - [Daily]: {"today_available": [...], "tomorrow_available": [...]}
//   - [Flat]:  {"available": true, "rooms": [...]}
//
// A board is configured with exactly one of them. Payloads are never probed
// against both shapes; a payload that does not match the configured shape is
// a parse failure.
package schema
