package courtboard

import (
	"time"

	"github.com/jpalmerr/courtboard/internal/page"
	"github.com/jpalmerr/courtboard/internal/poller"
	"github.com/jpalmerr/courtboard/internal/schema"
)

// Schema selects the payload shape of the status resource.
type Schema = schema.Schema

const (
	// SchemaDaily reads {"today_available": [...], "tomorrow_available": [...]}.
	SchemaDaily = schema.Daily

	// SchemaFlat reads {"available": bool, "rooms": [...]}.
	SchemaFlat = schema.Flat
)

// ParseSchema maps "daily" or "flat" to a [Schema]; the empty string
// selects [SchemaDaily].
func ParseSchema(s string) (Schema, error) {
	return schema.Parse(s)
}

var (
	// ErrNetworkFailure is wrapped by cycle errors caused by the fetch:
	// transport errors, non-2xx responses and unreadable bodies.
	ErrNetworkFailure = poller.ErrNetwork

	// ErrParseFailure is wrapped by cycle errors caused by a body that is
	// not JSON or does not match the configured schema.
	ErrParseFailure = schema.ErrParse

	// ErrTargetMissing is wrapped when a presentation target is absent at
	// render time.
	ErrTargetMissing = page.ErrTargetMissing
)

// RenderResult describes what a successful cycle wrote to the targets.
type RenderResult struct {
	// CycleID correlates the result with the cycle's log lines.
	CycleID string

	// Available is true when the label signals free rooms.
	Available bool

	// Label is the localized status text.
	Label string

	// Color is the label colour, "green" or "red".
	Color string

	// ListHTML is the markup written to the list target; empty when cleared.
	ListHTML string

	// RoomCount is the number of rooms listed, summed over days.
	RoomCount int

	// Groups holds the listed rooms by day, today first. Flat payloads
	// produce a single group with an empty Day.
	Groups []RoomGroup

	RenderedAt time.Time
}

// RoomGroup is a list of available rooms for one day.
type RoomGroup = schema.Group

// Cycle is the future of one refresh. See [Board.Refresh].
type Cycle = poller.Cycle[RenderResult]

// Handle owns a running polling loop. See [Board.StartPolling].
type Handle = poller.Handle

// Target is the current state of one presentation target.
type Target = page.Target
