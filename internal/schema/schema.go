package schema

import (
	"fmt"
	"strings"
	"time"
)

// Schema identifies the payload shape served by the status resource.
type Schema string

const (
	// Daily is the canonical shape: available rooms grouped by day.
	Daily Schema = "daily"

	// Flat is the legacy shape: a single availability flag plus a room list.
	Flat Schema = "flat"
)

// default refresh cadence per schema, matching what each revision of the
// widget shipped with
const (
	dailyInterval = 15 * time.Second
	flatInterval  = 30 * time.Second
)

// Parse maps a configuration string to a [Schema].
// The empty string selects [Daily].
func Parse(s string) (Schema, error) {
	switch Schema(strings.ToLower(strings.TrimSpace(s))) {
	case "", Daily:
		return Daily, nil
	case Flat:
		return Flat, nil
	default:
		return "", fmt.Errorf("unknown schema %q (expected %q or %q)", s, Daily, Flat)
	}
}

// DefaultInterval returns the polling interval used when none is configured.
func (s Schema) DefaultInterval() time.Duration {
	if s == Flat {
		return flatInterval
	}
	return dailyInterval
}

// String implements fmt.Stringer.
func (s Schema) String() string {
	return string(s)
}

// Day labels a group of rooms in a [Daily] payload.
type Day string

const (
	Today    Day = "today"
	Tomorrow Day = "tomorrow"

	// NoDay is used for the single group of a [Flat] payload.
	NoDay Day = ""
)

// Group is a list of available rooms, optionally tied to a day.
type Group struct {
	Day   Day
	Rooms []string
}

// Availability is the schema-independent reading of one status payload.
type Availability struct {
	// Available reports whether the label should signal free rooms.
	Available bool

	// Groups holds the rooms to list. For Daily payloads only non-empty days
	// are present, today before tomorrow. For Flat payloads there is exactly
	// one group when Available is true and none otherwise.
	Groups []Group
}

// RoomCount returns the number of rooms across all groups.
func (a Availability) RoomCount() int {
	n := 0
	for _, g := range a.Groups {
		n += len(g.Rooms)
	}
	return n
}
