package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Daily(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		available bool
		groups    []Group
	}{
		{
			name:      "both days empty",
			body:      `{"today_available":[],"tomorrow_available":[]}`,
			available: false,
		},
		{
			name:      "today only",
			body:      `{"today_available":["Court 1"],"tomorrow_available":[]}`,
			available: true,
			groups:    []Group{{Day: Today, Rooms: []string{"Court 1"}}},
		},
		{
			name:      "tomorrow only",
			body:      `{"today_available":[],"tomorrow_available":["Court 2","Court 3"]}`,
			available: true,
			groups:    []Group{{Day: Tomorrow, Rooms: []string{"Court 2", "Court 3"}}},
		},
		{
			name:      "both days",
			body:      `{"today_available":["A"],"tomorrow_available":["B"]}`,
			available: true,
			groups: []Group{
				{Day: Today, Rooms: []string{"A"}},
				{Day: Tomorrow, Rooms: []string{"B"}},
			},
		},
		{
			name:      "missing tomorrow read as empty",
			body:      `{"today_available":["A"]}`,
			available: true,
			groups:    []Group{{Day: Today, Rooms: []string{"A"}}},
		},
		{
			name:      "null arrays read as empty",
			body:      `{"today_available":null,"tomorrow_available":null}`,
			available: false,
		},
		{
			name:      "unknown keys ignored",
			body:      `{"today_available":["A"],"tomorrow_available":[],"generated_at":"12:00"}`,
			available: true,
			groups:    []Group{{Day: Today, Rooms: []string{"A"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(Daily, []byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.available, got.Available)
			assert.Equal(t, tt.groups, got.Groups)
		})
	}
}

func TestDecode_Flat(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		available bool
		rooms     int
	}{
		{"unavailable", `{"available":false,"rooms":[]}`, false, 0},
		{"unavailable ignores rooms", `{"available":false,"rooms":["A"]}`, false, 0},
		{"available with rooms", `{"available":true,"rooms":["A","B","C"]}`, true, 3},
		{"available without rooms", `{"available":true}`, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(Flat, []byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.available, got.Available)
			assert.Equal(t, tt.rooms, got.RoomCount())
			if tt.available {
				require.Len(t, got.Groups, 1)
				assert.Equal(t, NoDay, got.Groups[0].Day)
			} else {
				assert.Empty(t, got.Groups)
			}
		})
	}
}

func TestDecode_ParseFailures(t *testing.T) {
	tests := []struct {
		name   string
		schema Schema
		body   string
	}{
		{"not json", Daily, `<html>502 Bad Gateway</html>`},
		{"truncated", Daily, `{"today_available":["A"`},
		{"empty body", Daily, ``},
		{"json null", Daily, `null`},
		{"json array", Daily, `["A"]`},
		{"empty object under daily", Daily, `{}`},
		{"empty object under flat", Flat, `{}`},
		{"flat payload under daily", Daily, `{"available":true,"rooms":["A"]}`},
		{"daily payload under flat", Flat, `{"today_available":["A"],"tomorrow_available":[]}`},
		{"room is a number", Daily, `{"today_available":[1,2]}`},
		{"day is a string", Daily, `{"today_available":"A"}`},
		{"available is a string", Flat, `{"available":"yes","rooms":[]}`},
		{"unknown schema", Schema("weekly"), `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.schema, []byte(tt.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestParse(t *testing.T) {
	s, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, Daily, s)

	s, err = Parse(" FLAT ")
	require.NoError(t, err)
	assert.Equal(t, Flat, s)

	_, err = Parse("both")
	assert.Error(t, err)
}

func TestSchema_DefaultInterval(t *testing.T) {
	assert.Equal(t, 15*time.Second, Daily.DefaultInterval())
	assert.Equal(t, 30*time.Second, Flat.DefaultInterval())
}
