package schema

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// ErrParse is wrapped by every error returned from [Decode].
var ErrParse = errors.New("parse failure")

// dailyPayload mirrors the Daily shape.
type dailyPayload struct {
	TodayAvailable    []string `mapstructure:"today_available"`
	TomorrowAvailable []string `mapstructure:"tomorrow_available"`
}

// flatPayload mirrors the Flat shape.
type flatPayload struct {
	Available bool     `mapstructure:"available"`
	Rooms     []string `mapstructure:"rooms"`
}

// Decode parses body as JSON and interprets it under schema s.
//
// The body must be a JSON object. For [Daily], a missing day array is read
// as empty but at least one of the two keys must be present. For [Flat],
// the "available" key is required and "rooms" may be missing. Values of the
// wrong type are rejected rather than coerced.
//
// An empty object is a parse failure under [Daily] rather than "all booked",
// so a payload of another shape never clears the board.
func Decode(s Schema, body []byte) (Availability, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return Availability{}, fmt.Errorf("%w: invalid JSON: %v", ErrParse, err)
	}
	if raw == nil {
		return Availability{}, fmt.Errorf("%w: body is not a JSON object", ErrParse)
	}

	switch s {
	case Daily:
		return decodeDaily(raw)
	case Flat:
		return decodeFlat(raw)
	default:
		return Availability{}, fmt.Errorf("%w: unknown schema %q", ErrParse, s)
	}
}

func decodeDaily(raw map[string]interface{}) (Availability, error) {
	if !hasAnyKey(raw, "today_available", "tomorrow_available") {
		return Availability{}, fmt.Errorf("%w: schema mismatch: expected today_available or tomorrow_available", ErrParse)
	}

	var p dailyPayload
	if err := decodeStrict(raw, &p); err != nil {
		return Availability{}, err
	}

	var a Availability
	if len(p.TodayAvailable) > 0 {
		a.Groups = append(a.Groups, Group{Day: Today, Rooms: p.TodayAvailable})
	}
	if len(p.TomorrowAvailable) > 0 {
		a.Groups = append(a.Groups, Group{Day: Tomorrow, Rooms: p.TomorrowAvailable})
	}
	a.Available = len(a.Groups) > 0
	return a, nil
}

func decodeFlat(raw map[string]interface{}) (Availability, error) {
	if !hasAnyKey(raw, "available") {
		return Availability{}, fmt.Errorf("%w: schema mismatch: expected available", ErrParse)
	}

	var p flatPayload
	if err := decodeStrict(raw, &p); err != nil {
		return Availability{}, err
	}

	a := Availability{Available: p.Available}
	if p.Available {
		rooms := p.Rooms
		if rooms == nil {
			rooms = []string{}
		}
		a.Groups = []Group{{Day: NoDay, Rooms: rooms}}
	}
	return a, nil
}

// decodeStrict copies raw into out without weak type conversion, so a
// number in a room list or a string in place of a boolean fails.
func decodeStrict(raw map[string]interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: false,
		ZeroFields:       true,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("%w: schema mismatch: %v", ErrParse, err)
	}
	return nil
}

func hasAnyKey(raw map[string]interface{}, keys ...string) bool {
	for _, k := range keys {
		if _, ok := raw[k]; ok {
			return true
		}
	}
	return false
}
