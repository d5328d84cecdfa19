package recipe

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Unit is a normalised time unit, always singular.
type Unit string

const (
	Hour   Unit = "hour"
	Minute Unit = "minute"
	Second Unit = "second"
)

var unitAliases = map[string]Unit{
	"hour": Hour, "hours": Hour, "hr": Hour, "hrs": Hour, "h": Hour,
	"minute": Minute, "minutes": Minute, "min": Minute, "mins": Minute, "m": Minute,
	"second": Second, "seconds": Second, "sec": Second, "secs": Second, "s": Second,
}

// ParseUnit maps a unit spelling or abbreviation to its singular name.
func ParseUnit(s string) (Unit, bool) {
	u, ok := unitAliases[strings.ToLower(strings.TrimSuffix(s, "."))]
	return u, ok
}

// TimeKind tells which shape a Time value has.
type TimeKind int

const (
	TimeNone TimeKind = iota
	TimeExact
	TimeRange
	TimeQualitative
)

// Time is the duration attached to a step: an exact duration, a range, a
// qualitative completion cue ("until golden brown") or nothing.
type Time struct {
	Kind     TimeKind
	Duration int
	Min      int
	Max      int
	Unit     Unit
	Phrase   string
}

// Exact returns a single-valued duration.
func Exact(n int, u Unit) Time { return Time{Kind: TimeExact, Duration: n, Unit: u} }

// Range returns a min/max duration.
func Range(lo, hi int, u Unit) Time { return Time{Kind: TimeRange, Min: lo, Max: hi, Unit: u} }

// Qualitative returns a completion cue.
func Qualitative(phrase string) Time { return Time{Kind: TimeQualitative, Phrase: phrase} }

// IsZero reports whether no time was found.
func (t Time) IsZero() bool { return t.Kind == TimeNone }

// String renders the value for humans, pluralising units.
func (t Time) String() string {
	switch t.Kind {
	case TimeExact:
		return fmt.Sprintf("%d %s", t.Duration, plural(t.Unit, t.Duration))
	case TimeRange:
		return fmt.Sprintf("%d-%d %s", t.Min, t.Max, plural(t.Unit, t.Max))
	case TimeQualitative:
		return t.Phrase
	}
	return ""
}

func plural(u Unit, n int) string {
	if n == 1 {
		return string(u)
	}
	return string(u) + "s"
}

type exactJSON struct {
	Duration int  `json:"duration" yaml:"duration"`
	Unit     Unit `json:"unit" yaml:"unit"`
}

type rangeJSON struct {
	Min  int  `json:"duration_min" yaml:"duration_min"`
	Max  int  `json:"duration_max" yaml:"duration_max"`
	Unit Unit `json:"unit" yaml:"unit"`
}

type qualitativeJSON struct {
	Duration string `json:"duration" yaml:"duration"`
	Type     string `json:"type" yaml:"type"`
}

// wire returns the mapping shape used on the wire.
func (t Time) wire() any {
	switch t.Kind {
	case TimeExact:
		return exactJSON{Duration: t.Duration, Unit: t.Unit}
	case TimeRange:
		return rangeJSON{Min: t.Min, Max: t.Max, Unit: t.Unit}
	case TimeQualitative:
		return qualitativeJSON{Duration: t.Phrase, Type: "qualitative"}
	}
	return struct{}{}
}

// MarshalJSON encodes one of the mapping shapes
// {duration, unit} | {duration_min, duration_max, unit} |
// {duration, type: "qualitative"} | {}.
func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.wire())
}

// MarshalYAML mirrors MarshalJSON.
func (t Time) MarshalYAML() (any, error) {
	return t.wire(), nil
}

// UnmarshalJSON decodes any of the shapes written by MarshalJSON.
func (t *Time) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = Time{}
	if len(raw) == 0 {
		return nil
	}
	if _, ok := raw["duration_min"]; ok {
		var r rangeJSON
		if err := json.Unmarshal(data, &r); err != nil {
			return err
		}
		*t = Range(r.Min, r.Max, r.Unit)
		return nil
	}
	if _, ok := raw["type"]; ok {
		var q qualitativeJSON
		if err := json.Unmarshal(data, &q); err != nil {
			return err
		}
		*t = Qualitative(q.Duration)
		return nil
	}
	var e exactJSON
	if err := json.Unmarshal(data, &e); err != nil {
		return err
	}
	*t = Exact(e.Duration, e.Unit)
	return nil
}
