package recipe

import (
	"bytes"
	"encoding/json"
)

// InfoType classifies non-instruction content in a step.
type InfoType string

const (
	InfoNone        InfoType = ""
	InfoWarning     InfoType = "warning"
	InfoAdvice      InfoType = "advice"
	InfoObservation InfoType = "observation"
)

// MarshalJSON encodes InfoNone as null.
func (t InfoType) MarshalJSON() ([]byte, error) {
	if t == InfoNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(t))
}

// UnmarshalJSON accepts null or a string.
func (t *InfoType) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = InfoNone
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = InfoType(s)
	return nil
}

// Step is one atomic, machine-readable cooking step.
type Step struct {
	Number      int          `json:"step_number" yaml:"step_number"`
	Description string       `json:"description" yaml:"description"`
	Ingredients []Ingredient `json:"ingredients" yaml:"ingredients"`
	Tools       []string     `json:"tools" yaml:"tools"`
	Methods     []string     `json:"methods" yaml:"methods"`
	Time        Time         `json:"time" yaml:"time"`
	Temperature Temperature  `json:"temperature" yaml:"temperature"`
	Actionable  bool         `json:"actionable" yaml:"actionable"`
	IsPrepared  bool         `json:"is_prepared" yaml:"is_prepared"`
	InfoType    InfoType     `json:"info_type" yaml:"info_type"`
}

// Temperature holds either an oven reading ("350°F") or a stovetop heat
// level ("medium heat"). At most one field is set.
type Temperature struct {
	Oven string `json:"oven,omitempty" yaml:"oven,omitempty"`
	Heat string `json:"heat,omitempty" yaml:"heat,omitempty"`
}

// IsZero reports whether no temperature was found.
func (t Temperature) IsZero() bool {
	return t.Oven == "" && t.Heat == ""
}

// MarshalYAML encodes InfoNone as null.
func (t InfoType) MarshalYAML() (any, error) {
	if t == InfoNone {
		return nil, nil
	}
	return string(t), nil
}
