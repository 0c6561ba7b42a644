package workouts

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// OptionalInt and OptionalFloat absorb sloppy client input: a number, a
// numeric string, an empty string or garbage - anything that does not
// parse becomes null instead of failing the whole request.

type OptionalInt struct {
	Value *int
}

func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		o.Value = nil
		return nil
	}

	raw := string(data)
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil {
		o.Value = nil
		return nil
	}

	o.Value = &parsed
	return nil
}

func (o OptionalInt) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

type OptionalFloat struct {
	Value *float64
}

func (o *OptionalFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		o.Value = nil
		return nil
	}

	raw := string(data)
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}

	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		o.Value = nil
		return nil
	}

	o.Value = &parsed
	return nil
}

func (o OptionalFloat) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}
