package model

import "encoding/json"

// OptionalText is a text value that may be absent.
// The zero value is absent. A present value may still be the empty string.
type OptionalText struct {
	Value string
	Valid bool
}

// Some returns a present OptionalText holding v.
func Some(v string) OptionalText {
	return OptionalText{Value: v, Valid: true}
}

// None returns an absent OptionalText.
func None() OptionalText {
	return OptionalText{}
}

// String returns the value, or "" when absent.
func (o OptionalText) String() string {
	if !o.Valid {
		return ""
	}
	return o.Value
}

// MarshalJSON encodes an absent value as null.
func (o OptionalText) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// UnmarshalJSON decodes null as absent.
func (o *OptionalText) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = None()
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
