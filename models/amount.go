package models

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// amountRegexp captures the first numeric value in a formatted figure.
var amountRegexp = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// Amount is a numeric survey answer. It decodes from a JSON number or from a
// formatted string such as "$1,200.50". An answer carrying no numeric value
// decodes without error but is not Valid, and reads as missing.
type Amount struct {
	Value float64
	Valid bool
	// Raw is the answer as given, kept when it is not Valid.
	Raw string
}

// UnmarshalJSON implements json.Unmarshaler. It never fails on content.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*a = Amount{}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			a.Raw = string(data)
			return nil
		}
		if v, ok := ParseAmount(s); ok {
			a.Value, a.Valid = v, true
			return nil
		}
		a.Raw = s
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		a.Raw = string(data)
		return nil
	}
	a.Value, a.Valid = f, true
	return nil
}

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(a.Value)
}

// Float returns the amount as an optional float64; nil when absent or not
// Valid.
func (a *Amount) Float() *float64 {
	if a == nil || !a.Valid {
		return nil
	}
	f := a.Value
	return &f
}

func amountPtr(f *float64) *Amount {
	if f == nil {
		return nil
	}
	return &Amount{Value: *f, Valid: true}
}

// ParseAmount extracts the first number from a formatted figure, ignoring
// currency symbols and thousands separators.
func ParseAmount(raw string) (float64, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	match := amountRegexp.FindString(cleaned)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Term is an amortization period answer. Surveys store it as a string; a JSON
// number is kept in its decimal form and any other value as its raw text.
type Term string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Term) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Term(s)
		return nil
	}

	*t = Term(data)
	return nil
}

// Value returns the term as an optional string.
func (t *Term) Value() *string {
	if t == nil {
		return nil
	}
	s := string(*t)
	return &s
}
