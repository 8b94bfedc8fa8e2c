package sheetbuilder

import (
	"strconv"
	"time"
)

// ValueKind discriminates the runtime value model.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindNumber
	KindString
	KindDate
	KindSequence
	KindMapping
)

func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindDate:
		return "date"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	}
	return "null"
}

// Value is the tagged union used for literals and injected data. The data
// tree handed to Execute is treated as immutable for the duration of a run.
type Value interface {
	Kind() ValueKind
}

// Null is the absent value.
type Null struct{}

func (Null) Kind() ValueKind { return KindNull }

// Number carries float64 semantics for all template arithmetic.
type Number float64

func (Number) Kind() ValueKind { return KindNumber }

// String is a plain text value.
type String string

func (String) Kind() ValueKind { return KindString }

// Date is a timestamp stored as its spreadsheet serial number: days since
// 1899-12-30, time of day as the fractional part.
type Date float64

func (Date) Kind() ValueKind { return KindDate }

// Sequence is an ordered list of values.
type Sequence []Value

func (Sequence) Kind() ValueKind { return KindSequence }

// Mapping is a key/value collection that iterates in insertion order.
type Mapping struct {
	keys  []string
	items map[string]Value
}

func (*Mapping) Kind() ValueKind { return KindMapping }

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{items: map[string]Value{}}
}

// Set binds key to v. A key keeps its original position when overwritten.
func (m *Mapping) Set(key string, v Value) {
	if _, ok := m.items[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.items[key] = v
}

// Get looks up key.
func (m *Mapping) Get(key string) (Value, bool) {
	v, ok := m.items[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	return m.keys
}

// Len reports the number of entries.
func (m *Mapping) Len() int {
	return len(m.keys)
}

// formatNumber renders a number in its canonical decimal form: no exponent,
// no trailing zeros, so 1.27 + "%" concatenates to "1.27%".
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// displayString renders a scalar value for cell content and style modifier
// arguments. Collections have no display form.
func displayString(v Value) string {
	switch vv := v.(type) {
	case String:
		return string(vv)
	case Number:
		return formatNumber(float64(vv))
	case Date:
		return formatNumber(float64(vv))
	default:
		return ""
	}
}

// serialEpoch is the zero point of the 1900 date system.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// dateSerial converts a timestamp to its spreadsheet serial number.
func dateSerial(t time.Time) float64 {
	return t.Sub(serialEpoch).Hours() / 24
}

var dateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"15:04:05",
}

// parseDate parses an ISO-8601 timestamp into a Date. Anything else is a
// MalformedDateError; bad input must never be coerced to a plausible number.
func parseDate(s string) (Date, error) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if layout == "15:04:05" {
			// Time of day only: just the day fraction.
			h, m, sec := t.Clock()
			return Date(float64(h*3600+m*60+sec) / 86400), nil
		}
		return Date(dateSerial(t)), nil
	}
	return 0, &MalformedDateError{Input: s}
}
