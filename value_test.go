package sheetbuilder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromJSON_PreservesKeyOrder(t *testing.T) {
	data, err := FromJSON([]byte(`{"zebra": 1, "apple": 2, "mango": {"b": 1, "a": 2}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"zebra", "apple", "mango"}, data.Keys())

	nested, ok := data.Get("mango")
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, nested.(*Mapping).Keys())
}

func TestFromJSON_Kinds(t *testing.T) {
	data, err := FromJSON([]byte(`{"s": "x", "n": 1.5, "b": true, "nil": null, "seq": [1, "two"]}`))
	require.NoError(t, err)

	v, _ := data.Get("s")
	assert.Equal(t, String("x"), v)
	v, _ = data.Get("n")
	assert.Equal(t, Number(1.5), v)
	v, _ = data.Get("b")
	assert.Equal(t, String("true"), v, "booleans keep a textual form")
	v, _ = data.Get("nil")
	assert.Equal(t, Null{}, v)
	v, _ = data.Get("seq")
	assert.Equal(t, Sequence{Number(1), String("two")}, v)
}

func TestFromJSON_TopLevelMustBeObject(t *testing.T) {
	_, err := FromJSON([]byte(`[1, 2]`))
	require.Error(t, err)

	_, err = FromJSON([]byte(`{"a": 1} {"b": 2}`))
	require.Error(t, err, "trailing content")
}

func TestFromYAML_PreservesKeyOrder(t *testing.T) {
	data, err := FromYAML([]byte("zebra: 1\napple:\n  b: 1\n  a: 2\nseq:\n  - x\n  - 2\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"zebra", "apple", "seq"}, data.Keys())

	nested, _ := data.Get("apple")
	assert.Equal(t, []string{"b", "a"}, nested.(*Mapping).Keys())

	seq, _ := data.Get("seq")
	assert.Equal(t, Sequence{String("x"), Number(2)}, seq)
}

func TestFromInterface_SortsMapKeys(t *testing.T) {
	v, err := FromInterface(map[string]interface{}{
		"b": 1, "a": "x", "c": []interface{}{true},
	})
	require.NoError(t, err)
	m := v.(*Mapping)
	assert.Equal(t, []string{"a", "b", "c"}, m.Keys())

	seq, _ := m.Get("c")
	assert.Equal(t, Sequence{String("true")}, seq)
}

func TestMapping_SetKeepsPosition(t *testing.T) {
	m := NewMapping()
	m.Set("a", Number(1))
	m.Set("b", Number(2))
	m.Set("a", Number(3))
	assert.Equal(t, []string{"a", "b"}, m.Keys())
	v, _ := m.Get("a")
	assert.Equal(t, Number(3), v)
}

func TestParseDate_Serials(t *testing.T) {
	d, err := parseDate("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, Date(45292), d)

	d, err = parseDate("2024-01-01T18:00:00")
	require.NoError(t, err)
	assert.Equal(t, Date(45292.75), d)

	d, err = parseDate("2024-01-01 06:00:00")
	require.NoError(t, err)
	assert.Equal(t, Date(45292.25), d)

	d, err = parseDate("18:00:00")
	require.NoError(t, err)
	assert.Equal(t, Date(0.75), d, "time of day is just the fraction")
}

func TestParseDate_Malformed(t *testing.T) {
	for _, in := range []string{"", "yesterday", "2024-13-40", "01/02/2024"} {
		_, err := parseDate(in)
		var malformed *MalformedDateError
		require.ErrorAs(t, err, &malformed, in)
		assert.Equal(t, in, malformed.Input)
	}
}

func TestDateSerial_Epoch(t *testing.T) {
	assert.Equal(t, 0.0, dateSerial(time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2.0, dateSerial(time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestFormatNumber_Canonical(t *testing.T) {
	assert.Equal(t, "1.27", formatNumber(1.27))
	assert.Equal(t, "2", formatNumber(2))
	assert.Equal(t, "-0.5", formatNumber(-0.5))
	assert.Equal(t, "1000", formatNumber(1e3))
}

func TestDisplayString(t *testing.T) {
	assert.Equal(t, "x", displayString(String("x")))
	assert.Equal(t, "3.5", displayString(Number(3.5)))
	assert.Equal(t, "45292", displayString(Date(45292)))
	assert.Equal(t, "", displayString(Null{}))
	assert.Equal(t, "", displayString(Sequence{}))
}
