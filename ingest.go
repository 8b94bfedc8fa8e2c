package sheetbuilder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	yaml "gopkg.in/yaml.v2"
)

// Ingestion of externally supplied data into the Value model. Mapping
// iteration order is part of the language semantics (for-loops walk mapping
// values in insertion order), so both decoders preserve the key order of the
// source document instead of going through Go maps.

// FromJSON decodes a JSON document into the value model. The top level must
// be an object; its keys become the top-level names available to templates.
func FromJSON(data []byte) (*Mapping, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSON(dec)
	if err != nil {
		return nil, err
	}
	m, ok := v.(*Mapping)
	if !ok {
		return nil, fmt.Errorf("top-level data must be a JSON object, got %s", v.Kind())
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing content after JSON document")
	}
	return m, nil
}

func decodeJSON(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := NewMapping()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("invalid JSON object key %v", keyTok)
				}
				val, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}
				m.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // closing brace
				return nil, err
			}
			return m, nil
		case '[':
			var seq Sequence
			for dec.More() {
				val, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}
				seq = append(seq, val)
			}
			if _, err := dec.Token(); err != nil { // closing bracket
				return nil, err
			}
			return seq, nil
		}
		return nil, fmt.Errorf("unexpected JSON delimiter %v", t)
	case string:
		return String(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return Number(f), nil
	case bool:
		// The value model has no boolean kind; booleans keep their textual
		// form rather than turning into a misleading number.
		if t {
			return String("true"), nil
		}
		return String("false"), nil
	case nil:
		return Null{}, nil
	}
	return nil, fmt.Errorf("unsupported JSON token %v", tok)
}

// FromYAML decodes a YAML document into the value model. Decoding goes
// through yaml.MapSlice so mapping keys keep their document order.
func FromYAML(data []byte) (*Mapping, error) {
	var ms yaml.MapSlice
	if err := yaml.Unmarshal(data, &ms); err != nil {
		return nil, err
	}
	v, err := fromYAMLValue(ms)
	if err != nil {
		return nil, err
	}
	return v.(*Mapping), nil
}

func fromYAMLValue(v interface{}) (Value, error) {
	switch vv := v.(type) {
	case nil:
		return Null{}, nil
	case yaml.MapSlice:
		m := NewMapping()
		for _, item := range vv {
			key := fmt.Sprintf("%v", item.Key)
			val, err := fromYAMLValue(item.Value)
			if err != nil {
				return nil, err
			}
			m.Set(key, val)
		}
		return m, nil
	case []interface{}:
		seq := make(Sequence, 0, len(vv))
		for _, item := range vv {
			val, err := fromYAMLValue(item)
			if err != nil {
				return nil, err
			}
			seq = append(seq, val)
		}
		return seq, nil
	case string:
		return String(vv), nil
	case int:
		return Number(vv), nil
	case int64:
		return Number(vv), nil
	case float64:
		return Number(vv), nil
	case bool:
		if vv {
			return String("true"), nil
		}
		return String("false"), nil
	case time.Time:
		return Date(dateSerial(vv.UTC())), nil
	}
	return nil, fmt.Errorf("unsupported YAML value of type %T", v)
}

// FromInterface converts programmatically built data into the value model.
// Go map iteration order is unspecified, so map keys are sorted to keep runs
// deterministic; use FromJSON or FromYAML when document order matters.
func FromInterface(v interface{}) (Value, error) {
	switch vv := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return vv, nil
	case string:
		return String(vv), nil
	case bool:
		if vv {
			return String("true"), nil
		}
		return String("false"), nil
	case int:
		return Number(vv), nil
	case int64:
		return Number(vv), nil
	case float64:
		return Number(vv), nil
	case time.Time:
		return Date(dateSerial(vv.UTC())), nil
	case []interface{}:
		seq := make(Sequence, 0, len(vv))
		for _, item := range vv {
			val, err := FromInterface(item)
			if err != nil {
				return nil, err
			}
			seq = append(seq, val)
		}
		return seq, nil
	case map[string]interface{}:
		keys := make([]string, 0, len(vv))
		for k := range vv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMapping()
		for _, k := range keys {
			val, err := FromInterface(vv[k])
			if err != nil {
				return nil, err
			}
			m.Set(k, val)
		}
		return m, nil
	}
	return nil, fmt.Errorf("unsupported data value of type %T", v)
}
