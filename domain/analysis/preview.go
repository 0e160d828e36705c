package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PreviewField is one named cell of a preview row.
type PreviewField struct {
	Name  string
	Value interface{}
}

// PreviewRow is a preview record that keeps the field order of the JSON
// object it was decoded from. A plain map would lose that order, and the
// preview table's column order is defined by the first row's insertion
// order.
type PreviewRow struct {
	Fields []PreviewField
}

// Get returns the value for the named field.
func (r PreviewRow) Get(name string) (interface{}, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// UnmarshalJSON decodes a JSON object while preserving key order.
func (r *PreviewRow) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("preview row: expected JSON object, got %v", tok)
	}

	r.Fields = r.Fields[:0]
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("preview row: expected object key, got %v", keyTok)
		}
		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return err
		}
		r.Fields = append(r.Fields, PreviewField{Name: key, Value: value})
	}
	// consume closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON emits the row as a JSON object in field order.
func (r PreviewRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
