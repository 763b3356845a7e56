package api

import (
	"bytes"
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// Record is one row of collection data (a user, person or contact).
// It keeps the raw JSON the backend sent, so the shape stays open-ended.
type Record json.RawMessage

// Field is one key/value pair of an object record, in backend order.
type Field struct {
	Key   string
	Value json.RawMessage
}

// MarshalJSON returns the raw record.
func (r Record) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}

// UnmarshalJSON stores a copy of data.
func (r *Record) UnmarshalJSON(data []byte) error {
	*r = append((*r)[0:0], data...)
	return nil
}

// MarshalYAML renders the record as block-style YAML with key order preserved.
func (r Record) MarshalYAML() (interface{}, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(r, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	node := doc.Content[0]
	clearStyle(node)
	return node, nil
}

// clearStyle drops the flow and quoting styles JSON parsing leaves on every
// node. The encoder still quotes strings that would otherwise read as another
// type.
func clearStyle(n *yaml.Node) {
	n.Style &^= yaml.FlowStyle
	if n.Kind == yaml.ScalarNode {
		n.Style &^= yaml.DoubleQuotedStyle | yaml.SingleQuotedStyle
	}
	for _, c := range n.Content {
		clearStyle(c)
	}
}

// Decode unmarshals the record into v.
func (r Record) Decode(v interface{}) error {
	return json.Unmarshal(r, v)
}

// IsObject reports whether the record is a JSON object.
func (r Record) IsObject() bool {
	return firstByte(r) == '{'
}

// Fields returns the record's properties in the order the backend sent them.
// Non-object records have no fields.
func (r Record) Fields() []Field {
	if !r.IsObject() {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(r))
	if _, err := dec.Token(); err != nil {
		return nil
	}
	var fields []Field
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fields
		}
		key, _ := tok.(string)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return fields
		}
		fields = append(fields, Field{Key: key, Value: value})
	}
	return fields
}

// Text returns the display text for key: strings unquoted, null and missing
// keys empty, anything else as compact JSON.
func (r Record) Text(key string) string {
	for _, f := range r.Fields() {
		if f.Key == key {
			return displayText(f.Value)
		}
	}
	return ""
}

// String returns the record as compact JSON.
func (r Record) String() string {
	return displayText(json.RawMessage(r))
}

func displayText(raw json.RawMessage) string {
	switch firstByte(raw) {
	case 0:
		return ""
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	case 'n':
		return ""
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return strings.TrimSpace(string(raw))
	}
	return buf.String()
}

// Keys returns the union of object keys across records, in first-seen order.
func Keys(records []Record) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, r := range records {
		for _, f := range r.Fields() {
			if !seen[f.Key] {
				seen[f.Key] = true
				keys = append(keys, f.Key)
			}
		}
	}
	return keys
}

func firstByte(raw []byte) byte {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}
