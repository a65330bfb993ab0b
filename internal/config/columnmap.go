package config

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ColumnMap is a string-to-string JSON object that remembers key order.
// A repeated key keeps its first position and takes the last value.
type ColumnMap struct {
	keys []string
	vals map[string]string
}

// NewColumnMap builds a ColumnMap from alternating key, value arguments.
func NewColumnMap(pairs ...string) ColumnMap {
	var m ColumnMap
	for i := 0; i+1 < len(pairs); i += 2 {
		m = m.With(pairs[i], pairs[i+1])
	}
	return m
}

// Len returns the number of keys.
func (m ColumnMap) Len() int { return len(m.keys) }

// Keys returns the keys in order.
func (m ColumnMap) Keys() []string { return append([]string(nil), m.keys...) }

// Get returns the value for k.
func (m ColumnMap) Get(k string) (string, bool) {
	v, ok := m.vals[k]
	return v, ok
}

// With returns a copy of m with k set to v. An existing key keeps its
// position.
func (m ColumnMap) With(k, v string) ColumnMap {
	out := ColumnMap{
		keys: append([]string(nil), m.keys...),
		vals: make(map[string]string, len(m.vals)+1),
	}
	for kk, vv := range m.vals {
		out.vals[kk] = vv
	}
	if _, ok := out.vals[k]; !ok {
		out.keys = append(out.keys, k)
	}
	out.vals[k] = v
	return out
}

// UnmarshalJSON decodes a JSON object of strings, preserving key order.
func (m *ColumnMap) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*m = ColumnMap{}
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("column map: expected object, got %v", tok)
	}
	var out ColumnMap
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		k, ok := kt.(string)
		if !ok {
			return fmt.Errorf("column map: unexpected key %v", kt)
		}
		var v string
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("column map: value for %q: %w", k, err)
		}
		out = out.With(k, v)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = out
	return nil
}

// MarshalJSON encodes the map as a JSON object in key order.
func (m ColumnMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(m.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
