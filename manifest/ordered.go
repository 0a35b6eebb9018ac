// Copyright 2026 Packsmith Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Object is a JSON object whose members keep their insertion order.
// Nested objects decode to *Object, arrays to []any, and numbers to
// json.Number so the original formatting survives a round trip.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject returns an empty ordered object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	value, ok := o.values[key]
	return value, ok
}

// Set stores value under key. New keys are appended; existing keys keep
// their position. String slices are normalized so they encode with the same
// indentation as decoded arrays.
func (o *Object) Set(key string, value any) {
	if ss, ok := value.([]string); ok {
		arr := make([]any, len(ss))
		for i, s := range ss {
			arr[i] = s
		}
		value = arr
	}

	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Delete removes key, preserving the order of the remaining members.
func (o *Object) Delete(key string) {
	if _, ok := o.values[key]; !ok {
		return
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the member names in order. The returned slice is shared;
// callers must not modify it.
func (o *Object) Keys() []string {
	return o.keys
}

// Len returns the number of members.
func (o *Object) Len() int {
	return len(o.keys)
}

// ParseObject decodes data as a single JSON object, preserving member order.
func ParseObject(data []byte) (*Object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrNotObject
	}

	obj, err := decodeObject(dec)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing content", ErrNotObject)
	}
	return obj, nil
}

// decodeObject consumes members up to and including the closing brace.
// The opening brace has already been read.
func decodeObject(dec *json.Decoder) (*Object, error) {
	obj := NewObject()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: non-string member name %v", ErrNotObject, keyTok)
		}
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		return decodeObject(dec)
	case '[':
		arr := []any{}
		for dec.More() {
			value, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, value)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %v", delim)
	}
}

// Encode renders the object with two-space indentation and a trailing
// newline, the way npm writes package.json.
func (o *Object) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, o, ""); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func writeValue(buf *bytes.Buffer, value any, indent string) error {
	switch v := value.(type) {
	case *Object:
		if v.Len() == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{\n")
		inner := indent + "  "
		for i, key := range v.keys {
			buf.WriteString(inner)
			name, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(name)
			buf.WriteString(": ")
			if err := writeValue(buf, v.values[key], inner); err != nil {
				return err
			}
			if i < len(v.keys)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(indent)
		buf.WriteByte('}')
		return nil

	case []any:
		if len(v) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		inner := indent + "  "
		for i, item := range v {
			buf.WriteString(inner)
			if err := writeValue(buf, item, inner); err != nil {
				return err
			}
			if i < len(v)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(indent)
		buf.WriteByte(']')
		return nil

	case json.Number:
		buf.WriteString(v.String())
		return nil

	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(encoded)
		return nil
	}
}
