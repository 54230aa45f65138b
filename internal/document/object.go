// Package document implements an insertion-ordered JSON object.
//
// Values held by an Object are one of: nil, bool, string, json.Number,
// []any, *Object, or any Go value that json-iterator can encode. Parse
// produces only the first six.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	jsoniter "github.com/json-iterator/go"
)

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrTrailingData is returned by Parse when anything but whitespace follows
// the top-level object.
var ErrTrailingData = errors.New("decoding document: trailing data")

// ErrNotObject is returned by Parse when the top-level value is not a JSON object.
var ErrNotObject = errors.New("top-level JSON value is not an object")

// Object is a JSON object that remembers the order its keys were added in.
// The zero value is an empty object ready to use.
type Object struct {
	keys   []string
	values map[string]any
}

// New returns an empty object.
func New() *Object {
	return &Object{values: make(map[string]any)}
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	if o == nil {
		return false
	}
	_, ok := o.values[key]
	return ok
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// OptGet returns the value stored under key, or def when the key is absent.
func (o *Object) OptGet(key string, def any) any {
	if v, ok := o.Get(key); ok {
		return v
	}
	return def
}

// Put stores value under key. Overwriting keeps the key's original position.
func (o *Object) Put(key string, value any) {
	if o.values == nil {
		o.values = make(map[string]any)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Remove deletes key. Removing an absent key is a no-op.
func (o *Object) Remove(key string) {
	if o == nil {
		return
	}
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

// Keys returns a snapshot of the keys in insertion order. The caller may
// mutate the object while ranging over the result.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.keys...)
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Clone returns a deep copy of o. Nested objects and arrays are copied;
// other values are shared.
func (o *Object) Clone() *Object {
	if o == nil {
		return nil
	}
	out := New()
	for _, k := range o.keys {
		out.Put(k, cloneValue(o.values[k]))
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case *Object:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// Parse decodes data into an Object. The top-level value must be an object.
func Parse(data []byte) (*Object, error) {
	iter := jsoniter.ParseBytes(codec, data)
	if iter.WhatIsNext() != jsoniter.ObjectValue {
		if iter.Error != nil {
			return nil, fmt.Errorf("decoding document: %w", iter.Error)
		}
		return nil, ErrNotObject
	}
	v := readValue(iter)
	if iter.Error != nil {
		return nil, fmt.Errorf("decoding document: %w", iter.Error)
	}
	// Only whitespace may follow the object
	if iter.WhatIsNext() != jsoniter.InvalidValue || !errors.Is(iter.Error, io.EOF) {
		return nil, ErrTrailingData
	}
	return v.(*Object), nil
}

func readValue(iter *jsoniter.Iterator) any {
	switch iter.WhatIsNext() {
	case jsoniter.StringValue:
		return iter.ReadString()
	case jsoniter.NumberValue:
		return iter.ReadNumber()
	case jsoniter.BoolValue:
		return iter.ReadBool()
	case jsoniter.NilValue:
		iter.ReadNil()
		return nil
	case jsoniter.ArrayValue:
		arr := make([]any, 0)
		for iter.ReadArray() {
			arr = append(arr, readValue(iter))
		}
		return arr
	case jsoniter.ObjectValue:
		obj := New()
		iter.ReadObjectCB(func(it *jsoniter.Iterator, field string) bool {
			obj.Put(field, readValue(it))
			return it.Error == nil
		})
		return obj
	default:
		iter.ReportError("readValue", "unexpected JSON token")
		return nil
	}
}

// MarshalJSON encodes the object with keys in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	stream := codec.BorrowStream(nil)
	defer codec.ReturnStream(stream)

	writeValue(stream, o)
	if stream.Error != nil {
		return nil, stream.Error
	}
	return append([]byte(nil), stream.Buffer()...), nil
}

// Indent encodes the object like MarshalJSON and then indents it.
func (o *Object) Indent(prefix, indent string) ([]byte, error) {
	compact, err := o.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, prefix, indent); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// String returns the compact text form, or "{}" if encoding fails.
func (o *Object) String() string {
	b, err := o.MarshalJSON()
	if err != nil {
		return "{}"
	}
	return string(b)
}

func writeValue(stream *jsoniter.Stream, v any) {
	switch t := v.(type) {
	case nil:
		stream.WriteNil()
	case *Object:
		if t == nil {
			stream.WriteNil()
			return
		}
		stream.WriteObjectStart()
		for i, k := range t.keys {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(k)
			writeValue(stream, t.values[k])
		}
		stream.WriteObjectEnd()
	case []any:
		stream.WriteArrayStart()
		for i, e := range t {
			if i > 0 {
				stream.WriteMore()
			}
			writeValue(stream, e)
		}
		stream.WriteArrayEnd()
	case []string:
		stream.WriteArrayStart()
		for i, e := range t {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteString(e)
		}
		stream.WriteArrayEnd()
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		stream.WriteObjectStart()
		for i, k := range keys {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(k)
			writeValue(stream, t[k])
		}
		stream.WriteObjectEnd()
	case string:
		stream.WriteString(t)
	case bool:
		stream.WriteBool(t)
	case json.Number:
		stream.WriteRaw(string(t))
	case int:
		stream.WriteInt(t)
	case int64:
		stream.WriteInt64(t)
	case float64:
		stream.WriteFloat64(t)
	default:
		stream.WriteVal(v)
	}
}
