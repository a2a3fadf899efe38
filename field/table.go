// Copyright 2025 The packetd Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package field

import (
	"github.com/spf13/cast"
)

// Pair is one (key, value) entry of a Table. AMQP field tables are ordered
// multimaps, not Go maps: the same key may legally repeat, and encode/decode
// must round-trip the original order, so Table is a slice rather than a map.
type Pair struct {
	Key   string
	Value Value
}

// Table is an ordered multimap from short-string keys (<=255 bytes) to
// field values, matching the AMQP field-table wire type.
type Table []Pair

// Array is a 4-byte-length-prefixed homogeneous-on-the-wire sequence of
// field values, carrying no keys.
type Array []Value

// Set replaces the first existing entry for key, or appends one.
func (t *Table) Set(key string, v Value) {
	for i := range *t {
		if (*t)[i].Key == key {
			(*t)[i].Value = v
			return
		}
	}
	*t = append(*t, Pair{Key: key, Value: v})
}

// Append always adds a new entry, even if key already exists.
func (t *Table) Append(key string, v Value) {
	*t = append(*t, Pair{Key: key, Value: v})
}

// Get returns the first value stored under key.
func (t Table) Get(key string) (Value, bool) {
	for _, p := range t {
		if p.Key == key {
			return p.Value, true
		}
	}
	return Value{}, false
}

// GetAll returns every value stored under key, in table order.
func (t Table) GetAll(key string) []Value {
	var out []Value
	for _, p := range t {
		if p.Key == key {
			out = append(out, p.Value)
		}
	}
	return out
}

func (t *Table) Delete(key string) {
	out := (*t)[:0]
	for _, p := range *t {
		if p.Key != key {
			out = append(out, p)
		}
	}
	*t = out
}

// anyOf returns the raw Go value behind key, for handoff to spf13/cast.
func (t Table) anyOf(key string) any {
	v, ok := t.Get(key)
	if !ok {
		return nil
	}
	return v.Any()
}

// GetString, GetInt64, GetBool, GetFloat64 are cast-flexible accessors:
// unlike Value.String/.Int64/etc. these coerce across kinds (e.g. an
// integer header read as a string) the way application code usually wants
// when pulling a header out of a message it didn't author.
func (t Table) GetString(key string) (string, error) { return cast.ToStringE(t.anyOf(key)) }
func (t Table) GetInt64(key string) (int64, error)    { return cast.ToInt64E(t.anyOf(key)) }
func (t Table) GetBool(key string) (bool, error)       { return cast.ToBoolE(t.anyOf(key)) }
func (t Table) GetFloat64(key string) (float64, error) { return cast.ToFloat64E(t.anyOf(key)) }

// StringOr and friends return a fallback instead of an error — the common
// case for reading an optional header.
func (t Table) StringOr(key, fallback string) string {
	if _, ok := t.Get(key); !ok {
		return fallback
	}
	if s, err := t.GetString(key); err == nil {
		return s
	}
	return fallback
}

func (t Table) Int64Or(key string, fallback int64) int64 {
	if _, ok := t.Get(key); !ok {
		return fallback
	}
	if n, err := t.GetInt64(key); err == nil {
		return n
	}
	return fallback
}

func (t Table) BoolOr(key string, fallback bool) bool {
	if _, ok := t.Get(key); !ok {
		return fallback
	}
	if b, err := t.GetBool(key); err == nil {
		return b
	}
	return fallback
}

// Clone returns a deep-enough copy: the Pair slice is copied, nested
// Table/Array values are cloned recursively since they're themselves slices.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	for i, p := range t {
		out[i] = Pair{Key: p.Key, Value: p.Value.cloneValue()}
	}
	return out
}

func (v Value) cloneValue() Value {
	switch v.Kind {
	case KindTable:
		return TableValue(v.table.Clone())
	case KindArray:
		return ArrayValue(v.array.clone())
	default:
		return v
	}
}

func (a Array) clone() Array {
	if a == nil {
		return nil
	}
	out := make(Array, len(a))
	for i, v := range a {
		out[i] = v.cloneValue()
	}
	return out
}
