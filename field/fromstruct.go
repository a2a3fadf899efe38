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
	"sort"

	"github.com/mitchellh/mapstructure"
)

// TableFromStruct decodes an arbitrary Go struct (or map) of message headers
// / client properties into a Table, so callers publishing a message don't
// have to hand-build field.Pair slices for the common case of "a handful of
// named headers". Struct field names are used as keys unchanged unless a
// `mapstructure` tag renames them.
//
// Key order is not preserved by the source struct/map, so the resulting
// Table is sorted by key for deterministic wire output across runs.
func TableFromStruct(v any) (Table, error) {
	var generic map[string]any
	if err := mapstructure.Decode(v, &generic); err != nil {
		return nil, err
	}
	return TableFromMap(generic)
}

// TableFromMap converts a generic map into a Table, recursing into nested
// maps/slices via field.FromAny.
func TableFromMap(m map[string]any) (Table, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := make(Table, 0, len(keys))
	for _, k := range keys {
		fv, err := FromAny(m[k])
		if err != nil {
			return nil, err
		}
		t.Append(k, fv)
	}
	return t, nil
}
