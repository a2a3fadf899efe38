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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableSetGetOverwrites(t *testing.T) {
	var tbl Table
	tbl.Set("x-priority", I32(1))
	tbl.Set("x-priority", I32(2))

	v, ok := tbl.Get("x-priority")
	require.True(t, ok)
	n, ok := v.Int64()
	require.True(t, ok)
	assert.Equal(t, int64(2), n)
	assert.Len(t, tbl, 1)
}

func TestTableAppendAllowsDuplicateKeys(t *testing.T) {
	var tbl Table
	tbl.Append("x-death", ShortString("a"))
	tbl.Append("x-death", ShortString("b"))

	assert.Len(t, tbl.GetAll("x-death"), 2)
}

func TestTableCastGetters(t *testing.T) {
	var tbl Table
	tbl.Set("count", I32(42))
	tbl.Set("name", LongString("hello"))
	tbl.Set("enabled", Bool(true))

	n, err := tbl.GetInt64("count")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	s, err := tbl.GetString("name")
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	b, err := tbl.GetBool("enabled")
	require.NoError(t, err)
	assert.True(t, b)

	assert.Equal(t, "fallback", tbl.StringOr("missing", "fallback"))
}

func TestTableFromStruct(t *testing.T) {
	type headers struct {
		RetryCount int    `mapstructure:"retry_count"`
		Origin     string `mapstructure:"origin"`
	}

	tbl, err := TableFromStruct(headers{RetryCount: 3, Origin: "billing"})
	require.NoError(t, err)

	n, err := tbl.GetInt64("retry_count")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	s, err := tbl.GetString("origin")
	require.NoError(t, err)
	assert.Equal(t, "billing", s)
}

func TestTableCloneIsIndependent(t *testing.T) {
	var nested Table
	nested.Set("inner", I8(1))

	var tbl Table
	tbl.Set("nested", TableValue(nested))

	clone := tbl.Clone()
	cv, _ := clone.Get("nested")
	cTable, _ := cv.Table()
	cTable.Set("inner", I8(9))

	ov, _ := tbl.Get("nested")
	oTable, _ := ov.Table()
	orig, _ := oTable.Get("inner")
	n, _ := orig.Int64()
	assert.Equal(t, int64(1), n, "mutating the clone must not affect the original")
}
