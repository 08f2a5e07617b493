/*
 * Copyright 2021. Go-Sharding Author All Rights Reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 *
 *  File author: Anders Xiao
 */

package comparison

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertCompare(t *testing.T, a, b interface{}, expected int) {
	r, err := Compare(a, b)
	if assert.NoError(t, err, "compare %v and %v", a, b) {
		assert.Equal(t, expected, r, "compare %v and %v", a, b)
	}
}

func TestCompareMixedIntegers(t *testing.T) {
	assertCompare(t, 1, int64(2), -1)
	assertCompare(t, int8(5), uint64(5), 0)
	assertCompare(t, uint(10), int32(-1), 1)
	assertCompare(t, int64(-3), uint16(0), -1)
}

func TestCompareFloatAndInt(t *testing.T) {
	assertCompare(t, 2.5, 2, 1)
	assertCompare(t, 3, float32(3), 0)
	assertCompare(t, -0.1, uint8(0), -1)
}

func TestCompareStrings(t *testing.T) {
	assertCompare(t, "a", "b", -1)
	assertCompare(t, "z", "z", 0)
}

func TestCompareIncompatible(t *testing.T) {
	_, err := Compare("1", 1)
	assert.Error(t, err)

	_, err = Compare(nil, 1)
	assert.Error(t, err)

	_, err = Compare([]int{1}, 1)
	assert.Error(t, err)
}

func TestMinMax(t *testing.T) {
	v, err := Min(3, int64(7))
	assert.NoError(t, err)
	assert.Equal(t, 3, v)

	v, err = Max(3, int64(7))
	assert.NoError(t, err)
	assert.Equal(t, int64(7), v)
}

func TestToInt64(t *testing.T) {
	v, ok := ToInt64(uint32(9))
	assert.True(t, ok)
	assert.Equal(t, int64(9), v)

	_, ok = ToInt64(1.5)
	assert.False(t, ok)

	v, ok = ToInt64(4.0)
	assert.True(t, ok)
	assert.Equal(t, int64(4), v)

	_, ok = ToInt64("4")
	assert.False(t, ok)
}
