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

package testkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingT struct {
	failed bool
}

func (r *recordingT) Errorf(string, ...interface{}) {
	r.failed = true
}

func TestAssertStrArrayEquals(t *testing.T) {
	AssertStrArrayEquals(t, []string{"a", "b"}, []string{"b", "a"})
	AssertStrArrayEquals(t, nil, []string{})

	r := &recordingT{}
	assert.False(t, AssertStrArrayEquals(r, []string{"a"}, []string{"b"}))
	assert.True(t, r.failed)

	r = &recordingT{}
	assert.False(t, AssertStrArrayEquals(r, []string{"a"}, []string{"a", "b"}))
	assert.True(t, r.failed)
}

func TestAssertArrayEqualsNumbers(t *testing.T) {
	AssertArrayEquals(t, []interface{}{1, int64(2)}, []interface{}{uint8(2), 1})
}

func TestParseForTest(t *testing.T) {
	sel := ParseSelect("select * from t_order where order_id = 1", t)
	assert.NotNil(t, sel.Where)
}

func TestMustMatch(t *testing.T) {
	type pair struct {
		A string
		b int
	}
	MustMatch(t, []string{"a"}, []string{"a"})
	MustMatch(t, pair{A: "x", b: 1}, pair{A: "x", b: 1}, AllowUnexported(pair{}))
	MustMatch(t, pair{A: "x", b: 1}, pair{A: "x", b: 2}, IgnoreFields(".b"))
}
