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

package script

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/endink/go-sharding/core"
)

func TestRange1Function(t *testing.T) {
	s := runTestScript("range(1,10)", t)
	assert.Equal(t, 10, len(s), "result for script fault: %s%s", core.LineSeparator, strings.Join(s, ", "))
}

func TestRange2Function(t *testing.T) {
	s := runTestScript("range(5,10)", t)
	assert.Equal(t, []string{"5", "6", "7", "8", "9", "10"}, s)
}

func TestRangeSingleValue(t *testing.T) {
	s := runTestScript("range(3,3)", t)
	assert.Equal(t, []string{"3"}, s)
}

func TestRangeInvalidArguments(t *testing.T) {
	for _, script := range []string{"range(3,1)", "range(1)", `range("a", 2)`} {
		c, err := ParseScript(script)
		require.NoError(t, err, script)
		_, err = c.Run()
		assert.Error(t, err, script)
	}
}

func TestArray(t *testing.T) {
	s := runTestScript("[2,3,5,7]", t)
	assert.Equal(t, 4, len(s), "result for script fault: %s%s", core.LineSeparator, strings.Join(s, ", "))
}

func TestVar(t *testing.T) {
	c, err := ParseScript("a+b", "a", "b")
	require.NoError(t, err)
	s := c.Clone()
	require.NoError(t, s.SetVar("a", 3))
	require.NoError(t, s.SetVar("b", int32(4)))
	r, err := s.Run()
	require.NoError(t, err)
	require.Equal(t, 1, len(r))

	v, _ := strconv.Atoi(r[0])
	assert.Equal(t, 7, v)
}

func TestInvalidReturnType(t *testing.T) {
	c, err := ParseScript("{a: 1}")
	require.NoError(t, err)
	_, err = c.Run()
	assert.Error(t, err)
}

func runTestScript(script string, t *testing.T) []string {
	s, err := ParseScript(script)
	require.Nil(t, err, "compile script fault: %s", script)
	r, err := s.Run()
	require.Nil(t, err, "run script fault: %s", script)
	return r
}
