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
	"fmt"

	"github.com/emirpasic/gods/utils"
	"github.com/stretchr/testify/assert"

	"github.com/endink/go-sharding/core"
	"github.com/endink/go-sharding/core/comparison"
)

type equatable interface {
	Equals(v interface{}) bool
}

func compareAny(a, b interface{}) int {
	if i, err := comparison.Compare(a, b); err == nil {
		return i
	}
	return utils.StringComparator(fmt.Sprint(a), fmt.Sprint(b))
}

func errorDifferent(excepted []interface{}, actual []interface{}) string {
	sb := core.NewStringBuilder()
	sb.WriteLine("array not same")

	sb.Write("excepted: ")
	writeSorted(sb, excepted)
	sb.WriteLine()

	sb.Write("actual: ")
	writeSorted(sb, actual)
	sb.WriteLine()

	return sb.String()
}

func writeSorted(sb *core.StringBuilder, values []interface{}) {
	if len(values) == 0 {
		sb.Write("<empty array>")
		return
	}
	sorted := make([]interface{}, len(values))
	copy(sorted, values)
	utils.Sort(sorted, compareAny)
	sb.WriteJoin(", ", sorted...)
}

func AssertEmptyArray(t assert.TestingT, actual []interface{}, msgAndArgs ...interface{}) bool {
	return AssertArrayEquals(t, nil, actual, msgAndArgs...)
}

// AssertStrArrayEquals ignores the order of items.
func AssertStrArrayEquals(t assert.TestingT, excepted []string, actual []string, msgAndArgs ...interface{}) bool {
	return AssertArrayEquals(t, convertStrArray(excepted), convertStrArray(actual), msgAndArgs...)
}

// AssertArrayEquals ignores the order of items.
func AssertArrayEquals(t assert.TestingT, excepted []interface{}, actual []interface{}, msgAndArgs ...interface{}) bool {
	if len(excepted) == 0 && len(actual) == 0 {
		return true
	}

	if len(excepted) != len(actual) {
		return assert.Fail(t, errorDifferent(excepted, actual), msgAndArgs...)
	}
	for _, r := range excepted {
		if !arrayContains(actual, r) {
			return assert.Fail(t, errorDifferent(excepted, actual), msgAndArgs...)
		}
	}
	return true
}

func convertStrArray(values []string) []interface{} {
	r := make([]interface{}, len(values))
	for i, value := range values {
		r[i] = value
	}
	return r
}

func arrayContains(ranges []interface{}, value interface{}) bool {
	for _, r := range ranges {
		if core.ScalarEquals(r, value) {
			return true
		}
		if eq, ok := value.(equatable); ok && eq.Equals(r) {
			return true
		}
	}
	return false
}
