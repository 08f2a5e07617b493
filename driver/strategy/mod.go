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

package strategy

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/endink/go-sharding/core"
	"github.com/endink/go-sharding/core/comparison"
)

var _ PreciseAlgorithm = &Mod{}
var _ RangeAlgorithm = &Mod{}

// Mod picks the targets whose numeric name suffix equals value % Count.
type Mod struct {
	Count int64
}

func NewMod(count int64) (*Mod, error) {
	if count <= 0 {
		return nil, errors.New("mod sharding count must be greater than zero")
	}
	return &Mod{Count: count}, nil
}

func (m *Mod) DoPreciseSharding(availableTargetNames []string, column string, value interface{}) ([]string, error) {
	v, err := shardingInt(column, value)
	if err != nil {
		return nil, err
	}
	return matchSuffix(availableTargetNames, floorMod(v, m.Count)), nil
}

// DoRangeSharding enumerates bounded integer ranges narrower than Count.
func (m *Mod) DoRangeSharding(availableTargetNames []string, _ string, r core.Range) ([]string, error) {
	if !r.HasLower() || !r.HasUpper() {
		return copyNames(availableTargetNames), nil
	}
	lower, ok1 := comparison.ToInt64(r.LowerBound())
	upper, ok2 := comparison.ToInt64(r.UpperBound())
	if !ok1 || !ok2 {
		return copyNames(availableTargetNames), nil
	}
	if !r.IsLowerClosed() {
		if lower == math.MaxInt64 {
			return []string{}, nil
		}
		lower++
	}
	if !r.IsUpperClosed() {
		if upper == math.MinInt64 {
			return []string{}, nil
		}
		upper--
	}
	if upper < lower {
		return []string{}, nil
	}
	// unsigned width, upper-lower overflows int64 for wide ranges
	width := uint64(upper) - uint64(lower)
	if width >= uint64(m.Count-1) {
		return copyNames(availableTargetNames), nil
	}
	var result []string
	for i := uint64(0); i <= width; i++ {
		v := lower + int64(i)
		result = append(result, matchSuffix(availableTargetNames, floorMod(v, m.Count))...)
	}
	return result, nil
}

func (m *Mod) String() string {
	return fmt.Sprintf("mod(%d)", m.Count)
}

func floorMod(v int64, count int64) int64 {
	return ((v % count) + count) % count
}

func shardingInt(column string, value interface{}) (int64, error) {
	if v, ok := comparison.ToInt64(value); ok {
		return v, nil
	}
	if s, ok := value.(string); ok {
		if v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return v, nil
		}
	}
	return 0, fmt.Errorf("value '%v' of column '%s' is not an integer", value, column)
}

// nameSuffix returns the trailing decimal number of the name.
func nameSuffix(name string) (int64, bool) {
	i := len(name)
	for i > 0 && name[i-1] >= '0' && name[i-1] <= '9' {
		i--
	}
	if i == len(name) {
		return 0, false
	}
	v, err := strconv.ParseInt(name[i:], 10, 64)
	return v, err == nil
}

func matchSuffix(availableTargetNames []string, suffix int64) []string {
	var result []string
	for _, name := range availableTargetNames {
		if s, ok := nameSuffix(name); ok && s == suffix {
			result = append(result, name)
		}
	}
	return result
}
