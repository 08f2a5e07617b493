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
	"fmt"

	"github.com/scylladb/go-set/strset"

	"github.com/endink/go-sharding/core"
)

var _ core.ShardingStrategy = &Standard{}

// Standard shards by one column.
type Standard struct {
	column  string
	precise PreciseAlgorithm
	ranges  RangeAlgorithm
}

// NewStandard uses the algorithm for range values too when it implements RangeAlgorithm.
func NewStandard(column string, algorithm PreciseAlgorithm) *Standard {
	s := &Standard{
		column:  core.TrimAndLower(column),
		precise: algorithm,
	}
	if r, ok := algorithm.(RangeAlgorithm); ok {
		s.ranges = r
	}
	return s
}

func (s *Standard) GetShardingColumns() []string {
	return []string{s.column}
}

func (s *Standard) IsRangeSupported() bool {
	return s.ranges != nil
}

func (s *Standard) DoSharding(availableTargetNames []string, values []core.ShardingValue) ([]string, error) {
	if len(availableTargetNames) == 0 {
		return []string{}, nil
	}
	columnValues := core.ValuesOfColumn(values, s.column)
	if len(columnValues) == 0 {
		return copyNames(availableTargetNames), nil
	}

	picked := strset.New()
	for _, v := range columnValues {
		var names []string
		var err error
		if rv, ok := v.(*core.RangeValue); ok {
			if s.ranges == nil {
				return copyNames(availableTargetNames), nil
			}
			names, err = s.ranges.DoRangeSharding(availableTargetNames, s.column, rv.Range)
			if err != nil {
				return nil, err
			}
			picked.Add(names...)
			continue
		}
		scalars, _ := core.ScalarValues(v)
		for _, scalar := range scalars {
			if names, err = s.precise.DoPreciseSharding(availableTargetNames, s.column, scalar); err != nil {
				return nil, err
			}
			picked.Add(names...)
		}
	}
	return collect(availableTargetNames, picked), nil
}

func (s *Standard) String() string {
	return fmt.Sprintf("standard(%s)", s.column)
}
