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
	"strings"

	"github.com/scylladb/go-set/strset"

	"github.com/endink/go-sharding/core"
)

var _ core.ShardingStrategy = &Composite{}

// Composite shards by the value tuples of several columns.
type Composite struct {
	columns   []string
	algorithm ComplexAlgorithm
}

func NewComposite(columns []string, algorithm ComplexAlgorithm) (*Composite, error) {
	cols := core.DistinctSliceAndTrim(columns)
	for i, c := range cols {
		cols[i] = core.TrimAndLower(c)
	}
	if len(cols) < 2 {
		return nil, errors.New("composite sharding strategy requires at least two columns")
	}
	return &Composite{columns: cols, algorithm: algorithm}, nil
}

func (s *Composite) GetShardingColumns() []string {
	return s.columns
}

func (s *Composite) DoSharding(availableTargetNames []string, values []core.ShardingValue) ([]string, error) {
	if len(availableTargetNames) == 0 {
		return []string{}, nil
	}

	lists := make([][]interface{}, len(s.columns))
	for i, column := range s.columns {
		columnValues := core.ValuesOfColumn(values, column)
		if len(columnValues) == 0 {
			return copyNames(availableTargetNames), nil
		}
		var list []interface{}
		for _, v := range columnValues {
			scalars, ok := core.ScalarValues(v)
			if !ok {
				return copyNames(availableTargetNames), nil
			}
			for _, scalar := range scalars {
				if !containsValue(list, scalar) {
					list = append(list, scalar)
				}
			}
		}
		lists[i] = list
	}

	picked := strset.New()
	for _, tuple := range core.Permute(lists) {
		names, err := s.algorithm.DoComplexSharding(availableTargetNames, s.columns, tuple)
		if err != nil {
			return nil, err
		}
		picked.Add(names...)
	}
	return collect(availableTargetNames, picked), nil
}

func containsValue(list []interface{}, value interface{}) bool {
	for _, v := range list {
		if core.ScalarEquals(v, value) {
			return true
		}
	}
	return false
}

func (s *Composite) String() string {
	return fmt.Sprintf("composite(%s)", strings.Join(s.columns, ", "))
}
