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
	"github.com/scylladb/go-set/strset"

	"github.com/endink/go-sharding/core"
)

// PreciseAlgorithm maps one scalar value of the sharding column to target names.
type PreciseAlgorithm interface {
	DoPreciseSharding(availableTargetNames []string, column string, value interface{}) ([]string, error)
}

// RangeAlgorithm is implemented by precise algorithms that can narrow a range value,
// others get the whole candidate set for ranges.
type RangeAlgorithm interface {
	DoRangeSharding(availableTargetNames []string, column string, r core.Range) ([]string, error)
}

// ComplexAlgorithm maps one value tuple of several columns to target names,
// values are in the same order as columns.
type ComplexAlgorithm interface {
	DoComplexSharding(availableTargetNames []string, columns []string, values []interface{}) ([]string, error)
}

func copyNames(names []string) []string {
	r := make([]string, len(names))
	copy(r, names)
	return r
}

// collect keeps the picked names which are also candidates, in candidate order without duplicates.
func collect(availableTargetNames []string, picked *strset.Set) []string {
	result := make([]string, 0, picked.Size())
	seen := strset.NewWithSize(picked.Size())
	for _, name := range availableTargetNames {
		if picked.Has(name) && !seen.Has(name) {
			seen.Add(name)
			result = append(result, name)
		}
	}
	return result
}
