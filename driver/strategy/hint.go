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

	"github.com/endink/go-sharding/core"
)

var _ core.HintShardingStrategy = &Hint{}

const DefaultHintColumn = "value"

// Hint shards by the values forced through the hint side channel only. The values are
// presented to the algorithm under the key column.
type Hint struct {
	standard *Standard
}

func NewHint(keyColumn string, algorithm PreciseAlgorithm) *Hint {
	column := core.IfBlankAndTrim(keyColumn, DefaultHintColumn)
	return &Hint{standard: &Standard{column: core.TrimAndLower(column), precise: algorithm}}
}

func (h *Hint) IsHint() bool {
	return true
}

func (h *Hint) GetShardingColumns() []string {
	return h.standard.GetShardingColumns()
}

func (h *Hint) DoSharding(availableTargetNames []string, values []core.ShardingValue) ([]string, error) {
	return h.standard.DoSharding(availableTargetNames, values)
}

func (h *Hint) String() string {
	return fmt.Sprintf("hint(%s)", h.standard.column)
}

// None routes to every candidate, used for broadcast and unsharded tables.
var None = core.NoneShardingStrategy
