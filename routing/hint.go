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

package routing

import (
	"context"

	"github.com/endink/go-sharding/core"
)

type hintKey struct{}

// HintValues carries forced sharding values for hint strategies, keyed by logical table.
type HintValues struct {
	databases map[string][]interface{}
	tables    map[string][]interface{}
}

func NewHintValues() *HintValues {
	return &HintValues{
		databases: make(map[string][]interface{}),
		tables:    make(map[string][]interface{}),
	}
}

func (h *HintValues) AddDatabaseValue(table string, values ...interface{}) *HintValues {
	t := core.TrimAndLower(table)
	h.databases[t] = append(h.databases[t], values...)
	return h
}

func (h *HintValues) AddTableValue(table string, values ...interface{}) *HintValues {
	t := core.TrimAndLower(table)
	h.tables[t] = append(h.tables[t], values...)
	return h
}

func (h *HintValues) DatabaseValues(table string) []interface{} {
	if h == nil {
		return nil
	}
	return h.databases[core.TrimAndLower(table)]
}

func (h *HintValues) TableValues(table string) []interface{} {
	if h == nil {
		return nil
	}
	return h.tables[core.TrimAndLower(table)]
}

// WithHint returns a context carrying the hint values for Engine.Route.
func WithHint(ctx context.Context, hint *HintValues) context.Context {
	return context.WithValue(ctx, hintKey{}, hint)
}

func HintFromContext(ctx context.Context) (*HintValues, bool) {
	if ctx == nil {
		return nil, false
	}
	h, ok := ctx.Value(hintKey{}).(*HintValues)
	return h, ok && h != nil
}

// hintShardingValues presents raw hint values as a value of the strategy's key column.
func hintShardingValues(s core.ShardingStrategy, values []interface{}) []core.ShardingValue {
	columns := s.GetShardingColumns()
	if len(values) == 0 || len(columns) == 0 {
		return nil
	}
	if len(values) == 1 {
		return []core.ShardingValue{core.NewExactValue(columns[0], values[0])}
	}
	return []core.ShardingValue{core.NewListValue(columns[0], values...)}
}
