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
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/endink/go-sharding/core"
)

// Engine resolves the physical destinations of a statement, it is safe for concurrent use.
type Engine struct {
	rule *Rule
}

func NewEngine(rule *Rule) *Engine {
	if rule == nil {
		rule = NewRule()
	}
	return &Engine{rule: rule}
}

func (e *Engine) Rule() *Rule {
	return e.rule
}

// Route returns the targets for the logical tables referenced by a statement. Values are looked
// up by logical table, hint values are taken from ctx (see WithHint). An unknown table fails the
// whole statement with a *core.ConfigError, an empty result means nothing matches.
func (e *Engine) Route(ctx context.Context, tables []string, values *core.ShardingValues) (*RouteResult, error) {
	start := time.Now()
	result, err := e.route(ctx, tables, values)
	label := resultOk
	switch {
	case err != nil:
		label = resultError
	case result.IsEmpty():
		label = resultEmpty
	}
	routeCounter.WithLabelValues(label).Inc()
	routeLatency.RecordLatency(start, label)
	if err == nil {
		routeTargets.WithLabelValues(strconv.Itoa(len(result.Tables))).Observe(float64(len(result.Targets)))
	}
	return result, err
}

func (e *Engine) route(ctx context.Context, tables []string, values *core.ShardingValues) (*RouteResult, error) {
	names := normalizeTables(tables)

	shardingTables := make([]*core.ShardingTable, len(names))
	for i, name := range names {
		t, ok := e.rule.GetShardingTable(name)
		if !ok {
			return nil, core.NewConfigError(name, "no routing metadata is configured for the logical table")
		}
		shardingTables[i] = t
	}

	hint, _ := HintFromContext(ctx)
	units := make([][]RouteUnit, len(names))
	for i, t := range shardingTables {
		u, err := routeTable(t, values.Get(t.Name), hint)
		if err != nil {
			return nil, err
		}
		units[i] = u
	}

	result := &RouteResult{Tables: names}
	if len(names) == 0 {
		return result, nil
	}
	result.Targets = combine(names, e.groupTables(names), units)
	log.Debugf("route %v with values %s: %d target(s)", names, values, len(result.Targets))
	return result, nil
}

func routeTable(t *core.ShardingTable, values []core.ShardingValue, hint *HintValues) ([]RouteUnit, error) {
	dbStrategy, tableStrategy := t.DatabaseStrategy, t.TableStrategy
	if dbStrategy == nil {
		dbStrategy = core.NoneShardingStrategy
	}
	if tableStrategy == nil {
		tableStrategy = core.NoneShardingStrategy
	}

	dbValues, tableValues := values, values
	if core.IsHintStrategy(dbStrategy) {
		dbValues = hintShardingValues(dbStrategy, hint.DatabaseValues(t.Name))
	}
	if core.IsHintStrategy(tableStrategy) {
		tableValues = hintShardingValues(tableStrategy, hint.TableValues(t.Name))
	}

	databases, err := dbStrategy.DoSharding(t.GetDatabases(), dbValues)
	if err != nil {
		return nil, fmt.Errorf("route data sources of table '%s' fault: %w", t.Name, err)
	}
	physicalTables, err := tableStrategy.DoSharding(t.GetTables(), tableValues)
	if err != nil {
		return nil, fmt.Errorf("route physical tables of table '%s' fault: %w", t.Name, err)
	}

	units := make([]RouteUnit, 0, len(databases)*len(physicalTables))
	for _, ds := range databases {
		for _, tb := range physicalTables {
			if t.ContainsDataNode(ds, tb) {
				units = append(units, RouteUnit{DataSource: ds, Table: tb})
			}
		}
	}
	return units, nil
}

// groupTables splits table positions into binding groups, in order of first reference.
func (e *Engine) groupTables(names []string) [][]int {
	var groups [][]int
	groupPos := make(map[int]int)
	for i, name := range names {
		idx := e.rule.bindingGroupOf(name)
		if idx < 0 {
			groups = append(groups, []int{i})
			continue
		}
		if pos, ok := groupPos[idx]; ok {
			groups[pos] = append(groups[pos], i)
			continue
		}
		groupPos[idx] = len(groups)
		groups = append(groups, []int{i})
	}
	return groups
}

// combine aligns units inside each group and takes the cartesian product across groups.
func combine(names []string, groups [][]int, units [][]RouteUnit) []RouteTarget {
	size := len(units)
	targets := []RouteTarget{make(RouteTarget, size)}

	for _, group := range groups {
		rows := groupRows(names, group, units)
		next := make([]RouteTarget, 0, len(targets)*len(rows))
		for _, target := range targets {
			for _, row := range rows {
				t := make(RouteTarget, size)
				copy(t, target)
				for i, pos := range group {
					t[pos] = row[i]
				}
				next = append(next, t)
			}
		}
		targets = next
	}
	return distinctTargets(targets)
}

// groupRows returns the unit tuples of one group, each tuple is ordered like the group positions.
func groupRows(names []string, group []int, units [][]RouteUnit) [][]RouteUnit {
	if len(group) == 1 || aligned(group, units) {
		count := len(units[group[0]])
		rows := make([][]RouteUnit, count)
		for i := 0; i < count; i++ {
			row := make([]RouteUnit, len(group))
			for j, pos := range group {
				row[j] = units[pos][i]
			}
			rows[i] = row
		}
		return rows
	}

	counts := make([]string, len(group))
	tables := make([]string, len(group))
	lists := make([][]interface{}, len(group))
	for j, pos := range group {
		counts[j] = strconv.Itoa(len(units[pos]))
		tables[j] = names[pos]
		list := make([]interface{}, len(units[pos]))
		for i, u := range units[pos] {
			list[i] = u
		}
		lists[j] = list
	}
	bindingFallbackCounter.WithLabelValues().Inc()
	key := strings.Join(tables, ",")
	bindingLog.Warnf(key, "unit counts of binding tables %s differ (%s), fall back to cartesian product", key, strings.Join(counts, ", "))

	product := core.Permute(lists)
	rows := make([][]RouteUnit, len(product))
	for i, p := range product {
		row := make([]RouteUnit, len(p))
		for j, u := range p {
			row[j] = u.(RouteUnit)
		}
		rows[i] = row
	}
	return rows
}

func aligned(group []int, units [][]RouteUnit) bool {
	count := len(units[group[0]])
	for _, pos := range group[1:] {
		if len(units[pos]) != count {
			return false
		}
	}
	return true
}

func distinctTargets(targets []RouteTarget) []RouteTarget {
	seen := make(map[string]struct{}, len(targets))
	result := make([]RouteTarget, 0, len(targets))
	for _, t := range targets {
		key := targetKey(t)
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			result = append(result, t)
		}
	}
	return result
}

// targetKey quotes every name, names may contain the '.' used by RouteUnit.String.
func targetKey(t RouteTarget) string {
	names := make([]string, 0, len(t)*2)
	for _, u := range t {
		names = append(names, u.DataSource, u.Table)
	}
	return fmt.Sprintf("%q", names)
}

func normalizeTables(tables []string) []string {
	names := make([]string, 0, len(tables))
	for _, t := range core.DistinctSliceAndTrim(tables) {
		names = append(names, core.TrimAndLower(t))
	}
	return core.DistinctSliceAndTrim(names)
}
