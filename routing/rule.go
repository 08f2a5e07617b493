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
	"fmt"
	"sort"

	"github.com/scylladb/go-set/strset"
	"go.uber.org/multierr"

	"github.com/endink/go-sharding/core"
)

// Rule is the routing metadata of all logical tables, it must not be changed after it is passed to an Engine.
type Rule struct {
	dataSources   []string
	tables        map[string]*core.ShardingTable
	broadcast     *strset.Set
	bindingGroups [][]string
	bindingIndex  map[string]int
}

func NewRule(dataSources ...string) *Rule {
	return &Rule{
		dataSources:  core.DistinctSliceAndTrim(dataSources),
		tables:       make(map[string]*core.ShardingTable),
		broadcast:    strset.New(),
		bindingIndex: make(map[string]int),
	}
}

func (r *Rule) DataSources() []string {
	return r.dataSources
}

func (r *Rule) AddTable(tables ...*core.ShardingTable) error {
	for _, t := range tables {
		if t == nil {
			continue
		}
		if _, ok := r.tables[t.Name]; ok {
			return core.NewConfigError(t.Name, "logical table is declared more than once")
		}
		r.tables[t.Name] = t
	}
	return nil
}

// AddBroadcastTable declares tables replicated to every data source of the rule.
func (r *Rule) AddBroadcastTable(names ...string) error {
	if len(r.dataSources) == 0 {
		return core.NewConfigError("", "data sources are required to declare broadcast tables")
	}
	for _, name := range names {
		t := core.NewShardingTable(name, core.NoneShardingStrategy, core.NoneShardingStrategy)
		t.SetResources(r.dataSources, []string{t.Name})
		if err := r.AddTable(t); err != nil {
			return err
		}
		r.broadcast.Add(t.Name)
	}
	return nil
}

// AddBindingGroup declares logical tables sharded identically, a table belongs to one group at most.
func (r *Rule) AddBindingGroup(tables ...string) error {
	group := make([]string, 0, len(tables))
	for _, t := range core.DistinctSliceAndTrim(tables) {
		group = append(group, core.TrimAndLower(t))
	}
	if len(group) < 2 {
		return core.NewConfigError("", "binding group requires at least two tables, given: %v", tables)
	}
	for _, t := range group {
		if idx, ok := r.bindingIndex[t]; ok {
			return core.NewConfigError(t, "table already belongs to binding group %v", r.bindingGroups[idx])
		}
	}
	idx := len(r.bindingGroups)
	r.bindingGroups = append(r.bindingGroups, group)
	for _, t := range group {
		r.bindingIndex[t] = idx
	}
	return nil
}

func (r *Rule) GetShardingTable(name string) (*core.ShardingTable, bool) {
	t, ok := r.tables[core.TrimAndLower(name)]
	return t, ok
}

func (r *Rule) IsShardingTable(name string) bool {
	t, ok := r.GetShardingTable(name)
	return ok && t.IsSharding()
}

func (r *Rule) IsBroadcastTable(name string) bool {
	return r.broadcast.Has(core.TrimAndLower(name))
}

// TableNames returns the logical table names in alphabetical order.
func (r *Rule) TableNames() []string {
	names := make([]string, 0, len(r.tables))
	for n := range r.tables {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (r *Rule) BindingGroups() [][]string {
	return r.bindingGroups
}

// bindingGroupOf returns the index of the binding group of the table, or -1.
func (r *Rule) bindingGroupOf(table string) int {
	if idx, ok := r.bindingIndex[table]; ok {
		return idx
	}
	return -1
}

// Validate reports every invalid table and binding declaration.
func (r *Rule) Validate() error {
	var err error
	for _, name := range r.TableNames() {
		err = multierr.Append(err, r.tables[name].Validate())
	}
	for _, group := range r.bindingGroups {
		for _, t := range group {
			if _, ok := r.tables[t]; !ok {
				err = multierr.Append(err, core.NewConfigError(t, "binding table is not declared"))
			}
		}
	}
	return err
}

func (r *Rule) String() string {
	return fmt.Sprintf("rule(tables: %v, binding: %v, data sources: %v)", r.TableNames(), r.bindingGroups, r.dataSources)
}
