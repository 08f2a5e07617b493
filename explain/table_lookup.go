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

package explain

import (
	"fmt"

	"github.com/pingcap/parser/ast"

	"github.com/endink/go-sharding/core"
)

// tableLookup visits a statement to collect logical table names and aliases.
type tableLookup struct {
	provider         ShardingTableProvider
	aliasToTableName map[string]string
	tables           map[string]struct{}
	tableNames       []string
	err              error
}

func newTableLookup(provider ShardingTableProvider) *tableLookup {
	return &tableLookup{
		provider:         provider,
		aliasToTableName: make(map[string]string),
		tables:           make(map[string]struct{}),
	}
}

func (lookup *tableLookup) Enter(n ast.Node) (node ast.Node, skipChildren bool) {
	if lookup.err != nil {
		return n, true
	}
	switch nn := n.(type) {
	case *ast.TableSource:
		if tn, ok := nn.Source.(*ast.TableName); ok {
			lookup.addTable(tn.Name.L, nn.AsName.L)
		}
	case *ast.TableName:
		lookup.addTable(nn.Name.L, "")
	}
	return n, false
}

func (lookup *tableLookup) Leave(n ast.Node) (node ast.Node, ok bool) {
	return n, lookup.err == nil
}

func (lookup *tableLookup) addTable(table string, alias string) {
	if table == "" {
		return
	}
	if alias != "" && alias != table {
		if n, ok := lookup.aliasToTableName[alias]; ok && n != table {
			lookup.err = fmt.Errorf("duplex table alias in sql, alias: %s, tables: %s, %s", alias, n, table)
			return
		}
		lookup.aliasToTableName[alias] = table
	}
	if _, ok := lookup.tables[table]; !ok {
		lookup.tables[table] = struct{}{}
		lookup.tableNames = append(lookup.tableNames, table)
	}
}

func (lookup *tableLookup) GetTables() []string {
	return lookup.tableNames
}

// resolveTable maps a column qualifier (table or alias) to the logical table.
func (lookup *tableLookup) resolveTable(qualifier string) (string, bool) {
	if name, ok := lookup.aliasToTableName[qualifier]; ok {
		return name, true
	}
	_, ok := lookup.tables[qualifier]
	return qualifier, ok
}

// resolveColumn finds the logical table a column belongs to. An unqualified column of a
// multi-table statement resolves only when exactly one table is sharded by it.
func (lookup *tableLookup) resolveColumn(col *ast.ColumnName) (string, bool) {
	if col.Table.L != "" {
		return lookup.resolveTable(col.Table.L)
	}
	if len(lookup.tableNames) == 1 {
		return lookup.tableNames[0], true
	}
	if lookup.provider == nil {
		return "", false
	}
	var found string
	for _, t := range lookup.tableNames {
		st, ok := lookup.provider.GetShardingTable(t)
		if !ok || !(st.HasDbShardingColumn(col.Name.L) || st.HasTableShardingColumn(col.Name.L)) {
			continue
		}
		if found != "" {
			Logger.Debugf("column '%s' is ambiguous between tables '%s' and '%s', its condition is ignored", col.Name.O, found, t)
			return "", false
		}
		found = t
	}
	return found, found != ""
}

type columnKey struct {
	table  string
	column string
}

func (k columnKey) String() string {
	return fmt.Sprintf("%s.%s", k.table, k.column)
}

// constraint holds the AND-merged value of every restricted column, keys keep first-seen order.
type constraint struct {
	keys   []columnKey
	values map[columnKey]core.ShardingValue
}

func newConstraint() constraint {
	return constraint{values: make(map[columnKey]core.ShardingValue)}
}

func singleConstraint(key columnKey, value core.ShardingValue) constraint {
	c := newConstraint()
	c.keys = append(c.keys, key)
	c.values[key] = value
	return c
}

// isShardingColumn reports whether the column drives a strategy of the table, every column
// counts when no provider is known.
func (lookup *tableLookup) isShardingColumn(table string, column string) bool {
	if lookup.provider == nil {
		return true
	}
	st, ok := lookup.provider.GetShardingTable(table)
	if !ok {
		return false
	}
	return st.HasDbShardingColumn(column) || st.HasTableShardingColumn(column)
}
