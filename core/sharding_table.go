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

//配置参考：https://shardingsphere.apache.org/document/legacy/4.x/document/cn/manual/sharding-jdbc/configuration/config-yaml/

package core

import (
	"fmt"

	"github.com/scylladb/go-set/strset"
)

type DataNode struct {
	DataSource string
	Table      string
}

func (n DataNode) String() string {
	return fmt.Sprintf("%s.%s", n.DataSource, n.Table)
}

type ShardingTable struct {
	Name             string
	TableStrategy    ShardingStrategy
	DatabaseStrategy ShardingStrategy
	tables           []string
	databases        []string
	columns          *strset.Set
	dataNodes        map[DataNode]struct{}
}

func NewShardingTable(name string, dbStrategy ShardingStrategy, tableStrategy ShardingStrategy) *ShardingTable {
	if dbStrategy == nil {
		dbStrategy = NoneShardingStrategy
	}
	if tableStrategy == nil {
		tableStrategy = NoneShardingStrategy
	}
	return &ShardingTable{
		Name:             TrimAndLower(name),
		DatabaseStrategy: dbStrategy,
		TableStrategy:    tableStrategy,
	}
}

// SetResources sets the candidate data sources and physical tables, keeping the first occurrence order.
func (t *ShardingTable) SetResources(databases []string, tables []string) {
	t.databases = DistinctSliceAndTrim(databases)
	t.tables = DistinctSliceAndTrim(tables)
}

// SetDataNodes restricts routing to the given (data source, table) pairs and derives the
// candidate lists from them.
func (t *ShardingTable) SetDataNodes(nodes ...DataNode) {
	t.dataNodes = make(map[DataNode]struct{}, len(nodes))
	dbs := make([]string, 0, len(nodes))
	tables := make([]string, 0, len(nodes))
	for _, n := range nodes {
		t.dataNodes[n] = struct{}{}
		dbs = append(dbs, n.DataSource)
		tables = append(tables, n.Table)
	}
	t.SetResources(dbs, tables)
}

func (t *ShardingTable) SetColumns(columns ...string) {
	t.columns = strset.New()
	for _, c := range columns {
		if c = TrimAndLower(c); c != "" {
			t.columns.Add(c)
		}
	}
}

//get all of the configured databases
func (t *ShardingTable) GetDatabases() []string {
	return t.databases
}

//get all of the configured tables
func (t *ShardingTable) GetTables() []string {
	return t.tables
}

func (t *ShardingTable) HasDataNodes() bool {
	return len(t.dataNodes) > 0
}

// ContainsDataNode reports whether the pair is routable; always true when no data nodes are configured.
func (t *ShardingTable) ContainsDataNode(dataSource string, table string) bool {
	if !t.HasDataNodes() {
		return true
	}
	_, ok := t.dataNodes[DataNode{DataSource: dataSource, Table: table}]
	return ok
}

func (t *ShardingTable) HasDbShardingColumn(column string) bool {
	return t.IsDbSharding() && containsColumn(t.DatabaseStrategy.GetShardingColumns(), column)
}

func (t *ShardingTable) HasTableShardingColumn(column string) bool {
	return t.IsTableSharding() && containsColumn(t.TableStrategy.GetShardingColumns(), column)
}

func containsColumn(columns []string, column string) bool {
	c := TrimAndLower(column)
	for _, s := range columns {
		if TrimAndLower(s) == c {
			return true
		}
	}
	return false
}

func (t *ShardingTable) IsDbSharding() bool {
	return !IsNoneStrategy(t.DatabaseStrategy)
}

func (t *ShardingTable) IsTableSharding() bool {
	return !IsNoneStrategy(t.TableStrategy)
}

func (t *ShardingTable) IsSharding() bool {
	return t.IsDbSharding() || t.IsTableSharding()
}

// Validate checks that the table has candidates and that every strategy column is declared.
func (t *ShardingTable) Validate() error {
	if t.Name == "" {
		return NewConfigError("", "logical table name is required")
	}
	if len(t.databases) == 0 {
		return NewConfigError(t.Name, "at least one data source is required")
	}
	if len(t.tables) == 0 {
		return NewConfigError(t.Name, "at least one physical table is required")
	}
	if t.columns == nil {
		return nil
	}
	for _, s := range []ShardingStrategy{t.DatabaseStrategy, t.TableStrategy} {
		if IsNoneStrategy(s) || IsHintStrategy(s) {
			continue
		}
		for _, c := range s.GetShardingColumns() {
			if !t.columns.Has(TrimAndLower(c)) {
				return NewConfigError(t.Name, "sharding column '%s' is not a column of the table", c)
			}
		}
	}
	return nil
}
