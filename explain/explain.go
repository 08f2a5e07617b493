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
	"github.com/pingcap/errors"
	"github.com/pingcap/parser/ast"

	"github.com/endink/go-sharding/core"
	"github.com/endink/go-sharding/logging"
)

var Logger = logging.GetLogger("explain")

// ShardingTableProvider returns the routing metadata of a logical table, *routing.Rule is one.
type ShardingTableProvider interface {
	GetShardingTable(table string) (*core.ShardingTable, bool)
}

// Result is what routing needs to know about a statement.
type Result struct {
	Tables []string
	Values *core.ShardingValues
}

// Analyze collects the logical tables of a statement and the sharding values of its conditions.
// Only conditions which certainly restrict a column are collected, so routing by the result
// never misses a matching row. The provider may be nil.
func Analyze(stmt ast.StmtNode, provider ShardingTableProvider) (*Result, error) {
	if stmt == nil {
		return nil, errors.New("statement to analyze can not be nil")
	}
	lookup := newTableLookup(provider)
	stmt.Accept(lookup)
	if lookup.err != nil {
		return nil, errors.Trace(lookup.err)
	}

	result := &Result{
		Tables: lookup.GetTables(),
		Values: core.NewShardingValues(),
	}
	for _, t := range result.Tables {
		result.Values.Add(t)
	}

	var c constraint
	var err error
	switch s := stmt.(type) {
	case *ast.SelectStmt:
		c, err = explainCondition(s.Where, lookup)
	case *ast.UpdateStmt:
		c, err = explainCondition(s.Where, lookup)
	case *ast.DeleteStmt:
		c, err = explainCondition(s.Where, lookup)
	case *ast.InsertStmt:
		c, err = explainInsert(s, lookup)
	}
	if err != nil {
		return nil, errors.Annotatef(err, "analyze statement '%s' fault", stmt.Text())
	}

	for _, key := range c.keys {
		result.Values.Add(key.table, c.values[key])
	}
	Logger.Debugf("analyzed tables: %v, values: %s", result.Tables, result.Values)
	return result, nil
}
