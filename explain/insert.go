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

// explainInsert collects the inserted values of every column, one list entry per row.
// A column with any non literal value is left unrestricted.
func explainInsert(stmt *ast.InsertStmt, lookup *tableLookup) (constraint, error) {
	result := newConstraint()
	if stmt.Select != nil || stmt.Table == nil || stmt.Table.TableRefs == nil {
		return result, nil
	}
	table, ok := insertTableName(stmt.Table.TableRefs)
	if !ok {
		return result, nil
	}

	var columns []string
	var rows [][]ast.ExprNode
	if len(stmt.Setlist) > 0 {
		row := make([]ast.ExprNode, len(stmt.Setlist))
		for i, a := range stmt.Setlist {
			columns = append(columns, core.TrimAndLower(a.Column.Name.O))
			row[i] = a.Expr
		}
		rows = append(rows, row)
	} else {
		if len(stmt.Columns) == 0 {
			// without a column list values can not be mapped to columns
			return result, nil
		}
		for _, c := range stmt.Columns {
			columns = append(columns, core.TrimAndLower(c.Name.O))
		}
		rows = stmt.Lists
	}

	for i, column := range columns {
		if !lookup.isShardingColumn(table, column) {
			continue
		}
		values := make([]interface{}, 0, len(rows))
		literal := true
		for _, row := range rows {
			if len(row) != len(columns) {
				return result, fmt.Errorf("column count doesn't match value count, columns: %d, values: %d", len(columns), len(row))
			}
			v, ok := literalValue(row[i])
			if !ok {
				literal = false
				break
			}
			if !containsValue(values, v) {
				values = append(values, v)
			}
		}
		if !literal || len(values) == 0 {
			continue
		}
		key := columnKey{table: table, column: column}
		if _, exists := result.values[key]; exists {
			continue
		}
		result.keys = append(result.keys, key)
		if len(values) == 1 {
			result.values[key] = core.NewExactValue(column, values[0])
		} else {
			result.values[key] = core.NewListValue(column, values...)
		}
	}
	return result, nil
}

func insertTableName(join *ast.Join) (string, bool) {
	ts, ok := join.Left.(*ast.TableSource)
	if !ok {
		return "", false
	}
	tn, ok := ts.Source.(*ast.TableName)
	if !ok {
		return "", false
	}
	return tn.Name.L, true
}
