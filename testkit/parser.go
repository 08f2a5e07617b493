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

package testkit

import (
	"sync"
	"testing"

	"github.com/pingcap/parser"
	"github.com/pingcap/parser/ast"
	_ "github.com/pingcap/tidb/types/parser_driver"
	"github.com/stretchr/testify/require"
)

// the parser is not safe for concurrent use
var (
	testParser      = parser.New()
	testParserMutex sync.Mutex
)

// ParseStatements parses every statement of the sql text and fails the test on syntax errors.
func ParseStatements(sql string, t testing.TB) []ast.StmtNode {
	t.Helper()
	testParserMutex.Lock()
	defer testParserMutex.Unlock()
	nodes, _, err := testParser.Parse(sql, "", "")
	require.NoError(t, err, "sql: %s", sql)
	return nodes
}

// ParseForTest parses exactly one statement.
func ParseForTest(sql string, t testing.TB) ast.StmtNode {
	t.Helper()
	nodes := ParseStatements(sql, t)
	require.Len(t, nodes, 1, "one statement is expected, sql: %s", sql)
	return nodes[0]
}

func ParseSelect(sql string, t testing.TB) *ast.SelectStmt {
	t.Helper()
	sel, ok := ParseForTest(sql, t).(*ast.SelectStmt)
	require.True(t, ok, "provided content is not select sql text\nSQL:\n%s", sql)
	return sel
}
