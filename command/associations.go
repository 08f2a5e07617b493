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

package command

import (
	"github.com/pingcap/parser/ast"
)

// DefaultAssociations lists the tags in declaration order with the MySQL statements of the parser
// answering to them. Tags without a statement in the parser have no matcher.
func DefaultAssociations() []Association {
	return []Association{
		Associate(Select, Is[*ast.SelectStmt](), Is[*ast.UnionStmt]()),
		Associate(Insert, Is[*ast.InsertStmt]()),
		Associate(Update, Is[*ast.UpdateStmt]()),
		Associate(Delete, Is[*ast.DeleteStmt]()),
		Associate(Call),
		Associate(Do, Is[*ast.DoStmt]()),
		Associate(Analyze, Is[*ast.AnalyzeTableStmt]()),
		Associate(Vacuum),
		Associate(AlterFunction),
		Associate(AlterIndex),
		Associate(AlterProcedure),
		Associate(AlterSequence),
		Associate(AlterTablespace),
		Associate(AlterTable, Is[*ast.AlterTableStmt]()),
		Associate(AlterView),
		Associate(Create),
		Associate(CreateDatabase, Is[*ast.CreateDatabaseStmt]()),
		Associate(CreateFunction),
		Associate(CreateIndex, Is[*ast.CreateIndexStmt]()),
		Associate(CreateProcedure),
		Associate(CreateSequence, Is[*ast.CreateSequenceStmt]()),
		Associate(CreateTablespace),
		Associate(CreateTable, Is[*ast.CreateTableStmt]()),
		Associate(CreateView, Is[*ast.CreateViewStmt]()),
		Associate(DropDatabase, Is[*ast.DropDatabaseStmt]()),
		Associate(DropFunction),
		Associate(DropIndex, Is[*ast.DropIndexStmt]()),
		Associate(DropProcedure),
		Associate(DropSequence, Is[*ast.DropSequenceStmt]()),
		Associate(DropTablespace),
		// DROP VIEW is a DropTableStmt too, the type can not tell them apart
		Associate(DropTable, Is[*ast.DropTableStmt]()),
		Associate(DropView),
		Associate(TruncateTable, Is[*ast.TruncateTableStmt]()),
		Associate(Begin, Is[*ast.BeginStmt]()),
		Associate(StartTransaction, Is[*ast.BeginStmt]()),
		Associate(Commit, Is[*ast.CommitStmt]()),
		Associate(Savepoint),
		Associate(Rollback, Is[*ast.RollbackStmt]()),
		Associate(Release),
		Associate(Set, Is[*ast.SetStmt]()),
		Associate(Reset),
	}
}

var defaultClassifier = NewClassifier(DefaultAssociations()...)

// Classify returns the tag of the statement with the default associations.
func Classify(stmt ast.StmtNode) (Tag, bool) {
	return defaultClassifier.Classify(stmt)
}
