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

import "strings"

// Tag is a PostgreSQL command tag, the first word(s) of a CommandComplete message.
type Tag int

const (
	Select Tag = iota
	Insert
	Update
	Delete
	Call
	Do
	Analyze
	Vacuum
	AlterFunction
	AlterIndex
	AlterProcedure
	AlterSequence
	AlterTablespace
	AlterTable
	AlterView
	Create
	CreateDatabase
	CreateFunction
	CreateIndex
	CreateProcedure
	CreateSequence
	CreateTablespace
	CreateTable
	CreateView
	DropDatabase
	DropFunction
	DropIndex
	DropProcedure
	DropSequence
	DropTablespace
	DropTable
	DropView
	TruncateTable
	Begin
	StartTransaction
	Commit
	Savepoint
	Rollback
	Release
	Set
	Reset
)

var tagNames = [...]string{
	Select:           "SELECT",
	Insert:           "INSERT",
	Update:           "UPDATE",
	Delete:           "DELETE",
	Call:             "CALL",
	Do:               "DO",
	Analyze:          "ANALYZE",
	Vacuum:           "VACUUM",
	AlterFunction:    "ALTER_FUNCTION",
	AlterIndex:       "ALTER_INDEX",
	AlterProcedure:   "ALTER_PROCEDURE",
	AlterSequence:    "ALTER_SEQUENCE",
	AlterTablespace:  "ALTER_TABLESPACE",
	AlterTable:       "ALTER_TABLE",
	AlterView:        "ALTER_VIEW",
	Create:           "CREATE",
	CreateDatabase:   "CREATE_DATABASE",
	CreateFunction:   "CREATE_FUNCTION",
	CreateIndex:      "CREATE_INDEX",
	CreateProcedure:  "CREATE_PROCEDURE",
	CreateSequence:   "CREATE_SEQUENCE",
	CreateTablespace: "CREATE_TABLESPACE",
	CreateTable:      "CREATE_TABLE",
	CreateView:       "CREATE_VIEW",
	DropDatabase:     "DROP_DATABASE",
	DropFunction:     "DROP_FUNCTION",
	DropIndex:        "DROP_INDEX",
	DropProcedure:    "DROP_PROCEDURE",
	DropSequence:     "DROP_SEQUENCE",
	DropTablespace:   "DROP_TABLESPACE",
	DropTable:        "DROP_TABLE",
	DropView:         "DROP_VIEW",
	TruncateTable:    "TRUNCATE_TABLE",
	Begin:            "BEGIN",
	StartTransaction: "START_TRANSACTION",
	Commit:           "COMMIT",
	Savepoint:        "SAVEPOINT",
	Rollback:         "ROLLBACK",
	Release:          "RELEASE",
	Set:              "SET",
	Reset:            "RESET",
}

var displayNames [len(tagNames)]string

func init() {
	for i, name := range tagNames {
		displayNames[i] = strings.ReplaceAll(name, "_", " ")
	}
}

// Tags returns every tag in declaration order.
func Tags() []Tag {
	tags := make([]Tag, len(tagNames))
	for i := range tagNames {
		tags[i] = Tag(i)
	}
	return tags
}

func (t Tag) IsValid() bool {
	return t >= 0 && int(t) < len(tagNames)
}

// Name returns the enumeration name, e.g. ALTER_TABLE.
func (t Tag) Name() string {
	if !t.IsValid() {
		return "UNKNOWN"
	}
	return tagNames[t]
}

// String returns the tag sent to clients, e.g. ALTER TABLE.
func (t Tag) String() string {
	if !t.IsValid() {
		return "UNKNOWN"
	}
	return displayNames[t]
}
