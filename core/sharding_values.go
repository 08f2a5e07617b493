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

package core

import "strings"

// ShardingValues holds the sharding values extracted from one statement, grouped by logical table.
// It is built by the SQL analysis side and read only during routing.
type ShardingValues struct {
	tables []string
	values map[string][]ShardingValue
}

func NewShardingValues() *ShardingValues {
	return &ShardingValues{
		values: make(map[string][]ShardingValue),
	}
}

// Add appends values for the logical table, table names are case insensitive.
func (s *ShardingValues) Add(table string, values ...ShardingValue) *ShardingValues {
	t := TrimAndLower(table)
	if _, ok := s.values[t]; !ok {
		s.tables = append(s.tables, t)
		s.values[t] = nil
	}
	for _, v := range values {
		if v != nil {
			s.values[t] = append(s.values[t], v)
		}
	}
	return s
}

// Get returns the values of the logical table, nil receiver is treated as empty.
func (s *ShardingValues) Get(table string) []ShardingValue {
	if s == nil {
		return nil
	}
	return s.values[TrimAndLower(table)]
}

func (s *ShardingValues) Tables() []string {
	if s == nil {
		return nil
	}
	return s.tables
}

func (s *ShardingValues) IsEmpty() bool {
	if s == nil {
		return true
	}
	for _, v := range s.values {
		if len(v) > 0 {
			return false
		}
	}
	return true
}

func (s *ShardingValues) String() string {
	if s == nil {
		return "<none>"
	}
	sb := NewStringBuilder()
	for i, t := range s.tables {
		if i > 0 {
			sb.Write("; ")
		}
		items := make([]string, len(s.values[t]))
		for j, v := range s.values[t] {
			items[j] = v.String()
		}
		sb.WriteFormat("%s[%s]", t, strings.Join(items, ", "))
	}
	return sb.String()
}
