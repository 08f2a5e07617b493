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

var _ ShardingStrategy = &mockedShardingStrategy{}

// MockShardingTable builds a table whose strategies always pick the given names
// (nil picks every candidate).
func MockShardingTable(
	name string,
	databases []string,
	physicalTables []string,
	pickDatabases []string,
	pickTables []string) *ShardingTable {

	t := NewShardingTable(name, MockShardingStrategy(pickDatabases), MockShardingStrategy(pickTables))
	t.SetResources(databases, physicalTables)
	return t
}

func MockShardingStrategy(picks []string, columns ...string) ShardingStrategy {
	return &mockedShardingStrategy{
		columns: columns,
		picks:   picks,
	}
}

type mockedShardingStrategy struct {
	columns []string
	picks   []string
}

func (f *mockedShardingStrategy) GetShardingColumns() []string {
	return f.columns
}

func (f *mockedShardingStrategy) DoSharding(sources []string, _ []ShardingValue) ([]string, error) {
	if f.picks == nil {
		return NoneShardingStrategy.DoSharding(sources, nil)
	}
	result := make([]string, 0, len(f.picks))
	for _, s := range sources {
		for _, p := range f.picks {
			if s == p {
				result = append(result, s)
				break
			}
		}
	}
	return result, nil
}
