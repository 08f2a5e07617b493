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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNewRange(t *testing.T, lower interface{}, upper interface{}) Range {
	r, err := NewRange(lower, upper)
	require.NoError(t, err)
	return r
}

func TestShardingValueColumnNormalized(t *testing.T) {
	assert.Equal(t, "user_id", NewExactValue(" User_ID ", 1).GetColumn())
	assert.Equal(t, "user_id", NewListValue("USER_ID", 1, 2).GetColumn())
	assert.Equal(t, "user_id", NewRangeValue("user_id ", mustNewRange(t, 1, 2)).GetColumn())
}

func TestListValueCopiesInput(t *testing.T) {
	values := []interface{}{1, 2}
	v := NewListValue("a", values...)
	values[0] = 100
	assert.Equal(t, []interface{}{1, 2}, v.Values)
}

func TestValuesOfColumn(t *testing.T) {
	values := []ShardingValue{
		NewExactValue("a", 1),
		NewExactValue("b", 2),
		NewListValue("a", 3, 4),
	}
	result := ValuesOfColumn(values, "A")
	assert.Len(t, result, 2)
	assert.Empty(t, ValuesOfColumn(values, "c"))
}

func TestAndValueScalars(t *testing.T) {
	v, err := AndValue(NewListValue("a", 1, 2, 3), NewListValue("a", int64(2), int64(3), int64(4)))
	require.NoError(t, err)
	list, ok := v.(*ListValue)
	require.True(t, ok)
	assert.Equal(t, []interface{}{2, 3}, list.Values)

	v, err = AndValue(NewExactValue("a", 1), NewListValue("a", 1, 2))
	require.NoError(t, err)
	assert.Equal(t, NewExactValue("a", 1), v)

	v, err = AndValue(NewExactValue("a", 1), NewExactValue("a", 2))
	require.NoError(t, err)
	assert.Empty(t, v.(*ListValue).Values)
}

func TestAndValueWithRange(t *testing.T) {
	v, err := AndValue(NewListValue("a", 1, 5, 10), NewRangeValue("a", mustNewRange(t, 2, 10)))
	require.NoError(t, err)
	assert.Equal(t, []interface{}{5, 10}, v.(*ListValue).Values)

	v, err = AndValue(NewRangeValue("a", mustNewRange(t, 0, 10)), NewRangeValue("a", mustNewRange(t, 5, 20)))
	require.NoError(t, err)
	assert.Equal(t, "a:[5..10]", v.String())

	v, err = AndValue(NewRangeValue("a", mustNewRange(t, 0, 1)), NewRangeValue("a", mustNewRange(t, 5, 20)))
	require.NoError(t, err)
	assert.Empty(t, v.(*ListValue).Values)
}

func TestAndValueDifferentColumns(t *testing.T) {
	_, err := AndValue(NewExactValue("a", 1), NewExactValue("b", 1))
	assert.Error(t, err)

	v, err := AndValue(nil, NewExactValue("b", 1))
	assert.NoError(t, err)
	assert.Equal(t, "b", v.GetColumn())
}

func TestShardingValues(t *testing.T) {
	var empty *ShardingValues
	assert.True(t, empty.IsEmpty())
	assert.Nil(t, empty.Get("t"))

	values := NewShardingValues().
		Add("T_Order", NewExactValue("order_id", 1)).
		Add("t_item").
		Add("t_order", NewExactValue("user_id", 2))

	assert.False(t, values.IsEmpty())
	assert.Equal(t, []string{"t_order", "t_item"}, values.Tables())
	assert.Len(t, values.Get("t_order"), 2)
	assert.Equal(t, "t_order[order_id=1, user_id=2]; t_item[]", values.String())
}

func TestShardingTableValidate(t *testing.T) {
	table := NewShardingTable("t_order", MockShardingStrategy(nil, "user_id"), nil)
	assert.ErrorIs(t, table.Validate(), ErrConfiguration)

	table.SetResources([]string{"ds0", "ds1", "ds0"}, []string{"t_order"})
	assert.Equal(t, []string{"ds0", "ds1"}, table.GetDatabases())
	assert.NoError(t, table.Validate())
	assert.True(t, table.IsDbSharding())
	assert.False(t, table.IsTableSharding())
	assert.True(t, table.HasDbShardingColumn("USER_ID"))

	table.SetColumns("order_id")
	err := table.Validate()
	var configErr *ConfigError
	assert.ErrorAs(t, err, &configErr)
	assert.Equal(t, "t_order", configErr.Table)
}

func TestShardingTableDataNodes(t *testing.T) {
	table := NewShardingTable("t_order", nil, nil)
	assert.True(t, table.ContainsDataNode("ds9", "t_any"))

	table.SetDataNodes(
		DataNode{DataSource: "ds0", Table: "t_order0"},
		DataNode{DataSource: "ds1", Table: "t_order1"},
	)
	assert.Equal(t, []string{"ds0", "ds1"}, table.GetDatabases())
	assert.Equal(t, []string{"t_order0", "t_order1"}, table.GetTables())
	assert.True(t, table.ContainsDataNode("ds0", "t_order0"))
	assert.False(t, table.ContainsDataNode("ds0", "t_order1"))
}

func TestShardingTableDataNodesWithDottedNames(t *testing.T) {
	table := NewShardingTable("t_order", nil, nil)
	table.SetDataNodes(
		DataNode{DataSource: "a.b", Table: "c"},
		DataNode{DataSource: "a", Table: "b.c"},
	)
	assert.True(t, table.ContainsDataNode("a.b", "c"))
	assert.True(t, table.ContainsDataNode("a", "b.c"))
	assert.False(t, table.ContainsDataNode("a", "c"))
	assert.False(t, table.ContainsDataNode("a.b", "b.c"))
}

func TestNoneShardingStrategyCopies(t *testing.T) {
	candidates := []string{"a", "b"}
	result, err := NoneShardingStrategy.DoSharding(candidates, nil)
	require.NoError(t, err)
	assert.Equal(t, candidates, result)
	result[0] = "x"
	assert.Equal(t, "a", candidates[0])

	result, err = NoneShardingStrategy.DoSharding(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, result)
}
