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

package routing

import (
	"context"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/endink/go-sharding/core"
	"github.com/endink/go-sharding/driver/strategy"
)

func mockRule(t *testing.T, tables ...*core.ShardingTable) *Rule {
	r := NewRule("ds1", "ds2")
	require.NoError(t, r.AddTable(tables...))
	return r
}

func units(pairs ...string) []RouteUnit {
	result := make([]RouteUnit, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		result = append(result, RouteUnit{DataSource: pairs[i], Table: pairs[i+1]})
	}
	return result
}

func TestRouteCartesianUnits(t *testing.T) {
	table := core.MockShardingTable("t_order",
		[]string{"ds1", "ds2", "ds3"}, []string{"t1", "t2"},
		[]string{"ds1", "ds2"}, []string{"t1"})
	engine := NewEngine(mockRule(t, table))

	result, err := engine.Route(context.Background(), []string{"T_ORDER"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"t_order"}, result.Tables)
	assert.Equal(t, []RouteTarget{
		{{DataSource: "ds1", Table: "t1"}},
		{{DataSource: "ds2", Table: "t1"}},
	}, result.Targets)
	assert.Equal(t, units("ds1", "t1", "ds2", "t1"), result.Units("t_order"))
	assert.Equal(t, []string{"ds1", "ds2"}, result.DataSources())
}

func TestRouteBindingTablesAreAligned(t *testing.T) {
	a := core.MockShardingTable("a", []string{"dsA1", "dsA2"}, []string{"tA1", "tA2"}, nil, nil)
	a.SetDataNodes(core.DataNode{DataSource: "dsA1", Table: "tA1"}, core.DataNode{DataSource: "dsA2", Table: "tA2"})
	b := core.MockShardingTable("b", []string{"dsB1", "dsB2"}, []string{"tB1", "tB2"}, nil, nil)
	b.SetDataNodes(core.DataNode{DataSource: "dsB1", Table: "tB1"}, core.DataNode{DataSource: "dsB2", Table: "tB2"})

	rule := mockRule(t, a, b)
	require.NoError(t, rule.AddBindingGroup("a", "b"))

	result, err := NewEngine(rule).Route(context.Background(), []string{"a", "b"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []RouteTarget{
		{{DataSource: "dsA1", Table: "tA1"}, {DataSource: "dsB1", Table: "tB1"}},
		{{DataSource: "dsA2", Table: "tA2"}, {DataSource: "dsB2", Table: "tB2"}},
	}, result.Targets)
}

func TestRouteBindingFallbackToCartesian(t *testing.T) {
	a := core.MockShardingTable("a", []string{"ds1"}, []string{"a0", "a1"}, nil, nil)
	b := core.MockShardingTable("b", []string{"ds1"}, []string{"b0", "b1"}, nil, []string{"b1"})
	rule := mockRule(t, a, b)
	require.NoError(t, rule.AddBindingGroup("a", "b"))

	before := testutil.ToFloat64(bindingFallbackCounter.WithLabelValues())
	result, err := NewEngine(rule).Route(context.Background(), []string{"a", "b"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []RouteTarget{
		{{DataSource: "ds1", Table: "a0"}, {DataSource: "ds1", Table: "b1"}},
		{{DataSource: "ds1", Table: "a1"}, {DataSource: "ds1", Table: "b1"}},
	}, result.Targets)
	assert.Equal(t, before+1, testutil.ToFloat64(bindingFallbackCounter.WithLabelValues()))
}

func TestRouteUnrelatedTablesCartesian(t *testing.T) {
	a := core.MockShardingTable("a", []string{"ds1"}, []string{"a0", "a1"}, nil, nil)
	b := core.MockShardingTable("b", []string{"ds1"}, []string{"b0", "b1"}, nil, nil)
	result, err := NewEngine(mockRule(t, a, b)).Route(context.Background(), []string{"b", "a"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, result.Tables)
	require.Len(t, result.Targets, 4)
	assert.Equal(t, RouteTarget{{DataSource: "ds1", Table: "b0"}, {DataSource: "ds1", Table: "a0"}}, result.Targets[0])
	assert.Equal(t, RouteTarget{{DataSource: "ds1", Table: "b1"}, {DataSource: "ds1", Table: "a1"}}, result.Targets[3])
}

func TestRouteBindingGroupWithUnrelatedTable(t *testing.T) {
	a := core.MockShardingTable("a", []string{"ds1"}, []string{"a0", "a1"}, nil, nil)
	b := core.MockShardingTable("b", []string{"ds1"}, []string{"b0", "b1"}, nil, nil)
	c := core.MockShardingTable("c", []string{"ds1", "ds2"}, []string{"c"}, nil, nil)
	rule := mockRule(t, a, b, c)
	require.NoError(t, rule.AddBindingGroup("a", "b"))

	result, err := NewEngine(rule).Route(context.Background(), []string{"a", "c", "b"}, nil)
	require.NoError(t, err)
	require.Len(t, result.Targets, 4)
	for _, target := range result.Targets {
		assert.Equal(t, target[0].Table[1:], target[2].Table[1:])
	}
}

func TestRouteMissingMetadata(t *testing.T) {
	a := core.MockShardingTable("a", []string{"ds1"}, []string{"a0"}, nil, nil)
	result, err := NewEngine(mockRule(t, a)).Route(context.Background(), []string{"a", "t_missing"}, nil)
	assert.Nil(t, result)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrConfiguration)

	var configErr *core.ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "t_missing", configErr.Table)
}

func TestRouteNoMatchIsNotAnError(t *testing.T) {
	a := core.MockShardingTable("a", []string{"ds1"}, []string{"a0"}, nil, []string{})
	b := core.MockShardingTable("b", []string{"ds1"}, []string{"b0"}, nil, nil)
	result, err := NewEngine(mockRule(t, a, b)).Route(context.Background(), []string{"a", "b"}, nil)
	require.NoError(t, err)
	assert.True(t, result.IsEmpty())
	assert.Empty(t, result.Units("a"))
}

func TestRouteNoTables(t *testing.T) {
	result, err := NewEngine(nil).Route(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.True(t, result.IsEmpty())
}

func TestRouteDataNodesFilterUnits(t *testing.T) {
	table := core.NewShardingTable("t_order", nil, nil)
	table.SetDataNodes(
		core.DataNode{DataSource: "ds1", Table: "t_order0"},
		core.DataNode{DataSource: "ds2", Table: "t_order1"},
	)
	result, err := NewEngine(mockRule(t, table)).Route(context.Background(), []string{"t_order"}, nil)
	require.NoError(t, err)
	assert.Equal(t, units("ds1", "t_order0", "ds2", "t_order1"), result.Units("t_order"))
}

func TestRouteKeepsUnitsWithDottedNames(t *testing.T) {
	table := core.NewShardingTable("t_order", nil, nil)
	table.SetDataNodes(
		core.DataNode{DataSource: "a.b", Table: "c"},
		core.DataNode{DataSource: "a", Table: "b.c"},
	)
	result, err := NewEngine(mockRule(t, table)).Route(context.Background(), []string{"t_order"}, nil)
	require.NoError(t, err)
	require.Len(t, result.Targets, 2)
	assert.Equal(t, units("a.b", "c", "a", "b.c"), result.Units("t_order"))
}

func TestDistinctTargets(t *testing.T) {
	targets := []RouteTarget{
		units("a.b", "c"),
		units("a", "b.c"),
		units("a.b", "c"),
	}
	assert.Equal(t, targets[:2], distinctTargets(targets))
}

func newOrderTable(t *testing.T) *core.ShardingTable {
	dbAlgorithm, err := strategy.NewInline("ds${user_id % 2}", "user_id")
	require.NoError(t, err)
	tableAlgorithm, err := strategy.NewMod(2)
	require.NoError(t, err)

	table := core.NewShardingTable("t_order",
		strategy.NewStandard("user_id", dbAlgorithm),
		strategy.NewStandard("order_id", tableAlgorithm))
	table.SetResources([]string{"ds0", "ds1"}, []string{"t_order0", "t_order1"})
	table.SetColumns("user_id", "order_id", "status")
	require.NoError(t, table.Validate())
	return table
}

func TestRouteWithStrategies(t *testing.T) {
	rule := NewRule("ds0", "ds1")
	require.NoError(t, rule.AddTable(newOrderTable(t)))
	engine := NewEngine(rule)

	values := core.NewShardingValues().Add("t_order",
		core.NewExactValue("user_id", 3),
		core.NewListValue("order_id", 10, 11),
		core.NewExactValue("status", "paid"),
	)
	result, err := engine.Route(context.Background(), []string{"t_order"}, values)
	require.NoError(t, err)
	assert.Equal(t, units("ds1", "t_order0", "ds1", "t_order1"), result.Units("t_order"))

	values = core.NewShardingValues().Add("t_order", core.NewExactValue("order_id", 10))
	result, err = engine.Route(context.Background(), []string{"t_order"}, values)
	require.NoError(t, err)
	assert.Equal(t, units("ds0", "t_order0", "ds1", "t_order0"), result.Units("t_order"))
}

func TestRouteStrategyFailureNamesTable(t *testing.T) {
	rule := NewRule("ds0", "ds1")
	require.NoError(t, rule.AddTable(newOrderTable(t)))

	values := core.NewShardingValues().Add("t_order", core.NewExactValue("order_id", "not-a-number"))
	_, err := NewEngine(rule).Route(context.Background(), []string{"t_order"}, values)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "t_order")
}

func TestRouteWithHint(t *testing.T) {
	dbAlgorithm, err := strategy.NewMod(2)
	require.NoError(t, err)
	table := core.NewShardingTable("t_log", strategy.NewHint("", dbAlgorithm), nil)
	table.SetResources([]string{"ds0", "ds1"}, []string{"t_log"})
	rule := NewRule("ds0", "ds1")
	require.NoError(t, rule.AddTable(table))
	engine := NewEngine(rule)

	values := core.NewShardingValues().Add("t_log", core.NewExactValue(strategy.DefaultHintColumn, 0))

	result, err := engine.Route(context.Background(), []string{"t_log"}, values)
	require.NoError(t, err)
	assert.Len(t, result.Targets, 2)

	ctx := WithHint(context.Background(), NewHintValues().AddDatabaseValue("T_LOG", 1))
	result, err = engine.Route(ctx, []string{"t_log"}, values)
	require.NoError(t, err)
	assert.Equal(t, units("ds1", "t_log"), result.Units("t_log"))
}

func TestRouteBroadcastTable(t *testing.T) {
	rule := NewRule("ds0", "ds1")
	require.NoError(t, rule.AddBroadcastTable("t_dict"))
	assert.True(t, rule.IsBroadcastTable("T_DICT"))
	assert.False(t, rule.IsShardingTable("t_dict"))

	result, err := NewEngine(rule).Route(context.Background(), []string{"t_dict"}, nil)
	require.NoError(t, err)
	assert.Equal(t, units("ds0", "t_dict", "ds1", "t_dict"), result.Units("t_dict"))
}

func TestRouteConcurrent(t *testing.T) {
	rule := NewRule("ds0", "ds1")
	require.NoError(t, rule.AddTable(newOrderTable(t)))
	engine := NewEngine(rule)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			values := core.NewShardingValues().Add("t_order",
				core.NewExactValue("user_id", id),
				core.NewExactValue("order_id", id))
			result, err := engine.Route(context.Background(), []string{"t_order"}, values)
			assert.NoError(t, err)
			expected := units("ds"+string(rune('0'+id%2)), "t_order"+string(rune('0'+id%2)))
			assert.Equal(t, expected, result.Units("t_order"))
		}(i)
	}
	wg.Wait()
}

func TestRuleBindingGroupValidation(t *testing.T) {
	rule := NewRule("ds0")
	assert.Error(t, rule.AddBindingGroup("a"))
	require.NoError(t, rule.AddBindingGroup("a", "B"))
	assert.Error(t, rule.AddBindingGroup("b", "c"))
	assert.Equal(t, [][]string{{"a", "b"}}, rule.BindingGroups())

	errs := multierr.Errors(rule.Validate())
	require.Len(t, errs, 2)
	for _, err := range errs {
		assert.ErrorIs(t, err, core.ErrConfiguration)
		assert.Contains(t, err.Error(), "binding table is not declared")
	}
}

func TestRuleDuplicateTable(t *testing.T) {
	rule := NewRule("ds0")
	require.NoError(t, rule.AddTable(core.NewShardingTable("a", nil, nil)))
	assert.ErrorIs(t, rule.AddTable(core.NewShardingTable("A", nil, nil)), core.ErrConfiguration)
}
