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

package script

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/endink/go-sharding/testkit"
)

func TestFlatNoScript(t *testing.T) {
	list := flatInlineExpression("ds_1,ds_2 , ds_3", t)
	assert.Equal(t, []string{"ds_1", "ds_2", "ds_3"}, list)
}

func TestFlatOneDepth(t *testing.T) {
	list := flatInlineExpression("ds_${range(1,3)}", t)
	assert.Equal(t, []string{"ds_1", "ds_2", "ds_3"}, list)
}

func TestFlatTwoDepth(t *testing.T) {
	list := flatInlineExpression("ds_${range(1,3)}_t${range(2,3)}", t)
	assert.Equal(t, 6, len(list))
	assert.Equal(t, "ds_1_t2", list[0])
	assert.Equal(t, "ds_1_t3", list[1])
}

func TestFlatThirdDepth(t *testing.T) {
	list := flatInlineExpression("ds_${range(1,3)}_t${range(2,3)}_b${[5,6,7,8]}", t)
	assert.Equal(t, 24, len(list))
}

func TestMultiFlatThirdDepth(t *testing.T) {
	expr := "ds_${range(1,3)}_t${range(2,3)}_b${[5,6,7,8]},es_${range(2,4)}_t${range(2,3)}_b${[5,6,7,8]}, ts_${range(3,5)}_t${range(2,3)}_b${[5,6,7,8]}"
	list := flatInlineExpression(expr, t)
	assert.Equal(t, 72, len(list))
}

func TestDuplexMultiFlatThirdDepth(t *testing.T) {
	expr := "ds_${range(1,3)}_t${range(2,3)}_b${[5,6,7,8]}, ds_${range(3,4)}_t${range(2,3)}_b${[5,6,7,8]}"
	list := flatInlineExpression(expr, t)
	assert.Equal(t, 32, len(list))
}

func TestFlatDataNodes(t *testing.T) {
	list := flatInlineExpression("ds${range(0,1)}.t_order${[0,1]}", t)
	testkit.AssertStrArrayEquals(t, []string{"ds0.t_order0", "ds0.t_order1", "ds1.t_order0", "ds1.t_order1"}, list)
}

func TestFlatWithVariable(t *testing.T) {
	expr, err := NewInlineExpression("t_order${order_id % 2}", "order_id")
	require.NoError(t, err)

	v, err := expr.FlatScalar(NewVariable("order_id", 11))
	require.NoError(t, err)
	assert.Equal(t, "t_order1", v)

	v, err = expr.FlatScalar(NewVariable("order_id", uint8(4)))
	require.NoError(t, err)
	assert.Equal(t, "t_order0", v)
}

func TestFlatWithTwoVariables(t *testing.T) {
	expr, err := NewInlineExpression("ds${(user_id + order_id) % 4}", "user_id", "order_id")
	require.NoError(t, err)

	v, err := expr.FlatScalar(NewVariable("user_id", 1), NewVariable("order_id", int64(2)))
	require.NoError(t, err)
	assert.Equal(t, "ds3", v)
	assert.Equal(t, []string{"user_id", "order_id"}, expr.VarNames())
}

func TestFlatUndeclaredVariable(t *testing.T) {
	_, err := NewInlineExpression("t_order${order_id % 2}")
	assert.Error(t, err)
}

func TestFlatSetUnknownVariable(t *testing.T) {
	expr, err := NewInlineExpression("t_order${order_id % 2}", "order_id")
	require.NoError(t, err)
	_, err = expr.Flat(NewVariable("user_id", 1))
	assert.Error(t, err)
}

func TestSyntaxError(t *testing.T) {
	for _, expr := range []string{"ds$1", "ds${1", "ds${${1}}"} {
		_, err := NewInlineExpression(expr)
		assert.Error(t, err, expr)
	}
}

func TestFlatConcurrent(t *testing.T) {
	expr, err := NewInlineExpression("t${id % 8}", "id")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			v, e := expr.FlatScalar(NewVariable("id", id))
			assert.NoError(t, e)
			assert.Equal(t, "t"+string(rune('0'+id%8)), v)
		}(i)
	}
	wg.Wait()
}

func flatInlineExpression(expression string, t *testing.T) []string {
	expr, err := NewInlineExpression(expression)
	require.Nil(t, err, "create inline expression fault: %s", expression)
	list, err := expr.Flat()
	require.Nil(t, err, "flat inline expression fault: %s", expression)
	return list
}
