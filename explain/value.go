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
	"github.com/pingcap/parser/opcode"
	"github.com/pingcap/tidb/types"
	driver "github.com/pingcap/tidb/types/parser_driver"

	"github.com/endink/go-sharding/core"
)

// literalValue returns the go value of a literal expression, ok is false for anything which is
// not a supported literal (NULL, parameter markers, functions, columns ...).
func literalValue(n ast.ExprNode) (value interface{}, ok bool) {
	switch v := n.(type) {
	case *driver.ValueExpr:
		return datumValue(v)
	case *ast.ParenthesesExpr:
		return literalValue(v.Expr)
	case *ast.UnaryOperationExpr:
		if v.Op != opcode.Minus {
			return nil, false
		}
		inner, ok := literalValue(v.V)
		if !ok {
			return nil, false
		}
		return negate(inner)
	}
	return nil, false
}

func datumValue(n *driver.ValueExpr) (interface{}, bool) {
	switch n.Kind() {
	case types.KindInt64:
		return n.GetInt64(), true
	case types.KindUint64:
		return n.GetUint64(), true
	case types.KindFloat32:
		return float64(n.GetFloat32()), true
	case types.KindFloat64:
		return n.GetFloat64(), true
	case types.KindString, types.KindBytes:
		return n.GetString(), true
	case types.KindMysqlDecimal:
		f, err := n.GetMysqlDecimal().ToFloat64()
		return f, err == nil
	}
	return nil, false
}

func negate(value interface{}) (interface{}, bool) {
	switch v := value.(type) {
	case int64:
		return -v, true
	case uint64:
		if v > 1<<63 {
			return nil, false
		}
		return -int64(v), true
	case float64:
		return -v, true
	}
	return nil, false
}

// flipOp mirrors a comparison so that the column is always on the left side.
func flipOp(op opcode.Op) opcode.Op {
	switch op {
	case opcode.GT:
		return opcode.LT
	case opcode.GE:
		return opcode.LE
	case opcode.LT:
		return opcode.GT
	case opcode.LE:
		return opcode.GE
	}
	return op
}

// comparisonValue converts "column op value" into a sharding value.
func comparisonValue(column string, op opcode.Op, value interface{}) (core.ShardingValue, error) {
	var rng core.Range
	var err error
	switch op {
	case opcode.EQ:
		return core.NewExactValue(column, value), nil
	case opcode.GT:
		rng, err = core.NewRangeOpen(value, nil)
	case opcode.GE:
		rng, err = core.NewRangeClose(value, nil)
	case opcode.LT:
		rng, err = core.NewRangeOpen(nil, value)
	case opcode.LE:
		rng, err = core.NewRangeClose(nil, value)
	default:
		return nil, fmt.Errorf("explain value fault, unknown opcode: %s", op.String())
	}
	if err != nil {
		return nil, err
	}
	return core.NewRangeValue(column, rng), nil
}

func isComparison(op opcode.Op) bool {
	switch op {
	case opcode.EQ, opcode.GT, opcode.GE, opcode.LT, opcode.LE:
		return true
	}
	return false
}
