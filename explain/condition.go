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
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/pingcap/errors"
	"github.com/pingcap/parser/ast"
	"github.com/pingcap/parser/opcode"

	"github.com/endink/go-sharding/core"
)

// explainCondition builds the constraint implied by a WHERE expression. Conditions which can
// not be understood leave their columns unrestricted.
func explainCondition(expr ast.ExprNode, lookup *tableLookup) (constraint, error) {
	if expr == nil {
		return newConstraint(), nil
	}
	expr = unwrapParentheses(expr)

	if b, ok := expr.(*ast.BinaryOperationExpr); ok {
		switch b.Op {
		case opcode.LogicAnd:
			return explainAnd(flatten(b, opcode.LogicAnd), lookup)
		case opcode.LogicOr:
			return explainOr(flatten(b, opcode.LogicOr), lookup)
		}
	}
	return explainLeaf(expr, lookup)
}

// flatten collects the operands of a chain of the same logic operator, left to right.
func flatten(expr ast.ExprNode, logic opcode.Op) []ast.ExprNode {
	var operands []ast.ExprNode
	stack := arraystack.New()
	stack.Push(expr)
	for !stack.Empty() {
		v, _ := stack.Pop()
		node := unwrapParentheses(v.(ast.ExprNode))
		if b, ok := node.(*ast.BinaryOperationExpr); ok && b.Op == logic {
			stack.Push(b.R)
			stack.Push(b.L)
			continue
		}
		operands = append(operands, node)
	}
	return operands
}

func unwrapParentheses(expr ast.ExprNode) ast.ExprNode {
	for {
		p, ok := expr.(*ast.ParenthesesExpr)
		if !ok {
			return expr
		}
		expr = p.Expr
	}
}

func explainAnd(operands []ast.ExprNode, lookup *tableLookup) (constraint, error) {
	result := newConstraint()
	for _, operand := range operands {
		c, err := explainCondition(operand, lookup)
		if err != nil {
			return result, err
		}
		for _, key := range c.keys {
			current, exists := result.values[key]
			merged, err := core.AndValue(current, c.values[key])
			if err != nil {
				return result, errors.Annotatef(err, "merge conditions of column '%s' fault", key)
			}
			if !exists {
				result.keys = append(result.keys, key)
			}
			result.values[key] = merged
		}
	}
	return result, nil
}

// explainOr keeps a column only when every branch restricts it to discrete values.
func explainOr(operands []ast.ExprNode, lookup *tableLookup) (constraint, error) {
	var result constraint
	for i, operand := range operands {
		c, err := explainCondition(operand, lookup)
		if err != nil {
			return newConstraint(), err
		}
		if i == 0 {
			result = newConstraint()
			for _, key := range c.keys {
				if _, ok := core.ScalarValues(c.values[key]); ok {
					result.keys = append(result.keys, key)
					result.values[key] = c.values[key]
				}
			}
			continue
		}
		result = orMerge(result, c)
	}
	return result, nil
}

func orMerge(a, b constraint) constraint {
	result := newConstraint()
	for _, key := range a.keys {
		bv, ok := b.values[key]
		if !ok {
			continue
		}
		right, ok := core.ScalarValues(bv)
		if !ok {
			continue
		}
		left, _ := core.ScalarValues(a.values[key])
		union := make([]interface{}, 0, len(left)+len(right))
		for _, v := range append(append([]interface{}{}, left...), right...) {
			if !containsValue(union, v) {
				union = append(union, v)
			}
		}
		result.keys = append(result.keys, key)
		if len(union) == 1 {
			result.values[key] = core.NewExactValue(key.column, union[0])
		} else {
			result.values[key] = core.NewListValue(key.column, union...)
		}
	}
	return result
}

func containsValue(values []interface{}, value interface{}) bool {
	for _, v := range values {
		if core.ScalarEquals(v, value) {
			return true
		}
	}
	return false
}

func explainLeaf(expr ast.ExprNode, lookup *tableLookup) (constraint, error) {
	switch n := expr.(type) {
	case *ast.BinaryOperationExpr:
		if !isComparison(n.Op) {
			break
		}
		op := n.Op
		col, isCol := n.L.(*ast.ColumnNameExpr)
		valueNode := n.R
		if !isCol {
			col, isCol = n.R.(*ast.ColumnNameExpr)
			valueNode = n.L
			op = flipOp(op)
		}
		if !isCol {
			break
		}
		key, ok := columnKeyOf(col, lookup)
		if !ok {
			break
		}
		value, ok := literalValue(valueNode)
		if !ok {
			break
		}
		sv, err := comparisonValue(key.column, op, value)
		if err != nil {
			return newConstraint(), errors.Annotatef(err, "explain condition of column '%s' fault", key)
		}
		return singleConstraint(key, sv), nil
	case *ast.PatternInExpr:
		if n.Not || n.Sel != nil {
			break
		}
		col, isCol := n.Expr.(*ast.ColumnNameExpr)
		if !isCol {
			break
		}
		key, ok := columnKeyOf(col, lookup)
		if !ok {
			break
		}
		values := make([]interface{}, 0, len(n.List))
		for _, item := range n.List {
			v, ok := literalValue(item)
			if !ok {
				return newConstraint(), nil
			}
			if !containsValue(values, v) {
				values = append(values, v)
			}
		}
		if len(values) == 1 {
			return singleConstraint(key, core.NewExactValue(key.column, values[0])), nil
		}
		return singleConstraint(key, core.NewListValue(key.column, values...)), nil
	case *ast.BetweenExpr:
		if n.Not {
			break
		}
		col, isCol := n.Expr.(*ast.ColumnNameExpr)
		if !isCol {
			break
		}
		key, ok := columnKeyOf(col, lookup)
		if !ok {
			break
		}
		lower, lok := literalValue(n.Left)
		upper, uok := literalValue(n.Right)
		if !lok || !uok {
			break
		}
		rng, err := core.NewRangeClose(lower, upper)
		if errors.Cause(err) == core.ErrRangeInvalidBound {
			return singleConstraint(key, core.NewListValue(key.column)), nil
		}
		if err != nil {
			return newConstraint(), errors.Annotatef(err, "explain between condition of column '%s' fault", key)
		}
		return singleConstraint(key, core.NewRangeValue(key.column, rng)), nil
	}
	return newConstraint(), nil
}

func columnKeyOf(col *ast.ColumnNameExpr, lookup *tableLookup) (columnKey, bool) {
	table, ok := lookup.resolveColumn(col.Name)
	if !ok {
		return columnKey{}, false
	}
	return columnKey{table: table, column: core.TrimAndLower(col.Name.Name.O)}, true
}
