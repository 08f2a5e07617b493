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

package strategy

import (
	"fmt"

	"github.com/endink/go-sharding/core"
	"github.com/endink/go-sharding/core/script"
)

var _ PreciseAlgorithm = &Inline{}
var _ ComplexAlgorithm = &Inline{}

// Inline evaluates an inline expression over the sharding column variables, e.g. t_order${order_id % 2}.
type Inline struct {
	Columns    []string
	Expression script.InlineExpression
}

func NewInline(expression string, columns ...string) (*Inline, error) {
	expr, err := script.NewInlineExpression(expression, columns...)
	if err != nil {
		return nil, err
	}
	return &Inline{Columns: columns, Expression: expr}, nil
}

func (i *Inline) IsShardingColumn(column string) bool {
	_, ok := i.varName(column)
	return ok
}

// varName maps a normalized column to the variable name used in the expression.
func (i *Inline) varName(column string) (string, bool) {
	c := core.TrimAndLower(column)
	for _, name := range i.Columns {
		if core.TrimAndLower(name) == c {
			return name, true
		}
	}
	return "", false
}

func (i *Inline) DoPreciseSharding(_ []string, column string, value interface{}) ([]string, error) {
	name, ok := i.varName(column)
	if !ok {
		return nil, fmt.Errorf("column '%s' is not used by inline expression '%s'", column, i.Expression.RawExpression())
	}
	return i.Expression.Flat(script.NewVariable(name, value))
}

func (i *Inline) DoComplexSharding(_ []string, columns []string, values []interface{}) ([]string, error) {
	if len(columns) != len(values) {
		return nil, fmt.Errorf("inline sharding requires a value for every column, columns: %d, values: %d", len(columns), len(values))
	}
	vars := make([]*script.Variable, len(columns))
	for idx, c := range columns {
		name, ok := i.varName(c)
		if !ok {
			return nil, fmt.Errorf("column '%s' is not used by inline expression '%s'", c, i.Expression.RawExpression())
		}
		vars[idx] = script.NewVariable(name, values[idx])
	}
	return i.Expression.Flat(vars...)
}
