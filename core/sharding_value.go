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
	"fmt"
	"reflect"
	"strings"

	"github.com/endink/go-sharding/core/comparison"
)

// ShardingValue is one condition on a sharding column, it is one of *ExactValue, *ListValue or *RangeValue.
type ShardingValue interface {
	fmt.Stringer
	GetColumn() string
	isShardingValue()
}

type ExactValue struct {
	Column string
	Value  interface{}
}

func NewExactValue(column string, value interface{}) *ExactValue {
	return &ExactValue{Column: TrimAndLower(column), Value: value}
}

func (s *ExactValue) GetColumn() string {
	return s.Column
}

func (s *ExactValue) String() string {
	return fmt.Sprintf("%s=%v", s.Column, s.Value)
}

func (s *ExactValue) isShardingValue() {}

type ListValue struct {
	Column string
	Values []interface{}
}

func NewListValue(column string, values ...interface{}) *ListValue {
	list := make([]interface{}, len(values))
	copy(list, values)
	return &ListValue{Column: TrimAndLower(column), Values: list}
}

func (s *ListValue) GetColumn() string {
	return s.Column
}

func (s *ListValue) String() string {
	items := make([]string, len(s.Values))
	for i, v := range s.Values {
		items[i] = fmt.Sprint(v)
	}
	return fmt.Sprintf("%s in (%s)", s.Column, strings.Join(items, ", "))
}

func (s *ListValue) isShardingValue() {}

type RangeValue struct {
	Column string
	Range  Range
}

func NewRangeValue(column string, r Range) *RangeValue {
	return &RangeValue{Column: TrimAndLower(column), Range: r}
}

func (s *RangeValue) GetColumn() string {
	return s.Column
}

func (s *RangeValue) String() string {
	return fmt.Sprintf("%s:%s", s.Column, s.Range)
}

func (s *RangeValue) isShardingValue() {}

// ScalarValues returns the discrete values of exact or list values, ok is false for ranges.
func ScalarValues(value ShardingValue) (values []interface{}, ok bool) {
	switch v := value.(type) {
	case *ExactValue:
		return []interface{}{v.Value}, true
	case *ListValue:
		return v.Values, true
	}
	return nil, false
}

// ValuesOfColumn filters values governed by the given column.
func ValuesOfColumn(values []ShardingValue, column string) []ShardingValue {
	c := TrimAndLower(column)
	var result []ShardingValue
	for _, v := range values {
		if v != nil && v.GetColumn() == c {
			result = append(result, v)
		}
	}
	return result
}

// AndValue merges two conditions on the same column joined by AND.
// An empty *ListValue is returned when nothing can satisfy both.
func AndValue(a, b ShardingValue) (ShardingValue, error) {
	if a == nil {
		return b, nil
	}
	if b == nil {
		return a, nil
	}
	if a.GetColumn() != b.GetColumn() {
		return nil, fmt.Errorf("can not merge values of different columns: %s, %s", a.GetColumn(), b.GetColumn())
	}
	column := a.GetColumn()

	ra, aIsRange := a.(*RangeValue)
	rb, bIsRange := b.(*RangeValue)

	switch {
	case aIsRange && bIsRange:
		r, err := ra.Range.Intersect(rb.Range)
		if err != nil {
			return nil, err
		}
		if r == nil {
			return NewListValue(column), nil
		}
		return NewRangeValue(column, r), nil
	case aIsRange:
		return filterByRange(column, b, ra.Range)
	case bIsRange:
		return filterByRange(column, a, rb.Range)
	}

	av, _ := ScalarValues(a)
	bv, _ := ScalarValues(b)
	var kept []interface{}
	for _, x := range av {
		if containsScalar(bv, x) && !containsScalar(kept, x) {
			kept = append(kept, x)
		}
	}
	if len(kept) == 1 {
		return NewExactValue(column, kept[0]), nil
	}
	return NewListValue(column, kept...), nil
}

func filterByRange(column string, scalar ShardingValue, r Range) (ShardingValue, error) {
	values, _ := ScalarValues(scalar)
	var kept []interface{}
	for _, v := range values {
		in, err := r.ContainsValue(v)
		if err != nil {
			return nil, err
		}
		if in {
			kept = append(kept, v)
		}
	}
	if len(kept) == 1 {
		return NewExactValue(column, kept[0]), nil
	}
	return NewListValue(column, kept...), nil
}

func containsScalar(values []interface{}, value interface{}) bool {
	for _, v := range values {
		if ScalarEquals(v, value) {
			return true
		}
	}
	return false
}

// ScalarEquals compares numbers by value regardless of their width, other values by deep equality.
func ScalarEquals(a, b interface{}) bool {
	if comparison.IsCompareSupported(a) && comparison.IsCompareSupported(b) {
		c, err := comparison.Compare(a, b)
		return err == nil && c == 0
	}
	return reflect.DeepEqual(a, b)
}
