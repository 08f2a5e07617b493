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
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/endink/go-sharding/core"
)

var _ PreciseAlgorithm = &Interval{}
var _ RangeAlgorithm = &Interval{}

type Partition struct {
	Target string
	Range  core.Range
}

// Interval assigns explicit value ranges to targets, partitions may overlap.
type Interval struct {
	Partitions []Partition
}

func NewInterval(partitions ...Partition) (*Interval, error) {
	if len(partitions) == 0 {
		return nil, errors.New("interval sharding requires at least one partition")
	}
	for _, p := range partitions {
		if strings.TrimSpace(p.Target) == "" || p.Range == nil {
			return nil, errors.New("interval partition requires both target and range")
		}
	}
	return &Interval{Partitions: partitions}, nil
}

func (iv *Interval) DoPreciseSharding(_ []string, column string, value interface{}) ([]string, error) {
	var result []string
	for _, p := range iv.Partitions {
		in, err := p.Range.ContainsValue(value)
		if err != nil {
			return nil, fmt.Errorf("value '%v' of column '%s' can not be compared with partition %s: %w", value, column, p.Target, err)
		}
		if in {
			result = append(result, p.Target)
		}
	}
	return result, nil
}

func (iv *Interval) DoRangeSharding(_ []string, column string, r core.Range) ([]string, error) {
	var result []string
	for _, p := range iv.Partitions {
		ok, err := p.Range.HasIntersection(r)
		if err != nil {
			return nil, fmt.Errorf("range %s of column '%s' can not be compared with partition %s: %w", r, column, p.Target, err)
		}
		if ok {
			result = append(result, p.Target)
		}
	}
	return result, nil
}

// ParseRange parses the interval notation "[0,100)", "(,100]" or "['a','m')", a blank bound is unbounded.
func ParseRange(text string) (core.Range, error) {
	s := strings.TrimSpace(text)
	if len(s) < 3 {
		return nil, fmt.Errorf("invalid range '%s'", text)
	}
	left, right := s[0], s[len(s)-1]
	if (left != '[' && left != '(') || (right != ']' && right != ')') {
		return nil, fmt.Errorf("invalid range '%s', range must be enclosed by '[' or '(' and ']' or ')'", text)
	}
	parts := strings.Split(s[1:len(s)-1], ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid range '%s', exactly two bounds are required", text)
	}
	r, err := core.NewRangeWithBounds(parseBound(parts[0]), left == '[', parseBound(parts[1]), right == ']')
	if err != nil {
		return nil, fmt.Errorf("invalid range '%s': %w", text, err)
	}
	return r, nil
}

func parseBound(text string) interface{} {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return strings.Trim(s, `'"`)
}
