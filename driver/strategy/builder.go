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

	"github.com/endink/go-sharding/core"
)

const (
	ShardingColumnsPropertyName = "sharding-columns"
	ShardingColumnPropertyName  = "sharding-column"
	ExpressionPropertyName      = "expression"
	CountPropertyName           = "count"
	PartitionsPropertyName      = "partitions"
)

// Builder is the yaml form of a sharding strategy, exactly one kind must be set.
type Builder struct {
	Inline   *InlineBuilder   `yaml:"inline"`
	Mod      *ModBuilder      `yaml:"mod"`
	HashMod  *ModBuilder      `yaml:"hash-mod"`
	Interval *IntervalBuilder `yaml:"interval"`
	Hint     *HintBuilder     `yaml:"hint"`
}

func (b *Builder) Build() (core.ShardingStrategy, error) {
	var kinds []string
	var build func() (core.ShardingStrategy, error)
	if b.Inline != nil {
		kinds = append(kinds, "inline")
		build = b.Inline.Build
	}
	if b.Mod != nil {
		kinds = append(kinds, "mod")
		build = b.Mod.Build
	}
	if b.HashMod != nil {
		kinds = append(kinds, "hash-mod")
		build = b.HashMod.BuildHash
	}
	if b.Interval != nil {
		kinds = append(kinds, "interval")
		build = b.Interval.Build
	}
	if b.Hint != nil {
		kinds = append(kinds, "hint")
		build = b.Hint.Build
	}
	switch len(kinds) {
	case 0:
		return None, nil
	case 1:
		return build()
	default:
		return nil, fmt.Errorf("only one sharding strategy kind can be configured, found: %v", kinds)
	}
}

type InlineBuilder struct {
	ShardingColumns string `yaml:"sharding-columns"`
	Expression      string `yaml:"expression"`
}

// Build returns a standard strategy for one column, or a composite one for several columns.
func (i *InlineBuilder) Build() (core.ShardingStrategy, error) {
	columns, err := parseColumnsExpression(i.ShardingColumns)
	if err != nil {
		return nil, fmt.Errorf("inline strategy: %w", err)
	}

	algorithm, err := i.loadExpression(columns)
	if err != nil {
		return nil, err
	}
	if len(columns) == 1 {
		return NewStandard(columns[0], algorithm), nil
	}
	return NewComposite(columns, algorithm)
}

func (i *InlineBuilder) loadExpression(shardingColumns []string) (*Inline, error) {
	if i.Expression == "" {
		return nil, fmt.Errorf("configuration property '%s' missed for inline strategy", ExpressionPropertyName)
	}

	algorithm, err := NewInline(i.Expression, shardingColumns...)
	if err != nil {
		mainInfo := fmt.Sprintf("invalid configuration property '%s' for inline strategy", ExpressionPropertyName)
		return nil, errors.New(fmt.Sprint(mainInfo, core.LineSeparator, err))
	}
	return algorithm, nil
}

type ModBuilder struct {
	ShardingColumn string `yaml:"sharding-column"`
	Count          int64  `yaml:"count"`
}

func (m *ModBuilder) Build() (core.ShardingStrategy, error) {
	column, err := parseColumn(m.ShardingColumn)
	if err != nil {
		return nil, fmt.Errorf("mod strategy: %w", err)
	}
	algorithm, err := NewMod(m.Count)
	if err != nil {
		return nil, err
	}
	return NewStandard(column, algorithm), nil
}

func (m *ModBuilder) BuildHash() (core.ShardingStrategy, error) {
	column, err := parseColumn(m.ShardingColumn)
	if err != nil {
		return nil, fmt.Errorf("hash-mod strategy: %w", err)
	}
	algorithm, err := NewHashMod(m.Count)
	if err != nil {
		return nil, err
	}
	return NewStandard(column, algorithm), nil
}

type PartitionBuilder struct {
	Target string `yaml:"target"`
	Range  string `yaml:"range"`
}

type IntervalBuilder struct {
	ShardingColumn string             `yaml:"sharding-column"`
	Partitions     []PartitionBuilder `yaml:"partitions"`
}

func (iv *IntervalBuilder) Build() (core.ShardingStrategy, error) {
	column, err := parseColumn(iv.ShardingColumn)
	if err != nil {
		return nil, fmt.Errorf("interval strategy: %w", err)
	}
	if len(iv.Partitions) == 0 {
		return nil, fmt.Errorf("configuration property '%s' missed for interval strategy", PartitionsPropertyName)
	}
	partitions := make([]Partition, len(iv.Partitions))
	for idx, p := range iv.Partitions {
		r, e := ParseRange(p.Range)
		if e != nil {
			return nil, fmt.Errorf("interval strategy partition '%s': %w", p.Target, e)
		}
		partitions[idx] = Partition{Target: p.Target, Range: r}
	}
	algorithm, err := NewInterval(partitions...)
	if err != nil {
		return nil, err
	}
	return NewStandard(column, algorithm), nil
}

// HintBuilder evaluates hint values with an inline expression, or with mod when only count is given.
type HintBuilder struct {
	ShardingColumn string `yaml:"sharding-column"`
	Expression     string `yaml:"expression"`
	Count          int64  `yaml:"count"`
}

func (h *HintBuilder) Build() (core.ShardingStrategy, error) {
	column := core.IfBlankAndTrim(h.ShardingColumn, DefaultHintColumn)
	if err := core.ValidateIdentifier(column); err != nil {
		return nil, fmt.Errorf("hint strategy: %w", err)
	}
	if h.Expression != "" {
		algorithm, err := NewInline(h.Expression, column)
		if err != nil {
			return nil, fmt.Errorf("hint strategy: %w", err)
		}
		return NewHint(column, algorithm), nil
	}
	if h.Count > 0 {
		algorithm, err := NewMod(h.Count)
		if err != nil {
			return nil, err
		}
		return NewHint(column, algorithm), nil
	}
	return nil, fmt.Errorf("hint strategy requires '%s' or '%s'", ExpressionPropertyName, CountPropertyName)
}

func parseColumn(column string) (string, error) {
	columns, err := parseColumnsExpression(column)
	if err != nil {
		return "", err
	}
	if len(columns) != 1 {
		return "", fmt.Errorf("exactly one column is required for property '%s', given: %s", ShardingColumnPropertyName, column)
	}
	return columns[0], nil
}

func parseColumnsExpression(columnsExpr string) ([]string, error) {
	columns := core.SplitAndTrim(columnsExpr)
	if len(columns) == 0 {
		return nil, fmt.Errorf("configuration property '%s' missed or have no columns can be parsed", ShardingColumnsPropertyName)
	}

	for _, col := range columns {
		if err := core.ValidateIdentifier(col); err != nil {
			return nil, fmt.Errorf("invalid column name '%s': %w", col, err)
		}
	}
	return columns, nil
}
