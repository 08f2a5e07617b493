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
	"errors"
	"fmt"
)

// ErrConfiguration is the root of every routing metadata error.
var ErrConfiguration = errors.New("sharding configuration error")

type ConfigError struct {
	Table  string
	Reason string
}

func NewConfigError(table string, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Table: table, Reason: fmt.Sprintf(format, args...)}
}

func (e *ConfigError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("%s: %s", ErrConfiguration, e.Reason)
	}
	return fmt.Sprintf("%s: table '%s': %s", ErrConfiguration, e.Table, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}

// ShardingStrategy narrows a set of physical names (data sources or tables) down to the ones
// a statement has to reach. Implementations must be safe for concurrent use.
type ShardingStrategy interface {
	GetShardingColumns() []string
	// DoSharding returns a subset of availableTargetNames in their original order.
	DoSharding(availableTargetNames []string, values []ShardingValue) ([]string, error)
}

var NoneShardingStrategy ShardingStrategy = &noneShardingStrategy{}

type noneShardingStrategy struct{}

func (*noneShardingStrategy) GetShardingColumns() []string {
	return nil
}

func (*noneShardingStrategy) DoSharding(availableTargetNames []string, _ []ShardingValue) ([]string, error) {
	result := make([]string, len(availableTargetNames))
	copy(result, availableTargetNames)
	return result, nil
}

func (*noneShardingStrategy) String() string {
	return "none"
}

// IsNoneStrategy reports whether s routes to every candidate.
func IsNoneStrategy(s ShardingStrategy) bool {
	return s == nil || s == NoneShardingStrategy
}

// HintShardingStrategy only consumes the values supplied through the hint side channel,
// values extracted from the statement are never passed to it.
type HintShardingStrategy interface {
	ShardingStrategy
	IsHint() bool
}

func IsHintStrategy(s ShardingStrategy) bool {
	h, ok := s.(HintShardingStrategy)
	return ok && h.IsHint()
}
