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
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"

	"github.com/endink/go-sharding/core"
	"github.com/endink/go-sharding/core/comparison"
)

// CompiledScript is not safe for concurrent use, Clone it for every goroutine.
type CompiledScript interface {
	SetVar(name string, value interface{}) error
	Run() ([]string, error)
	Clone() CompiledScript
	RawScript() string
}

type tengoScript struct {
	raw       string
	compiled  *tengo.Compiled
	resultVar string
}

func (script *tengoScript) RawScript() string {
	return script.raw
}

func (script *tengoScript) Clone() CompiledScript {
	return &tengoScript{
		raw:       script.raw,
		compiled:  script.compiled.Clone(),
		resultVar: script.resultVar,
	}
}

func (script *tengoScript) SetVar(name string, value interface{}) error {
	if err := script.compiled.Set(name, toScriptValue(value)); err != nil {
		return fmt.Errorf("set variable '%s' fault: %w", name, err)
	}
	return nil
}

func (script *tengoScript) Run() ([]string, error) {
	if err := script.compiled.Run(); err != nil {
		return nil, err
	}
	v := script.compiled.Get(script.resultVar)
	switch value := v.Value().(type) {
	case []interface{}:
		return stringArray(value), nil
	case int64, float64, string, rune, bool:
		return []string{fmt.Sprint(value)}, nil
	default:
		return nil, invalidReturnTypeError(script.raw, v)
	}
}

// tengo only knows int64 and float64 numbers.
func toScriptValue(value interface{}) interface{} {
	switch v := value.(type) {
	case string, int64, float64, bool, nil:
		return v
	case float32:
		return float64(v)
	case []byte:
		return string(v)
	}
	if comparison.IsNumber(value) {
		if i, ok := comparison.ToInt64(value); ok {
			return i
		}
	}
	return fmt.Sprint(value)
}

func stringArray(array []interface{}) []string {
	list := make([]string, len(array))
	for i, v := range array {
		list[i] = fmt.Sprint(v)
	}
	return list
}

func invalidReturnTypeError(raw string, v *tengo.Variable) error {
	return errors.New(fmt.Sprint("script return invalid type, excepted array that element is number or string, and primitive number or string", core.LineSeparator, "script: ", raw, core.LineSeparator, "return type:", v.ValueType()))
}
