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
	"strings"

	"github.com/endink/go-sharding/core"
)

var _ InlineExpression = &inlineExpr{}

// InlineExpression is a comma separated list of groups, every group is literal text mixed with
// ${script} segments, e.g. "ds${range(0,1)}.t_order${[0,1]}" or "t_order${order_id % 2}".
// Flat is safe for concurrent use.
type InlineExpression interface {
	Flat(variables ...*Variable) ([]string, error)
	FlatScalar(variables ...*Variable) (string, error)
	RawExpression() string
	VarNames() []string
}

type Variable struct {
	Name  string
	Value interface{}
}

func NewVariable(name string, value interface{}) *Variable {
	return &Variable{Name: name, Value: value}
}

func (v *Variable) String() string {
	return fmt.Sprintf("%s=%v", v.Name, v.Value)
}

type inlineSegment struct {
	prefix string
	script CompiledScript
}

type inlineGroup struct {
	segments []*inlineSegment
}

type inlineExpr struct {
	expression string
	groups     []*inlineGroup
	varsNames  []string
}

func (i *inlineExpr) RawExpression() string {
	return i.expression
}

func (i *inlineExpr) VarNames() []string {
	return i.varsNames
}

func (i *inlineExpr) FlatScalar(variables ...*Variable) (string, error) {
	list, err := i.Flat(variables...)
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "", nil
	}
	return list[0], nil
}

// Flat evaluates every group and returns the distinct results in expression order.
func (i *inlineExpr) Flat(variables ...*Variable) ([]string, error) {
	set := make(map[string]struct{})
	list := make([]string, 0)

	for _, g := range i.groups {
		current := []string{""}
		for _, s := range g.segments {
			values := []string{""}
			if s.script != nil {
				script := s.script.Clone()
				for _, va := range variables {
					if err := script.SetVar(va.Name, va.Value); err != nil {
						return nil, i.wrapExecuteError(err, variables...)
					}
				}
				l, err := script.Run()
				if err != nil {
					return nil, i.wrapExecuteError(err, variables...)
				}
				values = l
			}
			current = outJoin(current, s.prefix, values)
		}
		for _, c := range current {
			if c == "" {
				continue
			}
			if _, ok := set[c]; !ok {
				set[c] = struct{}{}
				list = append(list, c)
			}
		}
	}
	return list, nil
}

func outJoin(heads []string, prefix string, tails []string) []string {
	r := make([]string, 0, len(heads)*len(tails))
	for _, h := range heads {
		for _, t := range tails {
			r = append(r, h+prefix+t)
		}
	}
	return r
}

func (i *inlineExpr) wrapExecuteError(e error, vars ...*Variable) error {
	sb := core.NewStringBuilder()
	sb.WriteLine("inline sharding fault.")
	sb.WriteLine("Script: ", i.expression)
	sb.Write("Variables: ")
	if len(vars) > 0 {
		items := make([]interface{}, len(vars))
		for idx, v := range vars {
			items[idx] = v
		}
		sb.WriteJoin(", ", items...)
	} else {
		sb.Write("<none>")
	}
	sb.WriteLine()
	sb.WriteLine("Error:")
	sb.Write(e.Error())

	return errors.New(sb.String())
}

// NewInlineExpression parses and compiles the expression, variables must be declared by name.
func NewInlineExpression(expression string, variables ...string) (InlineExpression, error) {
	names := make([]string, 0, len(variables))
	for _, v := range variables {
		if v = strings.TrimSpace(v); v != "" {
			names = append(names, v)
		}
	}
	expr := &inlineExpr{expression: expression, varsNames: names}

	groups, err := splitGroups(expression, names)
	if err != nil {
		return nil, err
	}
	expr.groups = groups
	return expr, nil
}

type splitContext struct {
	prefix    strings.Builder
	rawScript strings.Builder
	variables []string
	segments  []*inlineSegment
}

func splitGroups(exp string, variables []string) ([]*inlineGroup, error) {
	syntaxError := func(message string, index int) error {
		var sb = core.NewStringBuilder()
		sb.WriteLine("inline expression syntax error")
		sb.WriteLine(message)
		sb.WriteLineF("expression: %s", exp)
		if index >= 0 {
			sb.WriteLineF("char index: %d", index)
		}
		return errors.New(sb.String())
	}

	ctx := &splitContext{variables: variables}
	var groups []*inlineGroup
	isScript := false
	depth := 0

	for i := 0; i < len(exp); i++ {
		char := exp[i]
		switch {
		case char == '$' && !isScript:
			if i+1 >= len(exp) || exp[i+1] != '{' {
				return nil, syntaxError("'{' symbol is missing after the symbol '$'", i)
			}
			isScript = true
			depth = 0
			i++
		case char == '$':
			return nil, syntaxError("should not appear symbol '$'", i)
		case isScript && char == '{':
			depth++
			ctx.rawScript.WriteByte(char)
		case isScript && char == '}':
			if depth > 0 {
				depth--
				ctx.rawScript.WriteByte(char)
				continue
			}
			isScript = false
			if err := ctx.flushSegment(); err != nil {
				return nil, syntaxError(err.Error(), i)
			}
		case isScript:
			ctx.rawScript.WriteByte(char)
		case char == ',':
			if err := ctx.flushSegment(); err != nil {
				return nil, syntaxError(err.Error(), i)
			}
			if g := ctx.takeGroup(); g != nil {
				groups = append(groups, g)
			}
		default:
			ctx.prefix.WriteByte(char)
		}
	}

	if isScript {
		return nil, syntaxError("symbol '}' used to end the script are missing", -1)
	}
	if err := ctx.flushSegment(); err != nil {
		return nil, syntaxError(err.Error(), len(exp))
	}
	if g := ctx.takeGroup(); g != nil {
		groups = append(groups, g)
	}
	return groups, nil
}

func (ctx *splitContext) takeGroup() *inlineGroup {
	if len(ctx.segments) == 0 {
		return nil
	}
	if last := ctx.segments[len(ctx.segments)-1]; last.script == nil {
		last.prefix = strings.TrimRight(last.prefix, " \t\r\n")
	}
	g := &inlineGroup{segments: ctx.segments}
	ctx.segments = nil
	return g
}

func (ctx *splitContext) flushSegment() error {
	prefix := ctx.prefix.String()
	if len(ctx.segments) == 0 {
		prefix = strings.TrimLeft(prefix, " \t\r\n")
	}
	raw := strings.TrimSpace(ctx.rawScript.String())
	ctx.prefix.Reset()
	ctx.rawScript.Reset()

	seg := &inlineSegment{prefix: prefix}
	if raw != "" {
		s, err := ParseScript(raw, ctx.variables...)
		if err != nil {
			return err
		}
		seg.script = s
	}
	if seg.script == nil && strings.TrimSpace(seg.prefix) == "" {
		return nil
	}
	ctx.segments = append(ctx.segments, seg)
	return nil
}
