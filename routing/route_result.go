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

package routing

import (
	"fmt"
	"strings"

	"github.com/endink/go-sharding/core"
)

// RouteUnit is one physical destination of a logical table.
type RouteUnit struct {
	DataSource string
	Table      string
}

func (u RouteUnit) String() string {
	return fmt.Sprintf("%s.%s", u.DataSource, u.Table)
}

// RouteTarget holds one unit per logical table of the statement, in the order of RouteResult.Tables.
type RouteTarget []RouteUnit

func (t RouteTarget) String() string {
	items := make([]string, len(t))
	for i, u := range t {
		items[i] = u.String()
	}
	return strings.Join(items, ", ")
}

// DataSource returns the data source of the first unit, binding and broadcast tables share it.
func (t RouteTarget) DataSource() string {
	if len(t) == 0 {
		return ""
	}
	return t[0].DataSource
}

type RouteResult struct {
	Tables  []string
	Targets []RouteTarget
}

// IsEmpty means the statement matches no physical data.
func (r *RouteResult) IsEmpty() bool {
	return len(r.Targets) == 0
}

// DataSources returns the distinct data sources of all targets in target order.
func (r *RouteResult) DataSources() []string {
	var list []string
	for _, t := range r.Targets {
		for _, u := range t {
			list = append(list, u.DataSource)
		}
	}
	return core.DistinctSliceAndTrim(list)
}

// Units returns the distinct units of the logical table.
func (r *RouteResult) Units(table string) []RouteUnit {
	t := core.TrimAndLower(table)
	idx := -1
	for i, name := range r.Tables {
		if name == t {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	seen := make(map[RouteUnit]struct{})
	var units []RouteUnit
	for _, target := range r.Targets {
		u := target[idx]
		if _, ok := seen[u]; !ok {
			seen[u] = struct{}{}
			units = append(units, u)
		}
	}
	return units
}

func (r *RouteResult) String() string {
	sb := core.NewStringBuilder()
	sb.WriteFormat("tables: %s", strings.Join(r.Tables, ", "))
	if r.IsEmpty() {
		sb.Write(", targets: <none>")
		return sb.String()
	}
	for i, t := range r.Targets {
		sb.WriteLine()
		sb.WriteFormat("  #%d %s", i, t)
	}
	return sb.String()
}
