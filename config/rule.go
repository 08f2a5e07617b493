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

package config

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/config"
	"go.uber.org/multierr"

	"github.com/endink/go-sharding/core"
	"github.com/endink/go-sharding/core/script"
	"github.com/endink/go-sharding/driver/strategy"
	"github.com/endink/go-sharding/routing"
)

const (
	RuleKey            = "rule"
	TablesKey          = "tables"
	ColumnsKey         = "columns"
	ResourcesKey       = "resources"
	DbStrategyKey      = "db-strategy"
	TableStrategyKey   = "table-strategy"
	BindingTablesKey   = "binding-tables"
	BroadcastTablesKey = "broadcast-tables"
	DataSourcesKey     = "data-sources"

	noneStrategy = "none"
)

var ErrNoRuleFile = errors.New("no rule file was found")

// LoadRuleFile reads the rule from the given yaml files, later files override earlier ones.
// The default locations are searched when no file is given.
func LoadRuleFile(files ...string) (*routing.Rule, error) {
	if len(files) == 0 {
		files = DefaultRuleFileLocations()
	}

	var sources []config.YAMLOption
	var sb = core.NewStringBuilder()
	sb.WriteLine()
	sb.WriteLine("Search rule locations:")
	for _, f := range files {
		if core.FileExists(f) {
			sources = append(sources, config.File(f))
			sb.WriteLine("[Found]: ", f)
		} else {
			sb.WriteLine("[Not Found]: ", f)
		}
	}
	logger.Info(sb.String())

	if len(sources) == 0 {
		return nil, ErrNoRuleFile
	}
	sources = append(sources, config.Permissive())
	yaml, err := config.NewYAML(sources...)
	if err != nil {
		return nil, fmt.Errorf("read rule file fault: %w", err)
	}
	return LoadRuleFromYAML(yaml)
}

// LoadRule reads the rule from yaml content.
func LoadRule(r io.Reader) (*routing.Rule, error) {
	yaml, err := config.NewYAML(config.Source(r), config.Permissive())
	if err != nil {
		return nil, fmt.Errorf("read rule fault: %w", err)
	}
	return LoadRuleFromYAML(yaml)
}

func LoadRuleFromString(content string) (*routing.Rule, error) {
	return LoadRule(strings.NewReader(content))
}

// LoadRuleFromYAML builds and validates the rule under the "rule" key, every invalid
// declaration is reported in the returned error.
func LoadRuleFromYAML(provider config.Provider) (*routing.Rule, error) {
	root := provider.Get(RuleKey)
	if !root.HasValue() {
		return nil, core.NewConfigError("", "configuration key '%s' is missing", RuleKey)
	}

	dataSources, err := stringList(root.Get(DataSourcesKey))
	if err != nil {
		return nil, core.NewConfigError("", "invalid '%s': %v", DataSourcesKey, err)
	}
	rule := routing.NewRule(dataSources...)

	var tables map[string]interface{}
	if err = root.Get(TablesKey).Populate(&tables); err != nil {
		return nil, core.NewConfigError("", "invalid '%s': %v", TablesKey, err)
	}
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs error
	for _, name := range names {
		t, e := loadTable(name, root.Get(TablesKey).Get(name), rule.DataSources())
		if e != nil {
			errs = multierr.Append(errs, e)
			continue
		}
		errs = multierr.Append(errs, rule.AddTable(t))
	}

	broadcast, err := stringList(root.Get(BroadcastTablesKey))
	if err != nil {
		errs = multierr.Append(errs, core.NewConfigError("", "invalid '%s': %v", BroadcastTablesKey, err))
	} else if len(broadcast) > 0 {
		errs = multierr.Append(errs, rule.AddBroadcastTable(broadcast...))
	}

	groups, err := stringGroups(root.Get(BindingTablesKey))
	if err != nil {
		errs = multierr.Append(errs, core.NewConfigError("", "invalid '%s': %v", BindingTablesKey, err))
	}
	for _, g := range groups {
		errs = multierr.Append(errs, rule.AddBindingGroup(g...))
	}

	errs = multierr.Append(errs, rule.Validate())
	if errs != nil {
		return nil, errs
	}
	logger.Debug("sharding rule loaded: ", rule)
	return rule, nil
}

func loadTable(name string, value config.Value, dataSources []string) (*core.ShardingTable, error) {
	if err := core.ValidateIdentifier(name); err != nil {
		return nil, core.NewConfigError(name, "invalid logical table name: %v", err)
	}

	dbStrategy, err := loadStrategy(value.Get(DbStrategyKey))
	if err != nil {
		return nil, core.NewConfigError(name, "invalid '%s': %v", DbStrategyKey, err)
	}
	tableStrategy, err := loadStrategy(value.Get(TableStrategyKey))
	if err != nil {
		return nil, core.NewConfigError(name, "invalid '%s': %v", TableStrategyKey, err)
	}

	t := core.NewShardingTable(name, dbStrategy, tableStrategy)

	columns, err := stringList(value.Get(ColumnsKey))
	if err != nil {
		return nil, core.NewConfigError(name, "invalid '%s': %v", ColumnsKey, err)
	}
	if len(columns) > 0 {
		t.SetColumns(columns...)
	}

	var resources string
	if err = value.Get(ResourcesKey).Populate(&resources); err != nil {
		return nil, core.NewConfigError(name, "invalid '%s': %v", ResourcesKey, err)
	}
	if strings.TrimSpace(resources) == "" {
		t.SetResources(dataSources, []string{t.Name})
		return t, nil
	}
	nodes, err := parseDataNodes(resources)
	if err != nil {
		return nil, core.NewConfigError(name, "invalid '%s': %v", ResourcesKey, err)
	}
	t.SetDataNodes(nodes...)
	return t, nil
}

// loadStrategy accepts the scalar "none" or a strategy.Builder mapping, a missing key is none.
func loadStrategy(value config.Value) (core.ShardingStrategy, error) {
	if !value.HasValue() {
		return strategy.None, nil
	}
	var raw interface{}
	if err := value.Populate(&raw); err != nil {
		return nil, err
	}
	if s, ok := raw.(string); ok {
		if core.TrimAndLower(s) == noneStrategy {
			return strategy.None, nil
		}
		return nil, fmt.Errorf("unknown sharding strategy '%s'", s)
	}
	builder := &strategy.Builder{}
	if err := value.Populate(builder); err != nil {
		return nil, err
	}
	return builder.Build()
}

// parseDataNodes expands an inline expression such as "ds${range(0,1)}.t_order${range(0,1)}"
// into data nodes.
func parseDataNodes(resources string) ([]core.DataNode, error) {
	expr, err := script.NewInlineExpression(resources)
	if err != nil {
		return nil, err
	}
	list, err := expr.Flat()
	if err != nil {
		return nil, err
	}
	nodes := make([]core.DataNode, 0, len(list))
	for _, item := range list {
		parts := strings.Split(item, ".")
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
			return nil, fmt.Errorf("data node must be in the form 'datasource.table', given: '%s'", item)
		}
		nodes = append(nodes, core.DataNode{
			DataSource: strings.TrimSpace(parts[0]),
			Table:      strings.TrimSpace(parts[1]),
		})
	}
	return nodes, nil
}

// stringList accepts a comma separated scalar or a yaml sequence.
func stringList(value config.Value) ([]string, error) {
	if !value.HasValue() {
		return nil, nil
	}
	var raw interface{}
	if err := value.Populate(&raw); err != nil {
		return nil, err
	}
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return core.SplitAndTrim(v), nil
	case []interface{}:
		var result []string
		for _, item := range v {
			result = append(result, core.SplitAndTrim(fmt.Sprint(item))...)
		}
		return core.DistinctSliceAndTrim(result), nil
	}
	return nil, fmt.Errorf("a list or comma separated string is expected, given: %v", raw)
}

// stringGroups reads a sequence of comma separated groups, a single scalar is one group.
func stringGroups(value config.Value) ([][]string, error) {
	if !value.HasValue() {
		return nil, nil
	}
	var raw interface{}
	if err := value.Populate(&raw); err != nil {
		return nil, err
	}
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return [][]string{core.SplitAndTrim(v)}, nil
	case []interface{}:
		groups := make([][]string, 0, len(v))
		for _, item := range v {
			switch g := item.(type) {
			case string:
				groups = append(groups, core.SplitAndTrim(g))
			case []interface{}:
				group := make([]string, 0, len(g))
				for _, t := range g {
					group = append(group, fmt.Sprint(t))
				}
				groups = append(groups, group)
			default:
				return nil, fmt.Errorf("invalid binding group: %v", item)
			}
		}
		return groups, nil
	}
	return nil, fmt.Errorf("a list of binding groups is expected, given: %v", raw)
}
