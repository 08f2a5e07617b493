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

package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pingcap/parser"
	"github.com/pingcap/parser/ast"
	_ "github.com/pingcap/tidb/types/parser_driver"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/endink/go-sharding/command"
	"github.com/endink/go-sharding/config"
	"github.com/endink/go-sharding/explain"
	"github.com/endink/go-sharding/logging"
	"github.com/endink/go-sharding/routing"
)

var (
	ruleFiles []string
	logFormat string
	logLevel  string
	dbHints   []string
	tbHints   []string

	Main = &cobra.Command{
		Use:   "sharding [sql]...",
		Short: "sharding shows the command tag and the physical routes of sql statements.",
		Example: `sharding \
	--rule ./rule.yaml \
	"select * from t_order where user_id = 1 and order_id in (1, 2)"`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		PreRunE:      configureLogging,
		RunE:         run,
	}
)

func init() {
	Main.Flags().StringSliceVarP(&ruleFiles, "rule", "r", nil, "rule files, the default locations are searched when omitted")
	Main.Flags().StringVar(&logFormat, "log-format", logging.ColorizedOutput.String(), "log format: color, plain or json")
	Main.Flags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	Main.Flags().StringSliceVar(&dbHints, "hint-db", nil, "database hint values as table=value")
	Main.Flags().StringSliceVar(&tbHints, "hint-table", nil, "table hint values as table=value")
}

func configureLogging(cmd *cobra.Command, _ []string) error {
	format, err := logging.ParseLogFormat(logFormat)
	if err != nil {
		return err
	}
	var level zapcore.Level
	if err = level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid log level '%s': %w", logLevel, err)
	}
	logging.Configure(format, zapcore.AddSync(cmd.ErrOrStderr()))
	logging.SetLevel("", level)
	return nil
}

func run(cmd *cobra.Command, args []string) error {
	rule, err := config.LoadRuleFile(ruleFiles...)
	if err != nil {
		return err
	}

	hint, err := parseHints(dbHints, tbHints)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if hint != nil {
		ctx = routing.WithHint(ctx, hint)
	}

	engine := routing.NewEngine(rule)
	p := parser.New()
	out := cmd.OutOrStdout()
	for _, sql := range args {
		stmts, _, err := p.Parse(sql, "", "")
		if err != nil {
			return fmt.Errorf("parse sql fault: %w", err)
		}
		for _, stmt := range stmts {
			if err = explainStatement(ctx, out, engine, stmt); err != nil {
				return err
			}
		}
	}
	return nil
}

func explainStatement(ctx context.Context, out io.Writer, engine *routing.Engine, stmt ast.StmtNode) error {
	fmt.Fprintln(out, "sql:", stmt.Text())
	tag, ok := command.Classify(stmt)
	if ok {
		fmt.Fprintln(out, "command:", tag)
	} else {
		fmt.Fprintln(out, "command: <unknown>")
	}

	result, err := explain.Analyze(stmt, engine.Rule())
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "values:", result.Values)

	routes, err := engine.Route(ctx, result.Tables, result.Values)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "routes:", routes)
	return nil
}

// parseHints reads "table=value" pairs, integer values are kept as integers.
func parseHints(db []string, table []string) (*routing.HintValues, error) {
	if len(db) == 0 && len(table) == 0 {
		return nil, nil
	}
	hint := routing.NewHintValues()
	for _, item := range db {
		t, v, err := parseHint(item)
		if err != nil {
			return nil, err
		}
		hint.AddDatabaseValue(t, v)
	}
	for _, item := range table {
		t, v, err := parseHint(item)
		if err != nil {
			return nil, err
		}
		hint.AddTableValue(t, v)
	}
	return hint, nil
}

func parseHint(item string) (string, interface{}, error) {
	parts := strings.SplitN(item, "=", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
		return "", nil, fmt.Errorf("hint must be in the form table=value, given: '%s'", item)
	}
	value := strings.TrimSpace(parts[1])
	if i, err := strconv.ParseInt(value, 10, 64); err == nil {
		return strings.TrimSpace(parts[0]), i, nil
	}
	return strings.TrimSpace(parts[0]), value, nil
}
