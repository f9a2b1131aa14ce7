// Copyright 2026 The deepdiff Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cli implements the deepdiff command line tool.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/AaronDMarasco/deepdiff"
)

var rootCmd = &cobra.Command{
	Use:   "deepdiff OLD NEW",
	Short: "Deep structural comparison of two documents",
	Long: `deepdiff compares two JSON or YAML documents and reports every difference:
changed values, changed types, added and removed keys, and added, removed or moved
elements of sequences.

Exit status is 0 when the documents are equal, 1 when they differ and 2 on error.`,
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

// Execute runs the command line tool.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if err == errDocumentsDiffer {
			os.Exit(1)
		}
		logger().Error("command failed", zap.Error(err))
		os.Exit(2)
	}
}

var errDocumentsDiffer = fmt.Errorf("documents differ")

func init() {
	f := rootCmd.Flags()
	f.Bool("ignore-order", false, "treat sequences as unordered collections")
	f.Bool("report-repetition", false, "report repetition count changes in unordered mode")
	f.Int("significant-digits", -1, "compare numbers rounded to this many digits (-1 = exact)")
	f.Float64("math-epsilon", 0, "treat numbers within this relative tolerance as equal")
	f.Bool("ignore-numeric-type-changes", false, "compare numbers by value regardless of type")
	f.Bool("ignore-string-case", false, "compare strings case-insensitively")
	f.StringSlice("exclude-path", nil, "exact path to exclude, repeatable")
	f.StringSlice("exclude-regex", nil, "path pattern to exclude, repeatable")
	f.StringSlice("include-path", nil, "restrict the comparison to these paths, repeatable")
	f.StringSlice("group-by", nil, "group sequences of records by this key before comparing")
	f.Int64("max-diffs", 0, "stop after this many change records (0 = unlimited)")
	f.Int64("max-passes", 10_000_000, "limit deep pairing passes in unordered mode")
	f.Int("cache-size", 0, "distance cache size for unordered pairing (0 = off)")
	f.Int("verbose", 1, "report detail level: 0, 1 or 2")
	f.Bool("deep-distance", false, "include the normalized distance of the two documents")
	f.Duration("progress", 0, "log progress at this interval (0 = off)")
	f.StringP("output", "o", "text", "output format: text, json or delta")
	f.Bool("quiet", false, "no output, exit status only")

	viper.SetEnvPrefix("DEEPDIFF")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindPFlags(f)
}

func logger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func run(cmd *cobra.Command, args []string) error {
	a, err := loadDocument(args[0])
	if err != nil {
		return fmt.Errorf("loading %s: %w", args[0], err)
	}
	b, err := loadDocument(args[1])
	if err != nil {
		return fmt.Errorf("loading %s: %w", args[1], err)
	}

	opts := []deepdiff.Option{
		deepdiff.Logger(logger()),
		deepdiff.Verbose(viper.GetInt("verbose")),
		deepdiff.MaxDiffs(viper.GetInt64("max-diffs")),
		deepdiff.MaxPasses(viper.GetInt64("max-passes")),
		deepdiff.CacheSize(viper.GetInt("cache-size")),
	}
	if viper.GetBool("ignore-order") {
		opts = append(opts, deepdiff.IgnoreOrder())
	}
	if viper.GetBool("report-repetition") {
		opts = append(opts, deepdiff.ReportRepetition())
	}
	if n := viper.GetInt("significant-digits"); n >= 0 {
		opts = append(opts, deepdiff.SignificantDigits(n))
	}
	if eps := viper.GetFloat64("math-epsilon"); eps > 0 {
		opts = append(opts, deepdiff.MathEpsilon(eps))
	}
	if viper.GetBool("ignore-numeric-type-changes") {
		opts = append(opts, deepdiff.IgnoreNumericTypeChanges())
	}
	if viper.GetBool("ignore-string-case") {
		opts = append(opts, deepdiff.IgnoreStringCase())
	}
	if paths := viper.GetStringSlice("exclude-path"); len(paths) > 0 {
		opts = append(opts, deepdiff.ExcludePaths(paths...))
	}
	if patterns := viper.GetStringSlice("exclude-regex"); len(patterns) > 0 {
		opts = append(opts, deepdiff.ExcludeRegexPaths(patterns...))
	}
	if paths := viper.GetStringSlice("include-path"); len(paths) > 0 {
		opts = append(opts, deepdiff.IncludePaths(paths...))
	}
	if keys := viper.GetStringSlice("group-by"); len(keys) > 0 {
		opts = append(opts, deepdiff.GroupBy(keys...))
	}
	if viper.GetBool("deep-distance") {
		opts = append(opts, deepdiff.GetDeepDistance())
	}
	if d := viper.GetDuration("progress"); d > 0 {
		opts = append(opts, deepdiff.ProgressLogFrequency(d))
	}

	report, err := deepdiff.Diff(a, b, opts...)
	if err != nil {
		return err
	}

	if !viper.GetBool("quiet") {
		if err := printReport(cmd, report); err != nil {
			return err
		}
	}
	if !report.Empty() {
		return errDocumentsDiffer
	}
	return nil
}

func printReport(cmd *cobra.Command, report *deepdiff.Report) error {
	out := cmd.OutOrStdout()
	switch format := viper.GetString("output"); format {
	case "json":
		payload := map[string]any{"changes": report.PathMap()}
		if viper.GetBool("deep-distance") {
			payload["deep_distance"] = report.DeepDistance
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case "delta":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report.Delta())
	case "text":
		return printText(out, report)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
