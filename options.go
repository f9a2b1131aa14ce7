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

package deepdiff

import (
	"reflect"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/AaronDMarasco/deepdiff/internal/config"
	"github.com/AaronDMarasco/deepdiff/internal/deephash"
)

// settings is the full per-run configuration: the comparison parameters plus the root-only
// collaborators that internal packages must not know about.
type settings struct {
	cfg       config.Config
	logger    *zap.Logger
	operators []Operator
	hashes    *deephash.Table
}

// Option configures a comparison. Options are applied in order, the last setting of a
// parameter wins.
type Option func(*settings) error

func newSettings(opts []Option) (settings, error) {
	s := settings{cfg: config.Default, logger: zap.NewNop()}
	for _, opt := range opts {
		if err := opt(&s); err != nil {
			return settings{}, err
		}
	}
	if err := s.cfg.Validate(); err != nil {
		return settings{}, err
	}
	return s, nil
}

func cfgOption(f func(*config.Config) error) Option {
	return func(s *settings) error { return f(&s.cfg) }
}

// IgnoreOrder treats every sequence as an unordered collection: elements are matched by
// content rather than position, and moves are not differences.
func IgnoreOrder() Option {
	return cfgOption(func(cfg *config.Config) error {
		cfg.IgnoreOrder = true
		return nil
	})
}

// IgnoreOrderFunc limits order-insensitivity to the sequences whose path the callback
// accepts. Implies nothing for other sequences, which stay positional.
func IgnoreOrderFunc(f func(path string) bool) Option {
	return cfgOption(func(cfg *config.Config) error {
		cfg.IgnoreOrderFunc = f
		return nil
	})
}

// ReportRepetition reports count changes of repeated elements in unordered comparisons
// instead of folding duplicates together.
func ReportRepetition() Option {
	return cfgOption(func(cfg *config.Config) error {
		cfg.ReportRepetition = true
		return nil
	})
}

// SignificantDigits compares numbers after rounding to n digits past the decimal point.
func SignificantDigits(n int) Option {
	return cfgOption(func(cfg *config.Config) error {
		if n < 0 {
			return errOption("significant digits must not be negative")
		}
		cfg.SignificantDigits = n
		return nil
	})
}

// MathEpsilon treats two numbers as equal when they are within eps of each other.
func MathEpsilon(eps float64) Option {
	return cfgOption(func(cfg *config.Config) error {
		cfg.MathEpsilon = eps
		return nil
	})
}

// IgnoreNumericTypeChanges compares all numeric values by numeric value, ignoring the
// concrete numeric type.
func IgnoreNumericTypeChanges() Option {
	return cfgOption(func(cfg *config.Config) error {
		cfg.IgnoreNumericTypeChanges = true
		return nil
	})
}

// IgnoreStringTypeChanges compares strings and UTF-8 byte slices as the same kind.
func IgnoreStringTypeChanges() Option {
	return cfgOption(func(cfg *config.Config) error {
		cfg.IgnoreStringTypeChanges = true
		return nil
	})
}

// IgnoreStringCase compares strings case-insensitively.
func IgnoreStringCase() Option {
	return cfgOption(func(cfg *config.Config) error {
		cfg.IgnoreStringCase = true
		return nil
	})
}

// IgnoreNaNInequality treats two NaN values as equal.
func IgnoreNaNInequality() Option {
	return cfgOption(func(cfg *config.Config) error {
		cfg.IgnoreNaNInequality = true
		return nil
	})
}

// IgnoreTypeInGroups declares groups of interchangeable types: a type difference between two
// members of the same group is compared by value instead of reported as a type change.
func IgnoreTypeInGroups(groups ...[]reflect.Type) Option {
	return cfgOption(func(cfg *config.Config) error {
		cfg.TypeGroups = append(cfg.TypeGroups, groups...)
		return nil
	})
}

// TruncateDatetime truncates time values to the given granularity before comparing.
func TruncateDatetime(d time.Duration) Option {
	return cfgOption(func(cfg *config.Config) error {
		cfg.TruncateDatetime = d
		return nil
	})
}

// ExcludePaths removes the values at the given exact paths from the comparison.
func ExcludePaths(paths ...string) Option {
	return cfgOption(func(cfg *config.Config) error {
		if cfg.ExcludePaths == nil {
			cfg.ExcludePaths = make(map[string]struct{}, len(paths))
		}
		for _, p := range paths {
			cfg.ExcludePaths[p] = struct{}{}
		}
		return nil
	})
}

// IncludePaths restricts the comparison to the given paths and their subtrees. Ancestors of an
// included path are still traversed to reach it. Matching is by rendered-path prefix, so
// "root['keep']" also includes a sibling key it is a prefix of, such as "root['keeper']".
func IncludePaths(paths ...string) Option {
	return cfgOption(func(cfg *config.Config) error {
		if cfg.IncludePaths == nil {
			cfg.IncludePaths = make(map[string]struct{}, len(paths))
		}
		for _, p := range paths {
			cfg.IncludePaths[p] = struct{}{}
		}
		return nil
	})
}

// ExcludeRegexPaths removes every value whose path matches one of the patterns.
func ExcludeRegexPaths(patterns ...string) Option {
	return cfgOption(func(cfg *config.Config) error {
		for _, p := range patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return err
			}
			cfg.ExcludeRegexPaths = append(cfg.ExcludeRegexPaths, re)
		}
		return nil
	})
}

// ExcludeTypes removes every value of one of the given types from the comparison.
func ExcludeTypes(types ...reflect.Type) Option {
	return cfgOption(func(cfg *config.Config) error {
		cfg.ExcludeTypes = append(cfg.ExcludeTypes, types...)
		return nil
	})
}

// ExcludeObjCallback skips a pair when the callback accepts either side.
func ExcludeObjCallback(f func(v any, path string) bool) Option {
	return cfgOption(func(cfg *config.Config) error {
		cfg.ExcludeObjCallback = f
		return nil
	})
}

// ExcludeObjCallbackStrict skips a pair only when the callback accepts both sides.
func ExcludeObjCallbackStrict(f func(v any, path string) bool) Option {
	return cfgOption(func(cfg *config.Config) error {
		cfg.ExcludeObjCallbackStrict = f
		return nil
	})
}

// IncludeObjCallback keeps only the pairs where the callback accepts either side.
func IncludeObjCallback(f func(v any, path string) bool) Option {
	return cfgOption(func(cfg *config.Config) error {
		cfg.IncludeObjCallback = f
		return nil
	})
}

// IncludeObjCallbackStrict keeps only the pairs where the callback accepts both sides.
func IncludeObjCallbackStrict(f func(v any, path string) bool) Option {
	return cfgOption(func(cfg *config.Config) error {
		cfg.IncludeObjCallbackStrict = f
		return nil
	})
}

// IterableCompareFunc supplies a domain matcher for elements of ordered sequences. Returning
// an error wrapping [CannotCompare] falls back to positional matching for that pair.
func IterableCompareFunc(f func(x, y any, path string) (bool, error)) Option {
	return cfgOption(func(cfg *config.Config) error {
		cfg.IterableCompareFunc = f
		return nil
	})
}

// ZipOrderedIterables compares ordered sequences strictly positionally, without alignment.
func ZipOrderedIterables() Option {
	return cfgOption(func(cfg *config.Config) error {
		cfg.ZipOrderedIterables = true
		return nil
	})
}

// GroupBy restructures two sequences of records into maps keyed by the named field before
// comparing. Additional keys group nested levels.
func GroupBy(keys ...string) Option {
	return cfgOption(func(cfg *config.Config) error {
		if len(keys) == 0 {
			return errOption("group by requires at least one key")
		}
		cfg.GroupBy = keys
		return nil
	})
}

// GroupBySortKey orders rows that share a group key, making grouped slices deterministic.
func GroupBySortKey(f func(row map[string]any) string) Option {
	return cfgOption(func(cfg *config.Config) error {
		cfg.GroupBySortKey = f
		return nil
	})
}

// MaxDiffs truncates the run after n change records were found. Zero means unlimited.
func MaxDiffs(n int64) Option {
	return cfgOption(func(cfg *config.Config) error {
		cfg.MaxDiffs = n
		return nil
	})
}

// MaxPasses limits the number of deep pairing passes during unordered comparison.
func MaxPasses(n int64) Option {
	return cfgOption(func(cfg *config.Config) error {
		cfg.MaxPasses = n
		return nil
	})
}

// CacheSize bounds the distance cache used by unordered pairing. Zero disables the cache.
func CacheSize(n int) Option {
	return cfgOption(func(cfg *config.Config) error {
		cfg.CacheSize = n
		return nil
	})
}

// CacheTuningSampleSize enables cache auto-tuning: the hit rate is sampled every n passes
// and the cache is switched off when it does not pay for itself.
func CacheTuningSampleSize(n int64) Option {
	return cfgOption(func(cfg *config.Config) error {
		cfg.CacheTuningSampleSize = n
		return nil
	})
}

// CutoffDistanceForPairs sets the maximum rough distance at which two removed/added items are
// still considered a changed pair. Must be in [0, 1].
func CutoffDistanceForPairs(ratio float64) Option {
	return cfgOption(func(cfg *config.Config) error {
		cfg.CutoffDistanceForPairs = ratio
		return nil
	})
}

// CutoffIntersectionForPairs skips pairing entirely when the two collections share fewer
// than (1 - ratio) of their items. Must be in [0, 1].
func CutoffIntersectionForPairs(ratio float64) Option {
	return cfgOption(func(cfg *config.Config) error {
		cfg.CutoffIntersectionForPairs = ratio
		return nil
	})
}

// Verbose sets the report detail level: 0 paths only, 1 scalar values, 2 also old values of
// additions.
func Verbose(level int) Option {
	return cfgOption(func(cfg *config.Config) error {
		cfg.VerboseLevel = level
		return nil
	})
}

// GetDeepDistance computes the normalized rough distance of the two roots and stores it on
// the report.
func GetDeepDistance() Option {
	return cfgOption(func(cfg *config.Config) error {
		cfg.GetDeepDistance = true
		return nil
	})
}

// ProgressLogFrequency logs a progress line at the given interval while a comparison runs.
func ProgressLogFrequency(d time.Duration) Option {
	return cfgOption(func(cfg *config.Config) error {
		cfg.ProgressLogFrequency = d
		return nil
	})
}

// Logger sets the logger used for warnings and progress reporting. The default discards
// everything.
func Logger(l *zap.Logger) Option {
	return func(s *settings) error {
		if l == nil {
			return errOption("logger must not be nil")
		}
		s.logger = l
		return nil
	}
}

// Operators installs custom operators. Operators are consulted in order for every pair before
// the built-in comparison.
func Operators(ops ...Operator) Option {
	return func(s *settings) error {
		s.operators = append(s.operators, ops...)
		return nil
	}
}

// Hashes shares a content hash table across runs, so repeated comparisons of overlapping data
// skip re-hashing.
func Hashes(t *deephash.Table) Option {
	return func(s *settings) error {
		if t == nil {
			return errOption("hash table must not be nil")
		}
		s.hashes = t
		return nil
	}
}

type optionError string

func errOption(msg string) error    { return optionError(msg) }
func (e optionError) Error() string { return string(e) }
