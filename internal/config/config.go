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

// Package config provides shared configuration mechanisms for packages in this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// deepdiff.Option.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"time"
)

// Default values for the pairing heuristics. Two items qualify as a pair when their rough
// distance is below CutoffDistanceForPairs. Pairing is skipped entirely when the share of
// non-intersecting hashes exceeds CutoffIntersectionForPairs.
const (
	DefaultCutoffDistanceForPairs     = 0.3
	DefaultCutoffIntersectionForPairs = 0.7
	DefaultMaxPasses                  = 10_000_000
)

var (
	ErrCutoffRange  = errors.New("cutoff ratio must be between 0 and 1")
	ErrVerboseRange = errors.New("verbose level must be 0, 1 or 2")
)

// Config collects all configurable parameters for a comparison run. The zero value is not
// usable, start from Default and call Validate after applying options.
type Config struct {
	IgnoreOrder     bool
	IgnoreOrderFunc func(path string) bool

	ReportRepetition bool

	// Numeric equivalence. SignificantDigits < 0 means exact comparison. MathEpsilon <= 0
	// means no epsilon-based closeness.
	SignificantDigits int
	MathEpsilon       float64

	IgnoreNumericTypeChanges bool
	IgnoreStringTypeChanges  bool
	IgnoreStringCase         bool
	IgnoreNaNInequality      bool

	// TypeGroups are groups of types whose members are considered interchangeable: a type
	// difference within a group is absorbed instead of reported.
	TypeGroups [][]reflect.Type

	// TruncateDatetime truncates time values to this granularity before comparing and
	// hashing. Zero means no truncation.
	TruncateDatetime time.Duration

	ExcludePaths      map[string]struct{}
	IncludePaths      map[string]struct{}
	ExcludeRegexPaths []*regexp.Regexp
	ExcludeTypes      []reflect.Type

	ExcludeObjCallback       func(v any, path string) bool
	ExcludeObjCallbackStrict func(v any, path string) bool
	IncludeObjCallback       func(v any, path string) bool
	IncludeObjCallbackStrict func(v any, path string) bool

	// IterableCompareFunc matches elements of ordered sequences. It may report that the two
	// values cannot be compared, in which case positional matching is used instead.
	IterableCompareFunc func(x, y any, path string) (bool, error)

	ZipOrderedIterables bool

	GroupBy        []string
	GroupBySortKey func(row map[string]any) string

	// Soft budgets. MaxDiffs == 0 means unlimited.
	MaxDiffs  int64
	MaxPasses int64

	// Distance cache. CacheSize == 0 disables the cache, CacheTuningSampleSize == 0 disables
	// auto-tuning.
	CacheSize             int
	CacheTuningSampleSize int64

	CutoffDistanceForPairs     float64
	CutoffIntersectionForPairs float64

	VerboseLevel int

	GetDeepDistance bool

	ProgressLogFrequency time.Duration
}

// Default is the default configuration.
var Default = Config{
	SignificantDigits:          -1,
	MaxPasses:                  DefaultMaxPasses,
	CutoffDistanceForPairs:     DefaultCutoffDistanceForPairs,
	CutoffIntersectionForPairs: DefaultCutoffIntersectionForPairs,
	VerboseLevel:               1,
}

// Validate rejects parameter values outside their documented ranges. Invalid settings are
// reported fatally, they are never clamped.
func (cfg *Config) Validate() error {
	if cfg.CutoffDistanceForPairs < 0 || cfg.CutoffDistanceForPairs > 1 {
		return fmt.Errorf("cutoff_distance_for_pairs: %w", ErrCutoffRange)
	}
	if cfg.CutoffIntersectionForPairs < 0 || cfg.CutoffIntersectionForPairs > 1 {
		return fmt.Errorf("cutoff_intersection_for_pairs: %w", ErrCutoffRange)
	}
	if cfg.VerboseLevel < 0 || cfg.VerboseLevel > 2 {
		return ErrVerboseRange
	}
	if cfg.CacheSize < 0 {
		return errors.New("cache size must not be negative")
	}
	return nil
}

// HashPolicy is the subset of the configuration that influences content hashing. Hash equality
// must match compare equality for the unordered matcher to be correct, so both subsystems share
// these knobs.
type HashPolicy struct {
	SignificantDigits        int
	IgnoreNumericTypeChanges bool
	IgnoreStringTypeChanges  bool
	IgnoreStringCase         bool
	IgnoreRepetition         bool
	TruncateDatetime         time.Duration
}

// HashPolicy derives the hashing policy from the full configuration.
func (cfg *Config) HashPolicy() HashPolicy {
	return HashPolicy{
		SignificantDigits:        cfg.SignificantDigits,
		IgnoreNumericTypeChanges: cfg.IgnoreNumericTypeChanges,
		IgnoreStringTypeChanges:  cfg.IgnoreStringTypeChanges,
		IgnoreStringCase:         cfg.IgnoreStringCase,
		IgnoreRepetition:         !cfg.ReportRepetition,
		TruncateDatetime:         cfg.TruncateDatetime,
	}
}
