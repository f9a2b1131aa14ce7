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
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/AaronDMarasco/deepdiff/internal/config"
	"github.com/AaronDMarasco/deepdiff/internal/deephash"
	"github.com/AaronDMarasco/deepdiff/internal/lfucache"
)

// Stats are the counters of a finished run.
type Stats struct {
	// DiffCount is the number of node pairs visited, including pairing probes.
	DiffCount int64
	// PassesUsed is the number of deep pairing passes spent during unordered comparison.
	PassesUsed int64
	// DistanceCacheHits counts how often a pairing distance was served from the cache.
	DistanceCacheHits int64

	// True when the corresponding soft budget truncated the run. The report is then a
	// partial answer.
	MaxPassLimitReached bool
	MaxDiffLimitReached bool
}

// cacheAutoAdjustThreshold is the minimal hit/visit slope below which the distance cache is
// considered not worth its bookkeeping and gets switched off.
const cacheAutoAdjustThreshold = 0.25

// runContext carries the state shared by the top-level comparison and every nested pairing
// probe: the configuration, the content hash table, the distance cache and the run counters.
// Counters are atomic only so the progress reporter can read them from its own goroutine; the
// comparison itself is single-threaded.
type runContext struct {
	cfg    *config.Config
	log    *zap.Logger
	hasher *deephash.Hasher
	cache  *lfucache.Cache
	ops    []Operator

	diffCount  atomic.Int64
	passesUsed atomic.Int64
	cacheHits  atomic.Int64

	maxPassesReached bool
	maxDiffsReached  bool

	// Auto-tuning state. The cache starts enabled and is sampled every
	// CacheTuningSampleSize visits; a cold cache is retried with exponential backoff.
	cacheEnabled       bool
	prevDiffCount      int64
	prevCacheHits      int64
	reenableEveryVisit int64
}

func newRunContext(s *settings) *runContext {
	rc := &runContext{
		cfg:          &s.cfg,
		log:          s.logger,
		ops:          s.operators,
		cacheEnabled: s.cfg.CacheSize > 0,
	}
	table := s.hashes
	if table == nil {
		table = deephash.NewTable()
	}
	rc.hasher = deephash.New(s.cfg.HashPolicy(), table)
	if s.cfg.CacheSize > 0 {
		rc.cache = lfucache.New(s.cfg.CacheSize)
	}
	if s.cfg.CacheTuningSampleSize > 0 {
		rc.reenableEveryVisit = s.cfg.CacheTuningSampleSize * 10
	}
	return rc
}

// countVisit accounts for one node pair about to be compared. It returns false when the
// MaxDiffs budget is exhausted, in which case the caller must stop descending.
func (rc *runContext) countVisit() bool {
	if rc.cfg.MaxDiffs > 0 && rc.diffCount.Load() > rc.cfg.MaxDiffs {
		if !rc.maxDiffsReached {
			rc.maxDiffsReached = true
			rc.log.Warn("max diffs reached, the result is truncated",
				zap.Int64("max_diffs", rc.cfg.MaxDiffs))
		}
		return false
	}
	n := rc.diffCount.Add(1)
	if rc.cfg.CacheSize > 0 && rc.cfg.CacheTuningSampleSize > 0 {
		rc.autoTuneCache(n)
	}
	return true
}

// autoTuneCache samples the cache hit rate every CacheTuningSampleSize visits. A cache whose
// hit slope stays under cacheAutoAdjustThreshold is switched off, then periodically retried
// with a tenfold longer interval each time.
func (rc *runContext) autoTuneCache(visits int64) {
	takeSample := visits%rc.cfg.CacheTuningSampleSize == 0
	if rc.cacheEnabled {
		if takeSample {
			hits := rc.cacheHits.Load()
			window := visits - rc.prevDiffCount
			if window > 0 {
				slope := float64(hits-rc.prevCacheHits) / float64(window)
				if slope < cacheAutoAdjustThreshold {
					rc.cacheEnabled = false
					rc.log.Info("distance cache disabled due to minimal cache hits")
				}
			}
		}
	} else if visits%rc.reenableEveryVisit == 0 {
		rc.reenableEveryVisit *= 10
		rc.cacheEnabled = true
		rc.log.Info("re-enabling the distance cache")
	}
	if takeSample {
		rc.prevDiffCount = rc.diffCount.Load()
		rc.prevCacheHits = rc.cacheHits.Load()
	}
}

func (rc *runContext) cacheGet(key string) (any, bool) {
	if rc.cache == nil || !rc.cacheEnabled {
		return nil, false
	}
	v, ok := rc.cache.Get(key)
	if ok {
		rc.cacheHits.Add(1)
	}
	return v, ok
}

func (rc *runContext) cacheSet(key string, value any) {
	if rc.cache == nil || !rc.cacheEnabled {
		return
	}
	rc.cache.Set(key, value)
}

func (rc *runContext) snapshot() Stats {
	return Stats{
		DiffCount:           rc.diffCount.Load(),
		PassesUsed:          rc.passesUsed.Load(),
		DistanceCacheHits:   rc.cacheHits.Load(),
		MaxPassLimitReached: rc.maxPassesReached,
		MaxDiffLimitReached: rc.maxDiffsReached,
	}
}

// startProgress launches the periodic progress reporter. The returned stop function must be
// called exactly once.
func (rc *runContext) startProgress() (stop func()) {
	if rc.cfg.ProgressLogFrequency <= 0 {
		return func() {}
	}
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(rc.cfg.ProgressLogFrequency)
		defer ticker.Stop()
		start := time.Now()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				rc.log.Info("diffing in progress",
					zap.Duration("elapsed", time.Since(start).Round(time.Second)),
					zap.Int64("visited", rc.diffCount.Load()),
					zap.Int64("passes", rc.passesUsed.Load()))
			}
		}
	}()
	return func() { close(done) }
}
