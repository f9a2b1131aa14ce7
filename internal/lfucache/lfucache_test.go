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

package lfucache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAndSet(t *testing.T) {
	c := New(4)
	c.Set("a", 1)
	c.Set("b", 2)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestSetOverwrites(t *testing.T) {
	c := New(2)
	c.Set("a", 1)
	c.Set("a", 2)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Len())
}

func TestEvictsLeastFrequent(t *testing.T) {
	c := New(2)
	c.Set("a", 1)
	c.Set("b", 2)
	_, _ = c.Get("a")
	_, _ = c.Get("a")

	c.Set("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok, "the least frequently used entry should be gone")
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestEvictionTieBreaksOnInsertionOrder(t *testing.T) {
	c := New(3)
	c.Set("first", 1)
	c.Set("second", 2)
	c.Set("third", 3)

	// All three sit at frequency 1, the oldest insertion must go first.
	c.Set("fourth", 4)

	_, ok := c.Get("first")
	assert.False(t, ok)
	for _, key := range []string{"second", "third", "fourth"} {
		_, ok := c.Get(key)
		assert.True(t, ok, key)
	}
}

func TestZeroCapacityStoresNothing(t *testing.T) {
	c := New(0)
	c.Set("a", 1)
	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestChurn(t *testing.T) {
	c := New(8)
	for i := 0; i < 100; i++ {
		key := fmt.Sprintf("k%d", i%16)
		c.Set(key, i)
		_, _ = c.Get(key)
	}
	assert.LessOrEqual(t, c.Len(), 8)
}
