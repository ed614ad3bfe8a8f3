/*
 * Copyright 2019 Dgraph Labs, Inc. and Contributors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package hashfam derives d independent, deterministic column indexes from
// an item for use as a Count-Min sketch's row probes. Heavily based on the
// teacher's cmSketch.fourIndexes, generalized from a hardcoded depth of 4 to
// an arbitrary depth and from a power-of-2 width mask to Lemire's
// multiply-shift reduction (so width need not be a power of 2).
package hashfam

import (
	"math/bits"

	"github.com/cespare/xxhash/v2"
	farm "github.com/dgryski/go-farm"
)

// golden is the splitmix64 increment, used to derive per-row seeds from a
// single caller-supplied seed deterministically (no dependence on
// time.Now, unlike the teacher's newCmSketch).
const golden = 0x9E3779B97F4A7C15

// preHash maps an arbitrary item to a fixed-width uint64 prior to mixing.
// Integers are used directly; byte strings go through a real hash function,
// per spec §4.1 ("pre-hashed to a fixed-width integer before mixing").
type preHash func(item any) uint64

// Family derives Depth() independent column indexes for an item.
type Family struct {
	seeds []uint64
	pre   preHash
}

// NewDefault builds a Family backed by xxhash for byte-string items and the
// teacher's avalanche mixer (spread, below) for per-row swiveling.
func NewDefault(depth int, seed int64) *Family {
	return newFamily(depth, seed, xxhashPre)
}

// NewFarm builds a Family backed by go-farm's Hash64 instead of xxhash for
// the byte-string pre-hash step. Selected via sketch.WithHashFamily; exists
// so the hash function choice called out in spec §9 ("pick a well-known
// mixer ... ") is a real, swappable implementation rather than a
// hypothetical one -- the teacher depends on go-farm but never uses it in
// its own sketch.
func NewFarm(depth int, seed int64) *Family {
	return newFamily(depth, seed, farmPre)
}

func newFamily(depth int, seed int64, pre preHash) *Family {
	if depth <= 0 {
		panic("hashfam: depth must be positive")
	}
	seeds := make([]uint64, depth)
	s := uint64(seed)
	for i := range seeds {
		s += golden
		seeds[i] = spread(s)
	}
	return &Family{seeds: seeds, pre: pre}
}

// Depth returns the number of independent rows this family serves.
func (f *Family) Depth() int { return len(f.seeds) }

// ColumnsInto fills dst (len(dst) == Depth()) with the column index for item
// in each row, reduced into [0, width). No allocation beyond what the
// caller already owns in dst, matching the teacher's zero-allocation
// fourIndexes.
func (f *Family) ColumnsInto(item any, width int, dst []int) {
	h := f.pre(item)
	w := uint64(width)
	for i, seed := range f.seeds {
		mixed := spread(h ^ seed)
		dst[i] = int(reduce(mixed, w))
	}
}

// reduce maps a uniformly-distributed 64-bit hash into [0, n) without
// modulo bias, using Lemire's 64x64->128 multiply-shift trick: the high 64
// bits of hash*n are uniform over [0, n) whenever hash is uniform over
// [0, 2^64). This is the "64x64->128 multiply-reduce when width is not a
// power of two" construction spec §4.1/§9 recommends; unlike the teacher's
// power-of-2 bitmask, it works for any width.
func reduce(hash, n uint64) uint64 {
	hi, _ := bits.Mul64(hash, n)
	return hi
}

func circRightShift(x uint64, shift uint) uint64 {
	return (x << (64 - shift)) | (x >> shift)
}

// spread is the teacher's supplemental avalanche mixer (cmSketch.spread),
// used here per-row instead of once globally so swiveling generalizes past
// a hardcoded depth of 4.
func spread(x uint64) uint64 {
	x = (circRightShift(x, 16) ^ x) * 0x45d9f3b
	x = (circRightShift(x, 16) ^ x) * 0x45d9f3b
	return circRightShift(x, 16) ^ x
}

func xxhashPre(item any) uint64 {
	switch v := item.(type) {
	case string:
		return xxhash.Sum64String(v)
	case []byte:
		return xxhash.Sum64(v)
	default:
		return integerHash(item)
	}
}

func farmPre(item any) uint64 {
	switch v := item.(type) {
	case string:
		return farm.Hash64([]byte(v))
	case []byte:
		return farm.Hash64(v)
	default:
		return integerHash(item)
	}
}

// integerHash accepts the fixed-width integer identifiers spec §6 allows as
// an alternative to byte strings, and panics on anything else -- an item of
// an unsupported type is a programmer error, not a runtime condition to
// recover from.
func integerHash(item any) uint64 {
	switch v := item.(type) {
	case int:
		return uint64(v)
	case int8:
		return uint64(v)
	case int16:
		return uint64(v)
	case int32:
		return uint64(v)
	case int64:
		return uint64(v)
	case uint:
		return uint64(v)
	case uint8:
		return uint64(v)
	case uint16:
		return uint64(v)
	case uint32:
		return uint64(v)
	case uint64:
		return v
	default:
		panic("hashfam: unsupported item type, want string, []byte, or a fixed-width integer")
	}
}
