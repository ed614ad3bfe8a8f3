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

// Package sketch implements an approximate frequency counter with aging: a
// Count-Min sketch (ClassicSketch), its conservative-update variant
// (ConservativeSketch), and a TinyLFU-style aging wrapper (FrequencySketch)
// that is the one an admission policy should actually hold.
//
// The three types are built by composition, not inheritance: each wraps
// the previous and narrows what "Add" means, exactly per the design note
// in spec §9 ("prefer composition ... overriding add becomes a direct
// call into the aging path").
package sketch

import (
	"math"

	"github.com/tinylfu/freqsketch/internal/hashfam"
	"github.com/tinylfu/freqsketch/internal/matrix"
)

// ClassicSketch is a textbook Count-Min sketch: Add increments every probed
// cell. It is kept for reference and for tests that need to compare
// conservative update against the classical baseline (spec §8 scenario S3);
// the admission path never uses it directly, it uses FrequencySketch.
type ClassicSketch struct {
	hashes  *hashfam.Family
	table   *matrix.Matrix
	depth   int
	width   int
	scratch []int
}

// NewClassic builds a ClassicSketch with Constructor A's direct
// parameterization: depth and width must both be positive.
func NewClassic(depth, width int, seed int64, opts ...Option) (*ClassicSketch, error) {
	if err := validateShape(depth, width); err != nil {
		return nil, err
	}
	o := defaultOptions().apply(opts)
	return &ClassicSketch{
		hashes:  o.newFamily(depth, seed),
		table:   matrix.New(depth, width),
		depth:   depth,
		width:   width,
		scratch: make([]int, depth),
	}, nil
}

// NewClassicWithErrorRate builds a ClassicSketch with Constructor B: width =
// ceil(e/epsilon), depth = ceil(ln(1/delta)).
func NewClassicWithErrorRate(epsilon, delta float64, seed int64, opts ...Option) (*ClassicSketch, error) {
	depth, width, err := deriveShape(epsilon, delta)
	if err != nil {
		return nil, err
	}
	return NewClassic(depth, width, seed, opts...)
}

// Depth returns the number of rows.
func (s *ClassicSketch) Depth() int { return s.depth }

// Width returns the number of counters per row.
func (s *ClassicSketch) Width() int { return s.width }

// Add increments every one of the d probed cells by count, saturating.
// This is the classical rule spec §4.3 calls "provided for reference" --
// it over-counts collisions more than conservative update does.
func (s *ClassicSketch) Add(item any, count uint32) {
	s.hashes.ColumnsInto(item, s.width, s.scratch)
	for row, col := range s.scratch {
		s.table.Add(row, col, count)
	}
}

// Estimate returns the minimum of the d probed cells: the Count-Min
// estimator, never under-reporting the true frequency (spec §4.3).
func (s *ClassicSketch) Estimate(item any) uint32 {
	s.hashes.ColumnsInto(item, s.width, s.scratch)
	min := uint32(math.MaxUint32)
	for row, col := range s.scratch {
		if v := s.table.Get(row, col); v < min {
			min = v
		}
	}
	return min
}

// Footprint reports the sketch's fixed memory footprint (depth * width *
// sizeof(counter), spec §5) as a raw byte count. FrequencySketch.Footprint
// reports the same figure as a humanized string.
func (s *ClassicSketch) Footprint() uint64 {
	return s.table.Bytes()
}
