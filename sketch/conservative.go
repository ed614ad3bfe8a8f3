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

package sketch

import "github.com/tinylfu/freqsketch/internal/matrix"

// ConservativeSketch overrides Add with the Conservative Update rule from
// spec §4.4: raise every probed cell to the floor (minimum of the probed
// cells + count), never lowering a cell below what it already holds. Estimate is unchanged and is promoted
// straight from the embedded ClassicSketch -- conservative update keeps the
// estimator identical to classical Count-Min, it only changes what gets
// written.
type ConservativeSketch struct {
	*ClassicSketch
}

// NewConservative builds a ConservativeSketch with Constructor A.
func NewConservative(depth, width int, seed int64, opts ...Option) (*ConservativeSketch, error) {
	base, err := NewClassic(depth, width, seed, opts...)
	if err != nil {
		return nil, err
	}
	return &ConservativeSketch{ClassicSketch: base}, nil
}

// NewConservativeWithErrorRate builds a ConservativeSketch with Constructor B.
func NewConservativeWithErrorRate(epsilon, delta float64, seed int64, opts ...Option) (*ConservativeSketch, error) {
	base, err := NewClassicWithErrorRate(epsilon, delta, seed, opts...)
	if err != nil {
		return nil, err
	}
	return &ConservativeSketch{ClassicSketch: base}, nil
}

// Add implements spec §4.4: probe the d cells, let m be their minimum, then
// set each probed cell to max(current, m+count), saturating. Cells already
// above m+count are left untouched -- conservative update only ever raises
// a cell to the floor the minimum imposes.
func (s *ConservativeSketch) Add(item any, count uint32) {
	s.hashes.ColumnsInto(item, s.width, s.scratch)

	min := matrix.MaxCounter
	for row, col := range s.scratch {
		if v := s.table.Get(row, col); v < min {
			min = v
		}
	}

	floor := min
	if count > matrix.MaxCounter-floor {
		floor = matrix.MaxCounter
	} else {
		floor += count
	}

	for row, col := range s.scratch {
		s.table.Max(row, col, floor)
	}
}
