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

import (
	"math"

	"github.com/pkg/errors"
)

// validateShape rejects the InvalidParameter cases from spec §7 for
// Constructor A: depth/width must be positive.
func validateShape(depth, width int) error {
	if depth <= 0 {
		return errors.Errorf("sketch: depth must be positive, got %d", depth)
	}
	if width <= 0 {
		return errors.Errorf("sketch: width must be positive, got %d", width)
	}
	return nil
}

// deriveShape implements Constructor B's (epsilon, delta) -> (depth, width)
// derivation from spec §3/§6: width = ceil(e/epsilon), depth = ceil(ln(1/delta)).
func deriveShape(epsilon, delta float64) (depth, width int, err error) {
	if !(epsilon > 0 && epsilon < 1) {
		return 0, 0, errors.Errorf("sketch: epsilon must be in (0, 1), got %v", epsilon)
	}
	if !(delta > 0 && delta < 1) {
		return 0, 0, errors.Errorf("sketch: delta must be in (0, 1), got %v", delta)
	}
	width = int(math.Ceil(math.E / epsilon))
	depth = int(math.Ceil(math.Log(1 / delta)))
	if width < 1 {
		width = 1
	}
	if depth < 1 {
		depth = 1
	}
	return depth, width, nil
}

// validateSampleSize rejects the S = 0 (and negative) case from spec §4.5's
// edge cases: "S = 0 is invalid; constructor fails."
func validateSampleSize(sampleSize int64) error {
	if sampleSize <= 0 {
		return errors.Errorf("sketch: sample_size must be positive, got %d", sampleSize)
	}
	return nil
}
