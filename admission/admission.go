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

// Package admission implements the TinyLFU admission decision (spec §4.6):
// given a candidate and the victim it would displace, admit the candidate
// only if it is estimated to be strictly more popular.
//
// Shaped after the teacher's tinyLFU type in policy.go, which wraps a
// Sketch and a Filter and answers exactly this question for its enclosing
// cache -- minus the Filter (a doorkeeper bloom filter), which spec.md
// never calls for and which the non-distilled original
// (CountMinTinyLFU.java) doesn't have either.
package admission

import "github.com/tinylfu/freqsketch/sketch"

// Policy answers admission questions using a FrequencySketch's estimates.
// It borrows the sketch for read-only Estimate calls; Add is the caller's
// responsibility, typically performed on the candidate just before the
// admission query (spec §4.6) so a first-sight item has frequency >= 1.
type Policy struct {
	freq     *sketch.FrequencySketch
	tieBreak func() bool
}

// Option configures a Policy, matching the functional-options shape used
// throughout package sketch (itself grounded in tinylfu/option.go).
type Option func(*Policy)

// WithTieBreaker installs the "jitter" hook spec §4.6/§9 allows as an
// alternative to the default deterministic reject-on-tie: when candidate
// and victim estimate equally, f is consulted instead of always returning
// false. Absent this option, ties are always rejected.
func WithTieBreaker(f func() bool) Option {
	return func(p *Policy) { p.tieBreak = f }
}

// New builds a Policy over an existing FrequencySketch.
func New(freq *sketch.FrequencySketch, opts ...Option) *Policy {
	p := &Policy{freq: freq}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Admit returns true if candidate's estimated frequency strictly exceeds
// victim's. Ties are rejected by default (spec §4.6: "On ties, return
// false (do not evict)"), unless a tie-breaker was configured.
func (p *Policy) Admit(candidate, victim any) bool {
	fc := p.freq.Estimate(candidate)
	fv := p.freq.Estimate(victim)
	switch {
	case fc > fv:
		return true
	case fc == fv && p.tieBreak != nil:
		return p.tieBreak()
	default:
		return false
	}
}

// Record increments the sketch on behalf of key, mirroring the teacher's
// tinyLFU.Increment -- a convenience so callers aren't required to reach
// past the Policy into the sketch for the common "record then maybe admit"
// sequence.
func (p *Policy) Record(key any) {
	p.freq.Add(key, 1)
}
