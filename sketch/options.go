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

import "github.com/tinylfu/freqsketch/internal/hashfam"

// Option configures a sketch at construction time. The pattern mirrors the
// teacher's tinylfu.Option (tinylfu/option.go): a function over a private
// options struct, applied in order.
type Option func(*options)

type options struct {
	newFamily func(depth int, seed int64) *hashfam.Family
}

func defaultOptions() *options {
	return &options{newFamily: hashfam.NewDefault}
}

func (o *options) apply(opts []Option) *options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithHashFamily swaps the C1 hash family used to derive a sketch's row
// probes. The default is the xxhash-backed avalanche family
// (hashfam.NewDefault); hashfam.NewFarm is a drop-in alternative backed by
// go-farm, per the "hash function choice" design note in spec §9.
func WithHashFamily(ctor func(depth int, seed int64) *hashfam.Family) Option {
	return func(o *options) { o.newFamily = ctor }
}
