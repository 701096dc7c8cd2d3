// Copyright 2017-25 the original author or authors.
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

package streetaddr

import (
	"fmt"
	"log/slog"
	"math"
	"runtime"

	"golang.org/x/exp/constraints"

	"m4o.io/streetaddr/geodesy"
)

const (
	// DefaultIntervalMeters is the default spacing between cross lines.
	DefaultIntervalMeters = 20.0

	// DefaultOffsetMeters is the default distance between an address
	// marker and the street boundary.
	DefaultOffsetMeters = 5.0

	// DefaultStartNumber is the default first building number.
	DefaultStartNumber = 0

	// DefaultProbeMeters is how far rays are cast from the centerline when
	// looking for the street boundary.
	DefaultProbeMeters = 100.0

	// DefaultFallbackMeters is the marker distance, and the cross line
	// half-width, used when a probe does not reach the boundary.
	DefaultFallbackMeters = 10.0
)

// DefaultNCpu provides the default number of CPUs used by GenerateAll.
func DefaultNCpu() uint16 {
	cpus := uint16(runtime.GOMAXPROCS(-1))

	return max(cpus-1, 1)
}

// Options is the caller-facing addressing configuration.
type Options struct {
	IntervalMeters   float64 `json:"intervalMeters"`
	OffsetMeters     float64 `json:"offsetMeters"`
	StartNumber      int     `json:"startNumber"`
	ReverseDirection bool    `json:"reverseDirection"`
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		IntervalMeters: DefaultIntervalMeters,
		OffsetMeters:   DefaultOffsetMeters,
		StartNumber:    DefaultStartNumber,
	}
}

// Validate checks that every option is in range.
func (o Options) Validate() error {
	switch {
	case !positive(o.IntervalMeters):
		return fmt.Errorf("%w: interval must be a positive number of meters, got %v", ErrInvalidOptions, o.IntervalMeters)
	case !positive(o.OffsetMeters):
		return fmt.Errorf("%w: offset must be a positive number of meters, got %v", ErrInvalidOptions, o.OffsetMeters)
	case !nonNegative(o.StartNumber):
		return fmt.Errorf("%w: start number must not be negative, got %d", ErrInvalidOptions, o.StartNumber)
	}

	return nil
}

// options provides optional configuration parameters for Generator construction.
type options struct {
	Options

	probe    float64 // ray length used to find the boundary
	fallback float64 // distance used when a ray misses
	kernel   geodesy.Kernel
	logger   *slog.Logger
	nCPU     uint16 // the number of streets generated concurrently
}

// Option configures how we set up the generator.
type Option func(*options)

// WithOptions applies all the caller-facing options at once.
func WithOptions(o Options) Option {
	return func(cfg *options) {
		cfg.Options = o
	}
}

// WithIntervalMeters sets the spacing between cross lines.
func WithIntervalMeters(m float64) Option {
	return func(o *options) {
		o.IntervalMeters = m
	}
}

// WithOffsetMeters sets how far outside the street boundary address markers
// are placed.
func WithOffsetMeters(m float64) Option {
	return func(o *options) {
		o.OffsetMeters = m
	}
}

// WithStartNumber sets the first building number.  Left numbers start at the
// first odd number not less than n, right numbers at the first even one.
func WithStartNumber(n int) Option {
	return func(o *options) {
		o.StartNumber = n
	}
}

// WithReverseDirection walks the centerline from its far end, which swaps
// the physical side receiving odd numbers.
func WithReverseDirection(reverse bool) Option {
	return func(o *options) {
		o.ReverseDirection = reverse
	}
}

// WithProbeMeters sets the length of the rays cast to find the boundary.
func WithProbeMeters(m float64) Option {
	return func(o *options) {
		o.probe = m
	}
}

// WithFallbackMeters sets the marker distance, and cross line half-width,
// used when a ray does not reach the boundary.
func WithFallbackMeters(m float64) Option {
	return func(o *options) {
		o.fallback = m
	}
}

// WithKernel lets you choose the geometry kernel.
func WithKernel(k geodesy.Kernel) Option {
	return func(o *options) {
		o.kernel = k
	}
}

// WithLogger sets the logger used to report fallbacks.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithNCpus lets you set the number of streets generated concurrently.
func WithNCpus(n uint16) Option {
	return func(o *options) {
		o.nCPU = n
	}
}

// defaultGeneratorConfig provides a default configuration for generators.
var defaultGeneratorConfig = options{
	Options:  DefaultOptions(),
	probe:    DefaultProbeMeters,
	fallback: DefaultFallbackMeters,
	kernel:   geodesy.Default,
	nCPU:     DefaultNCpu(),
}

func (o *options) validate() error {
	if err := o.Options.Validate(); err != nil {
		return err
	}

	switch {
	case !positive(o.probe):
		return fmt.Errorf("%w: probe must be a positive number of meters, got %v", ErrInvalidOptions, o.probe)
	case !positive(o.fallback):
		return fmt.Errorf("%w: fallback must be a positive number of meters, got %v", ErrInvalidOptions, o.fallback)
	case o.kernel == nil:
		return fmt.Errorf("%w: no geometry kernel", ErrInvalidOptions)
	}

	if o.logger == nil {
		o.logger = slog.Default()
	}

	o.nCPU = max(o.nCPU, 1)

	return nil
}

func positive[T constraints.Integer | constraints.Float](v T) bool {
	return v > 0 && !math.IsInf(float64(v), 1)
}

func nonNegative[T constraints.Signed | constraints.Float](v T) bool {
	return v >= 0 && !math.IsNaN(float64(v))
}
