// Copyright 2025 the original author or authors.
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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"m4o.io/streetaddr/geodesy"
)

func TestDefaultNCpu(t *testing.T) {
	assert.GreaterOrEqual(t, DefaultNCpu(), uint16(1))
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		valid bool
	}{
		{"defaults", DefaultOptions(), true},
		{"reverse", Options{IntervalMeters: 10, OffsetMeters: 1, StartNumber: 3, ReverseDirection: true}, true},
		{"zero interval", Options{OffsetMeters: 1}, false},
		{"nan interval", Options{IntervalMeters: math.NaN(), OffsetMeters: 1}, false},
		{"zero offset", Options{IntervalMeters: 10}, false},
		{"infinite offset", Options{IntervalMeters: 10, OffsetMeters: math.Inf(1)}, false},
		{"negative start", Options{IntervalMeters: 10, OffsetMeters: 1, StartNumber: -1}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.opts.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidOptions)
			}
		})
	}
}

func TestOptionsApply(t *testing.T) {
	cfg := defaultGeneratorConfig

	for _, opt := range []Option{
		WithIntervalMeters(12),
		WithOffsetMeters(3),
		WithStartNumber(9),
		WithReverseDirection(true),
		WithProbeMeters(50),
		WithFallbackMeters(4),
		WithKernel(geodesy.S2{}),
		WithNCpus(0),
	} {
		opt(&cfg)
	}

	assert.NoError(t, cfg.validate())
	assert.Equal(t, Options{IntervalMeters: 12, OffsetMeters: 3, StartNumber: 9, ReverseDirection: true}, cfg.Options)
	assert.Equal(t, PlaceParams{IntervalMeters: 12, OffsetMeters: 3, StartNumber: 9, ProbeMeters: 50, FallbackMeters: 4},
		cfg.placeParams())
	assert.Equal(t, geodesy.S2{}, cfg.kernel)
	assert.Equal(t, uint16(1), cfg.nCPU)
	assert.NotNil(t, cfg.logger)

	cfg.fallback = 0
	assert.ErrorIs(t, cfg.validate(), ErrInvalidOptions)
}
