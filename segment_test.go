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

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/streetaddr/geodesy"
)

func TestSegment(t *testing.T) {
	k := geodesy.Default
	line := orb.LineString{{0.001, 0}, {0.001 + 100/metersPerDegree, 0}}

	length := k.Length(line)

	samples := Segment(k, line, 30)
	require.Len(t, samples, 5)
	assert.Equal(t, length, samples[4].Distance)

	for i, s := range samples {
		if i < 4 {
			assert.Equal(t, float64(i)*30, s.Distance)
		}

		assert.InDelta(t, 90, s.Bearing, 1e-6)
		assert.InDelta(t, 0.001+s.Distance/metersPerDegree, s.Point[0], 1e-9)
	}

	samples = Segment(k, line, 150)
	require.Len(t, samples, 2)
	assert.InDelta(t, line[0][0], samples[0].Point[0], 1e-12)
	assert.InDelta(t, line[1][0], samples[1].Point[0], 1e-9)

	samples = Segment(k, line, length/4)
	assert.Len(t, samples, 5)
}

func TestSegmentDegenerate(t *testing.T) {
	k := geodesy.Default
	line := orb.LineString{{0, 0}, {0.001, 0}}

	assert.Nil(t, Segment(k, nil, 10))
	assert.Nil(t, Segment(k, line, 0))
	assert.Nil(t, Segment(k, line, -5))
	assert.Nil(t, Segment(k, line, math.Inf(1)))

	assert.Nil(t, Segment(k, orb.LineString{{0, 0}, {math.NaN(), 0}}, 20))
	assert.Nil(t, Segment(k, orb.LineString{{0, 0}, {math.Inf(1), 0}}, 20))
}

func TestSampleAtEnd(t *testing.T) {
	k := geodesy.Default
	line := orb.LineString{{0, 0}, {0, 50 / metersPerDegree}}
	length := k.Length(line)

	s := sampleAt(k, line, length, length)
	assert.InDelta(t, 0, s.Bearing, 1e-6)
	assert.InDelta(t, line[1][1], s.Point[1], 1e-12)
}
