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

package geodesy

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var metersPerDegree = orb.EarthRadius * math.Pi / 180

var kernels = map[string]Kernel{
	"spherical": Spherical{},
	"s2":        S2{},
}

func TestKernelDistance(t *testing.T) {
	for name, k := range kernels {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, 100, k.Distance(orb.Point{0, 0}, orb.Point{100 / metersPerDegree, 0}), 1e-6)
			assert.InDelta(t, 50, k.Distance(orb.Point{69.28, 41.31}, orb.Point{69.28, 41.31 + 50/metersPerDegree}), 1e-6)
			assert.Zero(t, k.Distance(orb.Point{1, 1}, orb.Point{1, 1}))
		})
	}
}

func TestKernelBearing(t *testing.T) {
	o := orb.Point{0, 0}

	for name, k := range kernels {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, 0, k.Bearing(o, orb.Point{0, 0.001}), 1e-9)
			assert.InDelta(t, 90, k.Bearing(o, orb.Point{0.001, 0}), 1e-9)
			assert.InDelta(t, 180, math.Abs(k.Bearing(o, orb.Point{0, -0.001})), 1e-9)
			assert.InDelta(t, -90, k.Bearing(o, orb.Point{-0.001, 0}), 1e-9)
		})
	}
}

func TestKernelDestination(t *testing.T) {
	p := orb.Point{69.2797, 41.3111}

	for name, k := range kernels {
		t.Run(name, func(t *testing.T) {
			for _, bearing := range []float64{0, 45, 90, 135, 180, -45, -90, -135} {
				d := k.Destination(p, 25, bearing)
				assert.InDelta(t, 25, k.Distance(p, d), 1e-6)
				assert.InDelta(t, 0, angleDiff(bearing, k.Bearing(p, d)), 1e-6)
			}
		})
	}
}

func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b+540, 360) - 180

	return d
}

func TestKernelMidpoint(t *testing.T) {
	a, b := orb.Point{69.2797, 41.3111}, orb.Point{69.2821, 41.3115}

	for name, k := range kernels {
		t.Run(name, func(t *testing.T) {
			m := k.Midpoint(a, b)
			assert.InDelta(t, k.Distance(a, m), k.Distance(m, b), 1e-6)
			assert.InDelta(t, k.Distance(a, b)/2, k.Distance(a, m), 1e-6)
		})
	}
}

func TestKernelAlongAndLength(t *testing.T) {
	d := 1 / metersPerDegree
	line := orb.LineString{{0, 0}, {100 * d, 0}, {100 * d, 50 * d}}

	for name, k := range kernels {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, 150, k.Length(line), 1e-6)

			p := k.Along(line, 40)
			assert.InDelta(t, 40*d, p[0], 1e-9)
			assert.InDelta(t, 0, p[1], 1e-9)

			p = k.Along(line, 120)
			assert.InDelta(t, 100*d, p[0], 1e-9)
			assert.InDelta(t, 20*d, p[1], 1e-9)

			assert.Equal(t, line[0], k.Along(line, -5))
			assert.Equal(t, line[2], k.Along(line, 500))
			assert.Equal(t, orb.Point{}, k.Along(nil, 5))
			assert.Zero(t, k.Length(orb.LineString{{1, 1}}))
		})
	}
}

func TestKernelIntersect(t *testing.T) {
	square := orb.LineString{{0, 0}, {0.001, 0}, {0.001, 0.001}, {0, 0.001}, {0, 0}}

	for name, k := range kernels {
		t.Run(name, func(t *testing.T) {
			hits := k.Intersect(orb.LineString{{-0.001, 0.0005}, {0.002, 0.0005}}, square)
			require.Len(t, hits, 2)

			xs := []float64{hits[0][0], hits[1][0]}
			assert.ElementsMatch(t, []float64{0, 0.001}, roundAll(xs))

			for _, h := range hits {
				assert.InDelta(t, 0.0005, h[1], 1e-9)
			}

			assert.Empty(t, k.Intersect(orb.LineString{{0.002, 0}, {0.003, 0.001}}, square))

			// crossing at a vertex is reported once
			corner := k.Intersect(orb.LineString{{0.001, -0.001}, {0.001, 0}}, square)
			require.Len(t, corner, 1)
			assert.InDelta(t, 0.001, corner[0][0], 1e-12)
			assert.InDelta(t, 0, corner[0][1], 1e-12)
		})
	}
}

func roundAll(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = math.Round(x*1e9) / 1e9
	}

	return out
}

func TestBoundary(t *testing.T) {
	ring := orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 0}}
	poly := orb.Polygon{ring, {{0.1, 0.1}, {0.2, 0.1}, {0.2, 0.2}, {0.1, 0.1}}}

	for name, k := range kernels {
		t.Run(name, func(t *testing.T) {
			b := k.Boundary(poly)
			assert.Equal(t, orb.LineString(ring), b)

			b[0] = orb.Point{9, 9}
			assert.Equal(t, orb.Point{0, 0}, ring[0], "boundary must be a copy")
		})
	}

	assert.Nil(t, Boundary(orb.Polygon{}))
}

func TestByName(t *testing.T) {
	k, err := ByName("S2")
	assert.NoError(t, err)
	assert.Equal(t, S2{}, k)

	k, err = ByName("")
	assert.NoError(t, err)
	assert.Equal(t, Spherical{}, k)

	_, err = ByName("flat")
	assert.ErrorIs(t, err, ErrUnknownKernel)
}

func TestCrossings(t *testing.T) {
	// an X at the origin
	hits := crossings(orb.LineString{{-0.001, -0.001}, {0.001, 0.001}}, orb.LineString{{-0.001, 0.001}, {0.001, -0.001}})
	require.Len(t, hits, 1)
	assert.InDelta(t, 0, hits[0][0], 1e-12)
	assert.InDelta(t, 0, hits[0][1], 1e-12)

	// parallel and apart
	assert.Empty(t, crossings(orb.LineString{{0, 0}, {0.001, 0.001}}, orb.LineString{{0, 0.001}, {0.001, 0.002}}))
	assert.Empty(t, crossings(orb.LineString{{0, 0}, {0.001, 0.001}}, orb.LineString{{0.003, 0}, {0.002, 0.001}}))
}

func TestDedupe(t *testing.T) {
	pts := []orb.Point{{1, 1}, {2, 2}, {1, 1}, {3, 3}, {2, 2}}
	assert.Equal(t, []orb.Point{{1, 1}, {2, 2}, {3, 3}}, dedupe(pts))
	assert.Nil(t, dedupe(nil))

	near := []orb.Point{{69.2797, 41.3111}, {69.2797 + 1e-13, 41.3111 - 1e-13}, {69.2798, 41.3111}}
	assert.Equal(t, []orb.Point{near[0], near[2]}, dedupe(near))
}
