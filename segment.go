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

	"github.com/paulmach/orb"

	"m4o.io/streetaddr/geodesy"
)

const (
	// tangentStep is the look-ahead, in meters, used to estimate the
	// direction of travel at a point on a line.
	tangentStep = 1.0

	// endTolerance is how close, in meters, the last full step may come to
	// the end of the line before the end is considered reached.
	endTolerance = 1e-6
)

// Sample is a point at a cumulative distance along a line.
type Sample struct {
	Distance float64
	Point    orb.Point
	Bearing  float64
}

// Segment walks the line at fixed steps, returning samples at 0, interval,
// 2*interval, … and a final sample at the end of the line.  The last
// stretch may be shorter than interval.
func Segment(k geodesy.Kernel, line orb.LineString, interval float64) []Sample {
	if len(line) == 0 || !positive(interval) {
		return nil
	}

	length := k.Length(line)
	if math.IsNaN(length) || math.IsInf(length, 0) {
		return nil
	}

	var samples []Sample

	for n := 0; ; n++ {
		d := float64(n) * interval
		if d > length {
			break
		}

		samples = append(samples, sampleAt(k, line, length, d))
	}

	if last := samples[len(samples)-1]; length-last.Distance > endTolerance {
		samples = append(samples, sampleAt(k, line, length, length))
	}

	return samples
}

// sampleAt locates the point at distance d and the bearing of the line
// there.  The bearing looks one step ahead, or one step behind when there
// is no room ahead.
func sampleAt(k geodesy.Kernel, line orb.LineString, length, d float64) Sample {
	p := k.Along(line, d)

	var bearing float64
	if d+tangentStep <= length {
		bearing = k.Bearing(p, k.Along(line, d+tangentStep))
	} else {
		bearing = k.Bearing(k.Along(line, d-tangentStep), p)
	}

	return Sample{Distance: d, Point: p, Bearing: bearing}
}
