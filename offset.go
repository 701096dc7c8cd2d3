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
	"github.com/paulmach/orb"

	"m4o.io/streetaddr/geodesy"
	"m4o.io/streetaddr/model"
)

// PerpendicularOffset returns the point meters away from p, square to the
// direction p→next, on the given side.
func PerpendicularOffset(k geodesy.Kernel, p, next orb.Point, meters float64, side model.Side) orb.Point {
	return k.Destination(p, meters, k.Bearing(p, next)+side.BearingOffset())
}
