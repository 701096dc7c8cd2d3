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

package model

import (
	"fmt"

	"github.com/paulmach/orb"
)

const (
	MaxLat Degrees = 90.0
	MaxLon Degrees = 180.0
	MinLat Degrees = -90.0
	MinLon Degrees = -180.0
)

// BoundingBox is simply a bounding box.
type BoundingBox struct {
	Top    Degrees `json:"top"`
	Left   Degrees `json:"left"`
	Bottom Degrees `json:"bottom"`
	Right  Degrees `json:"right"`
}

// InitialBoundingBox creates a BoundingBox that is meant to be expanded.
func InitialBoundingBox() *BoundingBox {
	return &BoundingBox{
		Top:    MinLat,
		Left:   MaxLon,
		Bottom: MaxLat,
		Right:  MinLon,
	}
}

// IsEmpty reports whether nothing has been added to an initial bounding box.
func (b *BoundingBox) IsEmpty() bool {
	return b.Left > b.Right || b.Bottom > b.Top
}

// ExpandWithPoint grows the box to include p.
func (b *BoundingBox) ExpandWithPoint(p orb.Point) {
	lon, lat := Lon(p), Lat(p)

	if b.Top < lat {
		b.Top = lat
	}

	if b.Bottom > lat {
		b.Bottom = lat
	}

	if b.Left > lon {
		b.Left = lon
	}

	if b.Right < lon {
		b.Right = lon
	}
}

// ExpandWithPoints grows the box to include every point.
func (b *BoundingBox) ExpandWithPoints(points ...orb.Point) {
	for _, p := range points {
		b.ExpandWithPoint(p)
	}
}

// Bound converts the box into an orb.Bound.
func (b *BoundingBox) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{float64(b.Left), float64(b.Bottom)},
		Max: orb.Point{float64(b.Right), float64(b.Top)},
	}
}

func (b *BoundingBox) String() string {
	return fmt.Sprintf("[%s, %s, %s, %s]",
		ftoa(float64(b.Left)), ftoa(float64(b.Bottom)),
		ftoa(float64(b.Right)), ftoa(float64(b.Top)))
}
