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

package model_test

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"

	"m4o.io/streetaddr/model"
)

func TestInitialBoundingBox(t *testing.T) {
	initial := model.InitialBoundingBox()
	assert.Equal(t, initial.Top, model.MinLat)
	assert.Equal(t, initial.Bottom, model.MaxLat)
	assert.Equal(t, initial.Right, model.MinLon)
	assert.Equal(t, initial.Left, model.MaxLon)
	assert.True(t, initial.IsEmpty())
}

func TestBoundingBox_ExpandWithPoints(t *testing.T) {
	bbox := model.InitialBoundingBox()
	bbox.ExpandWithPoint(orb.Point{90, -45})

	assert.Equal(t, &model.BoundingBox{Top: -45, Left: 90, Bottom: -45, Right: 90}, bbox)
	assert.False(t, bbox.IsEmpty())

	bbox.ExpandWithPoints(orb.Point{-90, 45}, orb.Point{10, 10})
	assert.Equal(t, &model.BoundingBox{Top: 45, Left: -90, Bottom: -45, Right: 90}, bbox)
	assert.Equal(t, orb.Bound{Min: orb.Point{-90, -45}, Max: orb.Point{90, 45}}, bbox.Bound())
	assert.Equal(t, "[-90, -45, 90, 45]", bbox.String())
}
