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
	"context"
	"fmt"
	"runtime"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(ch <-chan Outcome) []Outcome {
	var out []Outcome
	for o := range ch {
		out = append(out, o)
	}

	return out
}

func TestGenerateAll(t *testing.T) {
	streets := []Street{
		{ID: "a", AreaID: "m1", Polygon: rectangle(200, 10)},
		{ID: "b", AreaID: "m1", Polygon: orb.Polygon{}},
		{ID: "c", AreaID: "m2", Polygon: rectangle(60, 8)},
		{ID: "d", AreaID: "m2", Polygon: rectangle(90, 12)},
	}

	g, err := NewGenerator(WithNCpus(3))
	require.NoError(t, err)

	outcomes := collect(g.GenerateAll(context.Background(), streets))
	require.Len(t, outcomes, len(streets))

	for i, o := range outcomes {
		assert.Equal(t, streets[i].ID, o.StreetID)
		assert.Equal(t, streets[i].AreaID, o.AreaID)
	}

	assert.ErrorIs(t, outcomes[1].Err, ErrInvalidPolygon)
	assert.Nil(t, outcomes[1].Result)

	for _, i := range []int{0, 2, 3} {
		require.NoError(t, outcomes[i].Err)

		want, err := g.Generate(streets[i].Polygon)
		require.NoError(t, err)
		assert.Equal(t, want, outcomes[i].Result)
	}

	s := Summarize(outcomes)
	assert.Equal(t, int64(4), s.Streets)
	assert.Equal(t, int64(1), s.Failed)

	var points, lines int64
	var length float64

	for _, i := range []int{0, 2, 3} {
		points += int64(len(outcomes[i].Result.AddressPoints))
		lines += int64(len(outcomes[i].Result.CrossLines))
		length += outcomes[i].Result.TotalLengthMeters
	}

	assert.Equal(t, points, s.AddressPoints)
	assert.Equal(t, lines, s.CrossLines)
	assert.InDelta(t, length, s.TotalLengthMeters, 1e-9)
}

func TestGenerateAllCanceled(t *testing.T) {
	streets := []Street{
		{ID: "a", Polygon: rectangle(200, 10)},
		{ID: "b", Polygon: rectangle(60, 8)},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g, err := NewGenerator()
	require.NoError(t, err)

	outcomes := collect(g.GenerateAll(ctx, streets))
	assert.LessOrEqual(t, len(outcomes), 2)

	for _, o := range outcomes {
		assert.ErrorIs(t, o.Err, context.Canceled)
	}

	assert.Equal(t, int64(len(outcomes)), Summarize(outcomes).Failed)
}

func TestGenerateAllAbandoned(t *testing.T) {
	streets := make([]Street, 64)
	for i := range streets {
		streets[i] = Street{ID: fmt.Sprintf("street-%d", i), Polygon: rectangle(120, 10)}
	}

	g, err := NewGenerator(WithNCpus(4))
	require.NoError(t, err)

	before := runtime.NumGoroutine()

	ctx, cancel := context.WithCancel(context.Background())
	outcomes := g.GenerateAll(ctx, streets)

	first := <-outcomes
	assert.Equal(t, "street-0", first.StreetID)

	// stop receiving without draining
	cancel()

	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, 2*time.Second, 10*time.Millisecond)
}

func TestGenerateAllEmpty(t *testing.T) {
	g, err := NewGenerator()
	require.NoError(t, err)

	assert.Empty(t, collect(g.GenerateAll(context.Background(), nil)))
	assert.Equal(t, Summary{}, Summarize(nil))
}
