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

package store

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"
)

// Memory is an in-process Store.
type Memory struct {
	mu      sync.RWMutex
	records map[string]Record
	now     func() time.Time
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-process store.
func NewMemory() *Memory {
	return &Memory{
		records: make(map[string]Record),
		now:     time.Now,
	}
}

func (m *Memory) Upsert(ctx context.Context, rec Record) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}

	if rec.StreetPolygonID == "" {
		return Record{}, ErrMissingID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec.UpdatedAt = m.now().UTC()
	m.records[rec.StreetPolygonID] = rec

	return rec, nil
}

func (m *Memory) Get(ctx context.Context, streetPolygonID string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[streetPolygonID]
	if !ok {
		return Record{}, ErrNotFound
	}

	return rec, nil
}

func (m *Memory) ListByArea(ctx context.Context, areaID string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Record

	for _, rec := range m.records {
		if rec.AreaID == areaID {
			out = append(out, rec)
		}
	}

	slices.SortFunc(out, func(a, b Record) int {
		return strings.Compare(a.StreetPolygonID, b.StreetPolygonID)
	})

	return out, nil
}

func (m *Memory) Delete(ctx context.Context, streetPolygonID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[streetPolygonID]; !ok {
		return ErrNotFound
	}

	delete(m.records, streetPolygonID)

	return nil
}

func (m *Memory) Close() error {
	return nil
}
