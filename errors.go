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
	"errors"
)

var (
	// ErrInvalidPolygon is returned for input that is not a usable polygon.
	ErrInvalidPolygon = errors.New("invalid street polygon")

	// ErrInvalidOptions is returned when an option is out of range.
	ErrInvalidOptions = errors.New("invalid addressing options")

	// ErrGeneration wraps every failure of a generation run.  No partial
	// result accompanies it.
	ErrGeneration = errors.New("could not generate addressing")

	errDegenerateRing = errors.New("ring has no two distinct vertices")
	errShortSide      = errors.New("ring side has fewer than two vertices")
)
