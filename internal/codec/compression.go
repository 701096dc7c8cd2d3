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

// Package codec reads and writes optionally compressed GeoJSON files.
package codec

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var ErrUnknownCompression = errors.New("unknown compression type")

// Compression is an enumeration of the supported file compressions.
type Compression int

const (
	// RAW is uncompressed.
	RAW Compression = iota

	// ZLIB is the zlib format.
	ZLIB

	// XZ is the xz container with LZMA2.
	XZ

	// LZ4 is the lz4 frame format.
	LZ4

	// ZSTD is Zstandard.
	ZSTD
)

var names = map[Compression]string{
	RAW:  "raw",
	ZLIB: "zlib",
	XZ:   "xz",
	LZ4:  "lz4",
	ZSTD: "zstd",
}

var extensions = map[string]Compression{
	".zlib": ZLIB,
	".zz":   ZLIB,
	".xz":   XZ,
	".lz4":  LZ4,
	".zst":  ZSTD,
	".zstd": ZSTD,
}

func (c Compression) String() string {
	if n, ok := names[c]; ok {
		return n
	}

	return fmt.Sprintf("Compression(%d)", int(c))
}

// Extension returns the file extension conventionally used for c.
func (c Compression) Extension() string {
	switch c {
	case ZLIB:
		return ".zlib"
	case XZ:
		return ".xz"
	case LZ4:
		return ".lz4"
	case ZSTD:
		return ".zst"
	default:
		return ""
	}
}

// Parse converts a compression name into a Compression.
func Parse(s string) (Compression, error) {
	for c, n := range names {
		if strings.EqualFold(n, s) {
			return c, nil
		}
	}

	return RAW, fmt.Errorf("%w: %q", ErrUnknownCompression, s)
}

// FromPath infers the compression from the file extension.  Unknown
// extensions are taken to be uncompressed.
func FromPath(path string) Compression {
	if c, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return c
	}

	return RAW
}
