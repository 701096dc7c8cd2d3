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

package codec

import (
	"compress/zlib"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz"
)

type nopCloserWriter struct {
	io.Writer
}

func (w nopCloserWriter) Close() error {
	return nil
}

// NewWriter wraps w so that everything written is compressed with c.  Close
// flushes the compressor; it does not close w.
func NewWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case RAW:
		return nopCloserWriter{w}, nil
	case ZLIB:
		return zlib.NewWriter(w), nil
	case XZ:
		xw, err := xz.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("could not create xz writer: %w", err)
		}

		return xw, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	case ZSTD:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("could not create zstd writer: %w", err)
		}

		return zw, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownCompression, c)
	}
}
