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

package cli

import (
	"io"
	"os"

	"m4o.io/streetaddr/internal/codec"
)

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// fileWriter flushes the compressor before closing the file.
type fileWriter struct {
	io.WriteCloser
	f *os.File
}

func (w fileWriter) Close() error {
	if err := w.WriteCloser.Close(); err != nil {
		_ = w.f.Close()

		return err
	}

	return w.f.Close()
}

// CreateOutput creates the named file, compressed with c, or returns stdout
// for "" and "-".  Stdout is never compressed nor closed.
func CreateOutput(name string, c codec.Compression) (io.WriteCloser, error) {
	if name == "" || name == "-" {
		return nopCloser{os.Stdout}, nil
	}

	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}

	w, err := codec.NewWriter(f, c)
	if err != nil {
		_ = f.Close()

		return nil, err
	}

	return fileWriter{WriteCloser: w, f: f}, nil
}
