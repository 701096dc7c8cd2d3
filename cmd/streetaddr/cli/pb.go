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
	"fmt"
	"io"
	"os"

	pb "gopkg.in/cheggaaa/pb.v1"

	"m4o.io/streetaddr/internal/codec"
)

const barWidth = 79

// progressBar is an instance of ReadCloser with an associated ProgressBar.
type progressBar struct {
	r   io.ReadCloser
	bar *pb.ProgressBar
}

// WrapInputFile returns a ReadCloser with a progress bar tracking the bytes
// read relative to the file size.  Stdin is not wrapped.
func WrapInputFile(f *os.File) (io.ReadCloser, error) {
	if f == os.Stdin {
		return os.Stdin, nil
	}

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	bar := pb.New64(fi.Size()).SetUnits(pb.U_BYTES_DEC).SetWidth(barWidth)
	bar.Output = os.Stderr
	bar.Start()

	return progressBar{
		r:   bar.NewProxyReader(f),
		bar: bar,
	}, nil
}

func (pb progressBar) Read(p []byte) (int, error) {
	return pb.r.Read(p)
}

// Close closes the wrapped ReadCloser and clears the progress output.
func (pb progressBar) Close() error {
	finish(pb.bar)

	return pb.r.Close()
}

// StreetBar counts generated streets on stderr.
type StreetBar struct {
	bar *pb.ProgressBar
}

// NewStreetBar starts a bar counting up to total streets.  A disabled bar
// accepts increments and prints nothing.
func NewStreetBar(total int, enabled bool) *StreetBar {
	if !enabled {
		return &StreetBar{}
	}

	bar := pb.New(total).Prefix("streets ").SetWidth(barWidth)
	bar.Output = os.Stderr
	bar.Start()

	return &StreetBar{bar: bar}
}

// Increment advances the bar by one street.
func (s *StreetBar) Increment() {
	if s.bar != nil {
		s.bar.Increment()
	}
}

// Finish stops the bar and clears its line.
func (s *StreetBar) Finish() {
	if s.bar != nil {
		finish(s.bar)
	}
}

func finish(bar *pb.ProgressBar) {
	// make sure newline is not printed by Finish()
	bar.Output = nil
	bar.NotPrint = true

	bar.Finish()

	fmt.Fprintf(os.Stderr, "\033[2K\r") // clear status bar
}

// multiCloser closes a decompressor before the file under it.
type multiCloser struct {
	io.Reader
	closers []io.Closer
}

func (m multiCloser) Close() error {
	var first error

	for _, c := range m.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}

// OpenInput opens the named file, or stdin for "" and "-", and decompresses
// it according to its extension.  With progress set, the bytes read from a
// file are tracked on stderr.
func OpenInput(name string, progress bool) (io.ReadCloser, error) {
	var f *os.File

	if name == "" || name == "-" {
		f = os.Stdin
	} else {
		var err error
		if f, err = os.Open(name); err != nil {
			return nil, err
		}
	}

	var raw io.ReadCloser = f

	if progress {
		wrapped, err := WrapInputFile(f)
		if err != nil {
			_ = f.Close()

			return nil, err
		}

		raw = wrapped
	}

	dec, err := codec.NewReader(raw, codec.FromPath(name))
	if err != nil {
		_ = raw.Close()

		return nil, err
	}

	return multiCloser{Reader: dec, closers: []io.Closer{dec, raw}}, nil
}
