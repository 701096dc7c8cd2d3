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
	"os"

	"github.com/spf13/pflag"
)

// -- input path Value
type inputValue struct {
	value    *string
	typename string
}

// NewInputValue creates a cobra Value for an input path.  The path must name
// an existing regular file, or be "-" for stdin.
func NewInputValue(def string, p *string, typename string) pflag.Value {
	iv := &inputValue{
		value:    p,
		typename: typename,
	}
	*iv.value = def

	return iv
}

func (i *inputValue) Set(val string) error {
	if val != "-" {
		if _, err := os.Stat(val); err != nil {
			return err
		}
	}

	*i.value = val

	return nil
}

func (i *inputValue) Type() string {
	return i.typename
}

func (i *inputValue) String() string {
	return *i.value
}
