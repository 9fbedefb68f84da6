// Copyright 2025 walteh LLC
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

package rewrite

import (
	"gitlab.com/tozd/go/errors"
)

// EqMode selects the output form for abs(v) == n matches.
type EqMode string

const (
	EqAbs    EqMode = "abs"    // abs(v) == n
	EqSquare EqMode = "square" // v^2 == n^2
	EqSplit  EqMode = "split"  // v == -n or v == n
)

// LeMode selects the output form for abs(v) <= n matches.
type LeMode string

const (
	LeAbs    LeMode = "abs"    // abs(v) <= n
	LeSquare LeMode = "square" // v^2 <= n^2
	LeRange  LeMode = "range"  // -n <= v and v <= n
)

// Modes is the pair of independent output selections passed to Transform.
type Modes struct {
	Eq EqMode `json:"eq" yaml:"eq"`
	Le LeMode `json:"le" yaml:"le"`
}

// DefaultModes returns the identity pair (abs, abs).
func DefaultModes() Modes {
	return Modes{Eq: EqAbs, Le: LeAbs}
}

// AllEqModes lists the recognized equality modes in display order.
func AllEqModes() []EqMode {
	return []EqMode{EqAbs, EqSquare, EqSplit}
}

// AllLeModes lists the recognized inequality modes in display order.
func AllLeModes() []LeMode {
	return []LeMode{LeAbs, LeSquare, LeRange}
}

// Valid reports whether m is one of the recognized equality modes.
func (m EqMode) Valid() bool {
	switch m {
	case EqAbs, EqSquare, EqSplit:
		return true
	}
	return false
}

// Valid reports whether m is one of the recognized inequality modes.
func (m LeMode) Valid() bool {
	switch m {
	case LeAbs, LeSquare, LeRange:
		return true
	}
	return false
}

// Describe returns the output shape of the mode using v and n as placeholders.
func (m EqMode) Describe() string {
	switch m {
	case EqAbs:
		return "abs(v) == n"
	case EqSquare:
		return "v^2 == n^2"
	case EqSplit:
		return "v == -n or v == n"
	}
	return "unchanged"
}

// Describe returns the output shape of the mode using v and n as placeholders.
func (m LeMode) Describe() string {
	switch m {
	case LeAbs:
		return "abs(v) <= n"
	case LeSquare:
		return "v^2 <= n^2"
	case LeRange:
		return "-n <= v and v <= n"
	}
	return "unchanged"
}

// ParseEqMode converts s to an EqMode. An empty string yields the default.
func ParseEqMode(s string) (EqMode, error) {
	if s == "" {
		return EqAbs, nil
	}
	m := EqMode(s)
	if !m.Valid() {
		return "", errors.Errorf("unknown eq mode %q (want one of abs, square, split)", s)
	}
	return m, nil
}

// ParseLeMode converts s to a LeMode. An empty string yields the default.
func ParseLeMode(s string) (LeMode, error) {
	if s == "" {
		return LeAbs, nil
	}
	m := LeMode(s)
	if !m.Valid() {
		return "", errors.Errorf("unknown le mode %q (want one of abs, square, range)", s)
	}
	return m, nil
}

// Validate reports the first unrecognized mode in the pair.
//
// Transform itself never fails on unknown modes; callers that want strict
// input (config files, flags) validate up front.
func (m Modes) Validate() error {
	if !m.Eq.Valid() {
		return errors.Errorf("unknown eq mode %q", string(m.Eq))
	}
	if !m.Le.Valid() {
		return errors.Errorf("unknown le mode %q", string(m.Le))
	}
	return nil
}
