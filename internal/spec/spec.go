/*
 * Copyright 2019 The Kythe Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package spec implements the CommandSpec data model: an ordered set of
// command descriptors driving the lexer's star-suffix handling, argument
// arity, and parser associativity.
package spec

import "fmt"

// Associativity names one of the five parser roles a command can have.
// See spec.md §4.4.
type Associativity int

const (
	// AssocPrefix consumes its declared argument slots in order. This is
	// the default role for a command with no special shape.
	AssocPrefix Associativity = iota
	// AssocRightGreedy consumes a single argument spanning everything up
	// to the end of the enclosing scope (e.g. \displaystyle).
	AssocRightGreedy
	// AssocInfix reshapes its enclosing scope into (left, op, right)
	// (e.g. \over).
	AssocInfix
	// AssocLeft1 rebinds the immediately preceding tree node as its
	// argument (e.g. \limits, _, ^, ').
	AssocLeft1
	// AssocMatrix is parsed exactly like AssocPrefix, from its declared
	// argument slots; the parser does not give it an environment body as
	// its argument.
	AssocMatrix
)

func (a Associativity) String() string {
	switch a {
	case AssocRightGreedy:
		return "right-greedy"
	case AssocInfix:
		return "infix"
	case AssocLeft1:
		return "left1"
	case AssocMatrix:
		return "matrix"
	default:
		return "prefix"
	}
}

// SlotKind names the shape of a single declared argument slot.
type SlotKind int

const (
	SlotGroup SlotKind = iota
	SlotWordOrGroup
	SlotCommandName
	SlotSmallInteger
)

func (k SlotKind) String() string {
	switch k {
	case SlotWordOrGroup:
		return "word-or-group"
	case SlotCommandName:
		return "command-name"
	case SlotSmallInteger:
		return "small-integer"
	default:
		return "group"
	}
}

// ArgSlot describes one argument slot of a command descriptor.
type ArgSlot struct {
	Kind     SlotKind
	Optional bool
}

// Descriptor is the spec entry for a single command name: its argument
// shape and its parser role.
type Descriptor struct {
	Name   string
	Slots  []ArgSlot
	Assoc  Associativity
	EnvSep bool // true for environments that enable & and \\ as separators
}

// Arity returns the number of declared argument slots.
func (d Descriptor) Arity() int {
	return len(d.Slots)
}

// CommandSpec is a queryable, ordered mapping from command name to
// Descriptor, plus optional star-form entries queried as "name*".
//
// CommandSpec is built either by aggregating per-package files (see
// internal/specgen) or by decoding a previously-built form (see json.go and
// binary.go in this package). Both construction paths produce identical
// lookup semantics.
type CommandSpec struct {
	order   []string
	entries map[string]Descriptor
}

// New returns an empty CommandSpec.
func New() *CommandSpec {
	return &CommandSpec{entries: make(map[string]Descriptor)}
}

// Define adds or replaces the descriptor for name. It never reports a
// conflict: a later Define of the same name silently replaces the earlier
// descriptor. Conflicting descriptors across aggregated fragments are
// rejected by Merge instead (spec.md §3's "exactly one descriptor"
// invariant).
func (s *CommandSpec) Define(name string, d Descriptor) {
	if _, ok := s.entries[name]; !ok {
		s.order = append(s.order, name)
	}
	d.Name = name
	s.entries[name] = d
}

// Get returns the descriptor bound to name, if any.
func (s *CommandSpec) Get(name string) (Descriptor, bool) {
	d, ok := s.entries[name]
	return d, ok
}

// Contains reports whether name has a descriptor. Used by the lexer to
// decide whether a trailing '*' belongs to a command name.
func (s *CommandSpec) Contains(name string) bool {
	_, ok := s.entries[name]
	return ok
}

// Names returns the command names in declaration order.
func (s *CommandSpec) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of distinct command names in the spec.
func (s *CommandSpec) Len() int {
	return len(s.entries)
}

// Merge adds every descriptor from other into s, in other's declaration
// order. A name already present in s keeps its existing descriptor and
// reports a conflict via the returned error rather than silently
// overwriting it — this is the aggregation-time enforcement of the "exactly
// one descriptor" invariant from spec.md §3.
func (s *CommandSpec) Merge(other *CommandSpec) error {
	for _, name := range other.order {
		d := other.entries[name]
		if existing, ok := s.entries[name]; ok && !equalDescriptor(existing, d) {
			return fmt.Errorf("spec: conflicting descriptors for %q: %+v vs %+v", name, existing, d)
		}
		s.Define(name, d)
	}
	return nil
}

// equalDescriptor reports whether a and b describe the same command shape.
// Descriptor cannot use == directly because Slots is a slice.
func equalDescriptor(a, b Descriptor) bool {
	if a.Name != b.Name || a.Assoc != b.Assoc || a.EnvSep != b.EnvSep {
		return false
	}
	if len(a.Slots) != len(b.Slots) {
		return false
	}
	for i := range a.Slots {
		if a.Slots[i] != b.Slots[i] {
			return false
		}
	}
	return true
}
