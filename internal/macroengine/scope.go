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

// Package macroengine implements the macro-expansion Bumper described by
// spec.md §4.3: it recognizes user-defined macros in the token stream and
// splices their expansions back in.
package macroengine

// scope is a parent-linked binding stack, adapted from
// cmakelib/bindings.varStack: push on group entry, pop on group exit,
// lookup walks to root. Unlike varStack (which stores CMake variables as
// strings, with the empty string doubling as a tombstone) this stores
// Macro values directly, since macro names are either bound or not — a
// macro engine has no CMake-style "set to empty string to unset" idiom.
type scope struct {
	parent *scope
	macros map[string]*Macro
}

// newScope returns a fresh root scope with no bindings.
func newScope() *scope {
	return &scope{macros: make(map[string]*Macro)}
}

// push returns a new child scope nested under s.
func (s *scope) push() *scope {
	return &scope{parent: s, macros: make(map[string]*Macro)}
}

// define binds name to m in the current scope, shadowing (or replacing, if
// this is the same scope) any binding from an enclosing scope.
func (s *scope) define(name string, m *Macro) {
	s.macros[name] = m
}

// lookup returns the nearest binding for name, walking from s to the root.
func (s *scope) lookup(name string) (*Macro, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if m, ok := cur.macros[name]; ok {
			return m, true
		}
	}
	return nil, false
}
