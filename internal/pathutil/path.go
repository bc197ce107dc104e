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

// Package pathutil implements the path manipulation routines specgen needs
// to discover per-package TeX command-spec files on disk: splitting a
// system path into segments and joining segments back together, the two
// operations WalkPath performs on every step down the directory tree.
package pathutil

import (
	"path/filepath"
	"strings"
)

// Path is a slice of string segments, representing a filesystem path.
type Path []string

// New cleans and splits the system-delimited filesystem path.
func New(s string) Path {
	s = filepath.ToSlash(filepath.Clean(s))
	switch {
	case len(s) == 0:
		return nil
	case s == "/":
		return Path{"/"}
	case s[0] == '/':
		return append(Path{"/"}, strings.Split(s[1:], "/")...)
	default:
		return strings.Split(s, "/")
	}
}

// ToPaths cleans and splits each of the system-delimited filesystem paths.
func ToPaths(paths []string) []Path {
	split := make([]Path, len(paths))
	for i, p := range paths {
		split[i] = New(p)
	}
	return split
}

// String returns the properly platform-delimited form of the path.
func (p Path) String() string {
	return filepath.Join([]string(p)...)
}

// Append appends additional elements to the end of path, disregarding the
// leading "/" segment of an absolute element.
func (p *Path) Append(elem ...Path) {
	for _, e := range elem {
		if len(e) > 0 && e[0] == "/" {
			e = e[1:]
		}
		*p = append(*p, e...)
	}
}

// Join joins path and any number of additional elements, returning the result.
func (p Path) Join(elem ...Path) Path {
	root := p[:]
	root.Append(elem...)
	return root
}
