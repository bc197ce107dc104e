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

// Package specgen builds a spec.CommandSpec by aggregating per-package
// command descriptor files, the way tools/llvmbuildtobzl aggregates
// LLVMBuild.txt component files in the teacher repository.
package specgen

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"bitbucket.org/creachadair/stringset"
	"github.com/creachadair/ini"

	"github.com/texlang/texlang/internal/spec"
)

// recognizedKeys are the property names a package file's command sections
// may set. Unrecognized keys are a load error, mirroring the
// stringProps/listProps membership checks tools/llvmbuildtobzl.go performs
// before trusting a component property.
var recognizedKeys = stringset.New("slots", "assoc", "star", "envsep")

var assocByName = map[string]spec.Associativity{
	"prefix":       spec.AssocPrefix,
	"right-greedy": spec.AssocRightGreedy,
	"infix":        spec.AssocInfix,
	"left1":        spec.AssocLeft1,
	"matrix":       spec.AssocMatrix,
}

var slotKindByCode = map[byte]spec.SlotKind{
	'g': spec.SlotGroup,
	'w': spec.SlotWordOrGroup,
	'c': spec.SlotCommandName,
	'i': spec.SlotSmallInteger,
}

// LoadPackageFile reads one .ini-style package file (one section per
// command name) and returns the CommandSpec fragment it declares.
func LoadPackageFile(path string) (*spec.CommandSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParsePackageFile(path, f)
}

// ParsePackageFile is LoadPackageFile with the reader already open; name is
// used only for error messages.
func ParsePackageFile(name string, r io.Reader) (*spec.CommandSpec, error) {
	s := spec.New()

	var current string
	var slots []spec.ArgSlot
	var assoc spec.Associativity
	var star, envSep bool
	var seen bool

	flush := func() error {
		if !seen {
			return nil
		}
		s.Define(current, spec.Descriptor{Slots: slots, Assoc: assoc, EnvSep: envSep})
		if star {
			s.Define(current+"*", spec.Descriptor{Slots: slots, Assoc: assoc, EnvSep: envSep})
		}
		slots, assoc, star, envSep = nil, spec.AssocPrefix, false, false
		return nil
	}

	err := ini.Parse(r, ini.Handler{
		Section: func(_ ini.Location, name string) error {
			if err := flush(); err != nil {
				return err
			}
			current, seen = name, true
			return nil
		},
		KeyValue: func(loc ini.Location, key string, values []string) error {
			if !seen {
				return fmt.Errorf("%s:%d: key %q outside any command section", name, loc.Line, key)
			}
			if !recognizedKeys.Contains(key) {
				return fmt.Errorf("%s:%d: unrecognized property %q", name, loc.Line, key)
			}
			joined := strings.Join(values, " ")
			switch key {
			case "slots":
				parsed, err := parseSlots(joined)
				if err != nil {
					return fmt.Errorf("%s:%d: %w", name, loc.Line, err)
				}
				slots = parsed
			case "assoc":
				a, ok := assocByName[strings.TrimSpace(joined)]
				if !ok {
					return fmt.Errorf("%s:%d: unrecognized assoc %q", name, loc.Line, joined)
				}
				assoc = a
			case "star":
				b, err := strconv.ParseBool(strings.TrimSpace(joined))
				if err != nil {
					return fmt.Errorf("%s:%d: star: %w", name, loc.Line, err)
				}
				star = b
			case "envsep":
				b, err := strconv.ParseBool(strings.TrimSpace(joined))
				if err != nil {
					return fmt.Errorf("%s:%d: envsep: %w", name, loc.Line, err)
				}
				envSep = b
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return s, nil
}

// parseSlots parses a comma-separated slot list like "g, g?, i" into
// ArgSlots. A trailing '?' marks a slot optional.
func parseSlots(s string) ([]spec.ArgSlot, error) {
	var out []spec.ArgSlot
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		optional := strings.HasSuffix(part, "?")
		part = strings.TrimSuffix(part, "?")
		if len(part) != 1 {
			return nil, fmt.Errorf("invalid slot code %q", part)
		}
		kind, ok := slotKindByCode[part[0]]
		if !ok {
			return nil, fmt.Errorf("unrecognized slot code %q", part)
		}
		out = append(out, spec.ArgSlot{Kind: kind, Optional: optional})
	}
	return out, nil
}
