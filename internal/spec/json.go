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

package spec

import (
	"encoding/json"
	"sort"
)

// jsonDocument is the authoring (structured JSON) form of a CommandSpec:
// { "commands": { name: descriptor, ... } }. Field layout is grounded on
// mitex_spec::JsonCommandSpec (original_source/crates/mitex-lexer and the
// mitex-cli spec-generation path), translated into plain json tags rather
// than a serde derive.
type jsonDocument struct {
	Commands map[string]jsonDescriptor `json:"commands"`
}

type jsonSlot struct {
	Kind     string `json:"kind"`
	Optional bool   `json:"optional,omitempty"`
}

type jsonDescriptor struct {
	Slots  []jsonSlot `json:"slots,omitempty"`
	Assoc  string     `json:"assoc,omitempty"`
	EnvSep bool       `json:"envSep,omitempty"`
	Star   bool       `json:"star,omitempty"`
}

var slotKindNames = map[SlotKind]string{
	SlotGroup:        "group",
	SlotWordOrGroup:  "word-or-group",
	SlotCommandName:  "command-name",
	SlotSmallInteger: "small-integer",
}

var slotKindValues = func() map[string]SlotKind {
	m := make(map[string]SlotKind, len(slotKindNames))
	for k, v := range slotKindNames {
		m[v] = k
	}
	return m
}()

var assocNames = map[Associativity]string{
	AssocPrefix:      "prefix",
	AssocRightGreedy: "right-greedy",
	AssocInfix:       "infix",
	AssocLeft1:       "left1",
	AssocMatrix:      "matrix",
}

var assocValues = func() map[string]Associativity {
	m := make(map[string]Associativity, len(assocNames))
	for k, v := range assocNames {
		m[v] = k
	}
	return m
}()

// MarshalJSON encodes s into its structured authoring form.
func (s *CommandSpec) MarshalJSON() ([]byte, error) {
	doc := jsonDocument{Commands: make(map[string]jsonDescriptor, s.Len())}
	for _, name := range s.order {
		d := s.entries[name]
		jd := jsonDescriptor{Assoc: assocNames[d.Assoc], EnvSep: d.EnvSep}
		for _, slot := range d.Slots {
			jd.Slots = append(jd.Slots, jsonSlot{Kind: slotKindNames[slot.Kind], Optional: slot.Optional})
		}
		if _, ok := s.entries[name+"*"]; ok {
			jd.Star = true
		}
		doc.Commands[name] = jd
	}
	return json.Marshal(doc)
}

// UnmarshalJSON decodes s from its structured authoring form, replacing any
// existing contents.
func (s *CommandSpec) UnmarshalJSON(data []byte) error {
	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	s.order = nil
	s.entries = make(map[string]Descriptor, len(doc.Commands))

	names := make([]string, 0, len(doc.Commands))
	for name := range doc.Commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		jd := doc.Commands[name]
		d := Descriptor{Assoc: assocValues[jd.Assoc], EnvSep: jd.EnvSep}
		for _, js := range jd.Slots {
			d.Slots = append(d.Slots, ArgSlot{Kind: slotKindValues[js.Kind], Optional: js.Optional})
		}
		s.Define(name, d)
		if jd.Star {
			s.Define(name+"*", d)
		}
	}
	return nil
}
