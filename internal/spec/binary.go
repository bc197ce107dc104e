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
	"bytes"
	"encoding/gob"
	"fmt"
)

// binaryEntry is the gob-friendly shape of one CommandSpec entry: gob
// cannot be told to walk an unexported map field directly, and we want the
// wire form to preserve declaration order without relying on map iteration.
type binaryEntry struct {
	Name string
	Desc Descriptor
}

// ToBytes encodes s into the compact runtime form. See DESIGN.md for why
// this is encoding/gob rather than a third-party compact codec: nothing in
// the retrieval pack imports one.
func (s *CommandSpec) ToBytes() ([]byte, error) {
	entries := make([]binaryEntry, 0, len(s.order))
	for _, name := range s.order {
		entries = append(entries, binaryEntry{Name: name, Desc: s.entries[name]})
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(entries); err != nil {
		return nil, fmt.Errorf("spec: encoding compact form: %w", err)
	}
	return buf.Bytes(), nil
}

// FromBytes decodes a CommandSpec previously produced by ToBytes, replacing
// any existing contents of s.
func (s *CommandSpec) FromBytes(data []byte) error {
	var entries []binaryEntry
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&entries); err != nil {
		return fmt.Errorf("spec: decoding compact form: %w", err)
	}
	s.order = nil
	s.entries = make(map[string]Descriptor, len(entries))
	for _, e := range entries {
		s.Define(e.Name, e.Desc)
	}
	return nil
}

// DecodeBinary is a convenience constructor mirroring New() for the compact
// form.
func DecodeBinary(data []byte) (*CommandSpec, error) {
	s := New()
	if err := s.FromBytes(data); err != nil {
		return nil, err
	}
	return s, nil
}

// DecodeJSON is a convenience constructor mirroring New() for the
// structured authoring form.
func DecodeJSON(data []byte) (*CommandSpec, error) {
	s := New()
	if err := s.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return s, nil
}
