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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sample() *CommandSpec {
	s := New()
	s.Define("displaystyle", Descriptor{Assoc: AssocRightGreedy})
	s.Define("over", Descriptor{Assoc: AssocInfix})
	s.Define("limits", Descriptor{Assoc: AssocLeft1})
	s.Define("frac", Descriptor{Assoc: AssocPrefix, Slots: []ArgSlot{
		{Kind: SlotGroup}, {Kind: SlotGroup},
	}})
	s.Define("sqrt", Descriptor{Assoc: AssocPrefix, Slots: []ArgSlot{
		{Kind: SlotGroup, Optional: true}, {Kind: SlotGroup},
	}})
	s.Define("sqrt*", Descriptor{Assoc: AssocPrefix, Slots: []ArgSlot{
		{Kind: SlotGroup},
	}})
	return s
}

func TestContainsAndGet(t *testing.T) {
	s := sample()
	if !s.Contains("frac") {
		t.Fatalf("expected frac to be defined")
	}
	d, ok := s.Get("frac")
	if !ok || d.Arity() != 2 {
		t.Fatalf("frac: got %+v, %v; want arity 2", d, ok)
	}
	if s.Contains("nope") {
		t.Fatalf("did not expect nope to be defined")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	s := sample()
	data, err := s.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	got, err := DecodeJSON(data)
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	for _, name := range sample().Names() {
		want, _ := s.Get(name)
		have, ok := got.Get(name)
		if !ok {
			t.Errorf("missing %q after round trip", name)
			continue
		}
		if diff := cmp.Diff(want, have); diff != "" {
			t.Errorf("%q mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	s := sample()
	data, err := s.ToBytes()
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}
	got, err := DecodeBinary(data)
	if err != nil {
		t.Fatalf("DecodeBinary: %v", err)
	}
	for _, name := range s.Names() {
		want, _ := s.Get(name)
		have, ok := got.Get(name)
		if !ok {
			t.Errorf("missing %q after round trip", name)
			continue
		}
		if diff := cmp.Diff(want, have); diff != "" {
			t.Errorf("%q mismatch (-want +got):\n%s", name, diff)
		}
	}
	if got.Len() != s.Len() {
		t.Errorf("Len mismatch: got %d want %d", got.Len(), s.Len())
	}
}

func TestMergeConflict(t *testing.T) {
	a := New()
	a.Define("over", Descriptor{Assoc: AssocInfix})
	b := New()
	b.Define("over", Descriptor{Assoc: AssocPrefix})
	if err := a.Merge(b); err == nil {
		t.Fatalf("expected a conflict error merging incompatible descriptors")
	}
}

func TestMergeCompatible(t *testing.T) {
	a := New()
	a.Define("over", Descriptor{Assoc: AssocInfix})
	b := New()
	b.Define("atop", Descriptor{Assoc: AssocInfix})
	if err := a.Merge(b); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if !a.Contains("atop") {
		t.Fatalf("expected atop to be merged in")
	}
}
