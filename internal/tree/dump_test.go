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

package tree

import (
	"bytes"
	"testing"

	"github.com/texlang/texlang/internal/token"
)

func sampleTree() *Node {
	return &Node{
		Kind: Root,
		Children: []*Node{
			NewLeaf(token.Token{Kind: token.Word, Text: "a"}),
			{
				Kind: Command,
				Name: `\foo`,
				Children: []*Node{
					NewLeaf(token.Token{Kind: token.CommandName, Text: `\foo`}),
					{Kind: Args, Children: []*Node{
						NewLeaf(token.Token{Kind: token.Word, Text: "x"}),
					}},
				},
			},
		},
	}
}

func TestDumpTreeIndentsNestedChildren(t *testing.T) {
	var buf bytes.Buffer
	if err := DumpTree(&buf, sampleTree()); err != nil {
		t.Fatalf("DumpTree: %v", err)
	}
	want := "Root\n" +
		"  Leaf(Word \"a\")\n" +
		"  Command(\\foo)\n" +
		"    Leaf(CommandName \"\\\\foo\")\n" +
		"    Args\n" +
		"      Leaf(Word \"x\")\n"
	if got := buf.String(); got != want {
		t.Errorf("DumpTree output =\n%s\nwant:\n%s", got, want)
	}
}

func TestMarshalDebugProducesCompactSingleLine(t *testing.T) {
	got, err := sampleTree().MarshalDebug()
	if err != nil {
		t.Fatalf("MarshalDebug: %v", err)
	}
	want := "Root[Leaf(Word \"a\"), Command(\\foo)[Leaf(CommandName \"\\\\foo\"), Args[Leaf(Word \"x\")]]]"
	if string(got) != want {
		t.Errorf("MarshalDebug = %q, want %q", got, want)
	}
}

func TestDumpTreeOnNilNode(t *testing.T) {
	var buf bytes.Buffer
	if err := DumpTree(&buf, nil); err != nil {
		t.Fatalf("DumpTree(nil): %v", err)
	}
	if got, want := buf.String(), "nil\n"; got != want {
		t.Errorf("DumpTree(nil) = %q, want %q", got, want)
	}
}
