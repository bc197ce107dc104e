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

package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/texlang/texlang/internal/spec"
	"github.com/texlang/texlang/internal/token"
	"github.com/texlang/texlang/internal/tree"
)

// shapeEqual compares two Nodes on the fields that define tree *shape* —
// Kind, Name, Operator, Brace, and (for Leaf nodes only) the token's Kind
// and Text — ignoring position, which every parsed token carries but no
// expected literal in this file bothers reproducing. This plays the same
// role cmakelib/ast/ast_test.go's ignorePosition option does for participle
// positions, adapted to a recursive tree rather than a flat struct.
func shapeEqual(a, b *tree.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Name != b.Name || a.Operator != b.Operator || a.Brace != b.Brace {
		return false
	}
	if a.Kind == tree.Leaf && (a.Token.Kind != b.Token.Kind || a.Token.Text != b.Token.Text) {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !shapeEqual(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

func diffOpt() cmp.Option { return cmp.Comparer(shapeEqual) }

func leaf(kind token.Kind, text string) *tree.Node {
	return tree.NewLeaf(token.Token{Kind: kind, Text: text})
}

func word(text string) *tree.Node { return leaf(token.Word, text) }

func brace(kind token.Kind, text string) *tree.Node { return leaf(kind, text) }

func cmdLeaf(name string) *tree.Node { return leaf(token.CommandName, name) }

func testSpec() *spec.CommandSpec {
	s := spec.New()
	s.Define("foo", spec.Descriptor{
		Slots: []spec.ArgSlot{{Kind: spec.SlotGroup}},
		Assoc: spec.AssocPrefix,
	})
	s.Define("over", spec.Descriptor{Assoc: spec.AssocInfix})
	s.Define("limits", spec.Descriptor{Assoc: spec.AssocLeft1})
	s.Define("displaystyle", spec.Descriptor{Assoc: spec.AssocRightGreedy})
	return s
}

func mustParse(t *testing.T, src string, opts ...Option) *tree.Node {
	t.Helper()
	return Parse("test.tex", src, testSpec(), opts...)
}

func TestParseLiteralWord(t *testing.T) {
	got := mustParse(t, "hello")
	want := &tree.Node{Kind: tree.Root, Children: []*tree.Node{word("hello")}}
	if diff := cmp.Diff(want, got, diffOpt()); diff != "" {
		t.Errorf("Parse(%q) mismatch (-want +got):\n%s", "hello", diff)
	}
}

func TestParseGroup(t *testing.T) {
	got := mustParse(t, "{a}")
	want := &tree.Node{
		Kind: tree.Root,
		Children: []*tree.Node{
			{
				Kind:  tree.Group,
				Brace: token.Curly,
				Children: []*tree.Node{
					brace(token.LeftCurly, "{"),
					word("a"),
					brace(token.RightCurly, "}"),
				},
			},
		},
	}
	if diff := cmp.Diff(want, got, diffOpt()); diff != "" {
		t.Errorf("Parse(%q) mismatch (-want +got):\n%s", "{a}", diff)
	}
}

func TestParseCommandWithGroupArg(t *testing.T) {
	got := mustParse(t, `\foo{x}`)
	want := &tree.Node{
		Kind: tree.Root,
		Children: []*tree.Node{
			{
				Kind: tree.Command,
				Name: `\foo`,
				Children: []*tree.Node{
					cmdLeaf(`\foo`),
					{
						Kind: tree.Args,
						Children: []*tree.Node{
							{
								Kind:  tree.Group,
								Brace: token.Curly,
								Children: []*tree.Node{
									brace(token.LeftCurly, "{"),
									word("x"),
									brace(token.RightCurly, "}"),
								},
							},
						},
					},
				},
			},
		},
	}
	if diff := cmp.Diff(want, got, diffOpt()); diff != "" {
		t.Errorf("Parse(%q) mismatch (-want +got):\n%s", `\foo{x}`, diff)
	}
}

func TestParseAttach(t *testing.T) {
	got := mustParse(t, "a_b")
	want := &tree.Node{
		Kind: tree.Root,
		Children: []*tree.Node{
			{
				Kind:     tree.Attach,
				Operator: "_",
				Children: []*tree.Node{word("a"), leaf(token.Underscore, "_"), word("b")},
			},
		},
	}
	if diff := cmp.Diff(want, got, diffOpt()); diff != "" {
		t.Errorf("Parse(%q) mismatch (-want +got):\n%s", "a_b", diff)
	}
}

func TestParseAttachOnGroup(t *testing.T) {
	got := mustParse(t, "a^{bc}")
	want := &tree.Node{
		Kind: tree.Root,
		Children: []*tree.Node{
			{
				Kind:     tree.Attach,
				Operator: "^",
				Children: []*tree.Node{
					word("a"),
					leaf(token.Caret, "^"),
					{
						Kind:  tree.Group,
						Brace: token.Curly,
						Children: []*tree.Node{
							brace(token.LeftCurly, "{"),
							word("bc"),
							brace(token.RightCurly, "}"),
						},
					},
				},
			},
		},
	}
	if diff := cmp.Diff(want, got, diffOpt()); diff != "" {
		t.Errorf("Parse(%q) mismatch (-want +got):\n%s", "a^{bc}", diff)
	}
}

// TestParseInfixChain checks that a chain of \over commands associates to
// the right: a \over b \over c == a \over (b \over c), per SPEC_FULL.md's
// Open Question 1 decision.
func TestParseInfixChain(t *testing.T) {
	got := mustParse(t, `a\over b\over c`)
	innerInfix := &tree.Node{
		Kind: tree.Infix,
		Name: `\over`,
		Children: []*tree.Node{
			{Kind: tree.Args, Children: []*tree.Node{leaf(token.Whitespace, " "), word("b")}},
			cmdLeaf(`\over`),
			{Kind: tree.Args, Children: []*tree.Node{leaf(token.Whitespace, " "), word("c")}},
		},
	}
	want := &tree.Node{
		Kind: tree.Root,
		Children: []*tree.Node{
			{
				Kind: tree.Infix,
				Name: `\over`,
				Children: []*tree.Node{
					{Kind: tree.Args, Children: []*tree.Node{word("a")}},
					cmdLeaf(`\over`),
					{Kind: tree.Args, Children: []*tree.Node{innerInfix}},
				},
			},
		},
	}
	if diff := cmp.Diff(want, got, diffOpt()); diff != "" {
		t.Errorf("Parse(%q) mismatch (-want +got):\n%s", `a\over b\over c`, diff)
	}
}

func TestParseLeft1(t *testing.T) {
	got := mustParse(t, `a\limits`)
	want := &tree.Node{
		Kind: tree.Root,
		Children: []*tree.Node{
			{
				Kind: tree.Command,
				Name: `\limits`,
				Children: []*tree.Node{
					{Kind: tree.Args, Children: []*tree.Node{word("a")}},
					cmdLeaf(`\limits`),
				},
			},
		},
	}
	if diff := cmp.Diff(want, got, diffOpt()); diff != "" {
		t.Errorf("Parse(%q) mismatch (-want +got):\n%s", `a\limits`, diff)
	}
}

func TestParseRightGreedyConsumesRestOfScope(t *testing.T) {
	got := mustParse(t, `\displaystyle a b`)
	want := &tree.Node{
		Kind: tree.Root,
		Children: []*tree.Node{
			{
				Kind: tree.Command,
				Name: `\displaystyle`,
				Children: []*tree.Node{
					cmdLeaf(`\displaystyle`),
					{
						Kind: tree.Args,
						Children: []*tree.Node{
							leaf(token.Whitespace, " "),
							word("a"),
							leaf(token.Whitespace, " "),
							word("b"),
						},
					},
				},
			},
		},
	}
	if diff := cmp.Diff(want, got, diffOpt()); diff != "" {
		t.Errorf("Parse(%q) mismatch (-want +got):\n%s", `\displaystyle a b`, diff)
	}
}

func TestParseUnknownCommandLenientByDefault(t *testing.T) {
	got := mustParse(t, `\bogus`)
	want := &tree.Node{
		Kind: tree.Root,
		Children: []*tree.Node{
			{
				Kind: tree.Command,
				Name: `\bogus`,
				Children: []*tree.Node{
					cmdLeaf(`\bogus`),
					{Kind: tree.Args},
				},
			},
		},
	}
	if diff := cmp.Diff(want, got, diffOpt()); diff != "" {
		t.Errorf("Parse(%q) mismatch (-want +got):\n%s", `\bogus`, diff)
	}
}

func TestParseUnknownCommandStrict(t *testing.T) {
	got := mustParse(t, `\bogus`, WithStrictUnknownCommands())
	if len(got.Children) != 1 || got.Children[0].Kind != tree.Error {
		t.Fatalf("Parse(%q) with strict mode = %+v, want a single Error node", `\bogus`, got.Children)
	}
}

func TestParseEnvironment(t *testing.T) {
	got := mustParse(t, `\begin{foo}x\end{foo}`)
	if len(got.Children) != 1 || got.Children[0].Kind != tree.Environment {
		t.Fatalf("Parse(%q) = %+v, want a single Environment node", `\begin{foo}x\end{foo}`, got.Children)
	}
	env := got.Children[0]
	if env.Name != "foo" {
		t.Errorf("environment Name = %q, want %q", env.Name, "foo")
	}
	tree.Walk(env, func(n *tree.Node) {
		if n.Kind == tree.Error {
			t.Errorf("unexpected error node in well-formed environment: %+v", n)
		}
	})
}

func TestParseEnvironmentMismatchedEnd(t *testing.T) {
	got := mustParse(t, `\begin{foo}x\end{bar}`)
	env := got.Children[0]
	var sawMismatch bool
	tree.Walk(env, func(n *tree.Node) {
		if n.Kind == tree.Error {
			sawMismatch = true
		}
	})
	if !sawMismatch {
		t.Errorf("Parse(%q) did not report the mismatched \\end name", `\begin{foo}x\end{bar}`)
	}
}

func TestParseBlockComment(t *testing.T) {
	got := mustParse(t, `\iffalse junk \fi kept`)
	want := &tree.Node{
		Kind: tree.Root,
		Children: []*tree.Node{
			{
				Kind: tree.BlockComment,
				Children: []*tree.Node{
					cmdLeaf(`\iffalse`),
					leaf(token.Whitespace, " "),
					word("junk"),
					leaf(token.Whitespace, " "),
					cmdLeaf(`\fi`),
				},
			},
			leaf(token.Whitespace, " "),
			word("kept"),
		},
	}
	if diff := cmp.Diff(want, got, diffOpt()); diff != "" {
		t.Errorf("Parse(%q) mismatch (-want +got):\n%s", `\iffalse junk \fi kept`, diff)
	}
}

// TestLeafSpansReproduceSource exercises spec.md §8's testable property: the
// leaf spans of a parsed tree, concatenated in source order, reproduce the
// original input exactly.
func TestLeafSpansReproduceSource(t *testing.T) {
	const src = `\foo{a b} c_d \over e`
	root := mustParse(t, src)
	var out string
	for _, l := range tree.Leaves(root) {
		out += l.Token.Text
	}
	if out != src {
		t.Errorf("leaf spans concatenated = %q, want %q", out, src)
	}
}
