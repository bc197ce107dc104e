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

package macroengine

import (
	"errors"
	"testing"

	"github.com/texlang/texlang/internal/lexer"
	"github.com/texlang/texlang/internal/spec"
	"github.com/texlang/texlang/internal/token"
)

// drainText lexes src through a fresh Engine and returns the Text of every
// non-EOF token the bumper ultimately forwards, in order.
func drainText(t *testing.T, src string, opts ...Option) ([]string, error) {
	t.Helper()
	e := New(opts...)
	lx := lexer.New("test.tex", src, spec.New(), e)
	var out []string
	for {
		tok, err := lx.Eat()
		if err != nil {
			return out, err
		}
		if tok.Kind == token.EOF {
			return out, nil
		}
		out = append(out, tok.Text)
	}
}

// TestSimpleMacroExpansion checks that a zero-argument \def binding is
// recognized and its body substituted in place of the invocation.
func TestSimpleMacroExpansion(t *testing.T) {
	got, err := drainText(t, `\def\foo{bar} \foo`)
	if err != nil {
		t.Fatalf("drainText error: %v", err)
	}
	want := []string{" ", "bar"}
	if !equalStrs(got, want) {
		t.Errorf("expansion = %v, want %v", got, want)
	}
}

// TestMacroArgumentSubstitution checks that #1 in a macro body is replaced
// by the literal argument the invocation supplies, and that a doubled
// reference substitutes the argument twice.
func TestMacroArgumentSubstitution(t *testing.T) {
	got, err := drainText(t, `\def\double#1{#1#1}\double{x}`)
	if err != nil {
		t.Fatalf("drainText error: %v", err)
	}
	want := []string{"x", "x"}
	if !equalStrs(got, want) {
		t.Errorf("expansion = %v, want %v", got, want)
	}
}

// TestMacroArgumentWithoutBraces checks that a single bare token (not a
// {group}) is accepted as a one-token argument, per plain TeX convention:
// the token immediately following the invocation, undelimited by braces,
// becomes the entire argument.
func TestMacroArgumentWithoutBraces(t *testing.T) {
	got, err := drainText(t, `\def\double#1{#1#1}\double,x`)
	if err != nil {
		t.Fatalf("drainText error: %v", err)
	}
	want := []string{",", ",", "x"}
	if !equalStrs(got, want) {
		t.Errorf("expansion = %v, want %v", got, want)
	}
}

// TestMacroInvocationInsideMacroBody checks that a macro defined before
// another macro's body is itself expanded when that body is substituted in,
// rather than being forwarded as a literal, unexpanded command name.
func TestMacroInvocationInsideMacroBody(t *testing.T) {
	got, err := drainText(t, `\def\inner{in}\def\outer{[\inner]}\outer`)
	if err != nil {
		t.Fatalf("drainText error: %v", err)
	}
	want := []string{"[", "in", "]"}
	if !equalStrs(got, want) {
		t.Errorf("expansion = %v, want %v", got, want)
	}
}

// TestSelfRedefinitionSucceeds checks Open Question 3's resolution: a macro
// that redefines itself (not via self-recursive expansion, but by \def
// appearing again later in the stream) changes what subsequent invocations
// expand to.
func TestSelfRedefinitionSucceeds(t *testing.T) {
	got, err := drainText(t, `\def\x{a}\x\def\x{b}\x`)
	if err != nil {
		t.Fatalf("drainText error: %v", err)
	}
	want := []string{"a", "b"}
	if !equalStrs(got, want) {
		t.Errorf("expansion = %v, want %v", got, want)
	}
}

// TestRecursiveExpansionHitsDepthBudget checks that a macro invoking itself
// from within its own body is rejected once it recurses past the engine's
// configured depth budget, rather than looping forever.
func TestRecursiveExpansionHitsDepthBudget(t *testing.T) {
	_, err := drainText(t, `\def\loop{\loop}\loop`, WithMaxDepth(3))
	if err == nil {
		t.Fatal("drainText with self-recursive macro: want an error, got nil")
	}
	var recErr *ErrRecursiveExpansion
	if !errors.As(err, &recErr) {
		t.Fatalf("error = %v (%T), want *ErrRecursiveExpansion", err, err)
	}
	if recErr.Name != "loop" {
		t.Errorf("ErrRecursiveExpansion.Name = %q, want %q", recErr.Name, "loop")
	}
	if recErr.Depth != 3 {
		t.Errorf("ErrRecursiveExpansion.Depth = %d, want 3", recErr.Depth)
	}
}

// TestMutualRecursionHitsDepthBudget checks the same budget applies across
// two macros that invoke each other, not just direct self-invocation.
func TestMutualRecursionHitsDepthBudget(t *testing.T) {
	_, err := drainText(t, `\def\a{\b}\def\b{\a}\a`, WithMaxDepth(2))
	if err == nil {
		t.Fatal("drainText with mutually recursive macros: want an error, got nil")
	}
	var recErr *ErrRecursiveExpansion
	if !errors.As(err, &recErr) {
		t.Fatalf("error = %v (%T), want *ErrRecursiveExpansion", err, err)
	}
}

// TestScopePushPopShadowsMacro checks PushScope/PopScope per spec.md §3:
// a binding made after PushScope is invisible once PopScope returns to the
// enclosing scope.
func TestScopePushPopShadowsMacro(t *testing.T) {
	e := New()
	e.cur.define("x", &Macro{Name: "x", Body: []token.Token{{Kind: token.Word, Text: "outer"}}})
	e.PushScope()
	e.cur.define("x", &Macro{Name: "x", Body: []token.Token{{Kind: token.Word, Text: "inner"}}})
	if m, ok := e.GetMacro("x"); !ok || m.Body[0].Text != "inner" {
		t.Fatalf("GetMacro(x) in inner scope = %+v, %v, want inner binding", m, ok)
	}
	e.PopScope()
	if m, ok := e.GetMacro("x"); !ok || m.Body[0].Text != "outer" {
		t.Fatalf("GetMacro(x) after PopScope = %+v, %v, want outer binding", m, ok)
	}
}

func equalStrs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
