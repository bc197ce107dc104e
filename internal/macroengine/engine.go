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
	"fmt"

	"github.com/texlang/texlang/internal/lexer"
	"github.com/texlang/texlang/internal/token"
)

// defaultMaxDepth is the recursive-expansion budget spec.md §7 calls for
// ("recursive macro expansion exceeding a configurable depth"); SPEC_FULL.md
// §4.3 and DESIGN.md record the default of 64.
const defaultMaxDepth = 64

// ErrRecursiveExpansion is returned when a macro invokes itself, directly or
// through another macro, more than the engine's depth budget allows while
// its own body is still substituting.
type ErrRecursiveExpansion struct {
	Name  string
	Depth int
}

func (e *ErrRecursiveExpansion) Error() string {
	return fmt.Sprintf("macroengine: %q recursed past depth %d", e.Name, e.Depth)
}

// Option configures an Engine at construction, matching the functional-
// options idiom used throughout this module (see cmakelib/lexer/rules.Option).
type Option func(*Engine)

// WithMaxDepth overrides the recursive-expansion depth budget.
func WithMaxDepth(n int) Option {
	return func(e *Engine) { e.maxDepth = n }
}

// Engine is the macro-expansion Bumper described by spec.md §4.3. It wraps
// the raw lexer: on each refill it pulls tokens from the stream context's
// inner cache, recognizes \def-style definitions and installs them, and
// recognizes invocations of already-bound macros, substituting and
// recursively expanding their bodies before forwarding the result to the
// outer cache.
type Engine struct {
	root     *scope
	cur      *scope
	maxDepth int
	active   map[string]int // name -> number of frames currently mid-substitution
}

// New returns a macro engine with no bindings, ready to be used as a
// lexer.Bumper.
func New(opts ...Option) *Engine {
	root := newScope()
	e := &Engine{root: root, cur: root, maxDepth: defaultMaxDepth, active: make(map[string]int)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PushScope opens a new binding scope nested under the current one, for the
// parser to call on group entry (spec.md §3: a Macro is "visible from that
// point to end of enclosing scope").
func (e *Engine) PushScope() { e.cur = e.cur.push() }

// PopScope closes the most recently opened scope. Popping the root scope is
// a no-op.
func (e *Engine) PopScope() {
	if e.cur.parent != nil {
		e.cur = e.cur.parent
	}
}

// GetMacro implements the Bumper capability spec.md §4.5 calls
// get_macro(name): it lets the parser peek at a binding without consuming
// any input.
func (e *Engine) GetMacro(name string) (*Macro, bool) { return e.cur.lookup(name) }

// Bump implements lexer.Bumper: it drains the inner cache, expanding macro
// invocations and installing \def bindings, until it has forwarded at least
// one token to the outer cache or input is exhausted.
func (e *Engine) Bump(ctx *lexer.StreamContext) error {
	for forwarded := 0; forwarded < lexerPageBudget; {
		tok, ok := ctx.PopInner()
		if !ok {
			more, err := ctx.FillInner()
			if err != nil {
				return err
			}
			if !more {
				return nil
			}
			continue
		}

		if tok.Kind == token.CommandName && commandNameText(tok) == "def" {
			if err := e.readDefinition(ctx); err != nil {
				return err
			}
			continue
		}

		if tok.Kind == token.CommandName {
			if m, ok := e.cur.lookup(commandNameText(tok)); ok {
				expanded, err := e.expand(ctxSource{ctx}, m)
				if err != nil {
					return err
				}
				ctx.AppendOuter(expanded)
				continue
			}
		}

		ctx.PushOuter(tok)
		forwarded++
	}
	return nil
}

// lexerPageBudget bounds how many genuine (non-definition, non-expanded-
// away) tokens a single Bump call forwards. It is 1, unlike IdentityBumper's
// pageSize, so that a \def is installed, and a macro name looked up, only
// when the parser reaches it, in the binding scope the parser has open at
// that point (see PushScope/PopScope) rather than in whatever scope was
// current when a page was read ahead.
const lexerPageBudget = 1

// commandNameText returns a CommandName token's name without its leading
// backslash.
func commandNameText(tok token.Token) string {
	if len(tok.Text) > 0 && tok.Text[0] == '\\' {
		return tok.Text[1:]
	}
	return tok.Text
}

// readDefinition recognizes a \def\name#1#2{body} form from ctx's inner
// stream and installs the resulting Macro in the current scope. The \def
// token itself has already been consumed by the caller.
func (e *Engine) readDefinition(ctx *lexer.StreamContext) error {
	src := ctxSource{ctx}

	nameTok, ok, err := src.next()
	if err != nil {
		return err
	}
	if !ok || nameTok.Kind != token.CommandName {
		return fmt.Errorf("macroengine: \\def not followed by a command name")
	}
	name := commandNameText(nameTok)

	arity := 0
	for {
		tok, ok, err := src.peek()
		if err != nil {
			return err
		}
		if !ok || tok.Kind != token.MacroArg {
			break
		}
		src.next()
		arity++
		if arity > 9 {
			return fmt.Errorf("macroengine: \\%s declares more than 9 parameters", name)
		}
	}

	bodyTok, ok, err := src.next()
	if err != nil {
		return err
	}
	if !ok || bodyTok.Kind != token.LeftCurly {
		return fmt.Errorf("macroengine: \\def \\%s missing a {body} group", name)
	}
	body, err := readBalancedBody(src)
	if err != nil {
		return err
	}

	e.cur.define(name, &Macro{Name: name, Arity: arity, Body: body})
	return nil
}

// expand reads m's arguments from src, substitutes them into m's body, and
// recursively expands any macro invocations that appear within the
// substituted result — guarded by the engine's depth budget (Open
// Question 3: self-redefinition is fine; self re-invocation mid-
// substitution is not, past maxDepth).
func (e *Engine) expand(src tokenSource, m *Macro) ([]token.Token, error) {
	depth := e.active[m.Name]
	if depth >= e.maxDepth {
		return nil, &ErrRecursiveExpansion{Name: m.Name, Depth: depth}
	}

	args, err := readArgs(src, m.Arity)
	if err != nil {
		return nil, err
	}
	body := m.substitute(args)

	e.active[m.Name]++
	defer func() {
		e.active[m.Name]--
		if e.active[m.Name] == 0 {
			delete(e.active, m.Name)
		}
	}()

	return e.expandBody(body)
}

// expandBody re-scans a substituted macro body for further invocations of
// bound macros, expanding them eagerly (rather than waiting for the outer
// bumper to see them again), since nested calls in a \def body must be able
// to read their own literal arguments out of that same body.
func (e *Engine) expandBody(body []token.Token) ([]token.Token, error) {
	src := &sliceSource{toks: body}
	var out []token.Token
	for {
		tok, ok, err := src.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		if tok.Kind == token.CommandName {
			if m, ok := e.cur.lookup(commandNameText(tok)); ok {
				expanded, err := e.expand(src, m)
				if err != nil {
					return nil, err
				}
				out = append(out, expanded...)
				continue
			}
		}
		out = append(out, tok)
	}
}
