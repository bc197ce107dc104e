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

// Package lexer implements the streaming TeX lexer: a table-driven raw
// scanner (table.go), a command-name classification pass (classify.go), and
// a two-tier peek cache (this file) that a Bumper refills on demand — the
// extension point the macro engine plugs into.
package lexer

import (
	"fmt"

	"github.com/texlang/texlang/internal/lexer/rules"
	"github.com/texlang/texlang/internal/spec"
	"github.com/texlang/texlang/internal/token"
)

// pageSize bounds how many tokens a single refill pulls from the raw lexer,
// approximating spec.md §5's "≤ 4096 bytes of cache entries" by token count
// rather than by measuring text length (a word token easily exceeds 4 KiB
// on its own, but in practice pages are short bursts of punctuation and
// short words, so a flat token count tracks the intended page budget well
// enough without adding a running byte tally to every push).
const pageSize = 512

// tokenState adapts a *rules.Scanner plus the token currently under
// construction into a rules.ScanState, so table.go's actions can both read
// the scanner's matched text and write the classified-later token fields.
type tokenState struct {
	*rules.Scanner
	tok *token.Token
}

func (t *tokenState) Token() *token.Token { return t.tok }

// rawLexer drains fileTable over a source string, producing unclassified
// CommandName tokens (classification is a later pass; see classify.go).
type rawLexer struct {
	scanner  *rules.Scanner
	filename string
}

func newRawLexer(filename, src string) *rawLexer {
	return &rawLexer{scanner: rules.NewScanner(fileTable, src), filename: filename}
}

// next scans and returns the next raw token, or an error if no rule in the
// table applies (which should never happen: table.go's catch-all rules
// cover any remaining byte).
func (l *rawLexer) next() (token.Token, error) {
	pos := l.scanner.Pos()
	pos.Filename = l.filename
	if !l.scanner.Scan() {
		return token.Token{}, fmt.Errorf("lexer: no rule matches input at %s", pos)
	}
	tok := token.Token{Pos: pos}
	state := &tokenState{Scanner: l.scanner, tok: &tok}
	if _, err := l.scanner.Action()(state); err != nil {
		return token.Token{}, err
	}
	return tok, nil
}

// pageCache is the two-tier buffered lookahead spec.md §4.1 describes: a
// forward-order slice with a read cursor standing in for the original's
// reversed-stack-buffer trick (push-to-back, pop-from-back) — functionally
// equivalent for FIFO consumption and prepending, and easier to read in Go.
type pageCache struct {
	pending []token.Token
	pos     int
}

// pop removes and returns the token at the front of the cache, if any.
func (c *pageCache) pop() (token.Token, bool) {
	if c.pos >= len(c.pending) {
		return token.Token{}, false
	}
	tok := c.pending[c.pos]
	c.pos++
	if c.pos == len(c.pending) {
		c.pending, c.pos = nil, 0
	}
	return tok, true
}

// peek returns the token at the front of the cache without consuming it.
func (c *pageCache) peek() (token.Token, bool) {
	if c.pos >= len(c.pending) {
		return token.Token{}, false
	}
	return c.pending[c.pos], true
}

// extend pushes toks onto the front of the cache, ahead of whatever is
// already pending — the operation ConsumeUTF8Bytes uses to put the
// unconsumed remainder of a token back in front of the tokens that follow it.
func (c *pageCache) extend(toks []token.Token) {
	rest := c.pending[c.pos:]
	merged := make([]token.Token, 0, len(toks)+len(rest))
	merged = append(merged, toks...)
	merged = append(merged, rest...)
	c.pending, c.pos = merged, 0
}

// append adds toks to the back of the cache, the operation a refill uses
// when draining the raw lexer for a fresh page.
func (c *pageCache) append(toks ...token.Token) {
	c.pending = append(c.pending, toks...)
}

func (c *pageCache) empty() bool { return c.pos >= len(c.pending) }

// StreamContext is the shared state a Bumper reads from and writes to: an
// inner cache close to the raw lexer, and an outer cache the Lexer's public
// API reads from. Splitting the two lets a macro-engine bumper consume
// several inner/raw tokens (a macro invocation plus its arguments) while
// producing a different number of outer tokens (the substituted body).
type StreamContext struct {
	raw   *rawLexer
	spec  *spec.CommandSpec
	inner pageCache
	outer pageCache
}

// PopInner consumes and returns the next raw (already classified, star-
// merged) token that a Bumper has not yet forwarded to the outer cache.
func (ctx *StreamContext) PopInner() (token.Token, bool) { return ctx.inner.pop() }

// PeekInner returns the next raw token without consuming it.
func (ctx *StreamContext) PeekInner() (token.Token, bool) { return ctx.inner.peek() }

// FillInner pulls one further raw token (and its star-absorption lookahead)
// into the inner cache. Reports false at end of input.
func (ctx *StreamContext) FillInner() (bool, error) { return ctx.fillInner() }

// PushOuter appends tok to the back of the outer cache.
func (ctx *StreamContext) PushOuter(tok token.Token) { ctx.outer.append(tok) }

// ExtendOuter splices toks onto the front of the outer cache, ahead of
// whatever is already pending.
func (ctx *StreamContext) ExtendOuter(toks []token.Token) { ctx.outer.extend(toks) }

// AppendOuter appends toks to the back of the outer cache, preserving the
// order in which they were produced relative to tokens already forwarded
// earlier in the same Bump call — the operation macro expansion uses to
// splice a substituted body in at its place in the stream.
func (ctx *StreamContext) AppendOuter(toks []token.Token) { ctx.outer.append(toks...) }

// Spec returns the command specification driving this stream's lexing.
func (ctx *StreamContext) Spec() *spec.CommandSpec { return ctx.spec }

// fillInner pulls one more raw token into the inner cache, classifying it
// and merging a trailing "*" from the following Word token when the spec
// declares a starred variant. Returns false at end of input.
func (ctx *StreamContext) fillInner() (bool, error) {
	tok, err := ctx.raw.next()
	if err != nil {
		return false, err
	}
	if tok.Kind == token.EOF {
		return false, nil
	}
	classify(&tok)
	ctx.inner.append(tok)
	cmd := &ctx.inner.pending[len(ctx.inner.pending)-1]

	if cmd.Kind != token.CommandName {
		return true, nil
	}

	// Look one raw token further ahead to see whether it begins with the
	// "*" that would make this a starred command variant. The lookahead
	// token is kept (possibly with its leading "*" peeled off) rather than
	// discarded, whether or not absorption applies.
	next, err := ctx.raw.next()
	if err != nil {
		return false, err
	}
	if next.Kind == token.EOF {
		return true, nil
	}
	classify(&next)
	absorbStar(ctx.spec, cmd, &next)
	if next.Kind != token.Word || next.Text != "" {
		ctx.inner.append(next)
	}
	return true, nil
}

// Bumper is the polymorphism point spec.md §4.5 describes: the piece of
// machinery that refills the outer peek cache once the parser has drained
// it. IdentityBumper forwards raw tokens unchanged; the macro engine's
// bumper (internal/macroengine) additionally recognizes and expands macro
// invocations.
type Bumper interface {
	// Bump refills ctx.Outer by at least one token, or reports that input
	// is exhausted by leaving it empty.
	Bump(ctx *StreamContext) error
}

// IdentityBumper forwards raw lexer tokens to the outer cache unchanged,
// draining up to pageSize tokens per call.
type IdentityBumper struct{}

// Bump implements Bumper.
func (IdentityBumper) Bump(ctx *StreamContext) error {
	for i := 0; i < pageSize; i++ {
		if tok, ok := ctx.PopInner(); ok {
			ctx.PushOuter(tok)
			continue
		}
		more, err := ctx.FillInner()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
	return nil
}

// Lexer is the public streaming lexer: a StreamContext plus the Bumper
// that refills it, exposing the peek/eat operations the parser drives.
type Lexer struct {
	ctx    *StreamContext
	bumper Bumper
}

// New returns a Lexer over src, classifying command names against spec and
// refilling its cache with bumper. Pass IdentityBumper{} for a lexer with
// no macro expansion.
func New(filename, src string, cmdSpec *spec.CommandSpec, bumper Bumper) *Lexer {
	return &Lexer{
		ctx: &StreamContext{
			raw:  newRawLexer(filename, src),
			spec: cmdSpec,
		},
		bumper: bumper,
	}
}

// Context returns the Lexer's StreamContext, for a Bumper implementation
// (or the parser) that needs direct access to Inner/Outer.
func (l *Lexer) Context() *StreamContext { return l.ctx }

// ensure refills the outer cache if it is empty, per spec.md §4.1's "peek
// cache discipline": on each eat, the outer cache is popped; if empty, the
// bumper is invoked to refill it.
func (l *Lexer) ensure() error {
	if !l.ctx.outer.empty() {
		return nil
	}
	return l.bumper.Bump(l.ctx)
}

// Peek returns the next token without consuming it. At end of input it
// returns a token.EOF token.
func (l *Lexer) Peek() (token.Token, error) {
	if err := l.ensure(); err != nil {
		return token.Token{}, err
	}
	if tok, ok := l.ctx.outer.peek(); ok {
		return tok, nil
	}
	return token.Token{Kind: token.EOF}, nil
}

// PeekText is a convenience wrapper returning only the next token's text.
func (l *Lexer) PeekText() (string, error) {
	tok, err := l.Peek()
	return tok.Text, err
}

// PeekChar returns the first rune of the next token's text, for the
// attach-component single-character peel spec.md §4.4 describes.
func (l *Lexer) PeekChar() (rune, error) {
	tok, err := l.Peek()
	if err != nil {
		return 0, err
	}
	for _, c := range tok.Text {
		return c, nil
	}
	return 0, nil
}

// Eat consumes and returns the next token.
func (l *Lexer) Eat() (token.Token, error) {
	if err := l.ensure(); err != nil {
		return token.Token{}, err
	}
	if tok, ok := l.ctx.outer.pop(); ok {
		return tok, nil
	}
	return token.Token{Kind: token.EOF}, nil
}

// ConsumeUTF8Bytes peels n leading bytes off the current token's text,
// re-inserting the remainder as the new current token. Used when an
// attach-component operand must bind to a single character of a
// multi-character Word token (spec.md §4.4, "peels a single leading
// character using the lexer's utf8-byte consumption operation").
func (l *Lexer) ConsumeUTF8Bytes(n int) (string, error) {
	if err := l.ensure(); err != nil {
		return "", err
	}
	tok, ok := l.ctx.outer.pop()
	if !ok {
		return "", fmt.Errorf("lexer: ConsumeUTF8Bytes at end of input")
	}
	if n >= len(tok.Text) {
		return tok.Text, nil
	}
	head, rest := tok.Text[:n], tok.Text[n:]
	remainder := tok
	remainder.Text = rest
	remainder.Pos.Offset += n
	remainder.Pos.Column += n
	l.ctx.outer.extend([]token.Token{remainder})
	return head, nil
}

// ReadUntilBalanced reads and returns tokens, through Eat (so after macro
// expansion), up to (and including) the matching close of the given brace
// kind, tracking nesting of that same brace family. The parser uses it to
// read an environment's {name} group without interpreting it. Carried over
// from original_source's StreamContext::read_until_balanced.
func (l *Lexer) ReadUntilBalanced(brace token.BraceKind) ([]token.Token, error) {
	open, close := token.LeftKind(brace), token.RightKind(brace)
	depth := 1
	var out []token.Token
	for {
		tok, err := l.Eat()
		if err != nil {
			return out, err
		}
		if tok.Kind == token.EOF {
			return out, fmt.Errorf("lexer: unbalanced %s group at end of input", brace)
		}
		out = append(out, tok)
		switch tok.Kind {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return out, nil
			}
		}
	}
}
