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

// tokenSource abstracts "the next token comes from here" over two different
// backings: the live inner cache of a lexer.StreamContext (for a macro
// invocation's own arguments), and a fixed slice (for re-scanning an
// already-substituted macro body for nested invocations). Both need the
// same argument- and balanced-group-reading logic, which is why it is
// written once against this interface rather than twice.
type tokenSource interface {
	next() (token.Token, bool, error)
	peek() (token.Token, bool, error)
}

// ctxSource reads from a StreamContext's inner cache, filling it from the
// raw lexer as needed.
type ctxSource struct {
	ctx *lexer.StreamContext
}

func (s ctxSource) next() (token.Token, bool, error) {
	for {
		if tok, ok := s.ctx.PopInner(); ok {
			return tok, true, nil
		}
		more, err := s.ctx.FillInner()
		if err != nil {
			return token.Token{}, false, err
		}
		if !more {
			return token.Token{}, false, nil
		}
	}
}

func (s ctxSource) peek() (token.Token, bool, error) {
	for {
		if tok, ok := s.ctx.PeekInner(); ok {
			return tok, true, nil
		}
		more, err := s.ctx.FillInner()
		if err != nil {
			return token.Token{}, false, err
		}
		if !more {
			return token.Token{}, false, nil
		}
	}
}

// sliceSource reads from a fixed, already-lexed token slice — used to
// re-scan a macro body for nested invocations once it has been substituted
// out of its defining Macro.
type sliceSource struct {
	toks []token.Token
	pos  int
}

func (s *sliceSource) next() (token.Token, bool, error) {
	if s.pos >= len(s.toks) {
		return token.Token{}, false, nil
	}
	tok := s.toks[s.pos]
	s.pos++
	return tok, true, nil
}

func (s *sliceSource) peek() (token.Token, bool, error) {
	if s.pos >= len(s.toks) {
		return token.Token{}, false, nil
	}
	return s.toks[s.pos], true, nil
}

// readArgs reads arity arguments from src: a curly-brace group reads as the
// tokens inside it (braces stripped), anything else reads as a single
// token, matching plain TeX argument-reading conventions. A missing
// argument at end of input reads as empty, rather than failing outright —
// the parser layer is responsible for surfacing a recoverable error node
// for genuinely malformed input.
func readArgs(src tokenSource, arity int) ([][]token.Token, error) {
	args := make([][]token.Token, arity)
	for i := 0; i < arity; i++ {
		tok, ok, err := src.peek()
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if tok.Kind == token.LeftCurly {
			if _, _, err := src.next(); err != nil {
				return nil, err
			}
			group, err := readBalancedBody(src)
			if err != nil {
				return nil, err
			}
			args[i] = group
			continue
		}
		tok, _, err = src.next()
		if err != nil {
			return nil, err
		}
		args[i] = []token.Token{tok}
	}
	return args, nil
}

// readBalancedBody reads tokens up to (but not including) the curly brace
// that matches one already-consumed LeftCurly, tracking nested groups.
func readBalancedBody(src tokenSource) ([]token.Token, error) {
	depth := 1
	var out []token.Token
	for {
		tok, ok, err := src.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("macroengine: unbalanced { } group at end of input")
		}
		switch tok.Kind {
		case token.LeftCurly:
			depth++
		case token.RightCurly:
			depth--
			if depth == 0 {
				return out, nil
			}
		}
		out = append(out, tok)
	}
}
