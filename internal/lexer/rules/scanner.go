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

package rules

import (
	"strings"
	"unicode/utf8"

	plex "github.com/alecthomas/participle/lexer"
)

// Scanner scans a source string directly (rather than an io.Reader, as the
// teacher's cmakelib/lexer/rules.Scanner does) so that matched text can be
// a genuine substring of the original input instead of a copy drawn from a
// bufio.Scanner's internal buffer — spec.md §5 requires borrowed token text.
type Scanner struct {
	rules *Rules
	src   string
	pos   int

	line, col int
	cond      StartCondition

	action Action
	text   string
}

// NewScanner returns a Scanner applying rules to src, starting at position 0.
func NewScanner(rules *Rules, src string) *Scanner {
	return &Scanner{rules: rules, src: src, line: 1, col: 1}
}

// Begin transitions the scanner to the given start condition.
func (s *Scanner) Begin(cond StartCondition) { s.cond = cond }

// Pos returns the position the scanner is currently at.
func (s *Scanner) Pos() plex.Position {
	return plex.Position{Offset: s.pos, Line: s.line, Column: s.col}
}

// Scan finds and applies the next rule, returning false only when no rule
// in the table matches (including no EOF rule) at the current position.
func (s *Scanner) Scan() bool {
	action, text := s.rules.Match(s.cond, s.src[s.pos:])
	if action == nil {
		return false
	}
	s.action = action
	s.text = text
	s.advance(text)
	return true
}

func (s *Scanner) advance(text string) {
	s.pos += len(text)
	if n := strings.Count(text, "\n"); n > 0 {
		s.line += n
		s.col = utf8.RuneCountInString(text[strings.LastIndexByte(text, '\n')+1:]) + 1
	} else {
		s.col += utf8.RuneCountInString(text)
	}
}

// Rest returns the input not yet consumed by the scanner.
func (s *Scanner) Rest() string { return s.src[s.pos:] }

// Advance consumes n additional bytes of input beyond the firing rule's own
// match, appending them to Text(). Actions that must inspect further input
// before deciding how much of it belongs to the token — command-name lexing
// chief among them — use this instead of a single regexp.
func (s *Scanner) Advance(n int) {
	extra := s.src[s.pos : s.pos+n]
	s.advance(extra)
	s.text += extra
}

// Action returns the most recently selected action.
func (s *Scanner) Action() Action { return s.action }

// Text returns the text matched by the selected action.
func (s *Scanner) Text() string { return s.text }

// AtEOF reports whether the scanner has consumed the whole source.
func (s *Scanner) AtEOF() bool { return s.pos >= len(s.src) }
