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

package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/texlang/texlang/internal/lexer/rules"
	"github.com/texlang/texlang/internal/token"
)

// wordPattern matches a maximal run of characters with no more specific
// lexical meaning. The excluded set mirrors original_source's mitex-lexer
// Word regex exactly.
const wordPattern = `[^\s\\%{},\$\[\]()~/_'";&^#]+`

// fileTable is the ordered rule table driving the raw TeX scan. Order
// encodes the priority list from spec.md §4.1: NewLine before CommandName
// before LineBreak before Whitespace before punctuation before Word.
var fileTable = rules.New(
	rules.In().Match(`\\\\`, lexNewLine),
	rules.In().Match(`\\`, lexCommandName),
	rules.In().Match(`[\r\n]+`, setKind(token.LineBreak)),
	rules.In().Match(`[^\S\r\n]+`, setKind(token.Whitespace)),
	rules.In().Match(`%[^\r\n]*`, setKind(token.LineComment)),
	rules.In().Match(`\{`, setBrace(token.LeftCurly, token.Curly)),
	rules.In().Match(`\[`, setBrace(token.LeftBracket, token.Bracket)),
	rules.In().Match(`\(`, setBrace(token.LeftParen, token.Paren)),
	rules.In().Match(`\}`, setBrace(token.RightCurly, token.Curly)),
	rules.In().Match(`\]`, setBrace(token.RightBracket, token.Bracket)),
	rules.In().Match(`\)`, setBrace(token.RightParen, token.Paren)),
	rules.In().Match(`,`, setKind(token.Comma)),
	rules.In().Match(`~`, setKind(token.Tilde)),
	rules.In().Match(`/`, setKind(token.Slash)),
	rules.In().Match(`&`, setKind(token.Ampersand)),
	rules.In().Match(`\^`, setKind(token.Caret)),
	rules.In().Match(`'`, setKind(token.Apostrophe)),
	rules.In().Match(`"`, setKind(token.Ditto)),
	rules.In().Match(`;`, setKind(token.Semicolon)),
	rules.In().Match(`#[0-9]`, lexMacroArg),
	rules.In().Match(`#`, setKind(token.Hash)),
	rules.In().Match(`_`, setKind(token.Underscore)),
	rules.In().Match(`\$\$?`, setKind(token.Dollar)),
	rules.In().Match(wordPattern, setKind(token.Word)),
	rules.In().Match(`(?s).`, setKind(token.Error)),
	rules.In().Match(rules.EOFPattern, lexEOF),
)

// setKind returns an action that simply tags the matched text with kind.
func setKind(kind token.Kind) rules.Action {
	return func(d rules.ScanState) (bool, error) {
		tok := d.Token()
		tok.Kind = kind
		tok.Text = d.Text()
		return true, nil
	}
}

// setBrace returns an action tagging the matched text as a Left/Right token
// of the given brace kind.
func setBrace(kind token.Kind, brace token.BraceKind) rules.Action {
	return func(d rules.ScanState) (bool, error) {
		tok := d.Token()
		tok.Kind = kind
		tok.Brace = brace
		tok.Text = d.Text()
		return true, nil
	}
}

func lexEOF(d rules.ScanState) (bool, error) {
	tok := d.Token()
	tok.Kind = token.EOF
	tok.Text = ""
	return true, nil
}

// lexNewLine handles the literal `\\` line-break command, which is lexed
// independently of CommandName so that later stages cannot mistake it for a
// redefinable one-character command (spec.md §8 boundary behavior).
func lexNewLine(d rules.ScanState) (bool, error) {
	tok := d.Token()
	tok.Kind = token.NewLine
	tok.Text = d.Text()
	return true, nil
}

func lexMacroArg(d rules.ScanState) (bool, error) {
	tok := d.Token()
	tok.Kind = token.MacroArg
	tok.Text = d.Text()
	tok.Arg = int(d.Text()[1] - '0')
	return true, nil
}

// lexCommandName implements spec.md §4.1's "Command-name lexing" algorithm.
// The rule's own pattern consumes only the leading backslash; this action
// performs the rest of the scan by hand against the scanner's remaining
// input, the way original_source's mitex-lexer lex_command_name does
// against a logos callback — a single regular expression cannot express
// "one char unconditionally, then a further run only if that char was
// alphabetic", and Go's RE2 engine has no lookahead to fake it.
//
// Classification into the six special command kinds and star-suffix
// absorption both happen in a later pass (see classify.go), since both
// require information (the command spec, or neighboring tokens) this rule
// does not have.
func lexCommandName(d rules.ScanState) (bool, error) {
	tok := d.Token()
	tok.Kind = token.CommandName
	tok.Class = token.Generic

	rest := d.Rest()
	if rest == "" {
		tok.Text = d.Text()
		return true, nil
	}
	c, size := utf8.DecodeRuneInString(rest)
	if unicode.IsSpace(c) {
		tok.Text = d.Text()
		return true, nil
	}

	d.Advance(size)
	if !isNameRune(c) {
		tok.Text = d.Text()
		return true, nil
	}

	for {
		rest = d.Rest()
		if rest == "" {
			break
		}
		c, size = utf8.DecodeRuneInString(rest)
		if !isNameRune(c) {
			break
		}
		d.Advance(size)
	}
	tok.Text = d.Text() // final text includes every rune Advance consumed
	return true, nil
}

// isNameRune reports whether c can continue a command name once the first
// character has committed to being one (ASCII letters and '@', matching
// spec.md §4.1 step 4).
func isNameRune(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '@'
}
