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

// Package token defines the lexical atoms produced by the TeX lexer.
package token

import "github.com/alecthomas/participle/lexer"

// Kind identifies the lexical category of a Token. TeX has no fixed lexical
// class system, so Kind is deliberately small and flat rather than a family
// of sub-types.
type Kind rune

// Kind values, ordered below lexer.EOF the same way cmakelib/lexer enumerates
// its token kinds; the exact numeric values are never observed by callers.
const (
	_ Kind = Kind(lexer.EOF) - Kind(iota)
	Whitespace
	LineBreak
	LineComment
	Word
	Comma
	Tilde
	Slash
	Ampersand
	Caret
	Apostrophe
	Ditto
	Semicolon
	Hash
	Underscore
	Dollar
	NewLine
	LeftCurly
	LeftBracket
	LeftParen
	RightCurly
	RightBracket
	RightParen
	CommandName
	MacroArg
	Error
)

// EOF is the end-of-input marker shared with the participle lexer position
// machinery this package builds on.
const EOF = Kind(lexer.EOF)

var kindNames = map[Kind]string{
	EOF:          "EOF",
	Whitespace:   "Whitespace",
	LineBreak:    "LineBreak",
	LineComment:  "LineComment",
	Word:         "Word",
	Comma:        "Comma",
	Tilde:        "Tilde",
	Slash:        "Slash",
	Ampersand:    "Ampersand",
	Caret:        "Caret",
	Apostrophe:   "Apostrophe",
	Ditto:        "Ditto",
	Semicolon:    "Semicolon",
	Hash:         "Hash",
	Underscore:   "Underscore",
	Dollar:       "Dollar",
	NewLine:      "NewLine",
	LeftCurly:    "LeftCurly",
	LeftBracket:  "LeftBracket",
	LeftParen:    "LeftParen",
	RightCurly:   "RightCurly",
	RightBracket: "RightBracket",
	RightParen:   "RightParen",
	CommandName:  "CommandName",
	MacroArg:     "MacroArg",
	Error:        "Error",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// BraceKind distinguishes the three bracket families TeX uses for grouping.
type BraceKind int

const (
	Curly BraceKind = iota
	Bracket
	Paren
)

func (b BraceKind) String() string {
	switch b {
	case Curly:
		return "curly"
	case Bracket:
		return "bracket"
	case Paren:
		return "paren"
	default:
		return "unknown-brace"
	}
}

// CommandClass is the second-pass classification of a CommandName token,
// looked up in a small fixed name table that does not depend on the
// CommandSpec (see spec.md §3 "CommandName classification").
type CommandClass int

const (
	Generic CommandClass = iota
	BeginEnvironment
	EndEnvironment
	BeginBlockComment
	EndBlockComment
	Left
	Right
)

func (c CommandClass) String() string {
	switch c {
	case BeginEnvironment:
		return "begin-environment"
	case EndEnvironment:
		return "end-environment"
	case BeginBlockComment:
		return "begin-block-comment"
	case EndBlockComment:
		return "end-block-comment"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "generic"
	}
}

// Token is a single lexical atom: a Kind plus the text slice it was lexed
// from and the position it started at. Text is always a slice of the
// original source except where a synthetic token was spliced in by macro
// expansion, or where a starred command name had its "*" appended, in which
// case it owns its storage.
type Token struct {
	Kind  Kind
	Text  string
	Pos   lexer.Position
	Brace BraceKind    // meaningful only when Kind is Left*/Right*
	Class CommandClass // meaningful only when Kind is CommandName
	Arg   int          // meaningful only when Kind is MacroArg (0-9)
}

// IsTrivia reports whether t is whitespace, a line break, or a line comment
// — the three kinds the parser is allowed to skip without losing meaning.
func (t Token) IsTrivia() bool {
	switch t.Kind {
	case Whitespace, LineBreak, LineComment:
		return true
	default:
		return false
	}
}

// IsLeft reports whether t opens a group of some BraceKind.
func (t Token) IsLeft() bool {
	switch t.Kind {
	case LeftCurly, LeftBracket, LeftParen:
		return true
	default:
		return false
	}
}

// IsRight reports whether t closes a group of some BraceKind.
func (t Token) IsRight() bool {
	switch t.Kind {
	case RightCurly, RightBracket, RightParen:
		return true
	default:
		return false
	}
}

// LeftKind returns the Kind that opens the given brace family.
func LeftKind(b BraceKind) Kind {
	switch b {
	case Bracket:
		return LeftBracket
	case Paren:
		return LeftParen
	default:
		return LeftCurly
	}
}

// RightKind returns the Kind that closes the given brace family.
func RightKind(b BraceKind) Kind {
	switch b {
	case Bracket:
		return RightBracket
	case Paren:
		return RightParen
	default:
		return RightCurly
	}
}
