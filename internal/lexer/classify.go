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
	"github.com/texlang/texlang/internal/spec"
	"github.com/texlang/texlang/internal/token"
)

// classNames is the small fixed table spec.md §3 describes: a command name's
// classification never depends on the active CommandSpec, so it is a plain
// map rather than a spec.CommandSpec lookup.
var classNames = map[string]token.CommandClass{
	"begin":   token.BeginEnvironment,
	"end":     token.EndEnvironment,
	"iffalse": token.BeginBlockComment,
	"fi":      token.EndBlockComment,
	"left":    token.Left,
	"right":   token.Right,
}

// classify sets tok.Class from its Text, the way cmakelib/lexer/filter's
// filterLexer reclassifies raw tokens in a pass separate from scanning.
func classify(tok *token.Token) {
	if tok.Kind != token.CommandName {
		return
	}
	name := tok.Text
	if len(name) > 0 && name[0] == '\\' {
		name = name[1:]
	}
	if class, ok := classNames[name]; ok {
		tok.Class = class
	} else {
		tok.Class = token.Generic
	}
}

// absorbStar merges a leading "*" off of next's text into cmd's Text when
// spec declares a starred variant of cmd's command (spec.md §4.1 step 5).
// It reports whether it consumed a character from next.
//
// Grounded on cmakelib/lexer/filter's combineBracketContent/
// combineQuotedContent, which similarly peek one token ahead and fold part
// of it into the token already being built.
func absorbStar(spec *spec.CommandSpec, cmd *token.Token, next *token.Token) bool {
	if cmd.Kind != token.CommandName || next.Kind != token.Word {
		return false
	}
	if next.Text == "" || next.Text[0] != '*' {
		return false
	}
	name := cmd.Text
	if len(name) > 0 && name[0] == '\\' {
		name = name[1:]
	}
	if !spec.Contains(name + "*") {
		return false
	}
	cmd.Text += "*"
	next.Text = next.Text[1:]
	return true
}
