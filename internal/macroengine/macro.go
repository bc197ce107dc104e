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

import "github.com/texlang/texlang/internal/token"

// Macro is a user-defined binding: name, arity (0-9), and body (spec.md
// §3's "Macro" data type). The body is a sequence of tokens possibly
// containing MacroArg(n) tokens marking substitution points.
type Macro struct {
	Name  string
	Arity int
	Body  []token.Token
}

// substitute returns the Macro's body with each MacroArg(n) token replaced
// by the corresponding entry of args (args[n-1], since MacroArg indices are
// 1-based in TeX's \def convention).
func (m *Macro) substitute(args [][]token.Token) []token.Token {
	out := make([]token.Token, 0, len(m.Body))
	for _, tok := range m.Body {
		if tok.Kind == token.MacroArg && tok.Arg >= 1 && tok.Arg <= len(args) {
			out = append(out, args[tok.Arg-1]...)
			continue
		}
		out = append(out, tok)
	}
	return out
}
