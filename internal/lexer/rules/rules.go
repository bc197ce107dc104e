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

// Package rules implements flex-like rules for a table-driven lexer:
// an ordered set of (start-condition, pattern, action) entries dispatched
// by trying each rule in declaration order and taking the first whose
// pattern matches at the current position.
//
// This is adapted from cmakelib/lexer/rules in the teacher repository,
// which instead picks the *longest* match among all applicable rules
// regardless of order (appropriate for CMake's non-overlapping character
// classes). The TeX grammar this package now drives has genuinely
// overlapping rules at the same starting byte (`\\` alone can begin either
// a NewLine token or a CommandName token) and spec.md §4.1 requires
// resolving that overlap by declaration order, not by match length — so
// Match here is first-match-wins in table order instead.
package rules

import (
	"regexp"

	"github.com/texlang/texlang/internal/token"
)

// StartCondition indicates a particular lexer state in which a rule should
// apply. Start conditions are inclusive by default (a rule naming no
// conditions matches regardless of state); ExclusiveConditions marks
// specific conditions as matching only rules that explicitly name them.
type StartCondition int

// InitialCondition is the lexer's condition before any Begin call.
const InitialCondition StartCondition = 0

// EOFPattern is the sentinel pattern string marking a rule that fires only
// at end of input.
const EOFPattern = ``

// ScanState is the minimal surface an Action needs from the Scanner.
type ScanState interface {
	Begin(StartCondition) // Transition to a new start condition.
	Text() string         // The text matched so far by the firing rule.
	Token() *token.Token  // The token under construction.
	Rest() string        // The input not yet consumed.
	Advance(n int)       // Consume n additional bytes, appending them to Text().
}

// Action is invoked when a rule's pattern matches. It returns whether the
// token under construction is complete (true) and any error.
type Action func(ScanState) (bool, error)

type rule struct {
	conds  []StartCondition
	re     *regexp.Regexp // nil for the EOF sentinel
	action Action
}

// Rules is an ordered table of lexer rules.
type Rules struct {
	exclusive map[StartCondition]bool
	table     []rule
}

// Option configures a Rules table during construction.
type Option func(*Rules)

// ExclusiveConditions marks the given conditions exclusive: only rules
// that explicitly name one of them will be tried while the scanner is in
// that condition.
func ExclusiveConditions(cond StartCondition, tail ...StartCondition) Option {
	return func(r *Rules) {
		r.exclusive[cond] = true
		for _, c := range tail {
			r.exclusive[c] = true
		}
	}
}

type ruleBuilder struct {
	conds []StartCondition
}

// In returns a builder for a rule active during the given (possibly empty)
// set of start conditions.
func In(conds ...StartCondition) *ruleBuilder {
	return &ruleBuilder{conds}
}

// Match returns an Option adding a rule with this builder's conditions.
func (b *ruleBuilder) Match(pat string, action Action) Option {
	return func(r *Rules) {
		r.MustAdd(b.conds, pat, action)
	}
}

// New builds a Rules table from the given options, applied in order.
func New(opts ...Option) *Rules {
	r := &Rules{exclusive: make(map[StartCondition]bool)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MustAdd adds a rule, panicking if pat fails to compile.
func (r *Rules) MustAdd(conds []StartCondition, pat string, action Action) {
	if pat == EOFPattern {
		r.table = append(r.table, rule{conds: conds, re: nil, action: action})
		return
	}
	re := regexp.MustCompile(`\A(?:` + pat + `)`)
	r.table = append(r.table, rule{conds: conds, re: re, action: action})
}

// Match tries each rule applicable to cond, in table order, and returns the
// action and matched text of the first whose pattern matches a non-empty
// prefix of s, or the first EOF rule if s is empty. Returns a nil action if
// nothing matches.
func (r *Rules) Match(cond StartCondition, s string) (Action, string) {
	for _, rl := range r.table {
		if !r.applies(cond, rl.conds) {
			continue
		}
		if rl.re == nil {
			if s == "" {
				return rl.action, ""
			}
			continue
		}
		if s == "" {
			continue
		}
		if loc := rl.re.FindStringIndex(s); loc != nil {
			return rl.action, s[:loc[1]]
		}
	}
	return nil, ""
}

func (r *Rules) applies(cond StartCondition, conds []StartCondition) bool {
	if len(conds) == 0 {
		return !r.exclusive[cond]
	}
	for _, c := range conds {
		if c == cond {
			return true
		}
	}
	return false
}
