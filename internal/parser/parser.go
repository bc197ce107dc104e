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

// Package parser implements the hand-rolled recursive-descent parser that
// turns a lexed, macro-expanded token stream into the syntax tree defined by
// internal/tree, dispatching each command name against the associativity its
// CommandSpec descriptor declares (spec.md §4.4).
package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/texlang/texlang/internal/lexer"
	"github.com/texlang/texlang/internal/macroengine"
	"github.com/texlang/texlang/internal/spec"
	"github.com/texlang/texlang/internal/token"
	"github.com/texlang/texlang/internal/tree"
)

// config holds the knobs Option can set. Matching the functional-options
// style cmakelib/lexer/rules.Option established, rather than a public struct
// literal, so the zero value ("lenient, default depth") always means
// something sensible.
type config struct {
	strictUnknownCommands bool
	maxMacroDepth         int
}

// Option configures a Parser at construction.
type Option func(*config)

// WithStrictUnknownCommands makes an unidentified command name (one with no
// CommandSpec descriptor) produce an Error node instead of an empty-argument
// Command node, per spec.md §7's strict-mode policy.
func WithStrictUnknownCommands() Option {
	return func(c *config) { c.strictUnknownCommands = true }
}

// WithMaxMacroDepth overrides the macro engine's recursive-expansion depth
// budget (see internal/macroengine.WithMaxDepth); 0 keeps the engine default.
func WithMaxMacroDepth(n int) Option {
	return func(c *config) { c.maxMacroDepth = n }
}

// Parser drives a macro-expanding Lexer and assembles its output into a
// tree.Node per the CommandSpec's associativity declarations.
type Parser struct {
	lex    *lexer.Lexer
	engine *macroengine.Engine
	spec   *spec.CommandSpec
	cfg    config
}

// New returns a Parser over src, classifying and macro-expanding against
// cmdSpec.
func New(filename, src string, cmdSpec *spec.CommandSpec, opts ...Option) *Parser {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	var engineOpts []macroengine.Option
	if cfg.maxMacroDepth > 0 {
		engineOpts = append(engineOpts, macroengine.WithMaxDepth(cfg.maxMacroDepth))
	}
	engine := macroengine.New(engineOpts...)
	return &Parser{
		lex:    lexer.New(filename, src, cmdSpec, engine),
		engine: engine,
		spec:   cmdSpec,
		cfg:    cfg,
	}
}

// Parse lexes, macro-expands, and parses src in one call, returning its
// Root node — the entry point spec.md §6 names parse(source, spec) → Tree.
func Parse(filename, src string, cmdSpec *spec.CommandSpec, opts ...Option) *tree.Node {
	return New(filename, src, cmdSpec, opts...).Parse()
}

// Parse runs the parser to completion and returns the Root node. Malformed
// input never aborts the parse: it is recorded as Error nodes in place,
// per spec.md §7.
func (p *Parser) Parse() *tree.Node {
	never := func(token.Token) bool { return false }
	return &tree.Node{Kind: tree.Root, Children: p.parseScope(never)}
}

// stopFunc reports whether tok (not yet consumed) should end the current
// scope without being folded into it — a closing brace, a matching \end, a
// matching \fi, and so on.
type stopFunc func(token.Token) bool

// parseScope is the central recursive-descent loop: it accumulates sibling
// nodes until stop reports true or input is exhausted, dispatching each
// token by kind and, for CommandName tokens, by the Descriptor's
// Associativity.
func (p *Parser) parseScope(stop stopFunc) []*tree.Node {
	var children []*tree.Node
	for {
		tok, err := p.lex.Peek()
		if err != nil {
			return append(children, tree.NewError(err.Error(), tok))
		}
		if tok.Kind == token.EOF || stop(tok) {
			return children
		}

		switch {
		case tok.Kind == token.Underscore, tok.Kind == token.Caret, tok.Kind == token.Apostrophe:
			children = p.applyAttach(children, tok)

		case tok.IsLeft():
			children = append(children, p.parseGroup())

		case tok.IsRight():
			p.lex.Eat()
			children = append(children, tree.NewError(fmt.Sprintf("unmatched closing %q", tok.Text), tok))

		case tok.Kind == token.CommandName:
			switch tok.Class {
			case token.BeginEnvironment:
				children = append(children, p.parseEnvironment(tok))
			case token.BeginBlockComment:
				children = append(children, p.parseBlockComment(tok))
			case token.EndEnvironment, token.EndBlockComment:
				// A matching stop() should have caught the well-nested case;
				// reaching here means this close has no open in scope.
				p.lex.Eat()
				children = append(children, tree.NewError(fmt.Sprintf("unmatched %q", tok.Text), tok))
			default:
				desc, known := p.spec.Get(commandNameText(tok))
				switch {
				case !known:
					children = append(children, p.parseUnknownCommand(tok))
				case desc.Assoc == spec.AssocInfix:
					return p.finishInfix(children, tok, desc, stop)
				case desc.Assoc == spec.AssocLeft1:
					children = p.applyLeft1(children, tok, desc)
				case desc.Assoc == spec.AssocRightGreedy:
					children = append(children, p.parseRightGreedy(tok, desc, stop))
				default: // AssocPrefix, AssocMatrix
					children = append(children, p.parseCommandSlots(tok, desc))
				}
			}

		default:
			p.lex.Eat()
			children = append(children, tree.NewLeaf(tok))
		}
	}
}

// commandNameText returns a CommandName token's name without its leading
// backslash, the lookup key CommandSpec entries are keyed by.
func commandNameText(tok token.Token) string {
	if len(tok.Text) > 0 && tok.Text[0] == '\\' {
		return tok.Text[1:]
	}
	return tok.Text
}

// parseGroup consumes a balanced Left*/Right* pair and the scope between
// them.
func (p *Parser) parseGroup() *tree.Node {
	open, err := p.lex.Eat()
	if err != nil {
		return tree.NewError(err.Error(), open)
	}
	brace := braceKindOf(open.Kind)
	closeKind := token.RightKind(brace)

	p.engine.PushScope()
	inner := p.parseScope(func(t token.Token) bool { return t.Kind == closeKind })
	p.engine.PopScope()

	children := make([]*tree.Node, 0, len(inner)+2)
	children = append(children, tree.NewLeaf(open))
	children = append(children, inner...)

	closeTok, err := p.lex.Peek()
	if err != nil {
		children = append(children, tree.NewError(err.Error(), closeTok))
		return &tree.Node{Kind: tree.Group, Brace: brace, Token: open, Children: children}
	}
	if closeTok.Kind != closeKind {
		children = append(children, tree.NewError(fmt.Sprintf("unbalanced %s group", brace), open))
		return &tree.Node{Kind: tree.Group, Brace: brace, Token: open, Children: children}
	}
	p.lex.Eat()
	children = append(children, tree.NewLeaf(closeTok))
	return &tree.Node{Kind: tree.Group, Brace: brace, Token: open, Children: children}
}

func braceKindOf(k token.Kind) token.BraceKind {
	switch k {
	case token.LeftBracket:
		return token.Bracket
	case token.LeftParen:
		return token.Paren
	default:
		return token.Curly
	}
}

// applyAttach handles a single '_', '^', or '\'' operator: it rebinds the
// immediately preceding sibling as the attach's base and reads one further
// atom as its operand (spec.md §4.4).
func (p *Parser) applyAttach(children []*tree.Node, op token.Token) []*tree.Node {
	p.lex.Eat()
	var base *tree.Node
	if n := len(children); n > 0 {
		base, children = children[n-1], children[:n-1]
	} else {
		base = tree.NewError("attach operator with no preceding operand", op)
	}
	operand := p.parseAttachOperand()
	node := &tree.Node{Kind: tree.Attach, Operator: op.Text, Token: op, Children: []*tree.Node{base, tree.NewLeaf(op), operand}}
	return append(children, node)
}

// parseAttachOperand reads the single atom an attach operator binds to: a
// full group if one follows, a whole command name if one follows, or else
// exactly one rune peeled off the next token's text (spec.md §4.4 and Open
// Question 2: a rune, not a byte or a grapheme cluster).
func (p *Parser) parseAttachOperand() *tree.Node {
	tok, err := p.lex.Peek()
	if err != nil {
		return tree.NewError(err.Error(), tok)
	}
	switch {
	case tok.Kind == token.EOF:
		return tree.NewError("attach operator missing operand", tok)
	case tok.IsLeft():
		return p.parseGroup()
	case tok.Kind == token.CommandName:
		p.lex.Eat()
		return tree.NewLeaf(tok)
	}

	r, err := p.lex.PeekChar()
	if err != nil {
		return tree.NewError(err.Error(), tok)
	}
	text, err := p.lex.ConsumeUTF8Bytes(utf8.RuneLen(r))
	if err != nil {
		return tree.NewError(err.Error(), tok)
	}
	leaf := tok
	leaf.Text = text
	return tree.NewLeaf(leaf)
}

// applyLeft1 handles an AssocLeft1 command (e.g. \limits): it rebinds the
// preceding sibling as its sole argument, wrapped in an Args node, and
// produces a Command node rather than an Attach node. The Args child comes
// before the command-name leaf, keeping the leaves in source order.
func (p *Parser) applyLeft1(children []*tree.Node, tok token.Token, desc spec.Descriptor) []*tree.Node {
	p.lex.Eat()
	var base *tree.Node
	if n := len(children); n > 0 {
		base, children = children[n-1], children[:n-1]
	} else {
		base = tree.NewError(fmt.Sprintf("%q with no preceding operand", tok.Text), tok)
	}
	args := &tree.Node{Kind: tree.Args, Children: []*tree.Node{base}}
	node := &tree.Node{Kind: tree.Command, Name: tok.Text, Token: tok, Children: []*tree.Node{args, tree.NewLeaf(tok)}}
	return append(children, node)
}

// finishInfix handles an AssocInfix command (e.g. \over): everything
// accumulated so far in the enclosing scope becomes its left operand, and a
// recursive parseScope call under the same stop condition supplies its right
// operand — which naturally makes a chain of infix commands right-
// associative, since the inner call encounters the next \over itself and
// returns a single already-nested Infix node (Open Question 1).
func (p *Parser) finishInfix(left []*tree.Node, tok token.Token, desc spec.Descriptor, stop stopFunc) []*tree.Node {
	p.lex.Eat()
	right := p.parseScope(stop)
	leftArgs := &tree.Node{Kind: tree.Args, Children: left}
	rightArgs := &tree.Node{Kind: tree.Args, Children: right}
	node := &tree.Node{Kind: tree.Infix, Name: tok.Text, Token: tok, Children: []*tree.Node{leftArgs, tree.NewLeaf(tok), rightArgs}}
	return []*tree.Node{node}
}

// parseRightGreedy handles an AssocRightGreedy command (e.g. \displaystyle):
// its single argument is everything up to the enclosing scope's own stop
// condition, read via a recursive parseScope call, and appended as an
// ordinary sibling rather than reaching backward the way infix does.
func (p *Parser) parseRightGreedy(tok token.Token, desc spec.Descriptor, stop stopFunc) *tree.Node {
	p.lex.Eat()
	body := p.parseScope(stop)
	args := &tree.Node{Kind: tree.Args, Children: body}
	return &tree.Node{Kind: tree.Command, Name: tok.Text, Token: tok, Children: []*tree.Node{tree.NewLeaf(tok), args}}
}

// parseCommandSlots handles AssocPrefix and AssocMatrix commands: it reads
// desc's declared argument slots in order, in the teacher's CommandSpec
// shape (see internal/spec), and wraps them in a single Args child.
func (p *Parser) parseCommandSlots(tok token.Token, desc spec.Descriptor) *tree.Node {
	p.lex.Eat()
	var args []*tree.Node
	for _, slot := range desc.Slots {
		node, ok, err := p.readSlot(slot)
		switch {
		case err != nil:
			args = append(args, tree.NewError(err.Error(), tok))
		case !ok && !slot.Optional:
			args = append(args, tree.NewError(fmt.Sprintf("%q: missing required argument", tok.Text), tok))
		case ok:
			args = append(args, node)
		}
	}
	argsNode := &tree.Node{Kind: tree.Args, Children: args}
	return &tree.Node{Kind: tree.Command, Name: tok.Text, Token: tok, Children: []*tree.Node{tree.NewLeaf(tok), argsNode}}
}

// readSlot reads one argument slot per its declared Kind. An optional slot
// is recognized only in its conventional "[...]" bracket form. A required
// SlotGroup slot takes a brace group of any family, or else the next token,
// of whatever kind, as a bare atom; SlotWordOrGroup takes a brace group or a
// Word; SlotCommandName takes only a command name and SlotSmallInteger only a
// Word made of digits, neither of them accepting a group.
func (p *Parser) readSlot(slot spec.ArgSlot) (*tree.Node, bool, error) {
	tok, err := p.lex.Peek()
	if err != nil {
		return nil, false, err
	}
	if tok.Kind == token.EOF {
		return nil, false, nil
	}

	if slot.Optional {
		if tok.Kind != token.LeftBracket {
			return nil, false, nil
		}
		return p.parseGroup(), true, nil
	}

	switch slot.Kind {
	case spec.SlotSmallInteger:
		if tok.Kind != token.Word || !isDigitRun(tok.Text) {
			return nil, false, nil
		}
		p.lex.Eat()
		return tree.NewLeaf(tok), true, nil

	case spec.SlotCommandName:
		if tok.Kind != token.CommandName {
			return nil, false, nil
		}
		p.lex.Eat()
		return tree.NewLeaf(tok), true, nil

	case spec.SlotWordOrGroup:
		if tok.IsLeft() {
			return p.parseGroup(), true, nil
		}
		if tok.Kind != token.Word {
			return nil, false, nil
		}
		p.lex.Eat()
		return tree.NewLeaf(tok), true, nil

	default: // SlotGroup
		if tok.IsLeft() {
			return p.parseGroup(), true, nil
		}
		p.lex.Eat()
		return tree.NewLeaf(tok), true, nil
	}
}

func isDigitRun(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// parseUnknownCommand handles a CommandName with no CommandSpec descriptor.
// In strict mode (spec.md §7) it is an Error node; otherwise it is treated
// as an arity-0 command, the permissive default a prose document full of
// unrecognized macros still needs to parse under.
func (p *Parser) parseUnknownCommand(tok token.Token) *tree.Node {
	p.lex.Eat()
	if p.cfg.strictUnknownCommands {
		return tree.NewError(fmt.Sprintf("unknown command %q", tok.Text), tok)
	}
	return &tree.Node{Kind: tree.Command, Name: tok.Text, Token: tok, Children: []*tree.Node{tree.NewLeaf(tok), {Kind: tree.Args}}}
}

// parseEnvironment handles a \begin{name}...\end{name} pair.
func (p *Parser) parseEnvironment(beginTok token.Token) *tree.Node {
	p.lex.Eat()
	nameNode, name := p.readEnvironmentName()

	isEnd := func(t token.Token) bool {
		return t.Kind == token.CommandName && t.Class == token.EndEnvironment
	}
	p.engine.PushScope()
	body := p.parseScope(isEnd)
	p.engine.PopScope()

	children := []*tree.Node{tree.NewLeaf(beginTok), nameNode}
	children = append(children, body...)

	endTok, err := p.lex.Peek()
	switch {
	case err != nil:
		children = append(children, tree.NewError(err.Error(), endTok))
	case endTok.Kind != token.CommandName || endTok.Class != token.EndEnvironment:
		children = append(children, tree.NewError(fmt.Sprintf("environment %q missing \\end", name), beginTok))
	default:
		p.lex.Eat()
		endNameNode, endName := p.readEnvironmentName()
		children = append(children, tree.NewLeaf(endTok), endNameNode)
		if endName != name {
			children = append(children, tree.NewError(fmt.Sprintf("mismatched \\end{%s}, expected \\end{%s}", endName, name), endTok))
		}
	}
	return &tree.Node{Kind: tree.Environment, Name: name, Token: beginTok, Children: children}
}

// readEnvironmentName reads a literal "{name}" group following \begin or
// \end, without parsing its contents as a scope — an environment name is a
// bare identifier, not markup.
func (p *Parser) readEnvironmentName() (*tree.Node, string) {
	open, err := p.lex.Eat()
	if err != nil {
		return tree.NewError(err.Error(), open), ""
	}
	if open.Kind != token.LeftCurly {
		return tree.NewError("environment name must be a {name} group", open), ""
	}
	toks, err := p.lex.ReadUntilBalanced(token.Curly)
	if err != nil {
		return tree.NewError(err.Error(), open), ""
	}
	var closeTok token.Token
	haveClose := false
	if n := len(toks); n > 0 && toks[n-1].Kind == token.RightCurly {
		closeTok, haveClose = toks[n-1], true
		toks = toks[:n-1]
	}

	var name strings.Builder
	children := make([]*tree.Node, 0, len(toks)+2)
	children = append(children, tree.NewLeaf(open))
	for _, t := range toks {
		name.WriteString(t.Text)
		children = append(children, tree.NewLeaf(t))
	}
	if haveClose {
		children = append(children, tree.NewLeaf(closeTok))
	}
	return &tree.Node{Kind: tree.Group, Brace: token.Curly, Token: open, Children: children}, name.String()
}

// parseBlockComment handles \iffalse ... \fi: its interior is captured
// opaquely as Leaf children without being interpreted, per spec.md §3's
// BlockComment node description. Nested \iffalse/\fi pairs are tracked so an
// inner pair doesn't terminate the outer one early.
func (p *Parser) parseBlockComment(beginTok token.Token) *tree.Node {
	p.lex.Eat()
	depth := 1
	leaves := []*tree.Node{tree.NewLeaf(beginTok)}
	for depth > 0 {
		tok, err := p.lex.Eat()
		if err != nil {
			leaves = append(leaves, tree.NewError(err.Error(), tok))
			break
		}
		if tok.Kind == token.EOF {
			leaves = append(leaves, tree.NewError("unterminated block comment", beginTok))
			break
		}
		if tok.Kind == token.CommandName {
			switch tok.Class {
			case token.BeginBlockComment:
				depth++
			case token.EndBlockComment:
				depth--
			}
		}
		leaves = append(leaves, tree.NewLeaf(tok))
	}
	return &tree.Node{Kind: tree.BlockComment, Token: beginTok, Children: leaves}
}
