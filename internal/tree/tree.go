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

// Package tree defines the syntax tree produced by internal/parser:
// Root, Text, the three group kinds, Command/Args, Environment,
// AttachComponent, Infix, BlockComment, and leaf tokens — per spec.md §3's
// "Syntax tree node kinds" paragraph.
package tree

import "github.com/texlang/texlang/internal/token"

// Kind identifies a Node's role in the tree.
type Kind int

const (
	Root Kind = iota
	Text
	Group       // Curly, Bracket, or Paren group; see GroupBrace.
	Command     // name + Args children.
	Args        // wrapper for a command's argument list.
	Environment // begin-name, args, body, end-name.
	Attach      // base, operator, operand.
	Infix       // left-args, operator, right-args.
	BlockComment
	Leaf // a single token carried into the tree verbatim.
	Error
)

func (k Kind) String() string {
	switch k {
	case Root:
		return "Root"
	case Text:
		return "Text"
	case Group:
		return "Group"
	case Command:
		return "Command"
	case Args:
		return "Args"
	case Environment:
		return "Environment"
	case Attach:
		return "Attach"
	case Infix:
		return "Infix"
	case BlockComment:
		return "BlockComment"
	case Leaf:
		return "Leaf"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// Node is one entry in the syntax tree. Every token the lexer produced
// appears as a Leaf somewhere in the tree — including braces, command
// names, and attach/infix operators — so that Span/Leaves can reconstruct
// the source exactly; container nodes carry their own defining token in
// Token for quick inspection, but that token is also always present as a
// Leaf child. Which fields are meaningful depends on Kind:
//   - Leaf: Token is set, Children empty.
//   - Command: Name holds the command's text (e.g. "\foo"); Children is
//     [Leaf(command name), Args], or [Args, Leaf(command name)] for a left1
//     command such as \limits, whose argument precedes it in the source.
//   - Group: Brace identifies which bracket family; Children is
//     [Leaf(open), ...body..., Leaf(close)].
//   - Environment: Name is the begin/end name; Children is
//     [Leaf(\begin), name-Group, ...body..., Leaf(\end), name-Group].
//   - Attach: Operator is "_", "^", or "'"; Children holds
//     [base, Leaf(operator), operand].
//   - Infix: Name holds the infix command's text; Children holds
//     [left-args, Leaf(command name), right-args].
//   - Error: Message explains what went wrong; Children may hold whatever
//     was recovered.
type Node struct {
	Kind     Kind
	Name     string
	Operator string
	Brace    token.BraceKind
	Token    token.Token
	Message  string
	Children []*Node
}

// NewLeaf wraps a single token as a Leaf node.
func NewLeaf(tok token.Token) *Node {
	return &Node{Kind: Leaf, Token: tok}
}

// NewError builds an Error node carrying a diagnostic message and whatever
// partial tree was recovered, per spec.md §7's "error nodes vs exceptions"
// policy: the parser never unwinds, it always produces a node.
func NewError(msg string, pos token.Token, recovered ...*Node) *Node {
	return &Node{Kind: Error, Message: msg, Token: pos, Children: recovered}
}

// Span returns the first and last token positions a node covers, by
// recursively inspecting its leaves. It is used by the testable-property
// check that leaf spans concatenated in source order reproduce the input.
func (n *Node) Span() (start, end token.Token, ok bool) {
	if n.Kind == Leaf {
		return n.Token, n.Token, true
	}
	for _, c := range n.Children {
		if s, e, ok2 := c.Span(); ok2 {
			if !ok {
				start = s
				ok = true
			}
			end = e
		}
	}
	return start, end, ok
}

// Walk calls visit for n and every descendant, depth-first, pre-order.
func Walk(n *Node, visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, c := range n.Children {
		Walk(c, visit)
	}
}

// Leaves returns every Leaf descendant of n, in source order.
func Leaves(n *Node) []*Node {
	var out []*Node
	Walk(n, func(m *Node) {
		if m.Kind == Leaf {
			out = append(out, m)
		}
	})
	return out
}
