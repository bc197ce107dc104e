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

package tree

import (
	"fmt"
	"io"

	"github.com/texlang/texlang/internal/writer"
)

// label returns the short header text DumpTree and MarshalDebug use to
// describe n, without recursing into its children.
func (n *Node) label() string {
	switch n.Kind {
	case Leaf:
		return fmt.Sprintf("Leaf(%s %q)", n.Token.Kind, n.Token.Text)
	case Error:
		return fmt.Sprintf("Error(%q)", n.Message)
	case Command:
		return fmt.Sprintf("Command(%s)", n.Name)
	case Infix:
		return fmt.Sprintf("Infix(%s)", n.Name)
	case Attach:
		return fmt.Sprintf("Attach(%s)", n.Operator)
	case Group:
		return fmt.Sprintf("Group(%s)", n.Brace)
	case Environment:
		return fmt.Sprintf("Environment(%s)", n.Name)
	default:
		return n.Kind.String()
	}
}

// DumpTree writes an indented, human-readable outline of root to out — the
// rendering behind SPEC_FULL.md §6's `--stage syntax` CLI output. Every
// non-Leaf node's children are indented one level under its own label;
// grounded on writer.DebugWriter's indentation-tracking shape, the same way
// the teacher's llvmbuildtobzl visitor drives a StarlarkWriter one component
// at a time rather than building the whole output in memory first.
func DumpTree(out io.Writer, root *Node) error {
	dw := writer.NewDebugWriter(out)
	if err := dumpNode(dw, root); err != nil {
		return err
	}
	return dw.Flush()
}

func dumpNode(dw *writer.DebugWriter, n *Node) error {
	if n == nil {
		return dw.WriteLeaf("nil")
	}
	if len(n.Children) == 0 {
		return dw.WriteLeaf(n.label())
	}
	if err := dw.BeginNode(n.label()); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := dumpNode(dw, c); err != nil {
			return err
		}
	}
	return dw.EndNode()
}

// MarshalDebug implements writer.DebugMarshaler, giving Node a compact,
// single-line encoding: writer.Marshal(n.Children) recurses through this
// same method for every descendant, the way the teacher's domain types hand
// slice/struct fields back to writer.Marshal rather than formatting them by
// hand.
func (n *Node) MarshalDebug() ([]byte, error) {
	if n == nil {
		return []byte("nil"), nil
	}
	if len(n.Children) == 0 {
		return []byte(n.label()), nil
	}
	childEnc, err := writer.Marshal(n.Children)
	if err != nil {
		return nil, err
	}
	return []byte(n.label() + string(childEnc)), nil
}
