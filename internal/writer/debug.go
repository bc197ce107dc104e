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

package writer

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// DebugWriter is a simple type for writing an indented outline of nested
// labels with a consistent form, adapted from the teacher's StarlarkWriter:
// the same buffered-writer-plus-indent-tracking shape, retargeted from
// emitting Starlark macro bodies to emitting a readable syntax-tree dump.
type DebugWriter struct {
	w     *bufio.Writer
	depth int
}

// NewDebugWriter creates a new DebugWriter writing to the provided output.
func NewDebugWriter(w io.Writer) *DebugWriter {
	return &DebugWriter{w: bufio.NewWriter(w)}
}

const indentUnit = "  "

func (dw *DebugWriter) indent() string {
	return strings.Repeat(indentUnit, dw.depth)
}

// BeginNode writes label at the current indentation and increases the
// indentation for whatever is written until the matching EndNode.
func (dw *DebugWriter) BeginNode(label string) error {
	if _, err := dw.w.WriteString(dw.indent() + label + "\n"); err != nil {
		return err
	}
	dw.depth++
	return nil
}

// EndNode closes the most recently opened BeginNode, restoring the
// indentation it was called at.
func (dw *DebugWriter) EndNode() error {
	if dw.depth == 0 {
		return errors.New("writer: EndNode with no matching BeginNode")
	}
	dw.depth--
	return nil
}

// WriteLeaf writes label at the current indentation as a childless entry.
func (dw *DebugWriter) WriteLeaf(label string) error {
	_, err := dw.w.WriteString(dw.indent() + label + "\n")
	return err
}

// Flush writes any buffered output to the underlying writer.
func (dw *DebugWriter) Flush() error {
	return dw.w.Flush()
}
