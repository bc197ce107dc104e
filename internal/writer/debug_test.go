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
	"bytes"
	"testing"
)

func TestDebugWriterNestsUnderBeginNode(t *testing.T) {
	var buf bytes.Buffer
	dw := NewDebugWriter(&buf)
	if err := dw.BeginNode("Root"); err != nil {
		t.Fatalf("BeginNode: %v", err)
	}
	if err := dw.WriteLeaf("child-a"); err != nil {
		t.Fatalf("WriteLeaf: %v", err)
	}
	if err := dw.BeginNode("nested"); err != nil {
		t.Fatalf("BeginNode: %v", err)
	}
	if err := dw.WriteLeaf("child-b"); err != nil {
		t.Fatalf("WriteLeaf: %v", err)
	}
	if err := dw.EndNode(); err != nil {
		t.Fatalf("EndNode: %v", err)
	}
	if err := dw.EndNode(); err != nil {
		t.Fatalf("EndNode: %v", err)
	}
	if err := dw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	want := "Root\n" +
		"  child-a\n" +
		"  nested\n" +
		"    child-b\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestDebugWriterEndNodeWithoutBeginIsError(t *testing.T) {
	var buf bytes.Buffer
	dw := NewDebugWriter(&buf)
	if err := dw.EndNode(); err == nil {
		t.Error("EndNode with no matching BeginNode: want an error, got nil")
	}
}
