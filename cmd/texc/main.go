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

// Binary texc is the command-line entry point for the lexer/macro/parser
// pipeline: "texc parse" runs a source file through it and dumps the
// resulting syntax tree, "texc spec" aggregates a directory of per-package
// command descriptor files into one CommandSpec written in its structured
// JSON form.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/texlang/texlang/internal/parser"
	"github.com/texlang/texlang/internal/spec"
	"github.com/texlang/texlang/internal/specgen"
	"github.com/texlang/texlang/internal/tree"
)

func usage() {
	fmt.Fprintf(os.Stderr, `usage:
  texc parse --stage=syntax|compile [--spec=file.json] [--strict] <source.tex>
  texc spec generate <pkgdir> <out.json>
`)
	os.Exit(2)
}

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		usage()
	}
	var err error
	switch os.Args[1] {
	case "parse":
		err = runParse(os.Args[2:])
	case "spec":
		err = runSpec(os.Args[2:])
	default:
		usage()
	}
	if err != nil {
		log.Fatal(err)
	}
}

func runParse(args []string) error {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	stage := fs.String("stage", "syntax", `pipeline stage to run and print: "syntax" or "compile"`)
	specPath := fs.String("spec", "", "path to a CommandSpec produced by \"texc spec generate\" (default: built-in empty spec)")
	strict := fs.Bool("strict", false, "treat unknown command names as errors instead of lenient Command nodes")
	fs.Parse(args)
	if fs.NArg() != 1 {
		usage()
	}

	cmdSpec, err := loadSpec(*specPath)
	if err != nil {
		return fmt.Errorf("texc parse: %w", err)
	}

	srcPath := fs.Arg(0)
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("texc parse: %w", err)
	}

	switch *stage {
	case "syntax":
		var opts []parser.Option
		if *strict {
			opts = append(opts, parser.WithStrictUnknownCommands())
		}
		root := parser.Parse(srcPath, string(src), cmdSpec, opts...)
		return tree.DumpTree(os.Stdout, root)
	case "compile":
		// Lowering the syntax tree to an output format (the bzl-emitting half
		// of the teacher's tools) is outside this module; see DESIGN.md.
		return fmt.Errorf("texc parse: stage %q is not implemented by this module", *stage)
	default:
		return fmt.Errorf("texc parse: unknown stage %q", *stage)
	}
}

func runSpec(args []string) error {
	if len(args) < 1 || args[0] != "generate" {
		usage()
	}
	fs := flag.NewFlagSet("spec generate", flag.ExitOnError)
	fs.Parse(args[1:])
	if fs.NArg() != 2 {
		usage()
	}
	pkgDir, outPath := fs.Arg(0), fs.Arg(1)

	cmdSpec, err := specgen.AggregateDir(pkgDir)
	if err != nil {
		return fmt.Errorf("texc spec generate: %w", err)
	}
	data, err := cmdSpec.MarshalJSON()
	if err != nil {
		return fmt.Errorf("texc spec generate: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("texc spec generate: %w", err)
	}
	return nil
}

// loadSpec reads the structured JSON form written by "texc spec generate",
// or returns an empty CommandSpec (every command lexed as an unknown,
// lenient Command node) when path is empty.
func loadSpec(path string) (*spec.CommandSpec, error) {
	if path == "" {
		return spec.New(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return spec.DecodeJSON(data)
}
