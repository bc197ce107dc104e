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

package specgen

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/texlang/texlang/internal/pathutil"
	"github.com/texlang/texlang/internal/spec"
)

// AggregateDir walks dir depth-first (via pathutil.Walk, the same walker the
// teacher repository uses to discover LLVMBuild.txt files) collecting every
// "*.ini" package file and merging them into a single CommandSpec.
//
// Files are merged in lexicographic path order so that aggregation is
// deterministic regardless of the underlying filesystem's directory order.
func AggregateDir(dir string) (*spec.CommandSpec, error) {
	var files []string
	err := pathutil.Walk(dir, func(p string) ([]string, func() error, error) {
		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, nil, err
		}
		var children []string
		for _, e := range entries {
			switch {
			case e.IsDir():
				children = append(children, e.Name())
			case strings.HasSuffix(e.Name(), ".ini"):
				files = append(files, filepath.Join(p, e.Name()))
			}
		}
		return children, nil, nil
	})
	if err != nil {
		return nil, fmt.Errorf("specgen: walking %s: %w", dir, err)
	}

	sort.Strings(files)

	out := spec.New()
	for _, f := range files {
		frag, err := LoadPackageFile(f)
		if err != nil {
			return nil, fmt.Errorf("specgen: loading %s: %w", f, err)
		}
		if err := out.Merge(frag); err != nil {
			return nil, fmt.Errorf("specgen: merging %s: %w", f, err)
		}
	}
	return out, nil
}
