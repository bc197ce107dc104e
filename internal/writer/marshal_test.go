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

import "testing"

type marsh struct{}

func (m marsh) MarshalDebug() ([]byte, error) {
	return []byte("marshaled"), nil
}

func TestMarshalling(t *testing.T) {
	tests := []struct {
		v interface{}
		e string
	}{
		{1, "1"},
		{nil, "nil"},
		{1.3, "1.3"},
		{true, "true"},
		{"hello, world", `"hello, world"`},
		{[]interface{}{1, true, "hello"}, `[1, true, "hello"]`},
		{marsh{}, "marshaled"},
		{(*marsh)(nil), "nil"},
	}

	for _, test := range tests {
		a, err := Marshal(test.v)
		if err != nil {
			t.Errorf("Failed to marshal %#v: %v", test.v, err)
		} else if string(a) != test.e {
			t.Errorf("Expected %#v but got %#v", test.e, string(a))
		}
	}
}
