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

// Package writer formats a parsed syntax tree for human inspection (the
// --stage syntax output SPEC_FULL.md §6 describes): a generic reflect-driven
// value encoder (marshal.go) plus an indentation-tracking streaming writer
// (debug.go), the same two-piece split the teacher's Starlark emitter uses.
package writer

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"
)

// DebugMarshaler is implemented by types that know how to format themselves
// for the debug dump, the way the teacher's Marshaler lets a domain type
// take over from the generic encoder for anything reflect.Kind's built-in
// cases (bool, numbers, strings, slices, arrays, pointers) can't express —
// struct types, most importantly.
type DebugMarshaler interface {
	MarshalDebug() ([]byte, error)
}

var debugMarshalerType = reflect.TypeOf((*DebugMarshaler)(nil)).Elem()

// Marshal returns the debug encoding of v, traversing it recursively using
// the following type-dependent default encodings:
//
// Boolean values are encoded as true/false. String values are encoded as
// quoted Go strings. Array and slice values are encoded as bracketed,
// comma-separated lists, with their contents recursively encoded. Nil
// pointer and interface values are encoded as "nil". Any value whose type
// implements DebugMarshaler defers to that method instead, regardless of
// its underlying kind.
func Marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, reflect.ValueOf(v)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(b *bytes.Buffer, v reflect.Value) error {
	if !v.IsValid() {
		return writeString(b, "nil")
	}
	return encodeType(b, v.Type(), v)
}

func encodeType(b *bytes.Buffer, t reflect.Type, v reflect.Value) error {
	if t.Implements(debugMarshalerType) {
		return encodeMarshaler(b, v)
	}

	switch t.Kind() {
	case reflect.Bool:
		return encodeBool(b, v)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return encodeInt(b, v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return encodeUint(b, v)
	case reflect.Float32, reflect.Float64:
		return encodeFloat(b, v)
	case reflect.String:
		return encodeString(b, v)
	case reflect.Slice:
		return encodeSlice(b, v)
	case reflect.Array:
		return encodeArray(b, v)
	case reflect.Interface, reflect.Ptr:
		return encodeInterface(b, v)
	default:
		return fmt.Errorf("writer: unsupported debug encoding for value: %#v", v)
	}
}

func encodeBool(b *bytes.Buffer, v reflect.Value) error {
	return writeString(b, strconv.FormatBool(v.Bool()))
}

func encodeInt(b *bytes.Buffer, v reflect.Value) error {
	return writeString(b, strconv.FormatInt(v.Int(), 10))
}

func encodeUint(b *bytes.Buffer, v reflect.Value) error {
	return writeString(b, strconv.FormatUint(v.Uint(), 10))
}

func encodeFloat(b *bytes.Buffer, v reflect.Value) error {
	return writeString(b, strconv.FormatFloat(v.Float(), 'g', -1, 64))
}

func encodeString(b *bytes.Buffer, v reflect.Value) error {
	return writeString(b, strconv.Quote(v.String()))
}

func encodeSlice(b *bytes.Buffer, v reflect.Value) error {
	if v.IsNil() {
		return writeString(b, "[]")
	}
	return encodeArray(b, v)
}

func encodeArray(b *bytes.Buffer, v reflect.Value) error {
	if err := b.WriteByte('['); err != nil {
		return err
	}
	n := v.Len()
	for i := 0; i < n; i++ {
		if i > 0 {
			if err := writeString(b, ", "); err != nil {
				return err
			}
		}
		if err := encodeValue(b, v.Index(i)); err != nil {
			return err
		}
	}
	return b.WriteByte(']')
}

func encodeInterface(b *bytes.Buffer, v reflect.Value) error {
	if v.IsNil() {
		return writeString(b, "nil")
	}
	return encodeValue(b, v.Elem())
}

func encodeMarshaler(b *bytes.Buffer, v reflect.Value) error {
	if v.Kind() == reflect.Ptr && v.IsNil() {
		return writeString(b, "nil")
	}
	m, ok := v.Interface().(DebugMarshaler)
	if !ok {
		return writeString(b, "nil")
	}
	r, err := m.MarshalDebug()
	if err != nil {
		return err
	}
	return writeString(b, string(r))
}

func writeString(b *bytes.Buffer, value string) error {
	_, err := b.WriteString(value)
	return err
}
