// Copyright 2024 Meridian Foundation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mcs

// Value is a dynamic value whose shape mirrors a schema type expression.
// The codec checks values against the schema at encode time, so a Value
// built by hand only encodes if it matches the target type exactly.
type Value interface {
	valueKind() string
}

type (
	Bool  bool
	U8    uint8
	U64   uint64
	Str   string
	Bytes []byte

	// Seq is a variable-length sequence of elements of one type
	Seq []Value

	// Tuple holds the items of a TUPLE or the elements of a TUPLEARRAY
	Tuple []Value

	// Struct holds field values in declaration order. Field names live in
	// the schema, not in the value.
	Struct []Value
)

// Option is an optional value. A nil Value means absent.
type Option struct {
	Value Value
}

// Some wraps a present optional value
func Some(v Value) Option { return Option{Value: v} }

// None returns an absent optional value
func None() Option { return Option{} }

// IsSome reports whether the optional value is present
func (o Option) IsSome() bool { return o.Value != nil }

// Enum is an enum value identified by its variant tag. Value carries the
// payload: nil for a unit variant, the inner value for a newtype variant,
// a Struct for a struct variant, and a Tuple for a tuple variant.
type Enum struct {
	Tag   uint32
	Value Value
}

func (Bool) valueKind() string   { return "BOOL" }
func (U8) valueKind() string     { return "U8" }
func (U64) valueKind() string    { return "U64" }
func (U128) valueKind() string   { return "U128" }
func (Str) valueKind() string    { return "STR" }
func (Bytes) valueKind() string  { return "BYTES" }
func (Seq) valueKind() string    { return "SEQ" }
func (Tuple) valueKind() string  { return "TUPLE" }
func (Struct) valueKind() string { return "STRUCT" }
func (Option) valueKind() string { return "OPTION" }
func (Enum) valueKind() string   { return "ENUM" }

// kindOf names a value's shape for error messages
func kindOf(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.valueKind()
}
