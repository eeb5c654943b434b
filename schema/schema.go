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

package schema

import (
	"fmt"
	"strings"
)

// Kind identifies a type expression constructor
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindU8
	KindU64
	KindU128
	KindStr
	KindBytes
	KindSeq
	KindOption
	KindTuple
	KindTupleArray
	KindTypename
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "BOOL"
	case KindU8:
		return "U8"
	case KindU64:
		return "U64"
	case KindU128:
		return "U128"
	case KindStr:
		return "STR"
	case KindBytes:
		return "BYTES"
	case KindSeq:
		return "SEQ"
	case KindOption:
		return "OPTION"
	case KindTuple:
		return "TUPLE"
	case KindTupleArray:
		return "TUPLEARRAY"
	case KindTypename:
		return "TYPENAME"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Type is a serialization type expression: a primitive, a composite built
// from other type expressions, or a reference to a named definition in a
// Registry. The zero value is invalid.
type Type struct {
	Kind  Kind
	Elem  *Type  // content type for Seq, Option, and TupleArray
	Items []Type // item types for Tuple
	Size  uint32 // element count for TupleArray
	Ref   string // definition name for Typename
}

func Bool() Type  { return Type{Kind: KindBool} }
func U8() Type    { return Type{Kind: KindU8} }
func U64() Type   { return Type{Kind: KindU64} }
func U128() Type  { return Type{Kind: KindU128} }
func Str() Type   { return Type{Kind: KindStr} }
func Bytes() Type { return Type{Kind: KindBytes} }

// Seq is a variable-length sequence of elem
func Seq(elem Type) Type { return Type{Kind: KindSeq, Elem: &elem} }

// Option is an optional elem
func Option(elem Type) Type { return Type{Kind: KindOption, Elem: &elem} }

// Tuple is a fixed, heterogeneous item list
func Tuple(items ...Type) Type { return Type{Kind: KindTuple, Items: items} }

// TupleArray is a fixed-length homogeneous array of size elements
func TupleArray(content Type, size uint32) Type {
	return Type{Kind: KindTupleArray, Elem: &content, Size: size}
}

// Typename references a named definition in the enclosing registry
func Typename(name string) Type { return Type{Kind: KindTypename, Ref: name} }

func (t Type) String() string {
	switch t.Kind {
	case KindSeq, KindOption:
		if t.Elem == nil {
			return fmt.Sprintf("%s(?)", t.Kind)
		}
		return fmt.Sprintf("%s(%s)", t.Kind, t.Elem)
	case KindTuple:
		items := make([]string, len(t.Items))
		for i, item := range t.Items {
			items[i] = item.String()
		}
		return fmt.Sprintf("TUPLE(%s)", strings.Join(items, ", "))
	case KindTupleArray:
		if t.Elem == nil {
			return fmt.Sprintf("TUPLEARRAY(?, %d)", t.Size)
		}
		return fmt.Sprintf("TUPLEARRAY(%s, %d)", t.Elem, t.Size)
	case KindTypename:
		return fmt.Sprintf("TYPENAME(%s)", t.Ref)
	}
	return t.Kind.String()
}

// Definition is a named container format held by a Registry
type Definition interface {
	isDefinition()
}

// Field is a named member of a struct or struct variant
type Field struct {
	Name string
	Type Type
}

// StructDef is a record with a fixed, ordered field list. Field order is
// the wire order.
type StructDef struct {
	Fields []Field
}

// NewtypeDef wraps a single inner type. It is transparent on the wire and
// exists only to give the inner layout a name.
type NewtypeDef struct {
	Type Type
}

// VariantKind identifies the payload shape of an enum variant
type VariantKind int

const (
	VariantUnit VariantKind = iota
	VariantNewtype
	VariantStruct
	VariantTuple
)

func (k VariantKind) String() string {
	switch k {
	case VariantUnit:
		return "UNIT"
	case VariantNewtype:
		return "NEWTYPE"
	case VariantStruct:
		return "STRUCT"
	case VariantTuple:
		return "TUPLE"
	}
	return fmt.Sprintf("VariantKind(%d)", int(k))
}

// Variant is a single enum alternative. The payload field matching Kind is
// populated and the others are zero.
type Variant struct {
	Tag    uint32
	Name   string
	Kind   VariantKind
	Type   Type    // VariantNewtype payload
	Fields []Field // VariantStruct payload
	Items  []Type  // VariantTuple payload
}

// EnumDef is a tagged union. Variants are kept in ascending tag order.
type EnumDef struct {
	Variants []Variant
}

func (*StructDef) isDefinition()  {}
func (*EnumDef) isDefinition()    {}
func (*NewtypeDef) isDefinition() {}

// VariantByTag returns the variant declared with the given tag
func (d *EnumDef) VariantByTag(tag uint32) (*Variant, bool) {
	for i := range d.Variants {
		if d.Variants[i].Tag == tag {
			return &d.Variants[i], true
		}
	}
	return nil, false
}

// VariantByName returns the variant declared with the given name
func (d *EnumDef) VariantByName(name string) (*Variant, bool) {
	for i := range d.Variants {
		if d.Variants[i].Name == name {
			return &d.Variants[i], true
		}
	}
	return nil, false
}

// MaxTag returns the highest declared variant tag, or zero for an enum with
// no variants
func (d *EnumDef) MaxTag() uint32 {
	var maxTag uint32
	for i := range d.Variants {
		if d.Variants[i].Tag > maxTag {
			maxTag = d.Variants[i].Tag
		}
	}
	return maxTag
}
