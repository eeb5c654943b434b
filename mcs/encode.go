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

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/meridian-chain/go-meridian/schema"
)

// MaxContainerDepth bounds value nesting on both encode and decode
const MaxContainerDepth = 500

// Encode serializes value against the type expression typ, resolving named
// references through reg. The encoding is canonical: equal values of the
// same type always produce identical bytes.
func Encode(reg *schema.Registry, typ schema.Type, value Value) ([]byte, error) {
	e := encoder{reg: reg}
	if err := e.encodeType(typ, value, 0); err != nil {
		return nil, err
	}
	return e.buf, nil
}

// EncodeByName serializes value as the definition registered under name
func EncodeByName(
	reg *schema.Registry,
	name string,
	value Value,
) ([]byte, error) {
	return Encode(reg, schema.Typename(name), value)
}

type encoder struct {
	reg *schema.Registry
	buf []byte
}

func mismatch(typ schema.Type, value Value) error {
	return TypeMismatchError{Expected: typ.String(), Got: kindOf(value)}
}

func (e *encoder) appendLength(n int) error {
	if uint64(n) > math.MaxUint32 {
		return VarintOverflowError{Offset: len(e.buf)}
	}
	e.buf = appendUleb128(e.buf, uint32(n))
	return nil
}

func (e *encoder) encodeType(typ schema.Type, value Value, depth int) error {
	if depth > MaxContainerDepth {
		return MaxDepthExceededError{Depth: MaxContainerDepth}
	}
	switch typ.Kind {
	case schema.KindBool:
		v, ok := value.(Bool)
		if !ok {
			return mismatch(typ, value)
		}
		if v {
			e.buf = append(e.buf, 1)
		} else {
			e.buf = append(e.buf, 0)
		}
		return nil
	case schema.KindU8:
		v, ok := value.(U8)
		if !ok {
			return mismatch(typ, value)
		}
		e.buf = append(e.buf, byte(v))
		return nil
	case schema.KindU64:
		v, ok := value.(U64)
		if !ok {
			return mismatch(typ, value)
		}
		e.buf = binary.LittleEndian.AppendUint64(e.buf, uint64(v))
		return nil
	case schema.KindU128:
		v, ok := value.(U128)
		if !ok {
			return mismatch(typ, value)
		}
		e.buf = binary.LittleEndian.AppendUint64(e.buf, v.Low)
		e.buf = binary.LittleEndian.AppendUint64(e.buf, v.High)
		return nil
	case schema.KindStr:
		v, ok := value.(Str)
		if !ok {
			return mismatch(typ, value)
		}
		if !utf8.ValidString(string(v)) {
			return InvalidUtf8Error{Offset: len(e.buf)}
		}
		if err := e.appendLength(len(v)); err != nil {
			return err
		}
		e.buf = append(e.buf, v...)
		return nil
	case schema.KindBytes:
		v, ok := value.(Bytes)
		if !ok {
			return mismatch(typ, value)
		}
		if err := e.appendLength(len(v)); err != nil {
			return err
		}
		e.buf = append(e.buf, v...)
		return nil
	case schema.KindSeq:
		v, ok := value.(Seq)
		if !ok {
			return mismatch(typ, value)
		}
		if err := e.appendLength(len(v)); err != nil {
			return err
		}
		for _, elem := range v {
			if err := e.encodeType(*typ.Elem, elem, depth+1); err != nil {
				return err
			}
		}
		return nil
	case schema.KindOption:
		v, ok := value.(Option)
		if !ok {
			return mismatch(typ, value)
		}
		if v.Value == nil {
			e.buf = append(e.buf, 0)
			return nil
		}
		e.buf = append(e.buf, 1)
		return e.encodeType(*typ.Elem, v.Value, depth+1)
	case schema.KindTuple:
		v, ok := value.(Tuple)
		if !ok {
			return mismatch(typ, value)
		}
		if len(v) != len(typ.Items) {
			return TypeMismatchError{
				Expected: typ.String(),
				Got:      fmt.Sprintf("TUPLE with %d items", len(v)),
			}
		}
		for i, item := range typ.Items {
			if err := e.encodeType(item, v[i], depth+1); err != nil {
				return err
			}
		}
		return nil
	case schema.KindTupleArray:
		v, ok := value.(Tuple)
		if !ok {
			return mismatch(typ, value)
		}
		if uint64(len(v)) != uint64(typ.Size) {
			return TypeMismatchError{
				Expected: typ.String(),
				Got:      fmt.Sprintf("TUPLE with %d items", len(v)),
			}
		}
		for _, elem := range v {
			if err := e.encodeType(*typ.Elem, elem, depth+1); err != nil {
				return err
			}
		}
		return nil
	case schema.KindTypename:
		return e.encodeNamed(typ.Ref, value, depth)
	}
	return TypeMismatchError{
		Expected: "valid type expression",
		Got:      typ.String(),
	}
}

func (e *encoder) encodeNamed(name string, value Value, depth int) error {
	def, ok := e.reg.Definition(name)
	if !ok {
		return schema.UnknownTypeNameError{Name: name}
	}
	switch d := def.(type) {
	case *schema.NewtypeDef:
		// transparent wrapper
		return e.encodeType(d.Type, value, depth)
	case *schema.StructDef:
		v, ok := value.(Struct)
		if !ok {
			return TypeMismatchError{Expected: name, Got: kindOf(value)}
		}
		if len(v) != len(d.Fields) {
			return TypeMismatchError{
				Expected: fmt.Sprintf(
					"%s with %d fields",
					name,
					len(d.Fields),
				),
				Got: fmt.Sprintf("STRUCT with %d fields", len(v)),
			}
		}
		for i := range d.Fields {
			if err := e.encodeType(d.Fields[i].Type, v[i], depth+1); err != nil {
				return err
			}
		}
		return nil
	case *schema.EnumDef:
		v, ok := value.(Enum)
		if !ok {
			return TypeMismatchError{Expected: name, Got: kindOf(value)}
		}
		variant, ok := d.VariantByTag(v.Tag)
		if !ok {
			return InvalidTagError{
				Offset:  len(e.buf),
				Tag:     v.Tag,
				Max:     d.MaxTag(),
				Context: name,
			}
		}
		e.buf = appendUleb128(e.buf, v.Tag)
		return e.encodeVariant(name, variant, v.Value, depth)
	}
	return TypeMismatchError{
		Expected: "STRUCT, ENUM, or NEWTYPESTRUCT definition",
		Got:      name,
	}
}

func (e *encoder) encodeVariant(
	enumName string,
	variant *schema.Variant,
	payload Value,
	depth int,
) error {
	switch variant.Kind {
	case schema.VariantUnit:
		if payload != nil {
			return TypeMismatchError{
				Expected: fmt.Sprintf(
					"unit variant %s.%s",
					enumName,
					variant.Name,
				),
				Got: kindOf(payload),
			}
		}
		return nil
	case schema.VariantNewtype:
		return e.encodeType(variant.Type, payload, depth+1)
	case schema.VariantStruct:
		fields, ok := payload.(Struct)
		if !ok || len(fields) != len(variant.Fields) {
			return TypeMismatchError{
				Expected: fmt.Sprintf(
					"variant %s.%s with %d fields",
					enumName,
					variant.Name,
					len(variant.Fields),
				),
				Got: kindOf(payload),
			}
		}
		for i := range variant.Fields {
			err := e.encodeType(variant.Fields[i].Type, fields[i], depth+1)
			if err != nil {
				return err
			}
		}
		return nil
	case schema.VariantTuple:
		items, ok := payload.(Tuple)
		if !ok || len(items) != len(variant.Items) {
			return TypeMismatchError{
				Expected: fmt.Sprintf(
					"variant %s.%s with %d items",
					enumName,
					variant.Name,
					len(variant.Items),
				),
				Got: kindOf(payload),
			}
		}
		for i := range variant.Items {
			if err := e.encodeType(variant.Items[i], items[i], depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	return TypeMismatchError{
		Expected: "valid variant kind",
		Got:      variant.Kind.String(),
	}
}
