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
	"math"
	"unicode/utf8"

	"github.com/meridian-chain/go-meridian/schema"
)

// Decode deserializes data as a value of the type expression typ, resolving
// named references through reg, and reports the number of bytes consumed.
// The whole input must be consumed; anything left over is a
// TrailingBytesError. Decode accepts exactly the byte strings Encode
// produces for typ, so on success the count equals len(data) and decoding
// then re-encoding yields the original input.
func Decode(
	reg *schema.Registry,
	typ schema.Type,
	data []byte,
) (Value, int, error) {
	d := decoder{reg: reg, data: data}
	v, err := d.decodeType(typ, 0)
	if err != nil {
		return nil, d.off, err
	}
	if d.off != len(data) {
		return nil, d.off, TrailingBytesError{Consumed: d.off, Total: len(data)}
	}
	return v, d.off, nil
}

// DecodeByName deserializes data as the definition registered under name
func DecodeByName(
	reg *schema.Registry,
	name string,
	data []byte,
) (Value, int, error) {
	return Decode(reg, schema.Typename(name), data)
}

type decoder struct {
	reg  *schema.Registry
	data []byte
	off  int
}

func (d *decoder) readByte() (byte, error) {
	if d.off >= len(d.data) {
		return 0, UnexpectedEofError{Offset: d.off, Wanted: 1}
	}
	b := d.data[d.off]
	d.off++
	return b, nil
}

func (d *decoder) need(n int) error {
	if remaining := len(d.data) - d.off; remaining < n {
		return UnexpectedEofError{Offset: d.off, Wanted: n - remaining}
	}
	return nil
}

func (d *decoder) readLength() (uint32, error) {
	v, n, err := decodeUleb128(d.data, d.off)
	if err != nil {
		return 0, err
	}
	d.off += n
	return v, nil
}

// checkDeclared validates a wire-declared byte count against the remaining
// input before any of it is consumed
func (d *decoder) checkDeclared(lenOff int, n uint32) error {
	if uint64(n) > uint64(len(d.data)-d.off) {
		return LengthExceedsBufferError{
			Offset:    lenOff,
			Declared:  uint64(n),
			Remaining: len(d.data) - d.off,
		}
	}
	return nil
}

// preallocElems caps slice preallocation for wire-declared element counts
func preallocElems(n uint32) int {
	const max = 4096
	if n > max {
		return max
	}
	return int(n)
}

func (d *decoder) decodeType(typ schema.Type, depth int) (Value, error) {
	if depth > MaxContainerDepth {
		return nil, MaxDepthExceededError{Depth: MaxContainerDepth}
	}
	switch typ.Kind {
	case schema.KindBool:
		b, err := d.readByte()
		if err != nil {
			return nil, err
		}
		switch b {
		case 0:
			return Bool(false), nil
		case 1:
			return Bool(true), nil
		}
		return nil, InvalidTagError{
			Offset:  d.off - 1,
			Tag:     uint32(b),
			Max:     1,
			Context: "BOOL",
		}
	case schema.KindU8:
		b, err := d.readByte()
		if err != nil {
			return nil, err
		}
		return U8(b), nil
	case schema.KindU64:
		if err := d.need(8); err != nil {
			return nil, err
		}
		v := binary.LittleEndian.Uint64(d.data[d.off:])
		d.off += 8
		return U64(v), nil
	case schema.KindU128:
		if err := d.need(16); err != nil {
			return nil, err
		}
		lo := binary.LittleEndian.Uint64(d.data[d.off:])
		hi := binary.LittleEndian.Uint64(d.data[d.off+8:])
		d.off += 16
		return U128{High: hi, Low: lo}, nil
	case schema.KindStr:
		lenOff := d.off
		n, err := d.readLength()
		if err != nil {
			return nil, err
		}
		if err := d.checkDeclared(lenOff, n); err != nil {
			return nil, err
		}
		raw := d.data[d.off : d.off+int(n)]
		if !utf8.Valid(raw) {
			return nil, InvalidUtf8Error{Offset: d.off}
		}
		d.off += int(n)
		return Str(raw), nil
	case schema.KindBytes:
		lenOff := d.off
		n, err := d.readLength()
		if err != nil {
			return nil, err
		}
		if err := d.checkDeclared(lenOff, n); err != nil {
			return nil, err
		}
		out := make(Bytes, n)
		copy(out, d.data[d.off:])
		d.off += int(n)
		return out, nil
	case schema.KindSeq:
		lenOff := d.off
		n, err := d.readLength()
		if err != nil {
			return nil, err
		}
		// an element count is unsatisfiable when even minimally-sized
		// elements would overrun the remaining input
		if min := d.minWidth(*typ.Elem); min > 0 {
			if uint64(n)*uint64(min) > uint64(len(d.data)-d.off) {
				return nil, LengthExceedsBufferError{
					Offset:    lenOff,
					Declared:  uint64(n),
					Remaining: len(d.data) - d.off,
				}
			}
		}
		out := make(Seq, 0, preallocElems(n))
		for i := uint32(0); i < n; i++ {
			elem, err := d.decodeType(*typ.Elem, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, elem)
		}
		return out, nil
	case schema.KindOption:
		b, err := d.readByte()
		if err != nil {
			return nil, err
		}
		switch b {
		case 0:
			return Option{}, nil
		case 1:
			inner, err := d.decodeType(*typ.Elem, depth+1)
			if err != nil {
				return nil, err
			}
			return Option{Value: inner}, nil
		}
		return nil, InvalidTagError{
			Offset:  d.off - 1,
			Tag:     uint32(b),
			Max:     1,
			Context: "OPTION",
		}
	case schema.KindTuple:
		out := make(Tuple, 0, len(typ.Items))
		for _, item := range typ.Items {
			v, err := d.decodeType(item, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case schema.KindTupleArray:
		out := make(Tuple, 0, preallocElems(typ.Size))
		for i := uint32(0); i < typ.Size; i++ {
			v, err := d.decodeType(*typ.Elem, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case schema.KindTypename:
		return d.decodeNamed(typ.Ref, depth)
	}
	return nil, TypeMismatchError{
		Expected: "valid type expression",
		Got:      typ.String(),
	}
}

func (d *decoder) decodeNamed(name string, depth int) (Value, error) {
	def, ok := d.reg.Definition(name)
	if !ok {
		return nil, schema.UnknownTypeNameError{Name: name}
	}
	switch dd := def.(type) {
	case *schema.NewtypeDef:
		// transparent wrapper
		return d.decodeType(dd.Type, depth)
	case *schema.StructDef:
		out := make(Struct, 0, len(dd.Fields))
		for i := range dd.Fields {
			v, err := d.decodeType(dd.Fields[i].Type, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case *schema.EnumDef:
		tagOff := d.off
		tag, err := d.readLength()
		if err != nil {
			return nil, err
		}
		variant, ok := dd.VariantByTag(tag)
		if !ok {
			return nil, InvalidTagError{
				Offset:  tagOff,
				Tag:     tag,
				Max:     dd.MaxTag(),
				Context: name,
			}
		}
		switch variant.Kind {
		case schema.VariantUnit:
			return Enum{Tag: tag}, nil
		case schema.VariantNewtype:
			payload, err := d.decodeType(variant.Type, depth+1)
			if err != nil {
				return nil, err
			}
			return Enum{Tag: tag, Value: payload}, nil
		case schema.VariantStruct:
			fields := make(Struct, 0, len(variant.Fields))
			for i := range variant.Fields {
				v, err := d.decodeType(variant.Fields[i].Type, depth+1)
				if err != nil {
					return nil, err
				}
				fields = append(fields, v)
			}
			return Enum{Tag: tag, Value: fields}, nil
		case schema.VariantTuple:
			items := make(Tuple, 0, len(variant.Items))
			for i := range variant.Items {
				v, err := d.decodeType(variant.Items[i], depth+1)
				if err != nil {
					return nil, err
				}
				items = append(items, v)
			}
			return Enum{Tag: tag, Value: items}, nil
		}
		return nil, TypeMismatchError{
			Expected: "valid variant kind",
			Got:      variant.Kind.String(),
		}
	}
	return nil, TypeMismatchError{
		Expected: "STRUCT, ENUM, or NEWTYPESTRUCT definition",
		Got:      name,
	}
}

// minWidth returns a lower bound on the encoded size of a value of typ.
// Length- and tag-guarded constructors contribute only their prefix byte,
// so the walk never recurses through SEQ, OPTION, or enum definitions and
// terminates on any validated registry.
func (d *decoder) minWidth(typ schema.Type) int {
	switch typ.Kind {
	case schema.KindBool, schema.KindU8:
		return 1
	case schema.KindU64:
		return 8
	case schema.KindU128:
		return 16
	case schema.KindStr, schema.KindBytes, schema.KindSeq, schema.KindOption:
		return 1
	case schema.KindTuple:
		total := 0
		for _, item := range typ.Items {
			total += d.minWidth(item)
		}
		return total
	case schema.KindTupleArray:
		w := d.minWidth(*typ.Elem)
		if w == 0 || typ.Size == 0 {
			return 0
		}
		if uint64(typ.Size) > math.MaxInt32/uint64(w) {
			return math.MaxInt32
		}
		return int(typ.Size) * w
	case schema.KindTypename:
		def, ok := d.reg.Definition(typ.Ref)
		if !ok {
			return 0
		}
		switch dd := def.(type) {
		case *schema.NewtypeDef:
			return d.minWidth(dd.Type)
		case *schema.StructDef:
			total := 0
			for _, f := range dd.Fields {
				total += d.minWidth(f.Type)
			}
			return total
		case *schema.EnumDef:
			return 1
		}
	}
	return 0
}
