// Copyright 2025 Meridian Foundation
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

package chain

import (
	"fmt"
	"strings"

	"github.com/meridian-chain/go-meridian/mcs"
	"github.com/meridian-chain/go-meridian/schema"
)

// Variant tags of the TypeTag schema definition
const (
	typeTagBool    uint32 = 0
	typeTagU8      uint32 = 1
	typeTagU64     uint32 = 2
	typeTagU128    uint32 = 3
	typeTagAddress uint32 = 4
	typeTagSigner  uint32 = 5
	typeTagVector  uint32 = 6
	typeTagStruct  uint32 = 7
)

// TypeTag identifies a runtime type in the Meridian VM type system. The
// implementations mirror the TypeTag schema variants.
type TypeTag interface {
	fmt.Stringer
	typeTag()
}

type (
	TypeTagBool    struct{}
	TypeTagU8      struct{}
	TypeTagU64     struct{}
	TypeTagU128    struct{}
	TypeTagAddress struct{}
	TypeTagSigner  struct{}
	// TypeTagVector is a homogeneous list of Elem
	TypeTagVector struct{ Elem TypeTag }
	// TypeTagStruct names a concrete struct instantiation
	TypeTagStruct struct{ Tag StructTag }
)

func (TypeTagBool) typeTag()    {}
func (TypeTagU8) typeTag()      {}
func (TypeTagU64) typeTag()     {}
func (TypeTagU128) typeTag()    {}
func (TypeTagAddress) typeTag() {}
func (TypeTagSigner) typeTag()  {}
func (TypeTagVector) typeTag()  {}
func (TypeTagStruct) typeTag()  {}

func (TypeTagBool) String() string    { return "bool" }
func (TypeTagU8) String() string      { return "u8" }
func (TypeTagU64) String() string     { return "u64" }
func (TypeTagU128) String() string    { return "u128" }
func (TypeTagAddress) String() string { return "address" }
func (TypeTagSigner) String() string  { return "signer" }

func (t TypeTagVector) String() string {
	if t.Elem == nil {
		return "vector<?>"
	}
	return fmt.Sprintf("vector<%s>", t.Elem)
}

func (t TypeTagStruct) String() string {
	return t.Tag.String()
}

// StructTag names a struct type instantiated at concrete type parameters
type StructTag struct {
	Address    AccountAddress
	Module     string
	Name       string
	TypeParams []TypeTag
}

func (t StructTag) String() string {
	base := fmt.Sprintf("%s::%s::%s", t.Address, t.Module, t.Name)
	if len(t.TypeParams) == 0 {
		return base
	}
	params := make([]string, len(t.TypeParams))
	for i, p := range t.TypeParams {
		params[i] = p.String()
	}
	return base + "<" + strings.Join(params, ", ") + ">"
}

// TypeTagToValue converts a type tag to its TypeTag schema value
func TypeTagToValue(tag TypeTag) (mcs.Value, error) {
	switch t := tag.(type) {
	case TypeTagBool:
		return mcs.Enum{Tag: typeTagBool}, nil
	case TypeTagU8:
		return mcs.Enum{Tag: typeTagU8}, nil
	case TypeTagU64:
		return mcs.Enum{Tag: typeTagU64}, nil
	case TypeTagU128:
		return mcs.Enum{Tag: typeTagU128}, nil
	case TypeTagAddress:
		return mcs.Enum{Tag: typeTagAddress}, nil
	case TypeTagSigner:
		return mcs.Enum{Tag: typeTagSigner}, nil
	case TypeTagVector:
		if t.Elem == nil {
			return nil, ValueShapeError{
				Type:   "TypeTag",
				Reason: "vector without an element type",
			}
		}
		elem, err := TypeTagToValue(t.Elem)
		if err != nil {
			return nil, err
		}
		return mcs.Enum{Tag: typeTagVector, Value: elem}, nil
	case TypeTagStruct:
		inner, err := structTagToValue(t.Tag)
		if err != nil {
			return nil, err
		}
		return mcs.Enum{Tag: typeTagStruct, Value: inner}, nil
	case nil:
		return nil, ValueShapeError{Type: "TypeTag", Reason: "nil type tag"}
	}
	return nil, ValueShapeError{
		Type:   "TypeTag",
		Reason: fmt.Sprintf("unsupported implementation %T", tag),
	}
}

func structTagToValue(tag StructTag) (mcs.Value, error) {
	params := make(mcs.Seq, 0, len(tag.TypeParams))
	for _, p := range tag.TypeParams {
		v, err := TypeTagToValue(p)
		if err != nil {
			return nil, err
		}
		params = append(params, v)
	}
	return mcs.Struct{
		tag.Address.ToValue(),
		mcs.Str(tag.Module),
		mcs.Str(tag.Name),
		params,
	}, nil
}

// TypeTagFromValue converts a decoded TypeTag schema value to a type tag
func TypeTagFromValue(v mcs.Value) (TypeTag, error) {
	e, ok := v.(mcs.Enum)
	if !ok {
		return nil, ValueShapeError{
			Type:   "TypeTag",
			Reason: "value is not an enum",
		}
	}
	switch e.Tag {
	case typeTagBool:
		return TypeTagBool{}, nil
	case typeTagU8:
		return TypeTagU8{}, nil
	case typeTagU64:
		return TypeTagU64{}, nil
	case typeTagU128:
		return TypeTagU128{}, nil
	case typeTagAddress:
		return TypeTagAddress{}, nil
	case typeTagSigner:
		return TypeTagSigner{}, nil
	case typeTagVector:
		elem, err := TypeTagFromValue(e.Value)
		if err != nil {
			return nil, err
		}
		return TypeTagVector{Elem: elem}, nil
	case typeTagStruct:
		tag, err := structTagFromValue(e.Value)
		if err != nil {
			return nil, err
		}
		return TypeTagStruct{Tag: tag}, nil
	}
	return nil, ValueShapeError{
		Type:   "TypeTag",
		Reason: fmt.Sprintf("unknown variant tag %d", e.Tag),
	}
}

func structTagFromValue(v mcs.Value) (StructTag, error) {
	fields, ok := v.(mcs.Struct)
	if !ok || len(fields) != 4 {
		return StructTag{}, ValueShapeError{
			Type:   "StructTag",
			Reason: "value is not a 4-field struct",
		}
	}
	address, err := AccountAddressFromValue(fields[0])
	if err != nil {
		return StructTag{}, err
	}
	module, ok := fields[1].(mcs.Str)
	if !ok {
		return StructTag{}, ValueShapeError{
			Type:   "StructTag",
			Reason: "module is not STR",
		}
	}
	name, ok := fields[2].(mcs.Str)
	if !ok {
		return StructTag{}, ValueShapeError{
			Type:   "StructTag",
			Reason: "name is not STR",
		}
	}
	rawParams, ok := fields[3].(mcs.Seq)
	if !ok {
		return StructTag{}, ValueShapeError{
			Type:   "StructTag",
			Reason: "type_params is not SEQ",
		}
	}
	var params []TypeTag
	for _, raw := range rawParams {
		p, err := TypeTagFromValue(raw)
		if err != nil {
			return StructTag{}, err
		}
		params = append(params, p)
	}
	return StructTag{
		Address:    address,
		Module:     string(module),
		Name:       string(name),
		TypeParams: params,
	}, nil
}

// Variant tags of the TransactionArgument schema definition
const (
	argTagU8       uint32 = 0
	argTagU64      uint32 = 1
	argTagU128     uint32 = 2
	argTagAddress  uint32 = 3
	argTagU8Vector uint32 = 4
	argTagBool     uint32 = 5
)

// TransactionArgument is a literal argument to a script-style payload
type TransactionArgument interface {
	// TypeTag returns the literal's type, used to match supplied arguments
	// against declared parameters
	TypeTag() TypeTag
	txnArgument()
}

type (
	ArgU8       uint8
	ArgU64      uint64
	ArgU128     mcs.U128
	ArgAddress  AccountAddress
	ArgU8Vector []byte
	ArgBool     bool
)

func (ArgU8) txnArgument()       {}
func (ArgU64) txnArgument()      {}
func (ArgU128) txnArgument()     {}
func (ArgAddress) txnArgument()  {}
func (ArgU8Vector) txnArgument() {}
func (ArgBool) txnArgument()     {}

func (ArgU8) TypeTag() TypeTag       { return TypeTagU8{} }
func (ArgU64) TypeTag() TypeTag      { return TypeTagU64{} }
func (ArgU128) TypeTag() TypeTag     { return TypeTagU128{} }
func (ArgAddress) TypeTag() TypeTag  { return TypeTagAddress{} }
func (ArgU8Vector) TypeTag() TypeTag { return TypeTagVector{Elem: TypeTagU8{}} }
func (ArgBool) TypeTag() TypeTag     { return TypeTagBool{} }

// TransactionArgumentToValue converts a literal to its TransactionArgument
// schema value
func TransactionArgumentToValue(arg TransactionArgument) (mcs.Value, error) {
	switch a := arg.(type) {
	case ArgU8:
		return mcs.Enum{Tag: argTagU8, Value: mcs.U8(a)}, nil
	case ArgU64:
		return mcs.Enum{Tag: argTagU64, Value: mcs.U64(a)}, nil
	case ArgU128:
		return mcs.Enum{Tag: argTagU128, Value: mcs.U128(a)}, nil
	case ArgAddress:
		return mcs.Enum{
			Tag:   argTagAddress,
			Value: AccountAddress(a).ToValue(),
		}, nil
	case ArgU8Vector:
		return mcs.Enum{Tag: argTagU8Vector, Value: mcs.Bytes(a)}, nil
	case ArgBool:
		return mcs.Enum{Tag: argTagBool, Value: mcs.Bool(a)}, nil
	case nil:
		return nil, ValueShapeError{
			Type:   "TransactionArgument",
			Reason: "nil argument",
		}
	}
	return nil, ValueShapeError{
		Type:   "TransactionArgument",
		Reason: fmt.Sprintf("unsupported implementation %T", arg),
	}
}

// TransactionArgumentFromValue converts a decoded TransactionArgument
// schema value to a literal
func TransactionArgumentFromValue(v mcs.Value) (TransactionArgument, error) {
	e, ok := v.(mcs.Enum)
	if !ok {
		return nil, ValueShapeError{
			Type:   "TransactionArgument",
			Reason: "value is not an enum",
		}
	}
	switch e.Tag {
	case argTagU8:
		payload, ok := e.Value.(mcs.U8)
		if !ok {
			return nil, ValueShapeError{
				Type:   "TransactionArgument",
				Reason: "U8 payload mismatch",
			}
		}
		return ArgU8(payload), nil
	case argTagU64:
		payload, ok := e.Value.(mcs.U64)
		if !ok {
			return nil, ValueShapeError{
				Type:   "TransactionArgument",
				Reason: "U64 payload mismatch",
			}
		}
		return ArgU64(payload), nil
	case argTagU128:
		payload, ok := e.Value.(mcs.U128)
		if !ok {
			return nil, ValueShapeError{
				Type:   "TransactionArgument",
				Reason: "U128 payload mismatch",
			}
		}
		return ArgU128(payload), nil
	case argTagAddress:
		address, err := AccountAddressFromValue(e.Value)
		if err != nil {
			return nil, err
		}
		return ArgAddress(address), nil
	case argTagU8Vector:
		payload, ok := e.Value.(mcs.Bytes)
		if !ok {
			return nil, ValueShapeError{
				Type:   "TransactionArgument",
				Reason: "U8Vector payload mismatch",
			}
		}
		return ArgU8Vector(payload), nil
	case argTagBool:
		payload, ok := e.Value.(mcs.Bool)
		if !ok {
			return nil, ValueShapeError{
				Type:   "TransactionArgument",
				Reason: "Bool payload mismatch",
			}
		}
		return ArgBool(payload), nil
	}
	return nil, ValueShapeError{
		Type:   "TransactionArgument",
		Reason: fmt.Sprintf("unknown variant tag %d", e.Tag),
	}
}

// EncodeArgumentValue serializes the argument's value itself, without the
// TransactionArgument wrapper. Script function payloads carry arguments
// this way: a SEQ of BYTES holding one canonical encoding per argument.
func EncodeArgumentValue(
	reg *schema.Registry,
	arg TransactionArgument,
) ([]byte, error) {
	switch a := arg.(type) {
	case ArgU8:
		return mcs.Encode(reg, schema.U8(), mcs.U8(a))
	case ArgU64:
		return mcs.Encode(reg, schema.U64(), mcs.U64(a))
	case ArgU128:
		return mcs.Encode(reg, schema.U128(), mcs.U128(a))
	case ArgAddress:
		return mcs.EncodeByName(
			reg,
			"AccountAddress",
			AccountAddress(a).ToValue(),
		)
	case ArgU8Vector:
		return mcs.Encode(reg, schema.Bytes(), mcs.Bytes(a))
	case ArgBool:
		return mcs.Encode(reg, schema.Bool(), mcs.Bool(a))
	case nil:
		return nil, ValueShapeError{
			Type:   "TransactionArgument",
			Reason: "nil argument",
		}
	}
	return nil, ValueShapeError{
		Type:   "TransactionArgument",
		Reason: fmt.Sprintf("unsupported implementation %T", arg),
	}
}
