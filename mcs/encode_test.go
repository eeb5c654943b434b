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

package mcs_test

import (
	"errors"
	"testing"

	"github.com/meridian-chain/go-meridian/mcs"
	"github.com/meridian-chain/go-meridian/schema"
)

var encodeErrorTestDefs = []struct {
	label       string
	typ         schema.Type
	value       mcs.Value
	expectedErr error
}{
	{
		label:       "primitive mismatch",
		typ:         schema.Bool(),
		value:       mcs.U64(1),
		expectedErr: mcs.ErrTypeMismatch,
	},
	{
		label:       "nil value",
		typ:         schema.U8(),
		value:       nil,
		expectedErr: mcs.ErrTypeMismatch,
	},
	{
		label:       "seq mismatch",
		typ:         schema.Seq(schema.U8()),
		value:       mcs.Tuple{mcs.U8(1)},
		expectedErr: mcs.ErrTypeMismatch,
	},
	{
		label:       "tuple arity mismatch",
		typ:         schema.Tuple(schema.U8(), schema.U8()),
		value:       mcs.Tuple{mcs.U8(1)},
		expectedErr: mcs.ErrTypeMismatch,
	},
	{
		label:       "tuple array size mismatch",
		typ:         schema.Typename("Account"),
		value:       mcs.Tuple{mcs.U8(1), mcs.U8(2)},
		expectedErr: mcs.ErrTypeMismatch,
	},
	{
		label:       "struct arity mismatch",
		typ:         schema.Typename("Pair"),
		value:       mcs.Struct{mcs.U64(1)},
		expectedErr: mcs.ErrTypeMismatch,
	},
	{
		label:       "struct field mismatch",
		typ:         schema.Typename("Pair"),
		value:       mcs.Struct{mcs.Str("wrong"), mcs.Str("order")},
		expectedErr: mcs.ErrTypeMismatch,
	},
	{
		label:       "unit variant with payload",
		typ:         schema.Typename("WriteOp"),
		value:       mcs.Enum{Tag: 0, Value: mcs.U8(1)},
		expectedErr: mcs.ErrTypeMismatch,
	},
	{
		label:       "undeclared enum tag",
		typ:         schema.Typename("WriteOp"),
		value:       mcs.Enum{Tag: 9},
		expectedErr: mcs.ErrInvalidTag,
	},
	{
		label:       "string with invalid utf-8",
		typ:         schema.Str(),
		value:       mcs.Str("\xff\xfe"),
		expectedErr: mcs.ErrInvalidUtf8,
	},
	{
		label:       "unknown type name",
		typ:         schema.Typename("Missing"),
		value:       mcs.U8(1),
		expectedErr: schema.ErrUnknownTypeName,
	},
}

func TestEncodeErrors(t *testing.T) {
	reg := testRegistry(t)
	for _, testDef := range encodeErrorTestDefs {
		_, err := mcs.Encode(reg, testDef.typ, testDef.value)
		if err == nil {
			t.Fatalf("%s: expected error, got none", testDef.label)
		}
		if !errors.Is(err, testDef.expectedErr) {
			t.Fatalf(
				"%s: unexpected error: got %v, wanted %v",
				testDef.label,
				err,
				testDef.expectedErr,
			)
		}
	}
}

// Encoding is deterministic: repeated encodes of the same value produce
// identical bytes
func TestEncodeDeterministic(t *testing.T) {
	reg := testRegistry(t)
	value := mcs.Struct{mcs.U64(42), mcs.Str("determinism")}
	first, err := mcs.EncodeByName(reg, "Pair", value)
	if err != nil {
		t.Fatalf("failed to encode: %s", err)
	}
	for i := 0; i < 16; i++ {
		again, err := mcs.EncodeByName(reg, "Pair", value)
		if err != nil {
			t.Fatalf("failed to encode: %s", err)
		}
		if string(first) != string(again) {
			t.Fatalf(
				"encoding not deterministic\n  got:    %x\n  wanted: %x",
				again,
				first,
			)
		}
	}
}
