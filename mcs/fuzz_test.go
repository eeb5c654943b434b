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

package mcs

import (
	"bytes"
	"testing"

	"github.com/meridian-chain/go-meridian/schema"
)

func fuzzRegistry() *schema.Registry {
	reg, err := schema.NewRegistry(map[string]schema.Definition{
		"Sample": &schema.StructDef{
			Fields: []schema.Field{
				{Name: "flag", Type: schema.Bool()},
				{Name: "count", Type: schema.U64()},
				{Name: "amount", Type: schema.U128()},
				{Name: "name", Type: schema.Str()},
				{Name: "payload", Type: schema.Bytes()},
				{Name: "tags", Type: schema.Seq(schema.U8())},
				{Name: "op", Type: schema.Typename("Op")},
				{Name: "addr", Type: schema.TupleArray(schema.U8(), 4)},
				{Name: "note", Type: schema.Option(schema.Str())},
			},
		},
		"Op": &schema.EnumDef{
			Variants: []schema.Variant{
				{Tag: 0, Name: "Noop", Kind: schema.VariantUnit},
				{
					Tag:  1,
					Name: "Put",
					Kind: schema.VariantNewtype,
					Type: schema.Bytes(),
				},
			},
		},
	})
	if err != nil {
		panic(err)
	}
	return reg
}

func FuzzDecode(f *testing.F) {
	reg := fuzzRegistry()
	typ := schema.Typename("Sample")
	// Seed with a valid encoding plus a few near misses
	seed, err := Encode(reg, typ, Struct{
		Bool(true),
		U64(300),
		U128{High: 1, Low: 2},
		Str("ok"),
		Bytes{0xca, 0xfe},
		Seq{U8(1), U8(2)},
		Enum{Tag: 1, Value: Bytes{0xff}},
		Tuple{U8(1), U8(2), U8(3), U8(4)},
		Some(Str("n")),
	})
	if err != nil {
		f.Fatalf("failed to encode seed: %s", err)
	}
	f.Add(seed)
	f.Add([]byte{})
	f.Add([]byte{0x00})
	f.Add([]byte{0x85, 0x00})
	f.Add(bytes.Repeat([]byte{0xff}, 32))
	f.Add(append(append([]byte{}, seed...), 0x00))

	f.Fuzz(func(t *testing.T, data []byte) {
		value, n, err := Decode(reg, typ, data)
		if err != nil {
			return
		}
		if n != len(data) {
			t.Fatalf("accepted input consumed %d of %d bytes", n, len(data))
		}
		// anything accepted must re-encode to the identical bytes
		out, err := Encode(reg, typ, value)
		if err != nil {
			t.Fatalf("failed to re-encode accepted input: %s", err)
		}
		if !bytes.Equal(out, data) {
			t.Fatalf(
				"re-encode mismatch\n  got:    %x\n  wanted: %x",
				out,
				data,
			)
		}
	})
}

func FuzzDecodeUleb128(f *testing.F) {
	f.Add([]byte{0x00})
	f.Add([]byte{0x7f})
	f.Add([]byte{0x80, 0x01})
	f.Add([]byte{0xac, 0x02})
	f.Add([]byte{0xff, 0xff, 0xff, 0xff, 0x0f})
	f.Add([]byte{0x85, 0x00})

	f.Fuzz(func(t *testing.T, data []byte) {
		value, n, err := decodeUleb128(data, 0)
		if err != nil {
			return
		}
		// only minimal encodings are accepted, so the consumed prefix must
		// match the re-encoding exactly
		if !bytes.Equal(appendUleb128(nil, value), data[:n]) {
			t.Fatalf("re-encode mismatch for %x", data[:n])
		}
	})
}
