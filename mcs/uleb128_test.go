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
	"bytes"
	"encoding/hex"
	"errors"
	"math"
	"testing"
)

var uleb128TestDefs = []struct {
	value uint32
	hex   string
}{
	{0, "00"},
	{1, "01"},
	{127, "7f"},
	{128, "8001"},
	{300, "ac02"},
	{16383, "ff7f"},
	{16384, "808001"},
	{math.MaxUint32, "ffffffff0f"},
}

func TestAppendUleb128(t *testing.T) {
	for _, testDef := range uleb128TestDefs {
		got := appendUleb128(nil, testDef.value)
		if hex.EncodeToString(got) != testDef.hex {
			t.Fatalf(
				"%d did not encode to expected bytes\n  got:    %x\n  wanted: %s",
				testDef.value,
				got,
				testDef.hex,
			)
		}
	}
}

func TestDecodeUleb128(t *testing.T) {
	for _, testDef := range uleb128TestDefs {
		data, err := hex.DecodeString(testDef.hex)
		if err != nil {
			t.Fatalf("failed to decode test hex: %s", err)
		}
		value, n, err := decodeUleb128(data, 0)
		if err != nil {
			t.Fatalf("%s: failed to decode: %s", testDef.hex, err)
		}
		if value != testDef.value {
			t.Fatalf(
				"%s: unexpected value: got %d, wanted %d",
				testDef.hex,
				value,
				testDef.value,
			)
		}
		if n != len(data) {
			t.Fatalf(
				"%s: unexpected length: got %d, wanted %d",
				testDef.hex,
				n,
				len(data),
			)
		}
	}
}

func TestDecodeUleb128Offset(t *testing.T) {
	data := []byte{0xff, 0xac, 0x02, 0xff}
	value, n, err := decodeUleb128(data, 1)
	if err != nil {
		t.Fatalf("failed to decode: %s", err)
	}
	if value != 300 || n != 2 {
		t.Fatalf("unexpected result: value %d, length %d", value, n)
	}
}

var uleb128ErrorTestDefs = []struct {
	label       string
	hex         string
	expectedErr error
}{
	{"empty", "", ErrUnexpectedEof},
	{"bare continuation", "80", ErrUnexpectedEof},
	{"padded small value", "8500", ErrNonCanonicalVarint},
	{"padded zero", "8000", ErrNonCanonicalVarint},
	{"padded with middle groups", "85808000", ErrNonCanonicalVarint},
	{"six bytes", "808080808001", ErrVarintOverflow},
	{"value over 32 bits", "8080808010", ErrVarintOverflow},
	{"max plus one", "8080808080", ErrVarintOverflow},
}

func TestDecodeUleb128Errors(t *testing.T) {
	for _, testDef := range uleb128ErrorTestDefs {
		data, err := hex.DecodeString(testDef.hex)
		if err != nil {
			t.Fatalf("failed to decode test hex: %s", err)
		}
		_, _, err = decodeUleb128(data, 0)
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

// Every decodable varint re-encodes to the identical bytes
func TestUleb128Canonical(t *testing.T) {
	for _, testDef := range uleb128TestDefs {
		data, err := hex.DecodeString(testDef.hex)
		if err != nil {
			t.Fatalf("failed to decode test hex: %s", err)
		}
		value, n, err := decodeUleb128(data, 0)
		if err != nil {
			t.Fatalf("%s: failed to decode: %s", testDef.hex, err)
		}
		if !bytes.Equal(appendUleb128(nil, value), data[:n]) {
			t.Fatalf("%s: re-encode mismatch", testDef.hex)
		}
	}
}
