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

package chain_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/meridian-chain/go-meridian/chain"
	"github.com/meridian-chain/go-meridian/mcs"
)

func TestAccessPathRoundTrip(t *testing.T) {
	address, err := chain.ParseAccountAddress(
		"0x0102030405060708090a0b0c0d0e0f10",
	)
	if err != nil {
		t.Fatalf("failed to parse address: %s", err)
	}
	orig := chain.AccessPath{
		Address: address,
		Path:    []byte{0x00, 0xaa, 0xbb},
	}
	wanted := "0x0102030405060708090a0b0c0d0e0f10/0x00aabb"
	if orig.String() != wanted {
		t.Fatalf("unexpected rendering: got %s, wanted %s", orig, wanted)
	}
	decoded, err := chain.ParseAccessPath(orig.String())
	if err != nil {
		t.Fatalf("failed to parse access path: %s", err)
	}
	if decoded.Address != orig.Address ||
		!bytes.Equal(decoded.Path, orig.Path) {
		t.Fatalf("round trip mismatch: got %s, wanted %s", decoded, orig)
	}
}

func TestParseAccessPathErrors(t *testing.T) {
	testDefs := []string{
		"0x0102030405060708090a0b0c0d0e0f10",        // no separator
		"0x0102/0x00",                               // short address
		"0x0102030405060708090a0b0c0d0e0f10/0xzzzz", // bad path hex
	}
	for _, testDef := range testDefs {
		if _, err := chain.ParseAccessPath(testDef); !errors.Is(err, chain.ErrInvalidAddress) {
			t.Fatalf("expected address error for %q, got %v", testDef, err)
		}
	}
}

// proofValue builds a StateProof value with an inclusion proof for the
// account and an absence proof for the state slot
func proofValue(t *testing.T) mcs.Value {
	t.Helper()
	key, err := chain.ParseHashValue(
		"0x161bcaf442f4af23972d49b1a6440d47e02795a15e8c5f0b62fcee860c5b00d4",
	)
	if err != nil {
		t.Fatalf("failed to parse hash: %s", err)
	}
	valueHash := chain.HashOf("AccountState", []byte{0x01})
	sibling := chain.HashOf("SparseMerkleNode", []byte{0x02})
	return mcs.Struct{
		mcs.Some(mcs.Bytes{0xca, 0xfe, 0xba, 0xbe}),
		mcs.Struct{
			mcs.Some(mcs.Tuple{key.ToValue(), valueHash.ToValue()}),
			mcs.Seq{sibling.ToValue(), sibling.ToValue()},
		},
		mcs.Struct{
			mcs.None(),
			mcs.Seq{},
		},
	}
}

func TestValidStateProofBytes(t *testing.T) {
	reg := chain.NewRegistry()
	blob, err := mcs.EncodeByName(reg, "StateProof", proofValue(t))
	if err != nil {
		t.Fatalf("failed to encode: %s", err)
	}
	if err := chain.ValidStateProofBytes(reg, blob); err != nil {
		t.Fatalf("failed to validate: %s", err)
	}

	// a proof of all-absent entries is a valid encoding, but it fits
	// inside a single hash and the envelope contract rejects it
	minimal, err := mcs.EncodeByName(
		reg,
		"StateProof",
		mcs.Struct{
			mcs.None(),
			mcs.Struct{mcs.None(), mcs.Seq{}},
			mcs.Struct{mcs.None(), mcs.Seq{}},
		},
	)
	if err != nil {
		t.Fatalf("failed to encode: %s", err)
	}
	if len(minimal) > chain.HashValueSize {
		t.Fatalf("minimal proof is unexpectedly long: %d bytes", len(minimal))
	}
	err = chain.ValidStateProofBytes(reg, minimal)
	if !errors.Is(err, chain.ErrInvalidProof) {
		t.Fatalf("expected proof error for minimal proof, got %v", err)
	}

	// garbage that happens to be long enough must fail to decode
	garbage := bytes.Repeat([]byte{0xff}, 40)
	err = chain.ValidStateProofBytes(reg, garbage)
	if !errors.Is(err, chain.ErrInvalidProof) {
		t.Fatalf("expected proof error for garbage, got %v", err)
	}

	// trailing bytes after a valid proof break the envelope
	err = chain.ValidStateProofBytes(reg, append(blob, 0x00))
	if !errors.Is(err, chain.ErrInvalidProof) {
		t.Fatalf("expected proof error for trailing bytes, got %v", err)
	}
}

func TestDecodeStateProof(t *testing.T) {
	reg := chain.NewRegistry()
	blob, err := mcs.EncodeByName(reg, "StateProof", proofValue(t))
	if err != nil {
		t.Fatalf("failed to encode: %s", err)
	}
	proof, err := chain.DecodeStateProof(reg, blob)
	if err != nil {
		t.Fatalf("failed to decode: %s", err)
	}
	if !bytes.Equal(proof.AccountState, []byte{0xca, 0xfe, 0xba, 0xbe}) {
		t.Fatalf("unexpected account state: %x", proof.AccountState)
	}
	if proof.AccountProof.Leaf == nil {
		t.Fatalf("account proof lost its leaf")
	}
	wantedKey := "0x161bcaf442f4af23972d49b1a6440d47e02795a15e8c5f0b62fcee860c5b00d4"
	if proof.AccountProof.Leaf.Key.String() != wantedKey {
		t.Fatalf(
			"unexpected leaf key: got %s, wanted %s",
			proof.AccountProof.Leaf.Key,
			wantedKey,
		)
	}
	if len(proof.AccountProof.Siblings) != 2 {
		t.Fatalf(
			"unexpected sibling count: got %d, wanted 2",
			len(proof.AccountProof.Siblings),
		)
	}
	if proof.AccountStateProof.Leaf != nil {
		t.Fatalf("state slot proof should prove absence")
	}
	if len(proof.AccountStateProof.Siblings) != 0 {
		t.Fatalf(
			"unexpected sibling count: got %d, wanted 0",
			len(proof.AccountStateProof.Siblings),
		)
	}
	if _, err := chain.DecodeStateProof(reg, blob[:16]); !errors.Is(err, chain.ErrInvalidProof) {
		t.Fatalf("expected proof error for truncated blob, got %v", err)
	}
}
