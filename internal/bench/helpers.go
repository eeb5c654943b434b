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

// Package bench provides benchmark fixtures for the canonical codec and
// the chain data model.
package bench

import (
	"bytes"
	"crypto/ed25519"

	"github.com/meridian-chain/go-meridian/chain"
	"github.com/meridian-chain/go-meridian/mcs"
	"github.com/meridian-chain/go-meridian/schema"
)

// TxnFixture contains a signed transaction value together with its
// canonical bytes.
type TxnFixture struct {
	Registry *schema.Registry
	RawBytes []byte
	Value    mcs.Value
	Bytes    []byte
}

// LoadTxnFixture builds a deterministic signed script transaction.
func LoadTxnFixture() (*TxnFixture, error) {
	reg := chain.NewRegistry()
	key := ed25519.NewKeyFromSeed(
		bytes.Repeat([]byte{0x42}, ed25519.SeedSize),
	)
	sender := chain.AddressFromPublicKey(key.Public().(ed25519.PublicKey))
	payload := mcs.Enum{
		Tag: chain.PayloadTagScript,
		Value: mcs.Struct{
			mcs.Bytes(bytes.Repeat([]byte{0xa1, 0x1c, 0xeb, 0x0b}, 32)),
			mcs.Seq{},
			mcs.Seq{},
		},
	}
	rawTxn := chain.RawTransactionValue(
		sender,
		3,
		payload,
		10000,
		1,
		"0x1::MRD::MRD",
		3600,
		chain.ChainID(251),
	)
	rawBytes, err := mcs.EncodeByName(reg, "RawUserTransaction", rawTxn)
	if err != nil {
		return nil, err
	}
	signedTxn, err := chain.SignRawTransaction(rawTxn, key)
	if err != nil {
		return nil, err
	}
	data, err := mcs.EncodeByName(reg, "SignedUserTransaction", signedTxn)
	if err != nil {
		return nil, err
	}
	return &TxnFixture{
		Registry: reg,
		RawBytes: rawBytes,
		Value:    signedTxn,
		Bytes:    data,
	}, nil
}

// MustLoadTxnFixture builds the transaction fixture and panics on error.
// Use this in benchmark setup code.
func MustLoadTxnFixture() *TxnFixture {
	fixture, err := LoadTxnFixture()
	if err != nil {
		panic("failed to load txn fixture: " + err.Error())
	}
	return fixture
}

// ProofFixture contains a state proof value together with its canonical
// bytes.
type ProofFixture struct {
	Registry *schema.Registry
	Value    mcs.Value
	Bytes    []byte
}

// LoadProofFixture builds a deterministic state proof with a realistic
// sibling count.
func LoadProofFixture() (*ProofFixture, error) {
	reg := chain.NewRegistry()
	key := chain.HashOf("AccountState", []byte{0x01})
	valueHash := chain.HashOf("AccountState", []byte{0x02})
	var accountSiblings, stateSiblings mcs.Seq
	for i := byte(0); i < 24; i++ {
		sibling := chain.HashOf("SparseMerkleNode", []byte{i})
		accountSiblings = append(accountSiblings, sibling.ToValue())
		if i < 8 {
			stateSiblings = append(stateSiblings, sibling.ToValue())
		}
	}
	proof := mcs.Struct{
		mcs.Some(mcs.Bytes(bytes.Repeat([]byte{0xca, 0xfe}, 64))),
		mcs.Struct{
			mcs.Some(mcs.Tuple{key.ToValue(), valueHash.ToValue()}),
			accountSiblings,
		},
		mcs.Struct{
			mcs.None(),
			stateSiblings,
		},
	}
	data, err := mcs.EncodeByName(reg, "StateProof", proof)
	if err != nil {
		return nil, err
	}
	return &ProofFixture{Registry: reg, Value: proof, Bytes: data}, nil
}

// MustLoadProofFixture builds the proof fixture and panics on error. Use
// this in benchmark setup code.
func MustLoadProofFixture() *ProofFixture {
	fixture, err := LoadProofFixture()
	if err != nil {
		panic("failed to load proof fixture: " + err.Error())
	}
	return fixture
}
