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

package abi_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/meridian-chain/go-meridian/abi"
	"github.com/meridian-chain/go-meridian/chain"
	"github.com/meridian-chain/go-meridian/internal/test"
	"github.com/meridian-chain/go-meridian/mcs"
)

func testPayee(t *testing.T) chain.AccountAddress {
	t.Helper()
	payee, err := chain.ParseAccountAddress(
		"0x0102030405060708090a0b0c0d0e0f10",
	)
	if err != nil {
		t.Fatalf("failed to parse address: %s", err)
	}
	return payee
}

func mrdTypeTag(t *testing.T) chain.TypeTag {
	t.Helper()
	address, err := chain.ParseAccountAddress(
		"0x00000000000000000000000000000001",
	)
	if err != nil {
		t.Fatalf("failed to parse address: %s", err)
	}
	return chain.TypeTagStruct{
		Tag: chain.StructTag{
			Address: address,
			Module:  "MRD",
			Name:    "MRD",
		},
	}
}

func TestBuildScriptFunction(t *testing.T) {
	reg := chain.NewRegistry()
	payload, err := abi.BuildScriptFunction(
		reg,
		transferABI(t),
		[]chain.TypeTag{mrdTypeTag(t)},
		[]chain.TransactionArgument{
			chain.ArgAddress(testPayee(t)),
			chain.ArgU128(mcs.NewU128(100)),
		},
	)
	if err != nil {
		t.Fatalf("failed to build: %s", err)
	}
	data, err := mcs.EncodeByName(reg, "TransactionPayload", payload)
	if err != nil {
		t.Fatalf("failed to encode: %s", err)
	}
	wanted := test.DecodeHexString(
		// ScriptFunction variant
		"02" +
			// module 0x1::TransferScripts
			"00000000000000000000000000000001" +
			"0f5472616e7366657253637269707473" +
			// function "transfer"
			"087472616e73666572" +
			// one type argument: 0x1::MRD::MRD
			"01" +
			"0700000000000000000000000000000001034d5244034d524400" +
			// two arguments, each a canonical encoding
			"02" +
			"100102030405060708090a0b0c0d0e0f10" +
			"1064000000000000000000000000000000",
	)
	if !bytes.Equal(data, wanted) {
		t.Fatalf("unexpected encoding\n  got:    %x\n  wanted: %x", data, wanted)
	}
}

func TestBuildScriptFunctionArityErrors(t *testing.T) {
	reg := chain.NewRegistry()
	fnABI := transferABI(t)
	args := []chain.TransactionArgument{
		chain.ArgAddress(testPayee(t)),
		chain.ArgU128(mcs.NewU128(100)),
	}

	_, err := abi.BuildScriptFunction(reg, fnABI, nil, args)
	if !errors.Is(err, abi.ErrArityMismatch) {
		t.Fatalf("expected arity error for missing type argument, got %v", err)
	}
	wanted := "type argument arity mismatch: ABI declares 1, 0 supplied"
	if err.Error() != wanted {
		t.Fatalf(
			"unexpected error\n  got:    %s\n  wanted: %s",
			err.Error(),
			wanted,
		)
	}

	_, err = abi.BuildScriptFunction(
		reg,
		fnABI,
		[]chain.TypeTag{mrdTypeTag(t)},
		args[:1],
	)
	if !errors.Is(err, abi.ErrArityMismatch) {
		t.Fatalf("expected arity error for missing argument, got %v", err)
	}
	wanted = "argument arity mismatch: ABI declares 2, 1 supplied"
	if err.Error() != wanted {
		t.Fatalf(
			"unexpected error\n  got:    %s\n  wanted: %s",
			err.Error(),
			wanted,
		)
	}
}

func TestBuildScriptFunctionTypeMismatch(t *testing.T) {
	reg := chain.NewRegistry()
	_, err := abi.BuildScriptFunction(
		reg,
		transferABI(t),
		[]chain.TypeTag{mrdTypeTag(t)},
		[]chain.TransactionArgument{
			chain.ArgAddress(testPayee(t)),
			chain.ArgU64(100), // ABI declares u128
		},
	)
	if !errors.Is(err, abi.ErrArgumentTypeMismatch) {
		t.Fatalf("expected type mismatch error, got %v", err)
	}
	wanted := `argument "amount" at position 1: ABI declares u128, u64 supplied`
	if err.Error() != wanted {
		t.Fatalf(
			"unexpected error\n  got:    %s\n  wanted: %s",
			err.Error(),
			wanted,
		)
	}
}

func TestBuildTransactionScript(t *testing.T) {
	reg := chain.NewRegistry()
	scriptABI := abi.TransactionScriptABI{
		Name: "accept_token",
		Doc:  "Accept a token type",
		Code: []byte{0xa1, 0x1c, 0xeb, 0x0b},
		TyArgs: []abi.TypeArgumentABI{
			{Name: "TokenType"},
		},
		Args: []abi.ArgumentABI{
			{Name: "account", TypeTag: chain.TypeTagSigner{}},
			{Name: "enable", TypeTag: chain.TypeTagBool{}},
		},
	}
	payload, err := abi.BuildTransactionScript(
		reg,
		scriptABI,
		[]chain.TypeTag{mrdTypeTag(t)},
		[]chain.TransactionArgument{chain.ArgBool(true)},
	)
	if err != nil {
		t.Fatalf("failed to build: %s", err)
	}
	data, err := mcs.EncodeByName(reg, "TransactionPayload", payload)
	if err != nil {
		t.Fatalf("failed to encode: %s", err)
	}
	wanted := test.DecodeHexString(
		// Script variant
		"00" +
			// code
			"04a11ceb0b" +
			// one type argument: 0x1::MRD::MRD
			"01" +
			"0700000000000000000000000000000001034d5244034d524400" +
			// one argument: Bool(true) as a TransactionArgument value
			"01" +
			"0501",
	)
	if !bytes.Equal(data, wanted) {
		t.Fatalf("unexpected encoding\n  got:    %x\n  wanted: %x", data, wanted)
	}

	// scripts carry TransactionArgument values, so a mismatch fails the
	// same way script functions do
	_, err = abi.BuildTransactionScript(
		reg,
		scriptABI,
		[]chain.TypeTag{mrdTypeTag(t)},
		[]chain.TransactionArgument{chain.ArgU8(1)},
	)
	if !errors.Is(err, abi.ErrArgumentTypeMismatch) {
		t.Fatalf("expected type mismatch error, got %v", err)
	}
}

// TestBuildRawTransaction drives the full builder flow and pins the exact
// canonical bytes of the assembled transaction
func TestBuildRawTransaction(t *testing.T) {
	reg := chain.NewRegistry()
	scriptABI := abi.TransactionScriptABI{
		Name: "empty_script",
		Doc:  "Does nothing",
		Code: []byte{0xa1, 0x1c, 0xeb, 0x0b},
	}
	payload, err := abi.BuildTransactionScript(reg, scriptABI, nil, nil)
	if err != nil {
		t.Fatalf("failed to build payload: %s", err)
	}
	rawTxn, err := abi.BuildRawTransaction(
		reg,
		payload,
		testPayee(t),
		3,
		10000,
		1,
		"0x1::MRD::MRD",
		3600,
		chain.ChainID(251),
	)
	if err != nil {
		t.Fatalf("failed to build transaction: %s", err)
	}
	data, err := mcs.EncodeByName(reg, "RawUserTransaction", rawTxn)
	if err != nil {
		t.Fatalf("failed to encode: %s", err)
	}
	wanted := test.DecodeHexString(
		"0102030405060708090a0b0c0d0e0f10" +
			"0300000000000000" +
			"0004a11ceb0b0000" +
			"1027000000000000" +
			"0100000000000000" +
			"0d3078313a3a4d52443a3a4d5244" +
			"100e000000000000" +
			"fb",
	)
	if !bytes.Equal(data, wanted) {
		t.Fatalf("unexpected encoding\n  got:    %x\n  wanted: %x", data, wanted)
	}
}

func TestBuildRawTransactionBadPayload(t *testing.T) {
	reg := chain.NewRegistry()
	// a payload value that does not match the TransactionPayload layout
	// fails at build time
	_, err := abi.BuildRawTransaction(
		reg,
		mcs.Str("not a payload"),
		testPayee(t),
		0,
		0,
		0,
		"0x1::MRD::MRD",
		0,
		chain.ChainID(251),
	)
	if err == nil {
		t.Fatalf("no error for malformed payload")
	}
	if !errors.Is(err, mcs.ErrTypeMismatch) {
		t.Fatalf("expected type mismatch error, got %v", err)
	}
}
