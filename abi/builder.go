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

package abi

import (
	"reflect"

	"github.com/meridian-chain/go-meridian/chain"
	"github.com/meridian-chain/go-meridian/mcs"
	"github.com/meridian-chain/go-meridian/schema"
)

// BuildTransactionScript assembles a Script payload from an ABI: the
// compiled code with type arguments and arguments substituted
// positionally. Script payloads carry arguments as TransactionArgument
// values.
func BuildTransactionScript(
	reg *schema.Registry,
	scriptABI TransactionScriptABI,
	typeArgs []chain.TypeTag,
	args []chain.TransactionArgument,
) (mcs.Value, error) {
	if err := checkArity(
		"type argument",
		len(scriptABI.TyArgs),
		len(typeArgs),
	); err != nil {
		return nil, err
	}
	if err := checkArguments(valueParams(scriptABI.Args), args); err != nil {
		return nil, err
	}
	tyArgValues, err := typeTagsToValue(typeArgs)
	if err != nil {
		return nil, err
	}
	argValues := make(mcs.Seq, 0, len(args))
	for _, arg := range args {
		v, err := chain.TransactionArgumentToValue(arg)
		if err != nil {
			return nil, err
		}
		argValues = append(argValues, v)
	}
	payload := mcs.Enum{
		Tag: chain.PayloadTagScript,
		Value: mcs.Struct{
			mcs.Bytes(scriptABI.Code),
			tyArgValues,
			argValues,
		},
	}
	return checkedPayload(reg, payload)
}

// BuildScriptFunction assembles a ScriptFunction payload from an ABI.
// Script function payloads carry each argument's canonical encoding rather
// than a TransactionArgument value.
func BuildScriptFunction(
	reg *schema.Registry,
	fnABI ScriptFunctionABI,
	typeArgs []chain.TypeTag,
	args []chain.TransactionArgument,
) (mcs.Value, error) {
	if err := checkArity(
		"type argument",
		len(fnABI.TyArgs),
		len(typeArgs),
	); err != nil {
		return nil, err
	}
	if err := checkArguments(valueParams(fnABI.Args), args); err != nil {
		return nil, err
	}
	tyArgValues, err := typeTagsToValue(typeArgs)
	if err != nil {
		return nil, err
	}
	argValues := make(mcs.Seq, 0, len(args))
	for _, arg := range args {
		data, err := chain.EncodeArgumentValue(reg, arg)
		if err != nil {
			return nil, err
		}
		argValues = append(argValues, mcs.Bytes(data))
	}
	payload := mcs.Enum{
		Tag: chain.PayloadTagScriptFunction,
		Value: mcs.Struct{
			fnABI.ModuleName.ToValue(),
			mcs.Str(fnABI.Name),
			tyArgValues,
			argValues,
		},
	}
	return checkedPayload(reg, payload)
}

// BuildRawTransaction composes the RawUserTransaction value for a payload,
// ready for signing. No authenticator is attached; signing happens in the
// chain package or an external signer.
func BuildRawTransaction(
	reg *schema.Registry,
	payload mcs.Value,
	sender chain.AccountAddress,
	sequenceNumber uint64,
	maxGasAmount uint64,
	gasUnitPrice uint64,
	gasTokenCode string,
	expirationTimestampSecs uint64,
	chainID chain.ChainID,
) (mcs.Value, error) {
	rawTxn := chain.RawTransactionValue(
		sender,
		sequenceNumber,
		payload,
		maxGasAmount,
		gasUnitPrice,
		gasTokenCode,
		expirationTimestampSecs,
		chainID,
	)
	// encode once now so a malformed payload surfaces here, not at
	// signing time
	if _, err := mcs.EncodeByName(reg, "RawUserTransaction", rawTxn); err != nil {
		return nil, err
	}
	return rawTxn, nil
}

// valueParams returns the parameters a caller must supply. Leading signer
// parameters are satisfied by the VM from the transaction sender, so
// callers never pass them.
func valueParams(declared []ArgumentABI) []ArgumentABI {
	for i, param := range declared {
		if _, ok := param.TypeTag.(chain.TypeTagSigner); !ok {
			return declared[i:]
		}
	}
	return nil
}

func checkArity(kind string, declared, supplied int) error {
	if declared != supplied {
		return ArityMismatchError{
			Kind:     kind,
			Declared: declared,
			Supplied: supplied,
		}
	}
	return nil
}

func checkArguments(
	declared []ArgumentABI,
	supplied []chain.TransactionArgument,
) error {
	if err := checkArity("argument", len(declared), len(supplied)); err != nil {
		return err
	}
	for i, param := range declared {
		declaredTag := "unknown"
		if param.TypeTag != nil {
			declaredTag = param.TypeTag.String()
		}
		arg := supplied[i]
		if arg == nil {
			return ArgumentTypeMismatchError{
				Name:     param.Name,
				Position: i,
				Declared: declaredTag,
				Supplied: "nothing",
			}
		}
		// struct-typed and trailing signer parameters can never match a
		// literal argument, so they fail here too
		if !reflect.DeepEqual(param.TypeTag, arg.TypeTag()) {
			return ArgumentTypeMismatchError{
				Name:     param.Name,
				Position: i,
				Declared: declaredTag,
				Supplied: arg.TypeTag().String(),
			}
		}
	}
	return nil
}

func typeTagsToValue(typeArgs []chain.TypeTag) (mcs.Seq, error) {
	out := make(mcs.Seq, 0, len(typeArgs))
	for _, tag := range typeArgs {
		v, err := chain.TypeTagToValue(tag)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// checkedPayload encodes the assembled payload once so a build can only
// return values the wire format accepts
func checkedPayload(reg *schema.Registry, payload mcs.Value) (mcs.Value, error) {
	if _, err := mcs.EncodeByName(reg, "TransactionPayload", payload); err != nil {
		return nil, err
	}
	return payload, nil
}
