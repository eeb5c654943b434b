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

// Package abi reads script ABI files and assembles transaction payloads
// from them. ABI files are themselves canonical bytes of the ScriptABI
// schema definition, the form the chain's tooling ships them in.
package abi

import (
	"github.com/meridian-chain/go-meridian/chain"
	"github.com/meridian-chain/go-meridian/mcs"
	"github.com/meridian-chain/go-meridian/schema"
)

// Variant tags of the ScriptABI schema definition
const (
	abiTagTransactionScript uint32 = 0
	abiTagScriptFunction    uint32 = 1
)

// ScriptABI describes one callable unit. Implementations are
// TransactionScriptABI for scripts shipped with the transaction and
// ScriptFunctionABI for functions published on-chain.
type ScriptABI interface {
	ScriptName() string
	TypeArguments() []TypeArgumentABI
	Arguments() []ArgumentABI
}

// TypeArgumentABI names one declared type parameter
type TypeArgumentABI struct {
	Name string
}

// ArgumentABI declares one value parameter and the type it must be called
// with
type ArgumentABI struct {
	Name    string
	TypeTag chain.TypeTag
}

// TransactionScriptABI describes a script whose compiled code ships inside
// the transaction payload
type TransactionScriptABI struct {
	Name   string
	Doc    string
	Code   []byte
	TyArgs []TypeArgumentABI
	Args   []ArgumentABI
}

func (a TransactionScriptABI) ScriptName() string { return a.Name }

func (a TransactionScriptABI) TypeArguments() []TypeArgumentABI {
	return a.TyArgs
}

func (a TransactionScriptABI) Arguments() []ArgumentABI { return a.Args }

// ScriptFunctionABI describes a function published on-chain, called by
// module id and function name
type ScriptFunctionABI struct {
	Name       string
	ModuleName chain.ModuleID
	Doc        string
	TyArgs     []TypeArgumentABI
	Args       []ArgumentABI
}

func (a ScriptFunctionABI) ScriptName() string { return a.Name }

func (a ScriptFunctionABI) TypeArguments() []TypeArgumentABI {
	return a.TyArgs
}

func (a ScriptFunctionABI) Arguments() []ArgumentABI { return a.Args }

// DecodeScriptABI parses an ABI file, enforcing the same canonicity rules
// as any other chain value
func DecodeScriptABI(reg *schema.Registry, data []byte) (ScriptABI, error) {
	v, _, err := mcs.DecodeByName(reg, "ScriptABI", data)
	if err != nil {
		return nil, err
	}
	return scriptABIFromValue(v)
}

// EncodeScriptABI serializes an ABI back to its file form
func EncodeScriptABI(reg *schema.Registry, scriptABI ScriptABI) ([]byte, error) {
	v, err := scriptABIToValue(scriptABI)
	if err != nil {
		return nil, err
	}
	return mcs.EncodeByName(reg, "ScriptABI", v)
}

func scriptABIToValue(scriptABI ScriptABI) (mcs.Value, error) {
	switch a := scriptABI.(type) {
	case TransactionScriptABI:
		inner, err := transactionScriptABIToValue(a)
		if err != nil {
			return nil, err
		}
		return mcs.Enum{Tag: abiTagTransactionScript, Value: inner}, nil
	case ScriptFunctionABI:
		inner, err := scriptFunctionABIToValue(a)
		if err != nil {
			return nil, err
		}
		return mcs.Enum{Tag: abiTagScriptFunction, Value: inner}, nil
	case nil:
		return nil, chain.ValueShapeError{
			Type:   "ScriptABI",
			Reason: "nil ABI",
		}
	}
	return nil, chain.ValueShapeError{
		Type:   "ScriptABI",
		Reason: "unsupported implementation",
	}
}

func scriptABIFromValue(v mcs.Value) (ScriptABI, error) {
	e, ok := v.(mcs.Enum)
	if !ok {
		return nil, chain.ValueShapeError{
			Type:   "ScriptABI",
			Reason: "value is not an enum",
		}
	}
	switch e.Tag {
	case abiTagTransactionScript:
		return transactionScriptABIFromValue(e.Value)
	case abiTagScriptFunction:
		return scriptFunctionABIFromValue(e.Value)
	}
	return nil, UnknownABIError{Tag: e.Tag}
}

func transactionScriptABIToValue(a TransactionScriptABI) (mcs.Value, error) {
	args, err := argumentsToValue(a.Args)
	if err != nil {
		return nil, err
	}
	return mcs.Struct{
		mcs.Str(a.Name),
		mcs.Str(a.Doc),
		mcs.Bytes(a.Code),
		typeArgumentsToValue(a.TyArgs),
		args,
	}, nil
}

func transactionScriptABIFromValue(v mcs.Value) (ScriptABI, error) {
	fields, ok := v.(mcs.Struct)
	if !ok || len(fields) != 5 {
		return nil, chain.ValueShapeError{
			Type:   "TransactionScriptABI",
			Reason: "value is not a 5-field struct",
		}
	}
	name, ok := fields[0].(mcs.Str)
	if !ok {
		return nil, chain.ValueShapeError{
			Type:   "TransactionScriptABI",
			Reason: "name is not STR",
		}
	}
	doc, ok := fields[1].(mcs.Str)
	if !ok {
		return nil, chain.ValueShapeError{
			Type:   "TransactionScriptABI",
			Reason: "doc is not STR",
		}
	}
	code, ok := fields[2].(mcs.Bytes)
	if !ok {
		return nil, chain.ValueShapeError{
			Type:   "TransactionScriptABI",
			Reason: "code is not BYTES",
		}
	}
	tyArgs, err := typeArgumentsFromValue(fields[3])
	if err != nil {
		return nil, err
	}
	args, err := argumentsFromValue(fields[4])
	if err != nil {
		return nil, err
	}
	return TransactionScriptABI{
		Name:   string(name),
		Doc:    string(doc),
		Code:   []byte(code),
		TyArgs: tyArgs,
		Args:   args,
	}, nil
}

func scriptFunctionABIToValue(a ScriptFunctionABI) (mcs.Value, error) {
	args, err := argumentsToValue(a.Args)
	if err != nil {
		return nil, err
	}
	return mcs.Struct{
		mcs.Str(a.Name),
		a.ModuleName.ToValue(),
		mcs.Str(a.Doc),
		typeArgumentsToValue(a.TyArgs),
		args,
	}, nil
}

func scriptFunctionABIFromValue(v mcs.Value) (ScriptABI, error) {
	fields, ok := v.(mcs.Struct)
	if !ok || len(fields) != 5 {
		return nil, chain.ValueShapeError{
			Type:   "ScriptFunctionABI",
			Reason: "value is not a 5-field struct",
		}
	}
	name, ok := fields[0].(mcs.Str)
	if !ok {
		return nil, chain.ValueShapeError{
			Type:   "ScriptFunctionABI",
			Reason: "name is not STR",
		}
	}
	module, err := chain.ModuleIDFromValue(fields[1])
	if err != nil {
		return nil, err
	}
	doc, ok := fields[2].(mcs.Str)
	if !ok {
		return nil, chain.ValueShapeError{
			Type:   "ScriptFunctionABI",
			Reason: "doc is not STR",
		}
	}
	tyArgs, err := typeArgumentsFromValue(fields[3])
	if err != nil {
		return nil, err
	}
	args, err := argumentsFromValue(fields[4])
	if err != nil {
		return nil, err
	}
	return ScriptFunctionABI{
		Name:       string(name),
		ModuleName: module,
		Doc:        string(doc),
		TyArgs:     tyArgs,
		Args:       args,
	}, nil
}

func typeArgumentsToValue(tyArgs []TypeArgumentABI) mcs.Value {
	out := make(mcs.Seq, 0, len(tyArgs))
	for _, tyArg := range tyArgs {
		out = append(out, mcs.Struct{mcs.Str(tyArg.Name)})
	}
	return out
}

func typeArgumentsFromValue(v mcs.Value) ([]TypeArgumentABI, error) {
	items, ok := v.(mcs.Seq)
	if !ok {
		return nil, chain.ValueShapeError{
			Type:   "TypeArgumentABI",
			Reason: "ty_args is not SEQ",
		}
	}
	var out []TypeArgumentABI
	for _, item := range items {
		fields, ok := item.(mcs.Struct)
		if !ok || len(fields) != 1 {
			return nil, chain.ValueShapeError{
				Type:   "TypeArgumentABI",
				Reason: "value is not a 1-field struct",
			}
		}
		name, ok := fields[0].(mcs.Str)
		if !ok {
			return nil, chain.ValueShapeError{
				Type:   "TypeArgumentABI",
				Reason: "name is not STR",
			}
		}
		out = append(out, TypeArgumentABI{Name: string(name)})
	}
	return out, nil
}

func argumentsToValue(args []ArgumentABI) (mcs.Value, error) {
	out := make(mcs.Seq, 0, len(args))
	for _, arg := range args {
		tag, err := chain.TypeTagToValue(arg.TypeTag)
		if err != nil {
			return nil, err
		}
		out = append(out, mcs.Struct{mcs.Str(arg.Name), tag})
	}
	return out, nil
}

func argumentsFromValue(v mcs.Value) ([]ArgumentABI, error) {
	items, ok := v.(mcs.Seq)
	if !ok {
		return nil, chain.ValueShapeError{
			Type:   "ArgumentABI",
			Reason: "args is not SEQ",
		}
	}
	var out []ArgumentABI
	for _, item := range items {
		fields, ok := item.(mcs.Struct)
		if !ok || len(fields) != 2 {
			return nil, chain.ValueShapeError{
				Type:   "ArgumentABI",
				Reason: "value is not a 2-field struct",
			}
		}
		name, ok := fields[0].(mcs.Str)
		if !ok {
			return nil, chain.ValueShapeError{
				Type:   "ArgumentABI",
				Reason: "name is not STR",
			}
		}
		tag, err := chain.TypeTagFromValue(fields[1])
		if err != nil {
			return nil, err
		}
		out = append(out, ArgumentABI{Name: string(name), TypeTag: tag})
	}
	return out, nil
}
