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
	"github.com/meridian-chain/go-meridian/mcs"
)

// ChainID distinguishes Meridian networks. Every transaction commits to
// one, so a transaction signed for a test network cannot replay on the
// main network.
type ChainID uint8

// ToValue wraps the id for the ChainId schema definition
func (c ChainID) ToValue() mcs.Value {
	return mcs.U8(c)
}

// ChainIDFromValue extracts a chain id from a decoded ChainId value
func ChainIDFromValue(v mcs.Value) (ChainID, error) {
	id, ok := v.(mcs.U8)
	if !ok {
		return 0, ValueShapeError{Type: "ChainId", Reason: "value is not U8"}
	}
	return ChainID(id), nil
}

// ModuleID names a code module under its publishing account
type ModuleID struct {
	Address AccountAddress
	Name    string
}

func (m ModuleID) String() string {
	return m.Address.String() + "::" + m.Name
}

// ToValue builds the ModuleId schema value
func (m ModuleID) ToValue() mcs.Value {
	return mcs.Struct{m.Address.ToValue(), mcs.Str(m.Name)}
}

// ModuleIDFromValue extracts a module id from a decoded ModuleId value
func ModuleIDFromValue(v mcs.Value) (ModuleID, error) {
	fields, ok := v.(mcs.Struct)
	if !ok || len(fields) != 2 {
		return ModuleID{}, ValueShapeError{
			Type:   "ModuleId",
			Reason: "value is not a 2-field struct",
		}
	}
	address, err := AccountAddressFromValue(fields[0])
	if err != nil {
		return ModuleID{}, err
	}
	name, ok := fields[1].(mcs.Str)
	if !ok {
		return ModuleID{}, ValueShapeError{
			Type:   "ModuleId",
			Reason: "name is not STR",
		}
	}
	return ModuleID{Address: address, Name: string(name)}, nil
}

// Variant tags of the TransactionPayload schema definition
const (
	PayloadTagScript         uint32 = 0
	PayloadTagPackage        uint32 = 1
	PayloadTagScriptFunction uint32 = 2
)

// RawTransactionValue assembles a RawUserTransaction value in schema field
// order, ready for encoding and signing. The payload must be a
// TransactionPayload value, normally built by the abi package.
func RawTransactionValue(
	sender AccountAddress,
	sequenceNumber uint64,
	payload mcs.Value,
	maxGasAmount uint64,
	gasUnitPrice uint64,
	gasTokenCode string,
	expirationTimestampSecs uint64,
	chainID ChainID,
) mcs.Value {
	return mcs.Struct{
		sender.ToValue(),
		mcs.U64(sequenceNumber),
		payload,
		mcs.U64(maxGasAmount),
		mcs.U64(gasUnitPrice),
		mcs.Str(gasTokenCode),
		mcs.U64(expirationTimestampSecs),
		chainID.ToValue(),
	}
}
