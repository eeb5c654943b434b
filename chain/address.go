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
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/meridian-chain/go-meridian/mcs"
)

const (
	// AccountAddressSize is the byte length of an account address
	AccountAddressSize = 16

	// ReceiptIdentifierHRP is the bech32 human-readable part of the
	// user-facing address form
	ReceiptIdentifierHRP = "mrd"
)

// AccountAddress identifies an on-chain account
type AccountAddress [AccountAddressSize]byte

// AccountAddressFromBytes converts raw bytes to an address, enforcing the
// 16-byte length
func AccountAddressFromBytes(data []byte) (AccountAddress, error) {
	if len(data) != AccountAddressSize {
		return AccountAddress{}, InvalidAddressError{
			Value: hex.EncodeToString(data),
			Reason: fmt.Sprintf(
				"expected %d bytes, got %d",
				AccountAddressSize,
				len(data),
			),
		}
	}
	var a AccountAddress
	copy(a[:], data)
	return a, nil
}

// ParseAccountAddress parses a hex string, with or without a 0x prefix
func ParseAccountAddress(s string) (AccountAddress, error) {
	data, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return AccountAddress{}, InvalidAddressError{
			Value:  s,
			Reason: "not a hexadecimal string",
		}
	}
	if len(data) != AccountAddressSize {
		return AccountAddress{}, InvalidAddressError{
			Value: s,
			Reason: fmt.Sprintf(
				"expected %d bytes, got %d",
				AccountAddressSize,
				len(data),
			),
		}
	}
	var a AccountAddress
	copy(a[:], data)
	return a, nil
}

func (a AccountAddress) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (a AccountAddress) Bytes() []byte {
	return a[:]
}

func (a AccountAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *AccountAddress) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAccountAddress(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ReceiptIdentifier encodes the address in the checksummed bech32 form
// wallets display and accept
func (a AccountAddress) ReceiptIdentifier() string {
	// Convert data to base32 and encode as bech32
	convData, err := bech32.ConvertBits(a[:], 8, 5, true)
	if err != nil {
		panic(
			fmt.Sprintf("unexpected error converting data to base32: %s", err),
		)
	}
	encoded, err := bech32.Encode(ReceiptIdentifierHRP, convData)
	if err != nil {
		panic(fmt.Sprintf("unexpected error encoding data as bech32: %s", err))
	}
	return encoded
}

// ParseReceiptIdentifier decodes a bech32 receipt identifier back to the
// account address it names
func ParseReceiptIdentifier(s string) (AccountAddress, error) {
	var a AccountAddress
	hrp, data, err := bech32.DecodeNoLimit(s)
	if err != nil {
		return a, InvalidAddressError{Value: s, Reason: err.Error()}
	}
	if hrp != ReceiptIdentifierHRP {
		return a, InvalidAddressError{
			Value:  s,
			Reason: fmt.Sprintf("unexpected prefix %q", hrp),
		}
	}
	decoded, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return a, InvalidAddressError{Value: s, Reason: err.Error()}
	}
	if len(decoded) != AccountAddressSize {
		return a, InvalidAddressError{
			Value: s,
			Reason: fmt.Sprintf(
				"expected %d bytes, got %d",
				AccountAddressSize,
				len(decoded),
			),
		}
	}
	copy(a[:], decoded)
	return a, nil
}

// ToValue expands the address for the AccountAddress schema definition, a
// fixed array of 16 bytes
func (a AccountAddress) ToValue() mcs.Value {
	items := make(mcs.Tuple, AccountAddressSize)
	for i, b := range a {
		items[i] = mcs.U8(b)
	}
	return items
}

// AccountAddressFromValue extracts an address from a decoded
// AccountAddress value
func AccountAddressFromValue(v mcs.Value) (AccountAddress, error) {
	items, ok := v.(mcs.Tuple)
	if !ok || len(items) != AccountAddressSize {
		return AccountAddress{}, ValueShapeError{
			Type:   "AccountAddress",
			Reason: "value is not a 16-byte array",
		}
	}
	var a AccountAddress
	for i, item := range items {
		b, ok := item.(mcs.U8)
		if !ok {
			return AccountAddress{}, ValueShapeError{
				Type:   "AccountAddress",
				Reason: "array element is not U8",
			}
		}
		a[i] = byte(b)
	}
	return a, nil
}
