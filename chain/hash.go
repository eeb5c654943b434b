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
	"hash"
	"strings"
	"sync"

	"github.com/meridian-chain/go-meridian/mcs"
	"golang.org/x/crypto/sha3"
)

const (
	// HashValueSize is the byte length of every Meridian hash
	HashValueSize = 32

	// hashPrefix namespaces Meridian type salts away from other chains
	hashPrefix = "MERIDIAN::"
)

// HashValue is a SHA3-256 digest as used for block, transaction, and state
// identifiers
type HashValue [HashValueSize]byte

func NewHashValue(data []byte) HashValue {
	h := HashValue{}
	copy(h[:], data)
	return h
}

// HashValueFromBytes converts raw bytes to a hash, enforcing the chain
// contract that hashes are exactly 32 bytes
func HashValueFromBytes(data []byte) (HashValue, error) {
	if len(data) != HashValueSize {
		return HashValue{}, InvalidHashError{
			Value:  hex.EncodeToString(data),
			Reason: fmt.Sprintf("expected %d bytes, got %d", HashValueSize, len(data)),
		}
	}
	return NewHashValue(data), nil
}

// ParseHashValue parses a hex string, with or without a 0x prefix, into a
// hash, enforcing the 32-byte contract
func ParseHashValue(s string) (HashValue, error) {
	data, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return HashValue{}, InvalidHashError{
			Value:  s,
			Reason: "not a hexadecimal string",
		}
	}
	if len(data) != HashValueSize {
		return HashValue{}, InvalidHashError{
			Value:  s,
			Reason: fmt.Sprintf("expected %d bytes, got %d", HashValueSize, len(data)),
		}
	}
	return NewHashValue(data), nil
}

func (h HashValue) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

func (h HashValue) Bytes() []byte {
	return h[:]
}

func (h HashValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

func (h *HashValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseHashValue(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// ToValue wraps the hash for the HashValue schema definition
func (h HashValue) ToValue() mcs.Value {
	return mcs.Bytes(h[:])
}

// HashValueFromValue extracts a hash from a decoded HashValue value,
// enforcing the 32-byte contract
func HashValueFromValue(v mcs.Value) (HashValue, error) {
	raw, ok := v.(mcs.Bytes)
	if !ok {
		return HashValue{}, ValueShapeError{
			Type:   "HashValue",
			Reason: "value is not BYTES",
		}
	}
	return HashValueFromBytes(raw)
}

var saltCache sync.Map // type name -> HashValue

// typeSalt derives the domain-separation salt for a named type: the
// SHA3-256 digest of "MERIDIAN::" followed by the type name
func typeSalt(name string) HashValue {
	if cached, ok := saltCache.Load(name); ok {
		return cached.(HashValue)
	}
	salt := HashValue(sha3.Sum256([]byte(hashPrefix + name)))
	saltCache.Store(name, salt)
	return salt
}

// PrefixedHasher returns a SHA3-256 hasher pre-seeded with the
// domain-separation salt for the named type. Writing a value's canonical
// bytes and summing yields the value's chain identifier.
func PrefixedHasher(name string) hash.Hash {
	h := sha3.New256()
	salt := typeSalt(name)
	h.Write(salt[:])
	return h
}

// HashOf computes the salted digest of canonical bytes for the named type.
// Two values share a digest exactly when their type name and canonical
// bytes agree.
func HashOf(name string, data []byte) HashValue {
	h := PrefixedHasher(name)
	h.Write(data)
	return NewHashValue(h.Sum(nil))
}

// BlockHeaderHash computes the block id from a header's canonical bytes
func BlockHeaderHash(data []byte) HashValue {
	return HashOf("BlockHeader", data)
}

// SignedTransactionHash computes the transaction id from a signed
// transaction's canonical bytes
func SignedTransactionHash(data []byte) HashValue {
	return HashOf("SignedUserTransaction", data)
}

// RawTransactionSigningMessage builds the byte string a sender signs: the
// RawUserTransaction salt followed by the transaction's canonical bytes.
// Salting binds signatures to the type, so bytes that collide with another
// type's encoding cannot reuse a signature.
func RawTransactionSigningMessage(rawTxnBytes []byte) []byte {
	salt := typeSalt("RawUserTransaction")
	msg := make([]byte, 0, len(salt)+len(rawTxnBytes))
	msg = append(msg, salt[:]...)
	return append(msg, rawTxnBytes...)
}
