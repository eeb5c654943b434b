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
	"strings"

	"github.com/meridian-chain/go-meridian/mcs"
	"github.com/meridian-chain/go-meridian/schema"
)

// AccessPath names a single slot of on-chain state under an account
type AccessPath struct {
	Address AccountAddress
	Path    []byte
}

func (p AccessPath) String() string {
	return p.Address.String() + "/0x" + hex.EncodeToString(p.Path)
}

// ParseAccessPath parses the address/path form produced by String
func ParseAccessPath(s string) (AccessPath, error) {
	addrPart, pathPart, found := strings.Cut(s, "/")
	if !found {
		return AccessPath{}, InvalidAddressError{
			Value:  s,
			Reason: "access path has no / separator",
		}
	}
	address, err := ParseAccountAddress(addrPart)
	if err != nil {
		return AccessPath{}, err
	}
	path, err := hex.DecodeString(strings.TrimPrefix(pathPart, "0x"))
	if err != nil {
		return AccessPath{}, InvalidAddressError{
			Value:  s,
			Reason: "access path data is not hexadecimal",
		}
	}
	return AccessPath{Address: address, Path: path}, nil
}

// ToValue builds the AccessPath schema value
func (p AccessPath) ToValue() mcs.Value {
	return mcs.Struct{p.Address.ToValue(), mcs.Bytes(p.Path)}
}

// SparseMerkleLeaf is the element a sparse Merkle proof terminates in: the
// key searched for and the digest of the value found there
type SparseMerkleLeaf struct {
	Key       HashValue
	ValueHash HashValue
}

// SparseMerkleProof carries the authentication path for one tree lookup.
// A nil Leaf proves absence.
type SparseMerkleProof struct {
	Leaf     *SparseMerkleLeaf
	Siblings []HashValue
}

// StateProof authenticates one account state slot against a state root:
// the optional account blob, the account's proof in the global tree, and
// the slot's proof in the account tree
type StateProof struct {
	AccountState      []byte
	AccountProof      SparseMerkleProof
	AccountStateProof SparseMerkleProof
}

// ValidStateProofBytes checks the proof envelope contract: the blob must
// decode as a StateProof and must be longer than a single hash, since any
// real proof carries at least a root and structure around it
func ValidStateProofBytes(reg *schema.Registry, blob []byte) error {
	if len(blob) <= HashValueSize {
		return ProofEnvelopeError{
			Size:   len(blob),
			Reason: "no longer than a single hash",
		}
	}
	if _, _, err := mcs.DecodeByName(reg, "StateProof", blob); err != nil {
		return ProofEnvelopeError{
			Size:   len(blob),
			Reason: "does not decode as a StateProof",
			Err:    err,
		}
	}
	return nil
}

// DecodeStateProof enforces the envelope contract and extracts the proof
func DecodeStateProof(reg *schema.Registry, blob []byte) (StateProof, error) {
	if len(blob) <= HashValueSize {
		return StateProof{}, ProofEnvelopeError{
			Size:   len(blob),
			Reason: "no longer than a single hash",
		}
	}
	v, _, err := mcs.DecodeByName(reg, "StateProof", blob)
	if err != nil {
		return StateProof{}, ProofEnvelopeError{
			Size:   len(blob),
			Reason: "does not decode as a StateProof",
			Err:    err,
		}
	}
	return stateProofFromValue(v)
}

func stateProofFromValue(v mcs.Value) (StateProof, error) {
	fields, ok := v.(mcs.Struct)
	if !ok || len(fields) != 3 {
		return StateProof{}, ValueShapeError{
			Type:   "StateProof",
			Reason: "value is not a 3-field struct",
		}
	}
	var out StateProof
	blob, ok := fields[0].(mcs.Option)
	if !ok {
		return StateProof{}, ValueShapeError{
			Type:   "StateProof",
			Reason: "account_state is not OPTION",
		}
	}
	if blob.IsSome() {
		raw, ok := blob.Value.(mcs.Bytes)
		if !ok {
			return StateProof{}, ValueShapeError{
				Type:   "StateProof",
				Reason: "account_state is not BYTES",
			}
		}
		out.AccountState = []byte(raw)
	}
	var err error
	if out.AccountProof, err = sparseMerkleProofFromValue(fields[1]); err != nil {
		return StateProof{}, err
	}
	out.AccountStateProof, err = sparseMerkleProofFromValue(fields[2])
	if err != nil {
		return StateProof{}, err
	}
	return out, nil
}

func sparseMerkleProofFromValue(v mcs.Value) (SparseMerkleProof, error) {
	fields, ok := v.(mcs.Struct)
	if !ok || len(fields) != 2 {
		return SparseMerkleProof{}, ValueShapeError{
			Type:   "SparseMerkleProof",
			Reason: "value is not a 2-field struct",
		}
	}
	var out SparseMerkleProof
	leaf, ok := fields[0].(mcs.Option)
	if !ok {
		return SparseMerkleProof{}, ValueShapeError{
			Type:   "SparseMerkleProof",
			Reason: "leaf is not OPTION",
		}
	}
	if leaf.IsSome() {
		pair, ok := leaf.Value.(mcs.Tuple)
		if !ok || len(pair) != 2 {
			return SparseMerkleProof{}, ValueShapeError{
				Type:   "SparseMerkleProof",
				Reason: "leaf is not a 2-tuple",
			}
		}
		key, err := HashValueFromValue(pair[0])
		if err != nil {
			return SparseMerkleProof{}, err
		}
		valueHash, err := HashValueFromValue(pair[1])
		if err != nil {
			return SparseMerkleProof{}, err
		}
		out.Leaf = &SparseMerkleLeaf{Key: key, ValueHash: valueHash}
	}
	siblings, ok := fields[1].(mcs.Seq)
	if !ok {
		return SparseMerkleProof{}, ValueShapeError{
			Type:   "SparseMerkleProof",
			Reason: "siblings is not SEQ",
		}
	}
	for _, sibling := range siblings {
		h, err := HashValueFromValue(sibling)
		if err != nil {
			return SparseMerkleProof{}, err
		}
		out.Siblings = append(out.Siblings, h)
	}
	return out, nil
}
