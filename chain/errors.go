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
	"errors"
	"fmt"
)

// Sentinel errors for the chain type helpers so callers can use errors.Is
var (
	ErrInvalidHash      = errors.New("invalid hash value")
	ErrInvalidAddress   = errors.New("invalid account address")
	ErrInvalidPublicKey = errors.New("invalid public key")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidProof     = errors.New("invalid state proof")
	ErrValueShape       = errors.New("unexpected value shape")
)

// InvalidHashError indicates input that does not parse as a 32-byte hash
type InvalidHashError struct {
	Value  string
	Reason string
}

func (e InvalidHashError) Error() string {
	return fmt.Sprintf("invalid hash value %q: %s", e.Value, e.Reason)
}

func (InvalidHashError) Is(target error) bool {
	return target == ErrInvalidHash
}

// InvalidAddressError indicates input that does not parse as a 16-byte
// account address
type InvalidAddressError struct {
	Value  string
	Reason string
}

func (e InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid account address %q: %s", e.Value, e.Reason)
}

func (InvalidAddressError) Is(target error) bool {
	return target == ErrInvalidAddress
}

// InvalidPublicKeyError indicates key material that is not a canonical
// Ed25519 point encoding
type InvalidPublicKeyError struct {
	Reason string
}

func (e InvalidPublicKeyError) Error() string {
	return fmt.Sprintf("invalid public key: %s", e.Reason)
}

func (InvalidPublicKeyError) Is(target error) bool {
	return target == ErrInvalidPublicKey
}

// ProofEnvelopeError indicates a state proof blob that fails the envelope
// contract: proofs must decode as a StateProof and be longer than a single
// hash
type ProofEnvelopeError struct {
	Size   int
	Reason string
	Err    error
}

func (e ProofEnvelopeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"state proof envelope (%d bytes): %s: %v",
			e.Size,
			e.Reason,
			e.Err,
		)
	}
	return fmt.Sprintf("state proof envelope (%d bytes): %s", e.Size, e.Reason)
}

func (e ProofEnvelopeError) Unwrap() error { return e.Err }

func (ProofEnvelopeError) Is(target error) bool {
	return target == ErrInvalidProof
}

// ValueShapeError indicates a decoded value whose shape does not match the
// Go type it is being extracted into
type ValueShapeError struct {
	Type   string
	Reason string
}

func (e ValueShapeError) Error() string {
	return fmt.Sprintf("cannot extract %s: %s", e.Type, e.Reason)
}

func (ValueShapeError) Is(target error) bool {
	return target == ErrValueShape
}
