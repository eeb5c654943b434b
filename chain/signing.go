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
	"bytes"
	"crypto/ed25519"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/meridian-chain/go-meridian/mcs"
	"golang.org/x/crypto/sha3"
)

// Variant tags of the TransactionAuthenticator schema definition
const (
	authTagEd25519      uint32 = 0
	authTagMultiEd25519 uint32 = 1
)

// Signature scheme ids, appended to key material when deriving
// authentication keys
const (
	ed25519Scheme      byte = 0
	multiEd25519Scheme byte = 1
)

// ValidateEd25519PublicKey checks that data is a canonical encoding of a
// valid curve point of full order. The node rejects transactions carrying
// keys that fail this check, so it runs before signing rather than after
// submission.
func ValidateEd25519PublicKey(data []byte) error {
	if len(data) != ed25519.PublicKeySize {
		return InvalidPublicKeyError{
			Reason: fmt.Sprintf(
				"expected %d bytes, got %d",
				ed25519.PublicKeySize,
				len(data),
			),
		}
	}
	point, err := new(edwards25519.Point).SetBytes(data)
	if err != nil {
		return InvalidPublicKeyError{Reason: "not a valid curve point"}
	}
	// SetBytes accepts non-canonical encodings of valid points
	if !bytes.Equal(point.Bytes(), data) {
		return InvalidPublicKeyError{Reason: "not a canonical point encoding"}
	}
	isSmallOrder := new(edwards25519.Point).
		MultByCofactor(point).
		Equal(edwards25519.NewIdentityPoint()) == 1
	if isSmallOrder {
		return InvalidPublicKeyError{Reason: "point is of small order"}
	}
	return nil
}

// AuthenticationKey derives an account's authentication key from its
// Ed25519 public key: the SHA3-256 digest of the key material followed by
// the scheme id byte.
func AuthenticationKey(publicKey ed25519.PublicKey) HashValue {
	h := sha3.New256()
	h.Write(publicKey)
	h.Write([]byte{ed25519Scheme})
	return NewHashValue(h.Sum(nil))
}

// AddressFromPublicKey derives the account address controlled by a public
// key: the low 16 bytes of its authentication key
func AddressFromPublicKey(publicKey ed25519.PublicKey) AccountAddress {
	authKey := AuthenticationKey(publicKey)
	var a AccountAddress
	copy(a[:], authKey[HashValueSize-AccountAddressSize:])
	return a
}

// Ed25519AuthenticatorValue builds a TransactionAuthenticator value from
// raw key and signature material
func Ed25519AuthenticatorValue(publicKey, signature []byte) mcs.Value {
	return mcs.Enum{
		Tag: authTagEd25519,
		Value: mcs.Struct{
			mcs.Bytes(publicKey),
			mcs.Bytes(signature),
		},
	}
}

// SignRawTransaction signs a RawUserTransaction value and assembles the
// SignedUserTransaction value: the raw transaction paired with an Ed25519
// authenticator over the prefixed signing message.
func SignRawTransaction(
	rawTxn mcs.Value,
	key ed25519.PrivateKey,
) (mcs.Value, error) {
	publicKey, ok := key.Public().(ed25519.PublicKey)
	if !ok || len(key) != ed25519.PrivateKeySize {
		return nil, InvalidPublicKeyError{Reason: "malformed private key"}
	}
	if err := ValidateEd25519PublicKey(publicKey); err != nil {
		return nil, err
	}
	rawBytes, err := mcs.EncodeByName(NewRegistry(), "RawUserTransaction", rawTxn)
	if err != nil {
		return nil, err
	}
	signature := ed25519.Sign(key, RawTransactionSigningMessage(rawBytes))
	return mcs.Struct{
		rawTxn,
		Ed25519AuthenticatorValue(publicKey, signature),
	}, nil
}

// VerifySignedTransaction checks a SignedUserTransaction value: the key
// must be canonical and the signature must cover the raw transaction's
// signing message. Only Ed25519 authenticators carry enough information to
// verify here; multi-key envelopes are accepted on-chain only.
func VerifySignedTransaction(signedTxn mcs.Value) error {
	fields, ok := signedTxn.(mcs.Struct)
	if !ok || len(fields) != 2 {
		return ValueShapeError{
			Type:   "SignedUserTransaction",
			Reason: "value is not a 2-field struct",
		}
	}
	auth, ok := fields[1].(mcs.Enum)
	if !ok {
		return ValueShapeError{
			Type:   "TransactionAuthenticator",
			Reason: "value is not an enum",
		}
	}
	if auth.Tag != authTagEd25519 {
		return ValueShapeError{
			Type: "TransactionAuthenticator",
			Reason: fmt.Sprintf(
				"cannot verify authenticator variant %d locally",
				auth.Tag,
			),
		}
	}
	authFields, ok := auth.Value.(mcs.Struct)
	if !ok || len(authFields) != 2 {
		return ValueShapeError{
			Type:   "TransactionAuthenticator",
			Reason: "Ed25519 payload is not a 2-field struct",
		}
	}
	publicKey, ok := authFields[0].(mcs.Bytes)
	if !ok {
		return ValueShapeError{
			Type:   "TransactionAuthenticator",
			Reason: "public key is not BYTES",
		}
	}
	signature, ok := authFields[1].(mcs.Bytes)
	if !ok {
		return ValueShapeError{
			Type:   "TransactionAuthenticator",
			Reason: "signature is not BYTES",
		}
	}
	if err := ValidateEd25519PublicKey(publicKey); err != nil {
		return err
	}
	if len(signature) != ed25519.SignatureSize {
		return fmt.Errorf(
			"%w: expected %d bytes, got %d",
			ErrInvalidSignature,
			ed25519.SignatureSize,
			len(signature),
		)
	}
	rawBytes, err := mcs.EncodeByName(
		NewRegistry(),
		"RawUserTransaction",
		fields[0],
	)
	if err != nil {
		return err
	}
	msg := RawTransactionSigningMessage(rawBytes)
	if !ed25519.Verify(ed25519.PublicKey(publicKey), msg, signature) {
		return fmt.Errorf("%w: ed25519 verification failed", ErrInvalidSignature)
	}
	return nil
}
