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

package bench

import (
	"testing"

	"github.com/meridian-chain/go-meridian/chain"
	"github.com/meridian-chain/go-meridian/mcs"
)

// benchSink prevents compiler dead-code elimination in benchmarks.
var benchSink interface{}

// BenchmarkTxnEncode benchmarks canonical encoding of a signed
// transaction.
func BenchmarkTxnEncode(b *testing.B) {
	fixture := MustLoadTxnFixture()
	b.SetBytes(int64(len(fixture.Bytes)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchSink, _ = mcs.EncodeByName(
			fixture.Registry,
			"SignedUserTransaction",
			fixture.Value,
		)
	}
}

// BenchmarkTxnDecode benchmarks canonical decoding of a signed
// transaction.
func BenchmarkTxnDecode(b *testing.B) {
	fixture := MustLoadTxnFixture()
	// Pre-validate that decoding succeeds before measuring
	if _, _, err := mcs.DecodeByName(
		fixture.Registry,
		"SignedUserTransaction",
		fixture.Bytes,
	); err != nil {
		b.Fatalf("decode failed: %v", err)
	}
	b.SetBytes(int64(len(fixture.Bytes)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchSink, _, _ = mcs.DecodeByName(
			fixture.Registry,
			"SignedUserTransaction",
			fixture.Bytes,
		)
	}
}

// BenchmarkTxnVerify benchmarks signature verification of a signed
// transaction value.
func BenchmarkTxnVerify(b *testing.B) {
	fixture := MustLoadTxnFixture()
	if err := chain.VerifySignedTransaction(fixture.Value); err != nil {
		b.Fatalf("verify failed: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchSink = chain.VerifySignedTransaction(fixture.Value)
	}
}

// BenchmarkSigningMessage benchmarks signing message assembly, which is
// dominated by the cached salt lookup.
func BenchmarkSigningMessage(b *testing.B) {
	fixture := MustLoadTxnFixture()
	b.SetBytes(int64(len(fixture.RawBytes)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchSink = chain.RawTransactionSigningMessage(fixture.RawBytes)
	}
}

// BenchmarkProofDecode benchmarks state proof decoding, envelope check
// included.
func BenchmarkProofDecode(b *testing.B) {
	fixture := MustLoadProofFixture()
	if _, err := chain.DecodeStateProof(
		fixture.Registry,
		fixture.Bytes,
	); err != nil {
		b.Fatalf("decode failed: %v", err)
	}
	b.SetBytes(int64(len(fixture.Bytes)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchSink, _ = chain.DecodeStateProof(fixture.Registry, fixture.Bytes)
	}
}
