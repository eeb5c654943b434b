// Copyright 2024 Meridian Foundation
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

package mcs

import (
	"fmt"
	"math/big"
)

// U128 is an unsigned 128-bit integer split into two 64-bit halves. It
// encodes as 16 little-endian bytes: Low first, then High.
type U128 struct {
	High uint64
	Low  uint64
}

// NewU128 returns a U128 holding a 64-bit value
func NewU128(v uint64) U128 {
	return U128{Low: v}
}

// NewU128FromBig converts a big.Int into a U128. Negative values and values
// wider than 128 bits are rejected.
func NewU128FromBig(b *big.Int) (U128, error) {
	if b.Sign() < 0 {
		return U128{}, fmt.Errorf("value %s is negative", b)
	}
	if b.BitLen() > 128 {
		return U128{}, fmt.Errorf("value %s exceeds 128 bits", b)
	}
	var buf [16]byte
	b.FillBytes(buf[:])
	var out U128
	for i := 0; i < 8; i++ {
		out.High = out.High<<8 | uint64(buf[i])
		out.Low = out.Low<<8 | uint64(buf[i+8])
	}
	return out, nil
}

// Big returns the value as a big.Int
func (v U128) Big() *big.Int {
	out := new(big.Int).SetUint64(v.High)
	out.Lsh(out, 64)
	return out.Or(out, new(big.Int).SetUint64(v.Low))
}

// String returns the value in decimal
func (v U128) String() string {
	return v.Big().String()
}
