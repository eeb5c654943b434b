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

import "math"

// appendUleb128 appends the minimal ULEB128 encoding of v
func appendUleb128(buf []byte, v uint32) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v&0x7f)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

// decodeUleb128 reads a ULEB128 value from data at offset off, bounded to
// 32 bits. Only the shortest encoding of a value is accepted: a multi-byte
// encoding whose final byte is zero carries a redundant continuation and is
// rejected. Returns the value and the number of bytes consumed.
func decodeUleb128(data []byte, off int) (uint32, int, error) {
	var result uint64
	var shift uint
	for i := 0; ; i++ {
		if off+i >= len(data) {
			return 0, 0, UnexpectedEofError{Offset: off + i, Wanted: 1}
		}
		b := data[off+i]
		if b&0x80 == 0 {
			if i > 0 && b == 0 {
				return 0, 0, NonCanonicalVarintError{Offset: off}
			}
			result |= uint64(b) << shift
			if result > math.MaxUint32 {
				return 0, 0, VarintOverflowError{Offset: off}
			}
			return uint32(result), i + 1, nil
		}
		result |= uint64(b&0x7f) << shift
		shift += 7
		if shift > 31 {
			return 0, 0, VarintOverflowError{Offset: off}
		}
	}
}
