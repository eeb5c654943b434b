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

// Package mcs implements Meridian Canonical Serialization, the byte format
// used for transaction signing, content-addressed hashing, and state
// proofs. Values and byte strings are in bijection for a given schema type:
// every value has exactly one encoding and every accepted byte string
// decodes to exactly one value. Hashes and signatures computed over these
// bytes are therefore reproducible from the values alone.
//
// The wire format has no self-description. Layout comes entirely from a
// schema.Registry, and the same bytes are only meaningful against the type
// they were encoded with:
//
//   - BOOL is a single byte, 0 or 1
//   - U8, U64, and U128 are fixed-width little-endian
//   - STR and BYTES are a ULEB128 byte length followed by the raw bytes;
//     STR must hold valid UTF-8
//   - SEQ is a ULEB128 element count followed by the elements
//   - OPTION is a flag byte, 0 or 1, with the payload following a 1
//   - TUPLE, TUPLEARRAY, and struct fields are their parts in order with
//     no framing
//   - enums are a ULEB128 variant tag followed by the variant payload
//   - NEWTYPESTRUCT wrappers add nothing to the wire
//
// Lengths and tags are ULEB128 varints bounded to 32 bits, and only the
// shortest encoding of each value is accepted. Decode rejects any input
// Encode could not have produced: oversized or padded varints, out-of-range
// tags and flag bytes, lengths that overrun the input, non-UTF-8 string
// data, and bytes left over after the top-level value.
package mcs
