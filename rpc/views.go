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

package rpc

import "encoding/json"

// View types mirror the node's JSON. Numbers wide enough to overflow
// JavaScript arrive as strings and stay that way here.

// ChainIDView is the result of chain.id
type ChainIDView struct {
	Name string `json:"name"`
	ID   uint8  `json:"id"`
}

// BlockHeaderView is a block header as the node serves it, hashes as hex
// strings
type BlockHeaderView struct {
	BlockHash            string `json:"block_hash"`
	ParentHash           string `json:"parent_hash"`
	Timestamp            string `json:"timestamp"`
	Number               string `json:"number"`
	Author               string `json:"author"`
	AuthorAuthKey        string `json:"author_auth_key,omitempty"`
	TxnAccumulatorRoot   string `json:"txn_accumulator_root"`
	BlockAccumulatorRoot string `json:"block_accumulator_root"`
	StateRoot            string `json:"state_root"`
	GasUsed              string `json:"gas_used"`
	Difficulty           string `json:"difficulty"`
	BodyHash             string `json:"body_hash"`
	ChainID              uint8  `json:"chain_id"`
	Nonce                uint64 `json:"nonce"`
}

// BlockView is the result of chain.get_block_by_number. The body is kept
// raw; this SDK consumes headers and proofs, not transaction lists.
type BlockView struct {
	Header BlockHeaderView `json:"header"`
	Body   json.RawMessage `json:"body,omitempty"`
}
