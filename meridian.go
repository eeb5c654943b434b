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

// Package meridian implements a client SDK for Meridian nodes: canonical
// serialization of chain data, ABI-driven transaction building, and a
// JSON-RPC client that validates what the node returns before handing it
// to the caller.
//
// This package is the main entry point into this library. The schema, mcs,
// chain and abi packages can be used outside of this one, but it's not a
// primary design goal.
package meridian

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/meridian-chain/go-meridian/chain"
	"github.com/meridian-chain/go-meridian/mcs"
	"github.com/meridian-chain/go-meridian/rpc"
	"github.com/meridian-chain/go-meridian/schema"
)

const defaultTimeout = 30 * time.Second

// The Client type wraps a JSON-RPC connection to a Meridian node and
// enforces the canonical-bytes contract on everything that crosses it
type Client struct {
	endpoint   string
	network    Network
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
	registry   *schema.Registry
	rpcClient  *rpc.Client
}

// BlockHeader pairs a node-served header view with the hashes the client
// has validated as exactly 32 bytes
type BlockHeader struct {
	Hash      chain.HashValue
	StateRoot chain.HashValue
	View      rpc.BlockHeaderView
}

// NewClient returns a new Client object with the specified options. An
// endpoint is required, either directly or via a network.
func NewClient(options ...ClientOptionFunc) (*Client, error) {
	c := &Client{}
	// Apply provided options functions
	for _, option := range options {
		option(c)
	}
	if c.endpoint == "" {
		return nil, ErrNoEndpoint
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.registry == nil {
		c.registry = chain.NewRegistry()
	}
	if c.timeout == 0 {
		c.timeout = defaultTimeout
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	c.rpcClient = rpc.NewClient(c.endpoint, c.httpClient)
	return c, nil
}

// New is an alias to NewClient
func New(options ...ClientOptionFunc) (*Client, error) {
	return NewClient(options...)
}

// Registry returns the schema registry the client decodes against
func (c *Client) Registry() *schema.Registry {
	return c.registry
}

// ChainID asks the node which chain it serves
func (c *Client) ChainID(ctx context.Context) (chain.ChainID, error) {
	var view rpc.ChainIDView
	if err := c.rpcClient.CallInto(ctx, &view, "chain.id"); err != nil {
		return 0, err
	}
	return chain.ChainID(view.ID), nil
}

// Ping checks connectivity, and when a network was configured, that the
// node serves it
func (c *Client) Ping(ctx context.Context) error {
	id, err := c.ChainID(ctx)
	if err != nil {
		return err
	}
	if c.network.Name != "" && id != c.network.Id {
		return fmt.Errorf(
			"node serves chain id %d, expected %d (%s)",
			id,
			c.network.Id,
			c.network.Name,
		)
	}
	return nil
}

// BlockHeaderByNumber fetches a block and validates its hashes. A header
// whose block hash or state root is not exactly 32 bytes is rejected with
// ErrBadBlockHash.
func (c *Client) BlockHeaderByNumber(
	ctx context.Context,
	number uint64,
) (BlockHeader, error) {
	var block rpc.BlockView
	err := c.rpcClient.CallInto(
		ctx,
		&block,
		"chain.get_block_by_number",
		number,
	)
	if err != nil {
		return BlockHeader{}, err
	}
	hash, err := chain.ParseHashValue(block.Header.BlockHash)
	if err != nil {
		return BlockHeader{}, fmt.Errorf(
			"%w: block %d: %s",
			ErrBadBlockHash,
			number,
			err,
		)
	}
	stateRoot, err := chain.ParseHashValue(block.Header.StateRoot)
	if err != nil {
		return BlockHeader{}, fmt.Errorf(
			"%w: block %d state root: %s",
			ErrBadBlockHash,
			number,
			err,
		)
	}
	c.logger.Debug(
		"fetched block header",
		"component", "meridian",
		"number", number,
		"hash", hash.String(),
	)
	return BlockHeader{
		Hash:      hash,
		StateRoot: stateRoot,
		View:      block.Header,
	}, nil
}

// StateProofAtRoot fetches the raw state proof for an access path against
// a state root. The blob must decode as a StateProof and be longer than a
// single hash; anything else is rejected with ErrBadProof. Both the raw
// blob and the decoded proof are returned, since verification hashes the
// raw bytes.
func (c *Client) StateProofAtRoot(
	ctx context.Context,
	accessPath chain.AccessPath,
	stateRoot chain.HashValue,
) ([]byte, chain.StateProof, error) {
	var blobHex string
	err := c.rpcClient.CallInto(
		ctx,
		&blobHex,
		"state.get_with_proof_by_root_raw",
		accessPath.String(),
		stateRoot.String(),
	)
	if err != nil {
		return nil, chain.StateProof{}, err
	}
	blob, err := hex.DecodeString(strings.TrimPrefix(blobHex, "0x"))
	if err != nil {
		return nil, chain.StateProof{}, fmt.Errorf(
			"%w: proof is not hexadecimal",
			ErrBadProof,
		)
	}
	proof, err := chain.DecodeStateProof(c.registry, blob)
	if err != nil {
		return nil, chain.StateProof{}, fmt.Errorf(
			"%w: %s",
			ErrBadProof,
			err,
		)
	}
	c.logger.Debug(
		"fetched state proof",
		"component", "meridian",
		"access_path", accessPath.String(),
		"size", len(blob),
	)
	return blob, proof, nil
}

// SubmitTransaction encodes a signed transaction value canonically and
// submits it. The returned hash is computed locally from the submitted
// bytes, so it identifies the transaction even if the node answers
// nothing.
func (c *Client) SubmitTransaction(
	ctx context.Context,
	signedTxn mcs.Value,
) (chain.HashValue, error) {
	data, err := mcs.EncodeByName(c.registry, "SignedUserTransaction", signedTxn)
	if err != nil {
		return chain.HashValue{}, err
	}
	_, err = c.rpcClient.Call(
		ctx,
		"txpool.submit_hex_transaction",
		hex.EncodeToString(data),
	)
	if err != nil {
		return chain.HashValue{}, err
	}
	txnHash := chain.SignedTransactionHash(data)
	c.logger.Debug(
		"submitted transaction",
		"component", "meridian",
		"hash", txnHash.String(),
	)
	return txnHash, nil
}
