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

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/meridian-chain/go-meridian/chain"
	"github.com/meridian-chain/go-meridian/cmd/common"
)

type proofCheckFlags struct {
	*common.GlobalFlags
	blockNumber uint64
	accessPath  string
}

func main() {
	// Parse commandline
	f := proofCheckFlags{
		GlobalFlags: common.NewGlobalFlags(),
	}
	f.Flagset.Uint64Var(
		&f.blockNumber,
		"block",
		1,
		"block number to fetch the header of",
	)
	f.Flagset.StringVar(
		&f.accessPath,
		"access-path",
		"",
		"account state slot to prove, in address/0xpath form",
	)
	f.Parse()
	if f.accessPath == "" {
		fmt.Printf("You must specify -access-path\n\n")
		f.Flagset.PrintDefaults()
		os.Exit(1)
	}
	accessPath, err := chain.ParseAccessPath(f.accessPath)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	client := common.CreateClient(f.GlobalFlags)
	ctx := context.Background()

	header, err := client.BlockHeaderByNumber(ctx, f.blockNumber)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("Block %d:\n\n", f.blockNumber)
	fmt.Printf("Block hash: %s\n", header.Hash)
	fmt.Printf("State root: %s\n", header.StateRoot)

	blob, proof, err := client.StateProofAtRoot(
		ctx,
		accessPath,
		header.StateRoot,
	)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nProof for %s:\n\n", accessPath)
	fmt.Printf("Proof size: %d bytes\n", len(blob))
	if proof.AccountState != nil {
		fmt.Printf("Account state: %d bytes\n", len(proof.AccountState))
	} else {
		fmt.Print("Account state: absent\n")
	}
	fmt.Printf(
		"Account proof siblings: %d\n",
		len(proof.AccountProof.Siblings),
	)
	fmt.Printf(
		"State proof siblings: %d\n",
		len(proof.AccountStateProof.Siblings),
	)
}
