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

package common

import (
	"fmt"
	"os"

	meridian "github.com/meridian-chain/go-meridian"
)

// CreateClient builds a node client from the global flags
func CreateClient(f *GlobalFlags) *meridian.Client {
	options := []meridian.ClientOptionFunc{
		meridian.WithEndpoint(f.Endpoint),
	}
	network := meridian.NetworkByName(f.Network)
	if network != meridian.NetworkInvalid {
		options = append(options, meridian.WithNetwork(network))
	}
	client, err := meridian.New(options...)
	if err != nil {
		fmt.Printf("Connection failed: %s\n", err)
		os.Exit(1)
	}
	return client
}
