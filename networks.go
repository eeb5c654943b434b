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

package meridian

import "github.com/meridian-chain/go-meridian/chain"

// Network definitions
var (
	NetworkMain = Network{
		Id:          chain.ChainID(1),
		Name:        "main",
		RpcEndpoint: "https://main-seed.meridian.network",
	}
	NetworkHalley = Network{
		Id:          chain.ChainID(251),
		Name:        "halley",
		RpcEndpoint: "https://halley-seed.meridian.network",
	}
	NetworkDev = Network{
		Id:          chain.ChainID(254),
		Name:        "dev",
		RpcEndpoint: "http://127.0.0.1:9850",
	}

	NetworkInvalid = Network{
		Id:   0,
		Name: "invalid",
	} // NetworkInvalid is used as a return value for lookup functions when a network isn't found
)

// List of valid networks for use in lookup functions
var networks = []Network{
	NetworkMain,
	NetworkHalley,
	NetworkDev,
}

// NetworkByName returns a predefined network by name
func NetworkByName(name string) Network {
	for _, network := range networks {
		if network.Name == name {
			return network
		}
	}
	return NetworkInvalid
}

// NetworkById returns a predefined network by chain ID
func NetworkById(id chain.ChainID) Network {
	for _, network := range networks {
		if network.Id == id {
			return network
		}
	}
	return NetworkInvalid
}

// Network represents a Meridian network
type Network struct {
	Id          chain.ChainID // chain ID carried in every transaction
	Name        string
	RpcEndpoint string
}

func (n Network) String() string {
	return n.Name
}
