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

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/meridian-chain/go-meridian/schema"
)

// ClientOptionFunc is a type that represents functions that modify the
// Client config
type ClientOptionFunc func(*Client)

// WithEndpoint specifies the JSON-RPC endpoint URL of the node. It takes
// precedence over the endpoint of a configured network.
func WithEndpoint(endpoint string) ClientOptionFunc {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithNetwork specifies the network the node is expected to serve. The
// network's endpoint is used unless WithEndpoint overrides it, and Ping
// checks the node's chain id against the network.
func WithNetwork(network Network) ClientOptionFunc {
	return func(c *Client) {
		c.network = network
		if c.endpoint == "" {
			c.endpoint = network.RpcEndpoint
		}
	}
}

// WithNetworkName specifies the network by name, as a convenience wrapper
// around WithNetwork. An unknown name leaves the config untouched, which
// NewClient reports as a missing endpoint.
func WithNetworkName(networkName string) ClientOptionFunc {
	return func(c *Client) {
		network := NetworkByName(networkName)
		if network == NetworkInvalid {
			return
		}
		c.network = network
		if c.endpoint == "" {
			c.endpoint = network.RpcEndpoint
		}
	}
}

// WithHTTPClient specifies the HTTP client to use for requests. The
// default is a client with the configured timeout.
func WithHTTPClient(httpClient *http.Client) ClientOptionFunc {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout specifies the timeout for requests when the client builds
// its own HTTP client. The default is 30s.
func WithTimeout(timeout time.Duration) ClientOptionFunc {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithLogger specifies the slog.Logger to use. The default is
// slog.Default().
func WithLogger(logger *slog.Logger) ClientOptionFunc {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRegistry specifies the schema registry used to decode chain data.
// The default is chain.NewRegistry().
func WithRegistry(registry *schema.Registry) ClientOptionFunc {
	return func(c *Client) {
		c.registry = registry
	}
}
