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

// Package chain provides the Meridian on-chain data model: the canonical
// serialization schema for every on-chain type plus typed helpers for
// addresses, hashes, transactions, blocks, and state proofs.
package chain

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/meridian-chain/go-meridian/schema"
)

//go:embed schema/meridian_types.yaml
var schemaDoc []byte

var (
	registryOnce sync.Once
	registry     *schema.Registry
)

// NewRegistry returns the registry describing every on-chain type.
// Registries are immutable, so all callers share one instance. The
// embedded schema document is parsed once per process; it ships with the
// module, so a parse failure is a build defect and panics.
func NewRegistry() *schema.Registry {
	registryOnce.Do(func() {
		reg, err := schema.Parse(schemaDoc)
		if err != nil {
			panic(fmt.Sprintf("invalid embedded chain schema: %s", err))
		}
		registry = reg
	})
	return registry
}
