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

import "errors"

// ErrNoEndpoint is returned when the client is constructed without an
// endpoint or a network to derive one from
var ErrNoEndpoint = errors.New("no endpoint specified")

// ErrBadBlockHash is returned when a node serves a block whose hashes are
// not exactly 32 bytes
var ErrBadBlockHash = errors.New("invalid block hash")

// ErrBadProof is returned when a node serves a state proof blob that does
// not hold canonical proof bytes
var ErrBadProof = errors.New("invalid state proof blob")
