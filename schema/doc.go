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

// Package schema describes the shape of canonically serialized data.
//
// A Registry holds named container definitions: structs with ordered
// fields, enums with tagged variants, and transparent newtype wrappers.
// Container layouts are built from a closed set of type expressions over
// the primitives BOOL, U8, U64, U128, STR, and BYTES plus the composites
// SEQ, OPTION, TUPLE, TUPLEARRAY, and TYPENAME references to other
// definitions.
//
// Registries come from YAML documents via Parse or ParseFile, or are built
// programmatically with NewRegistry. Construction validates the whole set:
// duplicate names or tags, dangling TYPENAME references, and structurally
// infinite definitions are rejected up front, so the mcs codec can walk a
// registry without re-checking it.
package schema
