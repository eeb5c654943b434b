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

package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is
var (
	ErrDuplicateName   = errors.New("duplicate name")
	ErrUnknownTypeName = errors.New("unknown type name")
	ErrInfiniteType    = errors.New("structurally infinite type")
	ErrInvalidFormat   = errors.New("invalid schema document")
)

// DuplicateNameError indicates a name declared more than once: a definition
// name at the top level, or a field or variant name within a container
type DuplicateNameError struct {
	Container string // empty for a top-level definition name
	Name      string
}

func (e DuplicateNameError) Error() string {
	if e.Container == "" {
		return fmt.Sprintf("duplicate definition name %q", e.Name)
	}
	return fmt.Sprintf("duplicate name %q in %s", e.Name, e.Container)
}

func (DuplicateNameError) Is(target error) bool {
	return target == ErrDuplicateName
}

// DuplicateTagError indicates an enum declaring the same variant tag twice
type DuplicateTagError struct {
	Container string
	Tag       uint32
}

func (e DuplicateTagError) Error() string {
	return fmt.Sprintf("duplicate variant tag %d in %s", e.Tag, e.Container)
}

func (DuplicateTagError) Is(target error) bool {
	return target == ErrDuplicateName
}

// UnknownTypeNameError indicates a TYPENAME reference to a definition the
// registry does not contain
type UnknownTypeNameError struct {
	Container string
	Name      string
}

func (e UnknownTypeNameError) Error() string {
	if e.Container == "" {
		return fmt.Sprintf("unknown type name %q", e.Name)
	}
	return fmt.Sprintf(
		"unknown type name %q referenced from %s",
		e.Name,
		e.Container,
	)
}

func (UnknownTypeNameError) Is(target error) bool {
	return target == ErrUnknownTypeName
}

// InfiniteTypeError indicates a definition that contains itself through
// direct containment only, so that no finite byte string could represent a
// value of it. Cycle lists the containment path, starting and ending at Name.
type InfiniteTypeError struct {
	Name  string
	Cycle []string
}

func (e InfiniteTypeError) Error() string {
	return fmt.Sprintf(
		"type %s is structurally infinite: %s",
		e.Name,
		strings.Join(e.Cycle, " -> "),
	)
}

func (InfiniteTypeError) Is(target error) bool {
	return target == ErrInfiniteType
}

// FormatError indicates a schema document that does not follow the expected
// layout
type FormatError struct {
	Line   int // 1-based line in the source document, zero if unknown
	Reason string
}

func (e FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return e.Reason
}

func (FormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}
