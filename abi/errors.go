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

package abi

import (
	"errors"
	"fmt"
)

// Sentinel errors for builder failures so callers can use errors.Is
var (
	ErrArityMismatch        = errors.New("arity mismatch")
	ErrArgumentTypeMismatch = errors.New("argument type mismatch")
	ErrUnknownABI           = errors.New("unknown ABI shape")
)

// ArityMismatchError indicates a call supplying a different number of
// type arguments or arguments than the ABI declares
type ArityMismatchError struct {
	Kind     string
	Declared int
	Supplied int
}

func (e ArityMismatchError) Error() string {
	return fmt.Sprintf(
		"%s arity mismatch: ABI declares %d, %d supplied",
		e.Kind,
		e.Declared,
		e.Supplied,
	)
}

func (ArityMismatchError) Is(target error) bool {
	return target == ErrArityMismatch
}

// ArgumentTypeMismatchError indicates a supplied argument whose type does
// not match the parameter the ABI declares at that position
type ArgumentTypeMismatchError struct {
	Name     string
	Position int
	Declared string
	Supplied string
}

func (e ArgumentTypeMismatchError) Error() string {
	return fmt.Sprintf(
		"argument %q at position %d: ABI declares %s, %s supplied",
		e.Name,
		e.Position,
		e.Declared,
		e.Supplied,
	)
}

func (ArgumentTypeMismatchError) Is(target error) bool {
	return target == ErrArgumentTypeMismatch
}

// UnknownABIError indicates an ABI value that is neither a transaction
// script nor a script function
type UnknownABIError struct {
	Tag uint32
}

func (e UnknownABIError) Error() string {
	return fmt.Sprintf("unknown ABI shape: variant tag %d", e.Tag)
}

func (UnknownABIError) Is(target error) bool {
	return target == ErrUnknownABI
}
