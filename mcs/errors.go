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

package mcs

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is
var (
	ErrUnexpectedEof       = errors.New("unexpected end of input")
	ErrInvalidTag          = errors.New("invalid tag")
	ErrNonCanonicalVarint  = errors.New("non-canonical varint")
	ErrVarintOverflow      = errors.New("varint overflow")
	ErrLengthExceedsBuffer = errors.New("declared length exceeds buffer")
	ErrTrailingBytes       = errors.New("trailing bytes")
	ErrInvalidUtf8         = errors.New("invalid UTF-8")
	ErrMaxDepthExceeded    = errors.New("max depth exceeded")
	ErrTypeMismatch        = errors.New("type mismatch")
)

// UnexpectedEofError indicates input that ended before the value did
type UnexpectedEofError struct {
	Offset int // offset at which more input was required
	Wanted int // bytes required beyond the end of the input
}

func (e UnexpectedEofError) Error() string {
	return fmt.Sprintf(
		"unexpected end of input at offset %d: need %d more bytes",
		e.Offset,
		e.Wanted,
	)
}

func (UnexpectedEofError) Is(target error) bool {
	return target == ErrUnexpectedEof
}

// InvalidTagError indicates a tag byte or varint outside its declared
// domain: an undeclared enum tag, an option flag other than 0 or 1, or a
// bool byte other than 0 or 1
type InvalidTagError struct {
	Offset  int
	Tag     uint32
	Max     uint32 // highest valid tag in the domain
	Context string // enum name, "OPTION", or "BOOL"
}

func (e InvalidTagError) Error() string {
	return fmt.Sprintf(
		"invalid tag %d for %s at offset %d (max %d)",
		e.Tag,
		e.Context,
		e.Offset,
		e.Max,
	)
}

func (InvalidTagError) Is(target error) bool {
	return target == ErrInvalidTag
}

// NonCanonicalVarintError indicates a varint that is not the shortest
// encoding of its value
type NonCanonicalVarintError struct {
	Offset int
}

func (e NonCanonicalVarintError) Error() string {
	return fmt.Sprintf("non-canonical varint at offset %d", e.Offset)
}

func (NonCanonicalVarintError) Is(target error) bool {
	return target == ErrNonCanonicalVarint
}

// VarintOverflowError indicates a varint wider than 32 bits
type VarintOverflowError struct {
	Offset int
}

func (e VarintOverflowError) Error() string {
	return fmt.Sprintf("varint at offset %d exceeds 32 bits", e.Offset)
}

func (VarintOverflowError) Is(target error) bool {
	return target == ErrVarintOverflow
}

// LengthExceedsBufferError indicates a declared length that cannot be
// satisfied by the remaining input
type LengthExceedsBufferError struct {
	Offset    int // offset of the length prefix
	Declared  uint64
	Remaining int
}

func (e LengthExceedsBufferError) Error() string {
	return fmt.Sprintf(
		"declared length %d at offset %d exceeds remaining buffer (%d bytes)",
		e.Declared,
		e.Offset,
		e.Remaining,
	)
}

func (LengthExceedsBufferError) Is(target error) bool {
	return target == ErrLengthExceedsBuffer
}

// TrailingBytesError indicates input left over after the top-level value
type TrailingBytesError struct {
	Consumed int
	Total    int
}

func (e TrailingBytesError) Error() string {
	return fmt.Sprintf(
		"%d trailing bytes after value of %d bytes",
		e.Total-e.Consumed,
		e.Consumed,
	)
}

func (TrailingBytesError) Is(target error) bool {
	return target == ErrTrailingBytes
}

// InvalidUtf8Error indicates STR content that is not valid UTF-8
type InvalidUtf8Error struct {
	Offset int
}

func (e InvalidUtf8Error) Error() string {
	return fmt.Sprintf("invalid UTF-8 in string at offset %d", e.Offset)
}

func (InvalidUtf8Error) Is(target error) bool {
	return target == ErrInvalidUtf8
}

// MaxDepthExceededError indicates value nesting beyond MaxContainerDepth
type MaxDepthExceededError struct {
	Depth int
}

func (e MaxDepthExceededError) Error() string {
	return fmt.Sprintf("maximum container depth %d exceeded", e.Depth)
}

func (MaxDepthExceededError) Is(target error) bool {
	return target == ErrMaxDepthExceeded
}

// TypeMismatchError indicates a value whose shape does not match the schema
// type it was encoded against
type TypeMismatchError struct {
	Expected string
	Got      string
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Got)
}

func (TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}
