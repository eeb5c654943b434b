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

package schema_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/meridian-chain/go-meridian/schema"
)

func TestNewRegistry(t *testing.T) {
	reg, err := schema.NewRegistry(map[string]schema.Definition{
		"HashValue": &schema.NewtypeDef{Type: schema.Bytes()},
		"AccountAddress": &schema.NewtypeDef{
			Type: schema.TupleArray(schema.U8(), 16),
		},
		"AccessPath": &schema.StructDef{
			Fields: []schema.Field{
				{Name: "address", Type: schema.Typename("AccountAddress")},
				{Name: "path", Type: schema.Bytes()},
			},
		},
		"WriteOp": &schema.EnumDef{
			Variants: []schema.Variant{
				// declared out of tag order on purpose
				{
					Tag:  1,
					Name: "Value",
					Kind: schema.VariantNewtype,
					Type: schema.Bytes(),
				},
				{Tag: 0, Name: "Deletion", Kind: schema.VariantUnit},
			},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if reg.Len() != 4 {
		t.Fatalf("unexpected registry size: got %d, wanted 4", reg.Len())
	}
	expectedNames := []string{
		"AccessPath",
		"AccountAddress",
		"HashValue",
		"WriteOp",
	}
	if !reflect.DeepEqual(reg.Names(), expectedNames) {
		t.Fatalf(
			"unexpected names\n  got:    %#v\n  wanted: %#v",
			reg.Names(),
			expectedNames,
		)
	}
	def, ok := reg.Definition("WriteOp")
	if !ok {
		t.Fatalf("expected definition for WriteOp")
	}
	enum, ok := def.(*schema.EnumDef)
	if !ok {
		t.Fatalf("unexpected definition type %T for WriteOp", def)
	}
	if enum.Variants[0].Name != "Deletion" || enum.Variants[1].Name != "Value" {
		t.Fatalf("variants not sorted by tag: %#v", enum.Variants)
	}
	if enum.MaxTag() != 1 {
		t.Fatalf("unexpected max tag: got %d, wanted 1", enum.MaxTag())
	}
	if v, ok := enum.VariantByTag(1); !ok || v.Name != "Value" {
		t.Fatalf("unexpected variant for tag 1: %#v", v)
	}
	if _, ok := enum.VariantByTag(2); ok {
		t.Fatalf("expected no variant for tag 2")
	}
	if v, ok := enum.VariantByName("Deletion"); !ok || v.Tag != 0 {
		t.Fatalf("unexpected variant for name Deletion: %#v", v)
	}
}

func TestNewRegistryUnknownTypeName(t *testing.T) {
	_, err := schema.NewRegistry(map[string]schema.Definition{
		"AccessPath": &schema.StructDef{
			Fields: []schema.Field{
				{Name: "address", Type: schema.Typename("AccountAddress")},
			},
		},
	})
	if !errors.Is(err, schema.ErrUnknownTypeName) {
		t.Fatalf("unexpected error: got %v, wanted ErrUnknownTypeName", err)
	}
	var unknownErr schema.UnknownTypeNameError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("unexpected error type: %T", err)
	}
	if unknownErr.Container != "AccessPath" ||
		unknownErr.Name != "AccountAddress" {
		t.Fatalf("unexpected error details: %#v", unknownErr)
	}
}

var infiniteTestDefs = []struct {
	label string
	defs  map[string]schema.Definition
}{
	// struct containing itself
	{
		label: "self struct",
		defs: map[string]schema.Definition{
			"Node": &schema.StructDef{
				Fields: []schema.Field{
					{Name: "next", Type: schema.Typename("Node")},
				},
			},
		},
	},
	// newtype wrapping itself
	{
		label: "self newtype",
		defs: map[string]schema.Definition{
			"Loop": &schema.NewtypeDef{Type: schema.Typename("Loop")},
		},
	},
	// two structs containing each other
	{
		label: "mutual structs",
		defs: map[string]schema.Definition{
			"A": &schema.StructDef{
				Fields: []schema.Field{
					{Name: "b", Type: schema.Typename("B")},
				},
			},
			"B": &schema.StructDef{
				Fields: []schema.Field{
					{Name: "a", Type: schema.Typename("A")},
				},
			},
		},
	},
	// cycle through a tuple item
	{
		label: "tuple cycle",
		defs: map[string]schema.Definition{
			"Pair": &schema.NewtypeDef{
				Type: schema.Tuple(schema.U8(), schema.Typename("Pair")),
			},
		},
	},
	// cycle through a fixed-size array
	{
		label: "tuple array cycle",
		defs: map[string]schema.Definition{
			"Grid": &schema.StructDef{
				Fields: []schema.Field{
					{
						Name: "cells",
						Type: schema.TupleArray(schema.Typename("Grid"), 4),
					},
				},
			},
		},
	},
}

func TestNewRegistryInfiniteType(t *testing.T) {
	for _, testDef := range infiniteTestDefs {
		_, err := schema.NewRegistry(testDef.defs)
		if !errors.Is(err, schema.ErrInfiniteType) {
			t.Fatalf(
				"%s: unexpected error: got %v, wanted ErrInfiniteType",
				testDef.label,
				err,
			)
		}
	}
}

func TestNewRegistryInfiniteTypeCyclePath(t *testing.T) {
	_, err := schema.NewRegistry(map[string]schema.Definition{
		"A": &schema.StructDef{
			Fields: []schema.Field{
				{Name: "b", Type: schema.Typename("B")},
			},
		},
		"B": &schema.StructDef{
			Fields: []schema.Field{
				{Name: "a", Type: schema.Typename("A")},
			},
		},
	})
	var infErr schema.InfiniteTypeError
	if !errors.As(err, &infErr) {
		t.Fatalf("unexpected error type: %T", err)
	}
	expectedCycle := []string{"A", "B", "A"}
	if !reflect.DeepEqual(infErr.Cycle, expectedCycle) {
		t.Fatalf(
			"unexpected cycle\n  got:    %#v\n  wanted: %#v",
			infErr.Cycle,
			expectedCycle,
		)
	}
}

// Recursion through SEQ, OPTION, or an enum variant payload is guarded by a
// length or tag on the wire and must be accepted
func TestNewRegistryGuardedRecursion(t *testing.T) {
	guardedTestDefs := []struct {
		label string
		defs  map[string]schema.Definition
	}{
		{
			label: "seq of self",
			defs: map[string]schema.Definition{
				"Tree": &schema.StructDef{
					Fields: []schema.Field{
						{Name: "value", Type: schema.U64()},
						{
							Name: "children",
							Type: schema.Seq(schema.Typename("Tree")),
						},
					},
				},
			},
		},
		{
			label: "option of self",
			defs: map[string]schema.Definition{
				"List": &schema.StructDef{
					Fields: []schema.Field{
						{Name: "value", Type: schema.U64()},
						{
							Name: "next",
							Type: schema.Option(schema.Typename("List")),
						},
					},
				},
			},
		},
		{
			label: "enum variant of self",
			defs: map[string]schema.Definition{
				"TypeTag": &schema.EnumDef{
					Variants: []schema.Variant{
						{Tag: 0, Name: "Bool", Kind: schema.VariantUnit},
						{
							Tag:  1,
							Name: "Vector",
							Kind: schema.VariantNewtype,
							Type: schema.Typename("TypeTag"),
						},
					},
				},
			},
		},
	}
	for _, testDef := range guardedTestDefs {
		if _, err := schema.NewRegistry(testDef.defs); err != nil {
			t.Fatalf("%s: unexpected error: %s", testDef.label, err)
		}
	}
}

func TestNewRegistryDuplicateMembers(t *testing.T) {
	// duplicate field name
	_, err := schema.NewRegistry(map[string]schema.Definition{
		"Point": &schema.StructDef{
			Fields: []schema.Field{
				{Name: "x", Type: schema.U64()},
				{Name: "x", Type: schema.U64()},
			},
		},
	})
	if !errors.Is(err, schema.ErrDuplicateName) {
		t.Fatalf("unexpected error: got %v, wanted ErrDuplicateName", err)
	}
	// duplicate variant tag
	_, err = schema.NewRegistry(map[string]schema.Definition{
		"Choice": &schema.EnumDef{
			Variants: []schema.Variant{
				{Tag: 0, Name: "Left", Kind: schema.VariantUnit},
				{Tag: 0, Name: "Right", Kind: schema.VariantUnit},
			},
		},
	})
	if !errors.Is(err, schema.ErrDuplicateName) {
		t.Fatalf("unexpected error: got %v, wanted ErrDuplicateName", err)
	}
	var tagErr schema.DuplicateTagError
	if !errors.As(err, &tagErr) {
		t.Fatalf("unexpected error type: %T", err)
	}
	if tagErr.Container != "Choice" || tagErr.Tag != 0 {
		t.Fatalf("unexpected error details: %#v", tagErr)
	}
	// duplicate variant name
	_, err = schema.NewRegistry(map[string]schema.Definition{
		"Choice": &schema.EnumDef{
			Variants: []schema.Variant{
				{Tag: 0, Name: "Left", Kind: schema.VariantUnit},
				{Tag: 1, Name: "Left", Kind: schema.VariantUnit},
			},
		},
	})
	if !errors.Is(err, schema.ErrDuplicateName) {
		t.Fatalf("unexpected error: got %v, wanted ErrDuplicateName", err)
	}
}

func TestNewRegistryEmpty(t *testing.T) {
	reg, err := schema.NewRegistry(nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if reg.Len() != 0 {
		t.Fatalf("unexpected registry size: got %d, wanted 0", reg.Len())
	}
	if reg.Has("anything") {
		t.Fatalf("expected empty registry to contain nothing")
	}
}

func TestRegistryResolve(t *testing.T) {
	reg, err := schema.NewRegistry(map[string]schema.Definition{
		"HashValue": &schema.NewtypeDef{Type: schema.Bytes()},
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !reg.Has("HashValue") {
		t.Fatalf("expected registry to have HashValue")
	}
	def, err := reg.Resolve("HashValue")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if _, ok := def.(*schema.NewtypeDef); !ok {
		t.Fatalf("unexpected definition type %T for HashValue", def)
	}
	if got := reg.MustResolve("HashValue"); got != def {
		t.Fatalf("MustResolve returned a different definition")
	}
	_, err = reg.Resolve("BlockHeader")
	if !errors.Is(err, schema.ErrUnknownTypeName) {
		t.Fatalf("unexpected error: got %v, wanted ErrUnknownTypeName", err)
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected MustResolve to panic on an unknown name")
		}
	}()
	reg.MustResolve("BlockHeader")
}
