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
	"fmt"
	"sort"
)

// Registry is an immutable set of named container definitions. A validated
// registry guarantees that every TYPENAME resolves, that names and tags are
// unique within their scope, and that no definition is structurally
// infinite.
type Registry struct {
	defs  map[string]Definition
	names []string
}

// NewRegistry builds and validates a registry from named definitions. The
// input map is copied; later changes to it do not affect the registry.
func NewRegistry(defs map[string]Definition) (*Registry, error) {
	r := &Registry{
		defs:  make(map[string]Definition, len(defs)),
		names: make([]string, 0, len(defs)),
	}
	for name, def := range defs {
		if name == "" {
			return nil, FormatError{Reason: "empty definition name"}
		}
		if def == nil {
			return nil, FormatError{
				Reason: fmt.Sprintf("nil definition for %q", name),
			}
		}
		r.defs[name] = normalizeDefinition(def)
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// normalizeDefinition copies a definition, sorting enum variants into
// ascending tag order
func normalizeDefinition(def Definition) Definition {
	switch d := def.(type) {
	case *StructDef:
		out := &StructDef{Fields: make([]Field, len(d.Fields))}
		copy(out.Fields, d.Fields)
		return out
	case *EnumDef:
		out := &EnumDef{Variants: make([]Variant, len(d.Variants))}
		copy(out.Variants, d.Variants)
		sort.SliceStable(out.Variants, func(i, j int) bool {
			return out.Variants[i].Tag < out.Variants[j].Tag
		})
		return out
	case *NewtypeDef:
		return &NewtypeDef{Type: d.Type}
	}
	return def
}

// Definition returns the definition registered under name
func (r *Registry) Definition(name string) (Definition, bool) {
	def, ok := r.defs[name]
	return def, ok
}

// Resolve returns the definition registered under name, or an
// UnknownTypeNameError when no such definition exists
func (r *Registry) Resolve(name string) (Definition, error) {
	def, ok := r.defs[name]
	if !ok {
		return nil, UnknownTypeNameError{Name: name}
	}
	return def, nil
}

// MustResolve is Resolve for names the caller knows are registered, such as
// entries of a registry it assembled itself. It panics on unknown names.
func (r *Registry) MustResolve(name string) Definition {
	def, err := r.Resolve(name)
	if err != nil {
		panic(err.Error())
	}
	return def
}

// Has reports whether name is registered
func (r *Registry) Has(name string) bool {
	_, ok := r.defs[name]
	return ok
}

// Names returns all registered definition names in lexical order
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of registered definitions
func (r *Registry) Len() int {
	return len(r.defs)
}

func (r *Registry) validate() error {
	for _, name := range r.names {
		if err := r.validateDefinition(name, r.defs[name]); err != nil {
			return err
		}
	}
	return r.checkFinite()
}

// validateDefinition performs the local and reference checks for a single
// definition: well-formed type expressions, unique member names and tags,
// and resolvable TYPENAME references
func (r *Registry) validateDefinition(name string, def Definition) error {
	checkFields := func(fields []Field) error {
		seen := make(map[string]bool, len(fields))
		for _, f := range fields {
			if f.Name == "" {
				return FormatError{
					Reason: fmt.Sprintf("empty field name in %s", name),
				}
			}
			if seen[f.Name] {
				return DuplicateNameError{Container: name, Name: f.Name}
			}
			seen[f.Name] = true
			if err := r.validateType(name, f.Type); err != nil {
				return err
			}
		}
		return nil
	}
	switch d := def.(type) {
	case *StructDef:
		return checkFields(d.Fields)
	case *NewtypeDef:
		return r.validateType(name, d.Type)
	case *EnumDef:
		seenTags := make(map[uint32]bool, len(d.Variants))
		seenNames := make(map[string]bool, len(d.Variants))
		for _, v := range d.Variants {
			if v.Name == "" {
				return FormatError{
					Reason: fmt.Sprintf("empty variant name in %s", name),
				}
			}
			if seenTags[v.Tag] {
				return DuplicateTagError{Container: name, Tag: v.Tag}
			}
			seenTags[v.Tag] = true
			if seenNames[v.Name] {
				return DuplicateNameError{Container: name, Name: v.Name}
			}
			seenNames[v.Name] = true
			switch v.Kind {
			case VariantUnit:
				// no payload
			case VariantNewtype:
				if err := r.validateType(name, v.Type); err != nil {
					return err
				}
			case VariantStruct:
				if err := checkFields(v.Fields); err != nil {
					return err
				}
			case VariantTuple:
				for _, item := range v.Items {
					if err := r.validateType(name, item); err != nil {
						return err
					}
				}
			default:
				return FormatError{
					Reason: fmt.Sprintf(
						"invalid variant kind %d in %s",
						v.Kind,
						name,
					),
				}
			}
		}
		return nil
	}
	return FormatError{
		Reason: fmt.Sprintf("unsupported definition type %T for %s", def, name),
	}
}

// validateType checks a type expression for well-formedness and resolvable
// references
func (r *Registry) validateType(container string, t Type) error {
	switch t.Kind {
	case KindBool, KindU8, KindU64, KindU128, KindStr, KindBytes:
		return nil
	case KindSeq, KindOption:
		if t.Elem == nil {
			return FormatError{
				Reason: fmt.Sprintf(
					"%s without content type in %s",
					t.Kind,
					container,
				),
			}
		}
		return r.validateType(container, *t.Elem)
	case KindTuple:
		for _, item := range t.Items {
			if err := r.validateType(container, item); err != nil {
				return err
			}
		}
		return nil
	case KindTupleArray:
		if t.Elem == nil {
			return FormatError{
				Reason: fmt.Sprintf(
					"TUPLEARRAY without content type in %s",
					container,
				),
			}
		}
		return r.validateType(container, *t.Elem)
	case KindTypename:
		if t.Ref == "" {
			return FormatError{
				Reason: fmt.Sprintf("empty TYPENAME in %s", container),
			}
		}
		if !r.Has(t.Ref) {
			return UnknownTypeNameError{Container: container, Name: t.Ref}
		}
		return nil
	}
	return FormatError{
		Reason: fmt.Sprintf("invalid type expression in %s", container),
	}
}

// checkFinite rejects definitions that contain themselves through direct
// containment. Struct fields, newtype inners, tuple items, and tuple array
// contents are direct edges. SEQ and OPTION contents and enum variant
// payloads are guarded by a length or tag on the wire and never count.
func (r *Registry) checkFinite() error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(r.names))
	var path []string

	var visitDef func(name string) error
	var visitType func(t Type) error

	visitType = func(t Type) error {
		switch t.Kind {
		case KindTypename:
			return visitDef(t.Ref)
		case KindTuple:
			for _, item := range t.Items {
				if err := visitType(item); err != nil {
					return err
				}
			}
		case KindTupleArray:
			return visitType(*t.Elem)
		}
		return nil
	}

	visitDef = func(name string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			start := 0
			for i, n := range path {
				if n == name {
					start = i
					break
				}
			}
			cycle := make([]string, 0, len(path)-start+1)
			cycle = append(cycle, path[start:]...)
			cycle = append(cycle, name)
			return InfiniteTypeError{Name: name, Cycle: cycle}
		}
		state[name] = visiting
		path = append(path, name)
		var err error
		switch d := r.defs[name].(type) {
		case *StructDef:
			for _, f := range d.Fields {
				if err = visitType(f.Type); err != nil {
					break
				}
			}
		case *NewtypeDef:
			err = visitType(d.Type)
		case *EnumDef:
			// variant payloads are tag-guarded edges
		}
		path = path[:len(path)-1]
		if err != nil {
			return err
		}
		state[name] = done
		return nil
	}

	for _, name := range r.names {
		if err := visitDef(name); err != nil {
			return err
		}
	}
	return nil
}
