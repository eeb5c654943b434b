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
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ParseFile reads a YAML schema document from path and builds a validated
// registry from it
func ParseFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}
	return Parse(data)
}

// Parse builds a validated registry from a YAML schema document. The
// document is a mapping from definition names to container formats:
//
//	HashValue:
//	  NEWTYPESTRUCT: BYTES
//	BlockHeader:
//	  STRUCT:
//	    - parent_hash:
//	        TYPENAME: HashValue
//	    - number: U64
//	WriteOp:
//	  ENUM:
//	    0:
//	      Deletion: UNIT
//	    1:
//	      Value:
//	        NEWTYPE: BYTES
//
// The document is walked directly rather than unmarshaled into Go maps so
// that field order is preserved and duplicate names are reported instead of
// silently overwritten.
func Parse(data []byte) (*Registry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, FormatError{Reason: fmt.Sprintf("invalid YAML: %v", err)}
	}
	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return NewRegistry(nil)
		}
		root = deref(root.Content[0])
	}
	if root.Kind == 0 || (root.Kind == yaml.ScalarNode && root.Tag == "!!null") {
		return NewRegistry(nil)
	}
	if root.Kind != yaml.MappingNode {
		return nil, FormatError{
			Line:   root.Line,
			Reason: "top level must map definition names to container formats",
		}
	}
	defs := make(map[string]Definition, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		name, err := scalarString(root.Content[i], "definition name")
		if err != nil {
			return nil, err
		}
		if _, ok := defs[name]; ok {
			return nil, DuplicateNameError{Name: name}
		}
		def, err := parseDefinition(name, deref(root.Content[i+1]))
		if err != nil {
			return nil, err
		}
		defs[name] = def
	}
	return NewRegistry(defs)
}

// deref follows a YAML alias to its anchor node
func deref(n *yaml.Node) *yaml.Node {
	if n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		return n.Alias
	}
	return n
}

func scalarString(n *yaml.Node, what string) (string, error) {
	n = deref(n)
	if n.Kind != yaml.ScalarNode || n.Value == "" {
		return "", FormatError{
			Line:   n.Line,
			Reason: fmt.Sprintf("expected %s", what),
		}
	}
	return n.Value, nil
}

// singlePair unwraps a single-entry mapping node into its key and value
func singlePair(n *yaml.Node, what string) (string, *yaml.Node, error) {
	n = deref(n)
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return "", nil, FormatError{
			Line:   n.Line,
			Reason: fmt.Sprintf("%s must be a single-entry mapping", what),
		}
	}
	key, err := scalarString(n.Content[0], what+" key")
	if err != nil {
		return "", nil, err
	}
	return key, deref(n.Content[1]), nil
}

func parseDefinition(name string, node *yaml.Node) (Definition, error) {
	key, val, err := singlePair(node, fmt.Sprintf("definition %s", name))
	if err != nil {
		return nil, err
	}
	switch key {
	case "STRUCT":
		fields, err := parseFields(name, val)
		if err != nil {
			return nil, err
		}
		return &StructDef{Fields: fields}, nil
	case "NEWTYPESTRUCT":
		inner, err := parseType(name, val)
		if err != nil {
			return nil, err
		}
		return &NewtypeDef{Type: inner}, nil
	case "ENUM":
		return parseEnum(name, val)
	}
	return nil, FormatError{
		Line:   node.Line,
		Reason: fmt.Sprintf("unknown container format %q for %s", key, name),
	}
}

func parseFields(container string, node *yaml.Node) ([]Field, error) {
	node = deref(node)
	if node.Kind != yaml.SequenceNode {
		return nil, FormatError{
			Line:   node.Line,
			Reason: fmt.Sprintf("fields of %s must be a sequence", container),
		}
	}
	fields := make([]Field, 0, len(node.Content))
	for _, item := range node.Content {
		fieldName, fieldType, err := singlePair(item, "field")
		if err != nil {
			return nil, err
		}
		t, err := parseType(container, fieldType)
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field{Name: fieldName, Type: t})
	}
	return fields, nil
}

func parseEnum(name string, node *yaml.Node) (Definition, error) {
	node = deref(node)
	if node.Kind != yaml.MappingNode {
		return nil, FormatError{
			Line: node.Line,
			Reason: fmt.Sprintf(
				"variants of %s must map tags to variants",
				name,
			),
		}
	}
	variants := make([]Variant, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		tagNode := deref(node.Content[i])
		if tagNode.Kind != yaml.ScalarNode {
			return nil, FormatError{
				Line:   tagNode.Line,
				Reason: fmt.Sprintf("expected variant tag in %s", name),
			}
		}
		tag, err := strconv.ParseUint(tagNode.Value, 10, 32)
		if err != nil {
			return nil, FormatError{
				Line: tagNode.Line,
				Reason: fmt.Sprintf(
					"invalid variant tag %q in %s",
					tagNode.Value,
					name,
				),
			}
		}
		variantName, payload, err := singlePair(node.Content[i+1], "variant")
		if err != nil {
			return nil, err
		}
		variant := Variant{Tag: uint32(tag), Name: variantName}
		if payload.Kind == yaml.ScalarNode && payload.Value == "UNIT" {
			variant.Kind = VariantUnit
		} else {
			payloadKey, payloadVal, err := singlePair(
				payload,
				fmt.Sprintf("payload of variant %s", variantName),
			)
			if err != nil {
				return nil, err
			}
			switch payloadKey {
			case "NEWTYPE":
				variant.Kind = VariantNewtype
				variant.Type, err = parseType(name, payloadVal)
			case "STRUCT":
				variant.Kind = VariantStruct
				variant.Fields, err = parseFields(name, payloadVal)
			case "TUPLE":
				variant.Kind = VariantTuple
				variant.Items, err = parseTypeList(name, payloadVal)
			default:
				err = FormatError{
					Line: payload.Line,
					Reason: fmt.Sprintf(
						"unknown variant format %q in %s",
						payloadKey,
						name,
					),
				}
			}
			if err != nil {
				return nil, err
			}
		}
		variants = append(variants, variant)
	}
	return &EnumDef{Variants: variants}, nil
}

func parseType(container string, node *yaml.Node) (Type, error) {
	node = deref(node)
	switch node.Kind {
	case yaml.ScalarNode:
		switch node.Value {
		case "BOOL":
			return Bool(), nil
		case "U8":
			return U8(), nil
		case "U64":
			return U64(), nil
		case "U128":
			return U128(), nil
		case "STR":
			return Str(), nil
		case "BYTES":
			return Bytes(), nil
		}
		return Type{}, FormatError{
			Line: node.Line,
			Reason: fmt.Sprintf(
				"unknown type %q in %s",
				node.Value,
				container,
			),
		}
	case yaml.MappingNode:
		key, val, err := singlePair(node, "type expression")
		if err != nil {
			return Type{}, err
		}
		switch key {
		case "SEQ":
			elem, err := parseType(container, val)
			if err != nil {
				return Type{}, err
			}
			return Seq(elem), nil
		case "OPTION":
			elem, err := parseType(container, val)
			if err != nil {
				return Type{}, err
			}
			return Option(elem), nil
		case "TUPLE":
			items, err := parseTypeList(container, val)
			if err != nil {
				return Type{}, err
			}
			return Tuple(items...), nil
		case "TUPLEARRAY":
			return parseTupleArray(container, val)
		case "TYPENAME":
			name, err := scalarString(val, "TYPENAME target")
			if err != nil {
				return Type{}, err
			}
			return Typename(name), nil
		case "MAP":
			// no canonical key order is defined for maps
			return Type{}, FormatError{
				Line: node.Line,
				Reason: fmt.Sprintf(
					"map types are not supported (in %s)",
					container,
				),
			}
		}
		return Type{}, FormatError{
			Line: node.Line,
			Reason: fmt.Sprintf(
				"unknown type constructor %q in %s",
				key,
				container,
			),
		}
	}
	return Type{}, FormatError{
		Line:   node.Line,
		Reason: fmt.Sprintf("invalid type expression in %s", container),
	}
}

func parseTypeList(container string, node *yaml.Node) ([]Type, error) {
	node = deref(node)
	if node.Kind != yaml.SequenceNode {
		return nil, FormatError{
			Line: node.Line,
			Reason: fmt.Sprintf(
				"TUPLE items in %s must be a sequence",
				container,
			),
		}
	}
	items := make([]Type, 0, len(node.Content))
	for _, item := range node.Content {
		t, err := parseType(container, item)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, nil
}

func parseTupleArray(container string, node *yaml.Node) (Type, error) {
	node = deref(node)
	if node.Kind != yaml.MappingNode {
		return Type{}, FormatError{
			Line: node.Line,
			Reason: fmt.Sprintf(
				"TUPLEARRAY in %s must be a mapping with CONTENT and SIZE",
				container,
			),
		}
	}
	var content *Type
	var size *uint32
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, err := scalarString(node.Content[i], "TUPLEARRAY key")
		if err != nil {
			return Type{}, err
		}
		val := deref(node.Content[i+1])
		switch key {
		case "CONTENT":
			t, err := parseType(container, val)
			if err != nil {
				return Type{}, err
			}
			content = &t
		case "SIZE":
			if val.Kind != yaml.ScalarNode {
				return Type{}, FormatError{
					Line: val.Line,
					Reason: fmt.Sprintf(
						"expected TUPLEARRAY size in %s",
						container,
					),
				}
			}
			n, err := strconv.ParseUint(val.Value, 10, 32)
			if err != nil {
				return Type{}, FormatError{
					Line: val.Line,
					Reason: fmt.Sprintf(
						"invalid TUPLEARRAY size %q in %s",
						val.Value,
						container,
					),
				}
			}
			n32 := uint32(n)
			size = &n32
		default:
			return Type{}, FormatError{
				Line: node.Content[i].Line,
				Reason: fmt.Sprintf(
					"unknown TUPLEARRAY key %q in %s",
					key,
					container,
				),
			}
		}
	}
	if content == nil || size == nil {
		return Type{}, FormatError{
			Line: node.Line,
			Reason: fmt.Sprintf(
				"TUPLEARRAY in %s requires CONTENT and SIZE",
				container,
			),
		}
	}
	return TupleArray(*content, *size), nil
}
