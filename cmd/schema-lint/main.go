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

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/meridian-chain/go-meridian/chain"
	"github.com/meridian-chain/go-meridian/schema"
)

func main() {
	// Parse commandline
	flagset := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	schemaFile := flagset.String(
		"schema",
		"",
		"schema YAML file to check (defaults to the embedded chain schema)",
	)
	listNames := flagset.Bool("list", false, "list type definitions")
	if err := flagset.Parse(os.Args[1:]); err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}

	var reg *schema.Registry
	if *schemaFile == "" {
		fmt.Print("Checking embedded chain schema\n")
		reg = chain.NewRegistry()
	} else {
		fmt.Printf("Checking %s\n", *schemaFile)
		var err error
		reg, err = schema.ParseFile(*schemaFile)
		if err != nil {
			fmt.Printf("ERROR: %s\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("Schema OK: %d types\n", reg.Len())
	if *listNames {
		for _, name := range reg.Names() {
			fmt.Printf("  %s: %s\n", name, describe(reg.MustResolve(name)))
		}
	}
}

func describe(def schema.Definition) string {
	switch def := def.(type) {
	case *schema.StructDef:
		return fmt.Sprintf("struct with %d fields", len(def.Fields))
	case *schema.EnumDef:
		return fmt.Sprintf("enum with %d variants", len(def.Variants))
	case *schema.NewtypeDef:
		return fmt.Sprintf("newtype of %s", def.Type)
	default:
		return "unknown definition"
	}
}
