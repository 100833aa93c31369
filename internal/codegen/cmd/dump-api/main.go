// Command dump-api prints the API document after class configuration has
// been applied, as the engine generators see it.
//
//	go run ./internal/codegen/cmd/dump-api builtin_api.gen.json [overrides.yaml]
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/godotjs/javascript/internal/codegen/classconfig"
	"github.com/godotjs/javascript/internal/codegen/schema"
)

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Fprintln(os.Stderr, "usage: dump-api <api.json> [overrides]")
		os.Exit(2)
	}

	api, err := schema.Load(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load API document: %v\n", err)
		os.Exit(1)
	}

	overrides := ""
	if len(os.Args) == 3 {
		overrides = os.Args[2]
	}
	configs, err := classconfig.Load(overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load class configuration: %v\n", err)
		os.Exit(1)
	}
	resolved, err := configs.Resolve(api)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to apply class configuration: %v\n", err)
		os.Exit(1)
	}

	output, err := json.MarshalIndent(resolved.Classes, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(output))
}
