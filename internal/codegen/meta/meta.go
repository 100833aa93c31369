package meta

import (
	"github.com/godotjs/javascript/internal/codegen/classconfig"
	"github.com/godotjs/javascript/internal/codegen/schema"
)

// Metadata holds everything an engine generator needs for one run.
// Shared between the generator orchestrator and the engine-specific generators.
type Metadata struct {
	SchemaPath string
	// API is the document with class configuration already applied.
	API     *schema.API
	Classes *classconfig.Configs
	// AllowUnknownOperators turns unsupported operator overloads into warnings.
	AllowUnknownOperators bool
}
