// Package duktape renders the Duktape binding source: one
// register_properties_<Class> function per class and the
// register_builtin_class_properties_gen entry point calling them all.
//
// Duktape has no operator overloading, so operators in the document are
// not bound by this engine.
package duktape

import (
	"bytes"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/godotjs/javascript/internal/codegen/common"
	"github.com/godotjs/javascript/internal/codegen/meta"
	"github.com/godotjs/javascript/internal/codegen/pattern"
	"github.com/godotjs/javascript/internal/codegen/schema"
	"github.com/godotjs/javascript/internal/log"
)

const FileName = "duktape_builtin_bindings.gen.cpp"

const fileTemplate = `{{.Header}}
#include "duktape_builtin_bindings.h"
{{range .Classes}}{{.Definition}}{{end}}
void register_builtin_class_properties_gen(duk_context *ctx) {
{{range .Classes}}{{.Call}}{{end}}}
`

var fileTmpl = template.Must(template.New("duktape").Parse(fileTemplate))

var (
	classBinding = pattern.MustCompile("class", `
static void register_properties_${name}(duk_context *ctx) {
	duk_push_heapptr(ctx, class_constructors->get(${variant_type}));
${constants}
	duk_pop(ctx);

	duk_push_heapptr(ctx, class_prototypes->get(${variant_type}));
${properties}${methods}
	duk_pop(ctx);
}
`, "name", "variant_type", "constants", "properties", "methods")

	classCall = pattern.MustCompile("class_call", "\tregister_properties_${name}(ctx);\n", "name")
)

type classOutput struct {
	Definition string
	Call       string
}

// Render produces the complete Duktape binding source for md.
func Render(logger *slog.Logger, md *meta.Metadata) ([]byte, error) {
	if err := Types.Check(md.API); err != nil {
		return nil, err
	}

	header, err := common.FileHeader("Duktape", md.SchemaPath, md.API.Digest())
	if err != nil {
		return nil, err
	}

	classes := make([]classOutput, 0, len(md.API.Classes))
	for _, cls := range md.API.Classes {
		logger.Debug("Generating class bindings", "class", cls.Name)
		if len(cls.Operators) > 0 {
			logger.Debug("Operators are not bound by this engine", "class", cls.Name, "count", len(cls.Operators))
		}
		out, err := generateClass(cls)
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w", cls.Name, err)
		}
		log.Trace(logger, "Generated class bindings", "class", cls.Name,
			"properties", len(cls.Properties), "methods", len(cls.Methods), "constants", len(cls.Constants))
		classes = append(classes, out)
	}

	var buf bytes.Buffer
	data := struct {
		Header  string
		Classes []classOutput
	}{Header: header, Classes: classes}
	if err := fileTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}
	return buf.Bytes(), nil
}

func generateClass(cls schema.ClassSpec) (classOutput, error) {
	tag, err := Types.Tag(cls.Name)
	if err != nil {
		return classOutput{}, err
	}
	native, err := Types.Native(cls.Name)
	if err != nil {
		return classOutput{}, err
	}
	methods, err := generateMethods(cls, native)
	if err != nil {
		return classOutput{}, err
	}
	return classOutput{
		Definition: classBinding.MustExpand(pattern.Values{
			"name":         cls.Name,
			"variant_type": tag,
			"constants":    generateConstants(cls),
			"properties":   generateProperties(cls, native),
			"methods":      methods,
		}),
		Call: classCall.MustExpand(pattern.Values{"name": cls.Name}),
	}, nil
}
