// Package quickjs renders the QuickJS binding source for the builtin value
// types: one constructor per class, a property/method/operator/constant
// binder per class, and the bind_builtin_classes_gen registration function.
package quickjs

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

// FileName is the name of the generated source inside the output directory.
const FileName = "quickjs_builtin_binder.gen.cpp"

const fileTemplate = `{{.Header}}
#include "core/variant/variant.h"

#include "quickjs_builtin_binder.h"
#include "quickjs_worker.h"

#ifndef inf
#define inf INFINITY
#endif

{{range .Classes}}{{.Declarations}}{{end}}
void QuickJSBuiltinBinder::bind_builtin_classes_gen() {

{{range .Classes}}{{.Registration}}{{end}}
}
{{range .Classes}}{{.Definitions}}{{end}}`

var fileTmpl = template.Must(template.New("quickjs").Parse(fileTemplate))

var (
	bindDeclare = pattern.MustCompile("bind_declare", "static void bind_${class}_properties(JSContext *octx);\n", "class")
	bindDefine  = pattern.MustCompile("bind_define", `
static void bind_${class}_properties(JSContext *octx) {
	QuickJSBinder *binder = QuickJSBinder::get_context_binder(octx);
${members}
${operators}
${constants}
${methods}
}
`, "class", "members", "operators", "constants", "methods")
	bindCall      = pattern.MustCompile("bind_call", "\tbind_${class}_properties(ctx);\n", "class")
	registerClass = pattern.MustCompile("register_class",
		"\tregister_builtin_class(${type}, \"${class}\", ${constructor}, ${argc});\n",
		"type", "class", "constructor", "argc")
)

// classOutput is the generated code of one class, split by file section.
type classOutput struct {
	Declarations string
	Registration string
	Definitions  string
}

// Render produces the complete QuickJS binding source for md.
func Render(logger *slog.Logger, md *meta.Metadata) ([]byte, error) {
	if err := Types.Check(md.API); err != nil {
		return nil, err
	}

	header, err := common.FileHeader("QuickJS", md.SchemaPath, md.API.Digest())
	if err != nil {
		return nil, err
	}

	classes := make([]classOutput, 0, len(md.API.Classes))
	for _, cls := range md.API.Classes {
		logger.Debug("Generating class bindings", "class", cls.Name)
		out, err := generateClass(logger, md, cls)
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w", cls.Name, err)
		}
		log.Trace(logger, "Generated class bindings", "class", cls.Name,
			"properties", len(cls.Properties), "methods", len(cls.Methods),
			"operators", len(cls.Operators), "constants", len(cls.Constants))
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

func generateClass(logger *slog.Logger, md *meta.Metadata, cls schema.ClassSpec) (classOutput, error) {
	array, isArray := md.Classes.ArrayOf(cls.Name)
	ctorName, ctorDeclare, ctorDefine, err := generateConstructor(cls, array, isArray)
	if err != nil {
		return classOutput{}, err
	}

	members, err := generateMembers(cls)
	if err != nil {
		return classOutput{}, err
	}
	operators, err := generateOperators(logger, cls, md.AllowUnknownOperators)
	if err != nil {
		return classOutput{}, err
	}
	constants, err := generateConstants(cls)
	if err != nil {
		return classOutput{}, err
	}
	methods, err := generateMethods(cls)
	if err != nil {
		return classOutput{}, err
	}

	tag, err := Types.Tag(cls.Name)
	if err != nil {
		return classOutput{}, err
	}
	registration := registerClass.MustExpand(pattern.Values{
		"type":        tag,
		"class":       cls.Name,
		"constructor": ctorName,
		"argc":        fmt.Sprint(cls.ConstructorArgc),
	}) + bindCall.MustExpand(pattern.Values{"class": cls.Name})

	return classOutput{
		Declarations: ctorDeclare + bindDeclare.MustExpand(pattern.Values{"class": cls.Name}),
		Registration: registration,
		Definitions: ctorDefine + bindDefine.MustExpand(pattern.Values{
			"class":     cls.Name,
			"members":   members,
			"operators": operators,
			"constants": constants,
			"methods":   methods,
		}),
	}, nil
}
