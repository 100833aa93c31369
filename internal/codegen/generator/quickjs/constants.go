package quickjs

import (
	"strings"

	"github.com/godotjs/javascript/internal/codegen/pattern"
	"github.com/godotjs/javascript/internal/codegen/schema"
)

var registerConstant = pattern.MustCompile("register_constant",
	"\tbinder->get_builtin_binder().register_constant(${type}, \"${name}\", ${value});\n",
	"type", "name", "value")

// generateConstants emits one register_constant call per constant. The value
// is a C++ expression copied through as is.
func generateConstants(cls schema.ClassSpec) (string, error) {
	if len(cls.Constants) == 0 {
		return "", nil
	}
	tag, err := Types.Tag(cls.Name)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, c := range cls.Constants {
		b.WriteString(registerConstant.MustExpand(pattern.Values{
			"type":  tag,
			"name":  c.Name,
			"value": c.Value,
		}))
	}
	return b.String(), nil
}
