package quickjs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/godotjs/javascript/internal/codegen/pattern"
	"github.com/godotjs/javascript/internal/codegen/schema"
)

var (
	methodBinding = pattern.MustCompile("method", `
	binder->get_builtin_binder().register_method(
		${type},
		"${name}",
		[](JSContext *ctx, JSValueConst this_val, int argc, JSValueConst *argv) {
			JavaScriptGCHandler *bind = BINDING_DATA_FROM_JS(ctx, this_val);
			${class} *ptr = bind->get${class}();${arg_declares}
			${call}
			return ${return};
		},
		${argc});
`, "type", "name", "class", "arg_declares", "call", "return", "argc")

	argDeclare = pattern.MustCompile("arg_declare", `
#ifdef DEBUG_METHODS_ENABLED
			ERR_FAIL_COND_V(!QuickJSBinder::validate_type(ctx, ${type}, argv[${index}]), (JS_ThrowTypeError(ctx, "${type_name} expected for argument ${index} of ${class}.${name}")));
#endif
			const ${native} &arg${index} = ${arg};`,
		"type", "index", "type_name", "class", "name", "native", "arg")

	// Arguments with a default value may be omitted or passed as undefined.
	argDeclareDefault = pattern.MustCompile("arg_declare_default", `
			const bool has_arg${index} = argc > ${index} && !JS_IsUndefined(argv[${index}]);
#ifdef DEBUG_METHODS_ENABLED
			ERR_FAIL_COND_V(has_arg${index} && !QuickJSBinder::validate_type(ctx, ${type}, argv[${index}]), (JS_ThrowTypeError(ctx, "${type_name} expected for argument ${index} of ${class}.${name}")));
#endif
			const ${native} &arg${index} = has_arg${index} ? ${native}(${arg}) : ${native}(${default});`,
		"type", "index", "type_name", "class", "name", "native", "arg", "default")

	nativeCall = pattern.MustCompile("native_call", "${prefix}ptr->${method}(${args});", "prefix", "method", "args")
)

// generateMethods emits one register_method trampoline per method of cls.
func generateMethods(cls schema.ClassSpec) (string, error) {
	classTag, err := Types.Tag(cls.Name)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, m := range cls.Methods {
		where := cls.Name + "." + m.Name

		var decls strings.Builder
		for i, a := range m.Arguments {
			decl, err := argumentDeclaration(cls.Name, m.Name, i, a)
			if err != nil {
				return "", withWhere(err, where)
			}
			decls.WriteString(decl)
		}

		prefix, err := callPrefix(m.Return)
		if err != nil {
			return "", withWhere(err, where+" return")
		}
		ret, err := returnValue(m.Return)
		if err != nil {
			return "", withWhere(err, where+" return")
		}

		b.WriteString(methodBinding.MustExpand(pattern.Values{
			"type":         classTag,
			"name":         m.Name,
			"class":        cls.Name,
			"arg_declares": decls.String(),
			"call": nativeCall.MustExpand(pattern.Values{
				"prefix": prefix,
				"method": m.NativeMethod,
				"args":   argNames(len(m.Arguments)),
			}),
			"return": ret,
			"argc":   strconv.Itoa(len(m.Arguments)),
		}))
	}
	return b.String(), nil
}

func argumentDeclaration(class, method string, index int, a schema.ArgumentSpec) (string, error) {
	tag, err := Types.Tag(a.Type)
	if err != nil {
		return "", err
	}
	native, err := Types.Native(a.Type)
	if err != nil {
		return "", err
	}
	conv, err := toNative(a.Type, argv(index))
	if err != nil {
		return "", err
	}

	values := pattern.Values{
		"type":      tag,
		"index":     strconv.Itoa(index),
		"type_name": a.Type,
		"class":     class,
		"name":      method,
		"native":    native,
		"arg":       conv,
	}
	if a.HasDefaultValue && a.DefaultValue != nil {
		def, ok := defaultExpression(a.Type, *a.DefaultValue)
		if !ok {
			return "", &schema.LookupError{
				Table: "default values",
				Key:   *a.DefaultValue,
				Where: fmt.Sprintf("argument %d of %s.%s", index, class, method),
			}
		}
		values["default"] = def
		return argDeclareDefault.MustExpand(values), nil
	}
	return argDeclare.MustExpand(values), nil
}

// defaultExpression turns a documented default into the constructor argument
// of the native type. null is the default-constructed value; the empty array
// and dictionary literals only fit a Variant.
func defaultExpression(typ, raw string) (string, bool) {
	switch v := strings.TrimSpace(raw); v {
	case "":
		return "", false
	case "null":
		return "", true
	case "[]", "{}":
		if typ != schema.TypeVariant {
			return "", false
		}
		if v == "[]" {
			return "Array()", true
		}
		return "Dictionary()", true
	default:
		return v, true
	}
}
