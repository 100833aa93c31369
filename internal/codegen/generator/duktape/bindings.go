package duktape

import (
	"strconv"
	"strings"

	"github.com/godotjs/javascript/internal/codegen/pattern"
	"github.com/godotjs/javascript/internal/codegen/schema"
)

var (
	constantBinding = pattern.MustCompile("constant", `
	duk_push_literal(ctx, "${name}");
	duk_push_variant(ctx, ${value});
	duk_def_prop(ctx, -3, DUK_DEFPROP_HAVE_VALUE | DUK_DEFPROP_ENUMERABLE);
`, "name", "value")

	propertyBinding = pattern.MustCompile("property", `
	duk_c_function property_${name}_c_func = [](duk_context *ctx) -> duk_ret_t {
		duk_idx_t argc = duk_get_top(ctx);

		duk_push_this(ctx);
		duk_get_prop_string(ctx, -1, DUK_HIDDEN_SYMBOL("ptr"));
		${class} *ptr = static_cast<${class} *>(duk_get_pointer(ctx, -1));
		ERR_FAIL_NULL_V(ptr, DUK_ERR_TYPE_ERROR);

		if (argc) {
			${set}
		}
		${push}

		return DUK_HAS_RET_VAL;
	};
	duk_push_literal(ctx, "${name}");
	duk_push_c_function(ctx, property_${name}_c_func, 0);
	duk_push_c_function(ctx, property_${name}_c_func, 1);
	duk_def_prop(ctx, -4, DUK_DEFPROP_HAVE_GETTER | DUK_DEFPROP_HAVE_SETTER);
`, "name", "class", "set", "push")

	methodBinding = pattern.MustCompile("method", `
	duk_push_c_function(ctx, [](duk_context *ctx) -> duk_ret_t {
		duk_push_this(ctx);
		${class} *ptr = duk_get_builtin_ptr<${class}>(ctx, -1);
		ERR_FAIL_NULL_V(ptr, DUK_ERR_TYPE_ERROR);${get_args}
		${call}
		${return}
	}, ${argc});
	duk_put_prop_literal(ctx, -2, "${name}");
`, "class", "get_args", "call", "return", "argc", "name")

	argGet = pattern.MustCompile("arg_get", `
		Variant arg${index} = duk_get_variant(ctx, ${index});
		ERR_FAIL_COND_V(arg${index}.get_type() != ${type}, DUK_ERR_TYPE_ERROR);`, "index", "type")
	// Script numbers may arrive as integers.
	argGetNumber = pattern.MustCompile("arg_get_number", `
		Variant arg${index} = duk_get_variant(ctx, ${index});
		ERR_FAIL_COND_V(arg${index}.get_type() != Variant::REAL && arg${index}.get_type() != Variant::INT, DUK_ERR_TYPE_ERROR);`, "index")
	argGetVariant = pattern.MustCompile("arg_get_variant", `
		Variant arg${index} = duk_get_variant(ctx, ${index});`, "index")
)

type accessor struct {
	push *pattern.Template
	set  *pattern.Template
}

// Numbers and booleans use the direct stack accessors; every other type
// goes through a Variant.
var (
	accessors = map[string]accessor{
		schema.TypeNumber: {
			push: pattern.MustCompile("push_number", "duk_push_number(ctx, ptr->${native});", "native"),
			set:  pattern.MustCompile("get_number", "ptr->${native} = duk_get_number_default(ctx, 0, DUK_DOUBLE_NAN);", "native"),
		},
		schema.TypeBoolean: {
			push: pattern.MustCompile("push_boolean", "duk_push_boolean(ctx, ptr->${native});", "native"),
			set:  pattern.MustCompile("get_boolean", "ptr->${native} = duk_get_boolean_default(ctx, 0, false);", "native"),
		},
	}
	variantAccessor = accessor{
		push: pattern.MustCompile("push_variant", "duk_push_variant(ctx, ptr->${native});", "native"),
		set:  pattern.MustCompile("get_variant", "ptr->${native} = duk_get_variant(ctx, 0);", "native"),
	}
)

func generateConstants(cls schema.ClassSpec) string {
	var b strings.Builder
	for _, c := range cls.Constants {
		b.WriteString(constantBinding.MustExpand(pattern.Values{"name": c.Name, "value": c.Value}))
	}
	return b.String()
}

func generateProperties(cls schema.ClassSpec, native string) string {
	var b strings.Builder
	for _, p := range cls.Properties {
		acc, ok := accessors[p.Type]
		if !ok {
			acc = variantAccessor
		}
		path := p.Native
		if path == "" {
			path = p.Name
		}
		b.WriteString(propertyBinding.MustExpand(pattern.Values{
			"name":  p.Name,
			"class": native,
			"set":   acc.set.MustExpand(pattern.Values{"native": path}),
			"push":  acc.push.MustExpand(pattern.Values{"native": path}),
		}))
	}
	return b.String()
}

func generateMethods(cls schema.ClassSpec, native string) (string, error) {
	var b strings.Builder
	for _, m := range cls.Methods {
		var getArgs strings.Builder
		names := make([]string, len(m.Arguments))
		for i, a := range m.Arguments {
			index := strconv.Itoa(i)
			names[i] = "arg" + index
			switch a.Type {
			case schema.TypeVariant:
				getArgs.WriteString(argGetVariant.MustExpand(pattern.Values{"index": index}))
			case schema.TypeNumber:
				getArgs.WriteString(argGetNumber.MustExpand(pattern.Values{"index": index}))
			default:
				tag, err := Types.Tag(a.Type)
				if err != nil {
					return "", err
				}
				getArgs.WriteString(argGet.MustExpand(pattern.Values{"index": index, "type": tag}))
			}
		}

		call := "ptr->" + m.NativeMethod + "(" + strings.Join(names, ", ") + ");"
		ret := "return DUK_NO_RET_VAL;"
		if m.Return != schema.Void {
			call = "Variant ret = " + call
			ret = "duk_push_variant(ctx, ret);\n\t\treturn DUK_HAS_RET_VAL;"
		}

		b.WriteString(methodBinding.MustExpand(pattern.Values{
			"class":    native,
			"get_args": getArgs.String(),
			"call":     call,
			"return":   ret,
			"argc":     strconv.Itoa(len(m.Arguments)),
			"name":     m.Name,
		}))
	}
	return b.String(), nil
}
