package quickjs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/godotjs/javascript/internal/codegen/classconfig"
	"github.com/godotjs/javascript/internal/codegen/pattern"
	"github.com/godotjs/javascript/internal/codegen/schema"
)

var (
	constructorName    = pattern.MustCompile("constructor_name", "${class}_constructor", "class")
	constructorDeclare = pattern.MustCompile("constructor_declare",
		"static JSValue ${func}(JSContext *ctx, JSValueConst new_target, int argc, JSValueConst *argv);\n",
		"func")
	constructorDefine = pattern.MustCompile("constructor", `
static JSValue ${func}(JSContext *ctx, JSValueConst new_target, int argc, JSValueConst *argv) {
	${class} tmp;
	${initializer}
	JSValue proto = JS_GetProperty(ctx, new_target, QuickJSBinder::JS_ATOM_prototype);
	JSValue obj = JS_NewObjectProtoClass(ctx, proto, QuickJSBinder::get_context_binder(ctx)->get_origin_class_id());
	QuickJSBuiltinBinder::bind_builtin_object(ctx, obj, ${type}, &tmp);
	JS_FreeValue(ctx, proto);
	return obj;
}
`, "func", "class", "initializer", "type")

	// Arrays that can only be built from a script Array (e.g. of strings).
	arrayOnlyInitializer = pattern.MustCompile("array_only_initializer", `
	if (argc == 1) {
#ifdef DEBUG_METHODS_ENABLED
		ERR_FAIL_COND_V(!JS_IsArray(ctx, argv[0]), (JS_ThrowTypeError(ctx, "Array expected for argument #0 of ${class}(from)")));
#endif
		Variant arr = QuickJSBinder::var_to_variant(ctx, argv[0]);
		tmp.operator=(arr);
	}
	`, "class")

	// A byte length that is not a multiple of the element size is reported
	// and the trailing partial element dropped: the array is resized to
	// floor(length / sizeof(element)).
	bufferArrayInitializer = pattern.MustCompile("buffer_array_initializer", `
	if (argc == 1) {
		if (JS_IsArray(ctx, argv[0])) {
			Variant arr = QuickJSBinder::var_to_variant(ctx, argv[0]);
			tmp.operator=(arr);
		} else if (JS_IsArrayBuffer(argv[0])) {
			size_t size;
			uint8_t *buffer = JS_GetArrayBuffer(ctx, &size, argv[0]);
			if (size) {
				if (size % sizeof(${element}) != 0) {
					ERR_PRINT("Length of the ArrayBuffer does not match for ${class}");
				}
				tmp.resize(size / sizeof(${element}));
				memcpy(tmp.ptrw(), buffer, size / sizeof(${element}) * sizeof(${element}));
			}
		} else if (JS_IsDataView(argv[0])) {
			JSValue byte_length = JS_GetPropertyStr(ctx, argv[0], "byteLength");
			uint64_t length = QuickJSBinder::js_to_uint64(ctx, byte_length);
			JS_FreeValue(ctx, byte_length);

			JSValue byte_offset = JS_GetPropertyStr(ctx, argv[0], "byteOffset");
			uint64_t offset = QuickJSBinder::js_to_uint64(ctx, byte_offset);
			JS_FreeValue(ctx, byte_offset);

			size_t size;
			JSValue arraybuffer = JS_GetPropertyStr(ctx, argv[0], "buffer");
			uint8_t *buffer = JS_GetArrayBuffer(ctx, &size, arraybuffer);
			JS_FreeValue(ctx, arraybuffer);
			if (length) {
				if (length % sizeof(${element}) != 0) {
					ERR_PRINT("Length of the DataView does not match for ${class}");
				}
				tmp.resize(length / sizeof(${element}));
				memcpy(tmp.ptrw(), buffer + offset, length / sizeof(${element}) * sizeof(${element}));
			}
		} else {
#ifdef DEBUG_METHODS_ENABLED
			ERR_FAIL_COND_V(false, (JS_ThrowTypeError(ctx, "Array or ArrayBuffer expected for argument #0 of ${class}(from)")));
#endif
		}
	}
	`, "class", "element")

	paramCheck = pattern.MustCompile("param_check",
		`		ERR_FAIL_COND_V(!QuickJSBinder::validate_type(ctx, ${tag}, argv[${index}]), (JS_ThrowTypeError(ctx, "${type} expected for argument ${index} of ${signature}")));
`, "tag", "index", "type", "signature")
	paramDeclare = pattern.MustCompile("param_declare",
		"\t\tJavaScriptGCHandler *param${index} = BINDING_DATA_FROM_JS(ctx, argv[${index}]);\n", "index")
)

// overload is one arity branch of a constructor.
type overload struct {
	// cond is the branch condition; empty means "argc == <len(params)>".
	cond string
	// signature names the overload in type error messages.
	signature string
	// params are the argument types that must be builtin values, by index.
	// An empty string skips validation for that index.
	params []string
	body   string
}

func (o overload) condition() string {
	if o.cond != "" {
		return o.cond
	}
	return "argc == " + strconv.Itoa(len(o.params))
}

func renderOverloads(overloads []overload) (string, error) {
	var b strings.Builder
	b.WriteString("\n")
	for i, o := range overloads {
		if i == 0 {
			fmt.Fprintf(&b, "\tif (%s) {\n", o.condition())
		} else {
			fmt.Fprintf(&b, "\t} else if (%s) {\n", o.condition())
		}

		var checks, decls strings.Builder
		for idx, typ := range o.params {
			if typ == "" {
				continue
			}
			tag, err := Types.Tag(typ)
			if err != nil {
				return "", err
			}
			index := strconv.Itoa(idx)
			checks.WriteString(paramCheck.MustExpand(pattern.Values{
				"tag": tag, "index": index, "type": typ, "signature": o.signature,
			}))
			decls.WriteString(paramDeclare.MustExpand(pattern.Values{"index": index}))
		}
		if checks.Len() > 0 {
			b.WriteString("#ifdef DEBUG_METHODS_ENABLED\n")
			b.WriteString(checks.String())
			b.WriteString("#endif\n")
			b.WriteString(decls.String())
		}
		b.WriteString(o.body)
	}
	b.WriteString("\t}\n")
	return b.String(), nil
}

// initializer returns the argument handling block of the constructor of cls.
// Classes without a known initializer are default constructed.
func initializer(cls schema.ClassSpec, array classconfig.ArraySpec, isArray bool) (string, error) {
	if isArray {
		if array.Buffers {
			return bufferArrayInitializer.MustExpand(pattern.Values{"class": cls.Name, "element": array.Element}), nil
		}
		return arrayOnlyInitializer.MustExpand(pattern.Values{"class": cls.Name}), nil
	}
	overloads, ok := constructorOverloads[cls.Name]
	if !ok {
		return "", nil
	}
	return renderOverloads(overloads)
}

// generateConstructor returns the constructor function name, its forward
// declaration and its definition.
func generateConstructor(cls schema.ClassSpec, array classconfig.ArraySpec, isArray bool) (name, declare, define string, err error) {
	tag, err := Types.Tag(cls.Name)
	if err != nil {
		return "", "", "", err
	}
	init, err := initializer(cls, array, isArray)
	if err != nil {
		return "", "", "", fmt.Errorf("constructor of %s: %w", cls.Name, err)
	}
	name = constructorName.MustExpand(pattern.Values{"class": cls.Name})
	declare = constructorDeclare.MustExpand(pattern.Values{"func": name})
	define = constructorDefine.MustExpand(pattern.Values{
		"func":        name,
		"class":       cls.Name,
		"initializer": init,
		"type":        tag,
	})
	return name, declare, define, nil
}
