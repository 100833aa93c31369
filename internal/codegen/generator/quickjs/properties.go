package quickjs

import (
	"strconv"
	"strings"

	"github.com/godotjs/javascript/internal/codegen/pattern"
	"github.com/godotjs/javascript/internal/codegen/schema"
)

var (
	membersBlock = pattern.MustCompile("members", `
	JSCFunctionMagic *getter = [](JSContext *ctx, JSValueConst this_val, int argc, JSValueConst *argv, int magic) -> JSValue {
		JavaScriptGCHandler *bind = BINDING_DATA_FROM_JS(ctx, this_val);
		const ${class} *ptr = bind->get${class}();
		switch (magic) {${getters}
		}
		return JS_UNDEFINED;
	};

	JSCFunctionMagic *setter = [](JSContext *ctx, JSValueConst this_val, int argc, JSValueConst *argv, int magic) -> JSValue {
		JavaScriptGCHandler *bind = BINDING_DATA_FROM_JS(ctx, this_val);
		${class} *ptr = bind->get${class}();
		switch (magic) {${setters}
		}
		return JS_DupValue(ctx, argv[0]);
	};
${bindings}`, "class", "getters", "setters", "bindings")

	getterCase = pattern.MustCompile("getter_case", `
			case ${index}:
				return ${value};`, "index", "value")

	setterCase = pattern.MustCompile("setter_case", `
			case ${index}:
#ifdef DEBUG_METHODS_ENABLED
				ERR_FAIL_COND_V(!QuickJSBinder::validate_type(ctx, ${type}, argv[0]), (JS_ThrowTypeError(ctx, "${type_name} expected for ${class}.${name}")));
#endif
				ptr->${native} = ${value};
				break;`, "index", "type", "type_name", "class", "name", "native", "value")

	registerProperty = pattern.MustCompile("register_property",
		"\tbinder->get_builtin_binder().register_property(${type}, \"${name}\", getter, setter, ${index});\n",
		"type", "name", "index")
)

// generateMembers emits the shared magic getter and setter of cls, one case
// per property in declaration order, and the register_property calls that
// bind each property name to its case index. A class without properties
// yields an empty block.
func generateMembers(cls schema.ClassSpec) (string, error) {
	if len(cls.Properties) == 0 {
		return "", nil
	}
	classTag, err := Types.Tag(cls.Name)
	if err != nil {
		return "", err
	}

	var getters, setters, bindings strings.Builder
	for i, p := range cls.Properties {
		index := strconv.Itoa(i)
		native := p.Native
		if native == "" {
			native = p.Name
		}

		get, err := toJS(p.Type, "ptr->"+native)
		if err != nil {
			return "", withWhere(err, cls.Name+"."+p.Name)
		}
		set, err := toNative(p.Type, "argv[0]")
		if err != nil {
			return "", withWhere(err, cls.Name+"."+p.Name)
		}
		tag, err := Types.Tag(p.Type)
		if err != nil {
			return "", withWhere(err, cls.Name+"."+p.Name)
		}

		getters.WriteString(getterCase.MustExpand(pattern.Values{"index": index, "value": get}))
		setters.WriteString(setterCase.MustExpand(pattern.Values{
			"index":     index,
			"type":      tag,
			"type_name": p.Type,
			"class":     cls.Name,
			"name":      p.Name,
			"native":    native,
			"value":     set,
		}))
		bindings.WriteString(registerProperty.MustExpand(pattern.Values{
			"type":  classTag,
			"name":  p.Name,
			"index": index,
		}))
	}

	return membersBlock.MustExpand(pattern.Values{
		"class":    cls.Name,
		"getters":  getters.String(),
		"setters":  setters.String(),
		"bindings": bindings.String(),
	}), nil
}
