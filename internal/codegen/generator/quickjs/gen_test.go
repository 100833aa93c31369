package quickjs

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godotjs/javascript/internal/codegen/classconfig"
	"github.com/godotjs/javascript/internal/codegen/meta"
	"github.com/godotjs/javascript/internal/codegen/schema"
)

func render(t *testing.T, doc string, configs *classconfig.Configs, allowUnknown bool) (string, error) {
	t.Helper()
	api, err := schema.Parse([]byte(doc), "api.json")
	require.NoError(t, err)
	if configs == nil {
		configs = classconfig.New()
	}
	resolved, err := configs.Resolve(api)
	require.NoError(t, err)
	out, err := Render(slog.New(slog.DiscardHandler), &meta.Metadata{
		SchemaPath:            "api.json",
		API:                   resolved,
		Classes:               configs,
		AllowUnknownOperators: allowUnknown,
	})
	return string(out), err
}

func mustRender(t *testing.T, doc string, configs *classconfig.Configs) string {
	t.Helper()
	out, err := render(t, doc, configs, false)
	require.NoError(t, err)
	return out
}

const vector2Doc = `[
  {
    "name": "Vector2",
    "constructor_argc": 2,
    "properties": [
      {"name": "x", "type": "number"},
      {"name": "y", "type": "number"}
    ],
    "methods": [
      {"name": "length", "native_method": "length", "return": "number", "arguments": []},
      {"name": "normalize", "native_method": "normalize", "return": "void", "arguments": []},
      {"name": "rotated", "native_method": "rotated", "return": "Vector2", "arguments": [{"type": "number"}]}
    ],
    "operators": [
      {"name": "neg", "native_method": "operator-", "return": "Vector2", "arguments": []},
      {"name": "add", "native_method": "operator+", "return": "Vector2", "arguments": [{"type": "Vector2"}]},
      {"name": "equals", "native_method": "operator==", "return": "boolean", "arguments": [{"type": "Vector2"}]}
    ],
    "constants": [
      {"name": "ZERO", "value": "Vector2(0, 0)"},
      {"name": "ONE", "value": "Vector2(1, 1)"}
    ]
  }
]`

func TestRenderProperties(t *testing.T) {
	out := mustRender(t, vector2Doc, nil)

	assert.Contains(t, out, "case 0:\n\t\t\t\treturn QuickJSBinder::to_js_number(ctx, ptr->x);")
	assert.Contains(t, out, "case 1:\n\t\t\t\treturn QuickJSBinder::to_js_number(ctx, ptr->y);")
	assert.NotContains(t, out, "case 2:")
	assert.Less(t, strings.Index(out, "case 0:"), strings.Index(out, "case 1:"))

	assert.Contains(t, out, "ptr->x = QuickJSBinder::js_to_number(ctx, argv[0]);")
	assert.Contains(t, out, `ERR_FAIL_COND_V(!QuickJSBinder::validate_type(ctx, Variant::FLOAT, argv[0]), (JS_ThrowTypeError(ctx, "number expected for Vector2.x")));`)
	assert.Contains(t, out, `register_property(Variant::VECTOR2, "x", getter, setter, 0);`)
	assert.Contains(t, out, `register_property(Variant::VECTOR2, "y", getter, setter, 1);`)
	assert.NotContains(t, out, "${")
}

func TestRenderPropertyRemap(t *testing.T) {
	doc := `[{"name": "Transform2D", "properties": [
		{"name": "x", "type": "Vector2"},
		{"name": "y", "type": "Vector2"},
		{"name": "origin", "type": "Vector2"}
	]}, {"name": "Vector2"}]`
	out := mustRender(t, doc, classconfig.Defaults())

	assert.Contains(t, out, "return QuickJSBuiltinBinder::new_object_from(ctx, ptr->columns[0]);")
	assert.Contains(t, out, "ptr->columns[2] = *(BINDING_DATA_FROM_JS(ctx, argv[0]))->getVector2();")
	assert.Contains(t, out, `register_property(Variant::TRANSFORM2D, "origin", getter, setter, 2);`)
}

func TestRenderNoPropertiesOmitsMembers(t *testing.T) {
	out := mustRender(t, `[{"name": "RID", "constructor_argc": 0}]`, nil)
	assert.NotContains(t, out, "JSCFunctionMagic")
	assert.Contains(t, out, `register_builtin_class(Variant::RID, "RID", RID_constructor, 0);`)
	assert.Contains(t, out, "bind_RID_properties(ctx);")
}

func TestRenderMethods(t *testing.T) {
	out := mustRender(t, vector2Doc, nil)

	assert.Contains(t, out, "real_t ret = ptr->length();")
	assert.Contains(t, out, "return QuickJSBinder::to_js_number(ctx, ret);")
	assert.Contains(t, out, "ptr->normalize();\n\t\t\treturn JS_UNDEFINED;")
	assert.Contains(t, out, "const real_t &arg0 = QuickJSBinder::js_to_number(ctx, argv[0]);")
	assert.Contains(t, out, "Vector2 ret = ptr->rotated(arg0);")
	assert.Contains(t, out, "return QuickJSBuiltinBinder::new_object_from(ctx, ret);")
	assert.Contains(t, out, `"number expected for argument 0 of Vector2.rotated"`)
}

func TestRenderDefaultArgument(t *testing.T) {
	doc := `[{"name": "Vector2", "methods": [
		{"name": "snapped", "native_method": "snapped", "return": "Vector2",
		 "arguments": [{"type": "number", "default_value": "1", "has_default_value": true}]}
	]}]`
	out := mustRender(t, doc, nil)
	assert.Contains(t, out, "const bool has_arg0 = argc > 0 && !JS_IsUndefined(argv[0]);")
	assert.Contains(t, out, "const real_t &arg0 = has_arg0 ? real_t(QuickJSBinder::js_to_number(ctx, argv[0])) : real_t(1);")
}

func TestRenderDocumentedDefaults(t *testing.T) {
	tests := []struct {
		name, typ, def, want string
	}{
		{"null variant", "Variant", "null", ": Variant();"},
		{"null builtin", "Vector2", "null", ": Vector2();"},
		{"empty array", "Variant", "[]", ": Variant(Array());"},
		{"empty dictionary", "Variant", "{}", ": Variant(Dictionary());"},
		{"constructor", "Vector2", "Vector2(0, 0)", ": Vector2(Vector2(0, 0));"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := fmt.Sprintf(`[{"name": "Vector2", "methods": [
				{"name": "pick", "native_method": "pick", "return": "void",
				 "arguments": [{"type": %q, "default_value": %q, "has_default_value": true}]}
			]}]`, tt.typ, tt.def)
			out := mustRender(t, doc, nil)
			assert.Contains(t, out, tt.want)
			for _, literal := range []string{"(null)", "([])", "({})"} {
				assert.NotContains(t, out, literal)
			}
		})
	}
}

func TestRenderUnrepresentableDefault(t *testing.T) {
	doc := `[{"name": "Vector2", "methods": [
		{"name": "pick", "native_method": "pick", "return": "void",
		 "arguments": [{"type": "Vector2", "default_value": "[]", "has_default_value": true}]}
	]}]`
	_, err := render(t, doc, nil, false)
	var le *schema.LookupError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "default values", le.Table)
	assert.Equal(t, "[]", le.Key)
	assert.Equal(t, "argument 0 of Vector2.pick", le.Where)
}

func TestRenderConstants(t *testing.T) {
	out := mustRender(t, vector2Doc, nil)
	zero := strings.Index(out, `register_constant(Variant::VECTOR2, "ZERO", Vector2(0, 0));`)
	one := strings.Index(out, `register_constant(Variant::VECTOR2, "ONE", Vector2(1, 1));`)
	require.NotEqual(t, -1, zero)
	require.NotEqual(t, -1, one)
	assert.Less(t, zero, one)
}

func TestRenderOperators(t *testing.T) {
	out := mustRender(t, vector2Doc, nil)

	assert.Contains(t, out, `JS_SetPropertyStr(octx, base_operators, "neg",`)
	assert.Contains(t, out, `JS_SetPropertyStr(octx, base_operators, "+",`)
	assert.Contains(t, out, `JS_SetPropertyStr(octx, base_operators, "==",`)
	assert.Contains(t, out, "Vector2 ret = ptr->operator-();")
	assert.Contains(t, out, "Vector2 ret = ptr->operator+(*target);")
	assert.Contains(t, out, "bool ret = ptr->operator==(*target);")
	assert.Contains(t, out, "return QuickJSBinder::to_js_bool(ctx, ret);")
	assert.Contains(t, out, "get_cross_type_operators(Variant::VECTOR2, operators);")
}

func TestRenderUnsupportedOperators(t *testing.T) {
	tests := []struct {
		name string
		op   string
	}{
		{"unknown symbol", `{"name": "mod", "native_method": "operator%", "return": "Vector2", "arguments": [{"type": "Vector2"}]}`},
		{"cross type operand", `{"name": "scale", "native_method": "operator*", "return": "Vector2", "arguments": [{"type": "number"}]}`},
		{"unary plus", `{"name": "pos", "native_method": "operator+", "return": "Vector2", "arguments": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `[{"name": "Vector2", "operators": [` + tt.op + `]}]`

			_, err := render(t, doc, nil, false)
			var ue *UnsupportedOperatorError
			require.True(t, errors.As(err, &ue), "got %v", err)
			assert.Equal(t, "Vector2", ue.Class)

			out, err := render(t, doc, nil, true)
			require.NoError(t, err)
			assert.NotContains(t, out, "JS_SetPropertyStr(octx, base_operators")
		})
	}
}

func TestRenderBuiltinOperandOfOtherType(t *testing.T) {
	doc := `[{"name": "Basis",
		"properties": [
			{"name": "x", "type": "Vector3"},
			{"name": "y", "type": "Vector3"},
			{"name": "z", "type": "Vector3"}
		],
		"operators": [
			{"name": "xform", "native_method": "operator*", "return": "Vector3", "arguments": [{"type": "Vector3"}]}
		]}]`

	_, err := render(t, doc, nil, false)
	var ue *UnsupportedOperatorError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "Basis", ue.Class)
	assert.Equal(t, "operand type Vector3 differs from Basis", ue.Reason)

	out, err := render(t, doc, nil, true)
	require.NoError(t, err)
	assert.Contains(t, out, "Basis ret = ptr->operator*(*target);")
	assert.NotContains(t, out, "Vector3 ret = ptr->operator*(")
	assert.Contains(t, out, "get_cross_type_operators(Variant::BASIS, operators);")
}

func TestRenderDuplicateOperatorKey(t *testing.T) {
	doc := `[{"name": "Vector2", "operators": [
		{"name": "add", "native_method": "operator+", "return": "Vector2", "arguments": [{"type": "Vector2"}]},
		{"name": "plus", "native_method": "operator+", "return": "Vector2", "arguments": [{"type": "Vector2"}]}
	]}]`
	_, err := render(t, doc, nil, false)
	var ue *UnsupportedOperatorError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "plus", ue.Operator)
}

func TestRenderPackedArrays(t *testing.T) {
	doc := `[{"name": "PackedByteArray"}, {"name": "PackedFloat64Array"}, {"name": "PackedStringArray"}]`
	out := mustRender(t, doc, classconfig.Defaults())

	assert.Contains(t, out, "if (size % sizeof(uint8_t) != 0) {")
	assert.Contains(t, out, `ERR_PRINT("Length of the ArrayBuffer does not match for PackedByteArray");`)
	assert.Contains(t, out, "tmp.resize(size / sizeof(uint8_t));")
	assert.Contains(t, out, "tmp.resize(length / sizeof(double));")
	assert.Contains(t, out, `"Array expected for argument #0 of PackedStringArray(from)"`)

	start := strings.Index(out, "static JSValue PackedStringArray_constructor(JSContext *ctx, JSValueConst new_target, int argc, JSValueConst *argv) {")
	require.NotEqual(t, -1, start)
	assert.NotContains(t, out[start:], "JS_IsArrayBuffer")
}

func TestRenderConstructorOverloads(t *testing.T) {
	out := mustRender(t, `[{"name": "Rect2"}, {"name": "Vector2"}]`, nil)

	assert.Contains(t, out, "\tif (argc == 4) {\n")
	assert.Contains(t, out, "\t} else if (argc == 2) {\n#ifdef DEBUG_METHODS_ENABLED\n")
	assert.Contains(t, out, `"Vector2 expected for argument 1 of Rect2(position, size)"`)
	assert.Contains(t, out, "JavaScriptGCHandler *param1 = BINDING_DATA_FROM_JS(ctx, argv[1]);")
	assert.Contains(t, out, "QuickJSBuiltinBinder::bind_builtin_object(ctx, obj, Variant::RECT2, &tmp);")
}

func TestRenderLayout(t *testing.T) {
	out := mustRender(t, `[{"name": "Vector2"}, {"name": "Color"}]`, nil)

	require.True(t, strings.HasPrefix(out, "/* THIS FILE IS GENERATED DO NOT EDIT */\n"))
	declare := strings.Index(out, "static JSValue Color_constructor(JSContext *ctx, JSValueConst new_target, int argc, JSValueConst *argv);")
	entry := strings.Index(out, "void QuickJSBuiltinBinder::bind_builtin_classes_gen() {")
	define := strings.Index(out, "static void bind_Color_properties(JSContext *octx) {\n")
	assert.True(t, declare >= 0 && entry > declare && define > entry, "declarations, registration and definitions out of order")

	// Classes keep document order.
	assert.Less(t,
		strings.Index(out, `register_builtin_class(Variant::VECTOR2`),
		strings.Index(out, `register_builtin_class(Variant::COLOR`))
}

func TestRenderDeterministic(t *testing.T) {
	first := mustRender(t, vector2Doc, classconfig.Defaults())
	second := mustRender(t, vector2Doc, classconfig.Defaults())
	assert.Equal(t, first, second)
}

func TestRenderUnknownType(t *testing.T) {
	doc := `[{"name": "Vector2", "properties": [{"name": "n", "type": "Vector4"}]}]`
	_, err := render(t, doc, nil, false)

	var le *schema.LookupError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "Vector4", le.Key)
	assert.Equal(t, "Vector2.n", le.Where)
}
