package quickjs

import (
	"github.com/godotjs/javascript/internal/codegen/common"
	"github.com/godotjs/javascript/internal/codegen/pattern"
	"github.com/godotjs/javascript/internal/codegen/schema"
)

var variantTypes = map[string]string{
	schema.TypeVariant:   "Variant::NIL",
	schema.TypeBoolean:   "Variant::BOOL",
	schema.TypeNumber:    "Variant::FLOAT",
	schema.TypeString:    "Variant::STRING",
	"Vector2":            "Variant::VECTOR2",
	"Vector3":            "Variant::VECTOR3",
	"Basis":              "Variant::BASIS",
	"Quaternion":         "Variant::QUATERNION",
	"Color":              "Variant::COLOR",
	"Rect2":              "Variant::RECT2",
	"RID":                "Variant::RID",
	"Transform2D":        "Variant::TRANSFORM2D",
	"Plane":              "Variant::PLANE",
	"AABB":               "Variant::AABB",
	"Transform3D":        "Variant::TRANSFORM3D",
	"PackedByteArray":    "Variant::PACKED_BYTE_ARRAY",
	"PackedInt32Array":   "Variant::PACKED_INT32_ARRAY",
	"PackedInt64Array":   "Variant::PACKED_INT64_ARRAY",
	"PackedFloat32Array": "Variant::PACKED_FLOAT32_ARRAY",
	"PackedFloat64Array": "Variant::PACKED_FLOAT64_ARRAY",
	"PackedStringArray":  "Variant::PACKED_STRING_ARRAY",
	"PackedVector2Array": "Variant::PACKED_VECTOR2_ARRAY",
	"PackedVector3Array": "Variant::PACKED_VECTOR3_ARRAY",
	"PackedColorArray":   "Variant::PACKED_COLOR_ARRAY",
}

var nativeTypes = map[string]string{
	schema.TypeVariant:   "Variant",
	schema.TypeBoolean:   "bool",
	schema.TypeNumber:    "real_t",
	schema.TypeString:    "String",
	"Vector2":            "Vector2",
	"Vector3":            "Vector3",
	"Basis":              "Basis",
	"Quaternion":         "Quaternion",
	"Color":              "Color",
	"Rect2":              "Rect2",
	"RID":                "RID",
	"Transform2D":        "Transform2D",
	"Plane":              "Plane",
	"AABB":               "AABB",
	"Transform3D":        "Transform3D",
	"PackedByteArray":    "PackedByteArray",
	"PackedInt32Array":   "PackedInt32Array",
	"PackedInt64Array":   "PackedInt64Array",
	"PackedFloat32Array": "PackedFloat32Array",
	"PackedFloat64Array": "PackedFloat64Array",
	"PackedStringArray":  "PackedStringArray",
	"PackedVector2Array": "PackedVector2Array",
	"PackedVector3Array": "PackedVector3Array",
	"PackedColorArray":   "PackedColorArray",
}

// Types is the QuickJS engine's lookup table pair.
var Types = common.NewTypeTable("quickjs", variantTypes, nativeTypes)

var (
	jsToNative = map[string]*pattern.Template{
		schema.TypeNumber:  pattern.MustCompile("js_to_number", "QuickJSBinder::js_to_number(ctx, ${arg})", "arg"),
		schema.TypeString:  pattern.MustCompile("js_to_string", "QuickJSBinder::js_to_string(ctx, ${arg})", "arg"),
		schema.TypeBoolean: pattern.MustCompile("js_to_bool", "QuickJSBinder::js_to_bool(ctx, ${arg})", "arg"),
		schema.TypeVariant: pattern.MustCompile("js_to_variant", "(BINDING_DATA_FROM_JS(ctx, ${arg}))->get_value()", "arg"),
	}
	builtinToNative = pattern.MustCompile("builtin_to_native", "*(BINDING_DATA_FROM_JS(ctx, ${arg}))->get${class}()", "arg", "class")

	nativeToJS = map[string]*pattern.Template{
		schema.TypeNumber:  pattern.MustCompile("to_js_number", "QuickJSBinder::to_js_number(ctx, ${arg})", "arg"),
		schema.TypeString:  pattern.MustCompile("to_js_string", "QuickJSBinder::to_js_string(ctx, ${arg})", "arg"),
		schema.TypeBoolean: pattern.MustCompile("to_js_bool", "QuickJSBinder::to_js_bool(ctx, ${arg})", "arg"),
		schema.TypeVariant: pattern.MustCompile("variant_to_var", "QuickJSBinder::variant_to_var(ctx, ${arg})", "arg"),
	}
	builtinToJS = pattern.MustCompile("new_object_from", "QuickJSBuiltinBinder::new_object_from(ctx, ${arg})", "arg")
)

// isBuiltin reports whether typ is a builtin value type carried by a
// binding handler, as opposed to a primitive script value.
func isBuiltin(typ string) bool {
	_, primitive := jsToNative[typ]
	return !primitive
}

// toNative converts the script value expression arg to the native type typ.
func toNative(typ, arg string) (string, error) {
	if _, err := Types.Native(typ); err != nil {
		return "", err
	}
	if t, ok := jsToNative[typ]; ok {
		return t.MustExpand(pattern.Values{"arg": arg}), nil
	}
	return builtinToNative.MustExpand(pattern.Values{"arg": arg, "class": typ}), nil
}

// toJS converts the native expression arg of type typ to a script value.
func toJS(typ, arg string) (string, error) {
	if _, err := Types.Native(typ); err != nil {
		return "", err
	}
	if t, ok := nativeToJS[typ]; ok {
		return t.MustExpand(pattern.Values{"arg": arg}), nil
	}
	return builtinToJS.MustExpand(pattern.Values{"arg": arg}), nil
}

// returnValue is the expression a trampoline returns for a call result held in ret.
func returnValue(typ string) (string, error) {
	if typ == schema.Void {
		return "JS_UNDEFINED", nil
	}
	return toJS(typ, "ret")
}

// callPrefix declares the result variable of a native call, or nothing for void.
func callPrefix(typ string) (string, error) {
	if typ == schema.Void {
		return "", nil
	}
	native, err := Types.Native(typ)
	if err != nil {
		return "", err
	}
	return native + " ret = ", nil
}
