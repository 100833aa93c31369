package duktape

import (
	"github.com/godotjs/javascript/internal/codegen/common"
	"github.com/godotjs/javascript/internal/codegen/schema"
)

// The Duktape binder targets the 3.x engine API. Newer type names that have
// a 3.x counterpart are accepted and mapped onto it.
var variantTypes = map[string]string{
	schema.TypeVariant: "Variant::NIL",
	schema.TypeBoolean: "Variant::BOOL",
	schema.TypeNumber:  "Variant::REAL",
	schema.TypeString:  "Variant::STRING",
	"Vector2":          "Variant::VECTOR2",
	"Vector3":          "Variant::VECTOR3",
	"Basis":            "Variant::BASIS",
	"Quat":             "Variant::QUAT",
	"Color":            "Variant::COLOR",
	"Rect2":            "Variant::RECT2",
	"RID":              "Variant::_RID",
	"Transform2D":      "Variant::TRANSFORM2D",
	"Plane":            "Variant::PLANE",
	"AABB":             "Variant::AABB",
	"Transform":        "Variant::TRANSFORM",
	"PoolByteArray":    "Variant::POOL_BYTE_ARRAY",
	"PoolIntArray":     "Variant::POOL_INT_ARRAY",
	"PoolRealArray":    "Variant::POOL_REAL_ARRAY",
	"PoolStringArray":  "Variant::POOL_STRING_ARRAY",
	"PoolVector2Array": "Variant::POOL_VECTOR2_ARRAY",
	"PoolVector3Array": "Variant::POOL_VECTOR3_ARRAY",
	"PoolColorArray":   "Variant::POOL_COLOR_ARRAY",

	"Quaternion":         "Variant::QUAT",
	"Transform3D":        "Variant::TRANSFORM",
	"PackedByteArray":    "Variant::POOL_BYTE_ARRAY",
	"PackedInt32Array":   "Variant::POOL_INT_ARRAY",
	"PackedFloat32Array": "Variant::POOL_REAL_ARRAY",
	"PackedStringArray":  "Variant::POOL_STRING_ARRAY",
	"PackedVector2Array": "Variant::POOL_VECTOR2_ARRAY",
	"PackedVector3Array": "Variant::POOL_VECTOR3_ARRAY",
	"PackedColorArray":   "Variant::POOL_COLOR_ARRAY",
}

var nativeTypes = map[string]string{
	schema.TypeVariant: "Variant",
	schema.TypeBoolean: "bool",
	schema.TypeNumber:  "real_t",
	schema.TypeString:  "String",
	"Vector2":          "Vector2",
	"Vector3":          "Vector3",
	"Basis":            "Basis",
	"Quat":             "Quat",
	"Color":            "Color",
	"Rect2":            "Rect2",
	"RID":              "RID",
	"Transform2D":      "Transform2D",
	"Plane":            "Plane",
	"AABB":             "AABB",
	"Transform":        "Transform",
	"PoolByteArray":    "PoolByteArray",
	"PoolIntArray":     "PoolIntArray",
	"PoolRealArray":    "PoolRealArray",
	"PoolStringArray":  "PoolStringArray",
	"PoolVector2Array": "PoolVector2Array",
	"PoolVector3Array": "PoolVector3Array",
	"PoolColorArray":   "PoolColorArray",

	"Quaternion":         "Quat",
	"Transform3D":        "Transform",
	"PackedByteArray":    "PoolByteArray",
	"PackedInt32Array":   "PoolIntArray",
	"PackedFloat32Array": "PoolRealArray",
	"PackedStringArray":  "PoolStringArray",
	"PackedVector2Array": "PoolVector2Array",
	"PackedVector3Array": "PoolVector3Array",
	"PackedColorArray":   "PoolColorArray",
}

// Types is the Duktape engine's lookup table pair.
var Types = common.NewTypeTable("duktape", variantTypes, nativeTypes)
