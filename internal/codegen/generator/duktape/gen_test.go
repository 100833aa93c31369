package duktape

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godotjs/javascript/internal/codegen/classconfig"
	"github.com/godotjs/javascript/internal/codegen/meta"
	"github.com/godotjs/javascript/internal/codegen/schema"
)

func render(t *testing.T, doc string) (string, error) {
	t.Helper()
	api, err := schema.Parse([]byte(doc), "api.json")
	require.NoError(t, err)
	out, err := Render(slog.New(slog.DiscardHandler), &meta.Metadata{
		SchemaPath: "api.json",
		API:        api,
		Classes:    classconfig.New(),
	})
	return string(out), err
}

const doc = `[
  {
    "name": "Vector2",
    "properties": [
      {"name": "x", "type": "number"},
      {"name": "y", "type": "number"}
    ],
    "methods": [
      {"name": "normalize", "native_method": "normalize", "return": "void", "arguments": []},
      {"name": "rotated", "native_method": "rotated", "return": "Vector2", "arguments": [{"type": "number"}]},
      {"name": "dot", "native_method": "dot", "return": "number", "arguments": [{"type": "Vector2"}]}
    ],
    "operators": [
      {"name": "add", "native_method": "operator+", "return": "Vector2", "arguments": [{"type": "Vector2"}]}
    ],
    "constants": [{"name": "ZERO", "value": "Vector2(0, 0)"}]
  },
  {
    "name": "Transform3D",
    "properties": [{"name": "origin", "type": "Vector3"}]
  }
]`

func TestRender(t *testing.T) {
	out, err := render(t, doc)
	require.NoError(t, err)

	t.Run("header and entry point", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(out, "/* THIS FILE IS GENERATED DO NOT EDIT */\n"))
		assert.Contains(t, out, "void register_builtin_class_properties_gen(duk_context *ctx) {\n\tregister_properties_Vector2(ctx);\n\tregister_properties_Transform3D(ctx);\n}")
	})

	t.Run("constants", func(t *testing.T) {
		assert.Contains(t, out, "duk_push_heapptr(ctx, class_constructors->get(Variant::VECTOR2));")
		assert.Contains(t, out, `duk_push_literal(ctx, "ZERO");`)
		assert.Contains(t, out, "duk_push_variant(ctx, Vector2(0, 0));")
	})

	t.Run("number properties use direct accessors", func(t *testing.T) {
		assert.Contains(t, out, "duk_push_number(ctx, ptr->x);")
		assert.Contains(t, out, "ptr->y = duk_get_number_default(ctx, 0, DUK_DOUBLE_NAN);")
	})

	t.Run("other properties go through variants", func(t *testing.T) {
		assert.Contains(t, out, "Transform *ptr = static_cast<Transform *>(duk_get_pointer(ctx, -1));")
		assert.Contains(t, out, "ptr->origin = duk_get_variant(ctx, 0);")
		assert.Contains(t, out, "class_prototypes->get(Variant::TRANSFORM)")
	})

	t.Run("methods", func(t *testing.T) {
		assert.Contains(t, out, "ptr->normalize();\n\t\treturn DUK_NO_RET_VAL;")
		assert.Contains(t, out, "Variant ret = ptr->rotated(arg0);")
		assert.Contains(t, out, "ERR_FAIL_COND_V(arg0.get_type() != Variant::VECTOR2, DUK_ERR_TYPE_ERROR);")
		assert.Contains(t, out, "arg0.get_type() != Variant::REAL && arg0.get_type() != Variant::INT")
		assert.Contains(t, out, `duk_put_prop_literal(ctx, -2, "dot");`)
	})

	t.Run("operators are not bound", func(t *testing.T) {
		assert.NotContains(t, out, "operator+")
	})

	assert.NotContains(t, out, "${")
}

func TestRenderDeterministic(t *testing.T) {
	first, err := render(t, doc)
	require.NoError(t, err)
	second, err := render(t, doc)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderUnknownType(t *testing.T) {
	_, err := render(t, `[{"name": "PackedInt64Array"}]`)
	var le *schema.LookupError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "duktape type tags", le.Table)
	assert.Equal(t, "PackedInt64Array", le.Key)
}
