package quickjs

// constructorOverloads holds the argument handling of the builtin value
// types whose constructors accept more than a copy. Branches are tried in
// order; the first matching arity wins.
var constructorOverloads = map[string][]overload{
	"Vector2": {
		{params: []string{"", ""}, body: `		tmp.x = QuickJSBinder::js_to_number(ctx, argv[0]);
		tmp.y = QuickJSBinder::js_to_number(ctx, argv[1]);
`},
		{cond: "argc == 1", body: `		if (JavaScriptGCHandler *bind = BINDING_DATA_FROM_JS(ctx, argv[0])) {
			if (bind->type == Variant::VECTOR2) {
				tmp = *bind->getVector2();
			}
		} else {
			tmp.x = QuickJSBinder::js_to_number(ctx, argv[0]);
			tmp.y = tmp.x;
		}
`},
	},
	"Vector3": {
		{cond: "argc == 1", body: `		if (JavaScriptGCHandler *bind = BINDING_DATA_FROM_JS(ctx, argv[0])) {
			if (bind->type == Variant::VECTOR3) {
				tmp = *bind->getVector3();
			}
		} else {
			tmp.x = QuickJSBinder::js_to_number(ctx, argv[0]);
			tmp.z = tmp.y = tmp.x;
		}
`},
		{params: []string{"", "", ""}, body: `		tmp.x = QuickJSBinder::js_to_number(ctx, argv[0]);
		tmp.y = QuickJSBinder::js_to_number(ctx, argv[1]);
		tmp.z = QuickJSBinder::js_to_number(ctx, argv[2]);
`},
	},
	"Color": {
		{cond: "argc >= 3", body: `		tmp.r = QuickJSBinder::js_to_number(ctx, argv[0]);
		tmp.g = QuickJSBinder::js_to_number(ctx, argv[1]);
		tmp.b = QuickJSBinder::js_to_number(ctx, argv[2]);
		tmp.a = (argc >= 4) ? QuickJSBinder::js_to_number(ctx, argv[3]) : 1.0f;
`},
		{cond: "argc == 1", body: `		if (JS_IsNumber(argv[0])) {
			tmp = Color::hex(QuickJSBinder::js_to_uint(ctx, argv[0]));
		} else if (JS_IsString(argv[0])) {
			tmp = Color::html(QuickJSBinder::js_to_string(ctx, argv[0]));
		} else if (JavaScriptGCHandler *bind = BINDING_DATA_FROM_JS(ctx, argv[0])) {
			if (bind->type == Variant::COLOR) {
				tmp = *bind->getColor();
			}
		}
`},
	},
	"Rect2": {
		{params: []string{"", "", "", ""}, body: `		tmp.position.x = QuickJSBinder::js_to_number(ctx, argv[0]);
		tmp.position.y = QuickJSBinder::js_to_number(ctx, argv[1]);
		tmp.size.x = QuickJSBinder::js_to_number(ctx, argv[2]);
		tmp.size.y = QuickJSBinder::js_to_number(ctx, argv[3]);
`},
		{signature: "Rect2(position, size)", params: []string{"Vector2", "Vector2"}, body: `		tmp.position = *param0->getVector2();
		tmp.size = *param1->getVector2();
`},
		{cond: "argc == 1", body: copyFrom("RECT2", "Rect2")},
	},
	"AABB": {
		{signature: "AABB(position, size)", params: []string{"Vector3", "Vector3"}, body: `		tmp.position = *param0->getVector3();
		tmp.size = *param1->getVector3();
`},
		{cond: "argc == 1", body: copyFrom("AABB", "AABB")},
	},
	"Plane": {
		{params: []string{"", "", "", ""}, body: `		tmp.normal.x = QuickJSBinder::js_to_number(ctx, argv[0]);
		tmp.normal.y = QuickJSBinder::js_to_number(ctx, argv[1]);
		tmp.normal.z = QuickJSBinder::js_to_number(ctx, argv[2]);
		tmp.d = QuickJSBinder::js_to_number(ctx, argv[3]);
`},
		{signature: "Plane(v1, v2, v3)", params: []string{"Vector3", "Vector3", "Vector3"}, body: `		tmp = Plane(*param0->getVector3(), *param1->getVector3(), *param2->getVector3());
`},
		{signature: "Plane(normal, d)", params: []string{"Vector3", ""}, body: `		tmp = Plane(*param0->getVector3(), QuickJSBinder::js_to_number(ctx, argv[1]));
`},
		{cond: "argc == 1", body: copyFrom("PLANE", "Plane")},
	},
	"Quaternion": {
		{params: []string{"", "", "", ""}, body: `		tmp.x = QuickJSBinder::js_to_number(ctx, argv[0]);
		tmp.y = QuickJSBinder::js_to_number(ctx, argv[1]);
		tmp.z = QuickJSBinder::js_to_number(ctx, argv[2]);
		tmp.w = QuickJSBinder::js_to_number(ctx, argv[3]);
`},
		{signature: "Quaternion(axis, angle)", params: []string{"Vector3", ""}, body: `		tmp = Quaternion(*param0->getVector3(), QuickJSBinder::js_to_number(ctx, argv[1]));
`},
		{cond: "argc == 1", body: `		if (JavaScriptGCHandler *bind = BINDING_DATA_FROM_JS(ctx, argv[0])) {
			if (bind->type == Variant::QUATERNION) {
				tmp = *bind->getQuaternion();
			} else if (bind->type == Variant::BASIS) {
				tmp = *bind->getBasis();
			} else if (bind->type == Variant::VECTOR3) {
				Basis basis;
				basis = basis.from_euler(*bind->getVector3());
				tmp = basis.get_rotation_quaternion();
			}
		}
`},
	},
	"Transform2D": {
		{signature: "Transform2D(x_axis, y_axis, origin)", params: []string{"Vector2", "Vector2", "Vector2"}, body: `		tmp.columns[0].operator=(*param0->getVector2());
		tmp.columns[1].operator=(*param1->getVector2());
		tmp.columns[2].operator=(*param2->getVector2());
`},
		{signature: "Transform2D(rotation, position)", params: []string{"", "Vector2"}, body: `		tmp.set_origin(*param1->getVector2());
		tmp.set_rotation(QuickJSBinder::js_to_number(ctx, argv[0]));
`},
		{cond: "argc == 1", body: convertFrom("TRANSFORM2D", "Transform2D")},
	},
	"Basis": {
		{signature: "Basis(x_axis, y_axis, z_axis)", params: []string{"Vector3", "Vector3", "Vector3"}, body: `		tmp.rows[0].operator=(*param0->getVector3());
		tmp.rows[1].operator=(*param1->getVector3());
		tmp.rows[2].operator=(*param2->getVector3());
`},
		{signature: "Basis(axis, phi)", params: []string{"Vector3", ""}, body: `		tmp.set_axis_angle(*param0->getVector3(), QuickJSBinder::js_to_number(ctx, argv[1]));
`},
		{cond: "argc == 1", body: `		if (JavaScriptGCHandler *bind = BINDING_DATA_FROM_JS(ctx, argv[0])) {
			if (bind->type == Variant::VECTOR3) {
				tmp.set_euler(*bind->getVector3());
			} else if (bind->type == Variant::QUATERNION) {
				tmp.set_quaternion(*bind->getQuaternion());
			} else if (bind->type == Variant::BASIS) {
				tmp.operator=(*bind->getBasis());
			}
		}
`},
	},
	"Transform3D": {
		{signature: "Transform3D(x_axis, y_axis, z_axis, origin)", params: []string{"Vector3", "Vector3", "Vector3", "Vector3"}, body: `		tmp.basis.rows[0].operator=(*param0->getVector3());
		tmp.basis.rows[1].operator=(*param1->getVector3());
		tmp.basis.rows[2].operator=(*param2->getVector3());
		tmp.origin.operator=(*param3->getVector3());
`},
		{signature: "Transform3D(basis, origin)", params: []string{"Basis", "Vector3"}, body: `		tmp.basis.operator=(*param0->getBasis());
		tmp.origin.operator=(*param1->getVector3());
`},
		{cond: "argc == 1", body: convertFrom("TRANSFORM3D", "Transform3D")},
	},
}

func copyFrom(variant, class string) string {
	return "\t\tif (JavaScriptGCHandler *bind = BINDING_DATA_FROM_JS(ctx, argv[0])) {\n" +
		"\t\t\tif (bind->type == Variant::" + variant + ") {\n" +
		"\t\t\t\ttmp = *bind->get" + class + "();\n" +
		"\t\t\t}\n" +
		"\t\t}\n"
}

func convertFrom(variant, class string) string {
	return "\t\tif (JavaScriptGCHandler *bind = BINDING_DATA_FROM_JS(ctx, argv[0])) {\n" +
		"\t\t\tif (bind->type == Variant::" + variant + ") {\n" +
		"\t\t\t\ttmp.operator=(*bind->get" + class + "());\n" +
		"\t\t\t} else if (Variant::can_convert(bind->type, Variant::" + variant + ")) {\n" +
		"\t\t\t\ttmp.operator=(bind->get_value());\n" +
		"\t\t\t}\n" +
		"\t\t}\n"
}
