package classconfig

// Defaults returns the built-in records for the engine's builtin types.
func Defaults() *Configs {
	c := New()
	for name, rec := range defaultRecords() {
		c.classes[name] = rec
	}
	return c
}

func defaultRecords() map[string]ClassConfig {
	arith := func(class string, ops ...string) []Operator {
		var out []Operator
		for _, op := range ops {
			switch op {
			case "neg":
				out = append(out, Operator{Name: "neg", NativeMethod: "operator-", Return: class})
			case "+":
				out = append(out, Operator{Name: "add", NativeMethod: "operator+", Return: class, Arguments: []string{class}})
			case "-":
				out = append(out, Operator{Name: "subtract", NativeMethod: "operator-", Return: class, Arguments: []string{class}})
			case "*":
				out = append(out, Operator{Name: "multiply", NativeMethod: "operator*", Return: class, Arguments: []string{class}})
			case "/":
				out = append(out, Operator{Name: "divide", NativeMethod: "operator/", Return: class, Arguments: []string{class}})
			case "==":
				out = append(out, Operator{Name: "equals", NativeMethod: "operator==", Return: "boolean", Arguments: []string{class}})
			case "<":
				out = append(out, Operator{Name: "less", NativeMethod: "operator<", Return: "boolean", Arguments: []string{class}})
			}
		}
		return out
	}
	array := func(element string, buffers bool) *ArraySpec {
		return &ArraySpec{Element: element, Buffers: buffers}
	}

	return map[string]ClassConfig{
		"Vector2":    {SyntheticOperators: arith("Vector2", "neg", "+", "-", "*", "/", "==", "<")},
		"Vector3":    {SyntheticOperators: arith("Vector3", "neg", "+", "-", "*", "/", "==", "<")},
		"Color":      {SyntheticOperators: arith("Color", "neg", "+", "-", "*", "/", "==", "<")},
		"Quaternion": {SyntheticOperators: arith("Quaternion", "neg", "+", "-", "*", "==")},
		"Rect2":      {SyntheticOperators: arith("Rect2", "==")},
		"AABB":       {SyntheticOperators: arith("AABB", "==")},
		"Plane":      {SyntheticOperators: arith("Plane", "neg", "==")},
		"RID":        {SyntheticOperators: arith("RID", "==", "<")},
		"Basis":      {SyntheticOperators: arith("Basis", "*", "=="), PropertyRemap: map[string]string{"x": "rows[0]", "y": "rows[1]", "z": "rows[2]"}},
		"Transform2D": {
			SyntheticOperators: arith("Transform2D", "*", "=="),
			PropertyRemap:      map[string]string{"x": "columns[0]", "y": "columns[1]", "origin": "columns[2]"},
		},
		"Transform3D": {SyntheticOperators: arith("Transform3D", "*", "==")},

		"PackedByteArray":    {Array: array("uint8_t", true)},
		"PackedInt32Array":   {Array: array("int32_t", true)},
		"PackedInt64Array":   {Array: array("int64_t", true)},
		"PackedFloat32Array": {Array: array("float", true)},
		"PackedFloat64Array": {Array: array("double", true)},
		"PackedVector2Array": {Array: array("Vector2", true)},
		"PackedVector3Array": {Array: array("Vector3", true)},
		"PackedColorArray":   {Array: array("Color", true)},
		"PackedStringArray":  {Array: array("String", false)},

		"PoolByteArray":    {Array: array("uint8_t", true)},
		"PoolIntArray":     {Array: array("int", true)},
		"PoolRealArray":    {Array: array("real_t", true)},
		"PoolVector2Array": {Array: array("Vector2", true)},
		"PoolVector3Array": {Array: array("Vector3", true)},
		"PoolColorArray":   {Array: array("Color", true)},
		"PoolStringArray":  {Array: array("String", false)},
	}
}
