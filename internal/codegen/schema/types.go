package schema

// Void is the return type of methods that produce no value.
const Void = "void"

// Primitive script-side type names. Every other type name refers to a
// builtin value type of the engine.
const (
	TypeNumber  = "number"
	TypeString  = "string"
	TypeBoolean = "boolean"
	TypeVariant = "Variant"
)

// API is the loaded API document: the builtin classes in input order.
type API struct {
	Classes []ClassSpec

	digest string
}

// ClassSpec describes one builtin value type.
type ClassSpec struct {
	Name            string         `json:"name" yaml:"name"`
	Properties      []PropertySpec `json:"properties" yaml:"properties"`
	Methods         []MethodSpec   `json:"methods" yaml:"methods"`
	Operators       []OperatorSpec `json:"operators" yaml:"operators"`
	Constants       []ConstantSpec `json:"constants" yaml:"constants"`
	ConstructorArgc int            `json:"constructor_argc" yaml:"constructor_argc"`
}

// PropertySpec is a field exposed as a script property. Native is the C++
// accessor path and may differ from Name (e.g. "columns[0]" for Transform2D.x).
type PropertySpec struct {
	Name   string `json:"name" yaml:"name"`
	Type   string `json:"type" yaml:"type"`
	Native string `json:"native,omitempty" yaml:"native,omitempty"`
}

// MethodSpec is a method trampoline. NativeMethod is the C++ member called,
// which may be an operator symbol for synthetic methods ("operator==").
type MethodSpec struct {
	Name         string         `json:"name" yaml:"name"`
	NativeMethod string         `json:"native_method" yaml:"native_method"`
	Return       string         `json:"return" yaml:"return"`
	Arguments    []ArgumentSpec `json:"arguments" yaml:"arguments"`
}

// OperatorSpec has the shape of a method restricted to operator symbols.
// Synthetic marks operators appended by class configuration rather than
// read from the API document.
type OperatorSpec struct {
	Name         string         `json:"name" yaml:"name"`
	NativeMethod string         `json:"native_method" yaml:"native_method"`
	Return       string         `json:"return" yaml:"return"`
	Arguments    []ArgumentSpec `json:"arguments" yaml:"arguments"`
	Synthetic    bool           `json:"synthetic,omitempty" yaml:"synthetic,omitempty"`
}

type ArgumentSpec struct {
	Type            string  `json:"type" yaml:"type"`
	DefaultValue    *string `json:"default_value" yaml:"default_value"`
	HasDefaultValue bool    `json:"has_default_value" yaml:"has_default_value"`
}

// ConstantSpec is a class constant; Value is a C++ expression.
type ConstantSpec struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Class returns the class with the given name.
func (a *API) Class(name string) (*ClassSpec, bool) {
	for i := range a.Classes {
		if a.Classes[i].Name == name {
			return &a.Classes[i], true
		}
	}
	return nil, false
}

// Digest is the BLAKE2b-256 hex digest of the document the API was loaded from.
func (a *API) Digest() string { return a.digest }

// WithClasses returns a copy of a carrying classes and the same digest.
func (a *API) WithClasses(classes []ClassSpec) *API {
	return &API{Classes: classes, digest: a.digest}
}

// Property returns the property with the given script name.
func (c *ClassSpec) Property(name string) (*PropertySpec, bool) {
	for i := range c.Properties {
		if c.Properties[i].Name == name {
			return &c.Properties[i], true
		}
	}
	return nil, false
}

// HasMethod reports whether the class declares a method with the given script name.
func (c *ClassSpec) HasMethod(name string) bool {
	for _, m := range c.Methods {
		if m.Name == name {
			return true
		}
	}
	return false
}

// Signature identifies an operator overload by symbol and argument types.
func (o OperatorSpec) Signature() string {
	sig := o.NativeMethod + "("
	for i, a := range o.Arguments {
		if i > 0 {
			sig += ","
		}
		sig += a.Type
	}
	return sig + ")"
}

// ReferencedTypes lists every type name the class uses, in declaration order,
// starting with the class itself. Void is omitted.
func (c *ClassSpec) ReferencedTypes() []TypeRef {
	refs := []TypeRef{{Type: c.Name, Where: c.Name}}
	add := func(typ, where string) {
		if typ == "" || typ == Void {
			return
		}
		refs = append(refs, TypeRef{Type: typ, Where: where})
	}
	for _, p := range c.Properties {
		add(p.Type, c.Name+"."+p.Name)
	}
	for _, m := range c.Methods {
		where := c.Name + "." + m.Name
		add(m.Return, where+" return")
		for _, a := range m.Arguments {
			add(a.Type, where+" argument")
		}
	}
	for _, o := range c.Operators {
		where := c.Name + "." + o.Name
		add(o.Return, where+" return")
		for _, a := range o.Arguments {
			add(a.Type, where+" argument")
		}
	}
	return refs
}

// TypeRef is a type name and the schema location that refers to it.
type TypeRef struct {
	Type  string
	Where string
}
