package classconfig

import (
	"slices"

	"github.com/godotjs/javascript/internal/codegen/common"
	"github.com/godotjs/javascript/internal/codegen/schema"
)

// Validate checks every record loaded from an overrides file against api,
// and the remap entries of every class api declares, built-in ones included.
func (c *Configs) Validate(api *schema.API) error {
	for _, name := range common.SortedKeys(c.overrides) {
		rec := c.overrides[name]
		cls, ok := api.Class(name)
		if !ok {
			return &schema.LookupError{Table: "class list", Key: name, Where: "class configuration"}
		}
		for _, p := range rec.IgnoredProperties {
			if _, ok := cls.Property(p); !ok {
				return &schema.LookupError{Table: name + " properties", Key: p, Where: "ignored_properties"}
			}
		}
		for _, p := range common.SortedKeys(rec.PropertyRemap) {
			if _, ok := cls.Property(p); !ok {
				return &schema.LookupError{Table: name + " properties", Key: p, Where: "property_remap"}
			}
		}
		for _, m := range rec.IgnoredMethods {
			if !cls.HasMethod(m) {
				return &schema.LookupError{Table: name + " methods", Key: m, Where: "ignored_methods"}
			}
		}
		for _, o := range rec.IgnoredOperators {
			if !hasOperator(cls, c.classes[name], o) {
				return &schema.LookupError{Table: name + " operators", Key: o, Where: "ignored_operators"}
			}
		}
	}
	for i := range api.Classes {
		cls := &api.Classes[i]
		for _, p := range common.SortedKeys(c.classes[cls.Name].PropertyRemap) {
			if _, ok := cls.Property(p); !ok {
				return &schema.LookupError{Table: cls.Name + " properties", Key: p, Where: "property_remap"}
			}
		}
	}
	return nil
}

func hasOperator(cls *schema.ClassSpec, rec ClassConfig, name string) bool {
	for _, o := range cls.Operators {
		if o.Name == name {
			return true
		}
	}
	for _, o := range rec.SyntheticOperators {
		if o.Name == name {
			return true
		}
	}
	return false
}

// Resolve validates the overrides and returns a copy of api with every
// record applied. api itself is not modified.
func (c *Configs) Resolve(api *schema.API) (*schema.API, error) {
	if err := c.Validate(api); err != nil {
		return nil, err
	}
	classes := make([]schema.ClassSpec, 0, len(api.Classes))
	for _, cls := range api.Classes {
		rec, ok := c.classes[cls.Name]
		if !ok {
			classes = append(classes, cloneClass(cls))
			continue
		}
		classes = append(classes, apply(cls, rec))
	}
	return api.WithClasses(classes), nil
}

func apply(cls schema.ClassSpec, rec ClassConfig) schema.ClassSpec {
	out := schema.ClassSpec{
		Name:            cls.Name,
		ConstructorArgc: cls.ConstructorArgc,
		Constants:       slices.Clone(cls.Constants),
	}

	for _, p := range cls.Properties {
		if slices.Contains(rec.IgnoredProperties, p.Name) {
			continue
		}
		if native, ok := rec.PropertyRemap[p.Name]; ok {
			p.Native = native
		}
		out.Properties = append(out.Properties, p)
	}

	for _, m := range cls.Methods {
		if slices.Contains(rec.IgnoredMethods, m.Name) {
			continue
		}
		m.Arguments = slices.Clone(m.Arguments)
		out.Methods = append(out.Methods, m)
	}

	seen := map[string]bool{}
	for _, o := range cls.Operators {
		if slices.Contains(rec.IgnoredOperators, o.Name) {
			continue
		}
		seen[o.Signature()] = true
		o.Arguments = slices.Clone(o.Arguments)
		out.Operators = append(out.Operators, o)
	}
	for _, so := range rec.SyntheticOperators {
		if slices.Contains(rec.IgnoredOperators, so.Name) {
			continue
		}
		o := so.spec()
		if seen[o.Signature()] {
			continue
		}
		seen[o.Signature()] = true
		out.Operators = append(out.Operators, o)
	}
	return out
}

func cloneClass(cls schema.ClassSpec) schema.ClassSpec {
	out := cls
	out.Properties = slices.Clone(cls.Properties)
	out.Methods = slices.Clone(cls.Methods)
	out.Operators = slices.Clone(cls.Operators)
	out.Constants = slices.Clone(cls.Constants)
	return out
}
