// Package classconfig holds the per-class exceptions applied on top of the
// API document: excluded properties and methods, native accessor remaps,
// synthetic operators and packed-array element information.
//
// Built-in defaults describe the engine's known builtin types and apply to
// whichever of them the document contains. Records loaded from an overrides
// file are checked strictly: each class, property, method and operator they
// name must exist, so a stale entry fails the run instead of doing nothing.
package classconfig

import (
	"maps"
	"slices"

	"github.com/godotjs/javascript/internal/codegen/common"
	"github.com/godotjs/javascript/internal/codegen/schema"
)

// ClassConfig is the configuration record of one class.
type ClassConfig struct {
	IgnoredProperties  []string          `json:"ignored_properties,omitempty" yaml:"ignored_properties,omitempty" toml:"ignored_properties,omitempty"`
	IgnoredMethods     []string          `json:"ignored_methods,omitempty" yaml:"ignored_methods,omitempty" toml:"ignored_methods,omitempty"`
	IgnoredOperators   []string          `json:"ignored_operators,omitempty" yaml:"ignored_operators,omitempty" toml:"ignored_operators,omitempty"`
	PropertyRemap      map[string]string `json:"property_remap,omitempty" yaml:"property_remap,omitempty" toml:"property_remap,omitempty"`
	SyntheticOperators []Operator        `json:"synthetic_operators,omitempty" yaml:"synthetic_operators,omitempty" toml:"synthetic_operators,omitempty"`
	Array              *ArraySpec        `json:"array,omitempty" yaml:"array,omitempty" toml:"array,omitempty"`
}

// Operator is a synthetic operator overload appended to a class.
type Operator struct {
	Name         string   `json:"name" yaml:"name" toml:"name"`
	NativeMethod string   `json:"native_method" yaml:"native_method" toml:"native_method"`
	Return       string   `json:"return" yaml:"return" toml:"return"`
	Arguments    []string `json:"arguments,omitempty" yaml:"arguments,omitempty" toml:"arguments,omitempty"`
}

// ArraySpec marks a packed array class. Element is the C++ element type.
// Buffers enables construction from ArrayBuffer and DataView inputs.
type ArraySpec struct {
	Element string `json:"element" yaml:"element" toml:"element"`
	Buffers bool   `json:"buffers" yaml:"buffers" toml:"buffers"`
}

func (o Operator) spec() schema.OperatorSpec {
	spec := schema.OperatorSpec{
		Name:         o.Name,
		NativeMethod: o.NativeMethod,
		Return:       o.Return,
		Synthetic:    true,
	}
	for _, t := range o.Arguments {
		spec.Arguments = append(spec.Arguments, schema.ArgumentSpec{Type: t})
	}
	return spec
}

// Configs is the merged set of class records.
type Configs struct {
	classes   map[string]ClassConfig
	overrides map[string]ClassConfig
}

// New returns an empty set.
func New() *Configs {
	return &Configs{
		classes:   map[string]ClassConfig{},
		overrides: map[string]ClassConfig{},
	}
}

// Merge layers records from an overrides file on top of the current set.
// Ignore lists and synthetic operators are appended, remap entries replace
// existing ones, and a non-nil Array replaces the previous spec.
func (c *Configs) Merge(records map[string]ClassConfig) {
	for _, name := range common.SortedKeys(records) {
		rec := records[name]
		c.classes[name] = merge(c.classes[name], rec)
		c.overrides[name] = merge(c.overrides[name], rec)
	}
}

func merge(base, over ClassConfig) ClassConfig {
	out := ClassConfig{
		IgnoredProperties:  append(slices.Clone(base.IgnoredProperties), over.IgnoredProperties...),
		IgnoredMethods:     append(slices.Clone(base.IgnoredMethods), over.IgnoredMethods...),
		IgnoredOperators:   append(slices.Clone(base.IgnoredOperators), over.IgnoredOperators...),
		SyntheticOperators: append(slices.Clone(base.SyntheticOperators), over.SyntheticOperators...),
		Array:              base.Array,
	}
	if len(base.PropertyRemap)+len(over.PropertyRemap) > 0 {
		out.PropertyRemap = maps.Clone(base.PropertyRemap)
		if out.PropertyRemap == nil {
			out.PropertyRemap = map[string]string{}
		}
		maps.Copy(out.PropertyRemap, over.PropertyRemap)
	}
	if over.Array != nil {
		a := *over.Array
		out.Array = &a
	}
	return out
}

// Get returns the record for class name.
func (c *Configs) Get(name string) (ClassConfig, bool) {
	rec, ok := c.classes[name]
	return rec, ok
}

// ArrayOf returns the packed array spec of class name, if it is one.
func (c *Configs) ArrayOf(name string) (ArraySpec, bool) {
	rec, ok := c.classes[name]
	if !ok || rec.Array == nil {
		return ArraySpec{}, false
	}
	return *rec.Array, true
}
