package common

import (
	"sort"

	"github.com/godotjs/javascript/internal/codegen/schema"
)

// TypeTable holds an engine's two fixed lookup tables: schema type name to
// engine type tag, and schema type name to native storage type.
type TypeTable struct {
	engine  string
	tags    map[string]string
	natives map[string]string
}

func NewTypeTable(engine string, tags, natives map[string]string) *TypeTable {
	return &TypeTable{engine: engine, tags: tags, natives: natives}
}

// Tag returns the engine type tag for typ (e.g. "Variant::VECTOR2").
func (t *TypeTable) Tag(typ string) (string, error) {
	if v, ok := t.tags[typ]; ok {
		return v, nil
	}
	return "", &schema.LookupError{Table: t.engine + " type tags", Key: typ}
}

// Native returns the C++ storage type for typ (e.g. "real_t" for number).
func (t *TypeTable) Native(typ string) (string, error) {
	if v, ok := t.natives[typ]; ok {
		return v, nil
	}
	return "", &schema.LookupError{Table: t.engine + " native types", Key: typ}
}

// Has reports whether typ is present in both tables.
func (t *TypeTable) Has(typ string) bool {
	_, tag := t.tags[typ]
	_, native := t.natives[typ]
	return tag && native
}

// Check verifies that every type referenced by api exists in both tables.
// The first missing name is returned with the location that used it.
func (t *TypeTable) Check(api *schema.API) error {
	for _, cls := range api.Classes {
		for _, ref := range cls.ReferencedTypes() {
			if _, ok := t.tags[ref.Type]; !ok {
				return &schema.LookupError{Table: t.engine + " type tags", Key: ref.Type, Where: ref.Where}
			}
			if _, ok := t.natives[ref.Type]; !ok {
				return &schema.LookupError{Table: t.engine + " native types", Key: ref.Type, Where: ref.Where}
			}
		}
	}
	return nil
}

// Types lists the names known to the tag table, sorted.
func (t *TypeTable) Types() []string {
	return SortedKeys(t.tags)
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
