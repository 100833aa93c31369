// Package pattern implements the ${identifier} substitution used by every
// binding template.
//
// Substitution is a single pass over the template: replacement text is never
// scanned again, so a value that itself contains ${...} is emitted as-is.
package pattern

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var placeholderRe = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// KV is one placeholder binding. Apply takes an ordered list of them so the
// application order is the order the caller wrote.
type KV struct {
	Key   string
	Value string
}

// Apply replaces every ${key} in tpl with the value bound to key.
// Placeholders without a binding are left verbatim.
func Apply(tpl string, values ...KV) string {
	return expand(tpl, func(key string) (string, bool) {
		for _, kv := range values {
			if kv.Key == key {
				return kv.Value, true
			}
		}
		return "", false
	})
}

// Placeholders lists the distinct placeholder names of src in order of first occurrence.
func Placeholders(src string) []string {
	var keys []string
	seen := map[string]bool{}
	for _, m := range placeholderRe.FindAllStringSubmatch(src, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			keys = append(keys, m[1])
		}
	}
	return keys
}

func expand(src string, lookup func(string) (string, bool)) string {
	return placeholderRe.ReplaceAllStringFunc(src, func(match string) string {
		key := match[2 : len(match)-1]
		if v, ok := lookup(key); ok {
			return v
		}
		return match
	})
}

// Values binds placeholder names for Template.Expand.
type Values map[string]string

// Template is a parsed pattern that knows its own placeholders, so a
// misspelled key is reported instead of silently left in the output.
type Template struct {
	name string
	src  string
	keys []string
	set  map[string]struct{}
}

// Compile parses src. It never fails; validation happens on Expand.
func Compile(name, src string) *Template {
	keys := Placeholders(src)
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return &Template{name: name, src: src, keys: keys, set: set}
}

// MustCompile is Compile for package-level templates that declare the keys
// they expect. It panics if the declared keys and the placeholders differ.
func MustCompile(name, src string, keys ...string) *Template {
	t := Compile(name, src)
	if err := t.checkKeys(keys); err != nil {
		panic(err)
	}
	return t
}

func (t *Template) Name() string { return t.name }

func (t *Template) Source() string { return t.src }

// Keys returns the placeholder names in order of first occurrence.
func (t *Template) Keys() []string {
	return append([]string(nil), t.keys...)
}

// Expand substitutes v into the template. Every placeholder must be bound and
// every binding must be used.
func (t *Template) Expand(v Values) (string, error) {
	given := make([]string, 0, len(v))
	for k := range v {
		given = append(given, k)
	}
	if err := t.checkKeys(given); err != nil {
		return "", err
	}
	return expand(t.src, func(key string) (string, bool) {
		val, ok := v[key]
		return val, ok
	}), nil
}

// MustExpand is Expand for call sites whose keys are fixed in code.
func (t *Template) MustExpand(v Values) string {
	out, err := t.Expand(v)
	if err != nil {
		panic(err)
	}
	return out
}

func (t *Template) checkKeys(given []string) error {
	givenSet := make(map[string]struct{}, len(given))
	var unused []string
	for _, k := range given {
		givenSet[k] = struct{}{}
		if _, ok := t.set[k]; !ok {
			unused = append(unused, k)
		}
	}
	var missing []string
	for _, k := range t.keys {
		if _, ok := givenSet[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) == 0 && len(unused) == 0 {
		return nil
	}
	sort.Strings(unused)
	return &KeyError{Template: t.name, Missing: missing, Unused: unused}
}

// KeyError reports a mismatch between a template's placeholders and the
// values supplied for it.
type KeyError struct {
	Template string
	Missing  []string
	Unused   []string
}

func (e *KeyError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.Unused) > 0 {
		parts = append(parts, "unused "+strings.Join(e.Unused, ", "))
	}
	return fmt.Sprintf("template %q: %s", e.Template, strings.Join(parts, "; "))
}
