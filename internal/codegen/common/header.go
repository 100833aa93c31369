package common

import (
	"fmt"
	"path/filepath"
)

// FileHeader is the banner stamped at the top of every generated source.
// It carries no timestamp so regenerating from the same schema is byte-identical.
func FileHeader(engine, schemaPath, digest string) (string, error) {
	version, err := GetVersion()
	if err != nil {
		return "", fmt.Errorf("get version: %w", err)
	}
	return fmt.Sprintf(`/* THIS FILE IS GENERATED DO NOT EDIT */
// Builtin bindings for %s, generated by bindgen %s
// Source: %s (blake2b-256 %s)
`, engine, version, filepath.Base(schemaPath), digest), nil
}
