// Package schema loads the API document describing the engine's builtin
// value types.
package schema

import (
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"
)

//go:embed api.schema.json
var documentSchema []byte

var (
	resolveOnce sync.Once
	resolved    *jsonschema.Resolved
	resolveErr  error
)

// DocumentSchema returns the JSON Schema every API document is validated against.
func DocumentSchema() []byte {
	return append([]byte(nil), documentSchema...)
}

func documentValidator() (*jsonschema.Resolved, error) {
	resolveOnce.Do(func() {
		var s jsonschema.Schema
		if err := json.Unmarshal(documentSchema, &s); err != nil {
			resolveErr = fmt.Errorf("parse document schema: %w", err)
			return
		}
		resolved, resolveErr = s.Resolve(nil)
	})
	return resolved, resolveErr
}

// Load reads and validates the API document at path. The format is chosen
// by extension: .yaml and .yml are YAML, anything else is JSON.
func Load(path string) (*API, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &InputNotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("read API document: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes an API document already in memory. name is used for format
// detection and error messages.
func Parse(data []byte, name string) (*API, error) {
	isYAML := isYAMLPath(name)

	instance, err := decodeInstance(data, isYAML)
	if err != nil {
		return nil, &ValidationError{Path: name, Err: err}
	}
	validator, err := documentValidator()
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(instance); err != nil {
		return nil, &ValidationError{Path: name, Err: err}
	}

	var classes []ClassSpec
	if isYAML {
		err = yaml.Unmarshal(data, &classes)
	} else {
		err = json.Unmarshal(data, &classes)
	}
	if err != nil {
		return nil, &ValidationError{Path: name, Err: err}
	}

	for ci := range classes {
		for pi := range classes[ci].Properties {
			p := &classes[ci].Properties[pi]
			if p.Native == "" {
				p.Native = p.Name
			}
		}
	}

	sum := blake2b.Sum256(data)
	return &API{Classes: classes, digest: hex.EncodeToString(sum[:])}, nil
}

// decodeInstance produces the generic JSON value the validator expects.
// YAML is routed through JSON so numbers and maps have JSON shapes.
func decodeInstance(data []byte, isYAML bool) (any, error) {
	var instance any
	if !isYAML {
		if err := json.Unmarshal(data, &instance); err != nil {
			return nil, err
		}
		return instance, nil
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &instance); err != nil {
		return nil, err
	}
	return instance, nil
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
