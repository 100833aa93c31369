package classconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/godotjs/javascript/internal/codegen/schema"
)

// File is the on-disk layout of an overrides file.
//
//	classes:
//	  Vector2:
//	    ignored_methods: [angle_to_point]
//	    property_remap: {x: "coord[0]"}
type File struct {
	Classes map[string]ClassConfig `json:"classes" yaml:"classes" toml:"classes"`
}

// LoadFile reads an overrides file. The format is chosen by extension:
// .yaml/.yml, .toml, otherwise JSON.
func LoadFile(path string) (map[string]ClassConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &schema.InputNotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("read class configuration: %w", err)
	}

	var f File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	case ".toml":
		err = toml.Unmarshal(data, &f)
	default:
		err = json.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("parse class configuration %s: %w", path, err)
	}
	return f.Classes, nil
}

// Load returns the defaults with the overrides file at path merged on top.
// An empty path yields the defaults alone.
func Load(path string) (*Configs, error) {
	c := Defaults()
	if path == "" {
		return c, nil
	}
	records, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	c.Merge(records)
	return c, nil
}
