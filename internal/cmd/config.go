package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/godotjs/javascript/internal/configpaths"
)

// ConfigCommand groups config-related subcommands.
type ConfigCommand struct {
	Init ConfigInit `cmd:"" help:"Generate a configuration template"`
}

// ConfigInit scaffolds a configuration file for a specific command.
type ConfigInit struct {
	Command string `arg:"" name:"command" help:"Command to generate config for" enum:"generate,watch"`
	Format  string `help:"Output format" enum:"json,yaml,toml" default:"json"`
	Output  string `help:"Destination file path (defaults to bindgen.<ext> in the current directory)" type:"path"`
	Force   bool   `help:"Overwrite if the file already exists"`
}

// Flags that make no sense in a config file.
var skipFlags = map[string]bool{"help": true, "version": true, "config": true}

// Run writes a template holding the default of every flag the command reads.
func (c *ConfigInit) Run(logger *slog.Logger, kctx *kong.Context) error {
	root, err := Template(kctx.Model, c.Command, c.Format)
	if err != nil {
		return err
	}

	dest := c.Output
	if dest == "" {
		dest = "bindgen." + configpaths.Ext(c.Format)
	}
	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}

	var data []byte
	switch c.Format {
	case "json":
		data, err = json.MarshalIndent(root, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(root)
	case "toml":
		data, err = toml.Marshal(root)
	}
	if err != nil {
		return fmt.Errorf("encode %s template: %w", c.Format, err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return err
	}
	logger.Info("Wrote configuration template", "command", c.Command, "file", dest)
	return nil
}

// Template lays out the global flags and the flags of command the way the
// matching kong loader looks them up:
//
//	json  {"log": {"level": …}, "allow_unknown_operators": …}
//	yaml  {"log.level": …, "generate": {"allow-unknown-operators": …}}
//	toml  {"log.level": …, "allow-unknown-operators": …}
func Template(app *kong.Application, command, format string) (map[string]any, error) {
	var node *kong.Node
	for _, child := range app.Children {
		if child.Type == kong.CommandNode && child.Name == command {
			node = child
			break
		}
	}
	if node == nil {
		return nil, fmt.Errorf("unknown command %q", command)
	}

	root := map[string]any{}
	scoped := root
	switch format {
	case "json", "toml":
	case "yaml":
		scoped = map[string]any{}
		root[command] = scoped
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	for _, f := range app.Flags {
		v, ok := templateValue(f)
		if !ok {
			continue
		}
		if format != "json" {
			root[f.Name] = v
			continue
		}
		group, key, nested := strings.Cut(f.Name, ".")
		if !nested {
			root[f.Name] = v
			continue
		}
		sub, _ := root[group].(map[string]any)
		if sub == nil {
			sub = map[string]any{}
			root[group] = sub
		}
		sub[key] = v
	}

	for _, f := range node.Flags {
		v, ok := templateValue(f)
		if !ok {
			continue
		}
		key := f.Name
		if format == "json" {
			key = strings.ReplaceAll(key, "-", "_")
		}
		scoped[key] = v
	}
	return root, nil
}

// templateValue is the default of f in the type its loader decodes. Flags
// without a default are left out: an empty path would resolve to the
// working directory.
func templateValue(f *kong.Flag) (any, bool) {
	if skipFlags[f.Name] || f.Hidden {
		return nil, false
	}
	if f.IsBool() {
		b, _ := strconv.ParseBool(f.Default)
		return b, true
	}
	if f.Default == "" {
		return nil, false
	}
	if f.Target.Type() == reflect.TypeOf(time.Duration(0)) {
		return f.Default, true
	}
	switch f.Target.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n, err := strconv.ParseInt(f.Default, 10, 64); err == nil {
			return n, true
		}
	}
	return f.Default, true
}
