// Package config defines the bindgen command line. Every flag can also be
// set from a config file or a BINDGEN_* environment variable.
package config

import (
	"github.com/alecthomas/kong"

	"github.com/godotjs/javascript/internal/cmd"
)

type CLI struct {
	ConfigFile string           `name:"config" help:"Configuration file (json, yaml or toml); searched in the working directory and the user config dir when unset" type:"path" env:"BINDGEN_CONFIG"`
	Log        Log              `embed:"" prefix:"log."`
	Version    kong.VersionFlag `help:"Print version and exit"`

	Generate cmd.Generate      `cmd:"" default:"withargs" help:"Generate binding sources from an API document"`
	Watch    cmd.Watch         `cmd:"" help:"Regenerate whenever the API document or overrides change"`
	Schema   cmd.SchemaCommand `cmd:"" help:"Inspect the API document format"`
	Config   cmd.ConfigCommand `cmd:"" help:"Configuration helpers"`
}

type Log struct {
	Level  string `help:"Log level: trace, debug, info, warn, error" default:"info" enum:"trace,debug,info,warn,error" env:"BINDGEN_LOG_LEVEL"`
	File   string `help:"Write logs to this file in addition to the console" type:"path" env:"BINDGEN_LOG_FILE"`
	Format string `help:"Log output format" default:"text" enum:"text,json" env:"BINDGEN_LOG_FORMAT"`
}
