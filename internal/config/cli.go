// Package config declares the keyswap command line, which kong also fills
// from JSON, YAML and TOML config files.
package config

import (
	"github.com/alecthomas/kong"

	"github.com/Alia5/keyswap/internal/cmd"
)

type CLI struct {
	ConfigFile string           `name:"config" help:"Path to a config file (json, yaml or toml)" env:"KEYSWAP_CONFIG" type:"path"`
	Version    kong.VersionFlag `help:"Print the version and exit"`

	Log struct {
		Level    string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"KEYSWAP_LOG_LEVEL"`
		Format   string `help:"Log output format" enum:"text,json" default:"text" env:"KEYSWAP_LOG_FORMAT"`
		File     string `help:"Also write logs to this file" env:"KEYSWAP_LOG_FILE"`
		WireFile string `help:"Write raw API traffic to this file" env:"KEYSWAP_LOG_WIRE_FILE"`
	} `embed:"" prefix:"log."`

	Convert  cmd.Convert       `cmd:"" help:"Retype text as if another layout had been active"`
	Variants cmd.Variants      `cmd:"" help:"Show text as read under every layout"`
	Inspect  cmd.Inspect       `cmd:"" help:"Show the physical key behind characters"`
	Analyze  cmd.Analyze       `cmd:"" help:"Report how convertible a text is"`
	Layouts  cmd.Layouts       `cmd:"" help:"List layouts"`
	Server   cmd.Server        `cmd:"" help:"Serve the layout API over TCP"`
	Config   cmd.ConfigCommand `cmd:"" help:"Configuration helpers"`
}
