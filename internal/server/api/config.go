package api

import "time"

// ServerConfig represents the API part of the server subcommand configuration.
type ServerConfig struct {
	Addr                 string        `help:"API server listen address" default:":3243" env:"KEYSWAP_API_ADDR"`
	RequireLocalhostAuth bool          `help:"Require authentication from loopback clients too" default:"false" env:"KEYSWAP_API_REQUIRE_LOCALHOST_AUTH"`
	MaxPayloadBytes      int           `help:"Largest accepted request payload in bytes" default:"1048576" env:"KEYSWAP_API_MAX_PAYLOAD"`
	Password             string        `kong:"-"`
	ConnectionTimeout    time.Duration `kong:"-"`
}
