package config

import (
	"github.com/atelierlabs/atelier-go/internal/server/args"
)

// Config is the fully resolved server configuration: config file and
// command line merged, defaults applied, secrets sourced. Host and Port
// carry the final bind address; the raw BindAddr string is kept only
// for diagnostics.
type Config struct {
	args.ArgSet

	// UsingEnvPassword records that the password came from $PASSWORD
	// rather than the config file. UsingEnvHashedPassword is the same
	// for $HASHED_PASSWORD; when both variables are present the hashed
	// one wins and the plain flag is cleared.
	UsingEnvPassword       bool
	UsingEnvHashedPassword bool
}

// Addr returns the resolved bind address.
func (c *Config) Addr() Addr {
	return Addr{Host: c.Host, Port: c.Port}
}
