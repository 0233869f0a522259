package config

import "github.com/atelierlabs/atelier-go/internal/server/args"

// Default configuration values.
const (
	DefaultHost = "localhost"
	DefaultPort = 8080

	DefaultAuth     = args.AuthPassword
	DefaultCertHost = "localhost"
)

// DefaultAddr returns the bind address used when neither the config
// file nor the command line names one.
func DefaultAddr() Addr {
	return Addr{Host: DefaultHost, Port: DefaultPort}
}
