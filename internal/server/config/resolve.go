package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atelierlabs/atelier-go/internal/infra/certs"
	"github.com/atelierlabs/atelier-go/internal/infra/paths"
	"github.com/atelierlabs/atelier-go/internal/server/args"
)

// CertFunc materializes a certificate for hostname under dir. The
// default is certs.Generate; tests substitute a stub.
type CertFunc func(hostname, dir string) (certPath, keyPath string, err error)

// ResolveOptions customizes resolution. The zero value reads the real
// process environment and generates real certificates.
type ResolveOptions struct {
	Env          *Environ
	GenerateCert CertFunc
}

// Resolve merges the config-file and command-line argument sets into
// the final server configuration. CLI flags win over config-file
// entries, which win over hard defaults. Resolution may touch the
// filesystem once, to materialize a requested certificate.
//
// Either argument set may be nil.
func Resolve(cliArgs, fileArgs *args.ArgSet, opts ResolveOptions) (*Config, error) {
	env := opts.Env
	if env == nil {
		env = CaptureEnviron()
	}
	generate := opts.GenerateCert
	if generate == nil {
		generate = certs.Generate
	}
	if cliArgs == nil {
		cliArgs = args.NewArgSet()
	}
	if fileArgs == nil {
		fileArgs = args.NewArgSet()
	}

	cfg := &Config{ArgSet: *args.Merge(fileArgs, cliArgs)}

	if cfg.UserDataDir == "" {
		cfg.UserDataDir = paths.Data()
	}
	if cfg.ExtensionsDir == "" {
		cfg.ExtensionsDir = filepath.Join(cfg.UserDataDir, "extensions")
	}

	resolveLogLevel(cfg, env)

	if cfg.Auth == "" {
		cfg.Auth = DefaultAuth
	}

	addr := DefaultAddr()
	for _, layer := range []*args.ArgSet{fileArgs, cliArgs} {
		next, err := BindAddrFrom(addr, layer, env)
		if err != nil {
			return nil, err
		}
		addr = next
	}
	cfg.Host, cfg.Port = addr.Host, addr.Port

	// Relay mode: reachable only through the link relay, so listen on
	// an ephemeral localhost port and drop local auth entirely.
	if cfg.Link.Set {
		cfg.Host = "localhost"
		cfg.Port = 0
		cfg.Socket = ""
		cfg.Cert = args.OptionalString{}
		cfg.Auth = args.AuthNone
	}

	if cfg.Cert.Set && cfg.Cert.Value == "" {
		host := cfg.CertHost
		if host == "" {
			host = DefaultCertHost
		}
		certPath, keyPath, err := generate(host, cfg.UserDataDir)
		if err != nil {
			return nil, fmt.Errorf("config: generate certificate: %w", err)
		}
		cfg.Cert.Value = certPath
		cfg.CertKey = keyPath
	}

	if env.Password != "" {
		cfg.Password = env.Password
		cfg.UsingEnvPassword = true
	}
	if env.HashedPassword != "" {
		cfg.HashedPassword = env.HashedPassword
		cfg.UsingEnvHashedPassword = true
		cfg.UsingEnvPassword = false
	}
	env.ScrubSecrets()

	cfg.ProxyDomains = normalizeProxyDomains(cfg.ProxyDomains)

	return cfg, nil
}

// resolveLogLevel applies the level precedence: an explicit verbose
// flag forces trace, else an explicit --log wins, else a recognized
// $LOG_LEVEL. The resolved level is mirrored back into the environment;
// an empty level means the logger's own default applies.
func resolveLogLevel(cfg *Config, env *Environ) {
	switch {
	case cfg.Verbose:
		cfg.Log = args.LogTrace
	case cfg.Log == "":
		if level, ok := args.ParseLogLevel(env.LogLevel); ok {
			cfg.Log = level
		}
	}
	if cfg.Log != "" {
		env.MirrorLogLevel(cfg.Log)
	}
	cfg.Verbose = cfg.Log == args.LogTrace
}

// normalizeProxyDomains strips a leading "*." from each entry, then
// drops duplicates keeping first-occurrence order.
func normalizeProxyDomains(domains []string) []string {
	if len(domains) == 0 {
		return domains
	}
	out := make([]string, 0, len(domains))
	seen := make(map[string]struct{}, len(domains))
	for _, domain := range domains {
		domain = strings.TrimPrefix(domain, "*.")
		if _, ok := seen[domain]; ok {
			continue
		}
		seen[domain] = struct{}{}
		out = append(out, domain)
	}
	return out
}
