package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/atelierlabs/atelier-go/internal/server/args"
)

// Addr is a host/port pair the server listens on.
type Addr struct {
	Host string
	Port int
}

// String renders the address in dial form, bracketing IPv6 hosts.
func (a Addr) String() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// BindAddrFrom layers one argument source over base. Within the source
// the sub-order is fixed: a bind-addr string replaces both host and
// port, then host overrides host only, then $PORT overrides port only,
// then an explicit port flag overrides port only.
//
// A bind-addr string without a port resolves to port 80, not the base
// port: the string is parsed as a URL authority, and an absent URL port
// falls back to the scheme default. Callers rely on that behavior.
func BindAddrFrom(base Addr, set *args.ArgSet, env *Environ) (Addr, error) {
	addr := base

	if set.IsSet("bind-addr") {
		parsed, err := parseBindAddr(set.BindAddr)
		if err != nil {
			return Addr{}, err
		}
		addr = parsed
	}
	if set.IsSet("host") {
		addr.Host = set.Host
	}
	if env != nil && env.Port != "" {
		if port, err := strconv.Atoi(env.Port); err == nil {
			addr.Port = port
		}
	}
	if set.IsSet("port") {
		addr.Port = set.Port
	}

	return addr, nil
}

func parseBindAddr(s string) (Addr, error) {
	u, err := url.Parse("http://" + s)
	if err != nil {
		return Addr{}, fmt.Errorf("config: invalid bind address %q: %w", s, err)
	}
	if u.Hostname() == "" {
		return Addr{}, fmt.Errorf("config: invalid bind address %q", s)
	}

	addr := Addr{Host: u.Hostname(), Port: 80}
	if p := u.Port(); p != "" {
		if port, err := strconv.Atoi(p); err == nil {
			addr.Port = port
		}
	}
	return addr, nil
}
