// Package buildinfo exposes build-time version information for Atelier.
//
// Values are injected via ldflags:
//
//	go build -ldflags "-X github.com/atelierlabs/atelier-go/internal/infra/buildinfo.Version=v1.2.0"
//
// The server banner, the /api/status payload, and the atelier-cli version
// command all read from here, so the three always agree.
package buildinfo
