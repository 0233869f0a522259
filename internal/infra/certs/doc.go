// Package certs provides self-signed TLS certificate management for
// Atelier.
//
// This package handles certificate generation and hot-reload:
//
//   - certs.go: Self-signed certificate generation and reuse
//   - watcher.go: Keypair hot-reload via fsnotify
//
// Features:
//
//   - On-demand self-signed certificates for --cert without a path
//   - Keypair reuse across restarts (one pair per hostname)
//   - Automatic reload when certificate files change on disk
package certs
