// Package confloader provides configuration loading mechanism.
//
// Two kinds of configuration flow through this package. The Loader
// layers structured settings from multiple sources using koanf and is
// consumed by the admin CLI; the Document parser reads one YAML
// mapping while preserving key order and backs the server's config
// file, whose entries are re-tokenized as flags and therefore need a
// deterministic first-error.
//
// Features:
//
//   - Multiple Sources: Files, environment variables, maps
//   - Ordered Documents: Top-level key order preserved for projection
//   - Watch Support: Change notification on config and cert files
//   - Type Safety: Unmarshaling into typed structs
//
// Loader priority (highest to lowest):
//
//  1. Environment variables
//  2. Configuration files
//  3. Default values
package confloader
