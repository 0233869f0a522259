// Package storage provides the storage engine for Atelier.
//
// The storage engine combines in-memory stores with an embedded Badger
// database to provide durable session and workspace storage.
//
// Architecture:
//
//   - Memory Store: Primary storage using sharded concurrent maps
//   - Badger: Embedded KV database for durability and crash recovery
//   - Engine: Write-through coordinator (Badger first, then memory)
//
// The engine supports:
//
//   - Durability: Every write reaches Badger before acknowledgment
//   - Recovery: Memory state rebuilt from Badger on startup, with
//     expired sessions dropped during replay
//   - Performance: All reads served from memory
package storage
