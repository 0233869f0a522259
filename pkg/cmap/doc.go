// Package cmap provides a generic sharded concurrent map.
//
// Atelier keeps its hot in-memory state here: live sessions, workspace
// records, and the token and path indexes over them. Keys are spread
// over independently locked shards so concurrent HTTP requests and the
// expiry sweeper rarely contend on the same mutex.
//
//	m := cmap.New[string, *domain.Session]()
//	m.Set(id, sess)
//	sess, ok := m.Get(id)
//
// All operations are safe for concurrent use. Iteration locks one
// shard at a time, so a Range sees a map that is live, not a snapshot.
package cmap
