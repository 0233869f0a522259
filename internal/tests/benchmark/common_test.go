package benchmark

import (
	"context"
	"fmt"
	"runtime"
	"testing"
	"time"

	"github.com/atelierlabs/atelier-go/internal/core/domain"
	"github.com/atelierlabs/atelier-go/internal/storage/memory"
	"github.com/atelierlabs/atelier-go/pkg/secret"
)

// SessionCounts are the store sizes each benchmark runs against.
var SessionCounts = []int{1000, 5000, 10000}

// newSession builds a fully populated session the way the HTTP login
// path does, with a hashed bearer token and access metadata.
func newSession(b *testing.B) (*domain.Session, string) {
	b.Helper()

	session, err := domain.NewSession()
	if err != nil {
		b.Fatalf("NewSession: %v", err)
	}
	token, err := secret.Token()
	if err != nil {
		b.Fatalf("Token: %v", err)
	}

	now := time.Now()
	session.TokenHash = secret.Hash(token)
	session.IPAddress = "192.168.1.10"
	session.UserAgent = "benchmark/1.0"
	session.LastAccessIP = session.IPAddress
	session.LastAccessUA = session.UserAgent
	session.CreatedAt = now.UnixMilli()
	session.ExpiresAt = now.Add(24 * time.Hour).UnixMilli()
	session.LastActive = now.UnixMilli()
	return session, token
}

// prefillStore creates a store holding count sessions. The quota is
// raised above the default so Create never rejects the prefill.
func prefillStore(b *testing.B, count int) (*memory.Store, []*domain.Session) {
	b.Helper()

	store := memory.New(memory.WithMaxSessions(count * 2))
	sessions := make([]*domain.Session, 0, count)
	ctx := context.Background()

	for i := 0; i < count; i++ {
		session, _ := newSession(b)
		if err := store.Create(ctx, session); err != nil {
			b.Fatalf("Create session %d: %v", i, err)
		}
		sessions = append(sessions, session)
	}
	return store, sessions
}

// newWorkspace builds a workspace record for a synthetic path.
func newWorkspace(b *testing.B, i int) *domain.Workspace {
	b.Helper()

	ws, err := domain.NewWorkspace(fmt.Sprintf("/home/dev/projects/repo-%d", i), domain.KindFolder)
	if err != nil {
		b.Fatalf("NewWorkspace: %v", err)
	}
	return ws
}

// reportMemory attaches heap usage to the benchmark output.
func reportMemory(b *testing.B) {
	b.Helper()

	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.HeapAlloc)/1024/1024, "heap-MB")
}
