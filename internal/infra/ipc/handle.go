package ipc

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// EnvIPCHook points at the management socket of the instance that
// spawned this process. Atelier's own terminal sessions export it so
// "atelier <path>" inside one reuses the hosting instance.
const EnvIPCHook = "ATELIER_IPC_HOOK"

const dialTimeout = time.Second

// handlePath is a variable so tests can relocate the well-known file.
var handlePath = filepath.Join(os.TempDir(), fmt.Sprintf("atelier-ipc-%d.path", os.Getuid()))

// HandleFile returns the well-known path where a running instance
// records its management socket. One file per user.
func HandleFile() string {
	return handlePath
}

// ReadHandle reads the recorded socket path. A missing handle file
// means no instance has registered; that returns "" with no error.
func ReadHandle() (string, error) {
	data, err := os.ReadFile(handlePath)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("ipc: read handle file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// WriteHandle records the management socket path for later
// invocations. The server calls this once it is listening.
func WriteHandle(socketPath string) error {
	if err := os.WriteFile(handlePath, []byte(socketPath), 0o600); err != nil {
		return fmt.Errorf("ipc: write handle file: %w", err)
	}
	return nil
}

// RemoveHandle deletes the handle file. Removing an absent file is not
// an error.
func RemoveHandle() error {
	err := os.Remove(handlePath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("ipc: remove handle file: %w", err)
	}
	return nil
}

// CanConnect reports whether something is accepting connections on the
// socket behind handle.
func CanConnect(handle string) bool {
	conn, err := net.DialTimeout("unix", handle, dialTimeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
