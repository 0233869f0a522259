package ipc

import (
	"os"

	"github.com/atelierlabs/atelier-go/internal/server/args"
)

// Probe decides whether this invocation should hand its work to an
// already-running instance. It returns the instance's handle, or ""
// when the caller should start a server of its own.
//
// Priority:
//  1. $ATELIER_IPC_HOOK set: return it unconditionally.
//  2. --new-window or --reuse-window: return the recorded handle if
//     present; these flags do nothing in a fresh server.
//  3. The command line carries nothing but open targets: return the
//     recorded handle only if an instance actually answers on it.
func Probe(set *args.ArgSet) (string, error) {
	if hook := os.Getenv(EnvIPCHook); hook != "" {
		return hook, nil
	}

	if set.NewWindow || set.ReuseWindow {
		return ReadHandle()
	}

	if set.FlagCount() == 0 && hasOpenTarget(set) {
		handle, err := ReadHandle()
		if err != nil {
			return "", err
		}
		if handle != "" && CanConnect(handle) {
			return handle, nil
		}
	}

	return "", nil
}

// hasOpenTarget reports whether the set names something to open. The
// parser may have moved a lone workspace path out of the positional
// list, so the inferred fields count too.
func hasOpenTarget(set *args.ArgSet) bool {
	return len(set.Positional) > 0 || set.Workspace != "" || set.Folder != ""
}
