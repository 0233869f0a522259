package args

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/atelierlabs/atelier-go/internal/infra/confloader"
	"github.com/atelierlabs/atelier-go/internal/infra/paths"
	"github.com/atelierlabs/atelier-go/pkg/secret"
)

// EnvConfig overrides the config file location when set.
const EnvConfig = "ATELIER_CONFIG"

// DefaultConfigFile is the file name used under the config directory
// when neither --config nor $ATELIER_CONFIG picks a path.
const DefaultConfigFile = "config.yaml"

// ConfigPath resolves the effective config file location: the explicit
// path if given, else $ATELIER_CONFIG, else the default location.
func ConfigPath(explicit string) string {
	path := explicit
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		path = filepath.Join(paths.Config(), DefaultConfigFile)
	}
	return absPath(path)
}

// LoadConfigFile reads the config file, creating it with generated
// defaults on first launch, and feeds its entries through the same
// tokenizer the command line uses. The returned set always carries the
// resolved path in its Config field.
//
// Tokenizer failures are prefixed with the file path; document syntax
// failures are returned as-is.
func LoadConfigFile(explicit string) (*ArgSet, error) {
	path := ConfigPath(explicit)

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	if err := writeDefaultConfig(path); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	set := NewArgSet()
	set.Config = path
	set.markSet("config")
	if len(raw) == 0 {
		return set, nil
	}

	doc, err := confloader.ParseDocument(raw)
	if err != nil {
		return nil, err
	}

	tokens := make([]string, 0, doc.Len())
	for _, key := range doc.Keys() {
		switch v := doc.Get(key).(type) {
		case bool:
			if v {
				tokens = append(tokens, "--"+key)
			} else {
				tokens = append(tokens, fmt.Sprintf("--%s=%v", key, v))
			}
		case []any:
			for _, item := range v {
				tokens = append(tokens, fmt.Sprintf("--%s=%v", key, item))
			}
		default:
			tokens = append(tokens, fmt.Sprintf("--%s=%v", key, v))
		}
	}

	parsed, err := Parse(tokens, SourceConfigFile)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	parsed.Config = path
	parsed.markSet("config")
	return parsed, nil
}

// writeDefaultConfig creates the file with a generated password unless
// it already exists. Losing the create race to another process is
// success, not an error.
func writeDefaultConfig(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil
		}
		return err
	}

	password, err := secret.Password(24)
	if err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	doc := fmt.Sprintf("bind-addr: 127.0.0.1:8080\nauth: password\npassword: %s\ncert: false\n", password)
	if _, err := f.WriteString(doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
