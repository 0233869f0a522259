package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/atelierlabs/atelier-go/internal/server/args"
)

// Verify validates the resolved configuration.
func Verify(cfg *Config) error {
	if err := verifyListen(cfg); err != nil {
		return err
	}
	if err := verifyAuth(cfg); err != nil {
		return err
	}
	if err := verifyCert(cfg); err != nil {
		return err
	}
	return verifyDirs(cfg)
}

func verifyListen(cfg *Config) error {
	if cfg.Port < 0 || cfg.Port > 65535 {
		return fmt.Errorf("port %d out of range", cfg.Port)
	}
	if cfg.SocketMode != "" {
		if _, err := strconv.ParseUint(cfg.SocketMode, 8, 32); err != nil {
			return errors.New("socket-mode must be an octal mode like 0700")
		}
	}
	return nil
}

func verifyAuth(cfg *Config) error {
	if cfg.Auth == args.AuthPassword && cfg.Password == "" && cfg.HashedPassword == "" {
		return errors.New("password auth requires a password; set it in the config file or $PASSWORD")
	}
	return nil
}

func verifyCert(cfg *Config) error {
	if !cfg.Cert.HasValue() {
		return nil
	}
	if _, err := os.Stat(cfg.Cert.Value); err != nil {
		return errors.New("cannot read certificate: " + err.Error())
	}
	if cfg.CertKey != "" {
		if _, err := os.Stat(cfg.CertKey); err != nil {
			return errors.New("cannot read certificate key: " + err.Error())
		}
	}
	return nil
}

func verifyDirs(cfg *Config) error {
	// Check the data directories exist or can be created
	if err := os.MkdirAll(cfg.UserDataDir, 0o700); err != nil {
		return errors.New("cannot create user data directory: " + err.Error())
	}
	if err := os.MkdirAll(cfg.ExtensionsDir, 0o700); err != nil {
		return errors.New("cannot create extensions directory: " + err.Error())
	}
	return nil
}
