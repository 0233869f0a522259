// Package main provides the entry point for the atelier server.
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/atelierlabs/atelier-go/internal/core/service"
	"github.com/atelierlabs/atelier-go/internal/infra/buildinfo"
	"github.com/atelierlabs/atelier-go/internal/infra/certs"
	"github.com/atelierlabs/atelier-go/internal/infra/confloader"
	"github.com/atelierlabs/atelier-go/internal/infra/ipc"
	"github.com/atelierlabs/atelier-go/internal/infra/shutdown"
	"github.com/atelierlabs/atelier-go/internal/server/args"
	"github.com/atelierlabs/atelier-go/internal/server/config"
	"github.com/atelierlabs/atelier-go/internal/server/httpserver"
	"github.com/atelierlabs/atelier-go/internal/server/localserver"
	"github.com/atelierlabs/atelier-go/internal/storage"
	"github.com/atelierlabs/atelier-go/internal/telemetry/logger"
	"github.com/atelierlabs/atelier-go/internal/telemetry/metric"
)

// MgmtSocketName is the management socket file under the user data dir.
const MgmtSocketName = "atelier-mgmt.sock"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(argv []string) error {
	cliSet, err := args.Parse(argv, args.SourceCLI)
	if err != nil {
		return err
	}

	if cliSet.Help {
		fmt.Println("Usage: atelier [flags] [folder | workspace-file]")
		fmt.Println()
		args.Usage(os.Stdout)
		return nil
	}
	if cliSet.Version {
		fmt.Printf("atelier %s\n", buildinfo.String())
		return nil
	}

	// An already-running instance may claim this invocation before any
	// configuration is read; the probe only looks at the raw flags.
	handle, err := ipc.Probe(cliSet)
	if err != nil {
		return err
	}
	if handle != "" {
		return delegate(handle, cliSet)
	}

	fileSet, err := args.LoadConfigFile(cliSet.Config)
	if err != nil {
		return err
	}

	cfg, err := config.Resolve(cliSet, fileSet, config.ResolveOptions{})
	if err != nil {
		return err
	}
	if err := config.Verify(cfg); err != nil {
		return err
	}

	log, slogLogger, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	log.Info("starting atelier",
		"version", buildinfo.Version,
		"config", cfg.Config)
	log.Debug("resolved configuration", "config", config.Sanitize(cfg))

	// Storage engine
	storageEngine, err := storage.New(storage.DefaultConfig(cfg.UserDataDir))
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	ctx := context.Background()
	if err := storageEngine.Recover(ctx); err != nil {
		return fmt.Errorf("storage recovery: %w", err)
	}

	// Services
	sessionSvc := service.NewSessionService(storageEngine, &service.SessionServiceConfig{
		Logger: slogLogger,
	})
	authSvc := service.NewAuthService(sessionSvc, &service.AuthServiceConfig{
		Enabled:        cfg.Auth == args.AuthPassword,
		Password:       cfg.Password,
		HashedPassword: cfg.HashedPassword,
	})
	workspaceSvc := service.NewWorkspaceService(storageEngine, nil)

	// Record the launch targets so the shell page can offer them back.
	if targets := launchTargets(cfg); len(targets) > 0 {
		if _, err := workspaceSvc.Open(ctx, &service.OpenWorkspaceRequest{Targets: targets}); err != nil {
			log.Warn("could not record open targets", "error", err)
		}
	}

	// Metrics
	registry := metric.NewRegistry()
	registry.Prometheus().MustRegister(metric.NewStoreCollector(
		func() int { return storageEngine.Count(ctx) },
		func() int { return storageEngine.CountWorkspaces(ctx) },
	))

	// HTTP server
	router := httpserver.NewRouter(&httpserver.RouterConfig{
		AuthService:      authSvc,
		SessionService:   sessionSvc,
		WorkspaceService: workspaceSvc,
		Logger:           slogLogger,
		Metrics:          registry,
		AppName:          cfg.AppName,
		WelcomeText:      cfg.WelcomeText,
		PasswordNote:     passwordNote(cfg),
		ProxyDomains:     cfg.ProxyDomains,
		SecureCookie:     cfg.Cert.Set,
	})

	tlsConfig, certWatcher, err := initTLS(cfg, slogLogger)
	if err != nil {
		return fmt.Errorf("init tls: %w", err)
	}

	httpServer, err := httpserver.New(&httpserver.Config{
		Host:       cfg.Host,
		Port:       cfg.Port,
		Socket:     cfg.Socket,
		SocketMode: cfg.SocketMode,
		TLS:        tlsConfig,
		Handler:    router,
	})
	if err != nil {
		return err
	}

	// Local management server, plus the handle file that lets later
	// invocations delegate to this instance.
	mgmtHandler := localserver.NewHandler(&localserver.HandlerConfig{
		Sessions:   sessionSvc,
		Workspaces: workspaceSvc,
		Logger:     slogLogger,
	})
	mgmtServer := localserver.New(filepath.Join(cfg.UserDataDir, MgmtSocketName), mgmtHandler)

	// Shutdown, reverse order of startup.
	shutdownHandler := shutdown.NewHandler(30 * time.Second)

	sweepCtx, stopSweeper := context.WithCancel(ctx)
	go sessionSvc.RunSweeper(sweepCtx, time.Minute)
	shutdownHandler.OnShutdown(func(context.Context) error {
		stopSweeper()
		return nil
	})

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down storage engine")
		return storageEngine.Close()
	})

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down management server")
		if err := ipc.RemoveHandle(); err != nil {
			log.Warn("could not remove handle file", "error", err)
		}
		return mgmtServer.Shutdown(ctx)
	})

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return httpServer.Shutdown(ctx)
	})

	if certWatcher != nil {
		shutdownHandler.OnShutdown(func(context.Context) error {
			certWatcher.Stop()
			return nil
		})
	}

	// Config edits take effect on restart; say so instead of silently
	// ignoring them.
	watchConfig(cfg.Config, log)

	go func() {
		if err := mgmtServer.ListenAndServe(); err != nil {
			log.Error("management server error", "error", err)
		}
	}()
	if err := ipc.WriteHandle(mgmtServer.Path()); err != nil {
		log.Warn("could not write handle file", "error", err)
	}

	go func() {
		scheme := "http"
		if tlsConfig != nil {
			scheme = "https"
		}
		log.Info("HTTP server listening",
			"addr", httpServer.Addr(),
			"scheme", scheme,
			"auth", string(cfg.Auth))

		if err := httpServer.Serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// delegate hands the invocation's open targets to the instance behind
// handle and exits without starting a server.
func delegate(handle string, set *args.ArgSet) error {
	open, err := ipc.NewOpenRequest(set)
	if err != nil {
		return err
	}

	resp, err := ipc.Send(handle, &ipc.Request{Command: "open", Open: open})
	if err != nil {
		return fmt.Errorf("delegate to running instance: %w", err)
	}
	if !resp.OK {
		return fmt.Errorf("running instance rejected open: %s", resp.Error)
	}

	fmt.Println("Opened in the running atelier instance.")
	return nil
}

// launchTargets collects the folder/workspace named on this command
// line, if any.
func launchTargets(cfg *config.Config) []string {
	var targets []string
	if cfg.Workspace != "" {
		targets = append(targets, cfg.Workspace)
	}
	if cfg.Folder != "" {
		targets = append(targets, cfg.Folder)
	}
	return targets
}

// passwordNote tells the login page where the password comes from.
func passwordNote(cfg *config.Config) string {
	switch {
	case cfg.Auth != args.AuthPassword:
		return ""
	case cfg.UsingEnvHashedPassword:
		return "Password is set by $HASHED_PASSWORD."
	case cfg.UsingEnvPassword:
		return "Password is set by $PASSWORD."
	default:
		return fmt.Sprintf("Password is in %s.", cfg.Config)
	}
}

// initLogger builds the redacting logger at the resolved level and
// installs it as the process default.
func initLogger(cfg *config.Config) (logger.Logger, *slog.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  string(cfg.Log),
		Format: "text",
		Output: os.Stderr,
	})
	if err != nil {
		return nil, nil, err
	}
	logger.SetDefault(log)
	return log, slog.Default(), nil
}

// initTLS builds the TLS listener config when a certificate is
// configured. The watcher keeps serving rotated certificates without a
// restart.
func initTLS(cfg *config.Config, slogLogger *slog.Logger) (*tls.Config, *certs.Watcher, error) {
	if !cfg.Cert.HasValue() {
		return nil, nil, nil
	}

	watcher, err := certs.NewWatcher(cfg.Cert.Value, cfg.CertKey, certs.WithLogger(slogLogger))
	if err != nil {
		return nil, nil, err
	}
	watcher.StartAsync()

	return &tls.Config{
		MinVersion:     tls.VersionTLS12,
		GetCertificate: watcher.GetCertificate,
	}, watcher, nil
}

// watchConfig logs a notice when the config file changes underneath a
// running server.
func watchConfig(path string, log logger.Logger) {
	if path == "" {
		return
	}
	watcher, err := confloader.NewWatcher()
	if err != nil {
		log.Debug("config watcher unavailable", "error", err)
		return
	}
	if err := watcher.Watch(path); err != nil {
		log.Debug("could not watch config file", "error", err)
		return
	}
	watcher.OnChange(func(changed string) {
		if filepath.Base(changed) == filepath.Base(path) {
			log.Info("config file changed; restart atelier to apply", "path", path)
		}
	})
	watcher.StartAsync()
}
