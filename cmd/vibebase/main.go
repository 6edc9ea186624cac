// Package main is the entry point for the vibebase server.
//
// vibebase is a document store backed by JSONL files that exposes a news CMS
// over a RESTful HTTP API: categories, users, articles, threaded comments and
// statistics, with referential integrity enforced on every write and delete.
// Configuration is read from CLI flags and config.yaml in the store directory.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/vibebase/vibebase/internal/news"
	"github.com/vibebase/vibebase/internal/notify"
	"github.com/vibebase/vibebase/internal/server"
	"github.com/vibebase/vibebase/internal/server/handlers"
	"github.com/vibebase/vibebase/internal/server/ipgeo"
	"github.com/vibebase/vibebase/internal/server/ratelimit"
	"github.com/vibebase/vibebase/internal/storage"
	"github.com/vibebase/vibebase/internal/storage/gitver"
)

func main() {
	if err := mainImpl(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "vibebase: %v\n", err)
		os.Exit(1)
	}
}

func mainImpl() error {
	version := flag.Bool("version", false, "Print version and exit")
	httpAddr := flag.String("http", "localhost:8080", "Address to listen on (e.g., localhost:8080, :8080, 0.0.0.0:8080). Use 0.0.0.0:port to listen on all interfaces.")
	storeDir := flag.String("store-dir", "./data", "Store directory holding the JSONL collections")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	geoDB := flag.String("geo-db", "", "Path to MaxMind MMDB file for IP geolocation (optional)")
	gitEnabled := flag.Bool("git", false, "Version the store directory with git (also enabled via config.yaml)")
	flag.Parse()
	if len(flag.Args()) > 0 {
		return fmt.Errorf("unknown arguments: %v", flag.Args())
	}

	if *version {
		printVersion()
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()
	ll := &slog.LevelVar{}
	ll.Set(slog.LevelInfo)
	// Skip timestamps when running under systemd (it adds its own).
	underSystemd := os.Getenv("JOURNAL_STREAM") != ""
	logger := slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      ll,
		TimeFormat: "15:04:05.000", // Like time.TimeOnly plus milliseconds.
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Drop time when running under systemd.
			if underSystemd && a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			// Drop localhost IPs (not useful in logs).
			if a.Key == "ip" {
				if v := a.Value.String(); v == "127.0.0.1" || v == "::1" {
					return slog.Attr{}
				}
			}
			val := a.Value.Any()
			skip := false
			switch t := val.(type) {
			case string:
				skip = t == ""
			case bool:
				skip = !t
			case uint64:
				skip = t == 0
			case int64:
				skip = t == 0
			case float64:
				skip = t == 0
			case time.Time:
				skip = t.IsZero()
			case time.Duration:
				skip = t == 0
			case nil:
				skip = true
			}
			if skip {
				return slog.Attr{}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	switch *logLevel {
	case "debug":
		ll.Set(slog.LevelDebug)
	case "info":
	case "warn":
		ll.Set(slog.LevelWarn)
	case "error":
		ll.Set(slog.LevelError)
	default:
		return fmt.Errorf("unknown log level: %q", *logLevel)
	}

	// Normalize addr: ":8080" becomes "localhost:8080".
	addr := *httpAddr
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}

	if err := os.MkdirAll(*storeDir, 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	serverCfg, err := storage.LoadServerConfig(*storeDir)
	if err != nil {
		return fmt.Errorf("failed to load config.yaml: %w", err)
	}

	store, err := news.NewStore(*storeDir)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	var repo *gitver.Repo
	if *gitEnabled || serverCfg.Git.Enabled {
		repo, err = gitver.Open(*storeDir, serverCfg.Git.AuthorName, serverCfg.Git.AuthorEmail)
		if err != nil {
			return fmt.Errorf("failed to open store repo: %w", err)
		}
		slog.InfoContext(ctx, "Store versioning enabled", "dir", *storeDir)
	}

	notifier := notify.New(store.DB, notify.VAPIDKeys{
		Public:     serverCfg.VAPID.PublicKey,
		Private:    serverCfg.VAPID.PrivateKey,
		Subscriber: serverCfg.VAPID.Subscriber,
	})
	if notifier != nil {
		slog.InfoContext(ctx, "Web push enabled", "subscriber", serverCfg.VAPID.Subscriber)
	}

	var geoChecker *ipgeo.Checker
	if *geoDB != "" {
		geoChecker, err = ipgeo.Open(*geoDB)
		if err != nil {
			return fmt.Errorf("failed to open geo database: %w", err)
		}
		defer func() { _ = geoChecker.Close() }()
		slog.InfoContext(ctx, "IP geolocation enabled", "db", *geoDB)
	}

	var limiter *ratelimit.Limiter
	if serverCfg.RateLimit.Requests > 0 {
		limiter = ratelimit.NewLimiter(
			serverCfg.RateLimit.Requests,
			time.Duration(serverCfg.RateLimit.WindowS)*time.Second,
			serverCfg.RateLimit.Burst)
		defer limiter.Close()
	}

	if err := watchStore(ctx, *storeDir); err != nil {
		return fmt.Errorf("failed to watch store: %w", err)
	}

	svc := handlers.NewServices(store, notifier, repo)
	buildVersion, _, _, _ := getBuildInfo()
	cfg := &handlers.Config{
		Version:           buildVersion,
		JWTSecret:         serverCfg.JWTSecret,
		AdminPasswordHash: serverCfg.AdminPasswordHash,
	}
	if cfg.AuthEnabled() {
		slog.InfoContext(ctx, "Admin auth enabled")
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.NewRouter(svc, cfg, limiter, geoChecker),
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "Starting server", "addr", addr, "store", *storeDir, "version", buildVersion)
		serverErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		slog.InfoContext(ctx, "Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		slog.InfoContext(ctx, "Server stopped")
	}
	return nil
}

func printVersion() {
	version, goVersion, revision, dirty := getBuildInfo()
	fmt.Printf("vibebase %s\n", version)
	fmt.Printf("  Go version: %s\n", goVersion)
	fmt.Printf("  Revision:   %s\n", revision)
	if dirty {
		fmt.Printf("  Modified:   true\n")
	}
}

func getBuildInfo() (version, goVersion, revision string, dirty bool) {
	version = "unknown"
	goVersion = "unknown"
	revision = "unknown"
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	version = info.Main.Version
	if version == "" || version == "(devel)" {
		version = "dev"
	}
	goVersion = info.GoVersion
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	return
}

// watchStore logs external edits to *.jsonl files in the store directory and
// its collection subdirectories. The server always reads from disk, so an
// edit made with a text editor takes effect on the next request; the log line
// confirms the change was seen.
func watchStore(ctx context.Context, dir string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		_ = w.Close()
		return err
	}
	for _, e := range entries {
		if e.IsDir() && e.Name() != ".git" {
			if err := w.Add(filepath.Join(dir, e.Name())); err != nil {
				slog.WarnContext(ctx, "Failed to watch collection directory", "dir", e.Name(), "err", err)
			}
		}
	}
	go func() {
		defer func() { _ = w.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				// New collection directories appear on first write.
				if event.Has(fsnotify.Create) {
					if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
						if err := w.Add(event.Name); err != nil {
							slog.WarnContext(ctx, "Failed to watch collection directory", "dir", event.Name, "err", err)
						}
						continue
					}
				}
				if (event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) && strings.HasSuffix(event.Name, ".jsonl") {
					slog.DebugContext(ctx, "Store file changed", "file", event.Name, "op", event.Op.String())
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.WarnContext(ctx, "Error watching store", "err", err)
			}
		}
	}()
	return nil
}
