package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ganot/daybook/internal/config"
	"github.com/ganot/daybook/internal/domain/activity"
	"github.com/ganot/daybook/internal/domain/directory"
	"github.com/ganot/daybook/internal/domain/identity"
	"github.com/ganot/daybook/internal/domain/journal"
	"github.com/ganot/daybook/internal/domain/suggestion"
	"github.com/ganot/daybook/internal/domain/task"
	"github.com/ganot/daybook/internal/live"
	"github.com/ganot/daybook/internal/mcp"
	"github.com/ganot/daybook/internal/metrics"
	"github.com/ganot/daybook/internal/repository"
	"github.com/ganot/daybook/internal/sqlite"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	entryRepo := sqlite.NewEntryRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)
	projectRepo := sqlite.NewProjectRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)
	apiKeyRepo := sqlite.NewAPIKeyRepository(db)

	activitySvc := activity.NewService(activityRepo, logger)
	directorySvc := directory.NewService(projectRepo, logger)
	journalSvc := journal.NewService(entryRepo, projectRepo, activitySvc, logger)
	taskSvc := task.NewService(taskRepo, activitySvc, logger)
	suggestionSvc := suggestion.NewIngestor(suggestion.LineSummarizer{}, taskSvc, journalSvc, logger)

	resolver := &apiKeyResolver{keys: apiKeyRepo}
	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Journal:     journalSvc,
			Directory:   directorySvc,
			Tasks:       taskSvc,
			Suggestions: suggestionSvc,
			Activity:    activitySvc,
		},
		Resolver:      resolver,
		AuthEnabled:   cfg.Auth.Enabled,
		TransportMode: cfg.Transport.Mode,
		Logger:        logger,
	})

	if cfg.Transport.Mode == "stdio" {
		runStdioMode(logger, mcpServer)
		return
	}

	feed := live.NewFeed(taskSvc, resolver, logger)
	runHTTPMode(logger, mcpServer, feed, cfg.Server.Host, cfg.Server.Port)
}

func runStdioMode(logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport", "auth", "disabled")

	transport := &sdkmcp.StdioTransport{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	// Run blocks until stdin closes or context is canceled
	if err := mcpServer.Run(ctx, transport); err != nil {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}

func runHTTPMode(logger *slog.Logger, mcpServer *sdkmcp.Server, feed *live.Feed, host string, port int) {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)

	router := http.NewServeMux()
	router.Handle("/mcp", mcpHandler)
	router.Handle("/mcp/", mcpHandler)
	router.Handle("/ws/tasks", feed)
	router.Handle("/metrics", metrics.Handler())
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// apiKeyResolver authenticates bearer tokens against the api_keys table. The
// same resolver serves the MCP middleware and the websocket feed.
type apiKeyResolver struct {
	keys repository.APIKeyRepository
}

func (r *apiKeyResolver) ResolveIdentity(ctx context.Context, token string) (identity.User, error) {
	user, err := r.keys.Resolve(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return identity.User{}, fmt.Errorf("invalid token")
		}
		return identity.User{}, err
	}
	return user, nil
}

func (r *apiKeyResolver) ResolveTenant(ctx context.Context, token string) (string, error) {
	user, err := r.ResolveIdentity(ctx, token)
	if err != nil {
		return "", err
	}
	return user.TenantID, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
