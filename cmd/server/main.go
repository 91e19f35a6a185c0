package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"eventcare/internal/access"
	"eventcare/internal/platform/config"
	"eventcare/internal/platform/httpserver"
	"eventcare/internal/platform/logger"
	id "eventcare/pkg/domain"
)

// main loads configuration, wires stores, the gateway and handlers, and
// runs the HTTP server until SIGINT or SIGTERM.
func main() {
	issueFor := flag.String("issue-token", "", "print an access token for this user id and exit")
	issueRole := flag.String("role", string(access.RoleEMT), "role claim for -issue-token (EMT or ADMIN)")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
	}

	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := build(ctx, cfg, log)
	if err != nil {
		log.Error("startup failed", "error", err)
		os.Exit(1)
	}

	if *issueFor != "" {
		code := issueToken(ctx, app, *issueFor, *issueRole)
		app.close(context.Background())
		os.Exit(code)
	}

	log.Info("starting eventcare", "audit_backend", cfg.Audit.Backend)
	if err := httpserver.Run(ctx, httpserver.New(cfg.Addr, app.router), log); err != nil {
		log.Error("server error", "error", err)
	}
	closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	app.close(closeCtx)
	log.Info("eventcare stopped")
}

func issueToken(ctx context.Context, app *application, rawUserID, rawRole string) int {
	userID, err := id.ParseUserID(rawUserID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid user id: %v\n", err)
		return 2
	}
	role, err := access.ParseRole(rawRole)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid role: %v\n", err)
		return 2
	}
	tok, err := app.sessions.IssueToken(ctx, access.Principal{ID: userID, Role: role})
	if err != nil {
		fmt.Fprintf(os.Stderr, "issue token: %v\n", err)
		return 1
	}
	fmt.Println(tok.AccessToken)
	return 0
}
