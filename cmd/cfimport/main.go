// Command cfimport validates custom characterization-factor CSV files
// and resolves them against a life-cycle-assessment database.
//
// Usage:
//
//	cfimport parse <file.csv>    validate the file and print the parsed flows
//	cfimport resolve <file.csv>  additionally resolve every row to a node id
//
// The resolve command needs DATABASE_URL (or DB_URL) to be set.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/lcatools/cfimport/internal/config"
	"github.com/lcatools/cfimport/internal/flowcsv"
	"github.com/lcatools/cfimport/internal/logging"
	"github.com/lcatools/cfimport/internal/registry"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: cfimport <parse|resolve> <file.csv>")
		os.Exit(2)
	}
	command, path := os.Args[1], os.Args[2]

	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err == nil {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx := logging.WithRun(context.Background(), uuid.NewString())
	logger := logging.FromContext(ctx)

	if err := checkFileSize(path, cfg.Import.MaxFileSize); err != nil {
		logger.Error("refusing to import file", "file", path, "error", err)
		os.Exit(1)
	}

	switch command {
	case "parse":
		runParse(ctx, path)
	case "resolve":
		runResolve(ctx, cfg, path)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\nusage: cfimport <parse|resolve> <file.csv>\n", command)
		os.Exit(2)
	}
}

// runParse validates the file and prints one line per parsed flow.
func runParse(ctx context.Context, path string) {
	logger := logging.FromContext(ctx)

	flows, err := flowcsv.ParseFlows(path)
	if err != nil {
		logger.Error("parse failed", "file", path, "error", err)
		os.Exit(1)
	}

	for _, f := range flows {
		fmt.Printf("%s\t%s\t%s\t%s\t%s\t%s\t%g\n",
			f.Database, f.Name, f.Code, f.Unit, f.CASNumber,
			strings.Join(f.Categories, "::"), f.CF)
	}
	logger.Info("parse complete", "file", path, "flows", len(flows))
}

// runResolve validates the file and resolves every row to a node id
// through the configured database.
func runResolve(ctx context.Context, cfg *config.Config, path string) {
	logger := logging.FromContext(ctx)

	if cfg.Database.URL == "" {
		logger.Error("DATABASE_URL is required for resolve")
		os.Exit(1)
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		logger.Error("failed to parse database URL", "error", err)
		os.Exit(1)
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)
	poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	resolveCtx, cancel := context.WithTimeout(ctx, cfg.Import.Timeout)
	defer cancel()

	pairs, err := flowcsv.ResolveNodes(resolveCtx, path, registry.NewStore(pool))
	if err != nil {
		logger.Error("resolve failed", "file", path, "error", err)
		os.Exit(1)
	}

	for _, p := range pairs {
		fmt.Printf("%d\t%g\n", p.NodeID, p.CF)
	}
	logger.Info("resolve complete", "file", path, "nodes", len(pairs))
}

// checkFileSize rejects files above the configured limit before any
// parsing begins. A missing file is left for the parser to report so
// its error message stays consistent.
func checkFileSize(path string, maxSize int64) error {
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	if info.Size() > maxSize {
		return fmt.Errorf("file is %d bytes, limit is %d", info.Size(), maxSize)
	}
	return nil
}
