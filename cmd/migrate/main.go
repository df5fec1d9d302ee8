package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"payment-gateway/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/kelseyhightower/envconfig"
)

// migrate applies migrations/ to the configured database declaratively:
// atlas diffs the live schema against the SQL files and applies the plan.
func main() {
	dir := flag.String("dir", "migrations", "directory holding the schema SQL files")
	devURL := flag.String("dev-url", "docker://postgres/16/dev", "atlas dev database used to compute the plan")
	dryRun := flag.Bool("dry-run", false, "print the plan without applying it")
	flag.Parse()

	var dbCfg config.DBConfig
	if err := envconfig.Process("", &dbCfg); err != nil {
		slog.Error("failed to load database config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := atlasexec.NewClient(".", "atlas")
	if err != nil {
		slog.Error("failed to initialize atlas client", "error", err)
		os.Exit(1)
	}

	res, err := client.SchemaApply(ctx, &atlasexec.SchemaApplyParams{
		URL:         dbCfg.BuildDSN(),
		To:          "file://" + *dir,
		DevURL:      *devURL,
		DryRun:      *dryRun,
		AutoApprove: true,
	})
	if err != nil {
		slog.Error("schema apply failed", "error", err)
		os.Exit(1)
	}

	slog.Info("schema applied",
		"dry_run", *dryRun,
		"statements", len(res.Changes.Pending),
		"applied", len(res.Changes.Applied))
}
