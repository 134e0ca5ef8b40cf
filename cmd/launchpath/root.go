package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"launchpath/internal/catalog"
	"launchpath/internal/config"
	"launchpath/internal/db"
	"launchpath/internal/service"
)

// cli guarda lo que comparten los subcomandos.
type cli struct {
	verbose bool
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "launchpath",
		Short: "Path ranking, check-in signals and maintenance tasks",
		Long: `launchpath runs the decision engine from the command line and
performs operational tasks against the database.

The engine commands (rank, classify, milestones) need no configuration.
migrate and remind read DATABASE_URL and SMTP_* from the environment or .env.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Verbose output")

	root.AddCommand(
		c.newRankCmd(),
		c.newClassifyCmd(),
		c.newMilestonesCmd(),
		c.newMigrateCmd(),
		c.newRemindCmd(),
	)
	return root
}

func (c *cli) logger() *zap.Logger {
	if !c.verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func (c *cli) engine(rng service.RandomSource) (*service.DecisionEngine, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return service.NewDecisionEngine(cat, rng), nil
}

// connect carga la configuracion y abre el pool de Postgres.
func (c *cli) connect(ctx context.Context) (*config.Config, *pgxpool.Pool, error) {
	if err := godotenv.Load(); err != nil && c.verbose {
		log.Printf("warning: loading .env: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("db connect: %w", err)
	}
	if err := db.Ping(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("db ping: %w", err)
	}
	return cfg, pool, nil
}
