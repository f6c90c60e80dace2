package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"budget-recipe-api/internal/pkg/common"
	"budget-recipe-api/internal/scrape"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "scrape: %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "scrape",
		Usage: "Collect the Lidl DK recipe index into a CSV file (url,title)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "base",
				Value: scrape.DefaultBaseURL,
				Usage: "Recipe site base URL",
			},
			&cli.StringFlag{
				Name:  "index",
				Value: scrape.DefaultIndexPath,
				Usage: "Path of the recipe index page",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Value:   "lidl_recipes.csv",
				Usage:   "Output CSV path",
			},
			&cli.DurationFlag{
				Name:  "delay",
				Value: scrape.DefaultDelay,
				Usage: "Pause between recipe page requests",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 30 * time.Second,
				Usage: "Per-request timeout",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := common.InitLogger(cmd.String("log-level")); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer common.Sync()

			s, err := scrape.New(cmd.String("base"),
				scrape.WithIndexPath(cmd.String("index")),
				scrape.WithDelay(cmd.Duration("delay")),
				scrape.WithTimeout(cmd.Duration("timeout")),
			)
			if err != nil {
				return err
			}

			outPath := cmd.String("out")
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", outPath, err)
			}
			defer f.Close()

			n, err := s.Run(ctx, f)
			if err != nil {
				return fmt.Errorf("scrape failed after %d rows: %w", n, err)
			}

			common.LogInfo("Saved recipe index",
				zap.String("path", outPath),
				zap.Int("rows", n),
			)
			return nil
		},
	}
}
