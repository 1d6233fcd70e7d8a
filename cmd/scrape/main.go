// Command scrape runs the recipe scrape pipeline against a single URL and
// prints the result, without starting the HTTP server.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-scraper/internal/logger"
	"github.com/pageza/alchemorsel-scraper/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand(os.Stdout).Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newCommand(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "scrape",
		Usage:     "Extract a schema.org recipe from a web page",
		ArgsUsage: "<url>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "parse-ingredients",
				Aliases: []string{"p"},
				Value:   true,
				Usage:   "Attach structured parsed_ingredients to the output",
			},
			&cli.StringFlag{
				Name:  "format",
				Value: formatJSON,
				Usage: "Output format (json or yaml)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the result to a file instead of stdout",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 30 * time.Second,
				Usage: "Timeout for fetching the page (0 disables it)",
			},
			&cli.StringFlag{
				Name:  "user-agent",
				Value: "alchemorsel-scraper/1.0",
				Usage: "User-Agent header sent with the request",
			},
			&cli.IntFlag{
				Name:  "workers",
				Value: 1,
				Usage: "Maximum number of ingredient lines parsed concurrently",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "warn",
				Usage: "Log level (debug, info, warn, error)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one url argument, got %d", cmd.Args().Len())
			}
			format := cmd.String("format")
			if !validFormat(format) {
				return fmt.Errorf("unknown output format: %q", format)
			}

			log, err := logger.New(cmd.String("log-level"), "console")
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			svc := service.NewDefaultScrapeService(service.Options{
				FetchTimeout:      cmd.Duration("timeout"),
				UserAgent:         cmd.String("user-agent"),
				ParseIngredients:  cmd.Bool("parse-ingredients"),
				IngredientWorkers: cmd.Int("workers"),
			}, log)

			url := cmd.Args().First()
			recipe, err := svc.ScrapeRecipe(ctx, url)
			if err != nil {
				return fmt.Errorf("scrape %s: %w", url, err)
			}

			out, err := encode(format, recipe)
			if err != nil {
				return err
			}

			if path := cmd.String("output"); path != "" {
				if err := os.WriteFile(path, out, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				log.Info("recipe written", zap.String("path", path))
				return nil
			}
			_, err = stdout.Write(out)
			return err
		},
	}
}
