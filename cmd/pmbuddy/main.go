// Package main provides the pmbuddy CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/pubmed-buddy/internal/app"
	"github.com/samvad-hq/pubmed-buddy/internal/config"
	"github.com/samvad-hq/pubmed-buddy/internal/logger"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

type flags struct {
	pmids       string
	file        string
	abstract    bool
	output      string
	concurrency int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "pmbuddy: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "pmbuddy",
		Short: "Streamline retrieval of journal data from PubMed",
		Long: `pmbuddy fetches PubMed and PubMed Central article pages and prints their
title, authors, journal, citation and abstract.

Examples:
  pmbuddy -i 39111311
  pmbuddy -i PMC1234567,39101671 --abstract
  pmbuddy -f ids.txt -o articles.xlsx`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), f)
		},
	}

	cmd.Flags().StringVarP(&f.pmids, "pmid", "i", "", "comma separated PMIDs, PMCIDs or article URLs")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "file containing one PMID, PMCID or URL per line")
	cmd.Flags().BoolVar(&f.abstract, "abstract", false, "display article abstracts instead of the summary table")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "also export the articles to a .csv or .xlsx file")
	cmd.Flags().IntVar(&f.concurrency, "concurrency", 0, "number of pages fetched in parallel (default from config)")
	return cmd
}

func collectLocators(f flags) ([]string, error) {
	switch {
	case f.file != "":
		return app.ReadLocatorFile(f.file)
	case f.pmids != "":
		return app.SplitLocators(f.pmids), nil
	default:
		return nil, nil
	}
}

func run(parent context.Context, f flags) error {
	locators, err := collectLocators(f)
	if err != nil {
		return err
	}
	if len(locators) == 0 {
		return fmt.Errorf("no PMID provided: use --pmid or --file")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if _, err := logger.Init(cfg); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.DebugObj("pmbuddy starting", "config", cfg)

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	buddy, err := app.NewBuddy(ctx, cfg, logger.Default())
	if err != nil {
		logger.ErrorObj("failed to initialize pmbuddy", "error", err.Error())
		return err
	}
	defer func() {
		if cerr := buddy.Close(); cerr != nil {
			logger.WarnObj("publisher shutdown failed", "error", cerr.Error())
		}
	}()

	return buddy.Run(ctx, app.Options{
		Locators:    locators,
		Abstract:    f.abstract,
		Output:      f.output,
		Concurrency: f.concurrency,
	})
}
