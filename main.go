package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"LocalCanvas/internal/config"
	"LocalCanvas/internal/export"
	"LocalCanvas/internal/history"
	"LocalCanvas/internal/state"
)

const DefaultOutput = "board.pdf"

type options struct {
	configPath string
	input      string
	output     string
	summary    bool
}

func main() {
	var opts options
	var verbose bool
	flag.StringVar(&opts.configPath, "config", "", "TOML settings file")
	flag.StringVar(&opts.input, "in", "", "history log to replay (JSON)")
	flag.StringVar(&opts.output, "out", DefaultOutput, "PDF file to write")
	flag.BoolVar(&opts.summary, "summary", false, "also print a text summary")
	flag.BoolVar(&verbose, "v", false, "log board activity")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	state.SetLogger(logger)

	if err := run(opts, os.Stdout, logger); err != nil {
		logger.Error("export failed", "err", err)
		os.Exit(1)
	}
}

func run(opts options, stdout io.Writer, logger *slog.Logger) error {
	if opts.input == "" {
		return errors.New("no history log given, use -in")
	}
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return err
		}
	}

	data, err := os.ReadFile(opts.input)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	var log history.Log
	if err := json.Unmarshal(data, &log); err != nil {
		return fmt.Errorf("parse history %s: %w", opts.input, err)
	}

	board := state.NewBoard(cfg.Selection.HitPadding)
	if err := board.Replay(log); err != nil {
		return err
	}
	elems := board.Elements()

	exportOpts := export.OptionsFromConfig(cfg.Export)
	exportOpts.Logger = logger
	if err := export.WriteFile(opts.output, elems, exportOpts); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	logger.Info("exported board", "elements", len(elems), "actions", len(log), "out", opts.output)

	if opts.summary {
		return export.WriteSummary(stdout, elems)
	}
	return nil
}
