package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jusunglee/gurmukhi/internal/history"
	"github.com/jusunglee/gurmukhi/internal/legacy"
	"github.com/jusunglee/gurmukhi/internal/logger"
	"github.com/jusunglee/gurmukhi/internal/metrics"
	"github.com/jusunglee/gurmukhi/internal/preview"
	"github.com/jusunglee/gurmukhi/internal/transliteration"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
)

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

type config struct {
	style            transliteration.Style
	encoding         legacy.Encoding
	all              bool
	workers          int
	historyURL       string
	historyList      int
	historyRetention time.Duration
	metricsFile      string
	tui              bool
}

func mainE() error {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("translit")
	var (
		style            = fs.StringEnumLong("style", "output style", "iso15919", "practical", "unicode", "search")
		encoding         = fs.StringEnumLong("encoding", "input encoding", "unicode", "anmollipi")
		debug            = fs.BoolLong("debug", "log unknown characters and per-request details")
		all              = fs.BoolLong("all", "print every style for each input")
		workers          = fs.Int64Long("workers", 4, "concurrent conversions for multi-line input")
		historyURL       = fs.StringLong("history", "", "record conversions in this SQLite path or PostgreSQL URL")
		historyList      = fs.Int64Long("history-list", 0, "print the N most recent recorded conversions and exit")
		historyRetention = fs.DurationLong("history-retention", 0, "delete recorded conversions older than this")
		metricsFile      = fs.StringLong("metrics-file", "", "write Prometheus metrics to this file on exit")
		tui              = fs.BoolLong("tui", "open the interactive live preview")
	)

	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("TRANSLIT")); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		if errors.Is(err, ff.ErrHelp) {
			return nil
		}
		return fmt.Errorf("parsing flags: %w", err)
	}

	logCfg := logger.ConfigFromEnv()
	if *debug {
		logCfg.Level = "debug"
	}
	log := logger.New(logCfg)
	slog.SetDefault(log)

	cfg := config{
		style:            transliteration.Style(*style),
		encoding:         legacy.Encoding(*encoding),
		all:              *all,
		workers:          int(*workers),
		historyURL:       *historyURL,
		historyList:      int(*historyList),
		historyRetention: *historyRetention,
		metricsFile:      *metricsFile,
		tui:              *tui,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tr := transliteration.New(
		transliteration.WithLogger(log),
		transliteration.WithDebug(*debug),
	)

	err := run(ctx, cfg, tr, fs.GetArgs(), os.Stdin, os.Stdout, log)
	if cfg.metricsFile != "" {
		if mErr := metrics.WriteTextfile(cfg.metricsFile); mErr != nil {
			err = errors.Join(err, mErr)
		}
	}
	return err
}

func run(ctx context.Context, cfg config, tr *transliteration.Transliterator, args []string, stdin io.Reader, stdout io.Writer, log *slog.Logger) error {
	if cfg.tui {
		return preview.Run(tr, cfg.encoding, preview.DefaultDebounce)
	}

	var rec *history.Recorder
	if cfg.historyURL != "" {
		repo, err := history.Open(ctx, cfg.historyURL)
		if err != nil {
			return err
		}
		defer repo.Close()
		rec = history.NewRecorder(repo, log)

		if _, err := rec.Prune(ctx, cfg.historyRetention); err != nil {
			return err
		}
	}

	if cfg.historyList > 0 {
		if rec == nil {
			return errors.New("history-list needs -history")
		}
		return printHistory(ctx, rec, cfg.historyList, stdout)
	}

	inputs, err := readInputs(args, stdin)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return errors.New("no input: pass text as arguments or on stdin")
	}

	if cfg.all {
		for _, in := range inputs {
			variants, err := tr.Variants(in, cfg.encoding)
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, preview.RenderVariants(variants, 0))
		}
		return nil
	}

	reqs := make([]transliteration.Request, len(inputs))
	for i, in := range inputs {
		reqs[i] = transliteration.Request{Text: in, Encoding: cfg.encoding, Style: cfg.style}
	}

	results, err := tr.Batch(ctx, reqs, cfg.workers)
	if err != nil {
		return err
	}
	for _, r := range results {
		fmt.Fprintln(stdout, r)
	}

	if rec != nil {
		if err := rec.Record(ctx, reqs, results); err != nil {
			return err
		}
	}
	return nil
}

// readInputs returns the joined arguments as a single input, or one input per
// stdin line when there are no arguments.
func readInputs(args []string, stdin io.Reader) ([]string, error) {
	if len(args) > 0 {
		return []string{strings.Join(args, " ")}, nil
	}

	var inputs []string
	scanner := bufio.NewScanner(stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		inputs = append(inputs, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return inputs, nil
}

func printHistory(ctx context.Context, rec *history.Recorder, limit int, stdout io.Writer) error {
	rows, err := rec.Recent(ctx, "", limit)
	if err != nil {
		return err
	}
	for _, c := range rows {
		fmt.Fprintf(stdout, "%d\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.CreatedAt.Format(time.RFC3339), c.Encoding, c.Style, c.Source, c.Result)
	}
	return nil
}
