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

	"github.com/adrianliechti/mineru/config"
	"github.com/adrianliechti/mineru/pkg/extractor/mineru"
	"github.com/adrianliechti/mineru/pkg/otel"
)

var version = "dev"

type options struct {
	config string

	file string
	url  string

	language string

	disableOCR     bool
	disableFormula bool
	disableTable   bool

	interval time.Duration
	timeout  time.Duration

	output string
}

func main() {
	var o options

	flag.StringVar(&o.config, "config", "", "config file (default: MINERU_API_KEY / MINERU_BASE_URL)")
	flag.StringVar(&o.file, "file", "", "local pdf file")
	flag.StringVar(&o.url, "url", "", "pdf url")
	flag.StringVar(&o.language, "lang", "", "document language (ch, en, ...)")
	flag.BoolVar(&o.disableOCR, "no-ocr", false, "disable ocr")
	flag.BoolVar(&o.disableFormula, "no-formula", false, "disable formula recognition")
	flag.BoolVar(&o.disableTable, "no-table", false, "disable table recognition")
	flag.DurationVar(&o.interval, "interval", 0, "poll interval")
	flag.DurationVar(&o.timeout, "timeout", 0, "maximum time to wait for the task")
	flag.StringVar(&o.output, "output", "", "write markdown to file instead of stdout")

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, o); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o options) error {
	level := slog.LevelWarn

	if otel.EnableDebug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if otel.EnableTelemetry {
		shutdown, err := otel.Setup(ctx, "mineru", version)

		if err != nil {
			return err
		}

		defer shutdown(context.Background())
	}

	if (o.file == "") == (o.url == "") {
		return errors.New("exactly one of -file or -url is required")
	}

	cfg, err := config.Parse(o.config)

	if err != nil {
		return err
	}

	defer cfg.Close()

	c, err := cfg.MinerU("")

	if err != nil {
		return err
	}

	if !c.Available() {
		return mineru.ErrNotConfigured
	}

	req := mineru.Request{
		URL: o.url,

		DisableOCR:     o.disableOCR,
		DisableFormula: o.disableFormula,
		DisableTable:   o.disableTable,

		Language: o.language,
	}

	if o.file != "" {
		file, err := mineru.ReadFile(o.file)

		if err != nil {
			return err
		}

		req.File = file
	}

	id, err := c.Submit(ctx, req)

	if err != nil {
		return err
	}

	task, err := c.Wait(ctx, id, &mineru.WaitOptions{
		PollInterval: o.interval,
		MaxWait:      o.timeout,
	})

	if err != nil {
		return err
	}

	content := c.Fetch(ctx, task)

	if content == "" {
		fmt.Fprintln(os.Stderr, "warning: task finished without retrievable content")
	}

	fmt.Fprintf(os.Stderr, "task %s: %d pages, processing %s, waited %s\n", id, task.Pages, task.ProcessingTime, task.Elapsed.Round(time.Second))

	if o.output != "" {
		return os.WriteFile(o.output, []byte(content), 0o644)
	}

	_, err = os.Stdout.WriteString(content)
	return err
}
