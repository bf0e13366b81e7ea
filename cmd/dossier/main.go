package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/gofrs/flock"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/dossier/pkg/aggregator"
	"github.com/umputun/dossier/pkg/config"
	"github.com/umputun/dossier/pkg/content"
	"github.com/umputun/dossier/pkg/delivery"
	"github.com/umputun/dossier/pkg/feed"
	"github.com/umputun/dossier/pkg/llm"
	"github.com/umputun/dossier/pkg/pipeline"
	"github.com/umputun/dossier/pkg/repository"
	"github.com/umputun/dossier/pkg/scheduler"
	"github.com/umputun/dossier/pkg/service"
	"github.com/umputun/dossier/pkg/trigger"
	"github.com/umputun/dossier/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"dossier.yml" description:"configuration file"`
	Once   bool   `long:"once" description:"evaluate triggers once, wait for started dossiers and exit"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	SetupLog(opts.Debug)
	lgr.Printf("[INFO] starting dossier version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	lgr.Print("[INFO] shutdown complete")
}

func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	SetupLog(opts.Debug, cfg.LLM.APIKey, cfg.SMTP.Password)

	lock := flock.New(cfg.Schedule.LockFile)
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock %s: %w", cfg.Schedule.LockFile, err)
	}
	if !locked {
		return fmt.Errorf("another instance is running, lock %s is held", cfg.Schedule.LockFile)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			lgr.Printf("[WARN] failed to release lock %s: %v", cfg.Schedule.LockFile, err)
		}
	}()

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	st := service.NewStore(repos)
	if err := st.SyncConfig(ctx, cfg); err != nil {
		return fmt.Errorf("failed to sync config: %w", err)
	}

	defaultZone := trigger.ResolveLocation(cfg.Schedule.DefaultTimezone, time.UTC)

	var extractor aggregator.Extractor
	if cfg.Extraction.Enabled {
		extractor = content.NewHTTPExtractor(cfg.Extraction.Timeout, cfg.Extraction.UserAgent, cfg.Extraction.MinTextLength)
	}
	agg := aggregator.New(feed.NewParser(cfg.Feeds.Timeout, cfg.Feeds.UserAgent), extractor, cfg.Feeds.MaxConcurrent)

	pipe := pipeline.New(llm.NewClient(cfg.LLM), repos.Style, pipeline.Config{
		SelectionThreshold: cfg.Pipeline.SelectionThreshold,
		TargetCount:        cfg.Pipeline.TargetCount,
		ExtractConcurrency: cfg.Pipeline.ExtractConcurrency,
		DefaultLanguage:    cfg.Pipeline.DefaultLanguage,
		UnrestrictedStyle:  cfg.LLM.Unrestricted.Style,
		SummarizeTimeout:   cfg.Schedule.SummarizeTimeout,
	})

	mailer := delivery.NewMailer(delivery.SMTPParams{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		TLS:      cfg.SMTP.TLS,
		StartTLS: cfg.SMTP.StartTLS,
		Timeout:  cfg.SMTP.Timeout,
	}, defaultZone)

	sched := scheduler.NewScheduler(scheduler.Params{
		Store:        st,
		Trigger:      trigger.NewEvaluator(repos.Delivery, defaultZone),
		Runner:       scheduler.NewRunner(agg, pipe, mailer, st, defaultZone),
		TickInterval: cfg.Schedule.TickInterval,
		MaxWorkers:   cfg.Schedule.MaxWorkers,
		UnitTimeout:  cfg.Schedule.PipelineTimeout,
	})

	if opts.Once {
		sched.Tick(ctx)
		if err := sched.Wait(ctx); err != nil {
			return fmt.Errorf("interrupted while waiting for dossiers: %w", err)
		}
		return nil
	}

	sched.Start(ctx)
	srv := server.New(cfg, st, sched, pipe, revision, opts.Debug)
	srvErr := srv.Run(ctx)
	sched.Stop()

	waitCtx, cancel := context.WithTimeout(context.Background(), cfg.Schedule.PipelineTimeout)
	defer cancel()
	if err := sched.Wait(waitCtx); err != nil {
		lgr.Printf("[WARN] %d dossiers still in progress at shutdown", sched.InFlight())
	}
	return srvErr
}

// SetupLog configures lgr and the standard logger, secrets are masked in the output
func SetupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))

	var secrets []string
	for _, s := range secs {
		if s != "" {
			secrets = append(secrets, s)
		}
	}
	if len(secrets) > 0 {
		logOpts = append(logOpts, lgr.Secret(secrets...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
