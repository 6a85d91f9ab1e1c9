package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"zonewarden/internal/config"
	"zonewarden/internal/corpus"
	zwhttp "zonewarden/internal/http"
	"zonewarden/internal/types"
	"zonewarden/internal/zone"
)

func main() {
	// Parse command
	command := "check"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "check", "watch", "serve", "export":
		// Continue below once configuration is loaded
	case "version":
		fmt.Println("zonewarden v1.0.0")
		return
	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Available commands: check, watch, serve, export, version")
		os.Exit(1)
	}

	// Load .env file if exists
	_ = godotenv.Load()

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Setup logger. Logs go to stderr so the zone text and validation
	// reports on stdout stay machine-readable.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel(),
	}))
	slog.SetDefault(logger)

	runner := corpus.NewRunner(cfg.Registry.Dir, 0)

	switch command {
	case "check":
		os.Exit(runCheck(runner))
	case "watch":
		os.Exit(runWatch(cfg, runner))
	case "serve":
		runServe(cfg, runner)
	case "export":
		os.Exit(runExport(cfg, runner))
	}
}

// runCheck validates the whole corpus once and prints every problem found.
func runCheck(runner *corpus.Runner) int {
	report, err := runner.Run(context.Background())
	if err != nil {
		slog.Error("Corpus run failed", "error", err)
		return 1
	}

	printReport(report)
	if !report.Clean() {
		return 1
	}
	return 0
}

// runWatch re-validates the corpus on every change until interrupted.
func runWatch(cfg *config.Config, runner *corpus.Runner) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
		slog.Info("Shutting down watcher...")
		cancel()
	}()

	slog.Info("Watching corpus directory", "dir", cfg.Registry.Dir, "debounce", cfg.Debounce())

	// Reports arrive one at a time, so tracking the previous run is safe.
	var prev *corpus.Report
	err := runner.Watch(ctx, cfg.Debounce(), func(report *corpus.Report) {
		printReport(report)
		if prev != nil {
			logChanges(report.Changes(prev))
		}
		prev = report
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Watcher failed", "error", err)
		return 1
	}
	return 0
}

// logChanges reports what the latest edit changed compared to the previous
// run.
func logChanges(changes *corpus.ReportChanges) {
	if changes.Empty() {
		return
	}
	for _, v := range changes.NewViolations {
		slog.Warn("New violation", "document", v.Document, "message", v.Message)
	}
	for _, v := range changes.ResolvedViolations {
		slog.Info("Violation resolved", "document", v.Document, "message", v.Message)
	}
	for _, f := range changes.NewFailures {
		slog.Warn("Document no longer parses", "document", f.Document, "error", f.Error)
	}
	for _, f := range changes.ChangedFailures {
		slog.Warn("Parse failure changed", "document", f.Document, "error", f.Error)
	}
	for _, f := range changes.ResolvedFailures {
		slog.Info("Document parses again", "document", f.Document)
	}
}

// runServe starts the validation API server and blocks until interrupted.
func runServe(cfg *config.Config, runner *corpus.Runner) {
	srv := zwhttp.NewServer(zwhttp.ServerConfig{
		Listen:    cfg.HTTP.Listen,
		AuthToken: cfg.AuthToken(),
	}, runner)

	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("Validation API server failed", "error", err)
		}
	}()
	defer srv.Shutdown()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	<-sigCh
	slog.Info("Shutting down server...")
}

// runExport validates the corpus and writes a zone file for the conformant
// documents to stdout. Non-conformant documents are excluded, not fatal.
func runExport(cfg *config.Config, runner *corpus.Runner) int {
	report, err := runner.Run(context.Background())
	if err != nil {
		slog.Error("Corpus run failed", "error", err)
		return 1
	}

	bad := make(map[string]bool)
	for _, f := range report.Failures {
		bad[f.Document] = true
	}
	for _, v := range report.Violations {
		bad[v.Document] = true
	}

	names, err := runner.Loader().List()
	if err != nil {
		slog.Error("Corpus listing failed", "error", err)
		return 1
	}

	docs := make([]*types.Document, 0, len(names))
	for _, name := range names {
		if bad[name] {
			continue
		}
		doc, err := runner.Cache().Get(name)
		if err != nil {
			continue
		}
		docs = append(docs, doc)
	}

	builder := zone.NewBuilder(cfg.Registry.Domain, cfg.Zone.TTL)
	if err := builder.WriteZone(os.Stdout, docs); err != nil {
		slog.Error("Zone export failed", "error", err)
		return 1
	}

	if !report.Clean() {
		slog.Warn("Excluded non-conformant documents from zone",
			"failures", len(report.Failures),
			"violations", len(report.Violations))
	}
	return 0
}

// printReport writes a human-readable summary of one corpus run to stdout.
func printReport(report *corpus.Report) {
	for _, f := range report.Failures {
		fmt.Printf("%s: %s\n", f.Document, f.Error)
	}
	for _, v := range report.Violations {
		fmt.Printf("%s: %s\n", v.Document, v.Message)
	}
	fmt.Printf("%d documents checked, %d failures, %d violations\n",
		report.Documents, len(report.Failures), len(report.Violations))
}
