package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/dpup/mapruler/internal/config"
	"github.com/dpup/mapruler/internal/lib/export"
	"github.com/dpup/mapruler/internal/lib/script"
	"github.com/dpup/mapruler/internal/logging"
	"github.com/dpup/mapruler/internal/services"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	scriptPath := flag.String("script", "", "Path to YAML event script (required)")
	format := flag.String("format", "", "Export format: kml, geojson or polyline (defaults to config)")
	out := flag.String("out", "", "Export destination (defaults to stdout)")
	flag.Parse()

	if *scriptPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: ruler --script events.yaml [--config ruler.yaml] [--format kml] [--out path.kml]")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	err = run(cfg, logger, *scriptPath, *format, *out)
	if err != nil {
		logger.Error("Replay failed", zap.Error(err))
	}
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger, scriptPath, formatName, out string) error {
	if formatName == "" {
		formatName = cfg.Export.Format
	}
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}

	f, err := os.Open(scriptPath)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	s, err := script.Decode(f)
	if err != nil {
		return err
	}
	events, err := s.Events()
	if err != nil {
		return err
	}

	svc, err := services.NewReplayService(cfg, logger)
	if err != nil {
		return err
	}
	report := svc.Run(events)
	printReport(os.Stderr, report)

	if report.Path.Empty() {
		logger.Warn("Nothing measured, skipping export")
		return nil
	}

	name := cfg.Export.Name
	if s.Name != "" {
		name = s.Name
	}

	w := io.Writer(os.Stdout)
	if out != "" {
		file, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", out, err)
		}
		defer file.Close()
		w = file
	}

	if err := export.Write(w, format, report.Path, name); err != nil {
		return err
	}
	logger.Info("Path exported", zap.String("format", string(format)), zap.String("out", out))
	return nil
}

func printReport(w io.Writer, report services.Report) {
	fmt.Fprintf(w, "Replayed %d events (%d commands), session %s\n", report.Events, report.Commands, report.State)
	fmt.Fprintf(w, "Surface: %d markers, %d lines, %d tooltips\n",
		report.Stats.Markers, report.Stats.Lines, report.Stats.Tooltips)

	path := report.Path
	fmt.Fprintf(w, "Path: %d points (closed: %t)\n", len(path.Points), report.Closed)
	for i, u := range path.LengthUnits {
		if i < len(path.Totals) {
			fmt.Fprintf(w, "  Total: %.*f %s\n", u.Decimals, path.Totals[i], u.Display)
		}
	}
	for i, seg := range path.Segments {
		fmt.Fprintf(w, "  Segment %d bearing: %.*f %s\n", i+1, path.AngleUnit.Decimals, seg.Bearing, path.AngleUnit.Display)
	}
}
