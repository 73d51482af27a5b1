package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"linkpulse/internal/config"
	"linkpulse/internal/exporter"
	"linkpulse/internal/infrastructure"
	"linkpulse/internal/parsing"
	"linkpulse/internal/store"
	"linkpulse/internal/validation"
)

var analyticsExtensions = map[string]bool{
	".xls":  true,
	".xlsx": true,
	".csv":  true,
	".ods":  true,
}

func main() {
	inDir := flag.String("in", "", "input directory with analytics exports (defaults to the current directory)")
	outDir := flag.String("out", "", "output directory for CSV exports (defaults to the configured export dir)")
	name := flag.String("name", "", "dataset name (defaults to a timestamped name)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	if *inDir == "" {
		*inDir = "."
	}
	if *outDir == "" {
		*outDir = cfg.Paths.ExportDir
	}
	if *name == "" {
		*name = "Ingest " + time.Now().UTC().Format("2006-01-02 15:04:05")
	}

	logger.Info("Starting batch ingestion",
		slog.String("input_dir", *inDir),
		slog.String("output_dir", *outDir),
		slog.String("dataset", *name))

	validator := validation.NewUploadValidator(logger, cfg.Ingest.MaxFileSizeBytes())

	entries, err := os.ReadDir(*inDir)
	if err != nil {
		logger.Error("Failed to read input directory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !analyticsExtensions[ext] || strings.HasPrefix(entry.Name(), "~$") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	fmt.Printf("Found %d analytics files\n", len(names))
	if len(names) == 0 {
		logger.Warn("No analytics files found in input directory",
			slog.String("input_dir", *inDir))
		os.Exit(0)
	}

	var uploads []parsing.UploadFile
	for _, fileName := range names {
		path := filepath.Join(*inDir, fileName)
		if err := validator.ValidateFile(path); err != nil {
			logger.Warn("Skipping file", slog.String("file", fileName), slog.String("error", err.Error()))
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("Failed to read file", slog.String("file", fileName), slog.String("error", err.Error()))
			continue
		}
		uploads = append(uploads, parsing.UploadFile{Name: fileName, Data: data})
	}

	parser := parsing.NewParser(logger, parsing.Limits{
		MaxFileSize:  cfg.Ingest.MaxFileSizeBytes(),
		MaxSheetRows: cfg.Ingest.MaxSheetRows,
	})
	result := parser.ParseFiles(uploads)

	for _, failure := range result.Failures {
		logger.Warn("File failed to parse",
			slog.String("file", failure.FileName),
			slog.String("reason", failure.Reason))
	}

	if result.IsEmpty() {
		logger.Error("No rows extracted from any file")
		os.Exit(1)
	}

	datasets := store.NewDatasetStore(cfg.Paths.DataDir, logger)
	dataset, err := datasets.SaveDataset(*name, result)
	if err != nil {
		logger.Error("Failed to save dataset", slog.String("error", err.Error()))
		os.Exit(1)
	}

	writer := exporter.NewCSVWriter(*outDir, logger)
	exports := []struct {
		name string
		fn   func() error
	}{
		{"posts.csv", func() error { return writer.WritePosts("posts.csv", result.Posts) }},
		{"daily.csv", func() error { return writer.WriteDaily("daily.csv", result.Daily) }},
		{"followers_daily.csv", func() error { return writer.WriteFollowersDaily("followers_daily.csv", result.FollowersDaily) }},
		{"followers_demographics.csv", func() error { return writer.WriteFollowersDemographics("followers_demographics.csv", result.FollowersDemographics) }},
	}
	for _, export := range exports {
		if err := export.fn(); err != nil {
			logger.Error("Failed to write export",
				slog.String("file", export.name),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("Batch ingestion complete",
		slog.String("dataset_id", dataset.ID),
		slog.Int("posts", len(result.Posts)),
		slog.Int("daily", len(result.Daily)),
		slog.Int("followers_daily", len(result.FollowersDaily)),
		slog.Int("followers_demographics", len(result.FollowersDemographics)),
		slog.Int("failures", len(result.Failures)))

	fmt.Printf("Saved dataset %s (%d posts, %d daily rows)\n",
		dataset.ID, len(result.Posts), len(result.Daily))
	_ = infrastructure.CloseLogFile()
}
