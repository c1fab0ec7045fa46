package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/lawliet8886/RPA/internal/registry"
	"github.com/lawliet8886/RPA/internal/xlsx"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	filePath := flag.String("file", "", "price table workbook (.xlsx, required)")
	snapshotPath := flag.String("snapshot", "", "optional registry snapshot JSON to merge the rules into (rewritten in place)")
	flag.Parse()

	if *filePath == "" {
		logger.Error("missing -file flag")
		os.Exit(2)
	}

	data, err := os.ReadFile(*filePath)
	if err != nil {
		logger.Error("failed to read workbook", "path", *filePath, "error", err)
		os.Exit(1)
	}

	rules, err := xlsx.NewImporter(logger).Import(data)
	if err != nil {
		logger.Error("price table import failed", "path", *filePath, "error", err)
		os.Exit(1)
	}

	fmt.Printf("%-40s %-6s %5s %12s\n", "FUNÇÃO", "TURNO", "HORAS", "VALOR")
	for _, r := range rules {
		fmt.Printf("%-40s %-6s %5d %12s\n", r.Funcao, r.Period, r.Hours, r.Value.StringFixed(2))
	}

	if *snapshotPath == "" {
		return
	}

	snapData, err := os.ReadFile(*snapshotPath)
	if err != nil {
		logger.Error("failed to read snapshot", "path", *snapshotPath, "error", err)
		os.Exit(1)
	}
	var snap registry.Snapshot
	if err := json.Unmarshal(snapData, &snap); err != nil {
		logger.Error("failed to decode snapshot", "path", *snapshotPath, "error", err)
		os.Exit(1)
	}

	reg := registry.NewRegistry(logger)
	reg.Restore(snap)
	inserted, updated := reg.UpsertPriceRules(rules)

	out, err := json.MarshalIndent(reg.Snapshot(), "", "  ")
	if err != nil {
		logger.Error("failed to encode snapshot", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*snapshotPath, out, 0o644); err != nil {
		logger.Error("failed to write snapshot", "path", *snapshotPath, "error", err)
		os.Exit(1)
	}
	logger.Info("price rules merged", "inserted", inserted, "updated", updated, "path", *snapshotPath)
}
