package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/lawliet8886/RPA/internal/common"
	"github.com/lawliet8886/RPA/internal/export"
	"github.com/lawliet8886/RPA/internal/pdf"
	"github.com/lawliet8886/RPA/internal/registry"
)

// fileBlobs resolves attachment storage references as local file paths.
type fileBlobs struct{}

func (fileBlobs) Read(_ context.Context, ref string) ([]byte, error) {
	return os.ReadFile(strings.TrimPrefix(ref, "file://"))
}

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

	cfg := common.LoadConfig()

	snapshotPath := flag.String("snapshot", "", "path to a registry snapshot JSON (required)")
	outPath := flag.String("out", cfg.Export.OutputPath, "bundle zip output path")
	flag.Parse()

	if *snapshotPath == "" {
		logger.Error("missing -snapshot flag")
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
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

	assets, err := loadAssets(cfg)
	if err != nil {
		logger.Error("failed to load template assets", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	svc := export.NewService(assets, fileBlobs{}, logger)
	bundle, failures, err := svc.Export(ctx, snap, time.Now())
	if err != nil {
		logger.Error("bundle export failed", "error", err)
		os.Exit(1)
	}
	for _, f := range failures {
		logger.Warn("bundle is missing content", "nome", f.Nome, "period", f.Period, "error", f.Err)
	}

	if err := os.WriteFile(*outPath, bundle, 0o644); err != nil {
		logger.Error("failed to write bundle", "path", *outPath, "error", err)
		os.Exit(1)
	}
	logger.Info("bundle written", "path", *outPath, "size_bytes", len(bundle), "skipped", len(failures))
}

func loadAssets(cfg *common.Config) (export.Assets, error) {
	template, err := os.ReadFile(cfg.Export.TemplatePath)
	if err != nil {
		return export.Assets{}, common.WrapError(err, "read template")
	}

	pages, err := loadPageImages(cfg.Export.PageImageDir)
	if err != nil {
		return export.Assets{}, err
	}

	var layout []pdf.Field
	if cfg.Export.LayoutPath != "" {
		raw, err := os.ReadFile(cfg.Export.LayoutPath)
		if err != nil {
			return export.Assets{}, common.WrapError(err, "read layout")
		}
		layout, err = pdf.LoadLayout(raw)
		if err != nil {
			return export.Assets{}, err
		}
	}

	return export.Assets{DocxTemplate: template, PageImages: pages, Layout: layout}, nil
}

// loadPageImages reads the template page images in name order; the file name
// sequence defines the page sequence.
func loadPageImages(dir string) ([][]byte, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, common.WrapError(err, "read page image dir")
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".jpg", ".jpeg", ".png":
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, common.NewAppError("NO_PAGE_IMAGES", "no page images in "+dir, common.ErrInvalidInput)
	}
	sort.Strings(names)

	pages := make([][]byte, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, common.WrapError(err, "read page image "+name)
		}
		pages = append(pages, data)
	}
	return pages, nil
}
