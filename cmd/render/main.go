package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"glib-shading/internal/batch"
	"glib-shading/internal/config"
	"glib-shading/internal/logging"
	"glib-shading/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to a scene file (.json, .yaml or .toml)")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	textureDir := flag.String("textures", "", "Texture directory (default: from config)")
	size := flag.Int("size", 0, "Output image size in pixels (default: 256)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	quality := flag.Int("quality", 0, "JPEG quality 1-100 (default: 90)")
	format := flag.String("format", "", "Output format: webp, png or jpg (default: webp)")
	verbose := flag.Bool("v", false, "Verbose logging")

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	log := logging.Logger()

	if *configFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -config is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		OutputDir:  *outputDir,
		TextureDir: *textureDir,
		Size:       *size,
		Quality:    *quality,
		Workers:    *workers,
		Format:     *format,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config:\n%v\n", err)
		os.Exit(1)
	}

	// Build texture index
	texIndex := texture.BuildIndex(cfg.TextureDir)
	texCache := texture.NewCache(texIndex)
	log.Info("textures indexed", "dir", cfg.TextureDir, "count", texIndex.Len())
	log.Info("starting", "scenes", len(cfg.Scenes), "workers", cfg.Workers, "size", cfg.Size, "format", cfg.Format, "output", cfg.OutputDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	batchCfg := batch.Config{
		OutputDir:   cfg.OutputDir,
		Textures:    texCache,
		Size:        cfg.Size,
		Supersample: cfg.Supersample,
		Quality:     cfg.Quality,
		Workers:     cfg.Workers,
		Format:      cfg.Format,
	}
	results := batch.Run(ctx, batchCfg, cfg.Scenes)

	manifest := batch.NewManifest(batchCfg, start, results)
	log.Info("done", "rendered", manifest.Rendered, "failed", manifest.Failed, "elapsed", time.Since(start).Round(time.Millisecond))

	// Write manifest
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Warn("manifest dir", "err", err)
	}
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, manifest); err != nil {
		log.Warn("manifest write failed", "err", err)
	} else {
		log.Info("manifest written", "path", manifestPath, "run", manifest.RunID)
	}

	if manifest.Failed > 0 {
		os.Exit(1)
	}
}
