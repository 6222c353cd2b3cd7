// Package batch renders the scenes of a job with a worker pool.
package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"glib-shading/internal/config"
	"glib-shading/internal/logging"
	"glib-shading/internal/output"
	"glib-shading/internal/postprocess"
	"glib-shading/internal/raster"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	Textures    Textures
	Size        int
	Supersample int
	Quality     int
	Workers     int
	Format      string
}

// Result holds the outcome of rendering one scene.
type Result struct {
	Name     string
	Image    string // path relative to OutputDir
	Success  bool
	Error    string
	Duration time.Duration
}

// Run renders all scenes using a worker pool. Cancelling ctx stops handing
// out new scenes; scenes that never started report the context error.
// Results are in scene order.
func Run(ctx context.Context, cfg Config, scenes []config.Scene) []Result {
	total := len(scenes)
	results := make([]Result, total)
	var processed atomic.Int64
	log := logging.Logger()

	workers := max(cfg.Workers, 1)
	// Spare cores go to row bands inside each render.
	bands := 1
	if total < workers {
		bands = workers / max(total, 1)
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					log.Info("progress", "done", p, "total", total, "rate", fmt.Sprintf("%.1f/s", float64(p)/elapsed))
				}
			}
		}
	}()

	// Worker pool
	jobs := make(chan int, workers*2)
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = renderScene(cfg, scenes[idx], bands)
				if !results[idx].Success {
					log.Warn("render failed", "scene", results[idx].Name, "err", results[idx].Error)
				}
				processed.Add(1)
			}
		}()
	}

	// Send work
	sent := 0
send:
	for ; sent < total; sent++ {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break send
		case jobs <- sent:
		}
	}
	close(jobs)

	wg.Wait()
	close(done)

	for i := sent; i < total; i++ {
		results[i] = Result{Name: scenes[i].Name, Error: ctx.Err().Error()}
	}

	log.Info("batch finished", "scenes", total, "elapsed", time.Since(start).Round(time.Millisecond))
	return results
}

// ImagePath is where a scene's image goes, relative to the output dir.
func ImagePath(name, format string) string {
	return name + "." + format
}

func renderScene(cfg Config, s config.Scene, bands int) Result {
	start := time.Now()
	res := Result{Name: s.Name, Image: ImagePath(s.Name, cfg.Format)}
	fail := func(err error) Result {
		res.Error = err.Error()
		res.Duration = time.Since(start)
		return res
	}

	scene, err := BuildScene(s, cfg.Textures)
	if err != nil {
		return fail(err)
	}

	ss := max(cfg.Supersample, 1)
	fb := raster.Render(scene, cfg.Size*ss, cfg.Size*ss, bands)
	img := fb.Image()

	// Post-processing: supersample downsample
	if ss > 1 {
		img = postprocess.Downsample(img, cfg.Size, cfg.Size)
	}

	if err := output.Write(filepath.Join(cfg.OutputDir, res.Image), img, cfg.Quality); err != nil {
		return fail(err)
	}

	res.Success = true
	res.Duration = time.Since(start)
	logging.Logger().Debug("rendered", "scene", s.Name, "elapsed", res.Duration)
	return res
}
