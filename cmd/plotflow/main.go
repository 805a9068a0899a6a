// Command plotflow renders deterministic flow-field line art to SVG.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/fogleman/gg"

	"github.com/pthm-cable/plotflow/config"
	"github.com/pthm-cable/plotflow/gen"
	"github.com/pthm-cable/plotflow/geom"
	"github.com/pthm-cable/plotflow/svg"
	"github.com/pthm-cable/plotflow/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "out.svg", "Output SVG path")
	pngPath := flag.String("png", "", "Optional raster preview path")
	telemetryDir := flag.String("telemetry-dir", "", "Directory for lines.csv and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = use config, which may pick a random one)")
	strategy := flag.String("strategy", "", "Override strategy: basic|fill|swarm|hatch")
	mode := flag.String("mode", "", "Override field mode: normal|curl|spiral|turbulent|ridged|warped")
	width := flag.Float64("width", 0, "Override canvas width")
	height := flag.Float64("height", 0, "Override canvas height")
	count := flag.Int("lines", 0, "Override line count")
	verbose := flag.Bool("verbose", false, "Log run statistics")

	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// CLI overrides beat both the file and the defaults
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *strategy != "" {
		cfg.Strategy = *strategy
	}
	if *mode != "" {
		cfg.Field.Mode = *mode
	}
	if *width > 0 {
		cfg.Canvas.Width = *width
	}
	if *height > 0 {
		cfg.Canvas.Height = *height
	}
	if *count > 0 {
		cfg.Lines.Count = *count
	}

	result := gen.New(cfg).Run()

	slog.Info("generated",
		"strategy", cfg.Strategy,
		"mode", cfg.Field.Mode,
		"seed", result.Seed,
		"lines", len(result.Lines),
	)

	doc := svg.Render(result.Lines, result.Width, result.Height, svg.Options{
		StrokeColor:       cfg.SVG.StrokeColor,
		StrokeWidth:       cfg.SVG.StrokeWidth,
		IncludeBackground: cfg.SVG.Background,
		BackgroundColor:   cfg.SVG.BackgroundColor,
		Precision:         cfg.SVG.Precision,
		Simplify:          cfg.SVG.Simplify,
		SimplifyEpsilon:   cfg.SVG.SimplifyEpsilon,
	})
	if err := os.WriteFile(*outPath, []byte(doc), 0644); err != nil {
		slog.Error("failed to write svg", "path", *outPath, "error", err)
		os.Exit(1)
	}

	if *pngPath != "" {
		if err := writePNG(*pngPath, result, cfg); err != nil {
			slog.Error("failed to write png", "path", *pngPath, "error", err)
			os.Exit(1)
		}
	}

	om, err := telemetry.NewOutputManager(*telemetryDir)
	if err != nil {
		slog.Error("failed to create telemetry output", "error", err)
		os.Exit(1)
	}
	if err := om.WriteLines(result.Lines); err != nil {
		slog.Error("failed to write telemetry", "error", err)
		os.Exit(1)
	}
	if err := om.WriteConfig(cfg, result.Seed); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	if *verbose {
		stats := telemetry.ComputeRunStats(result.Lines)
		slog.Info("run stats",
			"lines", stats.LineCount,
			"points", stats.PointCount,
			"total_length", stats.TotalLength,
			"mean_length", stats.MeanLength,
			"median_length", stats.MedianLength,
			"p90_length", stats.P90Length,
		)
	}
}

// writePNG renders a plain polyline preview of the result.
func writePNG(path string, result gen.Result, cfg *config.Config) error {
	dc := gg.NewContext(int(result.Width), int(result.Height))

	bg := cfg.SVG.BackgroundColor
	if !cfg.SVG.Background {
		bg = "#ffffff"
	}
	dc.SetHexColor(bg)
	dc.Clear()

	dc.SetHexColor(cfg.SVG.StrokeColor)
	dc.SetLineWidth(cfg.SVG.StrokeWidth)
	dc.SetLineCapRound()
	for _, line := range result.Lines {
		drawPolyline(dc, line)
	}

	return dc.SavePNG(path)
}

func drawPolyline(dc *gg.Context, line geom.Line) {
	if len(line) < 2 {
		return
	}
	dc.MoveTo(line[0].X, line[0].Y)
	for _, p := range line[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.Stroke()
}
