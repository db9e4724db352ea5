// keelson converts a parametric hull design file into manufacturing
// geometry: an ASCII STL mesh and a parametric-solid script.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/chazu/keelson/pkg/config"
	"github.com/chazu/keelson/pkg/export"
	"github.com/chazu/keelson/pkg/hull"
	"github.com/chazu/keelson/pkg/mesh"
	"github.com/chazu/keelson/pkg/watch"
)

func main() {
	design := pflag.StringP("design", "d", "", "hull design file (YAML)")
	outDir := pflag.StringP("out", "o", "", "output directory (default: config, then design file's directory)")
	watchMode := pflag.BoolP("watch", "w", false, "rebuild whenever the design file changes")
	verbose := pflag.BoolP("verbose", "v", false, "debug logging")

	// Flag overrides for the most common config knobs.
	pflag.Float64("wall", 0, "wall thickness in mm (adds an inner surface)")
	pflag.Bool("transom", false, "close the stern with a transom fan")
	pflag.String("stepping", "", `longitudinal step in mm, or "smart"`)
	pflag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if *design == "" {
		pflag.Usage()
		os.Exit(2)
	}

	designDir := filepath.Dir(*design)
	if err := config.Load(designDir); err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	bindFlagOverrides()

	dir := *outDir
	if dir == "" {
		dir = viper.GetString("output.dir")
		if dir == "." {
			dir = designDir
		}
	}

	run := func() error { return build(log, *design, dir) }
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("build failed")
	}

	if *watchMode {
		w := &watch.Watcher{
			Path:     *design,
			Interval: time.Duration(viper.GetInt("watch.intervalMs")) * time.Millisecond,
			Log:      log,
		}
		if err := w.Run(context.Background(), run); err != nil && !errors.Is(err, context.Canceled) {
			log.Fatal().Err(err).Msg("watch loop")
		}
	}
}

// bindFlagOverrides pushes explicitly-set flags over the config values.
func bindFlagOverrides() {
	pflag.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "wall":
			viper.Set("wallThicknessMm", f.Value.String())
		case "transom":
			viper.Set("transom", f.Value.String())
		case "stepping":
			viper.Set("stepping", f.Value.String())
		}
	})
}

// build runs the whole pipeline once: load, mesh, serialize.
func build(log zerolog.Logger, designPath, outDir string) error {
	start := time.Now()

	d, err := hull.Load(designPath)
	if err != nil {
		return fmt.Errorf("load design: %w", err)
	}
	name := d.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(designPath), filepath.Ext(designPath))
	}
	log.Info().Str("hull", name).Float64("loaMm", d.LOA).Msg("design loaded")

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if viper.GetBool("output.stl") {
		opts := config.BuildOptions()
		m, err := mesh.BuildHullMesh(d, opts)
		if err != nil {
			return fmt.Errorf("build mesh: %w", err)
		}
		path := filepath.Join(outDir, name+".stl")
		if err := writeFile(path, func(f *os.File) error {
			return export.WriteSTL(f, name, m)
		}); err != nil {
			return err
		}
		log.Info().Str("path", path).Int("facets", m.TriangleCount()).Msg("mesh written")
	}

	if viper.GetBool("output.script") {
		solidOpts := export.DefaultSolidOptions()
		solidOpts.WallThicknessMm = viper.GetFloat64("wallThicknessMm")
		solidOpts.ToleranceMm = viper.GetFloat64("toleranceMm")
		script, err := export.BuildSolidScript(d, solidOpts)
		if err != nil {
			return fmt.Errorf("build solid script: %w", err)
		}
		path := filepath.Join(outDir, name+".solid")
		if err := writeFile(path, func(f *os.File) error {
			return export.WriteScript(f, script)
		}); err != nil {
			return err
		}
		log.Info().Str("path", path).Int("commands", len(script.Commands)).Msg("solid script written")
	}

	log.Info().Dur("elapsed", time.Since(start)).Msg("build complete")
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
