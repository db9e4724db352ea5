// Package config loads per-project keelson settings from an optional
// keelson.yaml next to the design file, with the documented defaults.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/chazu/keelson/pkg/mesh"
)

// Load installs defaults and reads keelson.yaml from dir if present. A
// missing config file is not an error; a malformed one is.
func Load(dir string) error {
	viper.SetDefault("samplesPerRing", 10)
	viper.SetDefault("mirror", true)
	viper.SetDefault("invertZ", true)
	viper.SetDefault("lateralShiftMm", 1000.0)
	viper.SetDefault("shrinkMm", 0.0)
	viper.SetDefault("toleranceMm", 5.0)
	viper.SetDefault("stepping", "smart")

	viper.SetDefault("transom", false)
	viper.SetDefault("wallThicknessMm", 0.0)
	viper.SetDefault("solidBowMm", 0.0)
	viper.SetDefault("solidSternMm", 0.0)

	viper.SetDefault("output.dir", ".")
	viper.SetDefault("output.stl", true)
	viper.SetDefault("output.script", true)

	viper.SetDefault("watch.intervalMs", 1000)

	viper.SetConfigName("keelson")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(dir)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// BuildOptions assembles mesh build options from the loaded configuration.
func BuildOptions() mesh.BuildOptions {
	opts := mesh.DefaultBuildOptions()
	opts.Stitch.SamplesPerRing = viper.GetInt("samplesPerRing")
	opts.Stitch.Mirror = viper.GetBool("mirror")
	opts.Stitch.InvertZ = viper.GetBool("invertZ")
	opts.Stitch.LateralShiftMm = viper.GetFloat64("lateralShiftMm")
	opts.ToleranceMm = viper.GetFloat64("toleranceMm")
	opts.Transom = viper.GetBool("transom")
	opts.WallThicknessMm = viper.GetFloat64("wallThicknessMm")
	opts.SolidBowMm = viper.GetFloat64("solidBowMm")
	opts.SolidSternMm = viper.GetFloat64("solidSternMm")

	// "smart" (the default) is stepping 0; anything else is a fixed step.
	if s := viper.GetString("stepping"); s != "smart" {
		opts.SteppingMm = viper.GetFloat64("stepping")
	}
	return opts
}
