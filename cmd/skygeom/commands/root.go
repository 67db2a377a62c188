package commands

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/golang/geo/s1"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"

	"github.com/owlpinetech/skymap"
)

type geometryBuilder func(cfg Config) (skymap.Shape, skymap.WCS, error)

var layouts = map[string]geometryBuilder{
	"fullsky": func(cfg Config) (skymap.Shape, skymap.WCS, error) {
		return skymap.FullSkyGeometry(cfg.Res)
	},
	"band": func(cfg Config) (skymap.Shape, skymap.WCS, error) {
		return skymap.BandGeometry(cfg.Res, cfg.DecCut)
	},
}

func Execute() error {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return newRootCmd(cfg).Execute()
}

func newRootCmd(cfg Config) *cobra.Command {
	root := &cobra.Command{
		Use:          "skygeom",
		Short:        "Inspect CAR sky-map geometries and pixel coordinates",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := cfg.level()
			if err != nil {
				return err
			}
			skymap.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	root.PersistentFlags().Float64Var(&cfg.Res, "res", cfg.Res, "pixel size in degrees")
	root.PersistentFlags().Float64Var(&cfg.DecCut, "dec-cut", cfg.DecCut, "declination cutoff in degrees for the band layout")
	root.PersistentFlags().StringVar(&cfg.Layout, "layout", cfg.Layout, "map layout (band, fullsky)")
	root.PersistentFlags().IntVar(&cfg.Workers, "workers", cfg.Workers, "posmap workers (0 uses every CPU)")
	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")

	root.AddCommand(geometryCmd(&cfg), pix2skyCmd(&cfg), sky2pixCmd(&cfg), posmapCmd(&cfg), healpixCmd())
	return root
}

func buildGeometry(cfg *Config) (skymap.Shape, skymap.WCS, error) {
	build, ok := layouts[cfg.Layout]
	if !ok {
		names := maps.Keys(layouts)
		slices.Sort(names)
		return skymap.Shape{}, skymap.WCS{}, fmt.Errorf("unknown layout %q, expected one of %s", cfg.Layout, strings.Join(names, ", "))
	}
	shape, wcs, err := build(*cfg)
	if err != nil {
		return skymap.Shape{}, skymap.WCS{}, fmt.Errorf("build %s geometry: %w", cfg.Layout, err)
	}
	return shape, wcs, nil
}

func parseFloats(args []string) ([]float64, error) {
	vals := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		vals[i] = v
	}
	return vals, nil
}

func degrees(rad float64) float64 {
	return s1.Angle(rad).Degrees()
}

func radians(deg float64) float64 {
	return (s1.Angle(deg) * s1.Degree).Radians()
}
