package commands

import (
	"fmt"

	"github.com/owlpinetech/healpix"
	"github.com/spf13/cobra"

	"github.com/owlpinetech/skymap"
)

func geometryCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "geometry",
		Short: "Print the shape and projection of a layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			shape, wcs, err := buildGeometry(cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "layout %s\n", cfg.Layout)
			fmt.Fprintf(out, "shape  %d x %d\n", shape.Nx, shape.Ny)
			fmt.Fprintf(out, "crpix  %g %g\n", wcs.Crpix1(), wcs.Crpix2())
			fmt.Fprintf(out, "cdelt  %g %g\n", wcs.Cdelt1(), wcs.Cdelt2())
			fmt.Fprintf(out, "crval  %g %g\n", wcs.Crval1(), wcs.Crval2())
			return nil
		},
	}
	return cmd
}

func pix2skyCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pix2sky X Y",
		Short: "Convert a 0-based pixel of the layout to longitude and latitude in degrees",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			vals, err := parseFloats(args)
			if err != nil {
				return err
			}
			_, wcs, err := buildGeometry(cfg)
			if err != nil {
				return err
			}
			lon, lat, err := wcs.Pix2Sky(vals[0], vals[1])
			if err != nil {
				return fmt.Errorf("pix2sky: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.6f %.6f\n", degrees(lon), degrees(lat))
			return nil
		},
	}
	return cmd
}

func sky2pixCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sky2pix LON LAT",
		Short: "Convert longitude and latitude in degrees to a 0-based pixel of the layout",
		Long:  "Convert longitude and latitude in degrees to a 0-based pixel of the layout.\nPass negative values after --, e.g. skygeom sky2pix -- 10 -30",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			vals, err := parseFloats(args)
			if err != nil {
				return err
			}
			_, wcs, err := buildGeometry(cfg)
			if err != nil {
				return err
			}
			x, y, err := wcs.Sky2Pix(radians(vals[0]), radians(vals[1]))
			if err != nil {
				return fmt.Errorf("sky2pix: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.6f %.6f\n", x, y)
			return nil
		},
	}
	return cmd
}

func posmapCmd(cfg *Config) *cobra.Command {
	var every int
	cmd := &cobra.Command{
		Use:   "posmap",
		Short: "Print the sky position in degrees of every n-th pixel of the layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if every < 1 {
				return fmt.Errorf("--every must be at least 1, got %d", every)
			}
			shape, wcs, err := buildGeometry(cfg)
			if err != nil {
				return err
			}
			var opts []skymap.PosmapOption
			if cfg.Workers > 0 {
				opts = append(opts, skymap.WithWorkers(cfg.Workers))
			}
			lon, lat, err := skymap.Zeros(shape, wcs).Posmap(opts...)
			if err != nil {
				return fmt.Errorf("posmap: %w", err)
			}
			out := cmd.OutOrStdout()
			for i := 0; i < shape.Nx; i += every {
				for j := 0; j < shape.Ny; j += every {
					fmt.Fprintf(out, "%d %d %.6f %.6f\n", i, j, degrees(lon.At(i, j)), degrees(lat.At(i, j)))
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&every, "every", 10, "print one pixel in this many along each axis")
	return cmd
}

func healpixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "healpix-res ORDER",
		Short: "Print the CAR resolution and full-sky shape matching a HEALPix order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vals, err := parseFloats(args)
			if err != nil {
				return err
			}
			if vals[0] < 0 || vals[0] != float64(int(vals[0])) {
				return fmt.Errorf("order must be a non-negative integer, got %s", args[0])
			}
			res := skymap.HealpixResolution(healpix.HealpixOrder(int(vals[0])))
			shape, _, err := skymap.FullSkyGeometry(res)
			if err != nil {
				return fmt.Errorf("build fullsky geometry: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "res    %.6f\nshape  %d x %d\n", res, shape.Nx, shape.Ny)
			return nil
		},
	}
	return cmd
}
