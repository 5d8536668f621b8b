package main

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/jmorland/isogrid/internal/isochrone"
)

func queryCmd() *cli.Command {
	var (
		mass     float64
		age      float64
		feh      float64
		distance float64
		av       float64
		extParam float64
		bands    []string
		asJSON   bool
	)

	return &cli.Command{
		Name:  "query",
		Usage: "Interpolate stellar properties and magnitudes for one star",
		Flags: append(append(gridFlags(), loggingFlags()...),
			&cli.Float64Flag{
				Name:        "mass",
				Aliases:     []string{"m"},
				Usage:       "stellar mass in solar masses",
				Required:    true,
				Destination: &mass,
			},
			&cli.Float64Flag{
				Name:        "age",
				Aliases:     []string{"a"},
				Usage:       "age as log10(years)",
				Required:    true,
				Destination: &age,
			},
			&cli.Float64Flag{
				Name:        "feh",
				Aliases:     []string{"f"},
				Usage:       "metallicity [Fe/H] in dex",
				Required:    true,
				Destination: &feh,
			},
			&cli.Float64Flag{
				Name:        "distance",
				Aliases:     []string{"d"},
				Usage:       "distance in parsecs (10 = absolute magnitudes)",
				Value:       10,
				Destination: &distance,
			},
			&cli.Float64Flag{
				Name:        "av",
				Usage:       "extinction A_V in magnitudes",
				Destination: &av,
			},
			&cli.Float64Flag{
				Name:        "ext-param",
				Usage:       "extinction curve shape parameter (0 = default curve)",
				Destination: &extParam,
			},
			&cli.StringSliceFlag{
				Name:        "band",
				Aliases:     []string{"b"},
				Usage:       "photometric band (repeatable; default: all)",
				Destination: &bands,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "emit JSON instead of text",
				Destination: &asJSON,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := LoadConfig()
			applyCommonConfig(cmd, cfg)
			applyQueryConfig(cmd, cfg, &distance, &av)
			log := newLogger()

			engine, err := loadEngine()
			if err != nil {
				return err
			}
			log.Debug("engine ready",
				"fehs", len(engine.Fehs()), "ages", len(engine.Ages()))

			teff, err := engine.Teff(mass, age, feh)
			if err != nil {
				return err
			}
			logg, _ := engine.LogG(mass, age, feh)
			logl, _ := engine.LogL(mass, age, feh)
			radius, _ := engine.Radius(mass, age, feh)
			zsurf, _ := engine.ZSurf(mass, age, feh)

			opts := isochrone.MagOptions{
				DistancePC: distance,
				AV:         av,
				ExtParam:   extParam,
			}
			if len(bands) == 0 {
				bands = engine.Bands()
			}
			mags := make(map[string]float64, len(bands))
			for _, band := range bands {
				m, err := engine.Mag(band, mass, age, feh, opts)
				if err != nil {
					return err
				}
				mags[band] = m
			}

			if asJSON {
				out := map[string]any{
					"mass":   mass,
					"age":    age,
					"feh":    feh,
					"teff":   jsonNum(teff),
					"logg":   jsonNum(logg),
					"logL":   jsonNum(logl),
					"radius": jsonNum(radius),
					"Z_surf": jsonNum(zsurf),
				}
				jm := make(map[string]any, len(mags))
				for band, m := range mags {
					jm[band] = jsonNum(m)
				}
				out["mags"] = jm
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			fmt.Printf("star: mass=%.3f Msun  age=%.3f (log10 yr)  [Fe/H]=%.2f\n", mass, age, feh)
			fmt.Printf("  Teff   = %s K\n", fmtNum(teff, "%.0f"))
			fmt.Printf("  logg   = %s\n", fmtNum(logg, "%.4f"))
			fmt.Printf("  logL   = %s\n", fmtNum(logl, "%.4f"))
			fmt.Printf("  radius = %s Rsun\n", fmtNum(radius, "%.4f"))
			fmt.Printf("  Z_surf = %s\n", fmtNum(zsurf, "%.5f"))
			fmt.Printf("magnitudes (d=%.1f pc, A_V=%.2f):\n", distance, av)
			for _, band := range bands {
				fmt.Printf("  %-2s = %s\n", band, fmtNum(mags[band], "%.3f"))
			}
			return nil
		},
	}
}

// jsonNum turns the NaN sentinel into null for JSON output.
func jsonNum(v float64) any {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

// fmtNum formats a value, rendering the NaN sentinel as out-of-coverage.
func fmtNum(v float64, format string) string {
	if math.IsNaN(v) {
		return "n/a (outside grid)"
	}
	return fmt.Sprintf(format, v)
}
