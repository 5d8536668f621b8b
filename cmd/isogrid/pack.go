package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/jmorland/isogrid/pkg/isopack"
)

func packCmd() *cli.Command {
	var (
		inPath  string
		outPath string
	)

	return &cli.Command{
		Name:  "pack",
		Usage: "Convert a text or JSON isochrone table to the packed binary format",
		Flags: append(loggingFlags(),
			&cli.StringFlag{
				Name:        "in",
				Aliases:     []string{"i"},
				Usage:       "input table (.txt/.iso or .json)",
				Required:    true,
				Destination: &inPath,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output .isopack file",
				Required:    true,
				Destination: &outPath,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := newLogger()

			tab, err := loadTable(inPath)
			if err != nil {
				return err
			}

			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			w, err := isopack.NewWriter(f, tab.PackNames())
			if err != nil {
				return err
			}
			for i := 0; i < tab.NRows; i++ {
				if err := w.WriteRow(tab.Row(i)); err != nil {
					return fmt.Errorf("row %d: %w", i, err)
				}
			}
			if err := w.Finalise(); err != nil {
				return err
			}

			log.Info("packed grid written",
				"in", inPath, "out", outPath, "rows", tab.NRows, "cols", tab.NCols)
			return nil
		},
	}
}
