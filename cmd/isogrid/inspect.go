package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func inspectCmd() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Summarise an isochrone grid file",
		Flags: append(gridFlags(), loggingFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := LoadConfig()
			applyCommonConfig(cmd, cfg)

			tab, err := loadTable(gridPath)
			if err != nil {
				return err
			}
			engine, err := newEngine(tab)
			if err != nil {
				return err
			}

			fmt.Printf("grid: %s\n", gridPath)
			fmt.Printf("  rows    = %d\n", tab.NRows)
			fmt.Printf("  columns = %d\n", tab.NCols)
			fmt.Printf("  feh axis (%d): %v\n", len(engine.Fehs()), engine.Fehs())
			fmt.Printf("  age axis (%d): %.3f .. %.3f (log10 yr)\n",
				len(engine.Ages()), engine.MinAge, engine.MaxAge)
			fmt.Printf("  mass     : %.3f .. %.3f Msun\n", engine.MinMass, engine.MaxMass)
			fmt.Printf("  bands    : %v\n", engine.Bands())
			return nil
		},
	}
}
