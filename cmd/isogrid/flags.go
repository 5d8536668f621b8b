package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/jmorland/isogrid/internal/isochrone"
	"github.com/jmorland/isogrid/internal/logger"
	"github.com/jmorland/isogrid/internal/table"
)

var (
	gridPath  string
	extTable  bool
	logLevel  string
	logFormat string
)

func gridFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "grid",
			Aliases:     []string{"g"},
			Usage:       "path to the isochrone table (.txt/.iso, .json or .isopack)",
			Destination: &gridPath,
		},
		&cli.BoolFlag{
			Name:        "ext-table",
			Usage:       "use the static per-band extinction coefficients by default",
			Destination: &extTable,
		},
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
	}
}

func newLogger() logger.Logger {
	return logger.Setup(os.Stderr, logFormat, logLevel)
}

// loadTable picks the loader from the file extension.
func loadTable(path string) (*table.Table, error) {
	if path == "" {
		return nil, fmt.Errorf("no grid file given (use --grid or the config file)")
	}
	cols := table.MIST()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".isopack":
		return table.LoadPack(path, cols)
	case ".json":
		return table.LoadJSON(path, cols)
	default:
		return table.Load(path, cols)
	}
}

// newEngine wraps a loaded table in an engine configured from the flags.
func newEngine(tab *table.Table) (*isochrone.Engine, error) {
	return isochrone.New(tab, isochrone.Config{UseExtTable: extTable})
}

// loadEngine builds the interpolation engine from the configured grid file.
func loadEngine() (*isochrone.Engine, error) {
	tab, err := loadTable(gridPath)
	if err != nil {
		return nil, err
	}
	return newEngine(tab)
}
