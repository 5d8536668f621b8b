// Package isochrone implements the grid interpolation engine: it assembles
// a padded rectangular grid from per-(metallicity, age) mass tracks and
// interpolates physical stellar properties at arbitrary (mass, age,
// metallicity) queries. Out-of-coverage queries degrade to NaN rather than
// erroring so batch photometry over many stars can complete with partial
// results.
package isochrone

import (
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/jmorland/isogrid/internal/astro"
	"github.com/jmorland/isogrid/internal/table"
)

var (
	// ErrEmptyTable indicates an engine constructed from a table with no rows.
	ErrEmptyTable = errors.New("isochrone: model table has no rows")
	// ErrBadMass indicates a non-positive or non-finite query mass.
	ErrBadMass = errors.New("isochrone: mass must be positive and finite")
	// ErrBadInput indicates a non-finite age or metallicity.
	ErrBadInput = errors.New("isochrone: age and metallicity must be finite")
	// ErrBadColumn indicates a column index outside the table width.
	ErrBadColumn = errors.New("isochrone: column index out of range")
	// ErrLengthMismatch indicates vector inputs of differing lengths.
	ErrLengthMismatch = errors.New("isochrone: input slices must have equal length")
)

// Config carries the optional collaborators injected at construction.
// Zero values select the defaults.
type Config struct {
	// Constants overrides the CGS physical constants (defaults to astro.Default).
	Constants astro.Constants
	// UseExtTable makes Mag use the static per-band extinction coefficients
	// by default instead of evaluating the extinction curve.
	UseExtTable bool
}

// Engine interpolates within one isochrone model table. The table is treated
// as immutable after construction; the derived grid is built lazily on first
// query and shared by all callers.
type Engine struct {
	tab    *table.Table
	cols   table.Columns
	consts astro.Constants

	extTable bool

	// Sorted distinct axis values, derived once at construction.
	fehs []float64
	ages []float64

	buildOnce sync.Once
	grid      *grid

	// Coverage bounds, informational only. Queries outside them simply
	// resolve to NaN.
	MinMass, MaxMass float64
	MinAge, MaxAge   float64
	MinFeh, MaxFeh   float64
}

// New builds an engine over tab. The table must be non-empty and its rows
// must be grouped by (feh, log-age) with mass non-decreasing inside each
// group, which is how the published tables are laid out.
func New(tab *table.Table, cfg Config) (*Engine, error) {
	if tab == nil || tab.NRows == 0 {
		return nil, ErrEmptyTable
	}
	if err := tab.Cols.Validate(); err != nil {
		return nil, err
	}
	consts := cfg.Constants
	if consts.IsZero() {
		consts = astro.Default()
	}

	e := &Engine{
		tab:      tab,
		cols:     tab.Cols,
		consts:   consts,
		extTable: cfg.UseExtTable,
	}
	e.fehs = distinct(tab, tab.Cols.Feh)
	e.ages = distinct(tab, tab.Cols.LogAge)
	e.MinFeh, e.MaxFeh = e.fehs[0], e.fehs[len(e.fehs)-1]
	e.MinAge, e.MaxAge = e.ages[0], e.ages[len(e.ages)-1]

	e.MinMass, e.MaxMass = math.Inf(1), math.Inf(-1)
	for i := 0; i < tab.NRows; i++ {
		m := tab.At(i, tab.Cols.Mass)
		e.MinMass = math.Min(e.MinMass, m)
		e.MaxMass = math.Max(e.MaxMass, m)
	}
	return e, nil
}

// distinct returns the sorted deduplicated values of one table column.
func distinct(tab *table.Table, col int) []float64 {
	seen := make(map[float64]struct{})
	var vals []float64
	for i := 0; i < tab.NRows; i++ {
		v := tab.At(i, col)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		vals = append(vals, v)
	}
	sort.Float64s(vals)
	return vals
}

// Fehs returns the metallicity axis.
func (e *Engine) Fehs() []float64 { return e.fehs }

// Ages returns the log-age axis.
func (e *Engine) Ages() []float64 { return e.ages }

// Bands returns the photometric bands the table carries, in column order.
func (e *Engine) Bands() []string { return e.cols.Bands }

// NCols returns the table width.
func (e *Engine) NCols() int { return e.tab.NCols }

// Columns returns the semantic column layout.
func (e *Engine) Columns() table.Columns { return e.cols }

// LogTeff interpolates log10 effective temperature.
func (e *Engine) LogTeff(mass, age, feh float64) (float64, error) {
	return e.InterpValue(mass, age, feh, e.cols.LogTeff)
}

// LogG interpolates log10 surface gravity.
func (e *Engine) LogG(mass, age, feh float64) (float64, error) {
	return e.InterpValue(mass, age, feh, e.cols.LogG)
}

// LogL interpolates log10 luminosity.
func (e *Engine) LogL(mass, age, feh float64) (float64, error) {
	return e.InterpValue(mass, age, feh, e.cols.LogL)
}

// ZSurf interpolates the surface metal fraction.
func (e *Engine) ZSurf(mass, age, feh float64) (float64, error) {
	return e.InterpValue(mass, age, feh, e.cols.ZSurf)
}

// Teff returns the effective temperature in Kelvin.
func (e *Engine) Teff(mass, age, feh float64) (float64, error) {
	logt, err := e.LogTeff(mass, age, feh)
	if err != nil {
		return math.NaN(), err
	}
	return math.Pow(10, logt), nil
}

// Radius returns the stellar radius in solar radii, derived from the
// interpolated surface gravity and the literal query mass:
// R = sqrt(G * M / g) with everything in CGS, expressed in Rsun.
func (e *Engine) Radius(mass, age, feh float64) (float64, error) {
	logg, err := e.LogG(mass, age, feh)
	if err != nil {
		return math.NaN(), err
	}
	g := math.Pow(10, logg)
	return math.Sqrt(e.consts.G*mass*e.consts.Msun/g) / e.consts.Rsun, nil
}
