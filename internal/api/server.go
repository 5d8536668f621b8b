// Package api exposes the interpolation engine over a small REST surface.
package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/jmorland/isogrid/internal/isochrone"
	"github.com/jmorland/isogrid/internal/logger"
)

// Server serves interpolation queries against one shared engine. The engine
// is immutable, so handlers need no synchronisation.
type Server struct {
	engine *isochrone.Engine
	log    logger.Logger
}

// NewServer creates a Server over the given engine.
func NewServer(engine *isochrone.Engine, log logger.Logger) *Server {
	if log == nil {
		log = logger.Default()
	}
	return &Server{engine: engine, log: log}
}

// Register mounts the API routes.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/healthz", s.handleHealth)
	e.GET("/v1/grid", s.handleGrid)
	e.POST("/v1/interpolate", s.handleInterpolate)
	e.POST("/v1/star", s.handleStar)
	e.POST("/v1/magnitude", s.handleMagnitude)
}

func (s *Server) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGrid(c *echo.Context) error {
	return c.JSON(http.StatusOK, GridResponse{
		Object:  "grid",
		Fehs:    s.engine.Fehs(),
		Ages:    s.engine.Ages(),
		Bands:   s.engine.Bands(),
		MinMass: s.engine.MinMass,
		MaxMass: s.engine.MaxMass,
	})
}

func (s *Server) handleInterpolate(c *echo.Context) error {
	req, err := decodeJSON[InterpolateRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	col, ok := s.propertyColumn(req.Property)
	if !ok {
		return writeError(c, http.StatusBadRequest, "invalid_request_error",
			"unknown property", "property")
	}
	q, err := coerceQuery(req.Mass, req.Age, req.Feh)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}

	resp := InterpolateResponse{
		ID:       "interp_" + uuid.NewString(),
		Object:   "interpolation",
		Property: req.Property,
	}
	if q.vector {
		values, err := s.engine.InterpValues(q.masses, q.ages, q.fs, col)
		if err != nil {
			return writeBadRequest(c, err.Error())
		}
		resp.Values = make([]*float64, len(values))
		for i, v := range values {
			resp.Values[i] = numOrNull(v)
		}
	} else {
		v, err := s.engine.InterpValue(q.mass, q.age, q.feh, col)
		if err != nil {
			return writeBadRequest(c, err.Error())
		}
		resp.Value = numOrNull(v)
	}

	s.log.Debug("interpolate", "property", req.Property, "vector", q.vector)
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleStar(c *echo.Context) error {
	req, err := decodeJSON[StarRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}

	teff, err := s.engine.Teff(req.Mass, req.Age, req.Feh)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	// The remaining quantities share the validated inputs, so only the
	// first call can fail on malformed input.
	logg, _ := s.engine.LogG(req.Mass, req.Age, req.Feh)
	logl, _ := s.engine.LogL(req.Mass, req.Age, req.Feh)
	radius, _ := s.engine.Radius(req.Mass, req.Age, req.Feh)
	zsurf, _ := s.engine.ZSurf(req.Mass, req.Age, req.Feh)

	return c.JSON(http.StatusOK, StarResponse{
		ID:     "star_" + uuid.NewString(),
		Object: "star",
		Teff:   numOrNull(teff),
		LogG:   numOrNull(logg),
		LogL:   numOrNull(logl),
		Radius: numOrNull(radius),
		ZSurf:  numOrNull(zsurf),
	})
}

func (s *Server) handleMagnitude(c *echo.Context) error {
	req, err := decodeJSON[MagnitudeRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}

	bands := req.Bands
	if len(bands) == 0 {
		bands = s.engine.Bands()
	}
	opts := isochrone.MagOptions{
		DistancePC:  req.DistancePC,
		AV:          req.AV,
		ExtParam:    req.ExtParam,
		UseExtTable: req.ExtTable,
	}

	mags := make(map[string]*float64, len(bands))
	for _, band := range bands {
		m, err := s.engine.Mag(band, req.Mass, req.Age, req.Feh, opts)
		if err != nil {
			return writeBadRequest(c, err.Error())
		}
		mags[band] = numOrNull(m)
	}

	return c.JSON(http.StatusOK, MagnitudeResponse{
		ID:     "mag_" + uuid.NewString(),
		Object: "magnitude",
		Mags:   mags,
	})
}

// propertyColumn resolves a request property name to a table column.
func (s *Server) propertyColumn(name string) (int, bool) {
	cols := s.engine.Columns()
	switch name {
	case "mass":
		return cols.Mass, true
	case "logTeff":
		return cols.LogTeff, true
	case "logg":
		return cols.LogG, true
	case "logL":
		return cols.LogL, true
	case "Z_surf":
		return cols.ZSurf, true
	}
	col, ok := cols.Mags[name]
	return col, ok
}
