package api

import (
	"fmt"
	"io"
	"math"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"
)

func decodeJSON[T any](r io.Reader) (T, error) {
	var v T
	dec := json.NewDecoder(r)
	if err := dec.Decode(&v); err != nil {
		return v, fmt.Errorf("invalid JSON body: %w", err)
	}
	return v, nil
}

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg, "")
}

func writeError(c *echo.Context, status int, errType, msg, param string) error {
	return c.JSON(status, map[string]any{
		"error": ResponseError{
			Message: msg,
			Type:    errType,
			Param:   param,
		},
	})
}

// numOrNull maps the NaN sentinel to JSON null; encoding/json cannot
// represent NaN and clients want an explicit "no coverage" marker anyway.
func numOrNull(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// queryShape coerces the mass/age/feh fields of an interpolate request into
// either three scalars or three equal-length vectors.
type queryShape struct {
	vector           bool
	mass, age, feh   float64
	masses, ages, fs []float64
}

func coerceQuery(mass, age, feh any) (queryShape, error) {
	mv, mvec, err := coerceNumbers("mass", mass)
	if err != nil {
		return queryShape{}, err
	}
	av, avec, err := coerceNumbers("age", age)
	if err != nil {
		return queryShape{}, err
	}
	fv, fvec, err := coerceNumbers("feh", feh)
	if err != nil {
		return queryShape{}, err
	}

	isVec := mvec != nil || avec != nil || fvec != nil
	if !isVec {
		return queryShape{mass: mv, age: av, feh: fv}, nil
	}
	if mvec == nil || avec == nil || fvec == nil {
		return queryShape{}, fmt.Errorf("mass, age and feh must all be scalars or all be arrays")
	}
	return queryShape{vector: true, masses: mvec, ages: avec, fs: fvec}, nil
}

// coerceNumbers accepts a JSON number or array of numbers.
func coerceNumbers(name string, v any) (float64, []float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil, nil
	case []any:
		out := make([]float64, len(t))
		for i, e := range t {
			f, ok := e.(float64)
			if !ok {
				return 0, nil, fmt.Errorf("%s[%d] is not a number", name, i)
			}
			out[i] = f
		}
		return 0, out, nil
	case nil:
		return 0, nil, fmt.Errorf("%s is required", name)
	default:
		return 0, nil, fmt.Errorf("%s must be a number or an array of numbers", name)
	}
}
