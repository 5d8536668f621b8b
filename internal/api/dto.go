package api

// InterpolateRequest asks for one interpolated property. mass, age and feh
// accept either a JSON number or an equal-length array of numbers; the
// server branches on the shape explicitly.
type InterpolateRequest struct {
	Mass     any    `json:"mass"`
	Age      any    `json:"age"`
	Feh      any    `json:"feh"`
	Property string `json:"property"`
}

// InterpolateResponse carries the result. Out-of-coverage values are null;
// exactly one of value/values is set depending on the request shape.
type InterpolateResponse struct {
	ID       string     `json:"id"`
	Object   string     `json:"object"`
	Property string     `json:"property"`
	Value    *float64   `json:"value,omitempty"`
	Values   []*float64 `json:"values,omitempty"`
}

// StarRequest asks for the full derived property set of one star.
type StarRequest struct {
	Mass float64 `json:"mass"`
	Age  float64 `json:"age"`
	Feh  float64 `json:"feh"`
}

// StarResponse carries every derived quantity; out-of-coverage fields are null.
type StarResponse struct {
	ID     string   `json:"id"`
	Object string   `json:"object"`
	Teff   *float64 `json:"teff"`
	LogG   *float64 `json:"logg"`
	LogL   *float64 `json:"logL"`
	Radius *float64 `json:"radius"`
	ZSurf  *float64 `json:"Z_surf"`
}

// MagnitudeRequest asks for apparent magnitudes. An empty band list means
// every band the table carries.
type MagnitudeRequest struct {
	Mass       float64  `json:"mass"`
	Age        float64  `json:"age"`
	Feh        float64  `json:"feh"`
	Bands      []string `json:"bands,omitempty"`
	DistancePC float64  `json:"distance_pc,omitempty"`
	AV         float64  `json:"av,omitempty"`
	ExtParam   float64  `json:"ext_param,omitempty"`
	ExtTable   bool     `json:"ext_table,omitempty"`
}

// MagnitudeResponse carries per-band apparent magnitudes, null where the
// query falls outside the grid.
type MagnitudeResponse struct {
	ID     string              `json:"id"`
	Object string              `json:"object"`
	Mags   map[string]*float64 `json:"mags"`
}

// GridResponse summarises the loaded grid.
type GridResponse struct {
	Object  string    `json:"object"`
	Fehs    []float64 `json:"fehs"`
	Ages    []float64 `json:"ages"`
	Bands   []string  `json:"bands"`
	MinMass float64   `json:"min_mass"`
	MaxMass float64   `json:"max_mass"`
}

// ResponseError is the error payload shape.
type ResponseError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Param   string `json:"param,omitempty"`
}
