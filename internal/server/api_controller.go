package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rshade/tdsdose/internal/dosing"
	"github.com/rshade/tdsdose/internal/logging"
)

// APIController serves the JSON API.
type APIController struct {
	s *Server
}

// NewAPIController creates an APIController.
func NewAPIController(s *Server) *APIController {
	return &APIController{s: s}
}

// CalculateRequest is the body of POST /api/v1/dosing/calculate. Fields not
// present in Inputs keep the form defaults (tds = 3000).
type CalculateRequest struct {
	Variant string            `json:"variant"`
	Inputs  map[string]string `json:"inputs"`
}

// CalculateResponse is the data of a successful calculation.
type CalculateResponse struct {
	Variant   dosing.Variant         `json:"variant"`
	Inputs    dosing.Inputs          `json:"inputs"`
	Result    dosing.FormattedResult `json:"result"`
	NonFinite []string               `json:"nonFinite,omitempty"`
}

// IncompleteResponse is the data of a blocked calculation.
type IncompleteResponse struct {
	Missing []dosing.Field `json:"missing"`
}

// Calculate runs the calculate action on a JSON request.
func (ac *APIController) Calculate(c *gin.Context) {
	ctx := c.Request.Context()

	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	variant := ac.s.opts.Variant
	if req.Variant != "" {
		v, err := dosing.ParseVariant(req.Variant)
		if err != nil {
			Error(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		variant = v
	}

	form, _ := dosing.NewFormWithDefaults(variant, ac.s.opts.Defaults)
	inputs, err := dosing.ResolveFields(req.Inputs)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	for _, spec := range dosing.VariantChemical.Fields() {
		value, ok := inputs[spec.Field]
		if !ok {
			continue
		}
		if err = form.SetField(spec.Field, value); err != nil {
			Error(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
	}

	res, err := form.Calculate()
	var incomplete *dosing.IncompleteError
	if errors.As(err, &incomplete) {
		Error(c, http.StatusUnprocessableEntity, dosing.AlertMessage, IncompleteResponse{Missing: incomplete.Missing})
		return
	}

	logging.FromContext(ctx).Debug().
		Str("component", "server").
		Str("variant", string(variant)).
		Bool("finite", res.Finite()).
		Msg("dosing calculated")

	Success(c, CalculateResponse{
		Variant:   variant,
		Inputs:    form.Inputs(),
		Result:    res.Formatted(),
		NonFinite: res.NonFinite(),
	})
}

// Fields lists the field specs of a variant.
func (ac *APIController) Fields(c *gin.Context) {
	variant := ac.s.opts.Variant
	if q := c.Query("variant"); q != "" {
		v, err := dosing.ParseVariant(q)
		if err != nil {
			Error(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		variant = v
	}
	Success(c, variant.Fields())
}

// App returns the packaging descriptor.
func (ac *APIController) App(c *gin.Context) {
	Success(c, ac.s.opts.App)
}

// Health answers liveness probes.
func (ac *APIController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
