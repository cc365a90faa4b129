package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rshade/tdsdose/internal/dosing"
	"github.com/rshade/tdsdose/internal/logging"
)

// FormController serves the HTML dosing form.
type FormController struct {
	s *Server
}

// NewFormController creates a FormController.
func NewFormController(s *Server) *FormController {
	return &FormController{s: s}
}

// fieldView is one input of the rendered form.
type fieldView struct {
	Spec  dosing.FieldSpec
	Value string
}

// metricView is one row of the rendered result panel.
type metricView struct {
	Label string
	Value string
	Unit  string
}

// formPage is the data of templates/form.html.
type formPage struct {
	Title     string
	Fields    []fieldView
	Chemical  bool
	Complete  bool
	Alert     string
	Missing   []string
	Results   []metricView
	NonFinite bool
	HasAssets bool
}

// Show renders a freshly mounted form.
func (fc *FormController) Show(c *gin.Context) {
	c.HTML(http.StatusOK, "form.html", fc.page(fc.s.newForm()))
}

// Submit applies the posted fields and runs the calculate action. An
// incomplete form is re-rendered with the alert and status 422.
func (fc *FormController) Submit(c *gin.Context) {
	ctx := c.Request.Context()
	form := fc.s.newForm()

	for _, spec := range form.Fields() {
		if value, ok := c.GetPostForm(string(spec.Field)); ok {
			_ = form.SetField(spec.Field, value)
		}
	}

	_, err := form.Calculate()
	page := fc.page(form)

	var incomplete *dosing.IncompleteError
	if errors.As(err, &incomplete) {
		page.Alert = dosing.AlertMessage
		for _, f := range incomplete.Missing {
			if spec, ok := dosing.Spec(f); ok {
				page.Missing = append(page.Missing, spec.Label)
			}
		}
		logging.FromContext(ctx).Debug().
			Str("component", "server").
			Int("missing", len(incomplete.Missing)).
			Msg("form submission incomplete")
		c.HTML(http.StatusUnprocessableEntity, "form.html", page)
		return
	}

	c.HTML(http.StatusOK, "form.html", page)
}

// page builds the template data for form.
func (fc *FormController) page(form *dosing.Form) formPage {
	page := formPage{
		Title:     fc.s.opts.App.AppName,
		Chemical:  form.Variant() == dosing.VariantChemical,
		Complete:  form.IsComplete(),
		HasAssets: fc.s.webDirExists(),
	}
	if page.Title == "" {
		page.Title = "Dosing Calculation"
	}

	for _, spec := range form.Fields() {
		page.Fields = append(page.Fields, fieldView{Spec: spec, Value: form.Value(spec.Field)})
	}

	if res, ok := form.Result(); ok {
		for _, m := range res.Metrics() {
			page.Results = append(page.Results, metricView{
				Label: m.Label,
				Value: dosing.FormatDisplay(m.Value, m.Precision),
				Unit:  m.Unit,
			})
		}
		page.NonFinite = !res.Finite()
	}
	return page
}
