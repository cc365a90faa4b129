package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/tdsdose/internal/dosing"
	"github.com/rshade/tdsdose/internal/logging"
)

// DosingState represents the current state of the dosing form TUI.
type DosingState int

const (
	// DosingStateEditing indicates the user is filling in the form.
	DosingStateEditing DosingState = iota
	// DosingStateAlert indicates the incomplete-form alert is shown.
	DosingStateAlert
	// DosingStateQuitting indicates the application is exiting.
	DosingStateQuitting
)

// Default dimensions and limits for the dosing model.
const (
	dosingDefaultWidth  = 100
	dosingDefaultHeight = 30
	inputWidth          = 12
	inputCharLimit      = 32
	resultTableHeight   = 7
)

// DosingModel is the Bubble Tea model for the interactive dosing form.
//
// Focus positions 0..len(fields)-1 are the inputs; len(fields) is the
// CALCULATE button.
type DosingModel struct {
	ctx context.Context

	form   *dosing.Form
	fields []dosing.FieldSpec
	inputs []textinput.Model
	focus  int

	state   DosingState
	results table.Model

	width  int
	height int
}

// NewDosingModel creates a dosing form TUI around form. The inputs start with
// the form's current values.
func NewDosingModel(ctx context.Context, form *dosing.Form) *DosingModel {
	m := &DosingModel{
		ctx:    ctx,
		form:   form,
		fields: form.Fields(),
		state:  DosingStateEditing,
		width:  dosingDefaultWidth,
		height: dosingDefaultHeight,
	}

	m.inputs = make([]textinput.Model, len(m.fields))
	for i, spec := range m.fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = inputCharLimit
		ti.Width = inputWidth
		ti.TextStyle = ValueStyle
		ti.SetValue(form.Value(spec.Field))
		m.inputs[i] = ti
	}
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}

	m.results = NewResultTable(dosing.Result{}, false)
	if res, ok := form.Result(); ok {
		m.results = NewResultTable(res, true)
	}

	return m
}

// Init initializes the model.
func (m *DosingModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model state.
func (m *DosingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	// Forward other messages (cursor blink) to the focused input.
	return m.updateFocusedInput(msg)
}

// handleKeyMsg processes keyboard input.
//
//nolint:exhaustive // Only handling relevant key types for form navigation.
func (m *DosingModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.state = DosingStateQuitting
		return m, tea.Quit
	}

	// Any key dismisses the alert.
	if m.state == DosingStateAlert {
		m.state = DosingStateEditing
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		m.state = DosingStateQuitting
		return m, tea.Quit

	case tea.KeyTab, tea.KeyDown:
		return m, m.setFocus(m.focus + 1)

	case tea.KeyShiftTab, tea.KeyUp:
		return m, m.setFocus(m.focus - 1)

	case tea.KeyCtrlS:
		m.calculate()
		return m, nil

	case tea.KeyEnter:
		if m.buttonFocused() {
			m.calculate()
			return m, nil
		}
		return m, m.setFocus(m.focus + 1)
	}

	if m.buttonFocused() {
		return m, nil
	}
	return m.updateFocusedInput(msg)
}

// updateFocusedInput forwards msg to the focused input and copies its value
// into the form.
func (m *DosingModel) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.buttonFocused() {
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	field := m.fields[m.focus].Field
	if value := m.inputs[m.focus].Value(); value != m.form.Value(field) {
		// Fields come from the form itself, so SetField cannot fail here.
		_ = m.form.SetField(field, value)
	}
	return m, cmd
}

// setFocus moves focus to position i, wrapping around.
func (m *DosingModel) setFocus(i int) tea.Cmd {
	positions := len(m.inputs) + 1
	m.focus = ((i % positions) + positions) % positions

	var cmd tea.Cmd
	for j := range m.inputs {
		if j == m.focus {
			cmd = m.inputs[j].Focus()
			continue
		}
		m.inputs[j].Blur()
	}
	return cmd
}

func (m *DosingModel) buttonFocused() bool {
	return m.focus == len(m.inputs)
}

// calculate runs the form's calculate action and updates the view state.
func (m *DosingModel) calculate() {
	log := logging.FromContext(m.ctx)

	res, err := m.form.Calculate()
	if err != nil {
		m.state = DosingStateAlert
		log.Debug().Ctx(m.ctx).
			Str("component", "tui").
			Int("missing", len(m.form.Missing())).
			Msg("calculation blocked: form incomplete")
		return
	}

	m.results = NewResultTable(res, true)
	log.Debug().Ctx(m.ctx).
		Str("component", "tui").
		Bool("finite", res.Finite()).
		Msg("dosing calculated")
}

// View renders the current view.
func (m *DosingModel) View() string {
	if m.state == DosingStateQuitting {
		return ""
	}

	view := RenderDosingForm(m.fields, m.inputs, m.focus, m.form.IsComplete())
	if m.state == DosingStateAlert {
		view += "\n\n" + RenderAlert(dosing.AlertMessage, m.form.Missing())
	}
	if _, ok := m.form.Result(); ok {
		view += "\n\n" + RenderResultPanel(m.results)
	}
	view += "\n\n" + RenderDosingHelp()
	return view
}

// Form returns the form behind the model.
func (m *DosingModel) Form() *dosing.Form { return m.form }

// State returns the view state.
func (m *DosingModel) State() DosingState { return m.state }

// Result returns the last successful result, if any.
func (m *DosingModel) Result() (dosing.Result, bool) { return m.form.Result() }
