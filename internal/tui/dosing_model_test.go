package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/tdsdose/internal/dosing"
)

// typeText sends each rune of s as a key press.
func typeText(m *DosingModel, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// press sends a single special key.
func press(m *DosingModel, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

// fillBasic types the reference plant into a basic form, leaving focus on the button.
func fillBasic(t *testing.T, m *DosingModel) {
	t.Helper()
	values := []string{"", "25", "10", "75", "5", "200", "50", "20"} // tds keeps its default
	require.Len(t, m.fields, len(values))
	for _, v := range values {
		typeText(m, v)
		press(m, tea.KeyTab)
	}
	require.True(t, m.buttonFocused())
}

func TestNewDosingModel(t *testing.T) {
	m := NewDosingModel(context.Background(), dosing.NewForm(dosing.VariantChemical))

	require.NotNil(t, m)
	assert.Equal(t, DosingStateEditing, m.State())
	assert.Len(t, m.inputs, 14)
	assert.Equal(t, "3000", m.inputs[0].Value())
	assert.True(t, m.inputs[0].Focused())
	_, ok := m.Result()
	assert.False(t, ok)
	assert.NotNil(t, m.Init())
}

func TestDosingModel_TypingSetsField(t *testing.T) {
	form := dosing.NewForm(dosing.VariantBasic)
	m := NewDosingModel(context.Background(), form)

	press(m, tea.KeyTab)
	typeText(m, "25.5")

	assert.Equal(t, "25.5", form.Value(dosing.FieldTemperature))
	assert.Equal(t, "3000", form.Value(dosing.FieldTDS))

	press(m, tea.KeyBackspace)
	assert.Equal(t, "25.", form.Value(dosing.FieldTemperature))
}

func TestDosingModel_FocusWraps(t *testing.T) {
	m := NewDosingModel(context.Background(), dosing.NewForm(dosing.VariantBasic))

	press(m, tea.KeyShiftTab)
	assert.True(t, m.buttonFocused())

	press(m, tea.KeyDown)
	assert.Equal(t, 0, m.focus)
	assert.True(t, m.inputs[0].Focused())

	press(m, tea.KeyEnter)
	assert.Equal(t, 1, m.focus)
	assert.False(t, m.inputs[0].Focused())
}

func TestDosingModel_CalculateIncompleteShowsAlert(t *testing.T) {
	form := dosing.NewForm(dosing.VariantBasic)
	m := NewDosingModel(context.Background(), form)
	before := form.Inputs()

	press(m, tea.KeyCtrlS)

	assert.Equal(t, DosingStateAlert, m.State())
	assert.Equal(t, dosing.StateIdle, form.State())
	assert.Equal(t, before, form.Inputs())
	view := m.View()
	assert.Contains(t, view, dosing.AlertMessage)
	assert.NotContains(t, view, "Adjusted TDS")

	// Any key dismisses the alert without editing the form.
	typeText(m, "9")
	assert.Equal(t, DosingStateEditing, m.State())
	assert.Equal(t, before, form.Inputs())
}

func TestDosingModel_CalculateComplete(t *testing.T) {
	form := dosing.NewForm(dosing.VariantBasic)
	m := NewDosingModel(context.Background(), form)

	fillBasic(t, m)
	assert.True(t, form.IsComplete())

	press(m, tea.KeyEnter)

	assert.Equal(t, DosingStateEditing, m.State())
	res, ok := m.Result()
	require.True(t, ok)
	assert.Equal(t, "48.0", res.Formatted().TankDuration)

	view := m.View()
	assert.Contains(t, view, "Adjusted TDS")
	assert.Contains(t, view, "5.00")
	assert.Contains(t, view, "48.0")
}

func TestDosingModel_TypingOnButtonIgnored(t *testing.T) {
	form := dosing.NewForm(dosing.VariantBasic)
	m := NewDosingModel(context.Background(), form)
	press(m, tea.KeyShiftTab)
	before := form.Inputs()

	typeText(m, "42")

	assert.Equal(t, before, form.Inputs())
}

func TestDosingModel_Quit(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m := NewDosingModel(context.Background(), dosing.NewForm(dosing.VariantBasic))
		cmd := press(m, k)
		assert.Equal(t, DosingStateQuitting, m.State())
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.Empty(t, m.View())
	}
}

func TestDosingModel_WindowSize(t *testing.T) {
	m := NewDosingModel(context.Background(), dosing.NewForm(dosing.VariantBasic))
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}

func TestDosingModel_PrecalculatedForm(t *testing.T) {
	form := dosing.NewForm(dosing.VariantBasic)
	for f, v := range map[dosing.Field]string{
		dosing.FieldTemperature: "25", dosing.FieldPumpCapacity: "10", dosing.FieldRecovery: "100",
		dosing.FieldFlow: "5", dosing.FieldTankSize: "200", dosing.FieldPumpSetting: "50",
		dosing.FieldRunningHours: "20",
	} {
		require.NoError(t, form.SetField(f, v))
	}
	_, err := form.Calculate()
	require.NoError(t, err)

	m := NewDosingModel(context.Background(), form)

	assert.Contains(t, m.View(), "Infinity")
}
