package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/tdsdose/internal/dosing"
)

// Layout constants for the dosing form.
const (
	columnGap         = 4
	labelWidth        = 36
	metricColumnWidth = 22
	valueColumnWidth  = 14
	unitColumnWidth   = 9
)

// RenderDosingHeader renders the form title.
func RenderDosingHeader() string {
	return HeaderStyle.Render("Dosing Calculation " + IconArrowRight)
}

// RenderDosingForm renders the header, the two field columns and the
// CALCULATE button. Plant fields go left, chemical fields right.
func RenderDosingForm(fields []dosing.FieldSpec, inputs []textinput.Model, focus int, complete bool) string {
	var left, right []string
	for i, spec := range fields {
		row := renderFieldRow(spec, inputs[i].View(), i == focus)
		if spec.Group == dosing.GroupChemical {
			right = append(right, row)
		} else {
			left = append(left, row)
		}
	}

	columns := lipgloss.JoinVertical(lipgloss.Left, left...)
	if len(right) > 0 {
		columns = lipgloss.JoinHorizontal(lipgloss.Top,
			columns,
			strings.Repeat(" ", columnGap),
			lipgloss.JoinVertical(lipgloss.Left, right...),
		)
	}

	var sb strings.Builder
	sb.WriteString(RenderDosingHeader())
	sb.WriteString("\n\n")
	sb.WriteString(columns)
	sb.WriteString("\n\n")
	sb.WriteString(RenderCalculateButton(complete, focus == len(fields)))
	return sb.String()
}

// renderFieldRow renders the label line and the input line of one field.
func renderFieldRow(spec dosing.FieldSpec, input string, focused bool) string {
	labelStyle := LabelStyle
	marker := "  "
	if focused {
		labelStyle = FocusedLabelStyle
		marker = IconArrowRight + " "
	}

	label := labelStyle.Render(truncate(spec.Label, labelWidth))
	line := fmt.Sprintf("%s[%s] %s", marker, input, UnitStyle.Render(spec.Unit))
	return label + "\n" + line + "\n"
}

// RenderCalculateButton renders the CALCULATE button. It is drawn disabled
// until the form is complete.
func RenderCalculateButton(enabled, focused bool) string {
	switch {
	case !enabled && focused:
		return ButtonDisabledStyle.Underline(true).Render("CALCULATE")
	case !enabled:
		return ButtonDisabledStyle.Render("CALCULATE")
	case focused:
		return ButtonFocusedStyle.Render("CALCULATE")
	default:
		return ButtonStyle.Render("CALCULATE")
	}
}

// RenderAlert renders the blocking incomplete-form alert.
func RenderAlert(message string, missing []dosing.Field) string {
	var sb strings.Builder
	sb.WriteString(IconWarning + " " + message)
	if len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for _, f := range missing {
			if spec, ok := dosing.Spec(f); ok {
				names = append(names, spec.Label)
			}
		}
		sb.WriteString("\n\nMissing: " + strings.Join(names, ", "))
	}
	sb.WriteString("\n\nPress any key to continue")
	return AlertStyle.Render(sb.String())
}

// NewResultTable builds the results table. Without a result the table is empty.
func NewResultTable(res dosing.Result, present bool) table.Model {
	columns := []table.Column{
		{Title: "Result", Width: metricColumnWidth},
		{Title: "Value", Width: valueColumnWidth},
		{Title: "Unit", Width: unitColumnWidth},
	}

	var rows []table.Row
	if present {
		for _, metric := range res.Metrics() {
			rows = append(rows, table.Row{
				metric.Label,
				dosing.FormatDisplay(metric.Value, metric.Precision),
				metric.Unit,
			})
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(resultTableHeight),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)
	return t
}

// RenderResultPanel renders the results table in a box.
func RenderResultPanel(t table.Model) string {
	return BoxStyle.Render(t.View())
}

// RenderDosingHelp renders the keyboard shortcut help text.
func RenderDosingHelp() string {
	shortcuts := []string{
		"tab/↓: Next",
		"shift+tab/↑: Previous",
		"enter: Calculate (on button)",
		"ctrl+s: Calculate",
		"esc: Quit",
	}
	return HelpStyle.Render(strings.Join(shortcuts, " | "))
}

// truncate shortens s to limit runes, adding an ellipsis when cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	const ellipsisLen = 3
	if limit <= ellipsisLen {
		return string(runes[:limit])
	}
	return string(runes[:limit-ellipsisLen]) + "..."
}
