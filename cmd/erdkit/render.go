package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/erdkit/erdkit"
	"github.com/mattn/go-isatty"
)

// summaryStyles holds the lipgloss styles used by the summary encoding.
// When the target is not a terminal every style is a no-op, so piped output
// stays clean.
type summaryStyles struct {
	title  lipgloss.Style
	field  lipgloss.Style
	kind   lipgloss.Style
	marker lipgloss.Style
	edge   lipgloss.Style
}

func newSummaryStyles(styled bool) summaryStyles {
	if !styled {
		plain := lipgloss.NewStyle()

		return summaryStyles{title: plain, field: plain, kind: plain, marker: plain, edge: plain}
	}

	return summaryStyles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		field:  lipgloss.NewStyle().Foreground(lipgloss.Color("#DDDDDD")),
		kind:   lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
		marker: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C")),
		edge:   lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B")),
	}
}

// renderSummary renders a schema as a human-readable overview.
func renderSummary(w *os.File, schema *erdkit.Schema) string {
	styled := isatty.IsTerminal(w.Fd())
	styles := newSummaryStyles(styled)

	var b strings.Builder

	for _, m := range schema.Models {
		b.WriteString(styles.title.Render("model "+m.Name) + "\n")

		for _, f := range m.Fields {
			b.WriteString("  " + styles.field.Render(f.Name))
			b.WriteString(" " + styles.kind.Render(fieldType(f)))

			if markers := fieldMarkers(f); markers != "" {
				b.WriteString(" " + styles.marker.Render(markers))
			}

			b.WriteString("\n")
		}

		b.WriteString("\n")
	}

	for _, e := range schema.Enums {
		b.WriteString(styles.title.Render("enum "+e.Name) + "\n")
		b.WriteString("  " + styles.field.Render(strings.Join(e.Values, " ")) + "\n\n")
	}

	if len(schema.Relationships) > 0 {
		b.WriteString(styles.title.Render("relationships") + "\n")

		for _, r := range schema.Relationships {
			line := fmt.Sprintf("  %s.%s -> %s [%s]",
				r.SourceModel, r.SourceField, r.TargetModel, r.DisplayLabel)
			b.WriteString(styles.edge.Render(line) + "\n")
		}
	}

	return b.String()
}

func fieldType(f erdkit.Field) string {
	name := f.TypeName
	if name == "" {
		name = string(f.Kind)
	}

	if f.IsList {
		name += "[]"
	}

	if f.IsNullable {
		name += "?"
	}

	return name
}

func fieldMarkers(f erdkit.Field) string {
	var markers []string

	if f.IsPrimaryKey {
		markers = append(markers, "pk")
	}

	if f.IsUnique {
		markers = append(markers, "unique")
	}

	if f.IsForeignKey {
		markers = append(markers, "fk")
	}

	if f.DefaultKind != erdkit.DefaultNone {
		markers = append(markers, "default:"+string(f.DefaultKind))
	}

	return strings.Join(markers, " ")
}
