// Package static provides non-interactive terminal output components.
//
// This package contains components for rendering formatted output
// that does not require user interaction, such as the coffee and brew
// log tables and key/value detail views.
package static

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/brewlog/internal/brew"
	"github.com/raphi011/brewlog/internal/ui/styles"
)

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which automatically
// calculates column widths based on content. No borders are rendered.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	return t.String() + "\n"
}

// CoffeeHeaders are the columns of CoffeeTableRow.
var CoffeeHeaders = []string{"ID", "NAME", "ORIGIN", "ROASTER"}

// CoffeeTableRow formats a coffee for the coffee list.
func CoffeeTableRow(c brew.Coffee) []string {
	return []string{
		strconv.FormatInt(c.ID, 10),
		c.Name,
		dash(c.Origin),
		dash(c.Roaster),
	}
}

// BrewLogHeaders are the columns of BrewLogTableRow.
var BrewLogHeaders = []string{"ID", "DATE", "COFFEE", "METHOD", "RATIO", "TIME", "RATING"}

// BrewLogTableRow formats a brew log for the brew list. coffeeName is
// used when the log does not embed its coffee.
func BrewLogTableRow(b brew.BrewLog, coffeeName string) []string {
	if b.Coffee != nil && b.Coffee.Name != "" {
		coffeeName = b.Coffee.Name
	}
	if coffeeName == "" {
		coffeeName = "#" + strconv.FormatInt(b.CoffeeID, 10)
	}

	brewTime := "-"
	if b.BrewTime != nil {
		brewTime = brew.FormatBrewTime(*b.BrewTime)
	}

	return []string{
		strconv.FormatInt(b.ID, 10),
		dash(formatDate(b.CreatedAt)),
		coffeeName,
		b.BrewMethod,
		dash(brew.FormatRatio(b.CoffeeWeight, b.WaterWeight)),
		brewTime,
		styles.FormatRating(b.Rating),
	}
}

// Field is one line of a detail view.
type Field struct {
	Label string
	Value string
}

// RenderDetails renders label/value pairs under a title, skipping empty
// values.
func RenderDetails(title string, fields []Field) string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n")
	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		b.WriteString(styles.LabelStyle.Render(f.Label))
		b.WriteString(f.Value)
		b.WriteString("\n")
	}
	return b.String()
}

// BrewLogDetails lists the recorded measurements of a brew log.
func BrewLogDetails(b brew.BrewLog) []Field {
	var fields []Field
	add := func(label, value string) {
		fields = append(fields, Field{Label: label, Value: value})
	}

	add("Method", b.BrewMethod)
	if b.CoffeeWeight != nil {
		add("Coffee", strconv.FormatFloat(*b.CoffeeWeight, 'f', -1, 64)+" g")
	}
	if b.WaterWeight != nil {
		add("Water", strconv.FormatFloat(*b.WaterWeight, 'f', -1, 64)+" g")
	}
	add("Ratio", brew.FormatRatio(b.CoffeeWeight, b.WaterWeight))
	if b.GrindSize != nil {
		add("Grind", *b.GrindSize)
	}
	if b.WaterTemperature != nil {
		add("Temperature", strconv.FormatFloat(*b.WaterTemperature, 'f', -1, 64)+" °C")
	}
	if b.BrewTime != nil {
		add("Brew time", brew.FormatBrewTime(*b.BrewTime))
	}
	if b.Rating != nil {
		add("Rating", styles.FormatRating(b.Rating))
	}
	if b.TastingNotes != nil {
		add("Notes", *b.TastingNotes)
	}
	add("Logged", formatDate(b.CreatedAt))
	return fields
}

// formatDate trims an RFC 3339 timestamp to its date.
func formatDate(ts string) string {
	if len(ts) >= 10 && ts[4] == '-' && ts[7] == '-' {
		return ts[:10]
	}
	return ts
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
