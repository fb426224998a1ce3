package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// number formats f with thousands separators and at most two decimals.
func number(f float64) string {
	// CommafWithDigits truncates.
	return humanize.CommafWithDigits(math.Round(f*100)/100, 2)
}

func (r Report) writeTable(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s\n\n", titleStyle.Render(fmt.Sprintf(
		"Radius %s, diameter %s, area %s",
		number(r.Radius), number(r.Diameter), number(r.Area)))); err != nil {
		return err
	}
	for _, e := range r.Entries {
		title := "Increment " + number(e.Increment)
		if e.MinHeightDelta > 0 {
			title += ", minimum height gain " + number(e.MinHeightDelta)
		}
		if _, err := fmt.Fprintln(w, titleStyle.Render(title)); err != nil {
			return err
		}
		if e.Error != "" {
			if _, err := fmt.Fprintf(w, "%s\n\n", errorStyle.Render("error: "+e.Error)); err != nil {
				return err
			}
			continue
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("#", "Area", "Height", "Gain").
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})
		for _, c := range e.Cuts {
			t.Row(strconv.Itoa(c.Index), number(c.Area), number(c.Height), number(c.HeightDelta))
		}
		if e.Leftover != nil {
			t.Row("left over", number(e.Leftover.Area), "", number(e.Leftover.Height))
		}
		if _, err := fmt.Fprintf(w, "%s\n\n", t.Render()); err != nil {
			return err
		}
	}
	return nil
}
