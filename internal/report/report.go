// Package report renders cut schedules for people and other programs.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"honnef.co/go/segcut"
)

// Format selects how a [Report] is rendered.
type Format string

const (
	// FormatAuto picks FormatTable for terminals and FormatJSON otherwise.
	FormatAuto  Format = "auto"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatTOML  Format = "toml"
	FormatCSV   Format = "csv"
	FormatSVG   Format = "svg"
)

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatAuto, FormatTable, FormatJSON, FormatTOML, FormatCSV, FormatSVG:
		return f, nil
	default:
		return "", fmt.Errorf("unknown report format %q", s)
	}
}

// Resolve replaces FormatAuto with a concrete format suitable for w.
func (f Format) Resolve(w io.Writer) Format {
	if f != FormatAuto {
		return f
	}
	if file, ok := w.(*os.File); ok {
		fd := file.Fd()
		if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
			return FormatTable
		}
	}
	return FormatJSON
}

// Cut is one row of a schedule.
type Cut struct {
	Index       int     `json:"index" toml:"index"`
	Area        float64 `json:"cumulative_area" toml:"cumulative_area"`
	Theta       float64 `json:"theta" toml:"theta"`
	Height      float64 `json:"height" toml:"height"`
	HeightDelta float64 `json:"height_delta" toml:"height_delta"`
}

// Leftover is the segment above the last cut.
type Leftover struct {
	Area   float64 `json:"area" toml:"area"`
	Height float64 `json:"height" toml:"height"`
}

// Entry is the schedule of one area increment, or the reason it is missing.
type Entry struct {
	Increment      float64   `json:"increment" toml:"increment"`
	MinHeightDelta float64   `json:"min_height_delta" toml:"min_height_delta"`
	Cuts           []Cut     `json:"cuts" toml:"cuts"`
	Leftover       *Leftover `json:"leftover,omitempty" toml:"leftover,omitempty"`
	Error          string    `json:"error,omitempty" toml:"error,omitempty"`
}

// Report is the rendered form of a sweep over one circle.
type Report struct {
	ID          string    `json:"id" toml:"id"`
	GeneratedAt time.Time `json:"generated_at" toml:"generated_at"`
	Radius      float64   `json:"radius" toml:"radius"`
	Diameter    float64   `json:"diameter" toml:"diameter"`
	Area        float64   `json:"area" toml:"area"`
	Entries     []Entry   `json:"entries" toml:"entries"`
}

// New builds a report from the results of [segcut.Sweep].
func New(c segcut.Circle, results []segcut.SweepResult) Report {
	r := Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		Radius:      c.Radius,
		Diameter:    c.Diameter(),
		Area:        c.Area(),
		Entries:     make([]Entry, 0, len(results)),
	}
	for _, res := range results {
		e := Entry{
			Increment:      res.Increment,
			MinHeightDelta: res.Schedule.MinHeightDelta,
			Cuts:           []Cut{},
		}
		if res.Err != nil {
			e.Error = res.Err.Error()
			r.Entries = append(r.Entries, e)
			continue
		}
		for _, cut := range res.Schedule.Cuts {
			e.Cuts = append(e.Cuts, Cut{
				Index:       cut.Index,
				Area:        cut.CumulativeArea,
				Theta:       cut.Theta,
				Height:      cut.Height,
				HeightDelta: cut.HeightDelta,
			})
		}
		e.Leftover = &Leftover{
			Area:   res.Schedule.Leftover.Area,
			Height: res.Schedule.Leftover.Height,
		}
		r.Entries = append(r.Entries, e)
	}
	return r
}

// Failed returns the number of entries that carry an error.
func (r Report) Failed() int {
	n := 0
	for _, e := range r.Entries {
		if e.Error != "" {
			n++
		}
	}
	return n
}

// Write renders r to w in the given format.
func (r Report) Write(w io.Writer, f Format) error {
	switch f.Resolve(w) {
	case FormatTable:
		return r.writeTable(w)
	case FormatJSON:
		return r.writeJSON(w)
	case FormatTOML:
		return r.writeTOML(w)
	case FormatCSV:
		return r.writeCSV(w)
	case FormatSVG:
		return r.writeSVG(w, SVGOptions{MaxPrecision: 3})
	default:
		return fmt.Errorf("unknown report format %q", f)
	}
}
