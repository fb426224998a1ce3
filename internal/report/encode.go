package report

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

func (r Report) writeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func (r Report) writeTOML(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(r)
}

var csvHeader = []string{
	"increment", "kind", "index", "cumulative_area", "theta", "height", "height_delta", "error",
}

// writeCSV writes one row per cut and one per leftover, suitable for
// spreadsheets. Failed entries get a single row with only the error set.
func (r Report) writeCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	format := func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
	for _, e := range r.Entries {
		inc := format(e.Increment)
		if e.Error != "" {
			if err := cw.Write([]string{inc, "error", "", "", "", "", "", e.Error}); err != nil {
				return err
			}
			continue
		}
		for _, c := range e.Cuts {
			row := []string{
				inc, "cut", strconv.Itoa(c.Index),
				format(c.Area), format(c.Theta), format(c.Height), format(c.HeightDelta), "",
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		if e.Leftover != nil {
			row := []string{
				inc, "leftover", "",
				format(e.Leftover.Area), "", format(e.Leftover.Height), "", "",
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
