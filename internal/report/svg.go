package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// SVGOptions specifies optional settings for SVG output.
type SVGOptions struct {
	// The maximum precision with which to format coordinates. A value of 0
	// chooses the highest precision necessary to unambiguously represent any
	// given coordinate.
	MaxPrecision int
}

// writeSVG draws every successful entry as a circle with its cuts, side by
// side. The y axis points down, so heights are measured up from the bottom of
// each circle.
func (r Report) writeSVG(w io.Writer, opts SVGOptions) error {
	var err error
	writef := func(s string, v ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, s, v...)
	}
	format := func(n float64) string {
		maxPrec := opts.MaxPrecision
		if maxPrec <= 0 {
			return strconv.FormatFloat(n, 'f', -1, 64)
		}
		s := strconv.FormatFloat(n, 'f', maxPrec, 64)
		if strings.Contains(s, ".") {
			s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
		}
		return s
	}

	rad := r.Radius
	d := 2 * rad
	gap := d / 10
	label := d / 12
	panels := 0
	for _, e := range r.Entries {
		if e.Error == "" {
			panels++
		}
	}
	width := float64(panels)*(d+gap) + gap
	height := d + 2*gap + label
	stroke := d / 400

	writef(`<svg viewBox="0 0 %s %s" xmlns="http://www.w3.org/2000/svg">`+"\n", format(width), format(height))
	i := 0
	for _, e := range r.Entries {
		if e.Error != "" {
			continue
		}
		x0 := gap + float64(i)*(d+gap)
		y0 := gap + label
		cx, cy := x0+rad, y0+rad
		i++

		writef(`<g>` + "\n")
		writef(`<text x="%s" y="%s" font-size="%s" text-anchor="middle">%s</text>`+"\n",
			format(cx), format(gap+label/2), format(label/2), format(e.Increment))
		writef(`<circle cx="%s" cy="%s" r="%s" fill="#EEE" stroke="black" stroke-width="%s" />`+"\n",
			format(cx), format(cy), format(rad), format(stroke))
		for _, c := range e.Cuts {
			off := c.Height - rad
			half := math.Sqrt(max(rad*rad-off*off, 0))
			y := y0 + d - c.Height
			writef(`<path d="M%s,%s L%s,%s" fill="none" stroke="red" stroke-width="%s" />`+"\n",
				format(cx-half), format(y), format(cx+half), format(y), format(stroke))
		}
		writef(`</g>` + "\n")
	}
	writef("</svg>\n")
	return err
}
