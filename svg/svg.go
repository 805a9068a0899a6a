// Package svg serializes line sets to a stroke-only SVG document.
package svg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pthm-cable/plotflow/geom"
)

// Options holds the presentational parameters of the serializer. It
// carries no state; the same lines and options always produce the same
// document.
type Options struct {
	StrokeColor       string
	StrokeWidth       float64
	IncludeBackground bool
	BackgroundColor   string
	Precision         int  // decimal places for coordinates
	Simplify          bool // run RDP before writing
	SimplifyEpsilon   float64
}

// DefaultOptions returns the serializer defaults: black 1pt strokes,
// no background, 2 decimal places.
func DefaultOptions() Options {
	return Options{
		StrokeColor:     "#000000",
		StrokeWidth:     1,
		BackgroundColor: "#ffffff",
		Precision:       2,
		SimplifyEpsilon: 0.5,
	}
}

// Render writes the lines as one SVG path each, using quadratic curves
// through the midpoints of consecutive points so strokes come out
// smooth without a separate curve-fitting pass. Lines with fewer than
// two points are skipped.
func Render(lines []geom.Line, width, height float64, opts Options) string {
	var b strings.Builder

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		fnum(width, opts.Precision), fnum(height, opts.Precision),
		fnum(width, opts.Precision), fnum(height, opts.Precision))
	b.WriteByte('\n')

	if opts.IncludeBackground {
		fmt.Fprintf(&b, `  <rect x="0" y="0" width="%s" height="%s" fill="%s"/>`,
			fnum(width, opts.Precision), fnum(height, opts.Precision), opts.BackgroundColor)
		b.WriteByte('\n')
	}

	for _, line := range lines {
		if opts.Simplify {
			line = geom.Simplify(line, opts.SimplifyEpsilon)
		}
		if len(line) < 2 {
			continue
		}
		fmt.Fprintf(&b, `  <path d="%s" fill="none" stroke="%s" stroke-width="%s" stroke-linecap="round" stroke-linejoin="round"/>`,
			pathData(line, opts.Precision), opts.StrokeColor, fnum(opts.StrokeWidth, opts.Precision))
		b.WriteByte('\n')
	}

	b.WriteString("</svg>\n")
	return b.String()
}

// pathData builds the d attribute: move to the first point, then one
// quadratic segment per point using the midpoint to the next point as
// the segment end, finishing with a line to the last point.
func pathData(line geom.Line, precision int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "M %s %s", fnum(line[0].X, precision), fnum(line[0].Y, precision))
	if len(line) == 2 {
		fmt.Fprintf(&b, " L %s %s", fnum(line[1].X, precision), fnum(line[1].Y, precision))
		return b.String()
	}

	for i := 1; i < len(line)-1; i++ {
		mid := line[i].Mid(line[i+1])
		fmt.Fprintf(&b, " Q %s %s %s %s",
			fnum(line[i].X, precision), fnum(line[i].Y, precision),
			fnum(mid.X, precision), fnum(mid.Y, precision))
	}
	last := line[len(line)-1]
	fmt.Fprintf(&b, " L %s %s", fnum(last.X, precision), fnum(last.Y, precision))

	return b.String()
}

// fnum formats a coordinate with fixed decimal precision.
func fnum(v float64, precision int) string {
	if precision < 0 {
		precision = 0
	}
	s := strconv.FormatFloat(v, 'f', precision, 64)
	return s
}
