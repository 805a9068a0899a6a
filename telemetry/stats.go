// Package telemetry computes and persists statistics about a
// generation run.
package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/plotflow/geom"
)

// RunStats summarizes the lines of one generation run.
type RunStats struct {
	LineCount  int
	PointCount int

	TotalLength  float64
	MeanLength   float64
	MedianLength float64
	P90Length    float64
	StdDevLength float64
}

// ComputeRunStats builds run statistics from the emitted lines.
func ComputeRunStats(lines []geom.Line) RunStats {
	s := RunStats{LineCount: len(lines)}
	if len(lines) == 0 {
		return s
	}

	lengths := make([]float64, 0, len(lines))
	for _, l := range lines {
		s.PointCount += len(l)
		length := l.Length()
		s.TotalLength += length
		lengths = append(lengths, length)
	}
	sort.Float64s(lengths)

	s.MeanLength = stat.Mean(lengths, nil)
	s.MedianLength = stat.Quantile(0.5, stat.Empirical, lengths, nil)
	s.P90Length = stat.Quantile(0.9, stat.Empirical, lengths, nil)
	if len(lengths) > 1 {
		s.StdDevLength = stat.StdDev(lengths, nil)
	}
	return s
}
