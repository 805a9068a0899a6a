package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/plotflow/config"
	"github.com/pthm-cable/plotflow/geom"
)

// LineRecord is one emitted line's CSV row.
type LineRecord struct {
	Index  int     `csv:"index"`
	Points int     `csv:"points"`
	Length float64 `csv:"length"`
	StartX float64 `csv:"start_x"`
	StartY float64 `csv:"start_y"`
	EndX   float64 `csv:"end_x"`
	EndY   float64 `csv:"end_y"`
}

// OutputManager writes run artifacts (lines.csv, config.yaml) into an
// output directory. A nil manager is valid and writes nothing, so
// callers don't have to branch on whether telemetry is enabled.
type OutputManager struct {
	dir string
}

// NewOutputManager creates the output directory. Returns nil if dir is
// empty (telemetry disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &OutputManager{dir: dir}, nil
}

// WriteLines writes one CSV record per emitted line.
func (om *OutputManager) WriteLines(lines []geom.Line) error {
	if om == nil {
		return nil
	}

	records := make([]LineRecord, 0, len(lines))
	for i, l := range lines {
		if len(l) == 0 {
			continue
		}
		records = append(records, LineRecord{
			Index:  i,
			Points: len(l),
			Length: l.Length(),
			StartX: l[0].X,
			StartY: l[0].Y,
			EndX:   l[len(l)-1].X,
			EndY:   l[len(l)-1].Y,
		})
	}

	f, err := os.Create(filepath.Join(om.dir, "lines.csv"))
	if err != nil {
		return fmt.Errorf("creating lines.csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal(records, f); err != nil {
		return fmt.Errorf("writing lines.csv: %w", err)
	}
	return nil
}

// WriteConfig snapshots the resolved configuration (including the
// resolved seed) so the run can be reproduced exactly.
func (om *OutputManager) WriteConfig(cfg *config.Config, resolvedSeed int64) error {
	if om == nil {
		return nil
	}
	snapshot := *cfg
	snapshot.Seed = resolvedSeed
	return snapshot.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}
