package dataprocessing

import "time"

// Row-count stages reported to a Recorder
const (
	StageRead   = "read"
	StageOutput = "output"
)

// Recorder receives optional diagnostics about a pipeline run. Only aggregate
// row counts are reported, never individual dropped rows.
type Recorder interface {
	RecordRows(chart ChartID, stage string, rows int)
	RecordRun(chart ChartID, err error, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RecordRows(ChartID, string, int) {}
func (nopRecorder) RecordRun(ChartID, error, time.Duration) {}
