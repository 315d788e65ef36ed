package metrics

import "sync/atomic"

// ExportMetrics counts one export run; safe to read while the run is going.
type ExportMetrics struct {
	ProcessedCount atomic.Int32
	UploadedCount  atomic.Int32
	FailedCount    atomic.Int32
	WarningsCount  atomic.Int32
}

type ExportSnapshot struct {
	Processed int32 `json:"processed"`
	Uploaded  int32 `json:"uploaded"`
	Failed    int32 `json:"failed"`
	Warnings  int32 `json:"warnings"`
}

func (m *ExportMetrics) Snapshot() ExportSnapshot {
	return ExportSnapshot{
		Processed: m.ProcessedCount.Load(),
		Uploaded:  m.UploadedCount.Load(),
		Failed:    m.FailedCount.Load(),
		Warnings:  m.WarningsCount.Load(),
	}
}
