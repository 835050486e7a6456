package observability

import (
	"log/slog"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/process"
)

// ResourceSnapshot is the memory footprint of the current process at a pipeline stage.
type ResourceSnapshot struct {
	Stage      string
	RSSBytes   uint64
	HeapBytes  uint64
	CPUPercent float64
	NumGC      uint32
}

// ResourceReporter logs process resource usage between pipeline stages.
// Design matrices are held in memory in full, so the footprint after hashing
// is the number worth watching on large graphs.
type ResourceReporter struct {
	log  *slog.Logger
	proc *process.Process
}

func NewResourceReporter(log *slog.Logger) *ResourceReporter {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Warn("Process stats unavailable, reporting Go heap only", "err", err)
		p = nil
	}
	return &ResourceReporter{log: log, proc: p}
}

// Snapshot collects current figures. RSS and CPU stay zero when the OS
// refuses to describe the process.
func (r *ResourceReporter) Snapshot(stage string) ResourceSnapshot {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	snapshot := ResourceSnapshot{
		Stage:     stage,
		HeapBytes: mem.HeapAlloc,
		NumGC:     mem.NumGC,
	}
	if r.proc == nil {
		return snapshot
	}
	if info, err := r.proc.MemoryInfo(); err == nil {
		snapshot.RSSBytes = info.RSS
	}
	if cpu, err := r.proc.CPUPercent(); err == nil {
		snapshot.CPUPercent = cpu
	}
	return snapshot
}

// Report logs a snapshot along with the caller's attributes.
func (r *ResourceReporter) Report(stage string, attrs ...any) ResourceSnapshot {
	s := r.Snapshot(stage)
	args := append([]any{
		"stage", s.Stage,
		"rss_mb", s.RSSBytes / (1024 * 1024),
		"heap_mb", s.HeapBytes / (1024 * 1024),
		"cpu_percent", s.CPUPercent,
		"num_gc", s.NumGC,
	}, attrs...)
	r.log.Debug("Resource usage", args...)
	return s
}
