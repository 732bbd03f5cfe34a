package dialog

import (
	"sync"
	"time"
)

const statsWindow = 100

type ProcessingStats struct {
	Count   int           `json:"count"`
	Total   int64         `json:"total_processed"`
	Average time.Duration `json:"average_ns"`
	Min     time.Duration `json:"min_ns"`
	Max     time.Duration `json:"max_ns"`
}

// latencyWindow keeps the most recent processing times.
type latencyWindow struct {
	mu      sync.Mutex
	samples []time.Duration
	next    int
	total   int64
}

func newLatencyWindow() *latencyWindow {
	return &latencyWindow{samples: make([]time.Duration, 0, statsWindow)}
}

func (w *latencyWindow) record(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.total++
	if len(w.samples) < statsWindow {
		w.samples = append(w.samples, d)
		return
	}
	w.samples[w.next] = d
	w.next = (w.next + 1) % statsWindow
}

func (w *latencyWindow) snapshot() ProcessingStats {
	w.mu.Lock()
	defer w.mu.Unlock()

	stats := ProcessingStats{Count: len(w.samples), Total: w.total}
	if len(w.samples) == 0 {
		return stats
	}

	var sum time.Duration
	stats.Min = w.samples[0]
	for _, d := range w.samples {
		sum += d
		stats.Min = min(stats.Min, d)
		stats.Max = max(stats.Max, d)
	}
	stats.Average = sum / time.Duration(len(w.samples))
	return stats
}
