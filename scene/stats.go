package scene

import "time"

// FrameStats provides statistics about frame execution.
type FrameStats struct {
	Frames        int64
	ActiveActors  int
	PendingActors int
	Merged        int64
	Swept         int64
	Failures      int64
	Clamped       int64
	LastDelta     float64
	Phases        []PhaseStats
}

// PhaseStats provides execution statistics for one frame phase.
type PhaseStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

const (
	phaseInput = iota
	phaseUpdate
	phaseOutput
	phaseCount
)

var phaseNames = [phaseCount]string{"input", "update", "output"}

type phaseStatsInternal struct {
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func (s *phaseStatsInternal) record(duration time.Duration) {
	if s.executionCount == 0 || duration < s.minDuration {
		s.minDuration = duration
	}
	if duration > s.maxDuration {
		s.maxDuration = duration
	}
	s.executionCount++
	s.lastDuration = duration
	s.totalDuration += duration
}

type frameStatsInternal struct {
	frames    int64
	merged    int64
	swept     int64
	failures  int64
	clamped   int64
	lastDelta float64
	phases    [phaseCount]phaseStatsInternal
}

// Stats returns statistics about frame execution.
func (r *Registry) Stats() *FrameStats {
	stats := &FrameStats{
		Frames:        r.stats.frames,
		ActiveActors:  len(r.active),
		PendingActors: len(r.pending),
		Merged:        r.stats.merged,
		Swept:         r.stats.swept,
		Failures:      r.stats.failures,
		Clamped:       r.stats.clamped,
		LastDelta:     r.stats.lastDelta,
		Phases:        make([]PhaseStats, phaseCount),
	}

	for i := range r.stats.phases {
		internal := &r.stats.phases[i]
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Phases[i] = PhaseStats{
			Name:           phaseNames[i],
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
	}

	return stats
}
