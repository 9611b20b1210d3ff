package observability

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/process"
)

// RecentDrawInfo is one line of the activity feed shown by the inspector.
type RecentDrawInfo struct {
	DrawID    string `json:"draw_id"`
	Status    string `json:"status"`
	Matches   int    `json:"matches"`
	Timestamp string `json:"timestamp"`
}

// MonitoringStats aggregates every metric exposed on /status and the
// debug UI.
type MonitoringStats struct {
	// --- DRAW METRICS ---
	DrawsCreated  uint64 `json:"draws_created"`
	DrawsExecuted uint64 `json:"draws_executed"`
	DrawsFailed   uint64 `json:"draws_failed"`

	// --- NOTIFICATION METRICS ---
	EmailsSent   uint64 `json:"emails_sent"`
	EmailsFailed uint64 `json:"emails_failed"`

	// --- SYSTEM METRICS ---
	PendingJobs   int              `json:"pending_jobs"`
	AllocMemMb    uint64           `json:"alloc_mem_mb"`
	RSSMemMb      uint64           `json:"rss_mem_mb"`
	CPUPercent    float64          `json:"cpu_percent"`
	NumGC         uint32           `json:"num_gc"`
	UptimeSeconds int64            `json:"uptime_seconds"`
	RecentDraws   []RecentDrawInfo `json:"recent_draws"`
}

// MonitoringManager collects counters from the API handlers and workers
// and refreshes system metrics on a fixed cadence.
type MonitoringManager struct {
	log         *slog.Logger
	mu          sync.RWMutex
	latestStats MonitoringStats
	startedAt   time.Time
	self        *process.Process

	// Atomic counters, read-and-published by the refresh tick.
	drawsCreated  uint64
	drawsExecuted uint64
	drawsFailed   uint64
	emailsSent    uint64
	emailsFailed  uint64
}

func NewMonitoringManager(log *slog.Logger) *MonitoringManager {
	// Self-inspection is best effort: a nil process only disables the
	// RSS/CPU fields.
	self, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Warn("Process self stats unavailable", "error", err)
		self = nil
	}
	return &MonitoringManager{
		log:       log,
		startedAt: time.Now(),
		self:      self,
		latestStats: MonitoringStats{
			RecentDraws: make([]RecentDrawInfo, 0),
		},
	}
}

func (mm *MonitoringManager) IncrDrawsCreated() {
	atomic.AddUint64(&mm.drawsCreated, 1)
}

func (mm *MonitoringManager) IncrDrawsExecuted() {
	atomic.AddUint64(&mm.drawsExecuted, 1)
}

func (mm *MonitoringManager) IncrDrawsFailed() {
	atomic.AddUint64(&mm.drawsFailed, 1)
}

func (mm *MonitoringManager) IncrEmailsSent() {
	atomic.AddUint64(&mm.emailsSent, 1)
}

func (mm *MonitoringManager) IncrEmailsFailed() {
	atomic.AddUint64(&mm.emailsFailed, 1)
}

// RecordDraw pushes one entry onto the activity feed (thread-safe).
func (mm *MonitoringManager) RecordDraw(drawID, status string, matches int) {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	entry := RecentDrawInfo{
		DrawID:    drawID,
		Status:    status,
		Matches:   matches,
		Timestamp: time.Now().Format("15:04:05"),
	}

	mm.latestStats.RecentDraws = append([]RecentDrawInfo{entry}, mm.latestStats.RecentDraws...)

	// Keep only the last 20
	if len(mm.latestStats.RecentDraws) > 20 {
		mm.latestStats.RecentDraws = mm.latestStats.RecentDraws[:20]
	}
}

// UpdateQueue publishes the current pending job count, reported by the
// draw processor on each poll cycle.
func (mm *MonitoringManager) UpdateQueue(pending int) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	mm.latestStats.PendingJobs = pending
}

// Listen refreshes the published stats every second until the context is
// canceled.
func (mm *MonitoringManager) Listen(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			mm.log.Info("Monitoring manager stopped")
			return
		case <-ticker.C:
			mm.updateStats()
		}
	}
}

func (mm *MonitoringManager) updateStats() {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	mm.latestStats.DrawsCreated = atomic.LoadUint64(&mm.drawsCreated)
	mm.latestStats.DrawsExecuted = atomic.LoadUint64(&mm.drawsExecuted)
	mm.latestStats.DrawsFailed = atomic.LoadUint64(&mm.drawsFailed)
	mm.latestStats.EmailsSent = atomic.LoadUint64(&mm.emailsSent)
	mm.latestStats.EmailsFailed = atomic.LoadUint64(&mm.emailsFailed)
	mm.latestStats.UptimeSeconds = int64(time.Since(mm.startedAt).Seconds())

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	mm.latestStats.AllocMemMb = m.Alloc / 1024 / 1024
	mm.latestStats.NumGC = m.NumGC

	if mm.self != nil {
		if memInfo, err := mm.self.MemoryInfo(); err == nil {
			mm.latestStats.RSSMemMb = memInfo.RSS / 1024 / 1024
		}
		if cpu, err := mm.self.CPUPercent(); err == nil {
			mm.latestStats.CPUPercent = cpu
		}
	}
}

func (mm *MonitoringManager) GetLatest() MonitoringStats {
	mm.mu.RLock()
	defer mm.mu.RUnlock()
	return mm.latestStats
}
