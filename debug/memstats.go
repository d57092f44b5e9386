package debug

// Memory/RSS periodic logger enabled when config.Debug is true.
// Logs process RSS and CPU along with Go heap stats so decoder (cgo / ffmpeg pipe)
// growth can be told apart from Go heap growth.

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/process"
)

// StartMemLogger logs memory stats every interval until ctx is done.
// Failures to query the process are logged once and suppressed.
func StartMemLogger(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		logger.Warn("memlog: process handle unavailable", slog.String("err", err.Error()))
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		var procErrLogged bool
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			var rss uint64
			var cpu float64
			if proc != nil {
				mi, err := proc.MemoryInfo()
				if err == nil && mi != nil {
					rss = mi.RSS
				} else if err != nil && !procErrLogged {
					logger.Warn("memlog: MemoryInfo failed", slog.String("err", err.Error()))
					procErrLogged = true
				}
				if pct, err := proc.CPUPercent(); err == nil {
					cpu = pct
				}
			}
			logger.Info("memstats",
				slog.Int("goroutines", runtime.NumGoroutine()),
				slog.String("heap_alloc", humanize.IBytes(ms.HeapAlloc)),
				slog.Uint64("heap_inuse", ms.HeapInuse),
				slog.Uint64("heap_idle", ms.HeapIdle),
				slog.Uint64("heap_sys", ms.HeapSys),
				slog.Uint64("next_gc", ms.NextGC),
				slog.String("rss", humanize.IBytes(rss)),
				slog.Float64("cpu_pct", cpu),
				slog.Uint64("num_gc", uint64(ms.NumGC)),
			)
		}
	}()
}
