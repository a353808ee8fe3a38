package metrics

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// ProcessStats содержит сведения о процессе для отчётов FPS
type ProcessStats struct {
	StartTime time.Time
	proc      *process.Process
}

// NewProcessStats создаёт сборщик для текущего процесса
func NewProcessStats() *ProcessStats {
	ps := &ProcessStats{StartTime: time.Now()}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		ps.proc = p
	}
	return ps
}

// GetUptime возвращает время работы в виде "1ч 2м 3с"
func (ps *ProcessStats) GetUptime() string {
	return formatUptime(time.Since(ps.StartTime))
}

func formatUptime(uptime time.Duration) string {
	hours := int(uptime.Hours())
	minutes := int(uptime.Minutes()) % 60
	seconds := int(uptime.Seconds()) % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dч %dм %dс", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dм %dс", minutes, seconds)
	default:
		return fmt.Sprintf("%dс", seconds)
	}
}

// GetMemoryUsage возвращает размер кучи в MB
func (ps *ProcessStats) GetMemoryUsage() float64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return float64(m.Alloc) / 1024 / 1024
}

// GetCPUUsage возвращает использование CPU процессом в процентах
func (ps *ProcessStats) GetCPUUsage() (float64, error) {
	if ps.proc == nil {
		return 0, fmt.Errorf("process handle unavailable")
	}
	return ps.proc.CPUPercent()
}

// Summary - короткая строка для лога
func (ps *ProcessStats) Summary() string {
	s := fmt.Sprintf("uptime=%s mem=%.1fMB", ps.GetUptime(), ps.GetMemoryUsage())
	if cpu, err := ps.GetCPUUsage(); err == nil {
		s += fmt.Sprintf(" cpu=%.1f%%", cpu)
	}
	return s
}
