package relay

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

var startedAt = time.Now()

// HealthInfo reports relay liveness plus host load, for status displays.
type HealthInfo struct {
	UptimeSeconds int64   `json:"uptimeSeconds"`
	Players       int     `json:"players"`
	Connections   int     `json:"connections"`
	CPUPercent    float64 `json:"cpuPercent"`
	MemoryPercent float64 `json:"memoryPercent"`
	MemoryUsedMB  uint64  `json:"memoryUsedMb"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	info := HealthInfo{
		UptimeSeconds: int64(time.Since(startedAt).Seconds()),
		Players:       s.store.Count(),
		Connections:   s.hub.ClientCount(),
	}

	// Host metrics are best-effort; a probe failure never fails the check.
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		info.CPUPercent = percents[0]
	} else if err != nil {
		log.Printf("cpu probe error: %v", err)
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.MemoryPercent = vm.UsedPercent
		info.MemoryUsedMB = vm.Used / 1024 / 1024
	} else {
		log.Printf("memory probe error: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(info)
}
