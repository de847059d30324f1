package system_healthcheck

import (
	"projecttrack/internal/storage"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

type HealthStatus struct {
	Status          string  `json:"status"`
	DatabaseOk      bool    `json:"databaseOk"`
	MemoryUsedPct   float64 `json:"memoryUsedPct"`
	DiskUsedPct     float64 `json:"diskUsedPct"`
	DiskFreeBytes   uint64  `json:"diskFreeBytes"`
	MemoryFreeBytes uint64  `json:"memoryFreeBytes"`
}

type HealthcheckService struct{}

func (s *HealthcheckService) CheckHealth() *HealthStatus {
	status := &HealthStatus{Status: "ok", DatabaseOk: true}

	sqlDb, err := storage.GetDb().DB()
	if err != nil || sqlDb.Ping() != nil {
		status.Status = "degraded"
		status.DatabaseOk = false
	}

	if memory, err := mem.VirtualMemory(); err == nil {
		status.MemoryUsedPct = memory.UsedPercent
		status.MemoryFreeBytes = memory.Available
	}

	if usage, err := disk.Usage("/"); err == nil {
		status.DiskUsedPct = usage.UsedPercent
		status.DiskFreeBytes = usage.Free
	}

	return status
}
