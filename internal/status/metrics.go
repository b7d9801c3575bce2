package status

import (
	"sort"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/lakshaymaurya-felt/linmole/internal/core"
	"github.com/lakshaymaurya-felt/linmole/internal/distro"
)

// ─── Metric types ────────────────────────────────────────────────────────────

// SystemMetrics is one snapshot of everything the dashboard shows.
type SystemMetrics struct {
	Hardware    HardwareInfo    `json:"hardware"`
	CPU         CPUMetrics      `json:"cpu"`
	Memory      MemoryMetrics   `json:"memory"`
	Disk        DiskMetrics     `json:"disk"`
	Network     NetworkMetrics  `json:"network"`
	Load        LoadMetrics     `json:"load"`
	UptimeSec   uint64          `json:"uptime_sec"`
	TopProcs    []ProcessMetric `json:"top_processes"`
	CollectedAt time.Time       `json:"collected_at"`
}

// HardwareInfo is the static machine identity shown on the overview tab.
type HardwareInfo struct {
	Hostname     string `json:"hostname"`
	OS           string `json:"os"`
	OSVersion    string `json:"os_version"`
	Kernel       string `json:"kernel"`
	CPUModel     string `json:"cpu_model"`
	CPUCores     int    `json:"cpu_cores"`
	RAMTotal     uint64 `json:"ram_total"`
	Architecture string `json:"architecture"`
}

type CPUMetrics struct {
	TotalPercent float64   `json:"total_percent"`
	PerCore      []float64 `json:"per_core"`
}

type MemoryMetrics struct {
	Total       uint64  `json:"total"`
	Used        uint64  `json:"used"`
	Available   uint64  `json:"available"`
	Free        uint64  `json:"free"`
	UsedPercent float64 `json:"used_percent"`
	SwapTotal   uint64  `json:"swap_total"`
	SwapUsed    uint64  `json:"swap_used"`
	SwapPercent float64 `json:"swap_percent"`
}

type DiskMetrics struct {
	Partitions []PartitionMetric `json:"partitions"`
	ReadBytes  uint64            `json:"read_bytes"`
	WriteBytes uint64            `json:"write_bytes"`
}

type PartitionMetric struct {
	Path        string  `json:"path"`
	Fstype      string  `json:"fstype"`
	Total       uint64  `json:"total"`
	Used        uint64  `json:"used"`
	UsedPercent float64 `json:"used_percent"`
}

type NetworkMetrics struct {
	BytesSent uint64 `json:"bytes_sent"`
	BytesRecv uint64 `json:"bytes_recv"`
	SendSpeed uint64 `json:"send_speed"` // bytes/sec since previous sample
	RecvSpeed uint64 `json:"recv_speed"`
}

type LoadMetrics struct {
	Load1  float64 `json:"load1"`
	Load5  float64 `json:"load5"`
	Load15 float64 `json:"load15"`
}

type ProcessMetric struct {
	PID    int32   `json:"pid"`
	Name   string  `json:"name"`
	CPUPct float64 `json:"cpu_pct"`
	MemPct float64 `json:"mem_pct"`
}

// topProcessCount caps the processes tab.
const topProcessCount = 10

// ─── Collection ──────────────────────────────────────────────────────────────

// CollectMetrics gathers one snapshot. prevNet carries the previous
// sample's counters so transfer speeds can be derived; nil on the
// first call leaves speeds at zero. Subsystems that fail to report
// degrade to zero values; only a memory probe failure is fatal, since
// a box that cannot report memory will not report anything else.
func CollectMetrics(prevNet *NetworkMetrics, interval time.Duration) (*SystemMetrics, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil, err
	}

	m := &SystemMetrics{CollectedAt: time.Now()}

	m.Memory = MemoryMetrics{
		Total:       vm.Total,
		Used:        vm.Used,
		Available:   vm.Available,
		Free:        vm.Free,
		UsedPercent: vm.UsedPercent,
	}
	if swap, err := mem.SwapMemory(); err == nil {
		m.Memory.SwapTotal = swap.Total
		m.Memory.SwapUsed = swap.Used
		m.Memory.SwapPercent = swap.UsedPercent
	}

	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		m.CPU.TotalPercent = pcts[0]
	}
	if cores, err := cpu.Percent(0, true); err == nil {
		m.CPU.PerCore = cores
	}

	m.Hardware = collectHardware(vm.Total)
	m.Disk = collectDisk()
	m.Network = collectNetwork(prevNet, interval)
	m.TopProcs = collectTopProcesses()

	if avg, err := load.Avg(); err == nil {
		m.Load = LoadMetrics{Load1: avg.Load1, Load5: avg.Load5, Load15: avg.Load15}
	}
	if info, err := host.Info(); err == nil {
		m.UptimeSec = info.Uptime
	}

	return m, nil
}

func collectHardware(ramTotal uint64) HardwareInfo {
	hw := HardwareInfo{RAMTotal: ramTotal}

	d := distro.Detect()
	hw.OS = d.Name
	hw.OSVersion = d.Version

	if info, err := host.Info(); err == nil {
		hw.Hostname = info.Hostname
		hw.Kernel = info.KernelVersion
		hw.Architecture = info.KernelArch
	}
	if hw.Kernel == "" {
		hw.Kernel, _ = core.KernelRelease()
	}
	if hw.Architecture == "" {
		hw.Architecture, _ = core.MachineArch()
	}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		hw.CPUModel = infos[0].ModelName
	}
	if n, err := cpu.Counts(true); err == nil {
		hw.CPUCores = n
	}
	return hw
}

func collectDisk() DiskMetrics {
	var dm DiskMetrics

	parts, err := disk.Partitions(false)
	if err != nil {
		return dm
	}
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		// Snap images mount one squashfs per revision; skip them and
		// bind-mounted duplicates of the same device.
		if p.Fstype == "squashfs" || seen[p.Device] {
			continue
		}
		usage, err := disk.Usage(p.Mountpoint)
		if err != nil || usage.Total == 0 {
			continue
		}
		seen[p.Device] = true
		dm.Partitions = append(dm.Partitions, PartitionMetric{
			Path:        p.Mountpoint,
			Fstype:      p.Fstype,
			Total:       usage.Total,
			Used:        usage.Used,
			UsedPercent: usage.UsedPercent,
		})
	}
	sort.Slice(dm.Partitions, func(i, j int) bool {
		return dm.Partitions[i].Path < dm.Partitions[j].Path
	})

	if counters, err := disk.IOCounters(); err == nil {
		for _, c := range counters {
			dm.ReadBytes += c.ReadBytes
			dm.WriteBytes += c.WriteBytes
		}
	}
	return dm
}

func collectNetwork(prev *NetworkMetrics, interval time.Duration) NetworkMetrics {
	var nm NetworkMetrics

	counters, err := net.IOCounters(false)
	if err != nil || len(counters) == 0 {
		return nm
	}
	nm.BytesSent = counters[0].BytesSent
	nm.BytesRecv = counters[0].BytesRecv

	if prev != nil && interval > 0 {
		secs := interval.Seconds()
		if nm.BytesSent >= prev.BytesSent {
			nm.SendSpeed = uint64(float64(nm.BytesSent-prev.BytesSent) / secs)
		}
		if nm.BytesRecv >= prev.BytesRecv {
			nm.RecvSpeed = uint64(float64(nm.BytesRecv-prev.BytesRecv) / secs)
		}
	}
	return nm
}

func collectTopProcesses() []ProcessMetric {
	procs, err := process.Processes()
	if err != nil {
		return nil
	}

	metrics := make([]ProcessMetric, 0, len(procs))
	for _, p := range procs {
		name, err := p.Name()
		if err != nil || name == "" {
			continue
		}
		cpuPct, err := p.CPUPercent()
		if err != nil {
			continue
		}
		memPct, _ := p.MemoryPercent()
		metrics = append(metrics, ProcessMetric{
			PID:    p.Pid,
			Name:   name,
			CPUPct: cpuPct,
			MemPct: float64(memPct),
		})
	}

	sort.Slice(metrics, func(i, j int) bool {
		return metrics[i].CPUPct > metrics[j].CPUPct
	})
	if len(metrics) > topProcessCount {
		metrics = metrics[:topProcessCount]
	}
	return metrics
}

// ─── Health score ────────────────────────────────────────────────────────────

// HealthScore condenses a snapshot into a 0-100 score: full marks
// minus weighted CPU, memory, and fullest-disk pressure, with a swap
// penalty once swap is half used.
func HealthScore(m *SystemMetrics) int {
	score := 100.0
	score -= m.CPU.TotalPercent * 0.25
	score -= m.Memory.UsedPercent * 0.25

	var fullest float64
	for _, p := range m.Disk.Partitions {
		if p.UsedPercent > fullest {
			fullest = p.UsedPercent
		}
	}
	score -= fullest * 0.2

	if m.Memory.SwapPercent > 50 {
		score -= 10
	}

	if score < 0 {
		score = 0
	}
	return int(score)
}
