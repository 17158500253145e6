package stats

import (
	"os"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/sensors"
)

const (
	bytesPerMegabyte = 1 << 20
	bytesPerGigabyte = 1 << 30
)

// hostStats reads machine-wide metrics through gopsutil. A category that
// cannot be read on a given tick is omitted from the snapshot for that
// tick only.
type hostStats struct {
	homeDir string
}

func newHostStats() *hostStats {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "/"
	}
	return &hostStats{homeDir: home}
}

func (h *hostStats) collect(snap Snapshot) {
	// Interval 0 measures against the previous call, which matches the
	// periodic sampling cadence without blocking the tick.
	if percents, err := cpu.Percent(0, true); err == nil && len(percents) > 0 {
		var total float64
		for _, p := range percents {
			total += p
		}
		snap.SetGauge("cpu_usage", total/float64(len(percents)))
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		snap.SetGauge("memory_used_gb", float64(vm.Used)/bytesPerGigabyte)
		snap.SetGauge("memory_free_gb", float64(vm.Available)/bytesPerGigabyte)
	}

	if free, ok := diskFreePercent(h.homeDir); ok {
		snap.SetGauge("disk_free_percent", free)
	}

	if temp, ok := maxCoreTemperature(); ok {
		snap.SetGauge("cpu_temperature", temp)
	}

	if counters, err := net.IOCounters(false); err == nil && len(counters) > 0 {
		snap.SetCounter("network_tx_mbs", float64(counters[0].BytesSent)/bytesPerMegabyte)
		snap.SetCounter("network_rx_mbs", float64(counters[0].BytesRecv)/bytesPerMegabyte)
	}

	if counters, err := disk.IOCounters(); err == nil && len(counters) > 0 {
		var read, written uint64
		for _, c := range counters {
			read += c.ReadBytes
			written += c.WriteBytes
		}
		snap.SetCounter("io_read_mbs", float64(read)/bytesPerMegabyte)
		snap.SetCounter("io_write_mbs", float64(written)/bytesPerMegabyte)
	}
}

// maxCoreTemperature returns the hottest CPU core reading. Platforms
// without a coretemp sensor simply report no temperature metric.
func maxCoreTemperature() (float64, bool) {
	readings, err := sensors.SensorsTemperatures()
	if err != nil {
		return 0, false
	}

	var max float64
	found := false
	for _, r := range readings {
		if !strings.Contains(r.SensorKey, "coretemp") {
			continue
		}
		if !found || r.Temperature > max {
			max = r.Temperature
			found = true
		}
	}
	return max, found
}
