package stats

import (
	"errors"
	"fmt"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// nvidiaStats reads per-GPU metrics through NVML. Construction fails when
// the library or driver is absent; callers treat that as "GPU metrics
// disabled" rather than an error condition.
type nvidiaStats struct {
	devices []nvml.Device
}

func newNvidiaStats() (*nvidiaStats, error) {
	if ret := nvml.Init(); !errors.Is(ret, nvml.SUCCESS) {
		return nil, fmt.Errorf("failed to initialize NVML: %s", nvml.ErrorString(ret))
	}

	count, ret := nvml.DeviceGetCount()
	if !errors.Is(ret, nvml.SUCCESS) || count == 0 {
		nvml.Shutdown()
		return nil, fmt.Errorf("no NVIDIA devices found")
	}

	devices := make([]nvml.Device, count)
	for i := 0; i < count; i++ {
		devices[i], _ = nvml.DeviceGetHandleByIndex(i)
	}

	return &nvidiaStats{devices: devices}, nil
}

func (n *nvidiaStats) collect(snap Snapshot) {
	for i, device := range n.devices {
		if temp, ret := device.GetTemperature(nvml.TEMPERATURE_GPU); errors.Is(ret, nvml.SUCCESS) {
			snap.SetGauge(fmt.Sprintf("gpu_%d_temperature", i), float64(temp))
		}

		if util, ret := device.GetUtilizationRates(); errors.Is(ret, nvml.SUCCESS) {
			snap.SetGauge(fmt.Sprintf("gpu_%d_utilization", i), float64(util.Gpu))
		}

		if mem, ret := device.GetMemoryInfo(); errors.Is(ret, nvml.SUCCESS) && mem.Total > 0 {
			snap.SetGauge(fmt.Sprintf("gpu_%d_mem_usage", i), 100*float64(mem.Used)/float64(mem.Total))
			snap.SetGauge(fmt.Sprintf("gpu_%d_mem_free_gb", i), float64(mem.Free)/bytesPerGigabyte)
			snap.SetGauge(fmt.Sprintf("gpu_%d_mem_used_gb", i), float64(mem.Used)/bytesPerGigabyte)
		}
	}
}

func (n *nvidiaStats) close() {
	nvml.Shutdown()
}
