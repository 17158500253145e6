package stats

import (
	"time"

	"go.uber.org/zap"
)

// Provider samples host and GPU resource usage. It holds no mutable
// state of its own; the OS and hardware are the implicit input.
type Provider struct {
	host *hostStats
	gpu  *nvidiaStats
}

// NewProvider builds a provider for the local machine. When the NVIDIA
// query capability is unavailable the provider degrades to host metrics
// only; the condition is logged exactly once, here.
func NewProvider(log *zap.Logger) *Provider {
	p := &Provider{host: newHostStats()}

	gpu, err := newNvidiaStats()
	if err != nil {
		log.Warn("GPU monitoring is not available", zap.Error(err))
		return p
	}

	p.gpu = gpu
	return p
}

// Sample returns a snapshot of current resource usage. Metrics that
// cannot be read right now are omitted rather than reported as errors.
func (p *Provider) Sample() Snapshot {
	snap := NewSnapshot(time.Now())
	p.host.collect(snap)
	if p.gpu != nil {
		p.gpu.collect(snap)
	}
	return snap
}

// Close releases the NVML handle, if one was acquired.
func (p *Provider) Close() {
	if p.gpu != nil {
		p.gpu.close()
		p.gpu = nil
	}
}
