// ABOUTME: Software volume and mute shared by all backends
// ABOUTME: Lock-free so the audio goroutine can read it every buffer
package output

import (
	"log"
	"sync/atomic"
)

// gain is an output trim applied after the source renders
type gain struct {
	volume atomic.Int32
	muted  atomic.Bool
}

func newGain() *gain {
	g := &gain{}
	g.volume.Store(100)
	return g
}

// SetVolume sets the volume (0-100)
func (g *gain) SetVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	g.volume.Store(int32(volume))
	log.Printf("Volume set to %d", volume)
}

// SetMuted sets mute state
func (g *gain) SetMuted(muted bool) {
	g.muted.Store(muted)
	log.Printf("Muted: %v", muted)
}

// GetVolume returns current volume
func (g *gain) GetVolume() int {
	return int(g.volume.Load())
}

// IsMuted returns mute state
func (g *gain) IsMuted() bool {
	return g.muted.Load()
}

// apply scales samples in place
func (g *gain) apply(samples []float32) {
	applyVolume(samples, g.GetVolume(), g.IsMuted())
}

// applyVolume applies volume and mute to samples in place
func applyVolume(samples []float32, volume int, muted bool) {
	multiplier := getVolumeMultiplier(volume, muted)
	if multiplier == 1.0 {
		return
	}

	m := float32(multiplier)
	for i := range samples {
		samples[i] *= m
	}
}

// getVolumeMultiplier calculates volume multiplier
func getVolumeMultiplier(volume int, muted bool) float64 {
	if muted {
		return 0.0
	}
	return float64(volume) / 100.0
}
