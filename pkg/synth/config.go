// ABOUTME: Synthesis constants and engine configuration
// ABOUTME: Defines default ADSR, detune, reverb and volume settings
package synth

const (
	// DefaultSampleRate is the operating sample rate in Hz
	DefaultSampleRate = 44100

	// DefaultChannels is the output channel count (one stereo bus)
	DefaultChannels = 2

	// DefaultVolume is the master volume applied after active-count normalization
	DefaultVolume = 0.65

	// Envelope timings
	DefaultAttackTime   = 0.01 // seconds
	DefaultDecayTime    = 0.1  // seconds
	DefaultSustainLevel = 0.8
	DefaultReleaseTime  = 0.5 // seconds

	// Detune bank: offsets -13..+13 scaled by DefaultDetuneStep Hz
	DefaultBankSize   = 27
	DefaultDetuneStep = 0.005

	// DefaultDrive is the tanh saturation drive applied to each saw
	DefaultDrive = 6.0

	// Reverb
	DefaultReverbFeedback = 0.5
	DefaultDelaySeconds   = 2.0

	// DefaultEventQueueSize is the capacity of the input-to-audio event queue
	DefaultEventQueueSize = 256
)

// Config holds engine configuration
type Config struct {
	SampleRate int
	Volume     float64

	AttackTime   float64
	DecayTime    float64
	SustainLevel float64
	ReleaseTime  float64

	BankSize   int
	DetuneStep float64
	Drive      float64

	ReverbFeedback float64
	DelaySeconds   float64

	EventQueueSize int
}

// DefaultConfig returns the built-in synthesis settings
func DefaultConfig() Config {
	return Config{
		SampleRate:     DefaultSampleRate,
		Volume:         DefaultVolume,
		AttackTime:     DefaultAttackTime,
		DecayTime:      DefaultDecayTime,
		SustainLevel:   DefaultSustainLevel,
		ReleaseTime:    DefaultReleaseTime,
		BankSize:       DefaultBankSize,
		DetuneStep:     DefaultDetuneStep,
		Drive:          DefaultDrive,
		ReverbFeedback: DefaultReverbFeedback,
		DelaySeconds:   DefaultDelaySeconds,
		EventQueueSize: DefaultEventQueueSize,
	}
}

// withDefaults fills zero-valued timing and sizing fields.
// Volume, SustainLevel and ReverbFeedback may legitimately be zero and are kept.
func (c Config) withDefaults() Config {
	if c.SampleRate <= 0 {
		c.SampleRate = DefaultSampleRate
	}
	if c.AttackTime <= 0 {
		c.AttackTime = DefaultAttackTime
	}
	if c.DecayTime <= 0 {
		c.DecayTime = DefaultDecayTime
	}
	if c.ReleaseTime <= 0 {
		c.ReleaseTime = DefaultReleaseTime
	}
	if c.BankSize <= 0 {
		c.BankSize = DefaultBankSize
	}
	if c.DelaySeconds <= 0 {
		c.DelaySeconds = DefaultDelaySeconds
	}
	if c.EventQueueSize <= 0 {
		c.EventQueueSize = DefaultEventQueueSize
	}
	if c.SustainLevel < 0 {
		c.SustainLevel = 0
	} else if c.SustainLevel > 1 {
		c.SustainLevel = 1
	}
	return c
}
