// ABOUTME: Linear ADSR envelope state machine
// ABOUTME: Advanced once per output sample for every sounding voice
package synth

// Stage is the current envelope phase of a voice
type Stage int

const (
	StageOff Stage = iota
	StageAttack
	StageDecay
	StageSustain
	StageRelease
)

// String returns the stage name
func (s Stage) String() string {
	switch s {
	case StageOff:
		return "off"
	case StageAttack:
		return "attack"
	case StageDecay:
		return "decay"
	case StageSustain:
		return "sustain"
	case StageRelease:
		return "release"
	default:
		return "unknown"
	}
}

// Envelope holds the per-sample increments derived from ADSR settings.
// It is shared by all voices; per-voice state lives in Voice.
type Envelope struct {
	attackStep  float64
	decayStep   float64
	releaseStep float64
	sustain     float64
}

// NewEnvelope precomputes linear increments for the given sample rate
func NewEnvelope(cfg Config) Envelope {
	cfg = cfg.withDefaults()
	sr := float64(cfg.SampleRate)

	return Envelope{
		attackStep:  1.0 / (cfg.AttackTime * sr),
		decayStep:   (1.0 - cfg.SustainLevel) / (cfg.DecayTime * sr),
		releaseStep: cfg.SustainLevel / (cfg.ReleaseTime * sr),
		sustain:     cfg.SustainLevel,
	}
}

// Sustain returns the sustain level
func (e Envelope) Sustain() float64 {
	return e.sustain
}

// Advance moves the voice's envelope forward by one sample and reports
// whether the voice is still sounding afterwards.
func (e Envelope) Advance(v *Voice) bool {
	switch v.stage {
	case StageAttack:
		v.level += e.attackStep
		if v.level >= 1.0 {
			v.level = 1.0
			v.stage = StageDecay
		}
	case StageDecay:
		v.level -= e.decayStep
		if v.level <= e.sustain {
			v.level = e.sustain
			v.stage = StageSustain
		}
	case StageSustain:
	case StageRelease:
		v.level -= e.releaseStep
		// A zero sustain level gives a zero release step; finish immediately
		if v.level <= 0.0 || e.releaseStep <= 0 {
			v.level = 0.0
			v.stage = StageOff
		}
	}
	return v.stage != StageOff
}
