package mixerconf

import "github.com/skywardfc/sixdof-mixer/internal/mixer"

// Load turns a parsed MixerSpec and a ControlReader into a live mixer
// instance. This is the "external configuration loader" role spec.md
// scopes out of the core — the boundary between text and the mixer
// stays exactly at ParseMixerLine/Load, so the core mixer package never
// observes a malformed configuration.
func Load(spec MixerSpec, reader mixer.ControlReader) (*mixer.Multirotor6DoFMixer, error) {
	return mixer.New(spec.GeometryKey, spec.Scales, spec.IdleSpeed, reader)
}

// LoadLine parses a single mixer config line and constructs the mixer
// it describes in one step.
func LoadLine(line string, reader mixer.ControlReader) (*mixer.Multirotor6DoFMixer, error) {
	spec, err := ParseMixerLine(line)
	if err != nil {
		return nil, err
	}
	return Load(spec, reader)
}
