// Package mixerconf parses the textual mixer configuration line
// consumed by the six-DoF allocator, and loads it into a live mixer
// instance. The parser follows the same convention as the original
// C mixer file format: a single "S: ..." line, fixed-point integers
// scaled by 1e4, terminated by a newline.
package mixerconf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/skywardfc/sixdof-mixer/internal/mixer"
)

// ErrMalformed is returned when a mixer line does not match the
// expected token layout.
var ErrMalformed = errors.New("mixerconf: malformed mixer line")

// ErrUnterminated is returned when a mixer line does not end with a
// newline. The core never observes a malformed/unterminated state; the
// parser is the only place this is checked.
var ErrUnterminated = errors.New("mixerconf: mixer line missing newline terminator")

// ErrUnknownGeometry is returned when the parsed geometry key does not
// match any entry in the geometry registry.
var ErrUnknownGeometry = errors.New("mixerconf: unknown geometry key")

// scaleDivisor converts the fixed-point integer tokens in a mixer line
// into floating-point axis scales.
const scaleDivisor = 10000.0

// MixerSpec is the parsed, not-yet-constructed form of a mixer config
// line.
type MixerSpec struct {
	GeometryKey string
	Scales      mixer.AxisScales
	IdleSpeed   float32
}

// ParseMixerLine parses a single mixer config line of the form:
//
//	S: <geomname> <roll*1e4> <pitch*1e4> <yaw*1e4> <x*1e4> <y*1e4> <z*1e4> <idle*1e4>
//
// The line must terminate with '\n'. geomname must be at most 7
// printable characters and must match a compiled-in geometry.
func ParseMixerLine(line string) (MixerSpec, error) {
	if !strings.HasSuffix(line, "\n") {
		return MixerSpec{}, ErrUnterminated
	}

	var geomname string
	var s [7]int

	n, err := fmt.Sscanf(line, "S: %7s %d %d %d %d %d %d %d",
		&geomname, &s[0], &s[1], &s[2], &s[3], &s[4], &s[5], &s[6])
	if err != nil || n != 8 {
		return MixerSpec{}, ErrMalformed
	}

	if _, ok := mixer.FindGeometry(geomname); !ok {
		return MixerSpec{}, ErrUnknownGeometry
	}

	return MixerSpec{
		GeometryKey: geomname,
		Scales: mixer.AxisScales{
			Roll:  float32(s[0]) / scaleDivisor,
			Pitch: float32(s[1]) / scaleDivisor,
			Yaw:   float32(s[2]) / scaleDivisor,
			X:     float32(s[3]) / scaleDivisor,
			Y:     float32(s[4]) / scaleDivisor,
			Z:     float32(s[5]) / scaleDivisor,
		},
		IdleSpeed: float32(s[6]) / scaleDivisor,
	}, nil
}
