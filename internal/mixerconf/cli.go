package mixerconf

import (
	"strings"

	"github.com/google/shlex"
)

// ParseMixerBlob scans a boot-time config blob that may contain several
// lines — comments, unrelated directives, and one or more mixer "S:"
// lines (a vehicle can carry more than one mixer, e.g. multirotor plus
// a gimbal) — and returns the spec described by the first multirotor
// line found. Unrelated lines are skipped, not treated as errors.
//
// Each candidate line is tokenized with shlex instead of a bespoke
// splitter so that inline "# comment" suffixes and any future quoted
// fields are handled the way a shell would, rather than by ad hoc
// string surgery.
func ParseMixerBlob(blob string) (MixerSpec, error) {
	for _, line := range strings.Split(blob, "\n") {
		spec, ok := tryParseBlobLine(line)
		if ok {
			return spec, nil
		}
	}
	return MixerSpec{}, ErrMalformed
}

func tryParseBlobLine(line string) (MixerSpec, bool) {
	tokens, err := shlex.Split(line)
	if err != nil {
		return MixerSpec{}, false
	}

	tokens = stripComment(tokens)
	if len(tokens) != 9 || tokens[0] != "S:" {
		return MixerSpec{}, false
	}

	canonical := strings.Join(tokens, " ") + "\n"
	spec, err := ParseMixerLine(canonical)
	if err != nil {
		return MixerSpec{}, false
	}
	return spec, true
}

func stripComment(tokens []string) []string {
	for i, tok := range tokens {
		if strings.HasPrefix(tok, "#") {
			return tokens[:i]
		}
	}
	return tokens
}
