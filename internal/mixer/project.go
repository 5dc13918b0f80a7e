package mixer

// projectionEpsilon guards the line-search division. Below this
// magnitude, |u.b| is treated as orthogonal to the attempted step and
// the rotor constraint is skipped for this sweep.
const projectionEpsilon = 1e-6

// priorityGroups lists, in descending priority, which command axes are
// handed their desired value first. Vertical thrust goes first, then
// roll/pitch, then yaw, then lateral thrust — losing lateral authority
// before attitude authority under saturation.
var priorityGroups = [4][6]bool{
	{false, false, false, false, false, true},
	{true, true, false, false, false, false},
	{false, false, true, false, false, false},
	{false, false, false, true, true, false},
}

// clipCommand projects desired onto the feasible polytope defined by
// outMin <= rotor.Scale . y <= outMax for every rotor, honoring
// priorityGroups in order. The starting baseline is the zero vector,
// which satisfies every rotor constraint only when outMin <= 0; with a
// positive outMin (idle speed) it lies outside the feasible set.
func clipCommand(desired Command, rotors []RotorDescriptor, outMin, outMax float32) Command {
	var baseline Command

	for _, axes := range priorityGroups {
		candidate := baseline
		for j := 0; j < 6; j++ {
			if axes[j] {
				candidate[j] = desired[j]
			}
		}

		var u Command
		for j := 0; j < 6; j++ {
			u[j] = candidate[j] - baseline[j]
		}

		for i := range rotors {
			b := rotors[i].Scale
			out := candidate.Dot(b)

			if out > outMax {
				candidate = projectOntoFace(baseline, candidate, u, b, outMax)
			} else if out < outMin {
				candidate = projectOntoFace(baseline, candidate, u, b, outMin)
			}
		}

		baseline = candidate
	}

	return baseline
}

// projectOntoFace pulls candidate back toward baseline along u so that
// it lands on the violated half-space's boundary face, if that's
// possible within a single step (k in [0,1]); otherwise candidate is
// left unchanged and that rotor's constraint is not revisited for this
// priority group.
func projectOntoFace(baseline, candidate, u Command, b [6]float32, bound float32) Command {
	ub := u.Dot(b)
	if abs32(ub) <= projectionEpsilon {
		return candidate
	}

	k := (bound - baseline.Dot(b)) / ub
	if k < 0 || k > 1 {
		return candidate
	}

	var out Command
	for j := 0; j < 6; j++ {
		out[j] = baseline[j] + k*u[j]
	}
	return out
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
