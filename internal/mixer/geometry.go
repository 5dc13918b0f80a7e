package mixer

// MaxRotors bounds the largest geometry the registry can hold, sizing
// the mixer's inline previous-output buffer so construction never
// allocates on an embedded target.
const MaxRotors = 12

// RotorDescriptor is the partial derivative of one rotor's normalized
// output with respect to each of the six command axes: roll, pitch,
// yaw, x-thrust, y-thrust, z-thrust.
type RotorDescriptor struct {
	Scale [6]float32
}

// Geometry is an immutable, ordered list of rotor descriptors for one
// airframe.
type Geometry struct {
	Key    string
	Rotors []RotorDescriptor
}

// geometryRegistry is the compiled-in, never-mutated table of airframes.
// Populated once in init(); FindGeometry never allocates.
var geometryRegistry map[string]Geometry

func init() {
	geometryRegistry = map[string]Geometry{
		"quad_x": {
			Key: "quad_x",
			Rotors: []RotorDescriptor{
				{Scale: [6]float32{-1, 1, 1, 0, 0, 1}},
				{Scale: [6]float32{1, -1, 1, 0, 0, 1}},
				{Scale: [6]float32{1, 1, -1, 0, 0, 1}},
				{Scale: [6]float32{-1, -1, -1, 0, 0, 1}},
			},
		},
		"quad_+": {
			Key: "quad_+",
			Rotors: []RotorDescriptor{
				{Scale: [6]float32{0, 1, 1, 0, 0, 1}},
				{Scale: [6]float32{1, 0, -1, 0, 0, 1}},
				{Scale: [6]float32{0, -1, 1, 0, 0, 1}},
				{Scale: [6]float32{-1, 0, -1, 0, 0, 1}},
			},
		},
		"hex_x": {
			Key: "hex_x",
			Rotors: []RotorDescriptor{
				{Scale: [6]float32{-0.5, 0.866, 1, 0, 0, 1}},
				{Scale: [6]float32{-1, 0, -1, 0, 0, 1}},
				{Scale: [6]float32{-0.5, -0.866, 1, 0, 0, 1}},
				{Scale: [6]float32{0.5, -0.866, -1, 0, 0, 1}},
				{Scale: [6]float32{1, 0, 1, 0, 0, 1}},
				{Scale: [6]float32{0.5, 0.866, -1, 0, 0, 1}},
			},
		},
		"hex_+": {
			Key: "hex_+",
			Rotors: []RotorDescriptor{
				{Scale: [6]float32{0, 1, 1, 0, 0, 1}},
				{Scale: [6]float32{-0.866, 0.5, -1, 0, 0, 1}},
				{Scale: [6]float32{-0.866, -0.5, 1, 0, 0, 1}},
				{Scale: [6]float32{0, -1, -1, 0, 0, 1}},
				{Scale: [6]float32{0.866, -0.5, 1, 0, 0, 1}},
				{Scale: [6]float32{0.866, 0.5, -1, 0, 0, 1}},
			},
		},
		// 6x_dof tilts alternating rotors slightly inward so that the
		// airframe can command nonzero lateral x thrust instead of only
		// vertical thrust, at the cost of some vertical authority. Its
		// y-thrust column is zero, so y thrust is uncontrolled.
		"6x_dof": {
			Key: "6x_dof",
			Rotors: []RotorDescriptor{
				{Scale: [6]float32{-0.5, 0.866, 1, 0.17, 0, 0.98}},
				{Scale: [6]float32{-1, 0, -1, -0.17, 0, 0.98}},
				{Scale: [6]float32{-0.5, -0.866, 1, 0.17, 0, 0.98}},
				{Scale: [6]float32{0.5, -0.866, -1, -0.17, 0, 0.98}},
				{Scale: [6]float32{1, 0, 1, 0.17, 0, 0.98}},
				{Scale: [6]float32{0.5, 0.866, -1, -0.17, 0, 0.98}},
			},
		},
		"oct_x": {
			Key: "oct_x",
			Rotors: []RotorDescriptor{
				{Scale: [6]float32{-0.38, 0.92, 1, 0, 0, 1}},
				{Scale: [6]float32{-0.92, 0.38, -1, 0, 0, 1}},
				{Scale: [6]float32{-0.92, -0.38, 1, 0, 0, 1}},
				{Scale: [6]float32{-0.38, -0.92, -1, 0, 0, 1}},
				{Scale: [6]float32{0.38, -0.92, 1, 0, 0, 1}},
				{Scale: [6]float32{0.92, -0.38, -1, 0, 0, 1}},
				{Scale: [6]float32{0.92, 0.38, 1, 0, 0, 1}},
				{Scale: [6]float32{0.38, 0.92, -1, 0, 0, 1}},
			},
		},
	}
}

// FindGeometry looks up a compiled-in airframe by key. No dynamic
// registration is supported; an unknown key returns ok=false.
func FindGeometry(key string) (Geometry, bool) {
	g, ok := geometryRegistry[key]
	return g, ok
}
