package debug

// Cube is an axis-aligned collision cube.
type Cube struct {
	Center [3]float32
	Half   float32
}

// Min returns the lower corner.
func (c Cube) Min() [3]float32 {
	return [3]float32{c.Center[0] - c.Half, c.Center[1] - c.Half, c.Center[2] - c.Half}
}

// Max returns the upper corner.
func (c Cube) Max() [3]float32 {
	return [3]float32{c.Center[0] + c.Half, c.Center[1] + c.Half, c.Center[2] + c.Half}
}

// Contact is a collision between two cubes of a set.
type Contact struct {
	A, B  int
	Depth float32
}

// CubeSet carries the collision cubes of one scene. The viewer owns one and
// passes it to the line renderer; there is no package-level cube state.
type CubeSet struct {
	cubes []Cube
	lines []float32
	dirty bool
}

// NewCubeSet creates an empty set.
func NewCubeSet() *CubeSet {
	return &CubeSet{}
}

// Add appends a cube and returns its index.
func (s *CubeSet) Add(center [3]float32, half float32) int {
	s.cubes = append(s.cubes, Cube{Center: center, Half: half})
	s.dirty = true
	return len(s.cubes) - 1
}

// Move repositions a cube. Unknown indices are ignored.
func (s *CubeSet) Move(i int, center [3]float32) {
	if i < 0 || i >= len(s.cubes) {
		return
	}
	s.cubes[i].Center = center
	s.dirty = true
}

// Len returns the number of cubes.
func (s *CubeSet) Len() int {
	return len(s.cubes)
}

// Cubes returns the cubes of the set.
func (s *CubeSet) Cubes() []Cube {
	return s.cubes
}

// Clear removes every cube.
func (s *CubeSet) Clear() {
	s.cubes = s.cubes[:0]
	s.dirty = true
}

// Lines returns the wireframe of every cube, rebuilt only after a change.
func (s *CubeSet) Lines() []float32 {
	if s.dirty || (s.lines == nil && len(s.cubes) > 0) {
		s.lines = s.lines[:0]
		for _, c := range s.cubes {
			s.lines = AppendBoxLines(s.lines, c.Min(), c.Max())
		}
		s.dirty = false
	}
	return s.lines
}

// Collide tests the set for overlapping cubes.
// TODO: resolve overlaps with a separating-axis test; it reports no contacts for now.
func (s *CubeSet) Collide() []Contact {
	return nil
}
