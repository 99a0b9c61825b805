// Package debug provides debug visualization utilities.
package debug

// BoxVertexCount is the number of line vertices in a box wireframe (12 edges × 2).
const BoxVertexCount = 24

// BoxLines creates line vertices for a wireframe box, [x, y, z] per vertex.
func BoxLines(minB, maxB [3]float32) []float32 {
	return AppendBoxLines(nil, minB, maxB)
}

// AppendBoxLines appends the 24 line vertices of a box to dst.
func AppendBoxLines(dst []float32, minB, maxB [3]float32) []float32 {
	x0, y0, z0 := minB[0], minB[1], minB[2]
	x1, y1, z1 := maxB[0], maxB[1], maxB[2]
	return append(dst,
		// Bottom face
		x0, y0, z0, x1, y0, z0,
		x1, y0, z0, x1, y0, z1,
		x1, y0, z1, x0, y0, z1,
		x0, y0, z1, x0, y0, z0,
		// Top face
		x0, y1, z0, x1, y1, z0,
		x1, y1, z0, x1, y1, z1,
		x1, y1, z1, x0, y1, z1,
		x0, y1, z1, x0, y1, z0,
		// Vertical edges
		x0, y0, z0, x0, y1, z0,
		x1, y0, z0, x1, y1, z0,
		x1, y0, z1, x1, y1, z1,
		x0, y0, z1, x0, y1, z1,
	)
}

// PaddedBox grows a box by padding on every side, fixing inverted axes first.
func PaddedBox(minB, maxB [3]float32, padding float32) ([3]float32, [3]float32) {
	for i := range 3 {
		if minB[i] > maxB[i] {
			minB[i], maxB[i] = maxB[i], minB[i]
		}
		minB[i] -= padding
		maxB[i] += padding
	}
	return minB, maxB
}
