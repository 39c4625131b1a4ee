package systems

import "math"

// TubeMesh is a tessellated tube surface following a polyline path.
// Vertices and Normals are flat xyz arrays; Indices index triangles into them.
type TubeMesh struct {
	Vertices []float32
	Normals  []float32
	Indices  []uint16
}

// VertexCount returns the number of vertices in the mesh.
func (m *TubeMesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles in the mesh.
func (m *TubeMesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Empty reports whether the mesh has no geometry.
func (m *TubeMesh) Empty() bool {
	return len(m.Indices) == 0
}

// BuildTube tessellates a tube of the given radius along path, with sides
// vertices per ring. Geometry is rebuilt from scratch on every call; the
// previous mesh is discarded, never mutated.
//
// Paths with fewer than two points, or whose total direction is degenerate,
// produce an empty mesh rather than an error. rings is the number of rings
// along the path and is clamped to a minimum of 2.
func BuildTube(path []Vec3, radius float32, sides, rings int) TubeMesh {
	if len(path) < 2 || radius <= 0 || sides < 3 {
		return TubeMesh{}
	}
	if rings < 2 {
		rings = 2
	}

	axis := path[len(path)-1].Sub(path[0])
	if axis.LengthSq() == 0 {
		return TubeMesh{}
	}

	vertCount := rings * sides
	mesh := TubeMesh{
		Vertices: make([]float32, 0, vertCount*3),
		Normals:  make([]float32, 0, vertCount*3),
		Indices:  make([]uint16, 0, (rings-1)*sides*6),
	}

	for ring := 0; ring < rings; ring++ {
		t := float32(ring) / float32(rings-1)
		center := samplePath(path, t)
		tangent := pathTangent(path, t)
		side, up := tubeBasis(tangent)

		for s := 0; s < sides; s++ {
			angle := float64(s) / float64(sides) * 2 * math.Pi
			c := float32(math.Cos(angle))
			sn := float32(math.Sin(angle))

			normal := side.Scale(c).Add(up.Scale(sn))
			v := center.Add(normal.Scale(radius))

			mesh.Vertices = append(mesh.Vertices, v.X, v.Y, v.Z)
			mesh.Normals = append(mesh.Normals, normal.X, normal.Y, normal.Z)
		}
	}

	for ring := 0; ring < rings-1; ring++ {
		ringBase := uint16(ring * sides)
		nextBase := uint16((ring + 1) * sides)
		for s := 0; s < sides; s++ {
			a := ringBase + uint16(s)
			b := ringBase + uint16((s+1)%sides)
			c := nextBase + uint16(s)
			d := nextBase + uint16((s+1)%sides)
			mesh.Indices = append(mesh.Indices, a, c, b, b, c, d)
		}
	}

	return mesh
}

// samplePath returns the point at parameter t in [0, 1] along the polyline,
// by arc position across its segments.
func samplePath(path []Vec3, t float32) Vec3 {
	segs := len(path) - 1
	pos := t * float32(segs)
	i := int(pos)
	if i >= segs {
		return path[segs]
	}
	frac := pos - float32(i)
	return path[i].Add(path[i+1].Sub(path[i]).Scale(frac))
}

// pathTangent returns the unit tangent of the segment containing parameter t.
// Zero-length segments fall back to the overall path direction.
func pathTangent(path []Vec3, t float32) Vec3 {
	segs := len(path) - 1
	i := int(t * float32(segs))
	if i >= segs {
		i = segs - 1
	}
	d := path[i+1].Sub(path[i])
	if d.LengthSq() == 0 {
		d = path[len(path)-1].Sub(path[0])
	}
	return d.Normalized()
}

// tubeBasis returns two unit vectors perpendicular to the tangent and to each
// other, spanning the ring plane.
func tubeBasis(tangent Vec3) (side, up Vec3) {
	ref := Vec3{Y: 1}
	if absf(tangent.Y) > 0.99 {
		ref = Vec3{X: 1}
	}
	// Gram-Schmidt against the reference axis.
	side = ref.Sub(tangent.Scale(ref.Dot(tangent))).Normalized()
	up = Vec3{
		X: tangent.Y*side.Z - tangent.Z*side.Y,
		Y: tangent.Z*side.X - tangent.X*side.Z,
		Z: tangent.X*side.Y - tangent.Y*side.X,
	}
	return side, up
}

// absf returns the absolute value of a float32.
func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
