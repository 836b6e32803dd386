package city

// Vertex layout, interleaved float32:
// position(3) normal(3) color(3) uv(2) emissive(1).
const VertexStride = 12

// Mesh is a CPU-side triangle soup in chunk-local coordinates. Chunk meshes
// are built once at scene start and never touched again; only the owning
// chunk's longitudinal offset moves.
type Mesh struct {
	Verts []float32
}

func (m *Mesh) VertexCount() int {
	return len(m.Verts) / VertexStride
}

func (m *Mesh) vertex(x, y, z, nx, ny, nz, r, g, b, u, v, e float32) {
	m.Verts = append(m.Verts, x, y, z, nx, ny, nz, r, g, b, u, v, e)
}

// quad appends two triangles for the quad a-b-c-d (counter-clockwise seen
// from the normal side).
func (m *Mesh) quad(a, b, c, d [3]float32, n [3]float32, col RGB, uvs [4][2]float32, emissive float32) {
	r, g, bl := col.Vec()
	m.vertex(a[0], a[1], a[2], n[0], n[1], n[2], r, g, bl, uvs[0][0], uvs[0][1], emissive)
	m.vertex(b[0], b[1], b[2], n[0], n[1], n[2], r, g, bl, uvs[1][0], uvs[1][1], emissive)
	m.vertex(c[0], c[1], c[2], n[0], n[1], n[2], r, g, bl, uvs[2][0], uvs[2][1], emissive)
	m.vertex(a[0], a[1], a[2], n[0], n[1], n[2], r, g, bl, uvs[0][0], uvs[0][1], emissive)
	m.vertex(c[0], c[1], c[2], n[0], n[1], n[2], r, g, bl, uvs[2][0], uvs[2][1], emissive)
	m.vertex(d[0], d[1], d[2], n[0], n[1], n[2], r, g, bl, uvs[3][0], uvs[3][1], emissive)
}

var uvZero = [4][2]float32{}

// uvWall maps a wall quad to the full texture, v=0 at the ground.
var uvWall = [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// AppendQuadXZ appends a horizontal quad at height y covering
// [x0,x1] x [z0,z1], facing up.
func (m *Mesh) AppendQuadXZ(x0, z0, x1, z1, y float32, col RGB, emissive float32) {
	m.quad(
		[3]float32{x0, y, z1},
		[3]float32{x1, y, z1},
		[3]float32{x1, y, z0},
		[3]float32{x0, y, z0},
		[3]float32{0, 1, 0}, col, uvZero, emissive)
}

// AppendBox appends a flat-coloured axis-aligned box. cx/cz is the footprint
// centre, y0 the base. The bottom face is omitted (never visible).
func (m *Mesh) AppendBox(cx, y0, cz, w, h, d float32, col RGB, emissive float32) {
	m.appendBoxFaces(cx, y0, cz, w, h, d, col, col, uvZero, emissive)
}

// AppendFacadeBox appends a box whose four walls are mapped to the window
// texture (full 0..1 range, v up from the block base) and whose roof is
// flat-coloured.
func (m *Mesh) AppendFacadeBox(cx, y0, cz, w, h, d float32, roof RGB) {
	m.appendBoxFaces(cx, y0, cz, w, h, d, RGB{R: 255, G: 255, B: 255}, roof, uvWall, 0)
}

func (m *Mesh) appendBoxFaces(cx, y0, cz, w, h, d float32, wall, roof RGB, wallUV [4][2]float32, emissive float32) {
	hw := w * 0.5
	hd := d * 0.5
	x0, x1 := cx-hw, cx+hw
	z0, z1 := cz-hd, cz+hd
	y1 := y0 + h

	// +Z wall (toward camera).
	m.quad(
		[3]float32{x0, y0, z1}, [3]float32{x1, y0, z1},
		[3]float32{x1, y1, z1}, [3]float32{x0, y1, z1},
		[3]float32{0, 0, 1}, wall, wallUV, emissive)
	// -Z wall.
	m.quad(
		[3]float32{x1, y0, z0}, [3]float32{x0, y0, z0},
		[3]float32{x0, y1, z0}, [3]float32{x1, y1, z0},
		[3]float32{0, 0, -1}, wall, wallUV, emissive)
	// +X wall.
	m.quad(
		[3]float32{x1, y0, z1}, [3]float32{x1, y0, z0},
		[3]float32{x1, y1, z0}, [3]float32{x1, y1, z1},
		[3]float32{1, 0, 0}, wall, wallUV, emissive)
	// -X wall.
	m.quad(
		[3]float32{x0, y0, z0}, [3]float32{x0, y0, z1},
		[3]float32{x0, y1, z1}, [3]float32{x0, y1, z0},
		[3]float32{-1, 0, 0}, wall, wallUV, emissive)
	// Roof.
	m.quad(
		[3]float32{x0, y1, z1}, [3]float32{x1, y1, z1},
		[3]float32{x1, y1, z0}, [3]float32{x0, y1, z0},
		[3]float32{0, 1, 0}, roof, uvZero, emissive)
}
