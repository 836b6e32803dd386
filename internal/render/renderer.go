package render

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/kpab/nightwalk/internal/city"
	"github.com/kpab/nightwalk/internal/scene"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

type drawRange struct {
	first, count int32
}

type facadeDraw struct {
	tex uint32
	drawRange
}

// chunkGPU is the uploaded form of one chunk: a single interleaved VBO with
// one flat-coloured range (ground, clutter, beacons) and one textured range
// per building facade. Uploaded once; recycling never touches it.
type chunkGPU struct {
	chunk   *city.Chunk
	vao     uint32
	vbo     uint32
	solid   drawRange
	facades []facadeDraw
}

// Renderer is the OpenGL 4.1 core backend. Frames render into an offscreen
// target sized by the quality controller's pixel ratio, then blit to the
// default framebuffer.
type Renderer struct {
	width  int
	height int
	ratio  float64

	solidProg  uint32
	facadeProg uint32

	sView, sProj, sChunkZ          int32
	sFogColor, sFogDensity         int32
	sAmbient, sMoonDir, sMoonColor int32
	sFillPos, sFillColor, sTime    int32
	fView, fProj, fChunkZ, fTex    int32
	fFogColor, fFogDensity         int32
	fAmbient, fMoonDir, fMoonColor int32
	fFillPos, fFillColor           int32

	chunks []chunkGPU

	fbo      uint32
	colorTex uint32
	depthRBO uint32
	fbW, fbH int32
}

// New initializes GL bindings and compiles the city programs. An error here
// means no usable context; the scene treats that as the fallback path.
func New(w, h int, pixelRatio float64) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}

	solidProg, err := linkProgram(cityVertSrc, solidFragSrc)
	if err != nil {
		return nil, fmt.Errorf("solid program: %w", err)
	}
	facadeProg, err := linkProgram(cityVertSrc, facadeFragSrc)
	if err != nil {
		gl.DeleteProgram(solidProg)
		return nil, fmt.Errorf("facade program: %w", err)
	}

	r := &Renderer{
		width:      w,
		height:     h,
		ratio:      pixelRatio,
		solidProg:  solidProg,
		facadeProg: facadeProg,
	}

	uni := func(prog uint32, name string) int32 {
		return gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
	}
	r.sView = uni(solidProg, "uView")
	r.sProj = uni(solidProg, "uProj")
	r.sChunkZ = uni(solidProg, "uChunkZ")
	r.sFogColor = uni(solidProg, "uFogColor")
	r.sFogDensity = uni(solidProg, "uFogDensity")
	r.sAmbient = uni(solidProg, "uAmbient")
	r.sMoonDir = uni(solidProg, "uMoonDir")
	r.sMoonColor = uni(solidProg, "uMoonColor")
	r.sFillPos = uni(solidProg, "uFillPos")
	r.sFillColor = uni(solidProg, "uFillColor")
	r.sTime = uni(solidProg, "uTime")

	r.fView = uni(facadeProg, "uView")
	r.fProj = uni(facadeProg, "uProj")
	r.fChunkZ = uni(facadeProg, "uChunkZ")
	r.fTex = uni(facadeProg, "uTex")
	r.fFogColor = uni(facadeProg, "uFogColor")
	r.fFogDensity = uni(facadeProg, "uFogDensity")
	r.fAmbient = uni(facadeProg, "uAmbient")
	r.fMoonDir = uni(facadeProg, "uMoonDir")
	r.fMoonColor = uni(facadeProg, "uMoonColor")
	r.fFillPos = uni(facadeProg, "uFillPos")
	r.fFillColor = uni(facadeProg, "uFillColor")

	gl.UseProgram(facadeProg)
	gl.Uniform1i(r.fTex, 0)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	if err := r.createTarget(); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

// createTarget (re)builds the offscreen colour+depth target at the current
// logical size times the pixel ratio.
func (r *Renderer) createTarget() error {
	r.destroyTarget()

	fbW := int32(float64(r.width) * r.ratio)
	fbH := int32(float64(r.height) * r.ratio)
	if fbW < 1 {
		fbW = 1
	}
	if fbH < 1 {
		fbH = 1
	}
	r.fbW, r.fbH = fbW, fbH

	gl.GenFramebuffers(1, &r.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, r.fbo)

	gl.GenTextures(1, &r.colorTex)
	gl.BindTexture(gl.TEXTURE_2D, r.colorTex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, fbW, fbH, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, r.colorTex, 0)

	gl.GenRenderbuffers(1, &r.depthRBO)
	gl.BindRenderbuffer(gl.RENDERBUFFER, r.depthRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, fbW, fbH)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, r.depthRBO)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}
	return nil
}

func (r *Renderer) destroyTarget() {
	if r.depthRBO != 0 {
		gl.DeleteRenderbuffers(1, &r.depthRBO)
		r.depthRBO = 0
	}
	if r.colorTex != 0 {
		gl.DeleteTextures(1, &r.colorTex)
		r.colorTex = 0
	}
	if r.fbo != 0 {
		gl.DeleteFramebuffers(1, &r.fbo)
		r.fbo = 0
	}
}

// UploadChunks pushes every chunk's geometry and facade textures to the GPU.
// Called once at scene start; chunk contents never change afterwards.
func (r *Renderer) UploadChunks(chunks []*city.Chunk) error {
	for _, c := range chunks {
		g := chunkGPU{chunk: c}

		var verts []float32
		verts = append(verts, c.Ground.Verts...)
		for _, b := range c.Buildings {
			verts = append(verts, b.SolidMesh.Verts...)
		}
		g.solid = drawRange{first: 0, count: int32(len(verts) / city.VertexStride)}

		for _, b := range c.Buildings {
			fd := facadeDraw{
				tex: uploadWindowTexture(b.Facade),
				drawRange: drawRange{
					first: int32(len(verts) / city.VertexStride),
					count: int32(b.FacadeMesh.VertexCount()),
				},
			}
			verts = append(verts, b.FacadeMesh.Verts...)
			g.facades = append(g.facades, fd)
		}

		gl.GenVertexArrays(1, &g.vao)
		gl.GenBuffers(1, &g.vbo)
		gl.BindVertexArray(g.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)

		stride := int32(city.VertexStride * 4)
		gl.EnableVertexAttribArray(0)
		gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, glOffset(0))
		gl.EnableVertexAttribArray(1)
		gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, glOffset(3*4))
		gl.EnableVertexAttribArray(2)
		gl.VertexAttribPointer(2, 3, gl.FLOAT, false, stride, glOffset(6*4))
		gl.EnableVertexAttribArray(3)
		gl.VertexAttribPointer(3, 2, gl.FLOAT, false, stride, glOffset(9*4))
		gl.EnableVertexAttribArray(4)
		gl.VertexAttribPointer(4, 1, gl.FLOAT, false, stride, glOffset(11*4))

		r.chunks = append(r.chunks, g)
	}
	gl.BindVertexArray(0)
	return nil
}

func uploadWindowTexture(t *city.WindowTexture) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(
		gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(t.W), int32(t.H), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(t.Pix),
	)
	return tex
}

// DrawFrame renders one frame into the offscreen target and blits it to the
// default framebuffer.
func (r *Renderer) DrawFrame(f *scene.Frame) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, r.fbo)
	gl.Viewport(0, 0, r.fbW, r.fbH)

	skyR, skyG, skyB := f.Sky.Vec()
	gl.ClearColor(skyR, skyG, skyB, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	fogR, fogG, fogB := f.FogColor.Vec()
	moonR, moonG, moonB := f.MoonColor.Vec()
	fillR, fillG, fillB := f.FillColor.Vec()

	view := f.View
	proj := f.Proj

	// Solid pass: ground, roof clutter, beacons.
	gl.UseProgram(r.solidProg)
	gl.UniformMatrix4fv(r.sView, 1, false, &view[0])
	gl.UniformMatrix4fv(r.sProj, 1, false, &proj[0])
	gl.Uniform3f(r.sFogColor, fogR, fogG, fogB)
	gl.Uniform1f(r.sFogDensity, f.FogDensity)
	gl.Uniform1f(r.sAmbient, f.Ambient)
	gl.Uniform3f(r.sMoonDir, f.MoonDir.X(), f.MoonDir.Y(), f.MoonDir.Z())
	gl.Uniform3f(r.sMoonColor, moonR, moonG, moonB)
	gl.Uniform3f(r.sFillPos, f.FillPos.X(), f.FillPos.Y(), f.FillPos.Z())
	gl.Uniform3f(r.sFillColor, fillR, fillG, fillB)
	gl.Uniform1f(r.sTime, f.Time)

	for i := range r.chunks {
		g := &r.chunks[i]
		gl.BindVertexArray(g.vao)
		gl.Uniform1f(r.sChunkZ, float32(g.chunk.Offset))
		gl.DrawArrays(gl.TRIANGLES, g.solid.first, g.solid.count)
	}

	// Facade pass: textured walls, one texture bind per building.
	gl.UseProgram(r.facadeProg)
	gl.UniformMatrix4fv(r.fView, 1, false, &view[0])
	gl.UniformMatrix4fv(r.fProj, 1, false, &proj[0])
	gl.Uniform3f(r.fFogColor, fogR, fogG, fogB)
	gl.Uniform1f(r.fFogDensity, f.FogDensity)
	gl.Uniform1f(r.fAmbient, f.Ambient)
	gl.Uniform3f(r.fMoonDir, f.MoonDir.X(), f.MoonDir.Y(), f.MoonDir.Z())
	gl.Uniform3f(r.fMoonColor, moonR, moonG, moonB)
	gl.Uniform3f(r.fFillPos, f.FillPos.X(), f.FillPos.Y(), f.FillPos.Z())
	gl.Uniform3f(r.fFillColor, fillR, fillG, fillB)
	gl.ActiveTexture(gl.TEXTURE0)

	for i := range r.chunks {
		g := &r.chunks[i]
		gl.BindVertexArray(g.vao)
		gl.Uniform1f(r.fChunkZ, float32(g.chunk.Offset))
		for _, fd := range g.facades {
			gl.BindTexture(gl.TEXTURE_2D, fd.tex)
			gl.DrawArrays(gl.TRIANGLES, fd.first, fd.count)
		}
	}
	gl.BindVertexArray(0)

	// Scale up to the window.
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, r.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(
		0, 0, r.fbW, r.fbH,
		0, 0, int32(r.width), int32(r.height),
		gl.COLOR_BUFFER_BIT, gl.LINEAR,
	)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Resize adapts the blit destination and rebuilds the offscreen target.
func (r *Renderer) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	r.width, r.height = w, h
	if err := r.createTarget(); err != nil {
		fmt.Fprintf(os.Stderr, "resize target: %v\n", err)
	}
}

// SetPixelRatio rebuilds the offscreen target at the new density. This is
// the quality controller's only lever.
func (r *Renderer) SetPixelRatio(ratio float64) {
	if ratio <= 0 || ratio == r.ratio {
		return
	}
	r.ratio = ratio
	if err := r.createTarget(); err != nil {
		fmt.Fprintf(os.Stderr, "pixel ratio target: %v\n", err)
	}
}

// Close releases every GL object the renderer owns. Safe on a partially
// constructed renderer: all handles are zero-checked.
func (r *Renderer) Close() {
	for i := range r.chunks {
		g := &r.chunks[i]
		for _, fd := range g.facades {
			if fd.tex != 0 {
				tex := fd.tex
				gl.DeleteTextures(1, &tex)
			}
		}
		if g.vbo != 0 {
			gl.DeleteBuffers(1, &g.vbo)
		}
		if g.vao != 0 {
			gl.DeleteVertexArrays(1, &g.vao)
		}
	}
	r.chunks = nil
	r.destroyTarget()
	for _, p := range []uint32{r.solidProg, r.facadeProg} {
		if p != 0 {
			gl.DeleteProgram(p)
		}
	}
	r.solidProg, r.facadeProg = 0, 0
}
