// Package renderer draws scene graphs with OpenGL.
package renderer

import (
	"fmt"
	"image"
	"slices"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/gotham-story/internal/engine/mesh"
	"github.com/Faultbox/gotham-story/internal/engine/shader"
	"github.com/Faultbox/gotham-story/internal/engine/shadow"
	"github.com/Faultbox/gotham-story/internal/logger"
	"github.com/Faultbox/gotham-story/internal/scene"
)

// Stats counts the work done since the last BeginFrame.
type Stats struct {
	Scenes      int
	DrawCalls   int
	ShadowCalls int
	Triangles   int
}

type gpuMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// Renderer uploads meshes on first use and draws scenes into viewports.
// IMPORTANT: must be created after the OpenGL context.
type Renderer struct {
	program *shader.Program
	depth   *shader.Program
	meshes  map[*mesh.Mesh]*gpuMesh

	shadowMap  *shadow.Map
	shadowsOff bool

	width, height int
	stats         Stats

	log *zap.Logger
}

// New initializes OpenGL and compiles the mesh shader.
func New() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	log := logger.Named("renderer")
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	program, err := shader.Compile("mesh", meshVertexShader, meshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("compiling mesh shader: %w", err)
	}
	depth, err := shader.Compile("shadow depth", depthVertexShader, depthFragmentShader)
	if err != nil {
		program.Delete()
		return nil, fmt.Errorf("compiling depth shader: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	return &Renderer{
		program: program,
		depth:   depth,
		meshes:  make(map[*mesh.Mesh]*gpuMesh),
		log:     log,
	}, nil
}

// Close releases all GPU resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer", zap.Int("meshes", len(r.meshes)))
	for m, g := range r.meshes {
		gl.DeleteVertexArrays(1, &g.vao)
		gl.DeleteBuffers(1, &g.vbo)
		gl.DeleteBuffers(1, &g.ebo)
		delete(r.meshes, m)
	}
	if r.shadowMap != nil {
		r.shadowMap.Destroy()
	}
	r.program.Delete()
	r.depth.Delete()
}

// BeginFrame clears the whole drawable to color and resets the stats.
func (r *Renderer) BeginFrame(width, height int, color mgl32.Vec3) {
	r.width, r.height = width, height
	r.stats = Stats{}

	gl.Disable(gl.SCISSOR_TEST)
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(color[0], color[1], color[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Stats returns the counters for the current frame.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// RenderScene draws sc as seen by cam into area, given in top-left origin
// drawable pixels. Opaque scenes clear the area to their background first.
func (r *Renderer) RenderScene(sc *scene.Scene, cam *scene.Camera, area image.Rectangle) {
	if area.Empty() {
		return
	}
	r.stats.Scenes++

	lightSpace, shadowLight := r.shadowPass(sc)

	x, y := int32(area.Min.X), int32(r.height-area.Max.Y)
	w, h := int32(area.Dx()), int32(area.Dy())
	gl.Viewport(x, y, w, h)
	gl.Scissor(x, y, w, h)
	gl.Enable(gl.SCISSOR_TEST)
	defer gl.Disable(gl.SCISSOR_TEST)

	if sc.Transparent {
		gl.Clear(gl.DEPTH_BUFFER_BIT)
	} else {
		bg := sc.Background
		gl.ClearColor(bg[0], bg[1], bg[2], 1)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	}

	gl.Enable(gl.DEPTH_TEST)
	p := r.program
	p.Use()
	p.SetMat4("uView", cam.View())
	p.SetMat4("uProjection", cam.Projection())
	p.SetVec3("uCameraPos", cam.Position)
	r.setLights(sc)

	p.SetMat4("uLightSpace", lightSpace)
	p.SetBool("uShadowEnabled", shadowLight >= 0)
	p.SetInt("uShadowLight", shadowLight)
	p.SetInt("uShadowMap", 1)
	if shadowLight >= 0 {
		r.shadowMap.BindTexture(gl.TEXTURE1)
		gl.ActiveTexture(gl.TEXTURE0)
	}

	sc.Root.Walk(func(n *scene.Node, world mgl32.Mat4) {
		if n.Mesh == nil || n.Material == nil || len(n.Mesh.Indices) == 0 {
			return
		}
		r.drawNode(n, world)
	})

	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// shadowPass renders the depth map of the scene's shadow caster. It returns
// the light-space matrix and the caster's light index, or -1 when the scene
// has no usable caster.
func (r *Renderer) shadowPass(sc *scene.Scene) (mgl32.Mat4, int32) {
	caster := sc.ShadowCaster()
	if caster == nil || r.shadowsOff {
		return mgl32.Ident4(), -1
	}
	index := slices.Index(sc.Directional, caster)
	if index >= maxLights {
		return mgl32.Ident4(), -1
	}

	sm, err := r.shadowMapFor(caster.Shadow.MapSize)
	if err != nil {
		r.log.Warn("shadows disabled", zap.Error(err))
		r.shadowsOff = true
		return mgl32.Ident4(), -1
	}

	sh := caster.Shadow
	lightSpace := shadow.LightMatrix(caster.Position, mgl32.Vec3{}, shadow.Ortho{
		Left: sh.Left, Right: sh.Right, Bottom: sh.Bottom, Top: sh.Top,
		Near: sh.Near, Far: sh.Far,
	})

	sm.Bind()
	r.depth.Use()
	r.depth.SetMat4("uLightSpace", lightSpace)
	sc.Root.Walk(func(n *scene.Node, world mgl32.Mat4) {
		if !n.CastShadow || n.Mesh == nil || len(n.Mesh.Indices) == 0 {
			return
		}
		g := r.upload(n.Mesh)
		r.depth.SetMat4("uModel", world)
		gl.BindVertexArray(g.vao)
		gl.DrawElementsWithOffset(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, 0)
		r.stats.ShadowCalls++
	})
	sm.Unbind()

	return lightSpace, int32(index)
}

// shadowMapFor returns a shadow map of the given size, reallocating when the
// size changes.
func (r *Renderer) shadowMapFor(size int32) (*shadow.Map, error) {
	if size <= 0 {
		size = shadow.DefaultResolution
	}
	if r.shadowMap.IsValid() && r.shadowMap.Resolution == size {
		return r.shadowMap, nil
	}
	if r.shadowMap != nil {
		r.shadowMap.Destroy()
		r.shadowMap = nil
	}
	sm, err := shadow.NewMap(size)
	if err != nil {
		return nil, err
	}
	r.shadowMap = sm
	r.log.Debug("shadow map allocated", zap.Int32("size", sm.Resolution))
	return sm, nil
}

func (r *Renderer) setLights(sc *scene.Scene) {
	p := r.program
	p.SetVec3("uAmbient", sc.Ambient.Color.Mul(sc.Ambient.Intensity))

	count := len(sc.Directional)
	if count > maxLights {
		count = maxLights
	}
	dirs := make([]float32, 0, maxLights*3)
	colors := make([]float32, 0, maxLights*3)
	for _, l := range sc.Directional[:count] {
		d := l.Direction()
		c := l.Color.Mul(l.Intensity)
		dirs = append(dirs, d[0], d[1], d[2])
		colors = append(colors, c[0], c[1], c[2])
	}
	p.SetInt("uLightCount", int32(count))
	if count > 0 {
		gl.Uniform3fv(p.Uniform("uLightDir[0]"), int32(count), &dirs[0])
		gl.Uniform3fv(p.Uniform("uLightColor[0]"), int32(count), &colors[0])
	}

	if hemi := sc.Hemisphere; hemi != nil {
		p.SetBool("uHemiEnabled", true)
		p.SetVec3("uHemiSky", hemi.Sky.Mul(hemi.Intensity))
		p.SetVec3("uHemiGround", hemi.Ground.Mul(hemi.Intensity))
	} else {
		p.SetBool("uHemiEnabled", false)
	}

	p.SetBool("uFogEnabled", sc.Fog.Enabled)
	if sc.Fog.Enabled {
		p.SetVec3("uFogColor", sc.Fog.Color)
		p.SetFloat("uFogNear", sc.Fog.Near)
		p.SetFloat("uFogFar", sc.Fog.Far)
	}
}

func (r *Renderer) drawNode(n *scene.Node, world mgl32.Mat4) {
	g := r.upload(n.Mesh)
	mat := n.Material
	p := r.program

	p.SetMat4("uModel", world)
	p.SetMat3("uNormalMatrix", NormalMatrix(world))
	p.SetVec3("uColor", mat.Color)
	p.SetVec3("uEmissive", mat.Emissive)
	p.SetFloat("uMetalness", mat.Metalness)
	p.SetFloat("uRoughness", mat.Roughness)
	p.SetBool("uUnlit", mat.Unlit)
	p.SetBool("uReceiveShadow", n.ReceiveShadow)

	if mat.DoubleSided {
		gl.Disable(gl.CULL_FACE)
	} else {
		gl.Enable(gl.CULL_FACE)
	}

	gl.BindVertexArray(g.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, 0)

	r.stats.DrawCalls++
	r.stats.Triangles += int(g.indexCount) / 3
}

// upload returns the GPU buffers for m, creating them on first use.
func (r *Renderer) upload(m *mesh.Mesh) *gpuMesh {
	if g, ok := r.meshes[m]; ok {
		return g
	}

	g := &gpuMesh{indexCount: int32(len(m.Indices))}
	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	vertexSize := int(unsafe.Sizeof(mesh.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*vertexSize, unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	r.meshes[m] = g

	r.log.Debug("mesh uploaded",
		zap.String("name", m.Name),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("triangles", m.TriangleCount()),
	)
	return g
}

// NormalMatrix returns the inverse transpose of the upper 3x3 of model, which
// keeps normals perpendicular under non-uniform scale.
func NormalMatrix(model mgl32.Mat4) mgl32.Mat3 {
	m := model.Mat3()
	if m.Det() == 0 {
		return mgl32.Ident3()
	}
	return m.Inv().Transpose()
}
