// Package ui2d draws flat 2D overlays (panels, buttons, labels) with OpenGL.
package ui2d

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gotham-story/internal/engine/shader"
	"github.com/Faultbox/gotham-story/internal/engine/texture"
)

const (
	solidStride    = 6 // x, y, r, g, b, a
	texturedStride = 8 // x, y, u, v, r, g, b, a
)

type imageBatch struct {
	img      *image.RGBA
	vertices []float32
}

// Renderer queues quads between Begin and End and draws them in one pass:
// solid quads first, images on top.
type Renderer struct {
	width, height int

	solidShader *shader.Program
	imageShader *shader.Program

	solidVAO, solidVBO uint32
	imageVAO, imageVBO uint32

	solidVertices []float32
	images        []imageBatch

	// Images are uploaded on first draw and kept for the renderer's lifetime.
	textures map[*image.RGBA]*texture.Texture
}

// New creates the overlay renderer. Requires a current GL context.
func New() (*Renderer, error) {
	r := &Renderer{
		solidVertices: make([]float32, 0, 1024),
		textures:      make(map[*image.RGBA]*texture.Texture),
	}

	var err error
	r.solidShader, err = shader.Compile("ui2d solid", solidVertexShader, solidFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("create solid shader: %w", err)
	}
	r.imageShader, err = shader.Compile("ui2d image", imageVertexShader, imageFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("create image shader: %w", err)
	}

	r.solidVAO, r.solidVBO = createBuffers(solidStride, []int32{2, 4})
	r.imageVAO, r.imageVBO = createBuffers(texturedStride, []int32{2, 2, 4})
	return r, nil
}

// createBuffers makes a VAO/VBO pair with consecutive float attributes of
// the given sizes.
func createBuffers(stride int, sizes []int32) (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	offset := 0
	for i, size := range sizes {
		gl.VertexAttribPointerWithOffset(uint32(i), size, gl.FLOAT, false, int32(stride*4), uintptr(offset*4))
		gl.EnableVertexAttribArray(uint32(i))
		offset += int(size)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return vao, vbo
}

// Close releases renderer resources.
func (r *Renderer) Close() {
	for img, t := range r.textures {
		t.Delete()
		delete(r.textures, img)
	}
	gl.DeleteVertexArrays(1, &r.solidVAO)
	gl.DeleteBuffers(1, &r.solidVBO)
	gl.DeleteVertexArrays(1, &r.imageVAO)
	gl.DeleteBuffers(1, &r.imageVBO)
	r.solidShader.Delete()
	r.imageShader.Delete()
}

// Begin starts a new overlay for a drawable of the given size.
func (r *Renderer) Begin(width, height int) {
	r.width, r.height = width, height
	r.solidVertices = r.solidVertices[:0]
	r.images = r.images[:0]
}

// DrawRect queues a filled rectangle.
func (r *Renderer) DrawRect(rect image.Rectangle, c Color) {
	r.solidVertices = appendQuad(r.solidVertices, rect, nil, c)
}

// DrawRectOutline queues a rectangle border of the given thickness.
func (r *Renderer) DrawRectOutline(rect image.Rectangle, thickness int, c Color) {
	t := thickness
	r.DrawRect(image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+t), c)
	r.DrawRect(image.Rect(rect.Min.X, rect.Max.Y-t, rect.Max.X, rect.Max.Y), c)
	r.DrawRect(image.Rect(rect.Min.X, rect.Min.Y+t, rect.Min.X+t, rect.Max.Y-t), c)
	r.DrawRect(image.Rect(rect.Max.X-t, rect.Min.Y+t, rect.Max.X, rect.Max.Y-t), c)
}

// DrawPanel queues a filled rectangle with a 1px border.
func (r *Renderer) DrawPanel(rect image.Rectangle, bg, border Color) {
	r.DrawRect(rect, bg)
	r.DrawRectOutline(rect, 1, border)
}

// DrawImage queues img stretched over rect, multiplied by tint.
func (r *Renderer) DrawImage(rect image.Rectangle, img *image.RGBA, tint Color) {
	uv := [4]float32{0, 0, 1, 1}
	for i := range r.images {
		if r.images[i].img == img {
			r.images[i].vertices = appendQuad(r.images[i].vertices, rect, &uv, tint)
			return
		}
	}
	r.images = append(r.images, imageBatch{img: img, vertices: appendQuad(nil, rect, &uv, tint)})
}

// DrawImageAt queues img at its natural size with its top-left corner at p.
func (r *Renderer) DrawImageAt(p image.Point, img *image.RGBA, tint Color) {
	r.DrawImage(image.Rectangle{Min: p, Max: p.Add(img.Bounds().Size())}, img, tint)
}

// appendQuad appends two triangles covering rect. Textured quads pass uv as
// u0, v0, u1, v1.
func appendQuad(dst []float32, rect image.Rectangle, uv *[4]float32, c Color) []float32 {
	x0, y0 := float32(rect.Min.X), float32(rect.Min.Y)
	x1, y1 := float32(rect.Max.X), float32(rect.Max.Y)

	if uv == nil {
		return append(dst,
			x0, y0, c.R, c.G, c.B, c.A,
			x1, y0, c.R, c.G, c.B, c.A,
			x1, y1, c.R, c.G, c.B, c.A,
			x0, y0, c.R, c.G, c.B, c.A,
			x1, y1, c.R, c.G, c.B, c.A,
			x0, y1, c.R, c.G, c.B, c.A,
		)
	}
	u0, v0, u1, v1 := uv[0], uv[1], uv[2], uv[3]
	return append(dst,
		x0, y0, u0, v0, c.R, c.G, c.B, c.A,
		x1, y0, u1, v0, c.R, c.G, c.B, c.A,
		x1, y1, u1, v1, c.R, c.G, c.B, c.A,
		x0, y0, u0, v0, c.R, c.G, c.B, c.A,
		x1, y1, u1, v1, c.R, c.G, c.B, c.A,
		x0, y1, u0, v1, c.R, c.G, c.B, c.A,
	)
}

// End draws everything queued since Begin.
func (r *Renderer) End() {
	if len(r.solidVertices) == 0 && len(r.images) == 0 {
		return
	}

	gl.Viewport(0, 0, int32(r.width), int32(r.height))
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	proj := mgl32.Ortho2D(0, float32(r.width), float32(r.height), 0)

	if len(r.solidVertices) > 0 {
		r.solidShader.Use()
		r.solidShader.SetMat4("uProjection", proj)
		drawVertices(r.solidVAO, r.solidVBO, r.solidVertices, solidStride)
	}

	if len(r.images) > 0 {
		r.imageShader.Use()
		r.imageShader.SetMat4("uProjection", proj)
		r.imageShader.SetInt("uTexture", 0)
		gl.ActiveTexture(gl.TEXTURE0)
		for _, b := range r.images {
			gl.BindTexture(gl.TEXTURE_2D, r.texture(b.img).ID)
			drawVertices(r.imageVAO, r.imageVBO, b.vertices, texturedStride)
		}
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}

	gl.BindVertexArray(0)
	gl.UseProgram(0)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

func drawVertices(vao, vbo uint32, vertices []float32, stride int) {
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(vertices)/stride))
}

func (r *Renderer) texture(img *image.RGBA) *texture.Texture {
	if t, ok := r.textures[img]; ok {
		return t
	}
	t := texture.Upload(img)
	r.textures[img] = t
	return t
}

const solidVertexShader = `
#version 410 core

layout (location = 0) in vec2 aPos;
layout (location = 1) in vec4 aColor;

uniform mat4 uProjection;

out vec4 vColor;

void main() {
    gl_Position = uProjection * vec4(aPos, 0.0, 1.0);
    vColor = aColor;
}
`

const solidFragmentShader = `
#version 410 core

in vec4 vColor;
out vec4 FragColor;

void main() {
    FragColor = vColor;
}
`

const imageVertexShader = `
#version 410 core

layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aTexCoord;
layout (location = 2) in vec4 aColor;

uniform mat4 uProjection;

out vec2 vTexCoord;
out vec4 vColor;

void main() {
    gl_Position = uProjection * vec4(aPos, 0.0, 1.0);
    vTexCoord = aTexCoord;
    vColor = aColor;
}
`

const imageFragmentShader = `
#version 410 core

uniform sampler2D uTexture;

in vec2 vTexCoord;
in vec4 vColor;
out vec4 FragColor;

void main() {
    FragColor = texture(uTexture, vTexCoord) * vColor;
}
`
