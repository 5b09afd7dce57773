// Package renderer draws frame structures with OpenGL: edges as lines,
// nodes as points and an optional axis gizmo.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/frameview/internal/engine/renderer/shaders"
	"github.com/Faultbox/frameview/internal/engine/shader"
	"github.com/Faultbox/frameview/internal/logger"
	"github.com/Faultbox/frameview/internal/structure"
	"github.com/Faultbox/frameview/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background [3]float32
}

// Axis gizmo: unit lines along +X, +Y, +Z, drawn red, green, blue.
var (
	axisVertices = []float32{
		0, 0, 0, 1, 0, 0,
		0, 0, 0, 0, 1, 0,
		0, 0, 0, 0, 0, 1,
	}
	axisColors = [3][3]float32{
		{0.85, 0.2, 0.2},
		{0.2, 0.7, 0.2},
		{0.2, 0.3, 0.9},
	}
)

// Renderer owns the GL program and the buffers of one structure.
type Renderer struct {
	config Config

	program     uint32
	locMVP      int32
	locColor    int32
	locPoint    int32
	locRoundPts int32

	// Structure geometry
	vao, vbo, ebo uint32
	indexCount    int32
	nodeCount     int32

	// Axis gizmo
	axesVAO, axesVBO uint32
}

// New creates a renderer.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{config: cfg}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	bg := cfg.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1.0)

	var err error
	r.program, err = shader.CompileProgram(shaders.WireVertexShader, shaders.WireFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create wire program: %w", err)
	}
	r.locMVP = shader.MustGetUniform(r.program, "uMVP")
	r.locColor = shader.MustGetUniform(r.program, "uColor")
	r.locPoint = shader.MustGetUniform(r.program, "uPointSize")
	r.locRoundPts = shader.MustGetUniform(r.program, "uRoundPoints")

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.GenBuffers(1, &r.ebo)

	gl.GenVertexArrays(1, &r.axesVAO)
	gl.GenBuffers(1, &r.axesVBO)
	gl.BindVertexArray(r.axesVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.axesVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(axisVertices)*4, gl.Ptr(axisVertices), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Upload replaces the GPU copy of the structure. Safe to call again
// after a reload.
func (r *Renderer) Upload(s *structure.FrameStructure) {
	vertices := s.Vertices()
	indices := s.Indices()

	gl.BindVertexArray(r.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, slicePtr(vertices), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, slicePtr(indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	r.nodeCount = int32(s.NodeCount())
	r.indexCount = int32(len(indices))

	logger.Debug("structure uploaded",
		zap.Int32("nodes", r.nodeCount),
		zap.Int32("indices", r.indexCount),
	)
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(r.program)
}

// DrawEdges draws every edge as a line.
func (r *Renderer) DrawEdges(mvp math.Mat4, color [3]float32) {
	if r.indexCount == 0 {
		return
	}
	r.setUniforms(mvp, color, 1, false)
	gl.BindVertexArray(r.vao)
	gl.DrawElementsWithOffset(gl.LINES, r.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// DrawNodes draws every node as a round point of the given pixel size.
func (r *Renderer) DrawNodes(mvp math.Mat4, color [3]float32, size float32) {
	if r.nodeCount == 0 {
		return
	}
	r.setUniforms(mvp, color, size, true)
	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.POINTS, 0, r.nodeCount)
	gl.BindVertexArray(0)
}

// DrawAxes draws the unit axis gizmo transformed by mvp.
func (r *Renderer) DrawAxes(mvp math.Mat4) {
	gl.BindVertexArray(r.axesVAO)
	for i, c := range axisColors {
		r.setUniforms(mvp, c, 1, false)
		gl.DrawArrays(gl.LINES, int32(i*2), 2)
	}
	gl.BindVertexArray(0)
}

// ReadPixels returns the back buffer as bottom-up RGBA rows. Call it
// after drawing and before the buffers are swapped.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.UseProgram(0)
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for _, vao := range []*uint32{&r.vao, &r.axesVAO} {
		if *vao != 0 {
			gl.DeleteVertexArrays(1, vao)
		}
	}
	for _, buf := range []*uint32{&r.vbo, &r.ebo, &r.axesVBO} {
		if *buf != 0 {
			gl.DeleteBuffers(1, buf)
		}
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

func (r *Renderer) setUniforms(mvp math.Mat4, color [3]float32, pointSize float32, round bool) {
	gl.UniformMatrix4fv(r.locMVP, 1, false, mvp.Ptr())
	gl.Uniform3f(r.locColor, color[0], color[1], color[2])
	gl.Uniform1f(r.locPoint, pointSize)
	var roundFlag int32
	if round {
		roundFlag = 1
	}
	gl.Uniform1i(r.locRoundPts, roundFlag)
}

// slicePtr returns a pointer to the first element, or nil for an empty
// slice so BufferData just allocates zero bytes.
func slicePtr[T any](s []T) unsafe.Pointer {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Pointer(&s[0])
}
