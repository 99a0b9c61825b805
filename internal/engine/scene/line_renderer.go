package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/skinlab/internal/engine/scene/shaders"
	"github.com/Faultbox/skinlab/internal/engine/shader"
	"github.com/Faultbox/skinlab/pkg/math"
)

// LineRenderer draws debug line lists from a streaming buffer.
type LineRenderer struct {
	program  *shader.Program
	vao      uint32
	vbo      uint32
	capacity int
}

// NewLineRenderer compiles the line shader and creates the stream buffer.
func NewLineRenderer() (*LineRenderer, error) {
	program, err := shader.NewProgram(shaders.LineVertexShader, shaders.LineFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("line shader: %w", err)
	}
	lr := &LineRenderer{program: program}

	gl.GenVertexArrays(1, &lr.vao)
	gl.BindVertexArray(lr.vao)
	gl.GenBuffers(1, &lr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, lr.vbo)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
	return lr, nil
}

// Draw renders lines, [x, y, z] per vertex and two vertices per line.
func (lr *LineRenderer) Draw(lines []float32, viewProj math.Mat4, color [4]float32) {
	if len(lines) < 6 {
		return
	}

	gl.BindVertexArray(lr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, lr.vbo)
	if len(lines) > lr.capacity {
		gl.BufferData(gl.ARRAY_BUFFER, len(lines)*4, gl.Ptr(lines), gl.DYNAMIC_DRAW)
		lr.capacity = len(lines)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(lines)*4, gl.Ptr(lines))
	}

	lr.program.Use()
	lr.program.SetMat4("uViewProj", viewProj)
	lr.program.SetVec4("uColor", color)
	gl.DrawArrays(gl.LINES, 0, int32(len(lines)/3))
	gl.BindVertexArray(0)
}

// Destroy releases GPU resources.
func (lr *LineRenderer) Destroy() {
	gl.DeleteBuffers(1, &lr.vbo)
	gl.DeleteVertexArrays(1, &lr.vao)
	lr.program.Delete()
}
