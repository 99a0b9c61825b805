package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/skinlab/internal/asset"
	"github.com/Faultbox/skinlab/internal/engine/model"
	"github.com/Faultbox/skinlab/internal/engine/scene/shaders"
	"github.com/Faultbox/skinlab/internal/engine/shader"
	"github.com/Faultbox/skinlab/internal/logger"
	"github.com/Faultbox/skinlab/pkg/math"
)

// Vertex attribute layout of model.Vertex.
const (
	vertexStride   = int32(unsafe.Sizeof(model.Vertex{}))
	offsetPosition = unsafe.Offsetof(model.Vertex{}.Position)
	offsetNormal   = unsafe.Offsetof(model.Vertex{}.Normal)
	offsetTexCoord = unsafe.Offsetof(model.Vertex{}.TexCoord)
	offsetBoneIDs  = unsafe.Offsetof(model.Vertex{}.BoneIDs)
	offsetWeights  = unsafe.Offsetof(model.Vertex{}.Weights)
)

// Sampler uniforms in texture unit order.
var samplerNames = [4]string{"uDiffuseMap", "uSpecularMap", "uEmissionMap", "uNormalMap"}

type meshBuffers struct {
	vbo uint32
	ebo uint32
}

// SkinnedRenderer draws a skinned model with its bone matrices.
type SkinnedRenderer struct {
	program  *shader.Program
	buffers  map[*model.Mesh]meshBuffers
	fallback uint32
}

// NewSkinnedRenderer compiles the skinning shader. fallback is bound when a
// mesh has no diffuse texture.
func NewSkinnedRenderer(fallback uint32) (*SkinnedRenderer, error) {
	program, err := shader.NewProgram(shaders.SkinnedVertexShader, shaders.SkinnedFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("skinned shader: %w", err)
	}
	return &SkinnedRenderer{
		program:  program,
		buffers:  make(map[*model.Mesh]meshBuffers),
		fallback: fallback,
	}, nil
}

// Upload creates GPU buffers for every mesh of m and resolves its textures.
func (sr *SkinnedRenderer) Upload(m *model.SkinnedModel, textures func(asset.TextureRef) uint32) {
	for _, mesh := range m.Meshes() {
		if mesh.Uploaded() || len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
			continue
		}
		resolveTextures(mesh, textures)
		sr.uploadMesh(mesh)
	}
	logger.Named("scene").Debug("model uploaded",
		zap.String("model", m.Name),
		zap.Int("meshes", len(m.Meshes())),
	)
}

// resolveTextures fills a mesh's texture handles from its sources.
func resolveTextures(mesh *model.Mesh, textures func(asset.TextureRef) uint32) {
	if textures == nil {
		return
	}
	src := mesh.Sources
	mesh.Textures = model.TextureSet{
		Diffuse:  textures(src.Diffuse),
		Specular: textures(src.Specular),
		Emission: textures(src.Emission),
		Normal:   textures(src.Normal),
	}
}

func (sr *SkinnedRenderer) uploadMesh(mesh *model.Mesh) {
	var vao uint32
	var buf meshBuffers
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &buf.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, buf.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*int(vertexStride), unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, offsetPosition)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexStride, offsetNormal)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, vertexStride, offsetTexCoord)
	gl.EnableVertexAttribArray(2)
	// Bone ids stay integers
	gl.VertexAttribIPointerWithOffset(3, 4, gl.INT, vertexStride, offsetBoneIDs)
	gl.EnableVertexAttribArray(3)
	// Weights
	gl.VertexAttribPointerWithOffset(4, 4, gl.FLOAT, false, vertexStride, offsetWeights)
	gl.EnableVertexAttribArray(4)

	gl.GenBuffers(1, &buf.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buf.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	mesh.GPUHandle = vao
	sr.buffers[mesh] = buf
}

// Render draws m with the current bone matrices.
func (sr *SkinnedRenderer) Render(m *model.SkinnedModel, view, projection math.Mat4, eye math.Vec3, light Lighting) {
	p := sr.program
	p.Use()
	p.SetMat4("uModel", math.Identity())
	p.SetMat4("uView", view)
	p.SetMat4("uProjection", projection)
	p.SetVec3("uViewPos", eye.Array())
	p.SetVec3("uLightDir", light.Direction)
	p.SetVec3("uAmbient", light.Ambient)
	p.SetVec3("uDiffuse", light.Diffuse)
	p.SetBool("uSkinned", m.Skinned())
	p.SetBoneTransforms(m.BoneMatrices(), model.MaxBones)

	for unit, name := range samplerNames {
		p.SetInt(name, int32(unit))
	}

	for _, mesh := range m.Meshes() {
		if !mesh.Uploaded() {
			continue
		}
		sr.bindTextures(mesh.Textures)
		gl.BindVertexArray(mesh.GPUHandle)
		gl.DrawElements(gl.TRIANGLES, mesh.IndexCount(), gl.UNSIGNED_INT, nil)
	}

	gl.BindVertexArray(0)
	gl.ActiveTexture(gl.TEXTURE0)
}

func (sr *SkinnedRenderer) bindTextures(set model.TextureSet) {
	handles := set.Handles()
	if handles[0] == 0 {
		handles[0] = sr.fallback
	}
	for unit, tex := range handles {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		gl.BindTexture(gl.TEXTURE_2D, tex)
	}
	sr.program.SetBool("uHasSpecular", set.Specular != 0)
	sr.program.SetBool("uHasEmission", set.Emission != 0)
	sr.program.SetBool("uHasNormal", set.Normal != 0)
}

// Release frees the GPU buffers of m's meshes.
func (sr *SkinnedRenderer) Release(m *model.SkinnedModel) {
	for _, mesh := range m.Meshes() {
		buf, ok := sr.buffers[mesh]
		if !ok {
			continue
		}
		gl.DeleteBuffers(1, &buf.vbo)
		gl.DeleteBuffers(1, &buf.ebo)
		gl.DeleteVertexArrays(1, &mesh.GPUHandle)
		mesh.GPUHandle = 0
		delete(sr.buffers, mesh)
	}
}

// Destroy releases the shader program.
func (sr *SkinnedRenderer) Destroy() {
	sr.program.Delete()
}
