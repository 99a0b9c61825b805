// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// SkinnedVertexShader blends up to four bone matrices per vertex.
//
//go:embed skinned.vert
var SkinnedVertexShader string

// SkinnedFragmentShader is the fragment shader for skinned model rendering.
//
//go:embed skinned.frag
var SkinnedFragmentShader string

// LineVertexShader is the vertex shader for debug line rendering.
//
//go:embed line.vert
var LineVertexShader string

// LineFragmentShader is the fragment shader for debug line rendering.
//
//go:embed line.frag
var LineFragmentShader string
