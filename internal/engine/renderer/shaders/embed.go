// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// WireVertexShader transforms structure vertices by the MVP uniform.
//
//go:embed wire.vert
var WireVertexShader string

// WireFragmentShader fills lines and points with a flat color.
//
//go:embed wire.frag
var WireFragmentShader string
