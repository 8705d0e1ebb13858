package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"binding-generator/internal/registry"
)

func TestGoType(t *testing.T) {
	tests := []struct {
		name string
		typ  registry.Type
		want string
	}{
		{"no value", registry.Type{}, ""},
		{"enum", registry.Type{Name: "GLenum"}, "uint32"},
		{"float pointer", registry.Type{Name: "GLfloat", Pointer: 1, Const: true}, "*float32"},
		{"string array", registry.Type{Name: "GLchar", Pointer: 2, Const: true}, "**uint8"},
		{"void pointer", registry.Type{Name: "void", Pointer: 1}, "unsafe.Pointer"},
		{"void pointer pointer", registry.Type{Name: "void", Pointer: 2}, "*unsafe.Pointer"},
		{"GLvoid pointer", registry.Type{Name: "GLvoid", Pointer: 1}, "unsafe.Pointer"},
		{"bare void", registry.Type{Name: "void"}, ""},
		{"opaque", registry.Type{Name: "cl_context", Pointer: 1, Opaque: true}, "unsafe.Pointer"},
		{"opaque value", registry.Type{Name: "cl_event", Opaque: true}, "uintptr"},
		{"sync handle", registry.Type{Name: "GLsync"}, "uintptr"},
		{"callback", registry.Type{Name: "GLDEBUGPROC"}, "uintptr"},
		{"egl image", registry.Type{Name: "GLeglImageOES"}, "unsafe.Pointer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, goType(tt.typ))
		})
	}
}

func TestConstantName(t *testing.T) {
	assert.Equal(t, "COLOR_BUFFER_BIT", constantName("GL_COLOR_BUFFER_BIT"))
	assert.Equal(t, "GL_2D", constantName("GL_2D"))
	assert.Equal(t, "GL_3_BYTES", constantName("GL_3_BYTES"))
	assert.Equal(t, "GL_", constantName("GL_"))
	assert.Equal(t, "EGL_NONE", constantName("EGL_NONE"))
}

func TestFunctionName(t *testing.T) {
	assert.Equal(t, "Clear", functionName("glClear"))
	assert.Equal(t, "GetStringi", functionName("glGetStringi"))
	assert.Equal(t, "CustomCall", functionName("customCall"))
}
