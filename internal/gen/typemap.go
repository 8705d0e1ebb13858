package gen

import (
	"strings"
	"unicode"

	"binding-generator/internal/registry"
)

const (
	unsafePointer = "unsafe.Pointer"
	// handleType stands in for callbacks and platform handles.
	handleType = "uintptr"
)

// baseTypes maps registry base types to Go types.
var baseTypes = map[string]string{
	"GLenum":               "uint32",
	"GLboolean":            "uint8",
	"GLbitfield":           "uint32",
	"GLbyte":               "int8",
	"GLubyte":              "uint8",
	"GLshort":              "int16",
	"GLushort":             "uint16",
	"GLint":                "int32",
	"GLuint":               "uint32",
	"GLclampx":             "int32",
	"GLsizei":              "int32",
	"GLfloat":              "float32",
	"GLclampf":             "float32",
	"GLdouble":             "float64",
	"GLclampd":             "float64",
	"GLchar":               "uint8",
	"GLcharARB":            "uint8",
	"GLhalf":               "uint16",
	"GLhalfARB":            "uint16",
	"GLhalfNV":             "uint16",
	"GLfixed":              "int32",
	"GLintptr":             "int",
	"GLintptrARB":          "int",
	"GLsizeiptr":           "int",
	"GLsizeiptrARB":        "int",
	"GLint64":              "int64",
	"GLint64EXT":           "int64",
	"GLuint64":             "uint64",
	"GLuint64EXT":          "uint64",
	"GLhandleARB":          "uint32",
	"GLvdpauSurfaceNV":     "int",
	"GLsync":               handleType,
	"GLeglImageOES":        unsafePointer,
	"GLeglClientBufferEXT": unsafePointer,
}

// voidTypes have no Go value representation; pointers to them are untyped.
var voidTypes = map[string]bool{
	"void":   true,
	"GLvoid": true,
}

// goType renders a registry type as Go. Const qualification has no Go
// equivalent and is dropped.
func goType(t registry.Type) string {
	if t.IsVoid() {
		return ""
	}

	if t.Opaque && t.Pointer == 0 {
		return handleType
	}

	if voidTypes[t.Name] || t.Opaque {
		if t.Pointer == 0 {
			return ""
		}

		return strings.Repeat("*", t.Pointer-1) + unsafePointer
	}

	base, ok := baseTypes[t.Name]
	if !ok {
		base = handleType
	}

	return strings.Repeat("*", t.Pointer) + base
}

const (
	constantPrefix = "GL_"
	functionPrefix = "gl"
)

// constantName drops the GL_ prefix unless that leaves an invalid identifier.
func constantName(name string) string {
	trimmed, ok := strings.CutPrefix(name, constantPrefix)
	if !ok || trimmed == "" || unicode.IsDigit(rune(trimmed[0])) {
		return name
	}

	return trimmed
}

// functionName drops the gl prefix and exports the result.
func functionName(name string) string {
	trimmed, ok := strings.CutPrefix(name, functionPrefix)
	if !ok || trimmed == "" {
		trimmed = name
	}

	return strings.ToUpper(trimmed[:1]) + trimmed[1:]
}
