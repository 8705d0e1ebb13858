// Package config loads the generator configuration.
//
// The file is YAML:
//
//	registry: https://raw.githubusercontent.com/KhronosGroup/OpenGL-Registry/main/xml/gl.xml
//	output: ./gl
//	package: gl
//	api: gl
//	version: "4.6"
//	profile: core
//	extensions:
//	  - GL_ARB_debug_output
//	timeout: 30s
//
// Every field is optional; missing fields take the defaults shown above.
package config
