// Package match suggests registry names close to a misspelled one.
//
// Names are compared after dropping the registry prefix and case folding,
// so "gl_arb_debug_output" is close to "GL_ARB_debug_output".
package match
