package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"GL_ARB_debug_output", "arbdebugoutput"},
		{"gl_arb_debug_output", "arbdebugoutput"},
		{"glClear", "clear"},
		{"GL_", ""},
		{"  GL_KHR-debug ", "khrdebug"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestSuggest(t *testing.T) {
	candidates := []string{"GL_ARB_debug_output", "GL_KHR_debug", "GL_EXT_texture_filter_anisotropic"}

	got, ok := Suggest("GL_ARB_debug_outptu", candidates)
	assert.True(t, ok)
	assert.Equal(t, "GL_ARB_debug_output", got)

	got, ok = Suggest("khr_debug", candidates)
	assert.True(t, ok)
	assert.Equal(t, "GL_KHR_debug", got)

	_, ok = Suggest("GL_NV_mesh_shader", candidates)
	assert.False(t, ok)

	_, ok = Suggest("GL_KHR_debug", nil)
	assert.False(t, ok)
}

func TestSuggest_TieKeepsFirst(t *testing.T) {
	got, ok := Suggest("abcd", []string{"abce", "abcf"})
	assert.True(t, ok)
	assert.Equal(t, "abce", got)
}
