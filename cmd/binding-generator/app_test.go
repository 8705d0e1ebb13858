package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"binding-generator/internal/config"
)

const testRegistry = `<registry>
  <enums namespace="GL" group="AttribMask" type="bitmask">
    <enum value="0x00000100" name="GL_DEPTH_BUFFER_BIT"/>
  </enums>
  <enums namespace="GL">
    <enum value="0x1F00" name="GL_VENDOR"/>
    <enum value="0x1F01" name="GL_RENDERER"/>
    <enum value="0x92E0" name="GL_DEBUG_OUTPUT"/>
  </enums>
  <commands namespace="GL">
    <command>
      <proto>void <name>glClear</name></proto>
      <param><ptype>GLbitfield</ptype> <name>mask</name></param>
    </command>
    <command>
      <proto>const <ptype>GLubyte</ptype> *<name>glGetString</name></proto>
      <param><ptype>GLenum</ptype> <name>name</name></param>
    </command>
  </commands>
  <feature api="gl" name="GL_VERSION_1_0" number="1.0">
    <require>
      <enum name="GL_DEPTH_BUFFER_BIT"/>
      <enum name="GL_VENDOR"/>
      <command name="glClear"/>
    </require>
  </feature>
  <feature api="gl" name="GL_VERSION_2_0" number="2.0">
    <require>
      <enum name="GL_RENDERER"/>
      <command name="glGetString"/>
    </require>
    <remove>
      <enum name="GL_VENDOR"/>
    </remove>
  </feature>
  <extensions>
    <extension name="GL_KHR_debug" supported="gl|glcore|gles2">
      <require>
        <enum name="GL_DEBUG_OUTPUT"/>
      </require>
    </extension>
  </extensions>
</registry>`

func writeRegistry(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "gl.xml")
	require.NoError(t, os.WriteFile(path, []byte(testRegistry), 0o644))

	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := rootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())

	return stdout.String(), err
}

func TestGenerateCommand(t *testing.T) {
	registryPath := writeRegistry(t)
	out := filepath.Join(t.TempDir(), "glbind")

	stdout, err := execute(t, "generate",
		"--registry", registryPath,
		"--version", "2.0",
		"--out", out,
		"--package", "glbind",
		"--log-level", "error")
	require.NoError(t, err)

	for _, name := range []string{"doc.go", "constants.go", "functions.go"} {
		assert.FileExists(t, filepath.Join(out, name))
		assert.Contains(t, stdout, filepath.Join(out, name))
	}

	constants, err := os.ReadFile(filepath.Join(out, "constants.go"))
	require.NoError(t, err)
	assert.Contains(t, string(constants), "package glbind")
	assert.Contains(t, string(constants), "RENDERER")
	assert.NotContains(t, string(constants), "VENDOR")

	functions, err := os.ReadFile(filepath.Join(out, "functions.go"))
	require.NoError(t, err)
	assert.Contains(t, string(functions), "func GetString(name uint32) *uint8")
}

func TestInspectCommand_Signatures(t *testing.T) {
	stdout, err := execute(t, "inspect", "--registry", writeRegistry(t), "--version", "1.0", "--log-level", "error")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Equal(t, []string{
		"GL_DEPTH_BUFFER_BIT = 0x00000100",
		"GL_VENDOR = 0x1F00",
		"glClear(mask GLbitfield)",
	}, lines)
}

func TestInspectCommand_JSON(t *testing.T) {
	stdout, err := execute(t, "inspect", "-f", "json", "--registry", writeRegistry(t), "--log-level", "error")
	require.NoError(t, err)

	var model struct {
		Constants []struct {
			Name    string `json:"name"`
			Bitmask bool   `json:"bitmask"`
		} `json:"constants"`
		Functions []struct {
			Name   string `json:"name"`
			Return struct {
				Name    string `json:"name"`
				Pointer int    `json:"pointer"`
				Const   bool   `json:"const"`
			} `json:"return"`
		} `json:"functions"`
		Features []struct {
			Api string `json:"api"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &model))

	require.Len(t, model.Constants, 2)
	assert.Equal(t, "GL_DEPTH_BUFFER_BIT", model.Constants[0].Name)
	assert.True(t, model.Constants[0].Bitmask)
	assert.Equal(t, "GL_RENDERER", model.Constants[1].Name)

	require.Len(t, model.Functions, 2)
	assert.Equal(t, "glGetString", model.Functions[1].Name)
	assert.Equal(t, "GLubyte", model.Functions[1].Return.Name)
	assert.True(t, model.Functions[1].Return.Const)

	require.Len(t, model.Features, 2)
	assert.Equal(t, "gl", model.Features[0].Api)
}

func TestInspectCommand_Dump(t *testing.T) {
	stdout, err := execute(t, "inspect", "-f", "dump", "--registry", writeRegistry(t), "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, stdout, "glGetString")
}

func TestInspectCommand_UnknownFormat(t *testing.T) {
	_, err := execute(t, "inspect", "-f", "xml", "--registry", writeRegistry(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestConfigFileWithFlagOverride(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "binding-generator.yaml")
	cfgYAML := "registry: " + writeRegistry(t) + "\nversion: \"2.0\"\nprofile: compatibility\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgYAML), 0o644))

	stdout, err := execute(t, "inspect", "--config", cfgPath, "--version", "1.0", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, stdout, "GL_VENDOR")
	assert.NotContains(t, stdout, "GL_RENDERER")
}

func TestInvalidTarget(t *testing.T) {
	_, err := execute(t, "inspect", "--registry", writeRegistry(t), "--api", "vulkan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown api")

	_, err = execute(t, "generate", "--registry", writeRegistry(t), "--package", "gl-core")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid Go identifier")
}

func TestMalformedRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xml")
	require.NoError(t, os.WriteFile(path, []byte(`<registry><feature api="gl"/>  <extensions>
    <extension name="GL_KHR_debug" supported="gl|glcore|gles2">
      <require>
        <enum name="GL_DEBUG_OUTPUT"/>
      </require>
    </extension>
  </extensions>
</registry>`), 0o644))

	_, err := execute(t, "inspect", "--registry", path, "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse registry")
	assert.Contains(t, err.Error(), "missing-attribute")
}

func TestInspectCommand_Extensions(t *testing.T) {
	registryPath := writeRegistry(t)

	stdout, err := execute(t, "inspect", "--registry", registryPath, "--ext", "GL_KHR_debug", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, stdout, "GL_DEBUG_OUTPUT = 0x92E0")

	var out, logs bytes.Buffer

	cmd := rootCmd(&out, &logs)
	cmd.SetArgs([]string{"inspect", "--registry", registryPath, "--ext", "GL_KHR_debgu", "--log-level", "warn"})
	require.NoError(t, cmd.Execute())

	assert.NotContains(t, out.String(), "GL_DEBUG_OUTPUT")
	assert.Contains(t, logs.String(), "Unknown extension")
	assert.Contains(t, logs.String(), "did_you_mean=GL_KHR_debug")
}

func TestInitCommand(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "binding-generator.yaml")

	stdout, err := execute(t, "init", "--registry", writeRegistry(t), "--version", "1.0", "--out", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, cfgPath+"\n", stdout)

	cfg, err := config.LoadFile(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "1.0", cfg.Version)
	assert.Equal(t, config.DefaultApi, cfg.Api)

	stdout, err = execute(t, "inspect", "--config", cfgPath, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, stdout, "GL_VENDOR")
	assert.NotContains(t, stdout, "GL_RENDERER")

	stdout, err = execute(t, "init", "--profile", "compatibility")
	require.NoError(t, err)
	assert.Contains(t, stdout, "profile: compatibility")

	_, err = execute(t, "init", "--api", "vulkan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown api")
}

func TestVersionCommand(t *testing.T) {
	stdout, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "binding-generator version "+Version+"\n", stdout)
}

func TestNewApp_RejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Profile = "full"

	_, err := NewApp(cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
