package gen

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"text/template"

	"golang.org/x/tools/imports"

	"binding-generator/internal/reduce"
	"binding-generator/internal/registry"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName is the name of the generated package.
	PackageName string
	// OutputDir is where files are written; also where unformatted sidecars
	// go when formatting fails.
	OutputDir string
}

// Generator renders Go source from a reduced registry.
type Generator struct {
	config GeneratorConfig
	logger *slog.Logger
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}

	return &Generator{config: config, logger: logger}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the base name, e.g. "functions.go".
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate renders every output file for reg, which is expected to be
// reduced for target already.
func (g *Generator) Generate(reg *registry.Registry, target reduce.Target) ([]GeneratedFile, error) {
	data := g.buildTemplateData(reg, target)

	g.logger.Debug("Rendering bindings",
		slog.String("package", data.PackageName),
		slog.Int("constants", len(data.Constants)),
		slog.Int("functions", len(data.Functions)))

	outputs := []struct {
		filename string
		tmpl     *template.Template
	}{
		{"doc.go", docTemplate},
		{"constants.go", constantsTemplate},
		{"functions.go", functionsTemplate},
	}

	files := make([]GeneratedFile, 0, len(outputs))

	for _, out := range outputs {
		file, err := g.render(out.filename, out.tmpl, data)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", out.filename, err)
		}

		files = append(files, *file)
	}

	return files, nil
}

// render executes one template and formats the result.
func (g *Generator) render(filename string, tmpl *template.Template, data *templateData) (*GeneratedFile, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := imports.Process(filepath.Join(g.config.OutputDir, filename), buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, filename, buf.Bytes())
		}

		return nil, fmt.Errorf("formatting code: %w", err)
	}

	return &GeneratedFile{
		Filename: filename,
		Content:  formatted,
	}, nil
}

// buildTemplateData converts the registry model into template input.
func (g *Generator) buildTemplateData(reg *registry.Registry, target reduce.Target) *templateData {
	data := &templateData{
		PackageName: g.config.PackageName,
		Api:         target.Api.String(),
		Version:     strconv.FormatFloat(target.Version, 'f', 1, 64),
		Profile:     target.Profile.String(),
		Extensions:  target.Extensions,
	}

	seen := make(map[string]bool)

	for _, c := range reg.Constants {
		name := constantName(c.Name)
		if seen[name] {
			g.logger.Debug("Skipping duplicate constant", slog.String("name", c.Name))
			continue
		}

		seen[name] = true
		data.Constants = append(data.Constants, constantData{
			Name:  name,
			Value: c.Value,
			Group: c.Group,
		})
	}

	seen = make(map[string]bool)
	usesUnsafe := false

	for _, fn := range reg.Functions {
		name := functionName(fn.Name)
		if seen[name] {
			g.logger.Debug("Skipping duplicate function", slog.String("name", fn.Name))
			continue
		}

		seen[name] = true

		f := functionData{
			Name:   name,
			Symbol: fn.Name,
			Var:    "gp" + name,
			Result: goType(fn.Return),
		}

		for _, p := range fn.Params {
			f.Params = append(f.Params, paramData{Name: p.Name, Type: goType(p.Type)})
		}

		usesUnsafe = usesUnsafe || f.usesUnsafe()
		data.Functions = append(data.Functions, f)
	}

	data.Imports = []string{"errors", "fmt", "strings", "github.com/ebitengine/purego"}
	if usesUnsafe {
		data.Imports = append(data.Imports, "unsafe")
	}

	return data
}
