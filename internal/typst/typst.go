package typst

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/nexonoperations/tutorbill/internal/config"
	ierr "github.com/nexonoperations/tutorbill/internal/errors"
	"github.com/nexonoperations/tutorbill/internal/logger"
)

type Compiler interface {
	Compile(opts CompileOpts) (string, error)
	CompileToBytes(opts CompileOpts) ([]byte, error)
	CompileTemplate(templateName string, data []byte, opts ...CompileOptsBuilder) ([]byte, error)
	CleanupGeneratedFiles(files ...string)
}

// compiler shells out to the typst binary to produce PDF documents
type compiler struct {
	logger *logger.Logger
	// Path to the typst binary
	binaryPath string
	// Directory where fonts are stored
	fontDir string
	// Directory where templates are stored
	templateDir string
	// Directory for output files
	outputDir string
}

// CompileOpts contains options for compiling a Typst document
type CompileOpts struct {
	// Input file path
	InputFile string
	// Output file name (optional, a temp name is generated if empty)
	OutputFile string
	// Font paths to include
	FontDirs []string
	// Additional command-line arguments
	ExtraArgs []string
}

type CompileOptsBuilder func(c *CompileOpts)

func WithInputFile(inputFile string) CompileOptsBuilder {
	return func(c *CompileOpts) {
		c.InputFile = inputFile
	}
}

func WithOutputFile(outputFile string) CompileOptsBuilder {
	return func(c *CompileOpts) {
		c.OutputFile = outputFile
	}
}

func WithFontDirs(fontDirs ...string) CompileOptsBuilder {
	return func(c *CompileOpts) {
		c.FontDirs = fontDirs
	}
}

func WithExtraArgs(extraArgs ...string) CompileOptsBuilder {
	return func(c *CompileOpts) {
		c.ExtraArgs = extraArgs
	}
}

// NewCompiler creates a Typst compiler from the service configuration.
func NewCompiler(cfg *config.Configuration, logger *logger.Logger) Compiler {
	outputDir := cfg.Typst.OutputDir
	if outputDir == "" {
		outputDir = os.TempDir()
	}
	return &compiler{
		logger:      logger,
		binaryPath:  cfg.Typst.BinaryPath,
		fontDir:     cfg.Typst.FontDir,
		templateDir: cfg.Typst.TemplateDir,
		outputDir:   outputDir,
	}
}

// DefaultCompiler creates a compiler with default settings
func DefaultCompiler(logger *logger.Logger) Compiler {
	return &compiler{
		logger:      logger,
		binaryPath:  "typst",
		fontDir:     "assets/fonts",
		templateDir: "assets/typst-templates",
		outputDir:   os.TempDir(),
	}
}

// Compile compiles a Typst document to PDF and returns the output file path.
func (c *compiler) Compile(opts CompileOpts) (string, error) {
	outputName := opts.OutputFile
	if outputName == "" {
		outputName = fmt.Sprintf("typst-%d.pdf", time.Now().UnixMilli())
	}
	outputFile := filepath.Join(c.outputDir, outputName)

	var fontDirs []string
	if c.fontDir != "" {
		fontDirs = append(fontDirs, c.fontDir)
	}
	fontDirs = append(fontDirs, opts.FontDirs...)

	args := []string{"compile", "--root", "/"}
	for _, dir := range fontDirs {
		args = append(args, "--font-path", dir)
	}
	args = append(args, opts.ExtraArgs...)
	args = append(args, opts.InputFile, outputFile)

	cmd := exec.Command(c.binaryPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", ierr.WithError(err).
			WithMessage("typst compilation failed").
			WithHint("typst error").
			WithReportableDetails(map[string]any{
				"stderr": stderr.String(),
			}).
			Mark(ierr.ErrSystem)
	}

	return outputFile, nil
}

// CompileToBytes compiles a Typst document and returns the PDF content as
// bytes; the intermediate output file is removed.
func (c *compiler) CompileToBytes(opts CompileOpts) ([]byte, error) {
	pdfPath, err := c.Compile(opts)
	if err != nil {
		return nil, err
	}
	defer c.CleanupGeneratedFiles(pdfPath)

	return os.ReadFile(pdfPath)
}

// CompileTemplate compiles a Typst template with the provided data.
// The data must be a JSON document compatible with the template, which
// reads it via
//
//	#let invoice = json(sys.inputs.path)
func (c *compiler) CompileTemplate(
	templateName string,
	data []byte,
	opts ...CompileOptsBuilder,
) ([]byte, error) {
	templatePath := filepath.Join(c.templateDir, templateName)
	if _, err := os.Stat(templatePath); os.IsNotExist(err) {
		return nil, ierr.WithError(err).
			WithMessagef("template not found: %s", templatePath).
			WithHint("template error").Mark(ierr.ErrSystem)
	}

	jsonFile, err := os.CreateTemp(c.outputDir, "typst-*.json")
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to create temporary json file").
			WithHint("template error").Mark(ierr.ErrSystem)
	}
	defer c.CleanupGeneratedFiles(jsonFile.Name())

	if _, err := jsonFile.Write(data); err != nil {
		jsonFile.Close()
		return nil, ierr.WithError(err).
			WithMessage("failed to write data to json file").
			WithHint("template error").Mark(ierr.ErrSystem)
	}
	jsonFile.Close()

	compileOpts := CompileOpts{
		InputFile: templatePath,
		ExtraArgs: []string{"--input", fmt.Sprintf("path=%s", jsonFile.Name())},
	}

	for _, opt := range opts {
		opt(&compileOpts)
	}

	return c.CompileToBytes(compileOpts)
}

// CleanupGeneratedFiles removes temporary files created during compilation.
// Failures are logged and never escalated.
func (c *compiler) CleanupGeneratedFiles(files ...string) {
	for _, file := range files {
		if file == "" {
			continue
		}
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			c.logger.Warnw("failed to remove generated file", "file", file, "error", err)
		}
	}
}
