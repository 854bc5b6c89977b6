// ABOUTME: Profile photo processing through the ImageMagick command line tool.
// ABOUTME: Produces a 256x256 center-cropped copy served under /uploads.
package photo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// PublicPrefix is the URL path the upload directory is served under.
const PublicPrefix = "/uploads/"

// ErrInvalidInput is returned when the input file is missing, is a directory
// or has an unsupported extension.
var ErrInvalidInput = errors.New("invalid photo input")

var supportedExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".webp": true}

// SupportedExt reports whether ext (with the dot, any case) is an accepted image type.
// The output format follows the extension, so only raster formats are allowed.
func SupportedExt(ext string) bool {
	return supportedExts[strings.ToLower(ext)]
}

// Runner executes a command. The default runs it with os/exec.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Processor resizes uploaded photos into the upload directory.
type Processor struct {
	uploadDir string
	binary    string
	run       Runner
}

// Option configures a Processor.
type Option func(*Processor)

// WithBinary overrides the ImageMagick executable name.
func WithBinary(name string) Option {
	return func(p *Processor) { p.binary = name }
}

// WithRunner replaces the command runner.
func WithRunner(r Runner) Option {
	return func(p *Processor) { p.run = r }
}

// NewProcessor creates a Processor writing into uploadDir.
func NewProcessor(uploadDir string, opts ...Option) *Processor {
	p := &Processor{uploadDir: uploadDir, binary: "magick", run: execRunner}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// UploadDir returns the directory processed photos are written to.
func (p *Processor) UploadDir() string {
	return p.uploadDir
}

// Process converts inputPath and returns the public URL of the result.
func (p *Processor) Process(ctx context.Context, inputPath string) (string, error) {
	if !SupportedExt(filepath.Ext(inputPath)) {
		return "", fmt.Errorf("%w: unsupported extension %q", ErrInvalidInput, filepath.Ext(inputPath))
	}
	info, err := os.Stat(inputPath)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrInvalidInput, inputPath)
	}
	if err := os.MkdirAll(p.uploadDir, 0o750); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := "processed-" + filepath.Base(inputPath)
	outputPath := filepath.Join(p.uploadDir, name)
	args := []string{inputPath, "-resize", "256x256^", "-gravity", "center", "-extent", "256x256", outputPath}

	if out, err := p.run(ctx, p.binary, args...); err != nil {
		return "", fmt.Errorf("run %s: %w: %s", p.binary, err, strings.TrimSpace(string(out)))
	}
	return PublicPrefix + name, nil
}
