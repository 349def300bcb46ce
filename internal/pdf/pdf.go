// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdf converts rendered HTML pages to PDF by delegating to the
// wkhtmltopdf binary. Layout options are fixed; failures are reported with
// the tool's own output and never retried.
package pdf

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// CombinedFilename is the name of the single document produced in one-PDF mode.
const CombinedFilename = "all.pdf"

// Options are passed to every wkhtmltopdf invocation.
var Options = []string{
	"--quiet",
	"--enable-local-file-access",
	"--debug-javascript",
	"--encoding", "UTF-8",
	"--orientation", "Landscape",
	"--page-size", "A4",
}

// Converter turns HTML files into PDF documents.
type Converter interface {
	// ConvertFile writes a PDF next to htmlPath (same base name, .pdf
	// extension) and returns its path.
	ConvertFile(htmlPath string) (string, error)

	// ConvertFiles writes all htmlPaths, in order, into one PDF at pdfPath.
	ConvertFiles(htmlPaths []string, pdfPath string) error
}

// RenderError reports a failed wkhtmltopdf run. Output is the tool's
// combined stdout and stderr, unmodified.
type RenderError struct {
	Tool   string
	Args   []string
	Output string
	Err    error
}

func (e *RenderError) Error() string {
	msg := fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *RenderError) Unwrap() error { return e.Err }

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	CombinedOutput(name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) CombinedOutput(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

var defaultExec executor = &osExecutor{}

// Wkhtmltopdf implements Converter with the wkhtmltopdf command line tool.
type Wkhtmltopdf struct {
	bin  string
	exec executor
}

// Detect locates bin (a name on PATH or a path) and returns a converter
// that runs it.
func Detect(bin string) (*Wkhtmltopdf, error) {
	return detect(bin, defaultExec)
}

func detect(bin string, exec executor) (*Wkhtmltopdf, error) {
	path, err := exec.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("pdf converter %s not available: %w", bin, err)
	}
	return &Wkhtmltopdf{bin: path, exec: exec}, nil
}

// Name returns the resolved binary path.
func (w *Wkhtmltopdf) Name() string { return w.bin }

// ConvertFile implements Converter.
func (w *Wkhtmltopdf) ConvertFile(htmlPath string) (string, error) {
	pdfPath := strings.TrimSuffix(htmlPath, filepath.Ext(htmlPath)) + ".pdf"
	if err := w.run([]string{htmlPath}, pdfPath); err != nil {
		return "", err
	}
	return pdfPath, nil
}

// ConvertFiles implements Converter.
func (w *Wkhtmltopdf) ConvertFiles(htmlPaths []string, pdfPath string) error {
	if len(htmlPaths) == 0 {
		return fmt.Errorf("no HTML files to convert into %s", pdfPath)
	}
	return w.run(htmlPaths, pdfPath)
}

func (w *Wkhtmltopdf) run(inputs []string, output string) error {
	args := make([]string, 0, len(Options)+len(inputs)+1)
	args = append(args, Options...)
	args = append(args, inputs...)
	args = append(args, output)

	out, err := w.exec.CombinedOutput(w.bin, args...)
	if err != nil {
		return &RenderError{Tool: filepath.Base(w.bin), Args: args, Output: string(out), Err: err}
	}
	return nil
}
