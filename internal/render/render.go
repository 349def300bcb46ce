// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render binds persona pages and the page index into HTML templates
// and writes the results to the output directory.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/persona-pages/internal/batch"
	"github.com/pdiddy/persona-pages/pkg/types"
)

// IndexFilename is the fixed name of the navigation page.
const IndexFilename = "index.html"

//go:embed templates/*.tmpl
var defaultTemplates embed.FS

const (
	defaultPageTemplate  = "templates/page.html.tmpl"
	defaultIndexTemplate = "templates/index.html.tmpl"
)

// Options configures a Renderer. Empty template paths select the embedded
// defaults.
type Options struct {
	OutputDir     string
	HeadshotDir   string
	PageTemplate  string
	IndexTemplate string
}

// Person is the template view of one persona.
type Person struct {
	types.EnrichedPersona

	// HeadshotPath locates the headshot relative to the output directory,
	// with forward slashes.
	HeadshotPath string
}

// PageData is the context bound into the page template.
type PageData struct {
	Title  string
	People []Person
}

// IndexData is the context bound into the index template.
type IndexData struct {
	Pages []types.IndexEntry
}

// Renderer holds parsed templates and writes rendered pages.
type Renderer struct {
	page       *template.Template
	index      *template.Template
	outputDir  string
	headshotTo string // headshot directory as seen from outputDir
}

// New parses both templates. Template errors surface here, before any page
// is written.
func New(opts Options) (*Renderer, error) {
	page, err := parseTemplate(opts.PageTemplate, defaultPageTemplate)
	if err != nil {
		return nil, fmt.Errorf("loading page template: %w", err)
	}
	index, err := parseTemplate(opts.IndexTemplate, defaultIndexTemplate)
	if err != nil {
		return nil, fmt.Errorf("loading index template: %w", err)
	}

	return &Renderer{
		page:       page,
		index:      index,
		outputDir:  opts.OutputDir,
		headshotTo: relativeDir(opts.OutputDir, opts.HeadshotDir),
	}, nil
}

func parseTemplate(path, embedded string) (*template.Template, error) {
	if path == "" {
		return template.ParseFS(defaultTemplates, embedded)
	}
	return template.ParseFiles(path)
}

// relativeDir expresses target relative to base, falling back to target as
// given when no relative path exists.
func relativeDir(base, target string) string {
	absBase, err1 := filepath.Abs(base)
	absTarget, err2 := filepath.Abs(target)
	if err1 != nil || err2 != nil {
		return target
	}
	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil {
		return absTarget
	}
	return rel
}

// PageFilename derives the output filename from the group's ordinal range.
func PageFilename(g batch.Group) string {
	return fmt.Sprintf("persona_%02d_%02d.html", g.FirstOrdinal(), g.LastOrdinal())
}

// PageTitle names the page by its ordinal range and member names.
func PageTitle(g batch.Group) string {
	return fmt.Sprintf("Personas %d to %d (%s)", g.FirstOrdinal(), g.LastOrdinal(), strings.Join(g.Names(), ", "))
}

// Describe returns the page for g without rendering it.
func Describe(g batch.Group) types.Page {
	return types.Page{
		Filename: PageFilename(g),
		Title:    PageTitle(g),
		People:   g.People,
	}
}

// RenderPage writes the page for g and returns its description and path.
// An existing file is overwritten.
func (r *Renderer) RenderPage(g batch.Group) (types.Page, string, error) {
	page := Describe(g)

	data := PageData{Title: page.Title, People: make([]Person, len(g.People))}
	for i, p := range g.People {
		data.People[i] = Person{
			EnrichedPersona: p,
			HeadshotPath:    filepath.ToSlash(filepath.Join(r.headshotTo, p.HeadshotFile)),
		}
	}

	path := filepath.Join(r.outputDir, page.Filename)
	if err := execute(r.page, data, path); err != nil {
		return types.Page{}, "", err
	}
	return page, path, nil
}

// RenderIndex writes the navigation page listing entries in order.
func (r *Renderer) RenderIndex(entries []types.IndexEntry) (string, error) {
	path := filepath.Join(r.outputDir, IndexFilename)
	if err := execute(r.index, IndexData{Pages: entries}, path); err != nil {
		return "", err
	}
	return path, nil
}

func execute(tmpl *template.Template, data any, path string) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("executing template %s for %s: %w", tmpl.Name(), path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
