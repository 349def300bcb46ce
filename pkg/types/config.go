// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// ErrConflictingPDFModes is returned when both combined and per-page PDF
// output are requested.
var ErrConflictingPDFModes = errors.New("cannot use --one-pdf and --many-pdf together")

// PDFMode selects how rendered pages are converted to PDF.
type PDFMode string

const (
	PDFNone PDFMode = "none"
	PDFOne  PDFMode = "one"
	PDFMany PDFMode = "many"
)

// PDFModeFromFlags maps the two mutually exclusive CLI switches to a PDFMode.
func PDFModeFromFlags(one, many bool) (PDFMode, error) {
	switch {
	case one && many:
		return "", ErrConflictingPDFModes
	case one:
		return PDFOne, nil
	case many:
		return PDFMany, nil
	}
	return PDFNone, nil
}

const (
	DefaultBatchSize        = 3
	DefaultHeadshotPad      = 2
	DefaultHeadshotDir      = "headshots"
	DefaultFallbackHeadshot = "01-amina-flat-eco-nat.png"
	DefaultInput            = "input.csv"
	DefaultOutputDir        = "html"
	DefaultPDFBinary        = "wkhtmltopdf"
)

// GenerateConfig is the single configuration surface for a generate run.
type GenerateConfig struct {
	// Input is the roster file (.csv or .xlsx).
	Input string `json:"input" yaml:"input"`

	// OutputDir receives the rendered pages, index, manifest and PDFs.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// PageTemplate and IndexTemplate override the embedded templates when set.
	PageTemplate  string `json:"page_template,omitempty" yaml:"page_template,omitempty"`
	IndexTemplate string `json:"index_template,omitempty" yaml:"index_template,omitempty"`

	// HeadshotDir is searched for images named after the persona index.
	HeadshotDir string `json:"headshot_dir" yaml:"headshot_dir"`

	// HeadshotPad is the zero-padding width of the index prefix (2: "7" -> "07").
	HeadshotPad int `json:"headshot_pad" yaml:"headshot_pad"`

	// FallbackHeadshot is used when no image matches a persona.
	FallbackHeadshot string `json:"fallback_headshot" yaml:"fallback_headshot"`

	// BatchSize is the number of personas per page (default 3).
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// OnePDF combines every page into a single document after rendering.
	OnePDF bool `json:"one_pdf" yaml:"one_pdf"`

	// ManyPDF converts each page to its own document as it is rendered.
	ManyPDF bool `json:"many_pdf" yaml:"many_pdf"`

	// PDFBinary is the wkhtmltopdf executable name or path.
	PDFBinary string `json:"pdf_binary" yaml:"pdf_binary"`
}

// WithDefaults returns a copy with zero fields replaced by defaults.
func (c GenerateConfig) WithDefaults() GenerateConfig {
	if c.Input == "" {
		c.Input = DefaultInput
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.HeadshotDir == "" {
		c.HeadshotDir = DefaultHeadshotDir
	}
	if c.HeadshotPad <= 0 {
		c.HeadshotPad = DefaultHeadshotPad
	}
	if c.FallbackHeadshot == "" {
		c.FallbackHeadshot = DefaultFallbackHeadshot
	}
	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.PDFBinary == "" {
		c.PDFBinary = DefaultPDFBinary
	}
	return c
}

// Mode returns the selected conversion mode.
func (c GenerateConfig) Mode() (PDFMode, error) {
	return PDFModeFromFlags(c.OnePDF, c.ManyPDF)
}

// Validate reports configuration errors. It runs before any file is touched.
func (c GenerateConfig) Validate() error {
	if _, err := c.Mode(); err != nil {
		return err
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batch size must be positive, got %d", c.BatchSize)
	}
	return nil
}

// CatalogConfig holds settings for the SQLite persona catalog.
type CatalogConfig struct {
	// Dir contains personas.db and the export files.
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults caps query results (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PublishConfig holds settings for uploading an output directory to S3.
type PublishConfig struct {
	Bucket string `json:"bucket" yaml:"bucket"`
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Region string `json:"region,omitempty" yaml:"region,omitempty"`

	// AccessKeyID and SecretAccessKey are optional static credentials; the
	// default AWS credential chain is used when they are empty.
	AccessKeyID     string `json:"-" yaml:"-"`
	SecretAccessKey string `json:"-" yaml:"-"`
}

// PreviewConfig holds settings for the local preview server.
type PreviewConfig struct {
	Addr string `json:"addr" yaml:"addr"`
	Dir  string `json:"dir" yaml:"dir"`
}
