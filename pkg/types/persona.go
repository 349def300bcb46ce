// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the persona-pages pipeline:
// raw roster rows, enriched personas, rendered pages and the run manifest.
package types

// PersonaRecord holds one roster row exactly as read from the input file.
// All fields are plain text; Index is convertible to an integer.
type PersonaRecord struct {
	// Index is the sequential person ordinal ("Person (Order)" column).
	Index string `json:"index" yaml:"index"`

	Name      string `json:"name" yaml:"name"`
	Age       string `json:"age" yaml:"age"`
	Gender    string `json:"gender" yaml:"gender"`
	Town      string `json:"town" yaml:"town"`
	Province  string `json:"province" yaml:"province"`
	Economic  string `json:"economic" yaml:"economic"`
	Education string `json:"education" yaml:"education"`

	// Attitude codes, one per survey dimension.
	AttitudeMoney       string `json:"attitude_money" yaml:"attitude_money"`
	AttitudeEnvironment string `json:"attitude_environment" yaml:"attitude_environment"`
	AttitudeBelonging   string `json:"attitude_belonging" yaml:"attitude_belonging"`
	AttitudeEducation   string `json:"attitude_education" yaml:"attitude_education"`
}

// EnrichedPersona is a PersonaRecord plus the display strings derived from
// the lookup tables and the resolved headshot filename.
type EnrichedPersona struct {
	PersonaRecord `yaml:",inline"`

	// Ordinal is Index parsed as an integer.
	Ordinal int `json:"ordinal" yaml:"ordinal"`

	EducationText           string `json:"education_text" yaml:"education_text"`
	AttitudeMoneyText       string `json:"attitude_money_text" yaml:"attitude_money_text"`
	AttitudeEnvironmentText string `json:"attitude_environment_text" yaml:"attitude_environment_text"`
	AttitudeBelongingText   string `json:"attitude_belonging_text" yaml:"attitude_belonging_text"`
	AttitudeEducationText   string `json:"attitude_education_text" yaml:"attitude_education_text"`

	// HeadshotFile is the base name of the image in the headshot directory,
	// or the configured fallback when no asset matches.
	HeadshotFile string `json:"headshot_file" yaml:"headshot_file"`
}

// Page is one rendered output unit: a contiguous group of personas with its
// generated filename and display title.
type Page struct {
	Filename string            `json:"filename" yaml:"filename"`
	Title    string            `json:"title" yaml:"title"`
	People   []EnrichedPersona `json:"people" yaml:"people"`
}

// IndexEntry is one row of the navigation index.
type IndexEntry struct {
	// Name is the page title shown in the index.
	Name string `json:"name" yaml:"name"`

	// URL is the page filename relative to the output directory.
	URL string `json:"url" yaml:"url"`

	// Path is the page location on disk.
	Path string `json:"path" yaml:"path"`
}

// ManifestPage describes a rendered page in the run manifest.
type ManifestPage struct {
	Filename string   `json:"filename" yaml:"filename"`
	Title    string   `json:"title" yaml:"title"`
	Indices  []string `json:"indices" yaml:"indices"`
	Names    []string `json:"names" yaml:"names"`
	PDF      string   `json:"pdf,omitempty" yaml:"pdf,omitempty"`
}

// Manifest records what a generate run produced, in page order. It carries
// no timestamps so that reruns on unchanged input are byte-identical.
type Manifest struct {
	Input     string         `json:"input" yaml:"input"`
	BatchSize int            `json:"batch_size" yaml:"batch_size"`
	Personas  int            `json:"personas" yaml:"personas"`
	Index     string         `json:"index" yaml:"index"`
	Combined  string         `json:"combined_pdf,omitempty" yaml:"combined_pdf,omitempty"`
	Pages     []ManifestPage `json:"pages" yaml:"pages"`
}
