// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/persona-pages/internal/generate"
	"github.com/pdiddy/persona-pages/internal/pdf"
	"github.com/pdiddy/persona-pages/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render the roster into HTML pages, an index, and optional PDFs",
	Long: `Generate loads the roster, resolves every code through the lookup tables,
groups personas three to a page, and writes persona_NN_MM.html pages plus
index.html and manifest.yaml into the output directory. Existing files are
overwritten.

--many-pdf converts each page to its own PDF as it is rendered; --one-pdf
combines all pages into all.pdf. The two cannot be combined.`,
	RunE: runGenerate,
}

// rosterFlags are shared by generate and catalog build.
var rosterFlags = []string{"input", "headshot-dir", "headshot-pad", "fallback-headshot", "batch-size"}

func addRosterFlags(cmd *cobra.Command) {
	cmd.Flags().String("input", types.DefaultInput, "roster file (.csv or .xlsx)")
	cmd.Flags().String("headshot-dir", types.DefaultHeadshotDir, "directory of headshot images named by persona index")
	cmd.Flags().Int("headshot-pad", types.DefaultHeadshotPad, "zero-padding width of the index prefix in headshot filenames")
	cmd.Flags().String("fallback-headshot", types.DefaultFallbackHeadshot, "headshot used when no image matches")
	cmd.Flags().Int("batch-size", types.DefaultBatchSize, "personas per page")
}

func init() {
	addRosterFlags(generateCmd)
	generateCmd.Flags().String("output-dir", types.DefaultOutputDir, "directory for rendered pages")
	generateCmd.Flags().String("page-template", "", "page template file (default: built-in)")
	generateCmd.Flags().String("index-template", "", "index template file (default: built-in)")
	generateCmd.Flags().Bool("one-pdf", false, "produce one combined PDF of all the HTML files")
	generateCmd.Flags().Bool("many-pdf", false, "produce a PDF file for each HTML file")
	generateCmd.Flags().String("pdf-binary", types.DefaultPDFBinary, "wkhtmltopdf executable")

	bindFlags(generateCmd, "generate", rosterFlags...)
	bindFlags(generateCmd, "generate", "output-dir", "page-template", "index-template", "one-pdf", "many-pdf", "pdf-binary")

	rootCmd.AddCommand(generateCmd)
}

// rosterConfig reads the roster settings shared by generate and catalog.
func rosterConfig(prefix string) types.GenerateConfig {
	return types.GenerateConfig{
		Input:            viper.GetString(prefix + ".input"),
		HeadshotDir:      viper.GetString(prefix + ".headshot_dir"),
		HeadshotPad:      viper.GetInt(prefix + ".headshot_pad"),
		FallbackHeadshot: viper.GetString(prefix + ".fallback_headshot"),
		BatchSize:        viper.GetInt(prefix + ".batch_size"),
	}
}

func generateConfig() types.GenerateConfig {
	cfg := rosterConfig("generate")
	cfg.OutputDir = viper.GetString("generate.output_dir")
	cfg.PageTemplate = viper.GetString("generate.page_template")
	cfg.IndexTemplate = viper.GetString("generate.index_template")
	cfg.OnePDF = viper.GetBool("generate.one_pdf")
	cfg.ManyPDF = viper.GetBool("generate.many_pdf")
	cfg.PDFBinary = viper.GetString("generate.pdf_binary")
	return cfg.WithDefaults()
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := generateConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	var conv pdf.Converter
	if mode, _ := cfg.Mode(); mode != types.PDFNone {
		w, err := pdf.Detect(cfg.PDFBinary)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, mutedStyle.Render("Using "+w.Name()))
		conv = w
	}

	result, err := generate.Run(cfg, conv, os.Stdout)
	if err != nil {
		return err
	}

	personas := 0
	for _, p := range result.Pages {
		personas += len(p.People)
	}
	fmt.Println(summaryStyle.Render(fmt.Sprintf("%d personas on %d pages, %d PDF(s)", personas, len(result.Pages), len(result.PDFs))))
	return nil
}
