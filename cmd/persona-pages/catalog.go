// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/persona-pages/internal/batch"
	"github.com/pdiddy/persona-pages/internal/catalog"
	"github.com/pdiddy/persona-pages/internal/generate"
	"github.com/pdiddy/persona-pages/internal/render"
	"github.com/pdiddy/persona-pages/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the persona catalog (build, query, export)",
	Long: `Catalog keeps the enriched roster in a local SQLite database so personas
can be looked up by province, town, gender, education or name, together with
the page they render on.`,
}

// --- build subcommand ---

var catalogBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Load and enrich the roster and replace the catalog contents",
	RunE:  runCatalogBuild,
}

func runCatalogBuild(cmd *cobra.Command, args []string) error {
	cfg := rosterConfig("catalog").WithDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	people, err := generate.Prepare(cfg)
	if err != nil {
		return err
	}
	groups, err := batch.Split(people, cfg.BatchSize)
	if err != nil {
		return err
	}
	pages := make([]types.Page, len(groups))
	for i, g := range groups {
		pages[i] = render.Describe(g)
	}

	store, err := catalog.NewStore(catalogConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Build(context.Background(), pages, os.Stdout)
	return err
}

// --- query subcommand ---

var catalogQueryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Query the catalog with filters and free text",
	RunE:  runCatalogQuery,
}

func runCatalogQuery(cmd *cobra.Command, args []string) error {
	store, err := catalog.NewStore(catalogConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Query(context.Background(), queryOptsFromFlags(cmd, args))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatQueryOutput(entries, jsonOutput)
}

func formatQueryOutput(entries []catalog.Entry, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if entries == nil {
			entries = []catalog.Entry{}
		}
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No personas found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-20s  %-4s  %-8s  %-16s  %-14s  %s\n",
		"#", "Name", "Age", "Gender", "Town", "Province", "Page")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 96))
	for _, e := range entries {
		fmt.Fprintf(os.Stdout, "%-4s  %-20s  %-4s  %-8s  %-16s  %-14s  %s\n",
			e.Index, truncate(e.Name, 20), e.Age, e.Gender, truncate(e.Town, 16), truncate(e.Province, 14), e.Page)
	}
	fmt.Fprintf(os.Stdout, "\n%d personas\n", len(entries))
	return nil
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to YAML or JSON",
	RunE:  runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := catalog.NewStore(catalogConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(context.Background(), opts)
	case "json":
		path, err = store.ExportJSON(context.Background(), opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Println("Exported to", path)
	return nil
}

// --- shared helpers ---

func catalogConfig() types.CatalogConfig {
	return types.CatalogConfig{
		Dir:        viper.GetString("catalog.dir"),
		MaxResults: viper.GetInt("catalog.max_results"),
	}
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) catalog.QueryOptions {
	text, _ := cmd.Flags().GetString("text")
	if text == "" && len(args) > 0 {
		text = strings.Join(args, " ")
	}
	province, _ := cmd.Flags().GetString("province")
	town, _ := cmd.Flags().GetString("town")
	gender, _ := cmd.Flags().GetString("gender")
	education, _ := cmd.Flags().GetString("education")
	limit, _ := cmd.Flags().GetInt("limit")

	return catalog.QueryOptions{
		Province:   province,
		Town:       town,
		Gender:     gender,
		Education:  education,
		Text:       text,
		MaxResults: limit,
	}
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("text", "", "substring of name or town")
	cmd.Flags().String("province", "", "filter by province")
	cmd.Flags().String("town", "", "filter by town")
	cmd.Flags().String("gender", "", "filter by gender")
	cmd.Flags().String("education", "", "filter by education code")
	cmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	catalogCmd.PersistentFlags().String("catalog-dir", "catalog", "directory containing personas.db and exports")
	catalogCmd.PersistentFlags().Int("max-results", 50, "default maximum number of query results")
	if err := viper.BindPFlag("catalog.dir", catalogCmd.PersistentFlags().Lookup("catalog-dir")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("catalog.max_results", catalogCmd.PersistentFlags().Lookup("max-results")); err != nil {
		panic(err)
	}

	addRosterFlags(catalogBuildCmd)
	bindFlags(catalogBuildCmd, "catalog", rosterFlags...)

	addFilterFlags(catalogQueryCmd)
	catalogQueryCmd.Flags().Bool("json", false, "output results as JSON")

	addFilterFlags(catalogExportCmd)
	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	catalogCmd.AddCommand(catalogBuildCmd)
	catalogCmd.AddCommand(catalogQueryCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
