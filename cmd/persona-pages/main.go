// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the persona-pages CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/persona-pages/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// rootCmd is the base command for the persona-pages CLI.
var rootCmd = &cobra.Command{
	Use:   "persona-pages",
	Short: "Render persona rosters into printable HTML and PDF pages",
	Long: `persona-pages reads a roster of survey personas from CSV or XLSX, resolves
their coded attitudes and education into descriptive text, and renders them
three to a page through HTML templates, with an index page linking every page.
Pages can be converted to PDF with wkhtmltopdf, one document per page or one
combined document.

Supporting commands keep a queryable SQLite catalog of the roster, serve the
output directory for preview, and publish it to S3.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", s.Keys())
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./persona-pages.yaml or ~/.config/persona-pages/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("persona-pages")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "persona-pages"))
		}
	}

	viper.SetEnvPrefix("PERSONA_PAGES")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// bindFlags binds each named flag of cmd to the viper key prefix.name, with
// dashes in the flag name turned into underscores.
func bindFlags(cmd *cobra.Command, prefix string, names ...string) {
	for _, name := range names {
		key := prefix + "." + strings.ReplaceAll(name, "-", "_")
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", name, err))
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
