// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/persona-pages/internal/generate"
	"github.com/pdiddy/persona-pages/internal/preview"
	"github.com/pdiddy/persona-pages/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the output directory over HTTP for preview",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", preview.DefaultAddr, "listen address")
	serveCmd.Flags().String("dir", types.DefaultOutputDir, "directory to serve")
	bindFlags(serveCmd, "serve", "addr", "dir")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := types.PreviewConfig{
		Addr: viper.GetString("serve.addr"),
		Dir:  viper.GetString("serve.dir"),
	}

	srv, err := preview.New(cfg, os.Stderr)
	if err != nil {
		return err
	}

	if m, err := generate.ReadManifest(cfg.Dir); err == nil {
		fmt.Fprintln(os.Stderr, mutedStyle.Render(fmt.Sprintf("%d pages, %d personas from %s", len(m.Pages), m.Personas, m.Input)))
	}
	fmt.Println(summaryStyle.Render(fmt.Sprintf("Serving %s at http://%s/", cfg.Dir, srv.Addr())))
	return srv.Run()
}
