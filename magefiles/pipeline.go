//go:build mage

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/magefile/mage/sh"
)

// Generate renders input.csv into html/ with the built-in templates.
func Generate() error {
	bin, err := binary()
	if err != nil {
		return err
	}
	return sh.RunV(bin, "generate")
}

// Pdf renders the pages and combines them into html/all.pdf.
func Pdf() error {
	bin, err := binary()
	if err != nil {
		return err
	}
	return sh.RunV(bin, "generate", "--one-pdf")
}

// Catalog rebuilds catalog/personas.db from input.csv.
func Catalog() error {
	bin, err := binary()
	if err != nil {
		return err
	}
	return sh.RunV(bin, "catalog", "build")
}

// Serve previews html/ on the default address.
func Serve() error {
	bin, err := binary()
	if err != nil {
		return err
	}
	return sh.RunV(bin, "serve")
}
