// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package preview serves a generated output directory over HTTP so pages
// can be checked in a browser before they are converted or published.
package preview

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/persona-pages/pkg/types"
)

const (
	DefaultAddr = "127.0.0.1:8080"
	indexFile   = "index.html"
)

// Server serves files from one directory.
type Server struct {
	router *gin.Engine
	addr   string
	dir    string
}

// New creates a server for cfg.Dir. Request logs go to logw.
func New(cfg types.PreviewConfig, logw io.Writer) (*Server, error) {
	info, err := os.Stat(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("preview directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("preview directory %s is not a directory", cfg.Dir)
	}

	addr := cfg.Addr
	if addr == "" {
		addr = DefaultAddr
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logw), gin.Recovery())

	s := &Server{router: router, addr: addr, dir: cfg.Dir}
	router.GET("/*filepath", s.serveFile)
	router.HEAD("/*filepath", s.serveFile)
	return s, nil
}

// serveFile maps the request path into dir. Directories serve their
// index.html; anything missing is a 404.
func (s *Server) serveFile(c *gin.Context) {
	clean := path.Clean("/" + c.Param("filepath"))
	full := filepath.Join(s.dir, filepath.FromSlash(clean))

	info, err := os.Stat(full)
	if err == nil && info.IsDir() {
		full = filepath.Join(full, indexFile)
		info, err = os.Stat(full)
	}
	if err != nil || info.IsDir() {
		c.String(http.StatusNotFound, "not found: %s", clean)
		return
	}
	c.File(full)
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Addr is the listen address.
func (s *Server) Addr() string { return s.addr }

// Run listens until the process exits.
func (s *Server) Run() error {
	return s.router.Run(s.addr)
}
