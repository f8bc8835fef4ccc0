package main

import (
	"context"
	"io"

	"github.com/timarques/eucatalog"
	"github.com/timarques/eucatalog/build"
	"github.com/timarques/eucatalog/config"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Config   *config.Config
	Builder  *build.Builder
	Catalogs eucatalog.CatalogStore
	Builds   eucatalog.BuildLedger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Build  BuildCmd  `cmd:"" help:"Scrape the directory and generate the catalog and resources"`
	Search SearchCmd `cmd:"" help:"Search products in a catalog snapshot"`
	Show   ShowCmd   `cmd:"" help:"Show one product from a catalog snapshot"`
	Builds BuildsCmd `cmd:"" help:"List recorded builds, newest first"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	Config    string `short:"c" type:"path" help:"YAML config file"`
	Serial    bool   `help:"Fetch and convert one item at a time"`
	OutputDir string `short:"o" type:"path" name:"output-dir" help:"Directory receiving generated artifacts"`
	Force     bool   `short:"f" help:"Remove cached artifacts before building"`
	Verbose   bool   `short:"v" help:"Human readable debug logging"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query   string `arg:"" optional:"" help:"Search terms; empty lists every product"`
	Country string `help:"Only products from this country"`
	DB      string `name:"db" required:"" type:"path" help:"Catalog snapshot database"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Product string `arg:"" help:"Product name"`
	DB      string `name:"db" required:"" type:"path" help:"Catalog snapshot database"`
}

// BuildsCmd is the "builds" subcommand.
type BuildsCmd struct {
	DB     string `name:"db" required:"" type:"path" help:"Catalog snapshot database"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of builds to list"`
	Offset int    `help:"Number of newest builds to skip"`
}
