package main

import (
	"fmt"
	"slices"

	"github.com/timarques/eucatalog"
	"github.com/timarques/eucatalog/build"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	if c.Force {
		if err := deps.Builder.Clean(); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", eucatalog.ErrorMessage(err))
			return err
		}
	}

	meta, err := deps.Builder.Build(deps.Ctx, build.Options{
		Mode:             deps.Config.Mode(),
		App:              deps.Config.App,
		SchemasInstalled: deps.Config.SchemasInstalled,
		TemplatesSource:  deps.Config.TemplatesSource,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", eucatalog.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Build %s (%s) in %s\n", meta.BuildID, meta.Mode, deps.Builder.OutputDir)
	stages := make([]string, 0, len(meta.Regenerated))
	for stage := range meta.Regenerated {
		stages = append(stages, stage)
	}
	slices.Sort(stages)
	for _, stage := range stages {
		status := "cached"
		if meta.Regenerated[stage] {
			status = "regenerated"
		}
		fmt.Fprintf(deps.Stdout, "  %-10s %s\n", stage, status)
	}
	if digest, ok := meta.Digests[build.StageCatalog]; ok {
		fmt.Fprintf(deps.Stdout, "Catalog digest: %s\n", digest)
	}
	return nil
}
