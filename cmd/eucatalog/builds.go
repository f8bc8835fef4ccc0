package main

import (
	"fmt"
	"time"

	"github.com/timarques/eucatalog"
)

// Run executes the builds command.
func (c *BuildsCmd) Run(deps *Dependencies) error {
	if c.Limit < 1 {
		fmt.Fprintf(deps.Stderr, "error: --limit must be positive\n")
		return eucatalog.Errorf(eucatalog.EINVALID, "limit must be positive, got %d", c.Limit)
	}

	builds, err := deps.Builds.FindBuilds(deps.Ctx, eucatalog.BuildFilter{Limit: c.Limit, Offset: c.Offset})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", eucatalog.ErrorMessage(err))
		return err
	}

	if len(builds) == 0 {
		fmt.Fprintln(deps.Stdout, "No builds recorded. Set snapshot_db and run 'eucatalog build'.")
		return nil
	}

	for _, b := range builds {
		fmt.Fprintf(deps.Stdout, "%s  %s  %-8s  %d categories  %d products  %s\n",
			b.ID, b.CreatedAt.UTC().Format(time.RFC3339), b.Mode, b.Categories, b.Products, b.CatalogDigest)
	}
	return nil
}
