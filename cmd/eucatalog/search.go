package main

import (
	"fmt"

	"github.com/timarques/eucatalog"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	country := eucatalog.NoCountry
	if c.Country != "" {
		parsed, ok := eucatalog.ParseCountry(c.Country)
		if !ok {
			fmt.Fprintf(deps.Stderr, "error: unknown country %q\n", c.Country)
			return eucatalog.Errorf(eucatalog.EINVALID, "unknown country %q", c.Country)
		}
		country = parsed
	}

	catalog, err := deps.Catalogs.LoadCatalog(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", eucatalog.ErrorMessage(err))
		if eucatalog.ErrorCode(err) == eucatalog.ENOTFOUND {
			fmt.Fprintln(deps.Stderr, "Hint: set snapshot_db and run 'eucatalog build' first")
		}
		return err
	}

	results := eucatalog.NewSearchEngine(catalog).Search(c.Query, country)
	if len(results) == 0 {
		fmt.Fprintf(deps.Stdout, "No products match %q.\n", c.Query)
		return nil
	}

	for _, r := range results {
		fmt.Fprintf(deps.Stdout, "%s (%s)\n", r.Category.Name, r.Category.Slug)
		for _, p := range r.Products {
			if p.Country == eucatalog.NoCountry {
				fmt.Fprintf(deps.Stdout, "  %s\n", p.Name)
				continue
			}
			fmt.Fprintf(deps.Stdout, "  %s  %s\n", p.Name, p.Country.Name())
		}
	}
	return nil
}
