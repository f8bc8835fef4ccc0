package main

import (
	"fmt"
	"strings"

	"github.com/timarques/eucatalog"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	catalog, err := deps.Catalogs.LoadCatalog(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", eucatalog.ErrorMessage(err))
		return err
	}

	p, err := catalog.ProductByName(c.Product)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s. Use 'eucatalog search' to find product names.\n", eucatalog.ErrorMessage(err))
		return err
	}

	var categories []string
	for _, cat := range catalog.CategoriesOf(p) {
		categories = append(categories, cat.Name)
	}

	fmt.Fprintln(deps.Stdout, p.Name)
	if p.Country != eucatalog.NoCountry {
		fmt.Fprintf(deps.Stdout, "Country:    %s\n", p.Country.Name())
	}
	fmt.Fprintf(deps.Stdout, "Categories: %s\n", strings.Join(categories, ", "))
	if p.Summary != "" {
		fmt.Fprintf(deps.Stdout, "\n%s\n", p.Summary)
	}
	if p.Description != "" && p.Description != p.Summary {
		fmt.Fprintf(deps.Stdout, "\n%s\n", p.Description)
	}
	if len(p.Websites) > 0 {
		fmt.Fprintln(deps.Stdout)
		for _, w := range p.Websites {
			fmt.Fprintf(deps.Stdout, "%s: %s\n", w.Label, w.URL)
		}
	}
	return nil
}
