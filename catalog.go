package eucatalog

import (
	"context"
	"sort"
)

// Catalog is the complete, immutable result of a build: categories and
// products in positional order plus lookup and reverse indices. A Catalog
// must not be modified once returned by NewCatalog.
type Catalog struct {
	Categories []Category
	Products   []Product

	// SlugIndex maps a category slug to its position in Categories.
	SlugIndex map[string]int
	// NameIndex maps a product name to its position in Products.
	NameIndex map[string]int

	// CategoryProducts lists product positions per category position.
	CategoryProducts [][]int
	// CountryProducts lists product positions per Country.Index().
	CountryProducts [][]int
}

// NewCatalog validates categories and products and builds every index.
// Duplicate slugs or names and references to unknown categories are EDATA
// errors. Product positions are appended to buckets in product order.
func NewCatalog(categories []Category, products []Product) (*Catalog, error) {
	c := &Catalog{
		Categories:       categories,
		Products:         products,
		SlugIndex:        make(map[string]int, len(categories)),
		NameIndex:        make(map[string]int, len(products)),
		CategoryProducts: make([][]int, len(categories)),
		CountryProducts:  make([][]int, CountryCount),
	}

	for i := range categories {
		if err := categories[i].Validate(); err != nil {
			return nil, err
		}
		slug := categories[i].Slug
		if _, ok := c.SlugIndex[slug]; ok {
			return nil, Errorf(EDATA, "duplicate category slug %q", slug)
		}
		c.SlugIndex[slug] = i
	}

	for i := range products {
		p := &products[i]
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, ok := c.NameIndex[p.Name]; ok {
			return nil, Errorf(EDATA, "duplicate product name %q", p.Name)
		}
		c.NameIndex[p.Name] = i

		seen := make(map[int]struct{}, len(p.Categories))
		for _, slug := range p.Categories {
			ci, ok := c.SlugIndex[slug]
			if !ok {
				return nil, Errorf(EDATA, "product %q references unknown category %q", p.Name, slug)
			}
			if _, dup := seen[ci]; dup {
				continue
			}
			seen[ci] = struct{}{}
			c.CategoryProducts[ci] = append(c.CategoryProducts[ci], i)
		}

		if p.Country.Valid() {
			ki := p.Country.Index()
			c.CountryProducts[ki] = append(c.CountryProducts[ki], i)
		} else if p.Country != NoCountry {
			return nil, Errorf(EDATA, "product %q has invalid country %d", p.Name, int(p.Country))
		}
	}

	return c, nil
}

// CategoryBySlug returns the category with the given slug.
// Returns ENOTFOUND if no category has that slug.
func (c *Catalog) CategoryBySlug(slug string) (*Category, error) {
	i, ok := c.SlugIndex[slug]
	if !ok {
		return nil, Errorf(ENOTFOUND, "category %q not found", slug)
	}
	return &c.Categories[i], nil
}

// ProductByName returns the product with the given name.
// Returns ENOTFOUND if no product has that name.
func (c *Catalog) ProductByName(name string) (*Product, error) {
	i, ok := c.NameIndex[name]
	if !ok {
		return nil, Errorf(ENOTFOUND, "product %q not found", name)
	}
	return &c.Products[i], nil
}

// ProductsInCategory returns the products of a category in bucket order.
// Returns ENOTFOUND if the category does not exist.
func (c *Catalog) ProductsInCategory(slug string) ([]*Product, error) {
	i, ok := c.SlugIndex[slug]
	if !ok {
		return nil, Errorf(ENOTFOUND, "category %q not found", slug)
	}
	return c.productsAt(c.CategoryProducts[i]), nil
}

// ProductsInCountry returns the products attributed to country.
func (c *Catalog) ProductsInCountry(country Country) []*Product {
	if !country.Valid() {
		return nil
	}
	return c.productsAt(c.CountryProducts[country.Index()])
}

// CategoriesOf returns the categories a product belongs to, in the order
// the product declares them.
func (c *Catalog) CategoriesOf(p *Product) []*Category {
	out := make([]*Category, 0, len(p.Categories))
	for _, slug := range p.Categories {
		if i, ok := c.SlugIndex[slug]; ok {
			out = append(out, &c.Categories[i])
		}
	}
	return out
}

// Countries returns the countries that have at least one product, in
// ordinal order.
func (c *Catalog) Countries() []Country {
	var out []Country
	for i, bucket := range c.CountryProducts {
		if len(bucket) == 0 {
			continue
		}
		if country, ok := CountryFromIndex(i); ok {
			out = append(out, country)
		}
	}
	return out
}

// SortedCategories returns the categories ordered by slug.
func (c *Catalog) SortedCategories() []*Category {
	out := make([]*Category, len(c.Categories))
	for i := range c.Categories {
		out[i] = &c.Categories[i]
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

func (c *Catalog) productsAt(positions []int) []*Product {
	out := make([]*Product, len(positions))
	for i, p := range positions {
		out[i] = &c.Products[p]
	}
	return out
}

// CatalogGenerator serializes a catalog into an embeddable source artifact.
type CatalogGenerator interface {
	Generate(c *Catalog) ([]byte, error)
}

// CatalogStore persists a catalog snapshot for later querying.
type CatalogStore interface {
	// SaveCatalog replaces the stored snapshot with c.
	SaveCatalog(ctx context.Context, c *Catalog) error

	// LoadCatalog rebuilds the stored snapshot.
	// Returns ENOTFOUND if nothing has been saved.
	LoadCatalog(ctx context.Context) (*Catalog, error)
}
