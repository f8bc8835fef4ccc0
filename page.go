package eucatalog

import "context"

// CategoryPage holds the fields read from a category listing page.
type CategoryPage struct {
	Name        string
	Description string
	IconURL     string
}

// ProductPage holds the fields read from a product detail page.
type ProductPage struct {
	Name        string
	Description string
	Country     Country
	Websites    []Website
	LogoURL     string
}

// PageParser reads the directory's fixed page structure.
// Required fields that are missing produce EPARSE errors.
type PageParser interface {
	// CategoryLinks returns the absolute category URLs listed on the
	// categories index page, de-duplicated in document order.
	CategoryLinks(html, pageURL string) ([]string, error)

	// ParseCategoryPage reads name, description and icon of a category.
	ParseCategoryPage(html, pageURL string) (*CategoryPage, error)

	// ProductLinks returns the absolute product URLs listed on a category
	// page, de-duplicated in document order.
	ProductLinks(html, pageURL string) ([]string, error)

	// ParseProductPage reads a product detail page.
	ParseProductPage(html, pageURL string) (*ProductPage, error)
}

// ScrapeResult is the output of a full scrape: the indexed catalog and
// every unique icon its entities reference.
type ScrapeResult struct {
	Catalog *Catalog
	Icons   []Icon
}

// Scraper discovers and extracts the whole directory.
type Scraper interface {
	Scrape(ctx context.Context, mode ExecutionMode) (*ScrapeResult, error)
}
