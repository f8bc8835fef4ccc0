// Package crawl orchestrates scraping of the product directory.
// It coordinates fetching, page parsing, concurrent execution, and the
// assembly of categories, products and icons into an indexed catalog.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"sync/atomic"

	"github.com/timarques/eucatalog"
	"github.com/timarques/eucatalog/bloom"
)

// BrandPrefix is stripped from category headings ("European Cloud" → "Cloud").
const BrandPrefix = "European"

// ProductSummarySentences is the number of sentences kept in a product summary.
const ProductSummarySentences = 2

// Ensure Scraper implements eucatalog.Scraper at compile time.
var _ eucatalog.Scraper = (*Scraper)(nil)

// Scraper discovers and extracts the whole directory.
type Scraper struct {
	Fetcher eucatalog.Fetcher
	Parser  eucatalog.PageParser

	// BaseURL is the directory root, e.g. eucatalog.DefaultBaseURL.
	BaseURL string
	// FlagBaseURL hosts country flags as {FlagBaseURL}/{code}.svg.
	FlagBaseURL string

	// Progress, if set, is called as pages complete. It may be called
	// concurrently.
	Progress ProgressFunc
}

// ProgressEvent reports progress during a scrape.
type ProgressEvent struct {
	Phase     Phase
	Completed int
	Total     int
	URL       string
}

// Phase identifies which batch a ProgressEvent belongs to.
type Phase int

const (
	PhaseCategories Phase = iota
	PhaseProducts
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	if p == PhaseProducts {
		return "products"
	}
	return "categories"
}

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

// categoryResult holds the outcome of one category page.
type categoryResult struct {
	category     eucatalog.Category
	icon         eucatalog.Icon
	productLinks []string
}

// productResult holds the outcome of one product page.
type productResult struct {
	product eucatalog.Product
	icon    eucatalog.Icon
}

// Scrape fetches the categories index, every category page and every
// product page, then builds the catalog. Batches run according to mode and
// are folded in input order, so the catalog does not depend on completion
// order.
func (s *Scraper) Scrape(ctx context.Context, mode eucatalog.ExecutionMode) (*eucatalog.ScrapeResult, error) {
	base := strings.TrimSuffix(s.BaseURL, "/")
	indexURL := base + "/categories"

	html, err := s.Fetcher.FetchText(ctx, indexURL)
	if err != nil {
		return nil, fmt.Errorf("fetch categories index: %w", err)
	}
	categoryURLs, err := s.Parser.CategoryLinks(html, indexURL)
	if err != nil {
		return nil, fmt.Errorf("categories index: %w", err)
	}
	if len(categoryURLs) == 0 {
		return nil, eucatalog.Errorf(eucatalog.EPARSE, "%s lists no categories", indexURL)
	}

	categoryResults, err := Execute(ctx, mode, categoryURLs, tracked(s, PhaseCategories, len(categoryURLs), s.scrapeCategory))
	if err != nil {
		return nil, err
	}

	registry := eucatalog.NewIconRegistry()
	categories := make([]eucatalog.Category, len(categoryResults))

	// Product URL → owning category slugs, both in first-seen order.
	productURLs := bloom.NewSet(uint(len(categoryResults) * 16))
	var owners [][]string

	for i, r := range categoryResults {
		r.category.Icon = registry.Register(r.icon).Name
		categories[i] = r.category
		for _, link := range r.productLinks {
			pos, added := productURLs.Add(link)
			if added {
				owners = append(owners, nil)
			}
			owners[pos] = appendUnique(owners[pos], r.category.Slug)
		}
	}

	links := productURLs.Items()
	productResults, err := Execute(ctx, mode, links, tracked(s, PhaseProducts, len(links), s.scrapeProduct))
	if err != nil {
		return nil, err
	}

	products := make([]eucatalog.Product, len(productResults))
	for i, r := range productResults {
		r.product.Categories = owners[i]
		r.product.Logo = registry.Register(r.icon).Name
		products[i] = r.product
	}

	if err := s.registerFlags(registry); err != nil {
		return nil, err
	}

	catalog, err := eucatalog.NewCatalog(categories, products)
	if err != nil {
		return nil, err
	}

	return &eucatalog.ScrapeResult{
		Catalog: catalog,
		Icons:   registry.Icons(),
	}, nil
}

func (s *Scraper) scrapeCategory(ctx context.Context, pageURL string) (categoryResult, error) {
	slug, err := Slug(pageURL)
	if err != nil {
		return categoryResult{}, err
	}

	html, err := s.Fetcher.FetchText(ctx, pageURL)
	if err != nil {
		return categoryResult{}, fmt.Errorf("fetch category %q: %w", slug, err)
	}

	page, err := s.Parser.ParseCategoryPage(html, pageURL)
	if err != nil {
		return categoryResult{}, fmt.Errorf("category %q: %w", slug, err)
	}
	links, err := s.Parser.ProductLinks(html, pageURL)
	if err != nil {
		return categoryResult{}, fmt.Errorf("category %q products: %w", slug, err)
	}

	name := eucatalog.StripBrandPrefix(page.Name, BrandPrefix)
	icon, err := eucatalog.NewIcon(page.IconURL, name)
	if err != nil {
		return categoryResult{}, fmt.Errorf("category %q icon: %w", slug, err)
	}

	return categoryResult{
		category: eucatalog.Category{
			Slug:        slug,
			Name:        name,
			Description: page.Description,
			Summary:     eucatalog.FirstSentence(page.Description),
		},
		icon:         icon,
		productLinks: links,
	}, nil
}

func (s *Scraper) scrapeProduct(ctx context.Context, pageURL string) (productResult, error) {
	html, err := s.Fetcher.FetchText(ctx, pageURL)
	if err != nil {
		return productResult{}, fmt.Errorf("fetch product %s: %w", pageURL, err)
	}

	page, err := s.Parser.ParseProductPage(html, pageURL)
	if err != nil {
		return productResult{}, fmt.Errorf("product %s: %w", pageURL, err)
	}

	name := eucatalog.TitleCase(page.Name)
	icon, err := eucatalog.NewIcon(page.LogoURL, name)
	if err != nil {
		return productResult{}, fmt.Errorf("product %q logo: %w", name, err)
	}

	return productResult{
		product: eucatalog.Product{
			Name:        name,
			Description: page.Description,
			Summary:     eucatalog.LeadingSentences(page.Description, ProductSummarySentences),
			Country:     page.Country,
			Websites:    page.Websites,
		},
		icon: icon,
	}, nil
}

// registerFlags registers one flag icon per country.
func (s *Scraper) registerFlags(registry *eucatalog.IconRegistry) error {
	flagBase := strings.TrimSuffix(s.FlagBaseURL, "/")
	if flagBase == "" {
		flagBase = eucatalog.DefaultFlagBaseURL
	}
	for _, c := range eucatalog.AllCountries() {
		icon, err := eucatalog.NewIcon(flagBase+"/"+c.Code()+".svg", c.Icon())
		if err != nil {
			return fmt.Errorf("flag of %s: %w", c, err)
		}
		registry.Register(icon)
	}
	return nil
}

// tracked wraps fn so that every completed page emits a progress event.
func tracked[R any](s *Scraper, phase Phase, total int, fn func(context.Context, string) (R, error)) func(context.Context, string) (R, error) {
	if s.Progress == nil {
		return fn
	}
	var completed atomic.Int64
	return func(ctx context.Context, pageURL string) (R, error) {
		r, err := fn(ctx, pageURL)
		if err == nil {
			s.Progress(ProgressEvent{
				Phase:     phase,
				Completed: int(completed.Add(1)),
				Total:     total,
				URL:       pageURL,
			})
		}
		return r, err
	}
}

// Slug returns the final path segment of a category URL.
func Slug(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", eucatalog.Errorf(eucatalog.EPARSE, "invalid category URL %q: %v", rawURL, err)
	}
	slug := path.Base(strings.TrimSuffix(u.Path, "/"))
	if slug == "" || slug == "." || slug == "/" {
		return "", eucatalog.Errorf(eucatalog.EPARSE, "category URL %q has no slug", rawURL)
	}
	return slug, nil
}

func appendUnique(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}
