package mock

import "github.com/timarques/eucatalog"

var _ eucatalog.PageParser = (*PageParser)(nil)

// PageParser is a mock implementation of eucatalog.PageParser.
type PageParser struct {
	CategoryLinksFn     func(html, pageURL string) ([]string, error)
	ParseCategoryPageFn func(html, pageURL string) (*eucatalog.CategoryPage, error)
	ProductLinksFn      func(html, pageURL string) ([]string, error)
	ParseProductPageFn  func(html, pageURL string) (*eucatalog.ProductPage, error)
}

func (p *PageParser) CategoryLinks(html, pageURL string) ([]string, error) {
	return p.CategoryLinksFn(html, pageURL)
}

func (p *PageParser) ParseCategoryPage(html, pageURL string) (*eucatalog.CategoryPage, error) {
	return p.ParseCategoryPageFn(html, pageURL)
}

func (p *PageParser) ProductLinks(html, pageURL string) ([]string, error) {
	return p.ProductLinksFn(html, pageURL)
}

func (p *PageParser) ParseProductPage(html, pageURL string) (*eucatalog.ProductPage, error) {
	return p.ParseProductPageFn(html, pageURL)
}
