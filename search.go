package eucatalog

import (
	"sort"
	"strings"
	"unicode"
)

// MinTokenLength is the shortest token considered by SearchEngine.
const MinTokenLength = 3

// SearchResult groups matching products under one category.
type SearchResult struct {
	Category *Category
	Products []*Product
}

// SearchEngine performs token based substring search over a catalog.
// A product's searchable text is its name and description, its country
// name, and the name and description of each category it belongs to.
type SearchEngine struct {
	catalog *Catalog
	tokens  [][]string
}

// NewSearchEngine tokenizes every product of c once.
func NewSearchEngine(c *Catalog) *SearchEngine {
	e := &SearchEngine{catalog: c, tokens: make([][]string, len(c.Products))}
	for i := range c.Products {
		p := &c.Products[i]
		parts := []string{p.Name, p.Description, p.Country.Name()}
		for _, cat := range c.CategoriesOf(p) {
			parts = append(parts, cat.Name, cat.Description)
		}
		e.tokens[i] = Tokenize(strings.Join(parts, " "))
	}
	return e
}

// Search returns the products matching query, grouped by category in
// catalog order with products sorted by name. Every query token must
// match some product token, where either one contains the other. A query
// with no usable tokens matches everything. country filters results
// unless it is NoCountry.
func (e *SearchEngine) Search(query string, country Country) []SearchResult {
	q := Tokenize(query)

	matched := make([]bool, len(e.catalog.Products))
	for i := range e.catalog.Products {
		if country != NoCountry && e.catalog.Products[i].Country != country {
			continue
		}
		matched[i] = matchesAll(q, e.tokens[i])
	}

	var results []SearchResult
	for ci := range e.catalog.Categories {
		var prods []*Product
		for _, pi := range e.catalog.CategoryProducts[ci] {
			if matched[pi] {
				prods = append(prods, &e.catalog.Products[pi])
			}
		}
		if len(prods) == 0 {
			continue
		}
		sort.Slice(prods, func(i, j int) bool { return prods[i].Name < prods[j].Name })
		results = append(results, SearchResult{Category: &e.catalog.Categories[ci], Products: prods})
	}
	return results
}

// Tokenize lower-cases text, drops everything except letters, digits and
// spaces, and returns the words of at least MinTokenLength runes.
func Tokenize(text string) []string {
	normalized := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return unicode.ToLower(r)
		case unicode.IsSpace(r):
			return ' '
		default:
			return -1
		}
	}, text)

	var tokens []string
	for _, f := range strings.Fields(normalized) {
		if len([]rune(f)) >= MinTokenLength {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func matchesAll(query, product []string) bool {
	for _, q := range query {
		found := false
		for _, p := range product {
			if strings.Contains(p, q) || strings.Contains(q, p) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
