// Package goquery implements document extraction and eucatalog.PageParser
// on top of github.com/PuerkitoBio/goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/timarques/eucatalog"
)

// Document is a parsed HTML page together with the URL it was fetched from,
// which is used to resolve relative references.
type Document struct {
	doc  *goquery.Document
	base *url.URL
}

// NewDocument parses html fetched from pageURL.
func NewDocument(html, pageURL string) (*Document, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, eucatalog.Errorf(eucatalog.EPARSE, "invalid page URL %q: %v", pageURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, eucatalog.Errorf(eucatalog.EPARSE, "failed to parse HTML of %s: %v", pageURL, err)
	}

	return &Document{doc: doc, base: base}, nil
}

// URL returns the page URL.
func (d *Document) URL() string {
	return d.base.String()
}

// Find returns every element matching selector.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// ExtractText returns the trimmed text of the first element matching
// selector. Returns EPARSE if nothing matches.
func (d *Document) ExtractText(selector string) (string, error) {
	sel := d.doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", eucatalog.Errorf(eucatalog.EPARSE, "%s: no element matches %q", d.base, selector)
	}
	return strings.TrimSpace(sel.Text()), nil
}

// ExtractAttribute returns attr of the first element matching selector.
// Returns EPARSE if nothing matches or the attribute is missing or blank.
func (d *Document) ExtractAttribute(selector, attr string) (string, error) {
	sel := d.doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", eucatalog.Errorf(eucatalog.EPARSE, "%s: no element matches %q", d.base, selector)
	}
	value, ok := sel.Attr(attr)
	value = strings.TrimSpace(value)
	if !ok || value == "" {
		return "", eucatalog.Errorf(eucatalog.EPARSE, "%s: %q has no %s attribute", d.base, selector, attr)
	}
	return value, nil
}

// ExtractOptionalAttribute is ExtractAttribute without the error: a missing
// element or attribute yields "".
func (d *Document) ExtractOptionalAttribute(selector, attr string) string {
	value, _ := d.doc.Find(selector).First().Attr(attr)
	return strings.TrimSpace(value)
}

// CollectUniqueHrefs returns the resolved href of every element matching
// selector, de-duplicated and in first-seen order. Fragments are dropped
// and non-HTTP links are skipped.
func (d *Document) CollectUniqueHrefs(selector string) []string {
	seen := make(map[string]struct{})
	var hrefs []string

	d.doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || strings.TrimSpace(href) == "" || isNonHTTPLink(href) {
			return
		}

		resolved := d.Resolve(href)
		if resolved == "" {
			return
		}
		if _, dup := seen[resolved]; dup {
			return
		}
		seen[resolved] = struct{}{}
		hrefs = append(hrefs, resolved)
	})

	return hrefs
}

// Resolve resolves href against the page URL and strips the fragment.
// Returns "" if href cannot be parsed.
func (d *Document) Resolve(href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := d.base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
