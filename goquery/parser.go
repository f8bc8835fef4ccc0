package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/timarques/eucatalog"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Selectors for the directory's page structure.
const (
	SelectorHeading        = "h1"
	SelectorProse          = ".prose"
	SelectorFirstParagraph = ".prose > p"
	SelectorCategoryLink   = "a[href*='/category/']"
	SelectorCategoryIcon   = "img[src*='/categoryLogo/']"
	SelectorProductLink    = "div > a[href*='/product/']"
	SelectorProductLogo    = "img[src*='/productLogo/']"
	SelectorCountryLabel   = "img[src*='countryFlags'] + span"
	SelectorExternalLink   = "a[href^='http'] span"
	SelectorOtherLinks     = "article .items-center a"
)

// CompanyLabel labels a product's own website.
const CompanyLabel = "Company"

// mastodonMarker matches any Mastodon instance host.
const mastodonMarker = "mastodon"

// excludedHosts, and their subdomains, are never treated as a product's company website.
var excludedHosts = []string{
	"european-alternatives.eu",
	"facebook.com",
	"fb.com",
	"twitter.com",
	"x.com",
	"linkedin.com",
	"instagram.com",
	"youtube.com",
	"youtu.be",
	"github.com",
	"gitlab.com",
	"tiktok.com",
	"pinterest.com",
	"reddit.com",
	"snapchat.com",
	"discord.com",
	"telegram.org",
}

// Ensure Parser implements eucatalog.PageParser at compile time.
var _ eucatalog.PageParser = (*Parser)(nil)

// Parser reads european-alternatives.eu pages.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// CategoryLinks returns the category URLs listed on the categories index.
func (p *Parser) CategoryLinks(html, pageURL string) ([]string, error) {
	doc, err := NewDocument(html, pageURL)
	if err != nil {
		return nil, err
	}
	return doc.CollectUniqueHrefs(SelectorCategoryLink), nil
}

// ParseCategoryPage reads the heading, first prose paragraph and category
// icon of a category page.
func (p *Parser) ParseCategoryPage(html, pageURL string) (*eucatalog.CategoryPage, error) {
	doc, err := NewDocument(html, pageURL)
	if err != nil {
		return nil, err
	}

	name, err := doc.ExtractText(SelectorHeading)
	if err != nil {
		return nil, err
	}
	description, err := doc.ExtractText(SelectorFirstParagraph)
	if err != nil {
		return nil, err
	}
	icon, err := doc.ExtractAttribute(SelectorCategoryIcon, "src")
	if err != nil {
		return nil, err
	}

	return &eucatalog.CategoryPage{
		Name:        name,
		Description: description,
		IconURL:     doc.Resolve(icon),
	}, nil
}

// ProductLinks returns the product URLs listed on a category page.
func (p *Parser) ProductLinks(html, pageURL string) ([]string, error) {
	doc, err := NewDocument(html, pageURL)
	if err != nil {
		return nil, err
	}
	return doc.CollectUniqueHrefs(SelectorProductLink), nil
}

// ParseProductPage reads a product detail page.
func (p *Parser) ParseProductPage(html, pageURL string) (*eucatalog.ProductPage, error) {
	doc, err := NewDocument(html, pageURL)
	if err != nil {
		return nil, err
	}

	name, err := doc.ExtractText(SelectorHeading)
	if err != nil {
		return nil, err
	}
	description, err := leadingParagraphs(doc)
	if err != nil {
		return nil, err
	}
	logo, err := doc.ExtractAttribute(SelectorProductLogo, "src")
	if err != nil {
		return nil, err
	}

	page := &eucatalog.ProductPage{
		Name:        name,
		Description: description,
		LogoURL:     doc.Resolve(logo),
	}

	if label, err := doc.ExtractText(SelectorCountryLabel); err == nil {
		page.Country, _ = eucatalog.ParseCountry(label)
	}

	if company := companyWebsite(doc); company != "" {
		page.Websites = append(page.Websites, eucatalog.Website{Label: CompanyLabel, URL: company})
	}
	page.Websites = append(page.Websites, eucatalog.Website{Label: eucatalog.DirectoryName, URL: pageURL})
	page.Websites = append(page.Websites, otherWebsites(doc)...)

	return page, nil
}

// leadingParagraphs joins the run of <p> children that opens the first
// prose container, stopping at the first other element.
func leadingParagraphs(doc *Document) (string, error) {
	prose := doc.Find(SelectorProse).First()
	if prose.Length() == 0 {
		return "", eucatalog.Errorf(eucatalog.EPARSE, "%s: no element matches %q", doc.URL(), SelectorProse)
	}

	var paragraphs []string
	prose.Children().EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		n := sel.Get(0)
		if n.Type != html.ElementNode || n.DataAtom != atom.P {
			return false
		}
		paragraphs = append(paragraphs, strings.TrimSpace(sel.Text()))
		return true
	})

	return strings.Join(paragraphs, "\n\n"), nil
}

// companyWebsite returns the first external link wrapping a label that does
// not point at the directory itself or a social or code hosting site.
func companyWebsite(doc *Document) string {
	var found string
	doc.Find(SelectorExternalLink).EachWithBreak(func(_ int, span *goquery.Selection) bool {
		href, ok := span.Closest("a").Attr("href")
		if !ok {
			return true
		}
		href = strings.TrimSpace(href)
		if !qualifiesAsCompany(href, doc.base.Host) {
			return true
		}
		found = href
		return false
	})
	return found
}

func qualifiesAsCompany(href, pageHost string) bool {
	u, err := url.Parse(href)
	if err != nil || u.Host == "" {
		return false
	}
	if strings.EqualFold(u.Host, pageHost) {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if strings.Contains(host, mastodonMarker) {
		return false
	}
	for _, excluded := range excludedHosts {
		if host == excluded || strings.HasSuffix(host, "."+excluded) {
			return false
		}
	}
	return true
}

// otherWebsites returns the titled links of the "other links" section in
// document order.
func otherWebsites(doc *Document) []eucatalog.Website {
	var websites []eucatalog.Website
	doc.Find(SelectorOtherLinks).Each(func(_ int, a *goquery.Selection) {
		title := strings.TrimSpace(a.Find("title").First().Text())
		href, ok := a.Attr("href")
		href = strings.TrimSpace(href)
		if title == "" || !ok || href == "" {
			return
		}
		websites = append(websites, eucatalog.Website{Label: title, URL: href})
	})
	return websites
}
