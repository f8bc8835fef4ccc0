package eucatalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timarques/eucatalog"
)

func testCategories() []eucatalog.Category {
	return []eucatalog.Category{
		{Slug: "cloud", Name: "Cloud", Description: "Cloud providers. Hosted in Europe.", Summary: "Cloud providers.", Icon: "cloud"},
		{Slug: "search", Name: "Search", Description: "Search engines.", Summary: "Search engines.", Icon: "search"},
	}
}

func testProducts() []eucatalog.Product {
	return []eucatalog.Product{
		{Name: "Hetzner", Country: eucatalog.CountryGermany, Categories: []string{"cloud"}, Logo: "hetzner"},
		{Name: "Qwant", Country: eucatalog.CountryFrance, Categories: []string{"search", "cloud"}, Logo: "qwant"},
		{Name: "Nowhere", Categories: []string{"search"}, Logo: "nowhere"},
		{Name: "Ecosia", Country: eucatalog.CountryGermany, Categories: []string{"search", "search"}, Logo: "ecosia"},
	}
}

func TestNewCatalog(t *testing.T) {
	t.Parallel()

	t.Run("indexes every slug and name exactly once", func(t *testing.T) {
		t.Parallel()

		c, err := eucatalog.NewCatalog(testCategories(), testProducts())
		require.NoError(t, err)

		assert.Equal(t, map[string]int{"cloud": 0, "search": 1}, c.SlugIndex)
		assert.Len(t, c.NameIndex, 4)
		for i, p := range c.Products {
			assert.Equal(t, i, c.NameIndex[p.Name])
		}
	})

	t.Run("builds category buckets in product order", func(t *testing.T) {
		t.Parallel()

		c, err := eucatalog.NewCatalog(testCategories(), testProducts())
		require.NoError(t, err)

		assert.Equal(t, []int{0, 1}, c.CategoryProducts[0])
		assert.Equal(t, []int{1, 2, 3}, c.CategoryProducts[1])
	})

	t.Run("product linked from two categories is in both buckets", func(t *testing.T) {
		t.Parallel()

		c, err := eucatalog.NewCatalog(testCategories(), testProducts())
		require.NoError(t, err)

		qwant := c.NameIndex["Qwant"]
		assert.Contains(t, c.CategoryProducts[c.SlugIndex["cloud"]], qwant)
		assert.Contains(t, c.CategoryProducts[c.SlugIndex["search"]], qwant)
	})

	t.Run("builds country buckets and excludes country-less products", func(t *testing.T) {
		t.Parallel()

		c, err := eucatalog.NewCatalog(testCategories(), testProducts())
		require.NoError(t, err)

		require.Len(t, c.CountryProducts, eucatalog.CountryCount)
		assert.Equal(t, []int{0, 3}, c.CountryProducts[eucatalog.CountryGermany.Index()])
		assert.Equal(t, []int{1}, c.CountryProducts[eucatalog.CountryFrance.Index()])

		nowhere := c.NameIndex["Nowhere"]
		for _, bucket := range c.CountryProducts {
			assert.NotContains(t, bucket, nowhere)
		}
	})

	t.Run("rejects duplicate slug", func(t *testing.T) {
		t.Parallel()

		cats := append(testCategories(), eucatalog.Category{Slug: "cloud", Name: "Cloud again"})
		_, err := eucatalog.NewCatalog(cats, nil)
		require.Error(t, err)
		assert.Equal(t, eucatalog.EDATA, eucatalog.ErrorCode(err))
	})

	t.Run("rejects duplicate product name", func(t *testing.T) {
		t.Parallel()

		prods := append(testProducts(), eucatalog.Product{Name: "Qwant", Categories: []string{"search"}, Logo: "q"})
		_, err := eucatalog.NewCatalog(testCategories(), prods)
		require.Error(t, err)
		assert.Equal(t, eucatalog.EDATA, eucatalog.ErrorCode(err))
	})

	t.Run("rejects unknown category reference", func(t *testing.T) {
		t.Parallel()

		prods := []eucatalog.Product{{Name: "Orphan", Categories: []string{"missing"}, Logo: "o"}}
		_, err := eucatalog.NewCatalog(testCategories(), prods)
		require.Error(t, err)
		assert.Equal(t, eucatalog.EDATA, eucatalog.ErrorCode(err))
	})
}

func TestCatalog_Lookups(t *testing.T) {
	t.Parallel()

	c, err := eucatalog.NewCatalog(testCategories(), testProducts())
	require.NoError(t, err)

	t.Run("category by slug", func(t *testing.T) {
		t.Parallel()

		cat, err := c.CategoryBySlug("search")
		require.NoError(t, err)
		assert.Equal(t, "Search", cat.Name)

		_, err = c.CategoryBySlug("nope")
		assert.Equal(t, eucatalog.ENOTFOUND, eucatalog.ErrorCode(err))
	})

	t.Run("product by name", func(t *testing.T) {
		t.Parallel()

		p, err := c.ProductByName("Hetzner")
		require.NoError(t, err)
		assert.Equal(t, eucatalog.CountryGermany, p.Country)

		_, err = c.ProductByName("nope")
		assert.Equal(t, eucatalog.ENOTFOUND, eucatalog.ErrorCode(err))
	})

	t.Run("products in category and country", func(t *testing.T) {
		t.Parallel()

		prods, err := c.ProductsInCategory("cloud")
		require.NoError(t, err)
		require.Len(t, prods, 2)
		assert.Equal(t, "Hetzner", prods[0].Name)

		german := c.ProductsInCountry(eucatalog.CountryGermany)
		require.Len(t, german, 2)
		assert.Equal(t, "Ecosia", german[1].Name)
		assert.Nil(t, c.ProductsInCountry(eucatalog.NoCountry))
	})

	t.Run("countries with products", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []eucatalog.Country{eucatalog.CountryFrance, eucatalog.CountryGermany}, c.Countries())
	})

	t.Run("categories of product", func(t *testing.T) {
		t.Parallel()

		p, err := c.ProductByName("Qwant")
		require.NoError(t, err)
		cats := c.CategoriesOf(p)
		require.Len(t, cats, 2)
		assert.Equal(t, "search", cats[0].Slug)
		assert.Equal(t, "cloud", cats[1].Slug)
	})

	t.Run("sorted categories", func(t *testing.T) {
		t.Parallel()

		sorted := c.SortedCategories()
		require.Len(t, sorted, 2)
		assert.Equal(t, "cloud", sorted[0].Slug)
		assert.Equal(t, "search", sorted[1].Slug)
	})
}
