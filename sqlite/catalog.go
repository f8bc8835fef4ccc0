package sqlite

import (
	"context"
	"database/sql"

	"github.com/timarques/eucatalog"
)

// Compile-time interface verification.
var _ eucatalog.CatalogStore = (*CatalogStore)(nil)

// CatalogStore implements eucatalog.CatalogStore using SQLite. The store
// holds one snapshot; saving replaces it.
type CatalogStore struct {
	db *DB
}

// NewCatalogStore creates a new CatalogStore.
func NewCatalogStore(db *DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// SaveCatalog replaces the stored snapshot with c in one transaction.
func (s *CatalogStore) SaveCatalog(ctx context.Context, c *eucatalog.Catalog) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return eucatalog.Errorf(eucatalog.EIO, "begin snapshot: %v", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"websites", "product_categories", "products", "categories"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return eucatalog.Errorf(eucatalog.EIO, "clear %s: %v", table, err)
		}
	}

	for i, cat := range c.Categories {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO categories (position, slug, name, description, summary, icon)
			VALUES (?, ?, ?, ?, ?, ?)
		`, i, cat.Slug, cat.Name, cat.Description, cat.Summary, cat.Icon)
		if err != nil {
			return eucatalog.Errorf(eucatalog.EIO, "insert category %q: %v", cat.Slug, err)
		}
	}

	for i, p := range c.Products {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO products (position, name, description, summary, country, logo)
			VALUES (?, ?, ?, ?, ?, ?)
		`, i, p.Name, p.Description, p.Summary, int(p.Country), p.Logo)
		if err != nil {
			return eucatalog.Errorf(eucatalog.EIO, "insert product %q: %v", p.Name, err)
		}

		for j, slug := range p.Categories {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO product_categories (product, ordinal, slug) VALUES (?, ?, ?)", i, j, slug); err != nil {
				return eucatalog.Errorf(eucatalog.EIO, "link product %q to %q: %v", p.Name, slug, err)
			}
		}
		for j, w := range p.Websites {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO websites (product, ordinal, label, url) VALUES (?, ?, ?, ?)", i, j, w.Label, w.URL); err != nil {
				return eucatalog.Errorf(eucatalog.EIO, "insert website of %q: %v", p.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return eucatalog.Errorf(eucatalog.EIO, "commit snapshot: %v", err)
	}
	return nil
}

// LoadCatalog rebuilds the stored snapshot through eucatalog.NewCatalog.
// Returns ENOTFOUND when no snapshot has been saved.
func (s *CatalogStore) LoadCatalog(ctx context.Context) (*eucatalog.Catalog, error) {
	categories, err := s.loadCategories(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, eucatalog.Errorf(eucatalog.ENOTFOUND, "no catalog snapshot")
	}

	products, err := s.loadProducts(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.loadProductCategories(ctx, products); err != nil {
		return nil, err
	}
	if err := s.loadWebsites(ctx, products); err != nil {
		return nil, err
	}

	return eucatalog.NewCatalog(categories, products)
}

func (s *CatalogStore) loadCategories(ctx context.Context) ([]eucatalog.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT slug, name, description, summary, icon
		FROM categories
		ORDER BY position
	`)
	if err != nil {
		return nil, eucatalog.Errorf(eucatalog.EIO, "query categories: %v", err)
	}
	defer rows.Close()

	var categories []eucatalog.Category
	for rows.Next() {
		var c eucatalog.Category
		if err := rows.Scan(&c.Slug, &c.Name, &c.Description, &c.Summary, &c.Icon); err != nil {
			return nil, eucatalog.Errorf(eucatalog.EIO, "scan category: %v", err)
		}
		categories = append(categories, c)
	}
	return categories, rowsErr(rows, "categories")
}

func (s *CatalogStore) loadProducts(ctx context.Context) ([]eucatalog.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, description, summary, country, logo
		FROM products
		ORDER BY position
	`)
	if err != nil {
		return nil, eucatalog.Errorf(eucatalog.EIO, "query products: %v", err)
	}
	defer rows.Close()

	var products []eucatalog.Product
	for rows.Next() {
		var p eucatalog.Product
		var country int
		if err := rows.Scan(&p.Name, &p.Description, &p.Summary, &country, &p.Logo); err != nil {
			return nil, eucatalog.Errorf(eucatalog.EIO, "scan product: %v", err)
		}
		p.Country = eucatalog.Country(country)
		products = append(products, p)
	}
	return products, rowsErr(rows, "products")
}

func (s *CatalogStore) loadProductCategories(ctx context.Context, products []eucatalog.Product) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product, slug
		FROM product_categories
		ORDER BY product, ordinal
	`)
	if err != nil {
		return eucatalog.Errorf(eucatalog.EIO, "query product categories: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var position int
		var slug string
		if err := rows.Scan(&position, &slug); err != nil {
			return eucatalog.Errorf(eucatalog.EIO, "scan product category: %v", err)
		}
		p, err := productAt(products, position)
		if err != nil {
			return err
		}
		p.Categories = append(p.Categories, slug)
	}
	return rowsErr(rows, "product categories")
}

func (s *CatalogStore) loadWebsites(ctx context.Context, products []eucatalog.Product) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product, label, url
		FROM websites
		ORDER BY product, ordinal
	`)
	if err != nil {
		return eucatalog.Errorf(eucatalog.EIO, "query websites: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var position int
		var w eucatalog.Website
		if err := rows.Scan(&position, &w.Label, &w.URL); err != nil {
			return eucatalog.Errorf(eucatalog.EIO, "scan website: %v", err)
		}
		p, err := productAt(products, position)
		if err != nil {
			return err
		}
		p.Websites = append(p.Websites, w)
	}
	return rowsErr(rows, "websites")
}

func productAt(products []eucatalog.Product, position int) (*eucatalog.Product, error) {
	if position < 0 || position >= len(products) {
		return nil, eucatalog.Errorf(eucatalog.EDATA, "snapshot references unknown product position %d", position)
	}
	return &products[position], nil
}

func rowsErr(rows *sql.Rows, what string) error {
	if err := rows.Err(); err != nil {
		return eucatalog.Errorf(eucatalog.EIO, "read %s: %v", what, err)
	}
	return nil
}
