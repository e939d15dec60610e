package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"shopapi/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, title, description, price, compare_at_price, cost_per_item,
  profit, margin, track_quantity, quantity, status, sales_channels,
  markets, product_type, vendor, sku, barcode, collections, tags,
  category, image_url`

// Create inserts a new row from the spec and returns it with the
// assigned id. Optional nil fields land as NULL.
func (r *ProductRepo) Create(spec domain.ProductSpec) (domain.Product, error) {
	qty := 0
	if spec.Quantity != nil {
		qty = *spec.Quantity
	}
	res, err := r.db.Exec(`
  INSERT INTO products(
    title, description, price, compare_at_price, cost_per_item,
    profit, margin, track_quantity, quantity, status, sales_channels,
    markets, product_type, vendor, sku, barcode, collections, tags,
    category, image_url
  ) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		spec.Title, spec.Description, spec.Price, spec.CompareAtPrice, spec.CostPerItem,
		spec.Profit, spec.Margin, spec.TrackQuantity, qty, spec.Status, spec.SalesChannels,
		spec.Markets, spec.ProductType, spec.Vendor, spec.SKU, spec.Barcode, spec.Collections, spec.Tags,
		spec.Category, spec.ImageURL)
	if err != nil {
		return domain.Product{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Product{}, err
	}
	return r.Get(id)
}

func (r *ProductRepo) Get(id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT`+productCols+` FROM products WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, ErrNotFound
	}
	return p, err
}

// List returns products in ascending id order. Offset and limit apply
// after ordering, so pages are stable across calls.
func (r *ProductRepo) List(offset, limit int) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `
  SELECT`+productCols+`
  FROM products
  ORDER BY id ASC
  LIMIT ? OFFSET ?`, limit, offset)
	return out, err
}

// Update merges the patch into the stored row and writes every column
// back. The merge is an explicit per-field presence check in
// domain.Product.Apply, not a dynamic SET clause.
func (r *ProductRepo) Update(id int64, patch domain.ProductPatch) (domain.Product, error) {
	p, err := r.Get(id)
	if err != nil {
		return domain.Product{}, err
	}
	p.Apply(patch)

	_, err = r.db.Exec(`
  UPDATE products SET
    title=?, description=?, price=?, compare_at_price=?, cost_per_item=?,
    profit=?, margin=?, track_quantity=?, quantity=?, status=?, sales_channels=?,
    markets=?, product_type=?, vendor=?, sku=?, barcode=?, collections=?, tags=?,
    category=?, image_url=?, updated_at=CURRENT_TIMESTAMP
  WHERE id=?`,
		p.Title, p.Description, p.Price, p.CompareAtPrice, p.CostPerItem,
		p.Profit, p.Margin, p.TrackQuantity, p.Quantity, p.Status, p.SalesChannels,
		p.Markets, p.ProductType, p.Vendor, p.SKU, p.Barcode, p.Collections, p.Tags,
		p.Category, p.ImageURL, id)
	if err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// Delete removes the row and returns it as it was, so callers can
// clean up anything the row referenced.
func (r *ProductRepo) Delete(id int64) (domain.Product, error) {
	p, err := r.Get(id)
	if err != nil {
		return domain.Product{}, err
	}
	if _, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}
