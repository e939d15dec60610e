package domain

// Product is the canonical catalog row. Optional commerce fields are
// pointers so that "never set" survives as NULL in the table and null
// in JSON rather than collapsing into a zero value.
type Product struct {
	ID             int64    `db:"id" json:"id"`
	Title          string   `db:"title" json:"title"`
	Description    string   `db:"description" json:"description"`
	Price          float64  `db:"price" json:"price"`
	CompareAtPrice *float64 `db:"compare_at_price" json:"compare_at_price"`
	CostPerItem    *float64 `db:"cost_per_item" json:"cost_per_item"`
	Profit         *float64 `db:"profit" json:"profit"`
	Margin         *float64 `db:"margin" json:"margin"`
	TrackQuantity  *bool    `db:"track_quantity" json:"track_quantity"`
	Quantity       int      `db:"quantity" json:"quantity"`
	Status         *string  `db:"status" json:"status"`
	SalesChannels  *string  `db:"sales_channels" json:"sales_channels"`
	Markets        *string  `db:"markets" json:"markets"`
	ProductType    *string  `db:"product_type" json:"product_type"`
	Vendor         *string  `db:"vendor" json:"vendor"`
	SKU            *string  `db:"sku" json:"sku"`
	Barcode        *string  `db:"barcode" json:"barcode"`
	Collections    *string  `db:"collections" json:"collections"`
	Tags           *string  `db:"tags" json:"tags"`
	Category       *string  `db:"category" json:"category"`
	ImageURL       *string  `db:"image_url" json:"image_url"`
}

// ProductSpec carries everything needed to create a product. Required
// fields are plain values; the rest default to NULL/zero when nil.
// ImageURL, when non-nil, must already point at a stored blob.
type ProductSpec struct {
	Title          string
	Description    string
	Price          float64
	CompareAtPrice *float64
	CostPerItem    *float64
	Profit         *float64
	Margin         *float64
	TrackQuantity  *bool
	Quantity       *int
	Status         *string
	SalesChannels  *string
	Markets        *string
	ProductType    *string
	Vendor         *string
	SKU            *string
	Barcode        *string
	Collections    *string
	Tags           *string
	Category       *string
	ImageURL       *string
}

// ProductPatch is a partial update: nil means "not supplied, keep the
// stored value"; non-nil overwrites, including explicit zero values
// like 0 or "". ImageURL set non-nil replaces the image reference;
// the blob behind it must already be stored.
type ProductPatch struct {
	Title          *string
	Description    *string
	Price          *float64
	CompareAtPrice *float64
	CostPerItem    *float64
	Profit         *float64
	Margin         *float64
	TrackQuantity  *bool
	Quantity       *int
	Status         *string
	SalesChannels  *string
	Markets        *string
	ProductType    *string
	Vendor         *string
	SKU            *string
	Barcode        *string
	Collections    *string
	Tags           *string
	Category       *string
	ImageURL       *string
}

// Apply merges the patch into p, field by field. Presence decides:
// a nil patch field leaves the stored value untouched.
func (p *Product) Apply(patch ProductPatch) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.CompareAtPrice != nil {
		p.CompareAtPrice = patch.CompareAtPrice
	}
	if patch.CostPerItem != nil {
		p.CostPerItem = patch.CostPerItem
	}
	if patch.Profit != nil {
		p.Profit = patch.Profit
	}
	if patch.Margin != nil {
		p.Margin = patch.Margin
	}
	if patch.TrackQuantity != nil {
		p.TrackQuantity = patch.TrackQuantity
	}
	if patch.Quantity != nil {
		p.Quantity = *patch.Quantity
	}
	if patch.Status != nil {
		p.Status = patch.Status
	}
	if patch.SalesChannels != nil {
		p.SalesChannels = patch.SalesChannels
	}
	if patch.Markets != nil {
		p.Markets = patch.Markets
	}
	if patch.ProductType != nil {
		p.ProductType = patch.ProductType
	}
	if patch.Vendor != nil {
		p.Vendor = patch.Vendor
	}
	if patch.SKU != nil {
		p.SKU = patch.SKU
	}
	if patch.Barcode != nil {
		p.Barcode = patch.Barcode
	}
	if patch.Collections != nil {
		p.Collections = patch.Collections
	}
	if patch.Tags != nil {
		p.Tags = patch.Tags
	}
	if patch.Category != nil {
		p.Category = patch.Category
	}
	if patch.ImageURL != nil {
		p.ImageURL = patch.ImageURL
	}
}
