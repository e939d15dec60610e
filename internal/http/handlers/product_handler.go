package handlers

import (
	"errors"
	"math"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"shopapi/internal/blob"
	"shopapi/internal/domain"
	"shopapi/internal/log"
	"shopapi/internal/repos"
	"shopapi/internal/services"
	"shopapi/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	skip := validate.Skip(c.Query("skip"))
	limit := validate.Limit(c.Query("limit"))
	products, err := h.Catalog.List(skip, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(products)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}
	p, err := h.Catalog.Get(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(p)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "expected multipart form"})
	}

	spec := domain.ProductSpec{}
	if v := strField(form, "title"); v != nil {
		spec.Title = *v
	}
	if spec.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required field: title"})
	}
	v := strField(form, "description")
	if v == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required field: description"})
	}
	spec.Description = *v
	priceRaw := strField(form, "price")
	if priceRaw == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required field: price"})
	}
	price, ok := validate.Price(*priceRaw)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "price must be a non-negative number"})
	}
	spec.Price = price

	var ferr error
	if spec.CompareAtPrice, ferr = floatField(form, "compare_at_price"); ferr != nil {
		return badField(c, ferr)
	}
	if spec.CostPerItem, ferr = floatField(form, "cost_per_item"); ferr != nil {
		return badField(c, ferr)
	}
	if spec.Profit, ferr = floatField(form, "profit"); ferr != nil {
		return badField(c, ferr)
	}
	if spec.Margin, ferr = floatField(form, "margin"); ferr != nil {
		return badField(c, ferr)
	}
	if spec.TrackQuantity, ferr = boolField(form, "track_quantity"); ferr != nil {
		return badField(c, ferr)
	}
	if spec.Quantity, ferr = intField(form, "quantity"); ferr != nil {
		return badField(c, ferr)
	}
	spec.Status = strField(form, "status")
	spec.SalesChannels = strField(form, "sales_channels")
	spec.Markets = strField(form, "markets")
	spec.ProductType = strField(form, "product_type")
	spec.Vendor = strField(form, "vendor")
	spec.SKU = strField(form, "sku")
	spec.Barcode = strField(form, "barcode")
	spec.Collections = strField(form, "collections")
	spec.Tags = strField(form, "tags")
	spec.Category = strField(form, "category")

	img, cleanup, err := imageField(form)
	if err != nil {
		return fail(c, err)
	}
	defer cleanup()

	p, err := h.Catalog.Create(spec, img)
	if err != nil {
		return fail(c, err)
	}
	log.Audit(c, "product.create", map[string]any{"id": p.ID})
	return c.JSON(p)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "expected multipart form"})
	}

	// Presence decides the merge: a field absent from the form keeps
	// its stored value, while an explicit "" or 0 overwrites it.
	patch := domain.ProductPatch{
		Title:         strField(form, "title"),
		Description:   strField(form, "description"),
		Status:        strField(form, "status"),
		SalesChannels: strField(form, "sales_channels"),
		Markets:       strField(form, "markets"),
		ProductType:   strField(form, "product_type"),
		Vendor:        strField(form, "vendor"),
		SKU:           strField(form, "sku"),
		Barcode:       strField(form, "barcode"),
		Collections:   strField(form, "collections"),
		Tags:          strField(form, "tags"),
		Category:      strField(form, "category"),
	}
	if raw := strField(form, "price"); raw != nil {
		price, ok := validate.Price(*raw)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "price must be a non-negative number"})
		}
		patch.Price = &price
	}
	var ferr error
	if patch.CompareAtPrice, ferr = floatField(form, "compare_at_price"); ferr != nil {
		return badField(c, ferr)
	}
	if patch.CostPerItem, ferr = floatField(form, "cost_per_item"); ferr != nil {
		return badField(c, ferr)
	}
	if patch.Profit, ferr = floatField(form, "profit"); ferr != nil {
		return badField(c, ferr)
	}
	if patch.Margin, ferr = floatField(form, "margin"); ferr != nil {
		return badField(c, ferr)
	}
	if patch.TrackQuantity, ferr = boolField(form, "track_quantity"); ferr != nil {
		return badField(c, ferr)
	}
	if patch.Quantity, ferr = intField(form, "quantity"); ferr != nil {
		return badField(c, ferr)
	}

	img, cleanup, err := imageField(form)
	if err != nil {
		return fail(c, err)
	}
	defer cleanup()

	p, err := h.Catalog.Update(id, patch, img)
	if err != nil {
		return fail(c, err)
	}
	log.Audit(c, "product.update", map[string]any{"id": p.ID})
	return c.JSON(p)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}
	p, err := h.Catalog.Delete(id)
	if err != nil {
		return fail(c, err)
	}
	log.Audit(c, "product.delete", map[string]any{"id": p.ID})
	return c.JSON(p)
}

// ---------- multipart helpers ----------

func strField(form *multipart.Form, key string) *string {
	if vs, ok := form.Value[key]; ok && len(vs) > 0 {
		v := vs[0]
		return &v
	}
	return nil
}

type fieldError struct{ field string }

func (e *fieldError) Error() string { return "invalid value for " + e.field }

// floatField rejects Inf and NaN along with parse failures; a stored
// non-finite value would break JSON marshaling of every response that
// includes the row.
func floatField(form *multipart.Form, key string) (*float64, error) {
	raw := strField(form, key)
	if raw == nil {
		return nil, nil
	}
	f, err := strconv.ParseFloat(*raw, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, &fieldError{field: key}
	}
	return &f, nil
}

func boolField(form *multipart.Form, key string) (*bool, error) {
	raw := strField(form, key)
	if raw == nil {
		return nil, nil
	}
	b, err := strconv.ParseBool(*raw)
	if err != nil {
		return nil, &fieldError{field: key}
	}
	return &b, nil
}

func intField(form *multipart.Form, key string) (*int, error) {
	raw := strField(form, key)
	if raw == nil {
		return nil, nil
	}
	n, err := strconv.Atoi(*raw)
	if err != nil {
		return nil, &fieldError{field: key}
	}
	return &n, nil
}

// imageField opens the optional "image" file part. The cleanup func
// closes the part and is safe to call when no file was sent.
func imageField(form *multipart.Form) (*services.Upload, func(), error) {
	fhs, ok := form.File["image"]
	if !ok || len(fhs) == 0 {
		return nil, func() {}, nil
	}
	fh := fhs[0]
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}
	up := &services.Upload{
		Reader:      f,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
	}
	return up, func() { f.Close() }, nil
}

func badField(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

// fail maps typed service and storage errors onto the API's statuses.
// Internal paths never leak; unknown failures collapse to a 500.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repos.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	case errors.Is(err, blob.ErrNotImage):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Uploaded file is not an image"})
	case errors.Is(err, services.ErrMissingField):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required field: title"})
	case errors.Is(err, blob.ErrNotFound), errors.Is(err, blob.ErrBadRef):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Image not found"})
	default:
		log.Error(c, "server.error", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
