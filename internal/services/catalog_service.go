package services

import (
	"errors"
	"io"

	"shopapi/internal/blob"
	"shopapi/internal/domain"
	applog "shopapi/internal/log"
	"shopapi/internal/repos"
)

var ErrMissingField = errors.New("missing required field")

// Upload is an uploaded image as the HTTP layer hands it over.
type Upload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

// CatalogService owns the product lifecycle. Image handling is a
// two-step saga: the blob is stored before the row that references it
// is committed, and a superseded blob is only deleted after the row
// commit that drops its reference succeeds. Blob cleanup after a
// committed row change is best effort; a failure there is logged and
// may leave an orphaned blob, never a row pointing at a missing one.
type CatalogService struct {
	Products *repos.ProductRepo
	Blobs    *blob.Store
}

func NewCatalogService(products *repos.ProductRepo, blobs *blob.Store) *CatalogService {
	return &CatalogService{Products: products, Blobs: blobs}
}

// Create stores the image (if any) and then the row. If the row
// insert fails the fresh blob is removed so nothing is orphaned.
func (s *CatalogService) Create(spec domain.ProductSpec, img *Upload) (domain.Product, error) {
	if spec.Title == "" {
		return domain.Product{}, ErrMissingField
	}
	if img != nil {
		ref, err := s.Blobs.Save(img.Reader, img.Filename, img.ContentType)
		if err != nil {
			return domain.Product{}, err
		}
		url := blob.URL(ref)
		spec.ImageURL = &url
	}
	p, err := s.Products.Create(spec)
	if err != nil {
		if spec.ImageURL != nil {
			s.removeBlob(*spec.ImageURL, "catalog.create.cleanup")
		}
		return domain.Product{}, err
	}
	return p, nil
}

func (s *CatalogService) Get(id int64) (domain.Product, error) {
	return s.Products.Get(id)
}

func (s *CatalogService) List(skip, limit int) ([]domain.Product, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return s.Products.List(skip, limit)
}

// Update applies the patch. When a new image comes along: store the
// new blob, commit the row pointing at it, then delete the old blob.
// If the row commit fails the new blob is removed and the old one,
// still referenced by the unchanged row, is left alone.
func (s *CatalogService) Update(id int64, patch domain.ProductPatch, img *Upload) (domain.Product, error) {
	// Presence semantics cover falsy-but-valid values, not validity:
	// a supplied title still has to be non-empty, as on create.
	if patch.Title != nil && *patch.Title == "" {
		return domain.Product{}, ErrMissingField
	}
	prev, err := s.Products.Get(id)
	if err != nil {
		return domain.Product{}, err
	}

	if img != nil {
		ref, err := s.Blobs.Save(img.Reader, img.Filename, img.ContentType)
		if err != nil {
			return domain.Product{}, err
		}
		url := blob.URL(ref)
		patch.ImageURL = &url
	}

	p, err := s.Products.Update(id, patch)
	if err != nil {
		if img != nil && patch.ImageURL != nil {
			s.removeBlob(*patch.ImageURL, "catalog.update.cleanup")
		}
		return domain.Product{}, err
	}

	// Row now points at the new blob; the old one is unreferenced.
	if img != nil && prev.ImageURL != nil {
		s.removeBlob(*prev.ImageURL, "catalog.update.stale_blob")
	}
	return p, nil
}

// Delete removes the row, then its blob. Blob removal failing does
// not undo the delete; the row is gone either way.
func (s *CatalogService) Delete(id int64) (domain.Product, error) {
	p, err := s.Products.Delete(id)
	if err != nil {
		return domain.Product{}, err
	}
	if p.ImageURL != nil {
		s.removeBlob(*p.ImageURL, "catalog.delete.blob")
	}
	return p, nil
}

// ImagePath resolves an image reference for serving.
func (s *CatalogService) ImagePath(ref string) (string, error) {
	return s.Blobs.Resolve(ref)
}

func (s *CatalogService) removeBlob(imageURL, action string) {
	ref, ok := blob.RefFromURL(imageURL)
	if !ok {
		applog.Warn(action, blob.ErrBadRef, map[string]any{"image_url": imageURL})
		return
	}
	if _, err := s.Blobs.Delete(ref); err != nil {
		applog.Warn(action, err, map[string]any{"ref": ref})
	}
}
