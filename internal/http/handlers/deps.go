package handlers

import (
	"github.com/jmoiron/sqlx"

	"shopapi/internal/blob"
	"shopapi/internal/repos"
	"shopapi/internal/services"
)

type Deps struct {
	AuthHandler    *AuthHandler
	ProductHandler *ProductHandler
	ImageHandler   *ImageHandler
}

func NewDeps(db *sqlx.DB, blobs *blob.Store) *Deps {
	userRepo := repos.NewUserRepo(db)
	prodRepo := repos.NewProductRepo(db)

	authSvc := &services.AuthService{Users: userRepo}
	catalogSvc := services.NewCatalogService(prodRepo, blobs)

	return &Deps{
		AuthHandler:    &AuthHandler{Auth: authSvc},
		ProductHandler: &ProductHandler{Catalog: catalogSvc},
		ImageHandler:   &ImageHandler{Catalog: catalogSvc},
	}
}
