package handlers

import (
	"atelier/internal/config"
	"atelier/internal/repos"
	"atelier/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	AuthHandler     *AuthHandler
	CategoryHandler *CategoryHandler
	ProductHandler  *ProductHandler
	WorkHandler     *WorkHandler
	UserHandler     *UserHandler
	UploadHandler   *UploadHandler
	Auth            *services.AuthService
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	workRepo := repos.NewWorkRepo(db)
	userRepo := repos.NewUserRepo(db)

	authSvc := &services.AuthService{Users: userRepo, Secret: []byte(cfg.JWTSecret), TTL: cfg.TokenTTL}
	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	workSvc := services.NewWorkService(workRepo, catRepo)
	userSvc := services.NewUserService(userRepo)

	return &Deps{
		AuthHandler:     &AuthHandler{Auth: authSvc},
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:  &ProductHandler{Catalog: catalogSvc},
		WorkHandler:     &WorkHandler{Works: workSvc},
		UserHandler:     &UserHandler{Users: userSvc},
		UploadHandler:   &UploadHandler{MediaDir: cfg.MediaDir},
		Auth:            authSvc,
	}
}
