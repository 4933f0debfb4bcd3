package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"

	"atelier/internal/config"
	"atelier/internal/http/handlers"
	"atelier/internal/repos"
)

const (
	adminEmail = "admin@atelier.test"
	adminPass  = "Passw0rd!"
)

// newTestApp wires the real handlers over an in-memory database, mirroring
// the route table in cmd/atelier.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := repos.SeedAdmin(db, adminEmail, adminPass); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	cfg := config.Config{
		MediaDir:  t.TempDir(),
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	}
	deps := handlers.NewDeps(db, cfg)
	auth := handlers.RequireAuth(deps.Auth)
	admin := handlers.RequireAdmin(deps.Auth)

	app := fiber.New()
	app.Use(requestid.New())

	app.Post("/auth/login", deps.AuthHandler.Login)

	app.Get("/categories", deps.CategoryHandler.List)
	app.Get("/categories/:id", deps.CategoryHandler.Get)
	app.Post("/categories", auth, deps.CategoryHandler.Create)
	app.Patch("/categories/:id", auth, deps.CategoryHandler.Update)
	app.Delete("/categories/:id", auth, deps.CategoryHandler.Delete)

	app.Get("/products", deps.ProductHandler.List)
	app.Get("/products/:id", deps.ProductHandler.Get)
	app.Post("/products", auth, deps.ProductHandler.Create)
	app.Patch("/products/:id", auth, deps.ProductHandler.Update)
	app.Delete("/products/:id", auth, deps.ProductHandler.Delete)

	app.Get("/works", deps.WorkHandler.List)
	app.Get("/works/:id", deps.WorkHandler.Get)
	app.Post("/works", auth, deps.WorkHandler.Create)
	app.Patch("/works/:id", auth, deps.WorkHandler.Update)
	app.Delete("/works/:id", auth, deps.WorkHandler.Delete)

	app.Get("/users", admin, deps.UserHandler.List)
	app.Get("/users/:id", admin, deps.UserHandler.Get)
	app.Post("/users", admin, deps.UserHandler.Create)
	app.Patch("/users/:id", admin, deps.UserHandler.Update)
	app.Delete("/users/:id", admin, deps.UserHandler.Delete)

	app.Post("/upload", auth, deps.UploadHandler.Single)
	app.Post("/upload/multiple", auth, deps.UploadHandler.Multiple)

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// login returns an access token for the seeded admin.
func login(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := doJSON(t, app, "POST", "/auth/login", "", map[string]string{
		"email":    adminEmail,
		"password": adminPass,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("login: status %d", resp.StatusCode)
	}
	var body struct {
		AccessToken string `json:"access_token"`
	}
	decodeBody(t, resp, &body)
	if body.AccessToken == "" {
		t.Fatal("login: empty access_token")
	}
	return body.AccessToken
}

// mustCreateCategory inserts a category through the API and returns its id.
func mustCreateCategory(t *testing.T, app *fiber.App, token, slug string) int64 {
	t.Helper()
	resp := doJSON(t, app, "POST", "/categories", token, map[string]any{
		"slug":    slug,
		"nameEn":  "Mugs",
		"nameRu":  "Кружки",
		"nameArm": "Բաժակներ",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create category: status %d", resp.StatusCode)
	}
	var cat struct {
		ID int64 `json:"id"`
	}
	decodeBody(t, resp, &cat)
	return cat.ID
}
