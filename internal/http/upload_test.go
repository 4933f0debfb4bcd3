package handlers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"atelier/internal/http/handlers"
)

func newUploadApp(t *testing.T) (*fiber.App, string) {
	t.Helper()
	dir := t.TempDir()
	h := &handlers.UploadHandler{MediaDir: dir}
	app := fiber.New()
	app.Post("/upload", h.Single)
	app.Post("/upload/multiple", h.Multiple)
	return app, dir
}

func multipartReq(t *testing.T, path, field string, names []string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range names {
		fw, err := mw.CreateFormFile(field, name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte("fake image bytes")); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadSingle(t *testing.T) {
	app, dir := newUploadApp(t)

	resp, err := app.Test(multipartReq(t, "/upload", "file", []string{"photo.PNG"}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var body struct {
		URL string `json:"url"`
	}
	decodeBody(t, resp, &body)
	if !strings.HasPrefix(body.URL, "/media/") || !strings.HasSuffix(body.URL, ".png") {
		t.Fatalf("url: %q", body.URL)
	}
	// The name is server-generated; the client filename must not survive.
	if strings.Contains(body.URL, "photo") {
		t.Fatalf("client filename leaked into url: %q", body.URL)
	}
	saved := filepath.Join(dir, strings.TrimPrefix(body.URL, "/media/"))
	if _, err := os.Stat(saved); err != nil {
		t.Fatalf("file not on disk: %v", err)
	}
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	app, dir := newUploadApp(t)

	for _, name := range []string{"script.html", "payload.exe", "noext"} {
		resp, err := app.Test(multipartReq(t, "/upload", "file", []string{name}))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: status %d, want 400", name, resp.StatusCode)
		}
	}
	entries, err := os.ReadDir(dir)
	if err == nil && len(entries) != 0 {
		t.Fatalf("rejected uploads left files behind: %v", entries)
	}
}

func TestUploadMissingField(t *testing.T) {
	app, _ := newUploadApp(t)

	resp, err := app.Test(httptest.NewRequest("POST", "/upload", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", resp.StatusCode)
	}
}

func TestUploadMultiple(t *testing.T) {
	app, dir := newUploadApp(t)

	resp, err := app.Test(multipartReq(t, "/upload/multiple", "files", []string{"a.jpg", "b.webp"}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var body struct {
		URLs []string `json:"urls"`
	}
	decodeBody(t, resp, &body)
	if len(body.URLs) != 2 {
		t.Fatalf("urls: %v", body.URLs)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("want 2 files on disk, got %d", len(entries))
	}
}
