package handlers

import (
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	applog "atelier/internal/log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UploadHandler stores admin-uploaded images under the media dir and hands
// back the /media URLs the catalog records reference.
type UploadHandler struct {
	MediaDir string
}

var allowedExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true, ".svg": true,
}

func (h *UploadHandler) save(c *fiber.Ctx, fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExt[ext] {
		return "", fiber.NewError(fiber.StatusBadRequest, "unsupported file type")
	}
	if err := os.MkdirAll(h.MediaDir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + ext
	if err := c.SaveFile(fh, filepath.Join(h.MediaDir, name)); err != nil {
		return "", err
	}
	return "/media/" + name, nil
}

// POST /upload
func (h *UploadHandler) Single(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file field is required"})
	}
	url, err := h.save(c, fh)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}
		return fail(c, "upload.single", err)
	}
	applog.Audit(c, "upload.single", map[string]any{"url": url, "size": fh.Size})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}

// POST /upload/multiple
func (h *UploadHandler) Multiple(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil || form == nil || len(form.File["files"]) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "files field is required"})
	}
	urls := make([]string, 0, len(form.File["files"]))
	for _, fh := range form.File["files"] {
		url, err := h.save(c, fh)
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
			}
			return fail(c, "upload.multiple", err)
		}
		urls = append(urls, url)
	}
	applog.Audit(c, "upload.multiple", map[string]any{"count": len(urls)})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"urls": urls})
}
